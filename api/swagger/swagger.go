package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ExamHub Document Search API",
        "description": "Search and ranking for past papers, short notes and books.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Search", "description": "Public document search"},
        {"name": "Subjects", "description": "Subject catalog"},
        {"name": "Failed Searches", "description": "Zero-result query review (admin)"}
    ],
    "paths": {
        "/documents/search": {
            "get": {
                "tags": ["Search"],
                "summary": "Search approved documents",
                "parameters": [
                    {"name": "query", "in": "query", "type": "string", "maxLength": 200},
                    {"name": "subject", "in": "query", "type": "string", "description": "Catalog subject id"},
                    {"name": "medium", "in": "query", "type": "string", "enum": ["sinhala", "english", "tamil"]},
                    {"name": "documentType", "in": "query", "type": "string", "enum": ["book", "short_note", "paper"]},
                    {"name": "sortBy", "in": "query", "type": "string", "enum": ["newest", "downloads", "upvotes", "title-asc", "title-desc"]},
                    {"name": "limit", "in": "query", "type": "integer", "minimum": 1, "maximum": 50, "default": 20},
                    {"name": "offset", "in": "query", "type": "integer", "minimum": 0, "default": 0}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SearchResponse"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Search unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List catalog subjects",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string", "description": "Return only subjects matching this text"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/failed-searches": {
            "get": {
                "tags": ["Failed Searches"],
                "summary": "List zero-result queries by frequency",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "minCount", "in": "query", "type": "integer", "minimum": 0},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer", "minimum": 0, "maximum": 200},
                    {"name": "offset", "in": "query", "type": "integer", "minimum": 0}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/failed-searches/export": {
            "get": {
                "tags": ["Failed Searches"],
                "summary": "Export zero-result queries",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"},
                    {"name": "minCount", "in": "query", "type": "integer", "minimum": 0},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/failed-searches/{id}": {
            "delete": {
                "tags": ["Failed Searches"],
                "summary": "Dismiss a zero-result query",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Dismissed"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "SearchResult": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "uploaderName": {"type": "string"},
                "uploaderAvatar": {"type": "string", "x-nullable": true},
                "subject": {"type": "string"},
                "medium": {"type": "string"},
                "type": {"type": "string"},
                "upvotes": {"type": "integer"},
                "downvotes": {"type": "integer"},
                "views": {"type": "integer"},
                "downloads": {"type": "integer"},
                "createdAt": {"type": "string", "format": "date-time"},
                "filePath": {"type": "string"}
            }
        },
        "SearchPage": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/SearchResult"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "hasMore": {"type": "boolean"}
            }
        },
        "SearchResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"$ref": "#/definitions/SearchPage"},
                "meta": {"type": "object"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "code": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
