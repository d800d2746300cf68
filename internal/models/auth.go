package models

import "github.com/golang-jwt/jwt/v5"

// UserRole enumerates roles carried in access tokens.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// JWTClaims are the verified claims of an access token issued by the auth provider.
type JWTClaims struct {
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *JWTClaims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
