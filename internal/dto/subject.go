package dto

// SubjectView describes a catalog entry for filter menus.
type SubjectView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Aliases    []string `json:"aliases"`
	Literature bool     `json:"literature"`
}
