package helpers

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the payload the auth collaborator signs into its tokens.
type TokenClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Claims is the authenticated identity handed to handlers through the gin
// context. The core trusts it for identity but enforces capacity and state
// invariants independently of role.
type Claims struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}

func (c *Claims) IsOrganizer() bool {
	return c.Role == "organizer" || c.Role == "committee"
}

func (c *Claims) IsOwner(userID string) bool {
	return c.UserID == userID
}
