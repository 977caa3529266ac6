package models

import "github.com/golang-jwt/jwt/v5"

// Roles carried in the "role" claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Claims represents the JWT claims issued by the identity provider.
type Claims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Role                 string `json:"role"` // "user" or "admin"
	Email                string `json:"email,omitempty"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *Claims) GetUserID() string {
	return c.Subject
}

// Actor is the authenticated caller of an operation.
// The zero value is an anonymous caller.
type Actor struct {
	UserID string
	Role   string
}

// ActorFromClaims builds an Actor, defaulting unknown roles to RoleUser.
func ActorFromClaims(c *Claims) Actor {
	role := c.Role
	if role != RoleAdmin {
		role = RoleUser
	}
	return Actor{UserID: c.Subject, Role: role}
}

// IsAuthenticated reports whether the actor carries an identity.
func (a Actor) IsAuthenticated() bool {
	return a.UserID != ""
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.IsAuthenticated() && a.Role == RoleAdmin
}
