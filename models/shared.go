package models

// Roles supplied by the identity provider through the JWT role claim.
const (
	RoleClient = "client"
	RoleMentor = "mentor"
	RoleAdmin  = "admin"
)

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   string
	Role string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
