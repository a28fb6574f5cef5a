package model

// Role is the closed set of session roles. It replaces the loose
// string tag the login flow would otherwise carry around; role-gated
// code switches exhaustively over these constants.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleExhibitor Role = "EXHIBITOR"
	RoleSuperuser Role = "SUPERUSER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleExhibitor, RoleSuperuser:
		return true
	}
	return false
}

// Session describes an authenticated caller as reconstructed from the
// access token. ExhibitorID is set only for the EXHIBITOR role; admin
// and superuser sessions are not tied to an account record.
type Session struct {
	Role        Role   `json:"role"`
	Name        string `json:"name"`
	ExhibitorID string `json:"exhibitorId,omitempty"`
}
