package constants

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleRider = "rider"
)

// ValidRoles lists every role an admin may assign to a user.
var ValidRoles = []string{RoleUser, RoleAdmin, RoleRider}

// IsValidRole reports whether role is one of the assignable roles.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
