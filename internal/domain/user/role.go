package user

import "fmt"

// Role is fixed when the account is created.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAdopter Role = "adopter"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleAdopter
}

// ParseRole converts a stored string to a Role.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid user role: %s", s)
	}
	return role, nil
}
