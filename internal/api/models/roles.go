package models

import "fmt"

// Role is the closed set of account roles. Anything else is rejected at the
// edges by ParseRole, so code past validation can rely on these three values.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleModerator, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	return string(r)
}
