package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of actor roles. The zero value is not a valid role.
type Role uint8

const (
	RoleManager Role = iota + 1
	RoleSalesAgent
)

// Roles lists every valid role in declaration order.
var Roles = []Role{RoleManager, RoleSalesAgent}

// ParseRole converts a wire name into a Role. "Sales Agent" is the canonical
// spelling; "SalesAgent" is accepted for clients that strip spaces.
func ParseRole(s string) (Role, error) {
	switch strings.TrimSpace(s) {
	case "Manager":
		return RoleManager, nil
	case "Sales Agent", "SalesAgent":
		return RoleSalesAgent, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleManager:
		return "Manager"
	case RoleSalesAgent:
		return "Sales Agent"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleSalesAgent
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// JoinRoles renders roles as a comma separated list of wire names.
func JoinRoles(roles []Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return strings.Join(names, ", ")
}
