package models

import (
	"fmt"
	"strings"
)

// Role is a capability tier. Tiers are totally ordered:
// user < broker < admin < superadmin.
type Role string

const (
	RoleUser       Role = "user"
	RoleBroker     Role = "broker"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

var roleRanks = map[Role]int{
	RoleUser:       1,
	RoleBroker:     2,
	RoleAdmin:      3,
	RoleSuperAdmin: 4,
}

// Roles lists every tier from lowest to highest.
func Roles() []Role {
	return []Role{RoleUser, RoleBroker, RoleAdmin, RoleSuperAdmin}
}

// ParseRole converts a stored or submitted value into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := roleRanks[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the four tiers.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Rank returns the position of r in the tier order. Unknown roles rank 0,
// below every real tier.
func (r Role) Rank() int {
	return roleRanks[r]
}

// AtLeast reports whether r is the same tier as min or above it.
func (r Role) AtLeast(min Role) bool {
	return r.Valid() && r.Rank() >= min.Rank()
}

// Requestable reports whether users may ask to be promoted to r.
// superadmin is granted only through the allow-list.
func (r Role) Requestable() bool {
	return r == RoleBroker || r == RoleAdmin
}
