package models

import (
	"fmt"
	"slices"
	"strings"
)

// Role is the role an authenticated principal acts under
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleOrganizer   Role = "ORGANIZER"
	RoleBoard       Role = "BOARD"
	RoleTallyMaster Role = "TALLY_MASTER"
	RoleAuditor     Role = "AUDITOR"
	RoleJudge       Role = "JUDGE"
)

// AllRoles lists every known role in seniority order.
var AllRoles = []Role{RoleAdmin, RoleOrganizer, RoleBoard, RoleTallyMaster, RoleAuditor, RoleJudge}

// ParseRole accepts a role name in any case, e.g. "tally_master".
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return slices.Contains(AllRoles, r)
}

func (r Role) String() string {
	return string(r)
}

// RoleSet is an ordered, duplicate-free list of roles
type RoleSet []Role

// NewRoleSet builds a set from roles, dropping duplicates and keeping the
// first-seen order.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, 0, len(roles))
	for _, r := range roles {
		if !set.Contains(r) {
			set = append(set, r)
		}
	}
	return set
}

// Contains reports whether r is in the set
func (s RoleSet) Contains(r Role) bool {
	return slices.Contains(s, r)
}

// Missing returns the roles of s not present in have.
func (s RoleSet) Missing(have []Role) []Role {
	missing := []Role{}
	for _, r := range s {
		if !slices.Contains(have, r) {
			missing = append(missing, r)
		}
	}
	return missing
}

// SatisfiedBy reports whether every role of s appears in have.
func (s RoleSet) SatisfiedBy(have []Role) bool {
	return len(s.Missing(have)) == 0
}

func (s RoleSet) String() string {
	names := make([]string, len(s))
	for i, r := range s {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
