package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" tally_master ")
	require.NoError(t, err)
	assert.Equal(t, RoleTallyMaster, r)

	_, err = ParseRole("janitor")
	assert.Error(t, err)
}

func TestRoleSet(t *testing.T) {
	set := NewRoleSet(RoleAuditor, RoleBoard, RoleAuditor)
	assert.Equal(t, RoleSet{RoleAuditor, RoleBoard}, set)
	assert.True(t, set.Contains(RoleBoard))
	assert.False(t, set.Contains(RoleJudge))

	assert.Equal(t, []Role{RoleBoard}, set.Missing([]Role{RoleAuditor}))
	assert.False(t, set.SatisfiedBy([]Role{RoleAuditor}))
	assert.True(t, set.SatisfiedBy([]Role{RoleBoard, RoleAuditor, RoleJudge}))
	assert.Equal(t, "AUDITOR, BOARD", set.String())

	assert.True(t, RoleSet{}.SatisfiedBy(nil))
}
