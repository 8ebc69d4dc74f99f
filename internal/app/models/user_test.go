package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserHasRole(t *testing.T) {
	user := &User{Roles: []string{RoleStudent, RoleJury}}

	assert.True(t, user.HasRole(RoleStudent))
	assert.True(t, user.HasRole(RoleJury))
	assert.False(t, user.HasRole(RoleAdmin))
	assert.False(t, (&User{}).HasRole(RoleStudent))
}
