package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Order(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleModerator))
	assert.True(t, RoleModerator.AtLeast(RoleUser))
	assert.True(t, RoleUser.AtLeast(RoleUser))
	assert.False(t, RoleUser.AtLeast(RoleModerator))
	assert.False(t, Role("root").AtLeast(RoleUser))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("moderator")
	assert.NoError(t, err)
	assert.Equal(t, RoleModerator, r)

	_, err = ParseRole("Admin")
	assert.Error(t, err)
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.True(t, (&User{Role: RoleUser, IsSuperuser: true}).IsAdmin())
	assert.False(t, (&User{Role: RoleModerator}).IsAdmin())
}

func TestUser_BeforeCreateDefaults(t *testing.T) {
	u := &User{Username: "bob"}
	assert.NoError(t, u.BeforeCreate(nil))
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, RoleUser, u.Role)
}
