package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"yamdb/internal/microservices/http-api/models"
)

var (
	anon      = Subject{}
	user      = Subject{Authenticated: true, Role: models.RoleUser}
	moderator = Subject{Authenticated: true, Role: models.RoleModerator}
	admin     = Subject{Authenticated: true, Role: models.RoleAdmin}
	superuser = Subject{Authenticated: true, Role: models.RoleUser, Superuser: true}
)

func TestDecide_Catalog(t *testing.T) {
	for _, s := range []Subject{anon, user, moderator, admin} {
		assert.Equal(t, Allow, Decide(s, Catalog, Read, false))
	}
	for _, act := range []Action{Create, Update, Delete} {
		assert.Equal(t, Unauthenticated, Decide(anon, Catalog, act, false))
		assert.Equal(t, Forbidden, Decide(user, Catalog, act, false))
		assert.Equal(t, Forbidden, Decide(moderator, Catalog, act, false))
		assert.Equal(t, Allow, Decide(admin, Catalog, act, false))
		assert.Equal(t, Allow, Decide(superuser, Catalog, act, false))
	}
}

func TestDecide_Content(t *testing.T) {
	assert.Equal(t, Allow, Decide(anon, Content, Read, false))
	assert.Equal(t, Unauthenticated, Decide(anon, Content, Create, false))
	assert.Equal(t, Allow, Decide(user, Content, Create, false))

	for _, act := range []Action{Update, Delete} {
		assert.Equal(t, Unauthenticated, Decide(anon, Content, act, false))
		assert.Equal(t, Forbidden, Decide(user, Content, act, false), "stranger")
		assert.Equal(t, Allow, Decide(user, Content, act, true), "author")
		assert.Equal(t, Allow, Decide(moderator, Content, act, false))
		assert.Equal(t, Allow, Decide(admin, Content, act, false))
	}
}

func TestDecide_UsersAndProfile(t *testing.T) {
	assert.Equal(t, Unauthenticated, Decide(anon, Users, Read, false))
	assert.Equal(t, Forbidden, Decide(moderator, Users, Read, false))
	assert.Equal(t, Allow, Decide(admin, Users, Delete, false))
	assert.Equal(t, Allow, Decide(superuser, Users, Create, false))

	assert.Equal(t, Unauthenticated, Decide(anon, Profile, Read, false))
	assert.Equal(t, Allow, Decide(user, Profile, Update, false))
}

func TestSubjectOf(t *testing.T) {
	assert.Equal(t, anon, SubjectOf(nil))
	s := SubjectOf(&models.User{Role: models.RoleModerator})
	assert.True(t, s.Authenticated)
	assert.Equal(t, models.RoleModerator, s.Role)
}
