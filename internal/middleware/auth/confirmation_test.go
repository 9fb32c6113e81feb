package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yamdb/internal/microservices/http-api/models"
)

func newUser() *models.User {
	return &models.User{ID: "7f1c9f0e-4f6e-4d3c-9a55-1a2b3c4d5e6f", Username: "bob", Email: "bob@example.com"}
}

func TestCodeGenerator_RoundTrip(t *testing.T) {
	g := NewCodeGenerator("secret", time.Hour)
	u := newUser()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	code := g.Make(u, now)
	assert.NoError(t, g.Check(u, code, now.Add(30*time.Minute)))
}

func TestCodeGenerator_Expired(t *testing.T) {
	g := NewCodeGenerator("secret", time.Hour)
	u := newUser()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	code := g.Make(u, now)
	assert.ErrorIs(t, g.Check(u, code, now.Add(61*time.Minute)), ErrCodeExpired)
}

func TestCodeGenerator_InvalidatedByStateChange(t *testing.T) {
	g := NewCodeGenerator("secret", time.Hour)
	u := newUser()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	code := g.Make(u, now)

	login := now.Add(time.Minute)
	u.LastLogin = &login
	assert.ErrorIs(t, g.Check(u, code, now), ErrCodeMismatch)

	u = newUser()
	u.Email = "other@example.com"
	assert.ErrorIs(t, g.Check(u, code, now), ErrCodeMismatch)
}

func TestCodeGenerator_EmailCaseDoesNotMatter(t *testing.T) {
	g := NewCodeGenerator("secret", time.Hour)
	u := newUser()
	now := time.Now()
	code := g.Make(u, now)

	u.Email = "Bob@Example.com"
	assert.NoError(t, g.Check(u, code, now))
}

func TestCodeGenerator_Malformed(t *testing.T) {
	g := NewCodeGenerator("secret", time.Hour)
	u := newUser()

	for _, code := range []string{"", "nodash", "zz-short", "!!!-0123456789abcdef0123"} {
		assert.ErrorIs(t, g.Check(u, code, time.Now()), ErrMalformedCode, code)
	}
}

func TestCodeGenerator_DifferentSecret(t *testing.T) {
	u := newUser()
	now := time.Now()
	code := NewCodeGenerator("secret-a", time.Hour).Make(u, now)

	assert.ErrorIs(t, NewCodeGenerator("secret-b", time.Hour).Check(u, code, now), ErrCodeMismatch)
}

func TestHashCode(t *testing.T) {
	hash, err := HashCode("abc-123")
	require.NoError(t, err)
	assert.NotEqual(t, "abc-123", hash)
	assert.NoError(t, VerifyCode(hash, "abc-123"))
	assert.Error(t, VerifyCode(hash, "abc-124"))
}
