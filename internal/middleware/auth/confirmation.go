package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"yamdb/internal/microservices/http-api/models"
)

var (
	ErrMalformedCode = errors.New("malformed confirmation code")
	ErrCodeExpired   = errors.New("confirmation code expired")
	ErrCodeMismatch  = errors.New("confirmation code does not match")
)

// digestLen is the number of hex characters of the HMAC kept in a code.
const digestLen = 20

// CodeGenerator issues confirmation codes of the form "<base36 unix time>-<hmac>".
// The HMAC covers the user's id, username, email and last login, so any change to
// those fields (including a successful token exchange, which stamps last_login)
// invalidates every code issued before it.
type CodeGenerator struct {
	secret []byte
	ttl    time.Duration
}

func NewCodeGenerator(secret string, ttl time.Duration) *CodeGenerator {
	return &CodeGenerator{secret: []byte(secret), ttl: ttl}
}

func (g *CodeGenerator) TTL() time.Duration {
	return g.ttl
}

// Make returns a code for u valid from now until now+TTL.
func (g *CodeGenerator) Make(u *models.User, now time.Time) string {
	ts := now.Unix()
	return strconv.FormatInt(ts, 36) + "-" + g.digest(u, ts)
}

// Check verifies code against u's current state at time now.
func (g *CodeGenerator) Check(u *models.User, code string, now time.Time) error {
	tsPart, digest, ok := strings.Cut(code, "-")
	if !ok || len(digest) != digestLen {
		return ErrMalformedCode
	}
	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return ErrMalformedCode
	}

	if !hmac.Equal([]byte(digest), []byte(g.digest(u, ts))) {
		return ErrCodeMismatch
	}

	issued := time.Unix(ts, 0)
	if now.Before(issued.Add(-time.Minute)) || now.After(issued.Add(g.ttl)) {
		return ErrCodeExpired
	}
	return nil
}

func (g *CodeGenerator) digest(u *models.User, ts int64) string {
	var lastLogin string
	if u.LastLogin != nil {
		lastLogin = strconv.FormatInt(u.LastLogin.UTC().UnixNano(), 10)
	}

	mac := hmac.New(sha256.New, g.secret)
	for _, part := range []string{u.ID, u.Username, strings.ToLower(u.Email), lastLogin, strconv.FormatInt(ts, 10)} {
		mac.Write([]byte(part))
		mac.Write([]byte{0})
	}
	return hex.EncodeToString(mac.Sum(nil))[:digestLen]
}
