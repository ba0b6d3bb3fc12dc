package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

const sessionCookie = "portfolio_session"

// Sessions issues and verifies the signed cookie that identifies a browser
// session. The cookie carries only an id; flashes live server-side.
type Sessions struct {
	codec *securecookie.SecureCookie
	salt  string
}

func NewSessions(secret string) *Sessions {
	codec := securecookie.New([]byte(secret), nil)
	codec.MaxAge(0)
	return &Sessions{codec: codec, salt: secret}
}

// Lookup returns the session id from a valid cookie on the request.
func (s *Sessions) Lookup(c *gin.Context) (string, bool) {
	value, err := c.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	return s.verify(value)
}

// Ensure returns the request's session id, starting a new session when the
// request has none or its cookie fails verification.
func (s *Sessions) Ensure(c *gin.Context) (string, error) {
	if id, ok := s.Lookup(c); ok {
		return id, nil
	}

	id := uuid.New().String()
	value, err := s.sign(id)
	if err != nil {
		return "", err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, value, 0, "/", "", c.Request.TLS != nil, true)
	return id, nil
}

func (s *Sessions) sign(id string) (string, error) {
	value, err := s.codec.Encode(sessionCookie, id)
	if err != nil {
		return "", fmt.Errorf("failed to encode session cookie: %w", err)
	}
	return value, nil
}

func (s *Sessions) verify(value string) (string, bool) {
	var id string
	if err := s.codec.Decode(sessionCookie, value, &id); err != nil || id == "" {
		return "", false
	}
	return id, true
}

// hashClientIP salts the client address with the secret so logs can
// correlate requests without recording raw addresses.
func (s *Sessions) hashClientIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}
