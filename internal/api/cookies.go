package api

import (
	"net/http" // Cookie attributes
	"time"     // Cookie lifetime

	"money_tracker/internal/middleware" // Cookie name

	"github.com/gin-gonic/gin" // Gin web framework
)

// cookieTokens is an auth.TokenStore backed by the session cookie
type cookieTokens struct {
	c      *gin.Context
	secure bool
	token  string
}

func newCookieTokens(c *gin.Context, secure bool) *cookieTokens {
	token, _ := c.Cookie(middleware.SessionCookie) // Empty when no cookie was sent
	return &cookieTokens{c: c, secure: secure, token: token}
}

func (t *cookieTokens) Token() string {
	return t.token
}

func (t *cookieTokens) Store(token string, expiresAt time.Time) {
	t.token = token
	maxAge := int(time.Until(expiresAt).Seconds()) // Cookie expires with the token
	t.c.SetSameSite(http.SameSiteLaxMode)
	t.c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", t.secure, true)
}

func (t *cookieTokens) Clear() {
	t.token = ""
	t.c.SetSameSite(http.SameSiteLaxMode)
	t.c.SetCookie(middleware.SessionCookie, "", -1, "/", "", t.secure, true) // Negative max age deletes it
}
