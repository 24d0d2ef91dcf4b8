// Package session identifies anonymous storefront visitors so their cart
// survives between requests.
package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderName carries the session id for API clients
	HeaderName = "X-Session-ID"

	// CookieName carries the session id for browsers
	CookieName = "momshop_session"

	cookieMaxAge = 60 * 60 * 24 * 30
)

// Middleware resolves the session id from the X-Session-ID header or the
// session cookie, minting a new one when neither holds a valid id. The id
// is echoed back in both the header and the cookie.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := resolve(c)

		c.Header(HeaderName, sessionID)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, sessionID, cookieMaxAge, "/", "", false, true)

		c.Set(GinKey, sessionID)
		c.Request = c.Request.WithContext(WithSessionID(c.Request.Context(), sessionID))

		c.Next()
	}
}

func resolve(c *gin.Context) string {
	if id := c.GetHeader(HeaderName); valid(id) {
		return id
	}
	if id, err := c.Cookie(CookieName); err == nil && valid(id) {
		return id
	}
	return uuid.New().String()
}

func valid(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
