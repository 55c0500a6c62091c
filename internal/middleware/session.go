package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeySessionID is the gin context key holding the browser session ID.
const ContextKeySessionID = "session_id"

// SessionOptions configures the session cookie.
type SessionOptions struct {
	CookieName string
	Secure     bool
}

// Session ensures every request carries a session ID. The cookie has no
// Max-Age, so it ends with the browser session. Values that are not UUIDs
// are replaced.
func Session(opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(opts.CookieName)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.New().String()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     opts.CookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(ContextKeySessionID, sid)
		c.Next()
	}
}

// GetSessionID returns the session ID set by Session, or "".
func GetSessionID(c *gin.Context) string {
	return c.GetString(ContextKeySessionID)
}
