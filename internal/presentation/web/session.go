package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie names the cookie that keys flash messages.
const SessionCookie = "loans_session"

// sessionID returns the caller's session id, issuing a new cookie when the
// request carries none.
func sessionID(c *gin.Context) string {
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
	return id
}
