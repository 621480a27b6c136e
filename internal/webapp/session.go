package webapp

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys carried in the browser cookie.
const (
	sessionKeyLoggedIn = "logged_in"
	sessionKeyUserID   = "user_id"
	sessionKeyUsername = "username"
)

// Flash categories rendered by the templates.
const (
	flashSuccess = "success"
	flashDanger  = "danger"
)

// Flash is a one-shot message surfaced on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// RequireLogin guards a route behind an authenticated session. Anonymous
// visitors get a flash and a redirect to the sign-in page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if loggedIn, ok := session.Get(sessionKeyLoggedIn).(bool); !ok || !loggedIn {
			session.AddFlash("Unauthorized, Please login first!", flashDanger)
			_ = session.Save()
			c.Redirect(http.StatusFound, "/sign-in")
			c.Abort()
			return
		}
		c.Next()
	}
}

// sessionUserID returns the authenticated user's id, or 0 when absent.
func sessionUserID(c *gin.Context) uint {
	if id, ok := sessions.Default(c).Get(sessionKeyUserID).(uint); ok {
		return id
	}
	return 0
}

// sessionUsername returns the authenticated user's name, or "" when absent.
func sessionUsername(c *gin.Context) string {
	if name, ok := sessions.Default(c).Get(sessionKeyUsername).(string); ok {
		return name
	}
	return ""
}

// flash queues a one-shot message for the next rendered page.
func flash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, category)
	_ = session.Save()
}

// consumeFlashes drains queued flashes so the current page can render them.
func consumeFlashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	var flashes []Flash
	for _, category := range []string{flashSuccess, flashDanger} {
		for _, raw := range session.Flashes(category) {
			if message, ok := raw.(string); ok {
				flashes = append(flashes, Flash{Category: category, Message: message})
			}
		}
	}
	_ = session.Save()
	return flashes
}
