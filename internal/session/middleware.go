package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserKey is the gin context key under which RequireUser stores the
// authenticated user id.
const UserKey = "user"

// RequireUser guards a route group: requests without a valid session are
// redirected to the login page.
func RequireUser(m Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := m.CurrentUser(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(UserKey, userID)
		c.Next()
	}
}
