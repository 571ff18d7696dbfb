// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/your-org/viber-store/internal/config"
	"github.com/your-org/viber-store/internal/domain/session"
)

const ownerKeyContextKey = "owner_key"

// LoginPath is where unauthenticated requests are sent
const LoginPath = "/api/v1/auth/login"

// RequireLogin gates a route group on a valid session. Unauthenticated
// requests are redirected to the login entry point with the requested
// path preserved in the next parameter, so a successful login can resume
// there. A session store failure is a server fault and must not bounce a
// logged-in user back to login.
func RequireLogin(cfg *config.Config, bridge *session.Bridge) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.Session.CookieName)
		if err != nil {
			redirectToLogin(c)
			return
		}

		ownerKey, err := bridge.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrUnauthenticated) {
				redirectToLogin(c)
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to resolve session",
			})
			return
		}

		c.Set(ownerKeyContextKey, ownerKey)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	next := url.QueryEscape(c.Request.URL.Path)
	c.Redirect(http.StatusFound, LoginPath+"?next="+next)
	c.Abort()
}

// GetOwnerKeyFromContext extracts the cart owner key from gin context
func GetOwnerKeyFromContext(c *gin.Context) (string, bool) {
	ownerKey, exists := c.Get(ownerKeyContextKey)
	if !exists {
		return "", false
	}
	return ownerKey.(string), true
}
