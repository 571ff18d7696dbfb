// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/viber-store/internal/config"
	"github.com/your-org/viber-store/internal/domain/session"
)

// AuthHandler handles login and logout endpoints
type AuthHandler struct {
	bridge *session.Bridge
	config *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(bridge *session.Bridge, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		bridge: bridge,
		config: cfg,
	}
}

// LoginRequest represents login form data
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Next     string `form:"next" json:"next"`
}

// ShowLogin handles GET /auth/login. It echoes the next target so a login
// form can carry it through the POST.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Log in with any username and password",
		"next":    c.Query("next"),
	})
}

// Login handles POST /auth/login. Any non-empty username/password pair is
// accepted; on success the session cookie is set and the client is
// redirected to the originally requested page.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	token, err := h.bridge.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrMissingCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to establish session",
		})
		return
	}

	h.setSessionCookie(c, token, int(h.config.Session.Lifetime.Seconds()))

	next := req.Next
	if next == "" {
		next = c.Query("next")
	}
	c.Redirect(http.StatusFound, session.SafeNext(next))
}

// Logout handles GET /auth/logout. The session is invalidated; cart lines
// persist keyed by the username.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.logout(c, false)
}

// LogoutClearCart handles GET /auth/logout/clear-cart. The owner's cart is
// emptied before the session is invalidated.
func (h *AuthHandler) LogoutClearCart(c *gin.Context) {
	h.logout(c, true)
}

func (h *AuthHandler) logout(c *gin.Context, clearCart bool) {
	token, _ := c.Cookie(h.config.Session.CookieName)

	if err := h.bridge.Logout(c.Request.Context(), token, clearCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to log out",
		})
		return
	}

	// Expire the cookie regardless of session state
	h.setSessionCookie(c, "", -1)

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(h.config.Session.CookieName, token, maxAge, "/", "", h.config.IsProduction(), true)
}
