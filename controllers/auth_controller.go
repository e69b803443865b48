package controllers

import (
	"net/http"

	"vastra-api/middleware"
	"vastra-api/services"
	"vastra-api/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const stateCookieName = "oauth_state"
const stateCookieMaxAge = 600

// AuthCookieConfig carries the cookie attributes the auth flow needs.
type AuthCookieConfig struct {
	Domain      string
	Secure      bool
	FrontendURL string
}

type AuthController struct {
	svc    services.AuthService
	store  session.Store
	cookie AuthCookieConfig
}

func NewAuthController(svc services.AuthService, store session.Store, cookie AuthCookieConfig) *AuthController {
	return &AuthController{svc: svc, store: store, cookie: cookie}
}

// GoogleLogin redirects the browser to the Google consent screen with a
// freshly minted state value.
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, state, stateCookieMaxAge, "/", ac.cookie.Domain, ac.cookie.Secure, true)
	c.Redirect(http.StatusFound, ac.svc.LoginURL(state))
}

// GoogleCallback finishes the code flow: verifies state, finds or creates the
// user, starts a session and sends the browser back to the storefront.
func (ac *AuthController) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	cookieState, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || state != cookieState {
		zap.L().Warn("OAuth state mismatch", zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	// one-shot cookie
	c.SetCookie(stateCookieName, "", -1, "/", ac.cookie.Domain, ac.cookie.Secure, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	user, svcErr := ac.svc.HandleCallback(c.Request.Context(), code)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	sessionID, err := ac.store.Create(c.Request.Context(), user.ID)
	if err != nil {
		zap.L().Error("Failed to create session", zap.String("user_id", user.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign-in failed"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, sessionID, int(session.TTL.Seconds()), "/", ac.cookie.Domain, ac.cookie.Secure, true)
	c.Redirect(http.StatusFound, ac.cookie.FrontendURL)
}

// Logout destroys the session behind the cookie
func (ac *AuthController) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(session.CookieName)
	if err != nil || sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not logged in"})
		return
	}

	if err := ac.store.Destroy(c.Request.Context(), sessionID); err != nil {
		zap.L().Error("Failed to destroy session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	c.SetCookie(session.CookieName, "", -1, "/", ac.cookie.Domain, ac.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the profile of the session user
func (ac *AuthController) Me(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, svcErr := ac.svc.CurrentUser(c.Request.Context(), userID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, user)
}
