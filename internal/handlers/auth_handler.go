package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-ai/fintrack/internal/auth"
)

const cookieMaxAge = 3600

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register creates an identity on the hosted service and starts a session.
func (h *Handler) Register(c *gin.Context) {
	if h.auth == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": demoAlert})
		return
	}

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	session, err := h.auth.SignUp(req.Email, req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("sign-up failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign-up failed"})
		return
	}

	c.SetCookie(auth.CookieName, session.AccessToken, cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusCreated, session)
}

// Login exchanges email/password for a session.
func (h *Handler) Login(c *gin.Context) {
	if h.auth == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": demoAlert})
		return
	}

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	session, err := h.auth.SignIn(req.Email, req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("sign-in failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	c.SetCookie(auth.CookieName, session.AccessToken, cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, session)
}

// Logout revokes the session and clears the cookie. Revocation failures are
// logged, not surfaced; the cookie is gone either way.
func (h *Handler) Logout(c *gin.Context) {
	if h.auth != nil {
		if token, err := c.Cookie(auth.CookieName); err == nil && token != "" {
			if err := h.auth.SignOut(token); err != nil {
				h.log.Warn().Err(err).Msg("sign-out failed")
			}
		}
	}
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
