package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"clientdesk/internal/auth"
	errs "clientdesk/internal/errors"
	"clientdesk/internal/service"
)

// AuthHandler handles login, logout and the root redirect.
type AuthHandler struct {
	authService service.AuthService
	sessions    *auth.SessionService
	log         zerolog.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(authService service.AuthService, sessions *auth.SessionService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, log: log}
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// Index redirects to the dashboard when a session is present, otherwise to
// the login entry point.
func (h *AuthHandler) Index(c echo.Context) error {
	if cookie, err := c.Cookie(auth.CookieName); err == nil {
		if _, err := h.sessions.Verify(cookie.Value); err == nil {
			return c.Redirect(http.StatusFound, "/api/dashboard")
		}
	}
	return c.Redirect(http.StatusFound, auth.LoginPath)
}

// Login godoc
// @Summary Authenticate and start a session
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} errors.MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "username and password are required"})
	}

	user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, h.log, err, "login failed")
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		return respondError(c, h.log, err, "session issue failed")
	}
	c.SetCookie(h.sessions.Cookie(token))
	return respondMessage(c, "login successful")
}

// Logout clears the session cookie and returns to the login entry point.
func (h *AuthHandler) Logout(c echo.Context) error {
	username := "unknown"
	if cookie, err := c.Cookie(auth.CookieName); err == nil {
		if sess, err := h.sessions.Verify(cookie.Value); err == nil {
			username = sess.Username
		}
	}
	h.log.Info().Str("username", username).Msg("user logged out")
	c.SetCookie(h.sessions.ExpiredCookie())
	return c.Redirect(http.StatusFound, auth.LoginPath)
}
