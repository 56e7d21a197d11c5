package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	tokenContextKey   = "session_token"
	sessionContextKey = "session"
	// LoginPath is where unauthenticated requests are sent.
	LoginPath = "/login"
)

// RequireSession guards a route group: it verifies the session cookie,
// stores the typed Session in the request context, and redirects to the
// login entry point before any handler work when the session is absent or
// invalid.
func RequireSession(svc *SessionService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  svc.secret,
		TokenLookup: "cookie:" + CookieName,
		ContextKey:  tokenContextKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(SessionClaims)
		},
		SuccessHandler: func(c echo.Context) {
			if token, ok := c.Get(tokenContextKey).(*jwt.Token); ok {
				if claims, ok := token.Claims.(*SessionClaims); ok {
					c.Set(sessionContextKey, &claims.Session)
				}
			}
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return c.Redirect(http.StatusFound, LoginPath)
		},
	})
}

// RequireRole rejects requests whose session role is not one of the allowed
// roles. Unlike the session check this is a hard 403, not a redirect.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if sess == nil {
				return c.Redirect(http.StatusFound, LoginPath)
			}
			if _, ok := allowed[sess.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}

// CurrentSession returns the typed session placed in the context by
// RequireSession, or nil when the request is unauthenticated.
func CurrentSession(c echo.Context) *Session {
	sess, _ := c.Get(sessionContextKey).(*Session)
	return sess
}

// SetSession stores a session in the request context. Exposed for tests.
func SetSession(c echo.Context, sess *Session) {
	c.Set(sessionContextKey, sess)
}
