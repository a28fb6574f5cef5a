package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

	"github.com/targihasta/fair-lottery/internal/model"
)

// SessionKey is the context key under which JWTAuth stores the
// reconstructed model.Session.
const SessionKey = "session"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and reconstructs the caller's session from its claims. The provided
// secret must match the one used when issuing tokens. Handlers behind
// this middleware read the session via CurrentSession(c).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 and our secret; reject any other signing method.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			role, _ := claims["role"].(string)
			sess := model.Session{Role: model.Role(role)}
			if !sess.Role.Valid() {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid role claim"})
			}
			if v, ok := claims["name"].(string); ok {
				sess.Name = v
			}
			// The subject carries the exhibitor id only for exhibitor
			// sessions; admin subjects are the role tag itself.
			if sess.Role == model.RoleExhibitor {
				if v, ok := claims["sub"].(string); ok {
					sess.ExhibitorID = v
				}
			}

			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

// CurrentSession extracts the session stored by JWTAuth. The boolean
// is false when the middleware did not run or stored nothing.
func CurrentSession(c echo.Context) (model.Session, bool) {
	v := c.Get(SessionKey)
	sess, ok := v.(model.Session)
	return sess, ok
}
