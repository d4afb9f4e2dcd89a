package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"telemart/internal/usecase"
)

type AuthMiddleware struct {
	verifier usecase.TokenVerifier
}

func NewAuthMiddleware(verifier usecase.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setClaims(c echo.Context, claims *usecase.TokenClaims) {
	c.Set("uid", claims.UID)
	c.Set("email", claims.Email)
	c.Set("name", claims.Name)
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		token, ok := bearerToken(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		claims, err := m.verifier.VerifyToken(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		setClaims(c, claims)
		return next(c)
	}
}

// OptionalAuth sets the caller's identity when a valid token is present and
// lets anonymous requests through otherwise.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return next(c)
		}
		if claims, err := m.verifier.VerifyToken(c.Request().Context(), token); err == nil {
			setClaims(c, claims)
		}
		return next(c)
	}
}

// ClaimsFromRequest resolves the caller from the bearer header or, for
// websocket handshakes where browsers cannot set headers, the token query
// parameter.
func (m *AuthMiddleware) ClaimsFromRequest(c echo.Context) (*usecase.TokenClaims, error) {
	token, ok := bearerToken(c)
	if !ok {
		token = c.QueryParam("token")
	}
	if token == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	claims, err := m.verifier.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}
	return claims, nil
}
