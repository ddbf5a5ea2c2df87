package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dmarkhas/shop_backend/internal/domain"
	"github.com/dmarkhas/shop_backend/internal/service/token"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxName   = "name"
)

type Middleware struct {
	Tokens *token.Service
}

// RequireAuth validates the bearer token and stores the caller's identity in
// the request context.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "No token, authorization denied"})
		}

		claims, err := m.Tokens.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token is not valid"})
		}

		c.Set(ctxUserID, claims.UserID.String())
		c.Set(ctxRole, claims.Role)
		c.Set(ctxName, claims.Name)
		return next(c)
	}
}

// RequireSeller gates seller-only routes. Must run after RequireAuth.
func (m *Middleware) RequireSeller(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if Role(c) != domain.RoleSeller {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied, only sellers allowed"})
		}
		return next(c)
	}
}

func UserID(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get(ctxUserID).(string)
	if !ok || s == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}

func Role(c echo.Context) string {
	s, _ := c.Get(ctxRole).(string)
	return s
}
