package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmarkhas/shop_backend/internal/logging"
	"github.com/dmarkhas/shop_backend/internal/mykafka"
	"github.com/dmarkhas/shop_backend/internal/service"
	"github.com/dmarkhas/shop_backend/internal/transport"
)

type AuthHTTP struct {
	Svc    *service.AuthService
	Events *mykafka.Producer
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	member, err := h.Svc.Signup(ctx, req)
	if err != nil {
		l.Warn("signup_error", "error", err)
		return errorJSON(c, err)
	}

	publish(c, h.Events, mykafka.TopicUserEvents, member.ID.String(), map[string]any{
		"type":   "user_registered",
		"userID": member.ID,
		"email":  member.Email,
	})

	l.Info("user_registered", "user_id", member.ID)
	return c.JSON(http.StatusCreated, echo.Map{"message": "User registered successfully"})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	signed, member, err := h.Svc.Login(ctx, req)
	if err != nil {
		l.Warn("login_error", "error", err)
		return errorJSON(c, err)
	}

	publish(c, h.Events, mykafka.TopicUserEvents, member.ID.String(), map[string]any{
		"type":   "user_logged_in",
		"userID": member.ID,
	})

	l.Info("user_logged_in", "user_id", member.ID)
	return c.JSON(http.StatusOK, transport.LoginResponse{Token: signed, User: member})
}
