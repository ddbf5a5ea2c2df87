package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmarkhas/shop_backend/internal/logging"
	"github.com/dmarkhas/shop_backend/internal/middleware/auth"
	"github.com/dmarkhas/shop_backend/internal/mykafka"
	"github.com/dmarkhas/shop_backend/internal/service"
	"github.com/dmarkhas/shop_backend/internal/transport"
)

type ProfileHTTP struct {
	Svc    *service.ProfileService
	Events *mykafka.Producer
}

func (h *ProfileHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	member, err := h.Svc.GetProfile(ctx, userID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": member})
}

func (h *ProfileHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	member, err := h.Svc.UpdateName(ctx, userID, req.Name)
	if err != nil {
		l.Warn("update_profile_error", "error", err)
		return errorJSON(c, err)
	}

	publish(c, h.Events, mykafka.TopicUserEvents, userID.String(), map[string]any{
		"type":   "profile_updated",
		"userID": userID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Name updated successfully", "user": member})
}

func (h *ProfileHTTP) UpdateProfilePic(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.update_pic")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	file, cleanup, err := formImage(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid file"})
	}
	defer cleanup()

	member, err := h.Svc.UpdateProfilePic(ctx, userID, file)
	if err != nil {
		l.Warn("update_profile_pic_error", "error", err)
		return errorJSON(c, err)
	}

	publish(c, h.Events, mykafka.TopicUserEvents, userID.String(), map[string]any{
		"type":   "profile_pic_updated",
		"userID": userID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Profile picture updated successfully", "user": member})
}
