package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmarkhas/shop_backend/internal/domain"
	"github.com/dmarkhas/shop_backend/internal/logging"
	"github.com/dmarkhas/shop_backend/internal/mykafka"
)

// errorJSON maps domain errors onto the response taxonomy. Anything outside
// the taxonomy is an unexpected storage failure and stays opaque to the
// caller.
func errorJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInsufficientStock):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	default:
		logging.FromContext(c.Request().Context()).Error("internal_error", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
}

// publish sends a domain event, fire-and-forget. A nil producer disables
// publishing.
func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "topic", topic, "error", err)
	}
}
