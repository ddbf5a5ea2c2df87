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

type CartHTTP struct {
	Svc    *service.CartService
	Events *mykafka.Producer
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	lines, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "error", err)
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": lines})
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	item, err := h.Svc.AddToCart(ctx, userID, req)
	if err != nil {
		l.Warn("add_to_cart_error", "product_id", req.ProductID, "error", err)
		return errorJSON(c, err)
	}

	publish(c, h.Events, mykafka.TopicCartEvents, userID.String(), map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": item.ProductID,
		"quantity":  item.Quantity,
	})

	l.Info("cart_item_added", "product_id", item.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product added to cart", "item": item})
}

func (h *CartHTTP) IncreaseItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.increase")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.CartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	item, err := h.Svc.IncreaseItem(ctx, userID, req.ProductID)
	if err != nil {
		l.Warn("increase_item_error", "product_id", req.ProductID, "error", err)
		return errorJSON(c, err)
	}

	publish(c, h.Events, mykafka.TopicCartEvents, userID.String(), map[string]any{
		"type":      "cart_item_increased",
		"userID":    userID,
		"productID": item.ProductID,
		"quantity":  item.Quantity,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Quantity increased", "item": item})
}

func (h *CartHTTP) DecreaseItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.decrease")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.CartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	item, removed, err := h.Svc.DecreaseItem(ctx, userID, req.ProductID)
	if err != nil {
		l.Warn("decrease_item_error", "product_id", req.ProductID, "error", err)
		return errorJSON(c, err)
	}

	event := map[string]any{
		"type":      "cart_item_decreased",
		"userID":    userID,
		"productID": req.ProductID,
	}
	if removed {
		event["removed"] = true
	} else {
		event["quantity"] = item.Quantity
	}
	publish(c, h.Events, mykafka.TopicCartEvents, userID.String(), event)

	if removed {
		return c.JSON(http.StatusOK, echo.Map{"message": "Quantity decreased", "removed": req.ProductID})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Quantity decreased", "item": item})
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.CartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	if err := h.Svc.RemoveItem(ctx, userID, req.ProductID); err != nil {
		l.Warn("remove_item_error", "product_id", req.ProductID, "error", err)
		return errorJSON(c, err)
	}

	publish(c, h.Events, mykafka.TopicCartEvents, userID.String(), map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": req.ProductID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Item removed"})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		l.Error("clear_cart_error", "error", err)
		return errorJSON(c, err)
	}

	publish(c, h.Events, mykafka.TopicCartEvents, userID.String(), map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})

	l.Info("cart_cleared")
	return c.JSON(http.StatusOK, echo.Map{"message": "Cart cleared"})
}
