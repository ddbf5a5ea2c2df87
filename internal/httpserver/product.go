package httpserver

import (
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dmarkhas/shop_backend/internal/logging"
	"github.com/dmarkhas/shop_backend/internal/middleware/auth"
	"github.com/dmarkhas/shop_backend/internal/mykafka"
	"github.com/dmarkhas/shop_backend/internal/service"
	"github.com/dmarkhas/shop_backend/internal/transport"
)

type ProductHTTP struct {
	Svc    *service.CatalogService
	Events *mykafka.Producer
}

func productForm(c echo.Context) transport.ProductForm {
	qty, _ := strconv.ParseUint(c.FormValue("quantity"), 10, 32)
	price, _ := strconv.ParseFloat(c.FormValue("price"), 64)
	return transport.ProductForm{
		Name:     c.FormValue("name"),
		Details:  c.FormValue("details"),
		Quantity: uint(qty),
		Category: c.FormValue("category"),
		Price:    price,
	}
}

// formImage returns the uploaded "file" part, or a nil reader when the part
// is absent.
func formImage(c echo.Context) (io.Reader, func(), error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { f.Close() }, nil
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	sellerID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	file, cleanup, err := formImage(c)
	if err != nil {
		l.Error("create_product_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid file"})
	}
	defer cleanup()

	product, err := h.Svc.CreateProduct(ctx, sellerID, productForm(c), file)
	if err != nil {
		l.Warn("create_product_error", "error", err)
		return errorJSON(c, err)
	}

	publish(c, h.Events, mykafka.TopicProductEvents, sellerID.String(), map[string]any{
		"type":      "product_created",
		"userID":    sellerID,
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("product_created", "product_id", product.ID)
	return c.JSON(http.StatusCreated, echo.Map{"message": "Product uploaded successfully", "product": product})
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	sellerID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	file, cleanup, err := formImage(c)
	if err != nil {
		l.Error("update_product_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid file"})
	}
	defer cleanup()

	product, err := h.Svc.UpdateProduct(ctx, sellerID, id, productForm(c), file)
	if err != nil {
		l.Warn("update_product_error", "product_id", id, "error", err)
		return errorJSON(c, err)
	}

	publish(c, h.Events, mykafka.TopicProductEvents, sellerID.String(), map[string]any{
		"type":      "product_updated",
		"userID":    sellerID,
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Product updated", "product": product})
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	sellerID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.DeleteProduct(ctx, sellerID, id); err != nil {
		l.Warn("delete_product_error", "product_id", id, "error", err)
		return errorJSON(c, err)
	}

	publish(c, h.Events, mykafka.TopicProductEvents, sellerID.String(), map[string]any{
		"type":      "product_deleted",
		"userID":    sellerID,
		"productID": id,
	})

	l.Info("product_deleted", "product_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted"})
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.listing")

	views, err := h.Svc.ListProducts(ctx)
	if err != nil {
		l.Error("list_products_error", "error", err)
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *ProductHTTP) SellerProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.seller")

	sellerID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	items, err := h.Svc.SellerProducts(ctx, sellerID)
	if err != nil {
		l.Error("seller_products_error", "error", err)
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
