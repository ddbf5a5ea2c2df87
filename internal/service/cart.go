package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmarkhas/shop_backend/internal/domain"
	"github.com/dmarkhas/shop_backend/internal/models"
	"github.com/dmarkhas/shop_backend/internal/repo"
	"github.com/dmarkhas/shop_backend/internal/transport"
)

// CartService coordinates cart mutations against product stock. Every
// mutation is a single repo transaction, so a failed stock reservation never
// leaves a cart write behind and vice versa.
type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]transport.CartLine, error) {
	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, userID uuid.UUID, req transport.AddToCartRequest) (*models.CartItem, error) {
	if req.ProductID == uuid.Nil {
		return nil, fmt.Errorf("product_id required: %w", domain.ErrValidation)
	}
	if req.Quantity == 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", domain.ErrValidation)
	}
	return s.Repo.AddToCart(ctx, userID, req.ProductID, req.Quantity)
}

func (s *CartService) IncreaseItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("product_id required: %w", domain.ErrValidation)
	}
	return s.Repo.IncreaseItem(ctx, userID, productID)
}

func (s *CartService) DecreaseItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, bool, error) {
	if productID == uuid.Nil {
		return nil, false, fmt.Errorf("product_id required: %w", domain.ErrValidation)
	}
	return s.Repo.DecreaseItem(ctx, userID, productID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return fmt.Errorf("product_id required: %w", domain.ErrValidation)
	}
	return s.Repo.RemoveItem(ctx, userID, productID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.Repo.ClearCart(ctx, userID)
}
