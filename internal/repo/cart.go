package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarkhas/shop_backend/internal/domain"
	"github.com/dmarkhas/shop_backend/internal/models"
	"github.com/dmarkhas/shop_backend/internal/transport"
)

// reserveStock is the conditional decrement: one statement that takes qty off
// the product only while enough remains. RowsAffected == 0 means either the
// product does not exist or the stock ran out; the follow-up count tells the
// two apart.
func reserveStock(tx *gorm.DB, productID uuid.UUID, qty uint) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", productID, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var exists int64
	if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("product not found: %w", domain.ErrNotFound)
	}
	return domain.ErrInsufficientStock
}

// releaseStock gives qty back to the product as a single atomic increment.
func releaseStock(tx *gorm.DB, productID uuid.UUID, qty uint) error {
	res := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product not found: %w", domain.ErrNotFound)
	}
	return nil
}

func cartLine(tx *gorm.DB, userID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("item not in cart: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AddToCart reserves qty units of the product and upserts the cart line. The
// reservation and the cart write commit together or not at all.
func (r *GormRepo) AddToCart(ctx context.Context, userID, productID uuid.UUID, qty uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := reserveStock(tx, productID, qty); err != nil {
			return err
		}

		upd := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", qty))
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			item = models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
			return tx.Create(&item).Error
		}
		return tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// IncreaseItem bumps an existing line by one, reserving one more unit.
func (r *GormRepo) IncreaseItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	var item *models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		line, err := cartLine(tx, userID, productID)
		if err != nil {
			return err
		}
		if err := reserveStock(tx, productID, 1); err != nil {
			return err
		}
		if err := tx.Model(line).UpdateColumn("quantity", gorm.Expr("quantity + 1")).Error; err != nil {
			return err
		}
		line.Quantity++
		item = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DecreaseItem lowers an existing line by one and gives the unit back. A line
// reaching zero is deleted, never stored as a zero entry.
func (r *GormRepo) DecreaseItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, bool, error) {
	var (
		item    *models.CartItem
		removed bool
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		line, err := cartLine(tx, userID, productID)
		if err != nil {
			return err
		}
		if err := releaseStock(tx, productID, 1); err != nil {
			return err
		}
		if line.Quantity > 1 {
			if err := tx.Model(line).UpdateColumn("quantity", gorm.Expr("quantity - 1")).Error; err != nil {
				return err
			}
			line.Quantity--
			item = line
			return nil
		}
		if err := tx.Delete(line).Error; err != nil {
			return err
		}
		removed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return item, removed, nil
}

// RemoveItem deletes the line and restores its full quantity to the product.
func (r *GormRepo) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		line, err := cartLine(tx, userID, productID)
		if err != nil {
			return err
		}
		if err := releaseStock(tx, productID, line.Quantity); err != nil {
			return err
		}
		return tx.Delete(line).Error
	})
}

// ClearCart restores every line and empties the cart, all or nothing. A line
// whose product vanished aborts the whole transaction rather than dropping
// the quantity silently.
func (r *GormRepo) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []models.CartItem
		if err := tx.Where("user_id = ?", userID).Find(&lines).Error; err != nil {
			return err
		}
		for _, line := range lines {
			if err := releaseStock(tx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
}

func (r *GormRepo) GetCart(ctx context.Context, userID uuid.UUID) ([]transport.CartLine, error) {
	lines := make([]transport.CartLine, 0)
	err := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Select("cart_items.product_id, cart_items.quantity, products.name, products.price, products.image_url").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
