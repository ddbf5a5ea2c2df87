package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarkhas/shop_backend/internal/models"
	"github.com/dmarkhas/shop_backend/internal/transport"
)

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) ProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) SaveProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

// DeleteProduct removes the product and every cart line referencing it in one
// transaction. Stock held in those lines is not restored since the product
// itself is gone.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]transport.ProductView, error) {
	views := make([]transport.ProductView, 0)
	err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Select("products.id, products.name, products.quantity, products.category, products.price, products.image_url, products.seller_id, members.name AS seller_name").
		Joins("JOIN members ON members.id = products.seller_id").
		Order("products.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (r *GormRepo) SellerProducts(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error) {
	items := make([]models.Product, 0)
	err := r.DB.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
