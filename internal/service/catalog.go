package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarkhas/shop_backend/internal/domain"
	"github.com/dmarkhas/shop_backend/internal/imagestore"
	"github.com/dmarkhas/shop_backend/internal/logging"
	"github.com/dmarkhas/shop_backend/internal/models"
	"github.com/dmarkhas/shop_backend/internal/repo"
	"github.com/dmarkhas/shop_backend/internal/transport"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Images imagestore.Store
}

func validateProductForm(form transport.ProductForm) error {
	if form.Name == "" || form.Details == "" || form.Category == "" {
		return fmt.Errorf("name, details and category required: %w", domain.ErrValidation)
	}
	if form.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", domain.ErrValidation)
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, sellerID uuid.UUID, form transport.ProductForm, file io.Reader) (*models.Product, error) {
	if err := validateProductForm(form); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("no file received: %w", domain.ErrValidation)
	}

	img, err := s.Images.Upload(ctx, file, imagestore.FolderProducts)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:     form.Name,
		Details:  form.Details,
		Quantity: form.Quantity,
		Category: form.Category,
		Price:    form.Price,
		ImageURL: img.URL,
		ImageID:  img.PublicID,
		SellerID: sellerID,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		// the uploaded image is orphaned otherwise
		if derr := s.Images.Delete(ctx, img.PublicID); derr != nil {
			logging.FromContext(ctx).Error("orphan_image_delete_failed", "public_id", img.PublicID, "error", derr)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, sellerID, id uuid.UUID, form transport.ProductForm, file io.Reader) (*models.Product, error) {
	if err := validateProductForm(form); err != nil {
		return nil, err
	}

	product, err := s.Repo.ProductByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !CanModify(sellerID, product.SellerID) {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}

	oldImageID := ""
	if file != nil {
		img, err := s.Images.Upload(ctx, file, imagestore.FolderProducts)
		if err != nil {
			return nil, err
		}
		oldImageID = product.ImageID
		product.ImageURL = img.URL
		product.ImageID = img.PublicID
	}

	product.Name = form.Name
	product.Details = form.Details
	product.Quantity = form.Quantity
	product.Category = form.Category
	product.Price = form.Price

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	if oldImageID != "" {
		if err := s.Images.Delete(ctx, oldImageID); err != nil {
			logging.FromContext(ctx).Error("old_image_delete_failed", "public_id", oldImageID, "error", err)
		}
	}
	return product, nil
}

// DeleteProduct cascades removal of any cart lines holding the product; their
// reserved quantity is not restored since the product ceases to exist.
func (s *CatalogService) DeleteProduct(ctx context.Context, sellerID, id uuid.UUID) error {
	product, err := s.Repo.ProductByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if !CanModify(sellerID, product.SellerID) {
		return fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product not found: %w", domain.ErrNotFound)
		}
		return err
	}
	if err := s.Images.Delete(ctx, product.ImageID); err != nil {
		logging.FromContext(ctx).Error("image_delete_failed", "public_id", product.ImageID, "error", err)
	}
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.Repo.ProductByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product not found: %w", domain.ErrNotFound)
	}
	return product, err
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]transport.ProductView, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) SellerProducts(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error) {
	return s.Repo.SellerProducts(ctx, sellerID)
}
