package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmarkhas/shop_backend/internal/domain"
	"github.com/dmarkhas/shop_backend/internal/models"
	"github.com/dmarkhas/shop_backend/internal/transport"
)

func seedSeller(t *testing.T, s *CatalogService, email string) *models.Member {
	t.Helper()
	m := &models.Member{Name: "seller", Email: email, PasswordHash: "x", Role: domain.RoleSeller}
	require.NoError(t, s.Repo.CreateMember(context.Background(), m))
	return m
}

func validForm() transport.ProductForm {
	return transport.ProductForm{
		Name: "chair", Details: "wooden chair", Quantity: 5, Category: "furniture", Price: 45,
	}
}

func newCatalog(t *testing.T) (*CatalogService, *fakeImages) {
	t.Helper()
	images := &fakeImages{}
	return &CatalogService{Repo: testRepo(t), Images: images}, images
}

func TestCreateProductUploadsImage(t *testing.T) {
	s, images := newCatalog(t)
	ctx := context.Background()
	seller := seedSeller(t, s, "s1@shop.test")

	product, err := s.CreateProduct(ctx, seller.ID, validForm(), strings.NewReader("img"))
	require.NoError(t, err)
	require.Equal(t, seller.ID, product.SellerID)
	require.NotEmpty(t, product.ImageURL)
	require.NotEmpty(t, product.ImageID)
	require.Equal(t, 1, images.uploads)
}

func TestCreateProductRequiresFile(t *testing.T) {
	s, images := newCatalog(t)
	seller := seedSeller(t, s, "s1@shop.test")

	_, err := s.CreateProduct(context.Background(), seller.ID, validForm(), nil)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Zero(t, images.uploads)
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	s, _ := newCatalog(t)
	seller := seedSeller(t, s, "s1@shop.test")

	form := validForm()
	form.Price = -1
	_, err := s.CreateProduct(context.Background(), seller.ID, form, strings.NewReader("img"))
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateProductNonOwnerForbidden(t *testing.T) {
	s, _ := newCatalog(t)
	ctx := context.Background()
	owner := seedSeller(t, s, "owner@shop.test")
	intruder := seedSeller(t, s, "intruder@shop.test")

	product, err := s.CreateProduct(ctx, owner.ID, validForm(), strings.NewReader("img"))
	require.NoError(t, err)

	_, err = s.UpdateProduct(ctx, intruder.ID, product.ID, validForm(), nil)
	require.ErrorIs(t, err, domain.ErrForbidden)

	err = s.DeleteProduct(ctx, intruder.ID, product.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateProductReplacesImage(t *testing.T) {
	s, images := newCatalog(t)
	ctx := context.Background()
	seller := seedSeller(t, s, "s1@shop.test")

	product, err := s.CreateProduct(ctx, seller.ID, validForm(), strings.NewReader("img"))
	require.NoError(t, err)
	oldImageID := product.ImageID

	form := validForm()
	form.Name = "armchair"
	updated, err := s.UpdateProduct(ctx, seller.ID, product.ID, form, strings.NewReader("img2"))
	require.NoError(t, err)
	require.Equal(t, "armchair", updated.Name)
	require.NotEqual(t, oldImageID, updated.ImageID)
	require.Contains(t, images.deleted, oldImageID)
}

func TestDeleteProductRemovesHostedImage(t *testing.T) {
	s, images := newCatalog(t)
	ctx := context.Background()
	seller := seedSeller(t, s, "s1@shop.test")

	product, err := s.CreateProduct(ctx, seller.ID, validForm(), strings.NewReader("img"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteProduct(ctx, seller.ID, product.ID))
	require.Contains(t, images.deleted, product.ImageID)

	_, err = s.GetProduct(ctx, product.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProductUnknownID(t *testing.T) {
	s, _ := newCatalog(t)
	seller := seedSeller(t, s, "s1@shop.test")

	err := s.DeleteProduct(context.Background(), seller.ID, uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
