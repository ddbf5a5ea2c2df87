package repo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmarkhas/shop_backend/internal/domain"
	"github.com/dmarkhas/shop_backend/internal/models"
)

func TestDeleteProductCascadesCartLines(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	p := seedProduct(t, r, 10)
	userID := uuid.New()

	_, err := r.AddToCart(ctx, userID, p.ID, 2)
	require.NoError(t, err)

	require.NoError(t, r.DeleteProduct(ctx, p.ID))

	_, err = r.ProductByID(ctx, p.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	lines, err := r.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestDeleteProductMissing(t *testing.T) {
	r := testRepo(t)
	err := r.DeleteProduct(context.Background(), uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListProductsJoinsSellerName(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	seller := &models.Member{Name: "Alice", Email: "alice@shop.test", PasswordHash: "x", Role: domain.RoleSeller}
	require.NoError(t, r.DB.Create(seller).Error)

	p := &models.Product{
		Name: "mug", Details: "ceramic", Quantity: 3, Category: "kitchen",
		Price: 7.5, ImageURL: "https://img.test/mug.jpg", SellerID: seller.ID,
	}
	require.NoError(t, r.CreateProduct(ctx, p))

	views, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "mug", views[0].Name)
	require.Equal(t, "Alice", views[0].SellerName)
	require.Equal(t, seller.ID, views[0].SellerID)
}

func TestSellerProductsNewestFirst(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	seller := seedSeller(t, r)

	older := &models.Product{
		Name: "old", Details: "d", Quantity: 1, Category: "c", Price: 1,
		ImageURL: "u", SellerID: seller.ID, CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := &models.Product{
		Name: "new", Details: "d", Quantity: 1, Category: "c", Price: 1,
		ImageURL: "u", SellerID: seller.ID, CreatedAt: time.Now(),
	}
	require.NoError(t, r.DB.Create(older).Error)
	require.NoError(t, r.DB.Create(newer).Error)

	// another seller's product must not leak in
	seedProduct(t, r, 1)

	items, err := r.SellerProducts(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "new", items[0].Name)
	require.Equal(t, "old", items[1].Name)
}
