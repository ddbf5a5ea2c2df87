package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmarkhas/shop_backend/internal/domain"
	"github.com/dmarkhas/shop_backend/internal/models"
)

func testRepo(t *testing.T) *GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Member{}, &models.Product{}, &models.CartItem{}))
	return New(db)
}

func seedSeller(t *testing.T, r *GormRepo) *models.Member {
	t.Helper()
	m := &models.Member{
		Name:         "seller",
		Email:        fmt.Sprintf("seller-%s@shop.test", uuid.NewString()),
		PasswordHash: "x",
		Role:         domain.RoleSeller,
	}
	require.NoError(t, r.DB.Create(m).Error)
	return m
}

func seedProduct(t *testing.T, r *GormRepo, qty uint) *models.Product {
	t.Helper()
	seller := seedSeller(t, r)
	p := &models.Product{
		Name:     "lamp",
		Details:  "desk lamp",
		Quantity: qty,
		Category: "home",
		Price:    19.99,
		ImageURL: "https://img.test/lamp.jpg",
		SellerID: seller.ID,
	}
	require.NoError(t, r.DB.Create(p).Error)
	return p
}

func productQty(t *testing.T, r *GormRepo, id uuid.UUID) uint {
	t.Helper()
	p, err := r.ProductByID(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity
}

// reservedTotal sums the product's quantity across every cart.
func reservedTotal(t *testing.T, r *GormRepo, productID uuid.UUID) uint {
	t.Helper()
	var total int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error)
	return uint(total)
}

func requireInvariant(t *testing.T, r *GormRepo, productID uuid.UUID, initial uint) {
	t.Helper()
	require.Equal(t, initial, productQty(t, r, productID)+reservedTotal(t, r, productID))
}

func TestAddToCartReservesStock(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	p := seedProduct(t, r, 10)
	userID := uuid.New()

	item, err := r.AddToCart(ctx, userID, p.ID, 3)
	require.NoError(t, err)
	require.Equal(t, uint(3), item.Quantity)
	require.Equal(t, uint(7), productQty(t, r, p.ID))

	// second add merges into the same line
	item, err = r.AddToCart(ctx, userID, p.ID, 2)
	require.NoError(t, err)
	require.Equal(t, uint(5), item.Quantity)
	require.Equal(t, uint(5), productQty(t, r, p.ID))

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	requireInvariant(t, r, p.ID, 10)
}

func TestAddToCartInsufficientStock(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	p := seedProduct(t, r, 2)
	userID := uuid.New()

	_, err := r.AddToCart(ctx, userID, p.ID, 3)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	require.Equal(t, uint(2), productQty(t, r, p.ID))
	require.EqualValues(t, 0, reservedTotal(t, r, p.ID))
}

func TestAddToCartUnknownProduct(t *testing.T) {
	r := testRepo(t)

	_, err := r.AddToCart(context.Background(), uuid.New(), uuid.New(), 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddToCartContention(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	p := seedProduct(t, r, 1)

	_, errA := r.AddToCart(ctx, uuid.New(), p.ID, 1)
	_, errB := r.AddToCart(ctx, uuid.New(), p.ID, 1)

	require.True(t, (errA == nil) != (errB == nil), "exactly one add must win")
	failed := errA
	if failed == nil {
		failed = errB
	}
	require.ErrorIs(t, failed, domain.ErrInsufficientStock)
	require.Equal(t, uint(0), productQty(t, r, p.ID))
	requireInvariant(t, r, p.ID, 1)
}

func TestIncreaseThenDecreaseIsNoOp(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	p := seedProduct(t, r, 10)
	userID := uuid.New()

	_, err := r.AddToCart(ctx, userID, p.ID, 2)
	require.NoError(t, err)

	item, err := r.IncreaseItem(ctx, userID, p.ID)
	require.NoError(t, err)
	require.Equal(t, uint(3), item.Quantity)
	require.Equal(t, uint(7), productQty(t, r, p.ID))

	item, removed, err := r.DecreaseItem(ctx, userID, p.ID)
	require.NoError(t, err)
	require.False(t, removed)
	require.Equal(t, uint(2), item.Quantity)
	require.Equal(t, uint(8), productQty(t, r, p.ID))

	requireInvariant(t, r, p.ID, 10)
}

func TestIncreaseItemOutOfStock(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	p := seedProduct(t, r, 1)
	userID := uuid.New()

	_, err := r.AddToCart(ctx, userID, p.ID, 1)
	require.NoError(t, err)

	_, err = r.IncreaseItem(ctx, userID, p.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	requireInvariant(t, r, p.ID, 1)
}

func TestIncreaseItemNotInCart(t *testing.T) {
	r := testRepo(t)
	p := seedProduct(t, r, 5)

	_, err := r.IncreaseItem(context.Background(), uuid.New(), p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Equal(t, uint(5), productQty(t, r, p.ID))
}

func TestDecreaseToZeroRemovesLine(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	p := seedProduct(t, r, 5)
	userID := uuid.New()

	_, err := r.AddToCart(ctx, userID, p.ID, 1)
	require.NoError(t, err)

	item, removed, err := r.DecreaseItem(ctx, userID, p.ID)
	require.NoError(t, err)
	require.True(t, removed)
	require.Nil(t, item)
	require.Equal(t, uint(5), productQty(t, r, p.ID))

	lines, err := r.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestRemoveItemRestoresStock(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	p := seedProduct(t, r, 10)
	userID := uuid.New()

	_, err := r.AddToCart(ctx, userID, p.ID, 4)
	require.NoError(t, err)
	require.Equal(t, uint(6), productQty(t, r, p.ID))

	require.NoError(t, r.RemoveItem(ctx, userID, p.ID))
	require.Equal(t, uint(10), productQty(t, r, p.ID))

	err = r.RemoveItem(ctx, userID, p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClearCartScenario(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	p := seedProduct(t, r, 5)
	userID := uuid.New()

	_, err := r.AddToCart(ctx, userID, p.ID, 3)
	require.NoError(t, err)
	require.Equal(t, uint(2), productQty(t, r, p.ID))

	item, removed, err := r.DecreaseItem(ctx, userID, p.ID)
	require.NoError(t, err)
	require.False(t, removed)
	require.Equal(t, uint(2), item.Quantity)
	require.Equal(t, uint(3), productQty(t, r, p.ID))

	require.NoError(t, r.ClearCart(ctx, userID))
	require.Equal(t, uint(5), productQty(t, r, p.ID))

	lines, err := r.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestClearCartEmptyIsNoOp(t *testing.T) {
	r := testRepo(t)
	require.NoError(t, r.ClearCart(context.Background(), uuid.New()))
}

func TestClearCartRestoresMultipleProducts(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	p1 := seedProduct(t, r, 4)
	p2 := seedProduct(t, r, 6)
	userID := uuid.New()

	_, err := r.AddToCart(ctx, userID, p1.ID, 2)
	require.NoError(t, err)
	_, err = r.AddToCart(ctx, userID, p2.ID, 5)
	require.NoError(t, err)

	require.NoError(t, r.ClearCart(ctx, userID))
	require.Equal(t, uint(4), productQty(t, r, p1.ID))
	require.Equal(t, uint(6), productQty(t, r, p2.ID))
}

func TestGetCartJoinsProduct(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	p := seedProduct(t, r, 5)
	userID := uuid.New()

	_, err := r.AddToCart(ctx, userID, p.ID, 2)
	require.NoError(t, err)

	lines, err := r.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, p.ID, lines[0].ProductID)
	require.Equal(t, "lamp", lines[0].Name)
	require.Equal(t, 19.99, lines[0].Price)
	require.Equal(t, uint(2), lines[0].Quantity)
}
