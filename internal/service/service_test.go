package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmarkhas/shop_backend/internal/imagestore"
	"github.com/dmarkhas/shop_backend/internal/models"
	"github.com/dmarkhas/shop_backend/internal/repo"
)

func testRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Member{}, &models.Product{}, &models.CartItem{}))
	return repo.New(db)
}

// fakeImages stands in for the external image host.
type fakeImages struct {
	uploads int
	deleted []string
}

func (f *fakeImages) Upload(ctx context.Context, file io.Reader, folder string) (*imagestore.Image, error) {
	f.uploads++
	id := fmt.Sprintf("%s/img-%d", folder, f.uploads)
	return &imagestore.Image{URL: "https://img.test/" + id, PublicID: id}, nil
}

func (f *fakeImages) Delete(ctx context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}
