package imagestore

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	FolderProducts    = "shop_products"
	FolderProfilePics = "profile_pics"
)

type Image struct {
	URL      string
	PublicID string
}

// Store is the external image host: binary upload with a public URL and
// deletion by reference.
type Store interface {
	Upload(ctx context.Context, file io.Reader, folder string) (*Image, error)
	Delete(ctx context.Context, publicID string) error
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(url string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, folder string) (*Image, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	return &Image{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	return nil
}
