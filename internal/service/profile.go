package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarkhas/shop_backend/internal/domain"
	"github.com/dmarkhas/shop_backend/internal/imagestore"
	"github.com/dmarkhas/shop_backend/internal/models"
	"github.com/dmarkhas/shop_backend/internal/repo"
)

type ProfileService struct {
	Repo   *repo.GormRepo
	Images imagestore.Store
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Member, error) {
	member, err := s.Repo.MemberByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return member, err
}

func (s *ProfileService) UpdateName(ctx context.Context, userID uuid.UUID, name string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrValidation)
	}

	member, err := s.Repo.UpdateMemberName(ctx, userID, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return member, err
}

func (s *ProfileService) UpdateProfilePic(ctx context.Context, userID uuid.UUID, file io.Reader) (*models.Member, error) {
	if file == nil {
		return nil, fmt.Errorf("no file uploaded: %w", domain.ErrValidation)
	}

	img, err := s.Images.Upload(ctx, file, imagestore.FolderProfilePics)
	if err != nil {
		return nil, err
	}
	member, err := s.Repo.UpdateMemberProfilePic(ctx, userID, img.URL)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return member, err
}
