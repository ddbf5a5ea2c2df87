package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmarkhas/shop_backend/internal/models"
)

func (r *GormRepo) CreateMember(ctx context.Context, m *models.Member) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *GormRepo) MemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	var m models.Member
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormRepo) MemberByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	var m models.Member
	if err := r.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormRepo) UpdateMemberName(ctx context.Context, id uuid.UUID, name string) (*models.Member, error) {
	res := r.DB.WithContext(ctx).Model(&models.Member{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.MemberByID(ctx, id)
}

func (r *GormRepo) UpdateMemberProfilePic(ctx context.Context, id uuid.UUID, url string) (*models.Member, error) {
	res := r.DB.WithContext(ctx).Model(&models.Member{}).Where("id = ?", id).Update("profile_pic", url)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.MemberByID(ctx, id)
}
