package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dmarkhas/shop_backend/internal/domain"
	"github.com/dmarkhas/shop_backend/internal/hash"
	"github.com/dmarkhas/shop_backend/internal/models"
	"github.com/dmarkhas/shop_backend/internal/repo"
	"github.com/dmarkhas/shop_backend/internal/service/token"
	"github.com/dmarkhas/shop_backend/internal/transport"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *token.Service
}

func (s *AuthService) Signup(ctx context.Context, req transport.SignupRequest) (*models.Member, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("all fields required: %w", domain.ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("unknown role %q: %w", req.Role, domain.ErrValidation)
	}

	if _, err := s.Repo.MemberByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("user already exists: %w", domain.ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	member := &models.Member{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.Repo.CreateMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Login never discloses which of email or password was wrong.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (string, *models.Member, error) {
	if req.Email == "" || req.Password == "" {
		return "", nil, fmt.Errorf("all fields required: %w", domain.ErrValidation)
	}

	member, err := s.Repo.MemberByEmail(ctx, req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return "", nil, err
	}
	if !hash.CheckPassword(member.PasswordHash, req.Password) {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	signed, err := s.Tokens.Issue(member)
	if err != nil {
		return "", nil, err
	}
	return signed, member, nil
}
