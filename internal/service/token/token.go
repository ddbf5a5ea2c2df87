package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmarkhas/shop_backend/internal/models"
)

const DefaultTTL = 7 * 24 * time.Hour

type Claims struct {
	UserID uuid.UUID
	Role   string
	Name   string
}

type Service struct {
	Secret []byte
	TTL    time.Duration
}

func (s *Service) ttl() time.Duration {
	if s.TTL == 0 {
		return DefaultTTL
	}
	return s.TTL
}

func (s *Service) Issue(m *models.Member) (string, error) {
	claims := jwt.MapClaims{
		"sub":  m.ID.String(),
		"role": m.Role,
		"name": m.Name,
		"exp":  time.Now().Add(s.ttl()).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) Parse(raw string) (*Claims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !t.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	mc, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	sub, ok := mc["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid subject claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	claims := &Claims{UserID: userID}
	if role, ok := mc["role"].(string); ok {
		claims.Role = role
	}
	if name, ok := mc["name"].(string); ok {
		claims.Name = name
	}
	return claims, nil
}
