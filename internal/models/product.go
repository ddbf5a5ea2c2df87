package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID        uuid.UUID `gorm:"primaryKey"      json:"id"`
	Name      string    `gorm:"not null"        json:"name"`
	Details   string    `gorm:"not null"        json:"details"`
	Quantity  uint      `gorm:"not null"        json:"quantity"`
	Category  string    `gorm:"not null"        json:"category"`
	Price     float64   `gorm:"not null"        json:"price"`
	ImageURL  string    `gorm:"not null"        json:"image_url"`
	ImageID   string    `json:"-"`
	SellerID  uuid.UUID `gorm:"index;not null"  json:"seller_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}
