package transport

import (
	"github.com/google/uuid"

	"github.com/dmarkhas/shop_backend/internal/models"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string         `json:"token"`
	User  *models.Member `json:"user"`
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  uint      `json:"quantity"`
}

type CartItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

// CartLine is a cart entry joined with its product for display.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURL  string    `json:"image_url"`
	Quantity  uint      `json:"quantity"`
}

// ProductForm carries the multipart fields of product create/update.
type ProductForm struct {
	Name     string
	Details  string
	Quantity uint
	Category string
	Price    float64
}

// ProductView is the trimmed listing projection with the seller's display name.
type ProductView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Quantity   uint      `json:"quantity"`
	Category   string    `json:"category"`
	Price      float64   `json:"price"`
	ImageURL   string    `json:"image_url"`
	SellerID   uuid.UUID `json:"seller_id"`
	SellerName string    `json:"seller_name"`
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
}
