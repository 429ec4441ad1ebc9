package models

import (
	"time"

	"github.com/google/uuid"
)

// Store is a supplier's storefront. It carries the delivery pricing and the
// per-payment-method discount configuration consumed at checkout.
type Store struct {
	ID                  uuid.UUID `json:"id"`
	SupplierID          uuid.UUID `json:"supplier_id"`
	Name                string    `json:"name"`
	Description         string    `json:"description,omitempty"`
	Image               string    `json:"image,omitempty"`
	Latitude            *float64  `json:"latitude,omitempty"`
	Longitude           *float64  `json:"longitude,omitempty"`
	DeliveryPrice       float64   `json:"delivery_price"`
	FreeDeliveryRadius  float64   `json:"free_delivery_radius"`
	MaxDeliveryDistance float64   `json:"max_delivery_distance"`
	MinOrder            float64   `json:"min_order"`
	PixDiscount         float64   `json:"pix_discount"`
	CashDiscount        float64   `json:"cash_discount"`
	EnableBoleto        bool      `json:"enable_boleto"`
	Active              bool      `json:"active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type UpdateStoreRequest struct {
	Name                *string  `json:"name,omitempty" validate:"omitempty,min=2"`
	Description         *string  `json:"description,omitempty"`
	Image               *string  `json:"image,omitempty"`
	DeliveryPrice       *float64 `json:"delivery_price,omitempty" validate:"omitempty,gte=0"`
	FreeDeliveryRadius  *float64 `json:"free_delivery_radius,omitempty" validate:"omitempty,gte=0"`
	MaxDeliveryDistance *float64 `json:"max_delivery_distance,omitempty" validate:"omitempty,gte=0"`
	MinOrder            *float64 `json:"min_order,omitempty" validate:"omitempty,gte=0"`
	PixDiscount         *float64 `json:"pix_discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	CashDiscount        *float64 `json:"cash_discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	EnableBoleto        *bool    `json:"enable_boleto,omitempty"`
	Active              *bool    `json:"active,omitempty"`
}

// DiscountPercent returns the percentage discount the store grants for the
// given payment method. Only PIX and cash carry discounts.
func (s *Store) DiscountPercent(method PaymentMethodType) float64 {
	if s == nil {
		return 0
	}

	switch method {
	case PaymentMethodPix:
		return s.PixDiscount
	case PaymentMethodCash:
		return s.CashDiscount
	default:
		return 0
	}
}
