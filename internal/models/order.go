package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusAccepted   OrderStatus = "accepted"
	OrderStatusInDelivery OrderStatus = "in_delivery"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// CanTransitionTo enforces the supplier-side order lifecycle. Cancellation
// is allowed from any state before delivery.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if next == OrderStatusCancelled {
		return s != OrderStatusDelivered && s != OrderStatusCancelled
	}

	switch s {
	case OrderStatusPending:
		return next == OrderStatusAccepted
	case OrderStatusAccepted:
		return next == OrderStatusInDelivery
	case OrderStatusInDelivery:
		return next == OrderStatusDelivered
	default:
		return false
	}
}

type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
}

// DeliverySnapshot is the address stored on an order at creation time,
// augmented with the delivery distance that was actually charged.
type DeliverySnapshot struct {
	Address
	DistanceKm float64 `json:"distance_km"`
}

// Order is one supplier's slice of a checkout. A multi-supplier cart
// produces one Order per supplier.
type Order struct {
	ID              uuid.UUID         `json:"id"`
	ClientID        uuid.UUID         `json:"client_id"`
	SupplierID      uuid.UUID         `json:"supplier_id"`
	Status          OrderStatus       `json:"status"`
	PaymentMethod   PaymentMethodType `json:"payment_method"`
	DeliveryAddress *DeliverySnapshot `json:"delivery_address"`
	Subtotal        float64           `json:"subtotal"`
	Discount        float64           `json:"discount"`
	DeliveryFee     float64           `json:"delivery_fee"`
	TotalAmount     float64           `json:"total_amount"`
	Items           []OrderItem       `json:"items"`
	ClientName      string            `json:"client_name,omitempty"`
	ClientPhone     string            `json:"client_phone,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// CheckoutRequest is the client's checkout confirmation. The address is
// optional; the profile address is the fallback.
type CheckoutRequest struct {
	PaymentMethod   PaymentMethodType `json:"payment_method" validate:"required,oneof=pix cash card_delivery_debit card_delivery_credit boleto"`
	DeliveryAddress *Address          `json:"delivery_address,omitempty"`
}

type CheckoutResponse struct {
	Orders []*Order `json:"orders"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending accepted in_delivery delivered cancelled"`
}

type OrderHistoryResponse struct {
	Orders []*Order `json:"orders"`
	Total  int      `json:"total"`
	Page   int      `json:"page"`
	Size   int      `json:"size"`
}

// SupplierStatement aggregates a supplier's delivered orders.
type SupplierStatement struct {
	OrderCount  int     `json:"order_count"`
	GrossAmount float64 `json:"gross_amount"`
}
