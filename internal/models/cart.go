package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a product snapshot plus a quantity. Identity is the product
// id; supplier and store ids are carried for checkout partitioning.
type CartItem struct {
	ProductID  uuid.UUID `json:"product_id"`
	SupplierID uuid.UUID `json:"supplier_id"`
	StoreID    uuid.UUID `json:"store_id"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	Image      string    `json:"image,omitempty"`
	UnitPrice  float64   `json:"unit_price"`
	Quantity   int       `json:"quantity"`
}

func (i CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Cart keeps the item slice ordered by first add so that checkout can
// partition suppliers in encounter order.
type Cart struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}

	return total
}

// Find returns the index of the item with the given product id, or -1.
func (c *Cart) Find(productID uuid.UUID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}

	return -1
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateQuantityRequest adjusts an item's quantity by Delta. A resulting
// quantity of zero or below removes the item.
type UpdateQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Delta     int       `json:"delta" validate:"required"`
}

type RemoveItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}
