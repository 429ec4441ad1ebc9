package models

import "github.com/google/uuid"

type DeliveryStatus string

const (
	DeliveryStatusFree            DeliveryStatus = "free"
	DeliveryStatusPaid            DeliveryStatus = "paid"
	DeliveryStatusOutOfRange      DeliveryStatus = "out_of_range"
	DeliveryStatusLocationUnknown DeliveryStatus = "location_unknown"
	DeliveryStatusUnresolved      DeliveryStatus = "unresolved"
)

// DeliveryQuote is the outcome of a delivery check for one (user, store)
// pair: the fee, the road-free distance, and the eligibility status.
type DeliveryQuote struct {
	StoreID    uuid.UUID      `json:"store_id"`
	Fee        float64        `json:"fee"`
	DistanceKm float64        `json:"distance_km"`
	Status     DeliveryStatus `json:"status"`
}

// Applicable reports whether the quoted fee may be attached to an order.
func (q *DeliveryQuote) Applicable() bool {
	if q == nil {
		return false
	}

	return q.Status == DeliveryStatusFree || q.Status == DeliveryStatusPaid
}

// DeliveryCheckResponse is what the store page shows after a delivery
// check: the quote plus the store's ordered payment method options.
type DeliveryCheckResponse struct {
	Quote          DeliveryQuote   `json:"quote"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
}
