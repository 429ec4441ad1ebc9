package models_test

import (
	"testing"

	"github.com/Izioneves/Facilapp-1.2/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{"Pending To Accepted", models.OrderStatusPending, models.OrderStatusAccepted, true},
		{"Accepted To In Delivery", models.OrderStatusAccepted, models.OrderStatusInDelivery, true},
		{"In Delivery To Delivered", models.OrderStatusInDelivery, models.OrderStatusDelivered, true},
		{"Pending To Delivered Skips Steps", models.OrderStatusPending, models.OrderStatusDelivered, false},
		{"Delivered Is Terminal", models.OrderStatusDelivered, models.OrderStatusInDelivery, false},
		{"Pending Can Cancel", models.OrderStatusPending, models.OrderStatusCancelled, true},
		{"In Delivery Can Cancel", models.OrderStatusInDelivery, models.OrderStatusCancelled, true},
		{"Delivered Cannot Cancel", models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{"Cancelled Cannot Cancel Again", models.OrderStatusCancelled, models.OrderStatusCancelled, false},
		{"Cancelled Cannot Resume", models.OrderStatusCancelled, models.OrderStatusAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
