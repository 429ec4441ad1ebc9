package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PaymentMethodType string

const (
	PaymentMethodPix        PaymentMethodType = "pix"
	PaymentMethodCash       PaymentMethodType = "cash"
	PaymentMethodCardDebit  PaymentMethodType = "card_delivery_debit"
	PaymentMethodCardCredit PaymentMethodType = "card_delivery_credit"
	PaymentMethodBoleto     PaymentMethodType = "boleto"
)

// PaymentMethod is a selectable option on the checkout payment screen. The
// PIX label is dynamic: it advertises the store discount when one exists.
type PaymentMethod struct {
	ID    string            `json:"id"`
	Type  PaymentMethodType `json:"type"`
	Label string            `json:"label"`
	Icon  string            `json:"icon"`
}

// PaymentMethodsForStore derives the ordered method list for a store: PIX
// first, card on delivery, cash, and boleto only when the store enables it.
func PaymentMethodsForStore(store *Store) []PaymentMethod {
	pixLabel := "Pix (Aprovação imediata)"
	if store != nil && store.PixDiscount > 0 {
		pixLabel = fmt.Sprintf("Pix (Aprovação imediata - %g%% OFF)", store.PixDiscount)
	}

	methods := []PaymentMethod{
		{ID: "pix", Type: PaymentMethodPix, Label: pixLabel, Icon: "qr_code_2"},
		{ID: "card_delivery_debit", Type: PaymentMethodCardDebit, Label: "Cartão de Débito (Na entrega)", Icon: "credit_card"},
		{ID: "card_delivery_credit", Type: PaymentMethodCardCredit, Label: "Cartão de Crédito (Na entrega)", Icon: "credit_card"},
		{ID: "cash", Type: PaymentMethodCash, Label: "Dinheiro na entrega", Icon: "payments"},
	}

	if store != nil && store.EnableBoleto {
		methods = append(methods, PaymentMethod{ID: "boleto", Type: PaymentMethodBoleto, Label: "Boleto Bancário", Icon: "barcode"})
	}

	return methods
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment records a Stripe payment intent raised for a PIX or boleto order.
type Payment struct {
	ID            string            `json:"id"`
	OrderID       uuid.UUID         `json:"order_id"`
	CustomerID    uuid.UUID         `json:"customer_id"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	Method        PaymentMethodType `json:"method"`
	Status        PaymentStatus     `json:"status"`
	StripeID      string            `json:"stripe_id,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type PaymentResponse struct {
	Payment      *Payment `json:"payment"`
	ClientSecret string   `json:"client_secret,omitempty"`
}
