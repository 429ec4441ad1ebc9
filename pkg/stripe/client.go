package stripe

import (
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"
)

type Event = stripe.Event

// Client wraps the Stripe operations the checkout flow needs: payment
// intents for PIX and boleto orders, and webhook verification.
type Client interface {
	CreatePixIntent(amount int64, currency string, description string) (*stripe.PaymentIntent, error)
	CreateBoletoIntent(amount int64, currency string, description string, taxID, name, email string) (*stripe.PaymentIntent, error)
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
}

type stripeClient struct {
	webhookSecret string
}

func NewStripeClient(apiKey string, webhookSecret string) Client {
	stripe.Key = apiKey

	return &stripeClient{webhookSecret: webhookSecret}
}

// CreatePixIntent raises a payment intent payable via PIX. The client app
// renders the QR code from the intent's next action.
func (s *stripeClient) CreatePixIntent(amount int64, currency string, description string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		Description:        stripe.String(description),
		PaymentMethodTypes: stripe.StringSlice([]string{"pix"}),
	}

	return paymentintent.New(params)
}

// CreateBoletoIntent raises a boleto payment intent. Boleto requires the
// payer's tax id (CPF/CNPJ) and identification up front.
func (s *stripeClient) CreateBoletoIntent(amount int64, currency string, description string, taxID, name, email string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		Description:        stripe.String(description),
		PaymentMethodTypes: stripe.StringSlice([]string{"boleto"}),
		PaymentMethodData: &stripe.PaymentIntentPaymentMethodDataParams{
			Type: stripe.String("boleto"),
			Boleto: &stripe.PaymentMethodBoletoParams{
				TaxID: stripe.String(taxID),
			},
			BillingDetails: &stripe.PaymentIntentPaymentMethodDataBillingDetailsParams{
				Name:  stripe.String(name),
				Email: stripe.String(email),
			},
		},
	}

	return paymentintent.New(params)
}

func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}
