package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/Izioneves/Facilapp-1.2/internal/errors"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	repository "github.com/Izioneves/Facilapp-1.2/internal/repositories"
	stripeclient "github.com/Izioneves/Facilapp-1.2/pkg/stripe"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, clientID, orderID uuid.UUID) (*models.PaymentResponse, error)
	ProcessWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentService struct {
	repo      repository.PaymentRepository
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	stripe    stripeclient.Client
	currency  string
}

func NewPaymentService(repo repository.PaymentRepository, orderRepo repository.OrderRepository, userRepo repository.UserRepository, stripe stripeclient.Client, currency string) PaymentService {
	return &paymentService{
		repo:      repo,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		stripe:    stripe,
		currency:  currency,
	}
}

// CreatePayment raises a Stripe payment intent for a PIX or boleto order.
// Cash and card methods settle on delivery and never reach Stripe.
func (s *paymentService) CreatePayment(ctx context.Context, clientID, orderID uuid.UUID) (*models.PaymentResponse, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if order.ClientID != clientID {
		return nil, errors.ForbiddenError("Order belongs to another client")
	}

	amount := int64(math.Round(order.TotalAmount * 100))
	description := fmt.Sprintf("Pedido %s", order.ID)

	var intent *stripe.PaymentIntent

	switch order.PaymentMethod {
	case models.PaymentMethodPix:
		intent, err = s.stripe.CreatePixIntent(amount, s.currency, description)
	case models.PaymentMethodBoleto:
		user, userErr := s.userRepo.GetUserByID(ctx, clientID)
		if userErr != nil {
			return nil, errors.NotFoundError("User not found").WithError(userErr)
		}

		taxID := user.CPF
		if taxID == "" {
			taxID = user.CNPJ
		}

		if taxID == "" {
			return nil, errors.BadRequestError("Boleto payment requires a CPF or CNPJ on the profile")
		}

		intent, err = s.stripe.CreateBoletoIntent(amount, s.currency, description, taxID, user.Name, user.Email)
	default:
		return nil, errors.BadRequestError("Payment method is settled on delivery")
	}

	if err != nil {
		return nil, errors.ThirdPartyError("Failed to create payment intent").WithError(err)
	}

	payment := &models.Payment{
		ID:         uuid.NewString(),
		OrderID:    order.ID,
		CustomerID: clientID,
		Amount:     order.TotalAmount,
		Currency:   s.currency,
		Method:     order.PaymentMethod,
		Status:     models.PaymentStatusPending,
		StripeID:   intent.ID,
	}

	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, errors.DatabaseError("Failed to record payment").WithError(err)
	}

	return &models.PaymentResponse{Payment: payment, ClientSecret: intent.ClientSecret}, nil
}

// ProcessWebhook applies Stripe payment intent events to the payment record.
func (s *paymentService) ProcessWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.stripe.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return errors.UnauthorizedError("Invalid webhook signature").WithError(err)
	}

	var status models.PaymentStatus

	switch event.Type {
	case "payment_intent.succeeded":
		status = models.PaymentStatusSucceeded
	case "payment_intent.payment_failed":
		status = models.PaymentStatusFailed
	default:
		slog.Info("Ignoring webhook event", slog.String("type", string(event.Type)))

		return nil
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return errors.BadRequestError("Malformed webhook payload").WithError(err)
	}

	if err := s.repo.UpdatePaymentStatus(ctx, intent.ID, status); err != nil {
		return errors.DatabaseError("Failed to update payment status").WithError(err)
	}

	slog.Info("✅ Payment status updated",
		slog.String("stripeId", intent.ID), slog.String("status", string(status)))

	return nil
}
