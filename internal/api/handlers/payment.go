package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/Izioneves/Facilapp-1.2/internal/api/middleware"
	"github.com/Izioneves/Facilapp-1.2/internal/errors"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	service "github.com/Izioneves/Facilapp-1.2/internal/services"
	"github.com/Izioneves/Facilapp-1.2/internal/utils"
	"github.com/Izioneves/Facilapp-1.2/internal/utils/response"
)

// Stripe webhook payloads fit well under 64KB.
const maxWebhookBodyBytes = 65536

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePayment raises a payment intent for a PIX or boleto order.
func (h *PaymentHandler) CreatePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		orderID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		resp, err := h.paymentService.CreatePayment(r.Context(), claims.UserID, orderID)
		if err != nil {
			logger.Error("Failed to create payment",
				slog.String("orderId", orderID.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Payment intent created",
			slog.String("orderId", orderID.String()), slog.String("method", string(resp.Payment.Method)))
		response.Success(w, http.StatusCreated, resp)
	}
}

// StripeWebhook receives payment intent events from Stripe.
func (h *PaymentHandler) StripeWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
		if err != nil {
			logger.Error("Failed to read webhook body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Failed to read request body"))

			return
		}

		signature := r.Header.Get("Stripe-Signature")

		if err := h.paymentService.ProcessWebhook(r.Context(), payload, signature); err != nil {
			logger.Error("Webhook processing failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"received": "true"})
	}
}
