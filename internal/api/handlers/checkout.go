package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Izioneves/Facilapp-1.2/internal/api/middleware"
	"github.com/Izioneves/Facilapp-1.2/internal/errors"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	service "github.com/Izioneves/Facilapp-1.2/internal/services"
	"github.com/Izioneves/Facilapp-1.2/internal/utils"
	"github.com/Izioneves/Facilapp-1.2/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// Checkout turns the user's cart into one order per supplier.
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")

			return
		}

		resp, err := h.checkoutService.Checkout(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Checkout failed",
				slog.String("paymentMethod", string(req.PaymentMethod)), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Checkout completed",
			slog.Int("orders", len(resp.Orders)), slog.String("paymentMethod", string(req.PaymentMethod)))
		response.Success(w, http.StatusCreated, resp)
	}
}
