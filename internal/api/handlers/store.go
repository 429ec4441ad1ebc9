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

type StoreHandler struct {
	storeService    service.StoreService
	deliveryService service.DeliveryService
	validator       *validator.Validate
}

func NewStoreHandler(storeService service.StoreService, deliveryService service.DeliveryService) *StoreHandler {
	return &StoreHandler{storeService: storeService, deliveryService: deliveryService, validator: validator.New()}
}

func (h *StoreHandler) ListStores() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		stores, err := h.storeService.ListStores(r.Context())
		if err != nil {
			logger.Error("Failed to list stores", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, stores)
	}
}

func (h *StoreHandler) GetStore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid store id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		store, err := h.storeService.GetStoreByID(r.Context(), id)
		if err != nil {
			logger.Warn("Store not found", slog.String("storeId", id.String()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, store)
	}
}

// CheckDelivery resolves whether the store delivers to the authenticated
// user's address, with the fee and the store's payment options.
func (h *StoreHandler) CheckDelivery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid store id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		resp, err := h.deliveryService.CheckDelivery(r.Context(), claims.UserID, id)
		if err != nil {
			logger.Error("Delivery check failed", slog.String("storeId", id.String()), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Delivery check resolved",
			slog.String("storeId", id.String()), slog.String("status", string(resp.Quote.Status)))
		response.Success(w, http.StatusOK, resp)
	}
}

func (h *StoreHandler) GetMyStore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		store, err := h.storeService.GetMyStore(r.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Store not found for supplier", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, store)
	}
}

func (h *StoreHandler) UpdateMyStore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.UpdateStoreRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid store update input")

			return
		}

		store, err := h.storeService.UpdateStore(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to update store", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Store updated", slog.String("storeId", store.ID.String()))
		response.Success(w, http.StatusOK, store)
	}
}
