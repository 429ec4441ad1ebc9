package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Izioneves/Facilapp-1.2/internal/api/handlers"
	appErrors "github.com/Izioneves/Facilapp-1.2/internal/errors"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	svcMocks "github.com/Izioneves/Facilapp-1.2/internal/services/mocks"
	"github.com/Izioneves/Facilapp-1.2/internal/testutils"
	"github.com/Izioneves/Facilapp-1.2/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckoutHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - One Order Per Supplier", func(t *testing.T) {
		// Arrange
		checkoutService := new(svcMocks.CheckoutService)
		handler := handlers.NewCheckoutHandler(checkoutService)

		resp := &models.CheckoutResponse{Orders: []*models.Order{
			{ID: uuid.New(), SupplierID: uuid.New(), TotalAmount: 103},
			{ID: uuid.New(), SupplierID: uuid.New(), TotalAmount: 30},
		}}
		checkoutService.On("Checkout", mock.Anything, userID, mock.MatchedBy(func(req *models.CheckoutRequest) bool {
			return req.PaymentMethod == models.PaymentMethodPix
		})).Return(resp, nil).Once()

		body, err := json.Marshal(models.CheckoutRequest{PaymentMethod: models.PaymentMethodPix})
		require.NoError(t, err)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body), userID, models.RoleClient, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var apiResp response.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiResp))
		assert.True(t, apiResp.Success)
		checkoutService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Payment Method", func(t *testing.T) {
		// Arrange
		checkoutService := new(svcMocks.CheckoutService)
		handler := handlers.NewCheckoutHandler(checkoutService)

		body := []byte(`{"payment_method":"bitcoin"}`)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body), userID, models.RoleClient, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		checkoutService.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Partial Submission Reported As Bad Gateway", func(t *testing.T) {
		// Arrange
		checkoutService := new(svcMocks.CheckoutService)
		handler := handlers.NewCheckoutHandler(checkoutService)

		checkoutService.On("Checkout", mock.Anything, userID, mock.Anything).
			Return(nil, appErrors.CheckoutFailedError("Some orders could not be submitted")).Once()

		body, err := json.Marshal(models.CheckoutRequest{PaymentMethod: models.PaymentMethodCash})
		require.NoError(t, err)

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body), userID, models.RoleClient, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadGateway, rr.Code)

		var apiResp response.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiResp))
		assert.False(t, apiResp.Success)
		require.NotNil(t, apiResp.Error)
		assert.Equal(t, appErrors.ErrCodeCheckoutFailed, apiResp.Error.Code)
	})

	t.Run("Failure - Missing Authentication", func(t *testing.T) {
		// Arrange
		checkoutService := new(svcMocks.CheckoutService)
		handler := handlers.NewCheckoutHandler(checkoutService)

		body, err := json.Marshal(models.CheckoutRequest{PaymentMethod: models.PaymentMethodPix})
		require.NoError(t, err)

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body), nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
