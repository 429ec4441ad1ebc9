package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Izioneves/Facilapp-1.2/internal/cache"
	"github.com/Izioneves/Facilapp-1.2/internal/config"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	repoMocks "github.com/Izioneves/Facilapp-1.2/internal/repositories/mocks"
	service "github.com/Izioneves/Facilapp-1.2/internal/services"
	svcMocks "github.com/Izioneves/Facilapp-1.2/internal/services/mocks"
	"github.com/Izioneves/Facilapp-1.2/pkg/cep"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func newDeliveryFixture() (*repoMocks.UserRepository, *repoMocks.StoreRepository, *svcMocks.CepClient, *svcMocks.Cache, service.DeliveryService) {
	userRepo := new(repoMocks.UserRepository)
	storeRepo := new(repoMocks.StoreRepository)
	cepClient := new(svcMocks.CepClient)
	quotes := new(svcMocks.Cache)
	cfg := &config.CacheConfig{DefaultTTL: 5 * time.Minute, DeliveryTTL: 30 * time.Minute}
	svc := service.NewDeliveryService(userRepo, storeRepo, cepClient, quotes, cfg)

	return userRepo, storeRepo, cepClient, quotes, svc
}

func TestCheckDelivery(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	storeID := uuid.New()

	userWithCoords := &models.User{
		ID: userID,
		Address: &models.Address{
			Street: "Rua A", City: "Recife", State: "PE", ZipCode: "50000000",
			Latitude: floatPtr(-8.05), Longitude: floatPtr(-34.9),
		},
	}

	store := &models.Store{ID: storeID, PixDiscount: 5, EnableBoleto: true}

	t.Run("Success - Quote Resolved And Stored", func(t *testing.T) {
		// Arrange
		userRepo, storeRepo, _, quotes, svc := newDeliveryFixture()
		quote := &models.DeliveryQuote{StoreID: storeID, Fee: 8, DistanceKm: 3.2, Status: models.DeliveryStatusPaid}
		userRepo.On("GetUserByID", ctx, userID).Return(userWithCoords, nil).Once()
		storeRepo.On("CalculateDelivery", ctx, storeID, -8.05, -34.9).Return(quote, nil).Once()
		storeRepo.On("GetStoreByID", ctx, storeID).Return(store, nil).Once()
		quotes.On("Set", ctx, cache.DeliveryKey(userID, storeID), *quote, 30*time.Minute).Return(nil).Once()

		// Act
		resp, err := svc.CheckDelivery(ctx, userID, storeID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryStatusPaid, resp.Quote.Status)
		assert.InDelta(t, 8.0, resp.Quote.Fee, 0.001)
		require.NotEmpty(t, resp.PaymentMethods)
		assert.Equal(t, "Pix (Aprovação imediata - 5% OFF)", resp.PaymentMethods[0].Label)
		assert.Equal(t, models.PaymentMethodBoleto, resp.PaymentMethods[len(resp.PaymentMethods)-1].Type)
		quotes.AssertExpectations(t)
	})

	t.Run("Success - Missing Address Is Location Unknown", func(t *testing.T) {
		// Arrange
		userRepo, _, _, quotes, svc := newDeliveryFixture()
		userRepo.On("GetUserByID", ctx, userID).Return(&models.User{ID: userID}, nil).Once()

		// Act
		resp, err := svc.CheckDelivery(ctx, userID, storeID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryStatusLocationUnknown, resp.Quote.Status)
		assert.NotEmpty(t, resp.PaymentMethods)
		quotes.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - CEP Geocoded When Coordinates Missing", func(t *testing.T) {
		// Arrange
		userRepo, storeRepo, cepClient, quotes, svc := newDeliveryFixture()
		userNoCoords := &models.User{
			ID:      userID,
			Address: &models.Address{Street: "Rua A", City: "Recife", State: "PE", ZipCode: "50000000"},
		}
		quote := &models.DeliveryQuote{StoreID: storeID, Status: models.DeliveryStatusFree}
		userRepo.On("GetUserByID", ctx, userID).Return(userNoCoords, nil).Once()
		cepClient.On("FetchAddress", ctx, "50000000").
			Return(&cep.Result{City: "Recife", Lat: floatPtr(-8.05), Lon: floatPtr(-34.9)}, nil).Once()
		storeRepo.On("CalculateDelivery", ctx, storeID, -8.05, -34.9).Return(quote, nil).Once()
		storeRepo.On("GetStoreByID", ctx, storeID).Return(store, nil).Once()
		quotes.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		// Act
		resp, err := svc.CheckDelivery(ctx, userID, storeID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryStatusFree, resp.Quote.Status)
		cepClient.AssertExpectations(t)
	})

	t.Run("Success - Geocode Failure Is Location Unknown", func(t *testing.T) {
		// Arrange
		userRepo, _, cepClient, _, svc := newDeliveryFixture()
		userNoCoords := &models.User{
			ID:      userID,
			Address: &models.Address{Street: "Rua A", City: "Recife", State: "PE", ZipCode: "99999999"},
		}
		userRepo.On("GetUserByID", ctx, userID).Return(userNoCoords, nil).Once()
		cepClient.On("FetchAddress", ctx, "99999999").Return(nil, errors.New("CEP not found")).Once()

		// Act
		resp, err := svc.CheckDelivery(ctx, userID, storeID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryStatusLocationUnknown, resp.Quote.Status)
	})

	t.Run("Success - Fee Failure Keeps Previous Quote", func(t *testing.T) {
		// Arrange
		userRepo, storeRepo, _, quotes, svc := newDeliveryFixture()
		previous := models.DeliveryQuote{StoreID: storeID, Fee: 6, Status: models.DeliveryStatusPaid}
		userRepo.On("GetUserByID", ctx, userID).Return(userWithCoords, nil).Once()
		storeRepo.On("CalculateDelivery", ctx, storeID, -8.05, -34.9).Return(nil, errors.New("rpc failed")).Once()
		storeRepo.On("GetStoreByID", ctx, storeID).Return(store, nil).Once()
		quotes.On("Get", ctx, cache.DeliveryKey(userID, storeID), mock.AnythingOfType("*models.DeliveryQuote")).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*models.DeliveryQuote) = previous
			}).Return(true, nil).Once()

		// Act
		resp, err := svc.CheckDelivery(ctx, userID, storeID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, previous, resp.Quote)
		quotes.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - Fee Failure Without Previous Quote Is Unresolved", func(t *testing.T) {
		// Arrange
		userRepo, storeRepo, _, quotes, svc := newDeliveryFixture()
		userRepo.On("GetUserByID", ctx, userID).Return(userWithCoords, nil).Once()
		storeRepo.On("CalculateDelivery", ctx, storeID, -8.05, -34.9).Return(nil, errors.New("rpc failed")).Once()
		storeRepo.On("GetStoreByID", ctx, storeID).Return(store, nil).Once()
		quotes.On("Get", ctx, mock.Anything, mock.Anything).Return(false, nil).Once()

		// Act
		resp, err := svc.CheckDelivery(ctx, userID, storeID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.DeliveryStatusUnresolved, resp.Quote.Status)
	})

	t.Run("Failure - Unknown User", func(t *testing.T) {
		userRepo, _, _, _, svc := newDeliveryFixture()
		userRepo.On("GetUserByID", ctx, userID).Return(nil, errors.New("no rows")).Once()

		resp, err := svc.CheckDelivery(ctx, userID, storeID)

		assert.Nil(t, resp)
		assert.Error(t, err)
	})
}

func TestQuoteForStore(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	storeID := uuid.New()

	t.Run("Success - Quote Found", func(t *testing.T) {
		// Arrange
		_, _, _, quotes, svc := newDeliveryFixture()
		stored := models.DeliveryQuote{StoreID: storeID, Fee: 8, Status: models.DeliveryStatusPaid}
		quotes.On("Get", ctx, cache.DeliveryKey(userID, storeID), mock.AnythingOfType("*models.DeliveryQuote")).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*models.DeliveryQuote) = stored
			}).Return(true, nil).Once()

		// Act
		quote := svc.QuoteForStore(ctx, userID, storeID)

		// Assert
		require.NotNil(t, quote)
		assert.Equal(t, stored, *quote)
	})

	t.Run("Success - No Quote Yields Nil", func(t *testing.T) {
		_, _, _, quotes, svc := newDeliveryFixture()
		quotes.On("Get", ctx, mock.Anything, mock.Anything).Return(false, nil).Once()

		assert.Nil(t, svc.QuoteForStore(ctx, userID, storeID))
	})

	t.Run("Success - Read Error Yields Nil", func(t *testing.T) {
		_, _, _, quotes, svc := newDeliveryFixture()
		quotes.On("Get", ctx, mock.Anything, mock.Anything).Return(false, errors.New("redis down")).Once()

		assert.Nil(t, svc.QuoteForStore(ctx, userID, storeID))
	})
}
