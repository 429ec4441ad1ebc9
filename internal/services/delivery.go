package service

import (
	"context"
	"log/slog"

	"github.com/Izioneves/Facilapp-1.2/internal/cache"
	"github.com/Izioneves/Facilapp-1.2/internal/config"
	"github.com/Izioneves/Facilapp-1.2/internal/errors"
	"github.com/Izioneves/Facilapp-1.2/internal/metrics"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	repository "github.com/Izioneves/Facilapp-1.2/internal/repositories"
	"github.com/Izioneves/Facilapp-1.2/pkg/cep"
	"github.com/google/uuid"
)

type DeliveryService interface {
	// CheckDelivery resolves the delivery fee, distance and eligibility of a
	// store for the user's address, and derives the store's payment options.
	CheckDelivery(ctx context.Context, userID, storeID uuid.UUID) (*models.DeliveryCheckResponse, error)
	// QuoteForStore returns the user's resolved quote for a store, or nil
	// when no check has been performed (or it has expired).
	QuoteForStore(ctx context.Context, userID, storeID uuid.UUID) *models.DeliveryQuote
}

type deliveryService struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	cepClient cep.Client
	quotes    cache.Cache
	cacheCfg  *config.CacheConfig
}

func NewDeliveryService(userRepo repository.UserRepository, storeRepo repository.StoreRepository, cepClient cep.Client, quotes cache.Cache, cacheCfg *config.CacheConfig) DeliveryService {
	return &deliveryService{
		userRepo:  userRepo,
		storeRepo: storeRepo,
		cepClient: cepClient,
		quotes:    quotes,
		cacheCfg:  cacheCfg,
	}
}

func (s *deliveryService) CheckDelivery(ctx context.Context, userID, storeID uuid.UUID) (*models.DeliveryCheckResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	lat, lng, ok := s.resolveCoordinates(ctx, user)
	if !ok {
		// Terminal for this attempt: without coordinates there is nothing
		// to compute and nothing is cached.
		metrics.ObserveDeliveryCheck(string(models.DeliveryStatusLocationUnknown))

		return &models.DeliveryCheckResponse{
			Quote:          models.DeliveryQuote{StoreID: storeID, Status: models.DeliveryStatusLocationUnknown},
			PaymentMethods: models.PaymentMethodsForStore(nil),
		}, nil
	}

	// Fee computation and store configuration are independent reads; issue
	// both at once and join before deriving the response.
	type quoteResult struct {
		quote *models.DeliveryQuote
		err   error
	}

	type storeResult struct {
		store *models.Store
		err   error
	}

	quoteCh := make(chan quoteResult, 1)
	storeCh := make(chan storeResult, 1)

	go func() {
		quote, err := s.storeRepo.CalculateDelivery(ctx, storeID, lat, lng)
		quoteCh <- quoteResult{quote: quote, err: err}
	}()

	go func() {
		store, err := s.storeRepo.GetStoreByID(ctx, storeID)
		storeCh <- storeResult{store: store, err: err}
	}()

	qr := <-quoteCh
	sr := <-storeCh

	if sr.err != nil {
		slog.Warn("Failed to load store configuration for delivery check",
			slog.String("storeId", storeID.String()), slog.String("error", sr.err.Error()))
	}

	quote := models.DeliveryQuote{StoreID: storeID, Status: models.DeliveryStatusUnresolved}

	if qr.err != nil {
		// Fee computation failure is tolerated: keep whatever quote was
		// resolved earlier rather than overwrite it with garbage.
		slog.Error("Delivery fee computation failed",
			slog.String("storeId", storeID.String()), slog.String("error", qr.err.Error()))

		if previous := s.QuoteForStore(ctx, userID, storeID); previous != nil {
			quote = *previous
		}
	} else {
		quote = *qr.quote

		if err := s.quotes.Set(ctx, cache.DeliveryKey(userID, storeID), quote, s.cacheCfg.DeliveryTTL); err != nil {
			slog.Warn("Failed to store delivery quote", slog.String("error", err.Error()))
		}
	}

	metrics.ObserveDeliveryCheck(string(quote.Status))

	return &models.DeliveryCheckResponse{
		Quote:          quote,
		PaymentMethods: models.PaymentMethodsForStore(sr.store),
	}, nil
}

func (s *deliveryService) QuoteForStore(ctx context.Context, userID, storeID uuid.UUID) *models.DeliveryQuote {
	var quote models.DeliveryQuote

	found, err := s.quotes.Get(ctx, cache.DeliveryKey(userID, storeID), &quote)
	if err != nil {
		slog.Warn("Failed to read delivery quote", slog.String("error", err.Error()))

		return nil
	}

	if !found {
		return nil
	}

	return &quote
}

// resolveCoordinates returns the user's position, geocoding the CEP when the
// profile has no stored coordinates.
func (s *deliveryService) resolveCoordinates(ctx context.Context, user *models.User) (float64, float64, bool) {
	addr := user.Address
	if addr == nil || addr.ZipCode == "" {
		return 0, 0, false
	}

	if addr.HasCoordinates() {
		return *addr.Latitude, *addr.Longitude, true
	}

	result, err := s.cepClient.FetchAddress(ctx, addr.ZipCode)
	if err != nil {
		slog.Error("Failed to resolve CEP", slog.String("cep", addr.ZipCode), slog.String("error", err.Error()))

		return 0, 0, false
	}

	if result.Lat == nil || result.Lon == nil {
		return 0, 0, false
	}

	return *result.Lat, *result.Lon, true
}
