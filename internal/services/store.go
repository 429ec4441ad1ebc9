package service

import (
	"context"
	"log/slog"

	"github.com/Izioneves/Facilapp-1.2/internal/cache"
	"github.com/Izioneves/Facilapp-1.2/internal/config"
	"github.com/Izioneves/Facilapp-1.2/internal/errors"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	repository "github.com/Izioneves/Facilapp-1.2/internal/repositories"
	"github.com/google/uuid"
)

type StoreService interface {
	GetStoreByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	GetMyStore(ctx context.Context, supplierID uuid.UUID) (*models.Store, error)
	UpdateStore(ctx context.Context, supplierID uuid.UUID, req *models.UpdateStoreRequest) (*models.Store, error)
	ListStores(ctx context.Context) ([]*models.Store, error)
}

type storeService struct {
	repo     repository.StoreRepository
	cache    cache.Cache
	cacheCfg config.CacheConfig
}

func NewStoreService(repo repository.StoreRepository, cache cache.Cache, cacheCfg config.CacheConfig) StoreService {
	return &storeService{repo: repo, cache: cache, cacheCfg: cacheCfg}
}

func (s *storeService) GetStoreByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	key := cache.Key(cache.StoreKeyPrefix, id.String())

	var cached models.Store
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	store, err := s.repo.GetStoreByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Store not found").WithError(err)
	}

	if err := s.cache.Set(ctx, key, store, s.cacheCfg.DefaultTTL); err != nil {
		slog.Warn("Failed to cache store", slog.String("storeId", id.String()), slog.String("error", err.Error()))
	}

	return store, nil
}

func (s *storeService) GetMyStore(ctx context.Context, supplierID uuid.UUID) (*models.Store, error) {
	store, err := s.repo.GetStoreBySupplier(ctx, supplierID)
	if err != nil {
		return nil, errors.NotFoundError("Store not found for supplier").WithError(err)
	}

	return store, nil
}

func (s *storeService) UpdateStore(ctx context.Context, supplierID uuid.UUID, req *models.UpdateStoreRequest) (*models.Store, error) {
	store, err := s.repo.GetStoreBySupplier(ctx, supplierID)
	if err != nil {
		return nil, errors.NotFoundError("Store not found for supplier").WithError(err)
	}

	applyStoreUpdate(store, req)

	if err := s.repo.UpdateStore(ctx, store); err != nil {
		return nil, errors.DatabaseError("Failed to update store").WithError(err)
	}

	if err := s.cache.Delete(ctx, cache.Key(cache.StoreKeyPrefix, store.ID.String())); err != nil {
		slog.Warn("Failed to invalidate store cache", slog.String("storeId", store.ID.String()), slog.String("error", err.Error()))
	}

	return store, nil
}

func (s *storeService) ListStores(ctx context.Context) ([]*models.Store, error) {
	stores, err := s.repo.ListStores(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list stores").WithError(err)
	}

	return stores, nil
}

func applyStoreUpdate(store *models.Store, req *models.UpdateStoreRequest) {
	if req.Name != nil {
		store.Name = *req.Name
	}

	if req.Description != nil {
		store.Description = *req.Description
	}

	if req.Image != nil {
		store.Image = *req.Image
	}

	if req.DeliveryPrice != nil {
		store.DeliveryPrice = *req.DeliveryPrice
	}

	if req.FreeDeliveryRadius != nil {
		store.FreeDeliveryRadius = *req.FreeDeliveryRadius
	}

	if req.MaxDeliveryDistance != nil {
		store.MaxDeliveryDistance = *req.MaxDeliveryDistance
	}

	if req.MinOrder != nil {
		store.MinOrder = *req.MinOrder
	}

	if req.PixDiscount != nil {
		store.PixDiscount = *req.PixDiscount
	}

	if req.CashDiscount != nil {
		store.CashDiscount = *req.CashDiscount
	}

	if req.EnableBoleto != nil {
		store.EnableBoleto = *req.EnableBoleto
	}

	if req.Active != nil {
		store.Active = *req.Active
	}
}
