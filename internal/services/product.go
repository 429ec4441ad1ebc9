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

type ProductService interface {
	CreateProduct(ctx context.Context, supplierID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, supplierID, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, page, size int) (*models.ProductListResponse, error)
	ListMyProducts(ctx context.Context, supplierID uuid.UUID) ([]*models.Product, error)
}

type productService struct {
	repo      repository.ProductRepository
	storeRepo repository.StoreRepository
	cache     cache.Cache
	cacheCfg  config.CacheConfig
}

func NewProductService(repo repository.ProductRepository, storeRepo repository.StoreRepository, cache cache.Cache, cacheCfg config.CacheConfig) ProductService {
	return &productService{repo: repo, storeRepo: storeRepo, cache: cache, cacheCfg: cacheCfg}
}

func (s *productService) CreateProduct(ctx context.Context, supplierID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error) {
	store, err := s.storeRepo.GetStoreBySupplier(ctx, supplierID)
	if err != nil {
		return nil, errors.NotFoundError("Store not found for supplier").WithError(err)
	}

	product := &models.Product{
		ID:            uuid.New(),
		SupplierID:    supplierID,
		StoreID:       store.ID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Unit:          req.Unit,
		Image:         req.Image,
		StockQuantity: req.Stock,
		Active:        true,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	key := cache.Key("product", id.String())

	var cached models.Product
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, s.cacheCfg.DefaultTTL); err != nil {
		slog.Warn("Failed to cache product", slog.String("productId", id.String()), slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, supplierID, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if product.SupplierID != supplierID {
		return nil, errors.ForbiddenError("Product belongs to another supplier")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Description != nil {
		product.Description = *req.Description
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.Unit != nil {
		product.Unit = *req.Unit
	}

	if req.Image != nil {
		product.Image = *req.Image
	}

	if req.Stock != nil {
		product.StockQuantity = *req.Stock
	}

	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	if err := s.cache.Delete(ctx, cache.Key("product", id.String())); err != nil {
		slog.Warn("Failed to invalidate product cache", slog.String("productId", id.String()), slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, page, size int) (*models.ProductListResponse, error) {
	page, size = normalizePage(page, size)

	products, total, err := s.repo.ListProducts(ctx, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list products").WithError(err)
	}

	return &models.ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		Size:     size,
	}, nil
}

func (s *productService) ListMyProducts(ctx context.Context, supplierID uuid.UUID) ([]*models.Product, error) {
	products, err := s.repo.ListProductsBySupplier(ctx, supplierID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list supplier products").WithError(err)
	}

	return products, nil
}
