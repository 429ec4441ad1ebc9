package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Izioneves/Facilapp-1.2/internal/models"
	"github.com/Izioneves/Facilapp-1.2/internal/utils"
	"github.com/google/uuid"
)

type StoreRepository interface {
	CreateStore(ctx context.Context, store *models.Store) error
	GetStoreByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	GetStoreBySupplier(ctx context.Context, supplierID uuid.UUID) (*models.Store, error)
	UpdateStore(ctx context.Context, store *models.Store) error
	ListStores(ctx context.Context) ([]*models.Store, error)
	CalculateDelivery(ctx context.Context, storeID uuid.UUID, lat, lng float64) (*models.DeliveryQuote, error)
}

type storeRepository struct {
	DB *sql.DB
}

func NewStoreRepo(db *sql.DB) StoreRepository {
	return &storeRepository{DB: db}
}

const storeColumns = `id, supplier_id, name, description, image, latitude, longitude,
		delivery_price, free_delivery_radius, max_delivery_distance, min_order,
		pix_discount, cash_discount, enable_boleto, active, created_at, updated_at`

func (r *storeRepository) CreateStore(ctx context.Context, store *models.Store) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO stores (id, supplier_id, name, description, image, latitude, longitude,
			delivery_price, free_delivery_radius, max_delivery_distance, min_order,
			pix_discount, cash_discount, enable_boleto, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		store.ID, store.SupplierID, store.Name, store.Description, store.Image,
		store.Latitude, store.Longitude, store.DeliveryPrice, store.FreeDeliveryRadius,
		store.MaxDeliveryDistance, store.MinOrder, store.PixDiscount, store.CashDiscount,
		store.EnableBoleto, store.Active,
	).Scan(&store.CreatedAt, &store.UpdatedAt)
}

func (r *storeRepository) GetStoreByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`

	return scanStore(r.DB.QueryRowContext(dbCtx, query, id))
}

func (r *storeRepository) GetStoreBySupplier(ctx context.Context, supplierID uuid.UUID) (*models.Store, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + storeColumns + ` FROM stores WHERE supplier_id = $1`

	return scanStore(r.DB.QueryRowContext(dbCtx, query, supplierID))
}

func (r *storeRepository) UpdateStore(ctx context.Context, store *models.Store) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE stores
		SET name = $1, description = $2, image = $3, delivery_price = $4,
			free_delivery_radius = $5, max_delivery_distance = $6, min_order = $7,
			pix_discount = $8, cash_discount = $9, enable_boleto = $10, active = $11, updated_at = $12
		WHERE id = $13
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		store.Name, store.Description, store.Image, store.DeliveryPrice,
		store.FreeDeliveryRadius, store.MaxDeliveryDistance, store.MinOrder,
		store.PixDiscount, store.CashDiscount, store.EnableBoleto, store.Active,
		time.Now(), store.ID)
	if err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *storeRepository) ListStores(ctx context.Context) ([]*models.Store, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + storeColumns + ` FROM stores WHERE active = TRUE ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	defer rows.Close()

	var stores []*models.Store

	for rows.Next() {
		store := &models.Store{}
		if err := scanStoreRow(rows, store); err != nil {
			return nil, err
		}

		stores = append(stores, store)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating store rows: %w", err)
	}

	return stores, nil
}

// CalculateDelivery runs the in-database fee computation for a buyer
// position. The function applies the store's free radius and maximum
// distance against the haversine distance.
func (r *storeRepository) CalculateDelivery(ctx context.Context, storeID uuid.UUID, lat, lng float64) (*models.DeliveryQuote, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT delivery_fee, distance_km, status FROM calculate_delivery_info($1, $2, $3)`

	quote := &models.DeliveryQuote{StoreID: storeID}

	err := r.DB.QueryRowContext(dbCtx, query, storeID, lat, lng).Scan(&quote.Fee, &quote.DistanceKm, &quote.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate delivery: %w", err)
	}

	return quote, nil
}

func scanStore(row *sql.Row) (*models.Store, error) {
	store := &models.Store{}

	err := row.Scan(
		&store.ID, &store.SupplierID, &store.Name, &store.Description, &store.Image,
		&store.Latitude, &store.Longitude, &store.DeliveryPrice, &store.FreeDeliveryRadius,
		&store.MaxDeliveryDistance, &store.MinOrder, &store.PixDiscount, &store.CashDiscount,
		&store.EnableBoleto, &store.Active, &store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return store, nil
}

func scanStoreRow(rows *sql.Rows, store *models.Store) error {
	err := rows.Scan(
		&store.ID, &store.SupplierID, &store.Name, &store.Description, &store.Image,
		&store.Latitude, &store.Longitude, &store.DeliveryPrice, &store.FreeDeliveryRadius,
		&store.MaxDeliveryDistance, &store.MinOrder, &store.PixDiscount, &store.CashDiscount,
		&store.EnableBoleto, &store.Active, &store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to scan store row: %w", err)
	}

	return nil
}
