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

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error)
	ListProductsBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*models.Product, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (id, supplier_id, store_id, name, description, price, unit, image, stock_quantity, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.ID, product.SupplierID, product.StoreID, product.Name, product.Description,
		product.Price, product.Unit, product.Image, product.StockQuantity, product.Active,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.id, p.supplier_id, p.store_id, p.name, p.description, p.price, p.unit, p.image, p.stock_quantity, p.active, s.name, p.created_at, p.updated_at
		FROM products p
		JOIN stores s ON s.id = p.store_id
		WHERE p.id = $1
	`

	product := &models.Product{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&product.ID, &product.SupplierID, &product.StoreID, &product.Name, &product.Description,
		&product.Price, &product.Unit, &product.Image, &product.StockQuantity, &product.Active,
		&product.StoreName, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, unit = $4, image = $5, stock_quantity = $6, active = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		product.Name, product.Description, product.Price, product.Unit, product.Image,
		product.StockQuantity, product.Active, time.Now(), product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
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

// ListProducts returns active products newest first.
func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM products WHERE active = TRUE`
	if err := r.DB.QueryRowContext(dbCtx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `
		SELECT p.id, p.supplier_id, p.store_id, p.name, p.description, p.price, p.unit, p.image, p.stock_quantity, p.active, s.name, p.created_at, p.updated_at
		FROM products p
		JOIN stores s ON s.id = p.store_id
		WHERE p.active = TRUE
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, size, (page-1)*size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) ListProductsBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.id, p.supplier_id, p.store_id, p.name, p.description, p.price, p.unit, p.image, p.stock_quantity, p.active, s.name, p.created_at, p.updated_at
		FROM products p
		JOIN stores s ON s.id = p.store_id
		WHERE p.supplier_id = $1
		ORDER BY p.created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier products: %w", err)
	}

	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]*models.Product, error) {
	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		err := rows.Scan(
			&product.ID, &product.SupplierID, &product.StoreID, &product.Name, &product.Description,
			&product.Price, &product.Unit, &product.Image, &product.StockQuantity, &product.Active,
			&product.StoreName, &product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}
