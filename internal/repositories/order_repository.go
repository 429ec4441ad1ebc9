package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Izioneves/Facilapp-1.2/internal/models"
	"github.com/Izioneves/Facilapp-1.2/internal/utils"
	"github.com/google/uuid"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByClient(ctx context.Context, clientID uuid.UUID, page, size int) ([]*models.Order, int, error)
	ListOrdersBySupplier(ctx context.Context, supplierID uuid.UUID, page, size int) ([]*models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	SupplierStatement(ctx context.Context, supplierID uuid.UUID) (*models.SupplierStatement, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	deliveryAddress, err := json.Marshal(order.DeliveryAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery address: %w", err)
	}

	query := `
		INSERT INTO orders (id, client_id, supplier_id, status, payment_method, delivery_address, subtotal, discount, delivery_fee, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`

	_, err = r.DB.ExecContext(dbCtx, query,
		order.ID, order.ClientID, order.SupplierID, order.Status, order.PaymentMethod,
		deliveryAddress, order.Subtotal, order.Discount, order.DeliveryFee, order.TotalAmount)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range order.Items {
		query := `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, created_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
		`

		_, err := r.DB.ExecContext(dbCtx, query, item.ID, order.ID, item.ProductID, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("failed to insert an order item: %w", err)
		}
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{ID: id}

	query := `
		SELECT o.client_id, o.supplier_id, o.status, o.payment_method, o.delivery_address, o.subtotal, o.discount, o.delivery_fee, o.total_amount, p.name, p.phone, o.created_at, o.updated_at
		FROM orders o
		JOIN profiles p ON p.id = o.client_id
		WHERE o.id = $1
	`

	var addressJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&order.ClientID, &order.SupplierID, &order.Status, &order.PaymentMethod, &addressJSON,
		&order.Subtotal, &order.Discount, &order.DeliveryFee, &order.TotalAmount,
		&order.ClientName, &order.ClientPhone, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	if err := json.Unmarshal(addressJSON, &order.DeliveryAddress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delivery address: %w", err)
	}

	items, err := r.loadItems(dbCtx, id)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	query := `
		SELECT id, product_id, quantity, unit_price, created_at
		FROM order_items
		WHERE order_id = $1
	`

	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {
		item := models.OrderItem{OrderID: orderID}

		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}

func (r *orderRepository) ListOrdersByClient(ctx context.Context, clientID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	return r.listOrders(ctx, "client_id", clientID, page, size)
}

func (r *orderRepository) ListOrdersBySupplier(ctx context.Context, supplierID uuid.UUID, page, size int) ([]*models.Order, int, error) {
	return r.listOrders(ctx, "supplier_id", supplierID, page, size)
}

func (r *orderRepository) listOrders(ctx context.Context, column string, id uuid.UUID, page, size int) ([]*models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM orders WHERE %s = $1`, column)
	if err := r.DB.QueryRowContext(dbCtx, countQuery, id).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT o.id, o.client_id, o.supplier_id, o.status, o.payment_method, o.delivery_address, o.subtotal, o.discount, o.delivery_fee, o.total_amount, p.name, p.phone, o.created_at, o.updated_at
		FROM orders o
		JOIN profiles p ON p.id = o.client_id
		WHERE o.%s = $1
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3
	`, column)

	rows, err := r.DB.QueryContext(dbCtx, query, id, size, (page-1)*size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []*models.Order

	for rows.Next() {
		order := &models.Order{}

		var addressJSON []byte

		err := rows.Scan(
			&order.ID, &order.ClientID, &order.SupplierID, &order.Status, &order.PaymentMethod,
			&addressJSON, &order.Subtotal, &order.Discount, &order.DeliveryFee, &order.TotalAmount,
			&order.ClientName, &order.ClientPhone, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order row: %w", err)
		}

		if err := json.Unmarshal(addressJSON, &order.DeliveryAddress); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal delivery address: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, total, nil
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
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

// SupplierStatement totals the supplier's delivered orders.
func (r *orderRepository) SupplierStatement(ctx context.Context, supplierID uuid.UUID) (*models.SupplierStatement, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE supplier_id = $1 AND status = $2
	`

	statement := &models.SupplierStatement{}

	err := r.DB.QueryRowContext(dbCtx, query, supplierID, models.OrderStatusDelivered).Scan(&statement.OrderCount, &statement.GrossAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to build supplier statement: %w", err)
	}

	return statement, nil
}
