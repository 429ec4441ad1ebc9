package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Izioneves/Facilapp-1.2/internal/models"
	"github.com/Izioneves/Facilapp-1.2/internal/utils"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByID(ctx context.Context, id string) (*models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, stripeID string, status models.PaymentStatus) error
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO payments (id, order_id, customer_id, amount, currency, method, status, stripe_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`

	_, err := r.DB.ExecContext(dbCtx, query,
		payment.ID, payment.OrderID, payment.CustomerID, payment.Amount, payment.Currency,
		payment.Method, payment.Status, payment.StripeID)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

func (r *paymentRepository) GetPaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, order_id, customer_id, amount, currency, method, status, stripe_id, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	payment := &models.Payment{}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&payment.ID, &payment.OrderID, &payment.CustomerID, &payment.Amount, &payment.Currency,
		&payment.Method, &payment.Status, &payment.StripeID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) UpdatePaymentStatus(ctx context.Context, stripeID string, status models.PaymentStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE payments
		SET status = $1, updated_at = $2
		WHERE stripe_id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, time.Now(), stripeID)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
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
