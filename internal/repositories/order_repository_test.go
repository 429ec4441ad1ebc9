package repository_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	repository "github.com/Izioneves/Facilapp-1.2/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer db.Close()

	repo := repository.NewOrderRepo(db)

	order := &models.Order{
		ID:            uuid.New(),
		ClientID:      uuid.New(),
		SupplierID:    uuid.New(),
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentMethodPix,
		DeliveryAddress: &models.DeliverySnapshot{
			Address:    models.Address{Street: "Rua A", City: "Recife", State: "PE", ZipCode: "50000000"},
			DistanceKm: 3.42,
		},
		Subtotal:    110,
		Discount:    5.5,
		DeliveryFee: 8,
		TotalAmount: 112.5,
		Items: []models.OrderItem{
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: 2, UnitPrice: 55},
		},
	}

	t.Run("Success - Order And Items Inserted", func(t *testing.T) {
		// Arrange
		addressJSON, marshalErr := json.Marshal(order.DeliveryAddress)
		require.NoError(t, marshalErr)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
			WithArgs(order.ID, order.ClientID, order.SupplierID, order.Status, order.PaymentMethod,
				addressJSON, order.Subtotal, order.Discount, order.DeliveryFee, order.TotalAmount).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO order_items`)).
			WithArgs(order.Items[0].ID, order.ID, order.Items[0].ProductID, 2, 55.0).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.CreateOrder(context.Background(), order)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Order Insert Error", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO orders`)).
			WillReturnError(errors.New("pq: check constraint violated"))

		err := repo.CreateOrder(context.Background(), order)

		assert.Error(t, err)
	})
}

func TestGetOrderByID_Repo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer db.Close()

	repo := repository.NewOrderRepo(db)
	orderID := uuid.New()
	clientID := uuid.New()
	supplierID := uuid.New()

	t.Run("Success - Order With Items And Client Contact", func(t *testing.T) {
		// Arrange
		addressJSON, marshalErr := json.Marshal(models.DeliverySnapshot{Address: models.Address{City: "Recife", State: "PE"}})
		require.NoError(t, marshalErr)

		mock.ExpectQuery(regexp.QuoteMeta(`JOIN profiles p ON p.id = o.client_id WHERE o.id = $1`)).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{
				"client_id", "supplier_id", "status", "payment_method", "delivery_address",
				"subtotal", "discount", "delivery_fee", "total_amount", "name", "phone",
				"created_at", "updated_at",
			}).AddRow(clientID, supplierID, "pending", "pix", addressJSON,
				110.0, 5.5, 8.0, 112.5, "Maria Silva", "81999990000", time.Now(), time.Now()))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM order_items WHERE order_id = $1`)).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "quantity", "unit_price", "created_at"}).
				AddRow(uuid.New(), uuid.New(), 2, 55.0, time.Now()))

		// Act
		order, err := repo.GetOrderByID(context.Background(), orderID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, clientID, order.ClientID)
		assert.Equal(t, "Maria Silva", order.ClientName)
		assert.Equal(t, "Recife", order.DeliveryAddress.City)
		require.Len(t, order.Items, 1)
		assert.Equal(t, 2, order.Items[0].Quantity)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE o.id = $1`)).
			WithArgs(orderID).
			WillReturnError(sql.ErrNoRows)

		order, err := repo.GetOrderByID(context.Background(), orderID)

		assert.Nil(t, order)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestListOrdersByClient_Repo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer db.Close()

	repo := repository.NewOrderRepo(db)
	clientID := uuid.New()

	t.Run("Success - Count And Page", func(t *testing.T) {
		// Arrange
		addressJSON, marshalErr := json.Marshal(models.DeliverySnapshot{Address: models.Address{City: "Olinda"}})
		require.NoError(t, marshalErr)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders WHERE client_id = $1`)).
			WithArgs(clientID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE o.client_id = $1 ORDER BY o.created_at DESC LIMIT $2 OFFSET $3`)).
			WithArgs(clientID, 20, 0).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "client_id", "supplier_id", "status", "payment_method", "delivery_address",
				"subtotal", "discount", "delivery_fee", "total_amount", "name", "phone",
				"created_at", "updated_at",
			}).AddRow(uuid.New(), clientID, uuid.New(), "delivered", "cash", addressJSON,
				30.0, 3.0, 0.0, 27.0, "Maria Silva", "81999990000", time.Now(), time.Now()))

		// Act
		orders, total, err := repo.ListOrdersByClient(context.Background(), clientID, 1, 20)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 7, total)
		require.Len(t, orders, 1)
		assert.Equal(t, models.OrderStatusDelivered, orders[0].Status)
	})

	t.Run("Failure - Count Error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders WHERE client_id = $1`)).
			WillReturnError(errors.New("query failed"))

		orders, total, err := repo.ListOrdersByClient(context.Background(), clientID, 1, 20)

		assert.Nil(t, orders)
		assert.Zero(t, total)
		assert.Error(t, err)
	})
}

func TestUpdateOrderStatus_Repo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer db.Close()

	repo := repository.NewOrderRepo(db)
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`)).
			WithArgs(models.OrderStatusAccepted, sqlmock.AnyArg(), orderID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateOrderStatus(context.Background(), orderID, models.OrderStatusAccepted))
	})

	t.Run("Failure - Order Missing", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateOrderStatus(context.Background(), orderID, models.OrderStatusAccepted)

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestSupplierStatement_Repo(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer db.Close()

	repo := repository.NewOrderRepo(db)
	supplierID := uuid.New()

	t.Run("Success - Delivered Orders Totalled", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM orders WHERE supplier_id = $1 AND status = $2`)).
			WithArgs(supplierID, models.OrderStatusDelivered).
			WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(12, 843.6))

		// Act
		statement, err := repo.SupplierStatement(context.Background(), supplierID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 12, statement.OrderCount)
		assert.InDelta(t, 843.6, statement.GrossAmount, 0.001)
	})
}
