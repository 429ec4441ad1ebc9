package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/Izioneves/Facilapp-1.2/internal/errors"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	repoMocks "github.com/Izioneves/Facilapp-1.2/internal/repositories/mocks"
	service "github.com/Izioneves/Facilapp-1.2/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetOrder(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()
	supplierID := uuid.New()
	orderID := uuid.New()

	order := &models.Order{ID: orderID, ClientID: clientID, SupplierID: supplierID, Status: models.OrderStatusPending}

	t.Run("Success - Client Owns Order", func(t *testing.T) {
		// Arrange
		repo := new(repoMocks.OrderRepository)
		svc := service.NewOrderService(repo)
		repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		// Act
		got, err := svc.GetOrder(ctx, &models.Claims{UserID: clientID, Role: models.RoleClient}, orderID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order, got)
	})

	t.Run("Success - Supplier Owns Order", func(t *testing.T) {
		repo := new(repoMocks.OrderRepository)
		svc := service.NewOrderService(repo)
		repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		got, err := svc.GetOrder(ctx, &models.Claims{UserID: supplierID, Role: models.RoleSupplier}, orderID)

		require.NoError(t, err)
		assert.Equal(t, orderID, got.ID)
	})

	t.Run("Failure - Unrelated User", func(t *testing.T) {
		// Arrange
		repo := new(repoMocks.OrderRepository)
		svc := service.NewOrderService(repo)
		repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		// Act
		got, err := svc.GetOrder(ctx, &models.Claims{UserID: uuid.New(), Role: models.RoleClient}, orderID)

		// Assert
		assert.Nil(t, got)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)
	})

	t.Run("Failure - Order Not Found", func(t *testing.T) {
		repo := new(repoMocks.OrderRepository)
		svc := service.NewOrderService(repo)
		repo.On("GetOrderByID", ctx, orderID).Return(nil, sql.ErrNoRows).Once()

		got, err := svc.GetOrder(ctx, &models.Claims{UserID: clientID}, orderID)

		assert.Nil(t, got)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestListMyOrders(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()

	t.Run("Success - Page Defaults Applied", func(t *testing.T) {
		// Arrange
		repo := new(repoMocks.OrderRepository)
		svc := service.NewOrderService(repo)
		orders := []*models.Order{{ID: uuid.New(), ClientID: clientID}}
		repo.On("ListOrdersByClient", ctx, clientID, 1, 20).Return(orders, 1, nil).Once()

		// Act
		resp, err := svc.ListMyOrders(ctx, clientID, 0, 500)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, 20, resp.Size)
		assert.Equal(t, 1, resp.Total)
		assert.Len(t, resp.Orders, 1)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		repo := new(repoMocks.OrderRepository)
		svc := service.NewOrderService(repo)
		repo.On("ListOrdersByClient", ctx, clientID, 2, 10).Return(nil, 0, errors.New("query failed")).Once()

		resp, err := svc.ListMyOrders(ctx, clientID, 2, 10)

		assert.Nil(t, resp)
		assert.Error(t, err)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	supplierID := uuid.New()
	orderID := uuid.New()

	t.Run("Success - Pending To Accepted", func(t *testing.T) {
		// Arrange
		repo := new(repoMocks.OrderRepository)
		svc := service.NewOrderService(repo)
		order := &models.Order{ID: orderID, SupplierID: supplierID, Status: models.OrderStatusPending}
		repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()
		repo.On("UpdateOrderStatus", ctx, orderID, models.OrderStatusAccepted).Return(nil).Once()

		// Act
		got, err := svc.UpdateOrderStatus(ctx, supplierID, orderID, models.OrderStatusAccepted)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusAccepted, got.Status)
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Transition", func(t *testing.T) {
		// Arrange
		repo := new(repoMocks.OrderRepository)
		svc := service.NewOrderService(repo)
		order := &models.Order{ID: orderID, SupplierID: supplierID, Status: models.OrderStatusDelivered}
		repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		// Act
		got, err := svc.UpdateOrderStatus(ctx, supplierID, orderID, models.OrderStatusPending)

		// Assert
		assert.Nil(t, got)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		repo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Another Supplier's Order", func(t *testing.T) {
		repo := new(repoMocks.OrderRepository)
		svc := service.NewOrderService(repo)
		order := &models.Order{ID: orderID, SupplierID: uuid.New(), Status: models.OrderStatusPending}
		repo.On("GetOrderByID", ctx, orderID).Return(order, nil).Once()

		got, err := svc.UpdateOrderStatus(ctx, supplierID, orderID, models.OrderStatusAccepted)

		assert.Nil(t, got)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeForbidden, appErr.Code)
	})
}

func TestSupplierStatement(t *testing.T) {
	ctx := context.Background()
	supplierID := uuid.New()

	t.Run("Success - Statement Returned", func(t *testing.T) {
		// Arrange
		repo := new(repoMocks.OrderRepository)
		svc := service.NewOrderService(repo)
		statement := &models.SupplierStatement{OrderCount: 12, GrossAmount: 843.6}
		repo.On("SupplierStatement", ctx, supplierID).Return(statement, nil).Once()

		// Act
		got, err := svc.SupplierStatement(ctx, supplierID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, statement, got)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		repo := new(repoMocks.OrderRepository)
		svc := service.NewOrderService(repo)
		repo.On("SupplierStatement", ctx, supplierID).Return(nil, errors.New("aggregation failed")).Once()

		got, err := svc.SupplierStatement(ctx, supplierID)

		assert.Nil(t, got)
		assert.Error(t, err)
	})
}
