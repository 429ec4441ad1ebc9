package service

import (
	"context"

	"github.com/Izioneves/Facilapp-1.2/internal/errors"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	repository "github.com/Izioneves/Facilapp-1.2/internal/repositories"
	"github.com/google/uuid"
)

type OrderService interface {
	GetOrder(ctx context.Context, requester *models.Claims, id uuid.UUID) (*models.Order, error)
	ListMyOrders(ctx context.Context, clientID uuid.UUID, page, size int) (*models.OrderHistoryResponse, error)
	ListSupplierOrders(ctx context.Context, supplierID uuid.UUID, page, size int) (*models.OrderHistoryResponse, error)
	UpdateOrderStatus(ctx context.Context, supplierID, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	SupplierStatement(ctx context.Context, supplierID uuid.UUID) (*models.SupplierStatement, error)
}

type orderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

// GetOrder returns the order only to its client or its supplier.
func (s *orderService) GetOrder(ctx context.Context, requester *models.Claims, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if order.ClientID != requester.UserID && order.SupplierID != requester.UserID {
		return nil, errors.ForbiddenError("You do not have access to this order")
	}

	return order, nil
}

func (s *orderService) ListMyOrders(ctx context.Context, clientID uuid.UUID, page, size int) (*models.OrderHistoryResponse, error) {
	page, size = normalizePage(page, size)

	orders, total, err := s.repo.ListOrdersByClient(ctx, clientID, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list orders").WithError(err)
	}

	return &models.OrderHistoryResponse{Orders: orders, Total: total, Page: page, Size: size}, nil
}

func (s *orderService) ListSupplierOrders(ctx context.Context, supplierID uuid.UUID, page, size int) (*models.OrderHistoryResponse, error) {
	page, size = normalizePage(page, size)

	orders, total, err := s.repo.ListOrdersBySupplier(ctx, supplierID, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list supplier orders").WithError(err)
	}

	return &models.OrderHistoryResponse{Orders: orders, Total: total, Page: page, Size: size}, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, supplierID, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if order.SupplierID != supplierID {
		return nil, errors.ForbiddenError("Order belongs to another supplier")
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, errors.BadRequestError("Invalid status transition from " + string(order.Status) + " to " + string(status))
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	order.Status = status

	return order, nil
}

func (s *orderService) SupplierStatement(ctx context.Context, supplierID uuid.UUID) (*models.SupplierStatement, error) {
	statement, err := s.repo.SupplierStatement(ctx, supplierID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to build supplier statement").WithError(err)
	}

	return statement, nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 20
	}

	return page, size
}
