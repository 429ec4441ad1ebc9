package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Izioneves/Facilapp-1.2/internal/errors"
	"github.com/Izioneves/Facilapp-1.2/internal/metrics"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	repository "github.com/Izioneves/Facilapp-1.2/internal/repositories"
	"github.com/Izioneves/Facilapp-1.2/pkg/sendgrid"
	"github.com/google/uuid"
)

type CheckoutService interface {
	// Checkout partitions the user's cart by supplier, totals each group and
	// submits one order per supplier. The cart is cleared only when every
	// order was accepted.
	Checkout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
}

type checkoutService struct {
	userRepo  repository.UserRepository
	cartRepo  repository.CartRepository
	storeRepo repository.StoreRepository
	orderRepo repository.OrderRepository
	delivery  DeliveryService
	email     sendgrid.EmailService
}

func NewCheckoutService(userRepo repository.UserRepository, cartRepo repository.CartRepository, storeRepo repository.StoreRepository, orderRepo repository.OrderRepository, delivery DeliveryService, email sendgrid.EmailService) CheckoutService {
	return &checkoutService{
		userRepo:  userRepo,
		cartRepo:  cartRepo,
		storeRepo: storeRepo,
		orderRepo: orderRepo,
		delivery:  delivery,
		email:     email,
	}
}

// SupplierGroup is one supplier's slice of the cart, in encounter order.
type SupplierGroup struct {
	SupplierID uuid.UUID
	StoreID    uuid.UUID
	Items      []models.CartItem
}

// PartitionBySupplier groups cart items by supplier, preserving the order in
// which suppliers first appear in the cart. The store id is taken from the
// group's first item.
func PartitionBySupplier(items []models.CartItem) []SupplierGroup {
	index := make(map[uuid.UUID]int, len(items))

	var groups []SupplierGroup

	for _, item := range items {
		i, seen := index[item.SupplierID]
		if !seen {
			i = len(groups)
			index[item.SupplierID] = i
			groups = append(groups, SupplierGroup{SupplierID: item.SupplierID, StoreID: item.StoreID})
		}

		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}

// BuildOrderDraft totals one supplier group. The discount comes from the
// store's configuration for the chosen payment method; the delivery fee is
// attached only when the quote was resolved for this group's own store.
// The total is clamped at zero.
func BuildOrderDraft(group SupplierGroup, clientID uuid.UUID, method models.PaymentMethodType, store *models.Store, quote *models.DeliveryQuote, address models.Address) *models.Order {
	var subtotal float64
	for _, item := range group.Items {
		subtotal += item.LineTotal()
	}

	discount := subtotal * store.DiscountPercent(method) / 100

	var deliveryFee, distanceKm float64

	if store != nil && quote.Applicable() && quote.StoreID == store.ID {
		deliveryFee = quote.Fee
		distanceKm = quote.DistanceKm
	}

	total := subtotal + deliveryFee - discount
	if total < 0 {
		total = 0
	}

	order := &models.Order{
		ID:            uuid.New(),
		ClientID:      clientID,
		SupplierID:    group.SupplierID,
		Status:        models.OrderStatusPending,
		PaymentMethod: method,
		DeliveryAddress: &models.DeliverySnapshot{
			Address:    address,
			DistanceKm: distanceKm,
		},
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: deliveryFee,
		TotalAmount: total,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	for _, item := range group.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			CreatedAt: order.CreatedAt,
		})
	}

	return order
}

func (s *checkoutService) Checkout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.UnauthorizedError("Authentication required").WithError(err)
	}

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	if len(cart.Items) == 0 {
		return nil, errors.BadRequestError("Cannot checkout an empty cart")
	}

	address := req.DeliveryAddress
	if address == nil {
		address = user.Address
	}

	if address == nil {
		return nil, errors.BadRequestError("A delivery address is required")
	}

	// Build every draft before submitting anything: one store configuration
	// read per supplier group, passed down into the pure totalizer.
	groups := PartitionBySupplier(cart.Items)
	orders := make([]*models.Order, 0, len(groups))

	for _, group := range groups {
		store, err := s.storeRepo.GetStoreByID(ctx, group.StoreID)
		if err != nil {
			// Tolerated: the group is totalled without a discount.
			slog.Warn("Failed to fetch store config for checkout",
				slog.String("storeId", group.StoreID.String()), slog.String("error", err.Error()))

			store = nil
		}

		quote := s.delivery.QuoteForStore(ctx, userID, group.StoreID)

		orders = append(orders, BuildOrderDraft(group, userID, req.PaymentMethod, store, quote, *address))
	}

	// Sequential submission, no compensation: a failed supplier leaves the
	// cart untouched so the buyer can retry the whole checkout.
	allSuccess := true

	for _, order := range orders {
		if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
			slog.Error("Order creation failed",
				slog.String("supplierId", order.SupplierID.String()), slog.String("error", err.Error()))

			allSuccess = false

			continue
		}

		metrics.ObserveCheckoutOrder(string(order.PaymentMethod))
	}

	if !allSuccess {
		return nil, errors.CheckoutFailedError("Failed to create some orders")
	}

	cart.Items = nil
	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		// Orders are already placed; an uncleared cart is recoverable.
		slog.Error("Failed to clear cart after checkout", slog.String("error", err.Error()))
	}

	s.sendConfirmation(ctx, user, orders)

	return &models.CheckoutResponse{Orders: orders}, nil
}

func (s *checkoutService) sendConfirmation(ctx context.Context, user *models.User, orders []*models.Order) {
	if s.email == nil {
		return
	}

	var total float64
	for _, order := range orders {
		total += order.TotalAmount
	}

	req := &models.EmailNotificationRequest{
		To:      user.Email,
		Subject: "Pedido confirmado - FacilApp",
		Content: fmt.Sprintf("Olá %s, recebemos seu pedido em %d loja(s), no total de R$ %.2f.", user.Name, len(orders), total),
	}

	if err := s.email.Send(ctx, req); err != nil {
		slog.Warn("Failed to send order confirmation email", slog.String("error", err.Error()))
	}
}
