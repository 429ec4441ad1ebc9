package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	appErrors "github.com/Izioneves/Facilapp-1.2/internal/errors"
	"github.com/Izioneves/Facilapp-1.2/internal/models"
	repository "github.com/Izioneves/Facilapp-1.2/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, req *models.RemoveItemRequest) (*models.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.createCart(ctx, userID)
		}

		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) createCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart := &models.Cart{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.cartRepo.CreateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

// AddItem snapshots the product into the cart, merging quantities when the
// product is already present.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, appErrors.NotFoundError("Product not found").WithError(err)
	}

	if !product.Active {
		return nil, appErrors.BadRequestError("Product is no longer available")
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	if i := cart.Find(req.ProductID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID:  product.ID,
			SupplierID: product.SupplierID,
			StoreID:    product.StoreID,
			Name:       product.Name,
			Unit:       product.Unit,
			Image:      product.Image,
			UnitPrice:  product.Price,
			Quantity:   quantity,
		})
	}

	return s.saveCart(ctx, cart)
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.Find(req.ProductID)
	if i < 0 {
		return nil, appErrors.BadRequestError("Item not found in the cart")
	}

	newQty := cart.Items[i].Quantity + req.Delta
	if newQty > 0 {
		cart.Items[i].Quantity = newQty
	} else {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	}

	return s.saveCart(ctx, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, req *models.RemoveItemRequest) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.Find(req.ProductID)
	if i < 0 {
		return nil, appErrors.BadRequestError("Item not found in the cart")
	}

	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	return s.saveCart(ctx, cart)
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Items = nil

	return s.saveCart(ctx, cart)
}

func (s *cartService) saveCart(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	cart.UpdatedAt = time.Now()

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}
