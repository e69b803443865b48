package services

import (
	"context"
	"errors"

	"vastra-api/models"
	"vastra-api/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GSTRateBasisPoints is the tax rate applied to the cart subtotal (18%).
const GSTRateBasisPoints = 1800

// AddCartInput is the payload for adding a line to the cart.
type AddCartInput struct {
	ProductID uuid.UUID
	Quantity  int64
}

// CartService defines cart business logic.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, *ServiceError)
	AddItem(ctx context.Context, userID uuid.UUID, in AddCartInput) (*models.CartView, *ServiceError)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) *ServiceError
}

type cartServiceImpl struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{carts: carts, products: products, logger: logger}
}

// GetCart returns the cart with joined product details and totals. A user who
// never added anything gets the empty-cart shape, not an error.
func (s *cartServiceImpl) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, *ServiceError) {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.CartView{UserID: userID, Items: []models.CartItem{}}, nil
		}
		s.logger.Error("Failed to fetch cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch cart"}
	}
	return buildCartView(cart), nil
}

// AddItem merges quantity into an existing line or inserts a new one. The
// merge is a single upsert, so two concurrent adds for the same product end
// up as one line with the summed quantity.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID uuid.UUID, in AddCartInput) (*models.CartView, *ServiceError) {
	if in.Quantity < 1 {
		return nil, &ServiceError{StatusCode: 400, Message: "Quantity must be at least 1"}
	}

	if _, err := s.products.FindByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to look up product", zap.String("product_id", in.ProductID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to add item"}
	}

	cart, err := s.carts.FindOrCreate(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to find or create cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to add item"}
	}

	if err := s.carts.UpsertItem(ctx, cart.ID, in.ProductID, in.Quantity); err != nil {
		s.logger.Error("Failed to upsert cart item",
			zap.String("cart_id", cart.ID.String()),
			zap.String("product_id", in.ProductID.String()),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to add item"}
	}

	updated, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to reload cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to add item"}
	}

	return buildCartView(updated), nil
}

// RemoveItem deletes a line scoped to the caller's own cart. A line id that
// belongs to another user's cart matches nothing and deletes nothing.
func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) *ServiceError {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ServiceError{StatusCode: 404, Message: "Cart not found"}
		}
		s.logger.Error("Failed to fetch cart", zap.String("user_id", userID.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to remove item"}
	}

	removed, err := s.carts.DeleteItem(ctx, cart.ID, itemID)
	if err != nil {
		s.logger.Error("Failed to delete cart item", zap.String("item_id", itemID.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to remove item"}
	}
	if removed == 0 {
		s.logger.Info("Cart item delete matched nothing",
			zap.String("user_id", userID.String()),
			zap.String("item_id", itemID.String()),
		)
	}
	return nil
}

func buildCartView(cart *models.Cart) *models.CartView {
	view := &models.CartView{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  cart.Items,
	}
	if view.Items == nil {
		view.Items = []models.CartItem{}
	}

	for _, item := range view.Items {
		if item.Product != nil {
			view.SubtotalPaise += item.Product.PricePaise * item.Quantity
		}
	}
	view.GSTPaise = roundedGST(view.SubtotalPaise)
	view.TotalPaise = view.SubtotalPaise + view.GSTPaise
	return view
}

// roundedGST applies the GST rate with round-half-up, matching how the
// storefront displays the tax line.
func roundedGST(subtotalPaise int64) int64 {
	return (subtotalPaise*GSTRateBasisPoints + 5000) / 10000
}
