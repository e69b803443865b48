package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vastra-api/aws"
	"vastra-api/kafka"
	"vastra-api/models"
	"vastra-api/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// idempotencyTTL is how long a checkout Idempotency-Key stays replayable.
const idempotencyTTL = 24 * time.Hour

// CheckoutService turns the user's cart into an order.
type CheckoutService interface {
	Checkout(ctx context.Context, userID uuid.UUID, idempotencyKey string) (*models.Order, *ServiceError)
}

type checkoutServiceImpl struct {
	carts       repository.CartRepository
	orders      repository.OrderRepository
	idempotency repository.IdempotencyRepository
	producer    kafka.ProducerAPI
	orderTopic  string
	snsClient   aws.SNSPublisher
	snsTopicArn string
	logger      *zap.Logger
}

func NewCheckoutService(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	idempotency repository.IdempotencyRepository,
	producer kafka.ProducerAPI,
	orderTopic string,
	snsClient aws.SNSPublisher,
	snsTopicArn string,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		carts:       carts,
		orders:      orders,
		idempotency: idempotency,
		producer:    producer,
		orderTopic:  orderTopic,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		logger:      logger,
	}
}

// Checkout reads the cart, snapshots prices into an order and clears the cart
// in one transaction. With an Idempotency-Key, a replayed request returns the
// order the first attempt created.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID uuid.UUID, idempotencyKey string) (*models.Order, *ServiceError) {
	if idempotencyKey != "" && s.idempotency != nil {
		existingID, err := s.idempotency.Get(ctx, idempotencyKey)
		if err != nil {
			s.logger.Warn("Idempotency lookup failed", zap.Error(err))
		} else if existingID != "" {
			orderID, parseErr := uuid.Parse(existingID)
			if parseErr == nil {
				order, findErr := s.orders.FindByIDAndUserID(ctx, orderID, userID)
				if findErr == nil {
					s.logger.Info("Checkout replayed via idempotency key",
						zap.String("order_id", order.ID.String()),
						zap.String("user_id", userID.String()),
					)
					return order, nil
				}
			}
		}
	}

	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 400, Message: "Your cart is empty"}
		}
		s.logger.Error("Failed to fetch cart for checkout", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Checkout failed"}
	}
	if len(cart.Items) == 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "Your cart is empty"}
	}

	order := &models.Order{
		ID:          uuid.New(),
		OrderNumber: newOrderNumber(),
		UserID:      userID,
		Status:      models.OrderStatusPending,
	}
	for _, item := range cart.Items {
		if item.Product == nil {
			s.logger.Error("Cart line without product row", zap.String("item_id", item.ID.String()))
			return nil, &ServiceError{StatusCode: 500, Message: "Checkout failed"}
		}
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			OrderID:    order.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PricePaise: item.Product.PricePaise,
		})
		order.TotalPaise += item.Product.PricePaise * item.Quantity
	}

	if err := s.orders.CreateAndClearCart(ctx, order, cart.ID); err != nil {
		s.logger.Error("Checkout transaction failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 500, Message: "Checkout failed"}
	}

	if idempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Set(ctx, idempotencyKey, order.ID.String(), idempotencyTTL); err != nil {
			s.logger.Warn("Failed to record idempotency key", zap.Error(err))
		}
	}

	s.publishOrderPlaced(ctx, order)

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID.String()),
		zap.Int64("total_paise", order.TotalPaise),
	)
	return order, nil
}

// publishOrderPlaced emits the order event to Kafka and, when configured, SNS.
// Both are best-effort; the order is already committed.
func (s *checkoutServiceImpl) publishOrderPlaced(ctx context.Context, order *models.Order) {
	event := models.OrderPlacedEvent{
		Event:       "order.placed",
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		TotalPaise:  order.TotalPaise,
		Timestamp:   time.Now(),
	}
	for _, item := range order.OrderItems {
		event.Items = append(event.Items, models.OrderPlacedItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PricePaise: item.PricePaise,
		})
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal order event", zap.Error(err))
		return
	}

	if s.producer != nil {
		if err := s.producer.Publish(s.orderTopic, eventBytes); err != nil {
			s.logger.Warn("Kafka publish failed", zap.String("topic", s.orderTopic), zap.Error(err))
		}
	}

	if s.snsClient != nil && s.snsTopicArn != "" {
		if err := s.snsClient.Publish(ctx, s.snsTopicArn, eventBytes); err != nil {
			s.logger.Warn("SNS publish failed", zap.String("topic_arn", s.snsTopicArn), zap.Error(err))
		}
	}
}

func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
