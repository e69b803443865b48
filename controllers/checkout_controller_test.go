package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"vastra-api/controllers"
	"vastra-api/middleware"
	"vastra-api/models"
	"vastra-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// --- Mock CheckoutService ---

type mockCheckoutService struct {
	checkoutFn func(ctx context.Context, userID uuid.UUID, idempotencyKey string) (*models.Order, *services.ServiceError)
}

func (m *mockCheckoutService) Checkout(ctx context.Context, userID uuid.UUID, idempotencyKey string) (*models.Order, *services.ServiceError) {
	return m.checkoutFn(ctx, userID, idempotencyKey)
}

func setupCheckoutRouter(svc services.CheckoutService) *gin.Engine {
	r := gin.New()
	cc := controllers.NewCheckoutController(svc)

	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserContextKey, testUserID)
		c.Next()
	})

	r.POST("/checkout", cc.Checkout)
	return r
}

func TestCheckoutHandler(t *testing.T) {
	order := &models.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-20260831-DEADBEEF",
		UserID:      testUserID,
		TotalPaise:  1299900,
		Status:      models.OrderStatusPending,
	}
	svc := &mockCheckoutService{
		checkoutFn: func(_ context.Context, userID uuid.UUID, key string) (*models.Order, *services.ServiceError) {
			assert.Equal(t, testUserID, userID)
			assert.Equal(t, "retry-key-1", key)
			return order, nil
		},
	}
	r := setupCheckoutRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/checkout", nil)
	req.Header.Set("Idempotency-Key", "retry-key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), order.OrderNumber)
	assert.Contains(t, w.Body.String(), "1299900")
}

func TestCheckoutHandlerEmptyCart(t *testing.T) {
	svc := &mockCheckoutService{
		checkoutFn: func(context.Context, uuid.UUID, string) (*models.Order, *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: 400, Message: "Your cart is empty"}
		},
	}
	r := setupCheckoutRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/checkout", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Your cart is empty")
}

func TestCheckoutHandlerRequiresUser(t *testing.T) {
	r := gin.New()
	cc := controllers.NewCheckoutController(&mockCheckoutService{})
	r.POST("/checkout", cc.Checkout)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/checkout", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
