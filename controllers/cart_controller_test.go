package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
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

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock CartService ---

type mockCartService struct {
	getFn    func(ctx context.Context, userID uuid.UUID) (*models.CartView, *services.ServiceError)
	addFn    func(ctx context.Context, userID uuid.UUID, in services.AddCartInput) (*models.CartView, *services.ServiceError)
	removeFn func(ctx context.Context, userID, itemID uuid.UUID) *services.ServiceError
}

func (m *mockCartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartView, *services.ServiceError) {
	return m.getFn(ctx, userID)
}
func (m *mockCartService) AddItem(ctx context.Context, userID uuid.UUID, in services.AddCartInput) (*models.CartView, *services.ServiceError) {
	return m.addFn(ctx, userID, in)
}
func (m *mockCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) *services.ServiceError {
	return m.removeFn(ctx, userID, itemID)
}

// --- Helpers ---

var testUserID = uuid.New()

func setupCartRouter(svc services.CartService) *gin.Engine {
	r := gin.New()
	cc := controllers.NewCartController(svc)

	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserContextKey, testUserID)
		c.Next()
	})

	r.GET("/cart", cc.GetCart)
	r.POST("/cart", cc.AddItem)
	r.DELETE("/cart/items/:id", cc.RemoveItem)
	return r
}

// --- Tests ---

func TestGetCartHandler(t *testing.T) {
	svc := &mockCartService{
		getFn: func(_ context.Context, userID uuid.UUID) (*models.CartView, *services.ServiceError) {
			assert.Equal(t, testUserID, userID)
			return &models.CartView{UserID: userID, Items: []models.CartItem{}}, nil
		},
	}
	r := setupCartRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/cart", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var view models.CartView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, testUserID, view.UserID)
	assert.NotNil(t, view.Items)
}

func TestAddItemHandler(t *testing.T) {
	productID := uuid.New()
	svc := &mockCartService{
		addFn: func(_ context.Context, userID uuid.UUID, in services.AddCartInput) (*models.CartView, *services.ServiceError) {
			assert.Equal(t, productID, in.ProductID)
			assert.Equal(t, int64(2), in.Quantity)
			return &models.CartView{UserID: userID}, nil
		},
	}
	r := setupCartRouter(svc)

	body, _ := json.Marshal(map[string]interface{}{"product_id": productID, "quantity": 2})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAddItemHandlerRejectsBadPayload(t *testing.T) {
	svc := &mockCartService{}
	r := setupCartRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/cart", bytes.NewReader([]byte(`{"quantity": 0}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddItemHandlerServiceError(t *testing.T) {
	svc := &mockCartService{
		addFn: func(context.Context, uuid.UUID, services.AddCartInput) (*models.CartView, *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: 404, Message: "Product not found"}
		},
	}
	r := setupCartRouter(svc)

	body, _ := json.Marshal(map[string]interface{}{"product_id": uuid.New(), "quantity": 1})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found")
}

func TestRemoveItemHandler(t *testing.T) {
	itemID := uuid.New()
	svc := &mockCartService{
		removeFn: func(_ context.Context, _, gotItemID uuid.UUID) *services.ServiceError {
			assert.Equal(t, itemID, gotItemID)
			return nil
		},
	}
	r := setupCartRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/cart/items/"+itemID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Item removed from cart")
}

func TestRemoveItemHandlerInvalidID(t *testing.T) {
	svc := &mockCartService{}
	r := setupCartRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/cart/items/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid UUID format")
}

func TestCartHandlersRequireUser(t *testing.T) {
	r := gin.New()
	cc := controllers.NewCartController(&mockCartService{})
	r.GET("/cart", cc.GetCart)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/cart", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
