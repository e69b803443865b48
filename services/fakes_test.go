package services_test

import (
	"context"
	"sync"
	"time"

	"vastra-api/models"
	"vastra-api/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- Mock ProductRepository ---

type mockProductRepo struct {
	products map[uuid.UUID]*models.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uuid.UUID]*models.Product)}
}

func (m *mockProductRepo) add(name string, pricePaise int64) *models.Product {
	p := &models.Product{
		ID:         uuid.New(),
		Name:       name,
		PricePaise: pricePaise,
		Category:   models.CategorySaree,
		ImageURL:   "/images/" + name + ".jpg",
		CreatedAt:  time.Now(),
	}
	m.products[p.ID] = p
	return p
}

func (m *mockProductRepo) FindAll(_ context.Context, page, perPage int, category string) ([]models.Product, int64, error) {
	var result []models.Product
	for _, p := range m.products {
		if category == "" || p.Category == category {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockProductRepo) Create(_ context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	m.products[product.ID] = product
	return nil
}

// --- Mock CartRepository ---

type mockCartRepo struct {
	products *mockProductRepo
	carts    map[uuid.UUID]*models.Cart // keyed by user id
}

func newMockCartRepo(products *mockProductRepo) *mockCartRepo {
	return &mockCartRepo{products: products, carts: make(map[uuid.UUID]*models.Cart)}
}

func (m *mockCartRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, ok := m.carts[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// attach products the way Preload would
	out := &models.Cart{ID: cart.ID, UserID: cart.UserID, CreatedAt: cart.CreatedAt}
	for _, item := range cart.Items {
		withProduct := item
		if p, ok := m.products.products[item.ProductID]; ok {
			withProduct.Product = p
		}
		out.Items = append(out.Items, withProduct)
	}
	return out, nil
}

func (m *mockCartRepo) FindOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if _, ok := m.carts[userID]; !ok {
		m.carts[userID] = &models.Cart{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()}
	}
	return m.FindByUserID(ctx, userID)
}

func (m *mockCartRepo) UpsertItem(_ context.Context, cartID, productID uuid.UUID, quantity int64) error {
	for _, cart := range m.carts {
		if cart.ID != cartID {
			continue
		}
		for i, item := range cart.Items {
			if item.ProductID == productID {
				cart.Items[i].Quantity += quantity
				return nil
			}
		}
		cart.Items = append(cart.Items, models.CartItem{
			ID:        uuid.New(),
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		})
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockCartRepo) DeleteItem(_ context.Context, cartID, itemID uuid.UUID) (int64, error) {
	for _, cart := range m.carts {
		if cart.ID != cartID {
			continue
		}
		for i, item := range cart.Items {
			if item.ID == itemID {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
				return 1, nil
			}
		}
	}
	return 0, nil
}

// --- Mock OrderRepository ---

type mockOrderRepo struct {
	carts  *mockCartRepo
	orders map[uuid.UUID]*models.Order
}

func newMockOrderRepo(carts *mockCartRepo) *mockOrderRepo {
	return &mockOrderRepo{carts: carts, orders: make(map[uuid.UUID]*models.Order)}
}

func (m *mockOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	var result []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockOrderRepo) FindByIDAndUserID(_ context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	o, ok := m.orders[orderID]
	if !ok || o.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (m *mockOrderRepo) CreateAndClearCart(_ context.Context, order *models.Order, cartID uuid.UUID) error {
	m.orders[order.ID] = order
	for _, cart := range m.carts.carts {
		if cart.ID == cartID {
			cart.Items = nil
		}
	}
	return nil
}

// --- Mock IdempotencyRepository ---

type mockIdempotencyRepo struct {
	entries map[string]string
}

func newMockIdempotencyRepo() *mockIdempotencyRepo {
	return &mockIdempotencyRepo{entries: make(map[string]string)}
}

func (m *mockIdempotencyRepo) Get(_ context.Context, key string) (string, error) {
	return m.entries[key], nil
}

func (m *mockIdempotencyRepo) Set(_ context.Context, key, orderID string, _ time.Duration) error {
	m.entries[key] = orderID
	return nil
}

// --- Mock Kafka producer ---

type mockProducer struct {
	mu        sync.Mutex
	published [][]byte
	topics    []string
}

func (m *mockProducer) Publish(topic string, message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics = append(m.topics, topic)
	m.published = append(m.published, message)
	return nil
}

// --- Mock SNS publisher ---

type mockSNSPublisher struct {
	published []string
}

func (m *mockSNSPublisher) Publish(_ context.Context, topicArn string, _ []byte) error {
	m.published = append(m.published, topicArn)
	return nil
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByProviderID(_ context.Context, provider, providerID string) (*models.User, error) {
	for _, u := range m.users {
		if u.Provider == provider && u.ProviderID == providerID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

// --- Mock TryOnRepository ---

type mockTryOnRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.TryOnSession
	queue    chan uuid.UUID
}

func newMockTryOnRepo() *mockTryOnRepo {
	return &mockTryOnRepo{
		sessions: make(map[uuid.UUID]*models.TryOnSession),
		queue:    make(chan uuid.UUID, 16),
	}
}

func (m *mockTryOnRepo) Save(_ context.Context, session *models.TryOnSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *mockTryOnRepo) Find(_ context.Context, id uuid.UUID) (*models.TryOnSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrTryOnNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *mockTryOnRepo) Enqueue(_ context.Context, id uuid.UUID) error {
	m.queue <- id
	return nil
}

func (m *mockTryOnRepo) Dequeue(ctx context.Context) (uuid.UUID, error) {
	select {
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	case id := <-m.queue:
		return id, nil
	}
}
