package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"mise/internal/domain/entity"
	"mise/internal/domain/repository"
	"mise/internal/infra/auth"
	"mise/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- gateway fakes ---

type fakeOrderGateway struct {
	mu         sync.Mutex
	orders     []entity.Order
	fetchErr   error
	fetchCalls int

	completeErr   error
	completeCalls int
	completedIDs  []string
}

func (f *fakeOrderGateway) FetchOrders(_ context.Context, _ string) ([]entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]entity.Order, len(f.orders))
	copy(out, f.orders)

	return out, nil
}

func (f *fakeOrderGateway) CompleteOrder(_ context.Context, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completeCalls++
	f.completedIDs = append(f.completedIDs, orderID)

	return f.completeErr
}

type fakeProductGateway struct {
	mu         sync.Mutex
	products   []entity.Product
	fetchErr   error
	fetchCalls int

	createErr error
	created   []entity.Product

	updateErr error
	updated   []entity.Product

	deleteErr error
	deleted   []string
}

func (f *fakeProductGateway) FetchProducts(_ context.Context, _ string) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]entity.Product, len(f.products))
	copy(out, f.products)

	return out, nil
}

func (f *fakeProductGateway) CreateProduct(_ context.Context, product *entity.Product) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := product.Clone()
	created.ID = "srv-assigned"
	f.created = append(f.created, created)
	f.products = append(f.products, created)

	return &created, nil
}

func (f *fakeProductGateway) UpdateProduct(_ context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, product.Clone())

	return nil
}

func (f *fakeProductGateway) DeleteProduct(_ context.Context, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, productID)
	kept := f.products[:0]
	for _, p := range f.products {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	f.products = kept

	return nil
}

type fakeAuthGateway struct {
	session    *entity.Session
	loginErr   error
	loginCalls int

	restaurant *entity.Restaurant
	fetchErr   error

	updateErr error
	updated   []entity.Restaurant
}

func (f *fakeAuthGateway) Login(_ context.Context, _, _ string) (*entity.Session, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	s := *f.session

	return &s, nil
}

func (f *fakeAuthGateway) FetchRestaurant(_ context.Context, _ string) (*entity.Restaurant, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	r := *f.restaurant

	return &r, nil
}

func (f *fakeAuthGateway) UpdateRestaurant(_ context.Context, restaurant *entity.Restaurant) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, *restaurant)

	return nil
}

type fakeImageGateway struct {
	mu     sync.Mutex
	images map[string][]byte
	err    error
	calls  int
}

func (f *fakeImageGateway) FetchProductImage(_ context.Context, productID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	return f.images[productID], nil
}

// --- local service fakes ---

type fakeSessionRepo struct {
	session *entity.Session
	saveErr error
	saved   int
	cleared int
}

func (f *fakeSessionRepo) Save(_ context.Context, session *entity.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved++
	s := *session
	f.session = &s

	return nil
}

func (f *fakeSessionRepo) Load(_ context.Context) (*entity.Session, error) {
	if f.session == nil {
		return nil, repository.ErrSessionNotPersisted
	}
	s := *f.session

	return &s, nil
}

func (f *fakeSessionRepo) Clear(_ context.Context) error {
	f.cleared++
	f.session = nil

	return nil
}

type fakeInspector struct {
	subject   string
	expiresAt time.Time
	err       error
}

func (f *fakeInspector) Inspect(_ string) (string, time.Time, error) {
	return f.subject, f.expiresAt, f.err
}

type fakeImageCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	getErr  error
	putErr  error
	puts    int
}

func newFakeImageCache() *fakeImageCache {
	return &fakeImageCache{entries: make(map[string][]byte)}
}

func (f *fakeImageCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	data, ok := f.entries[key]

	return data, ok, nil
}

func (f *fakeImageCache) Put(_ context.Context, key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.puts++
	f.entries[key] = data

	return nil
}

func (f *fakeImageCache) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = make(map[string][]byte)

	return nil
}

type fakeQRService struct {
	png []byte
	err error
}

func (f *fakeQRService) PickupQR(_ string) ([]byte, error) {
	return f.png, f.err
}

// loggedInHolder returns a holder with an active session for restaurant r-1.
func loggedInHolder() *auth.SessionHolder {
	h := auth.NewSessionHolder()
	h.Set(&entity.Session{
		Token:        "token-1",
		UserID:       "user-1",
		RestaurantID: "r-1",
		ExpiresAt:    time.Now().Add(time.Hour),
		CreatedAt:    time.Now(),
	})

	return h
}

func seededRegistry(orders []entity.Order, products []entity.Product) *store.Registry {
	reg := store.NewRegistry()
	ctx := context.Background()
	if orders != nil {
		_ = reg.Orders.Load(ctx, true, func(context.Context) ([]entity.Order, error) {
			return orders, nil
		})
	}
	if products != nil {
		_ = reg.Products.Load(ctx, true, func(context.Context) ([]entity.Product, error) {
			return products, nil
		})
	}

	return reg
}
