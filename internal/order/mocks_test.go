package order

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tablecraft/restaurant-admin/internal/menu"
)

// MockOrderRepo is a map-backed OrderRepo for handler tests. Individual
// behaviors can be overridden through the function fields.
type MockOrderRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*Order

	CreateFunc       func(ctx context.Context, o *Order) error
	GetFunc          func(ctx context.Context, id uuid.UUID) (*Order, error)
	ListFunc         func(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateStatusFunc func(ctx context.Context, id uuid.UUID, status string) (*Order, error)
	TopSellersFunc   func(ctx context.Context, limit int) ([]TopSeller, error)

	LastListFilter ListFilter
	TopSellerCalls int
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{
		orders: make(map[uuid.UUID]*Order),
	}
}

func (m *MockOrderRepo) Create(ctx context.Context, o *Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	return nil
}

func (m *MockOrderRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orders[id], nil
}

func (m *MockOrderRepo) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	m.LastListFilter = filter
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, o := range m.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	o.Status = status
	return o, nil
}

func (m *MockOrderRepo) TopSellers(ctx context.Context, limit int) ([]TopSeller, error) {
	m.TopSellerCalls++
	if m.TopSellersFunc != nil {
		return m.TopSellersFunc(ctx, limit)
	}
	return []TopSeller{}, nil
}

// MockCatalog is a map-backed Catalog for handler tests.
type MockCatalog struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*menu.MenuItem

	GetFunc     func(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error)
	GetManyFunc func(ctx context.Context, ids []uuid.UUID) ([]*menu.MenuItem, error)
	SaveFunc    func(ctx context.Context, item *menu.MenuItem) error

	SavedItems []*menu.MenuItem
}

func NewMockCatalog() *MockCatalog {
	return &MockCatalog{
		items: make(map[uuid.UUID]*menu.MenuItem),
	}
}

func (m *MockCatalog) Add(item *menu.MenuItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
}

func (m *MockCatalog) Get(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[id], nil
}

func (m *MockCatalog) GetMany(ctx context.Context, ids []uuid.UUID) ([]*menu.MenuItem, error) {
	if m.GetManyFunc != nil {
		return m.GetManyFunc(ctx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*menu.MenuItem
	for _, id := range ids {
		if item, ok := m.items[id]; ok {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *MockCatalog) Save(ctx context.Context, item *menu.MenuItem) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	m.SavedItems = append(m.SavedItems, item)
	return nil
}
