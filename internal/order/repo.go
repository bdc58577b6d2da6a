package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/tablecraft/restaurant-admin/internal/menu"
)

// Pagination defaults for order listings.
const (
	DefaultPage  = 1
	DefaultLimit = 5
)

// TopSellersLimit caps the top-sellers report.
const TopSellersLimit = 5

// ListFilter narrows and paginates an order listing. Page is 1-indexed.
type ListFilter struct {
	Status string
	Page   int
	Limit  int
}

// OrderRepo is the persistence contract for orders. Get and UpdateStatus
// return (nil, nil) when the order does not exist.
type OrderRepo interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error)
	TopSellers(ctx context.Context, limit int) ([]TopSeller, error)
}

// Catalog is the slice of the menu catalog that order placement and
// resolution need. Get returns (nil, nil) when the item does not exist.
type Catalog interface {
	Get(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]*menu.MenuItem, error)
	Save(ctx context.Context, item *menu.MenuItem) error
}
