package menu

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows a menu listing. Nil fields impose no constraint.
type ListFilter struct {
	Category    string
	IsAvailable *bool
	MinPrice    *float64
	MaxPrice    *float64
}

// MenuItemRepo is the persistence contract for menu items. Get returns
// (nil, nil) when the item does not exist.
type MenuItemRepo interface {
	Create(ctx context.Context, item *MenuItem) error
	Get(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	List(ctx context.Context, filter ListFilter) ([]*MenuItem, error)
	Search(ctx context.Context, query string) ([]*MenuItem, error)
	Save(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}
