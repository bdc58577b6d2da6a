package order

import (
	"strconv"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/tablecraft/restaurant-admin/internal/menu"
)

// Order statuses. Any status may transition to any other; the kitchen flow
// is advisory, not enforced.
const (
	StatusPending   = "Pending"
	StatusPreparing = "Preparing"
	StatusReady     = "Ready"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

// Statuses lists every valid order status.
var Statuses = []string{
	StatusPending,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// OrderNumberPrefix prefixes every generated order number.
const OrderNumberPrefix = "ORD-"

// NewOrderNumber builds a human-readable order number from the creation
// time. Millisecond resolution makes collisions practically impossible for a
// single restaurant; monotonicity is not guaranteed across clock
// adjustments.
func NewOrderNumber(t time.Time) string {
	return OrderNumberPrefix + strconv.FormatInt(t.UnixMilli(), 10)
}

// LineItem is one entry within an order. Price is a snapshot captured at
// order time and never recomputed, even if the catalog price changes later.
type LineItem struct {
	MenuItemID uuid.UUID `json:"menu_item" bson:"menu_item"`
	Quantity   int       `json:"quantity" bson:"quantity"`
	Price      float64   `json:"price" bson:"price"`
}

// Order is a placed order. Orders are created whole, mutated only via
// status transitions, and never deleted.
type Order struct {
	ID           uuid.UUID  `json:"id" bson:"_id"`
	OrderNumber  string     `json:"order_number" bson:"order_number"`
	Items        []LineItem `json:"items" bson:"items"`
	TotalAmount  float64    `json:"total_amount" bson:"total_amount"`
	Status       string     `json:"status" bson:"status"`
	CustomerName string     `json:"customer_name,omitempty" bson:"customer_name,omitempty"`
	TableNumber  int        `json:"table_number,omitempty" bson:"table_number,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

func NewOrder() *Order {
	return &Order{
		ID:          apt.GenerateNewID(),
		OrderNumber: NewOrderNumber(time.Now()),
		Status:      StatusPending,
	}
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

func (o *Order) ResourceType() string {
	return "api/orders"
}

func (o *Order) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = apt.GenerateNewID()
	}
}

func (o *Order) BeforeCreate() {
	o.EnsureID()
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
}

// Total sums price×quantity across line items.
func Total(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ResolvedLineItem is a line item joined against the current catalog entry
// for display. MenuItem is nil when the referenced item has been deleted;
// the order's historical record is unaffected.
type ResolvedLineItem struct {
	MenuItem *menu.MenuItem `json:"menu_item"`
	Quantity int            `json:"quantity"`
	Price    float64        `json:"price"`
}

// OrderView is the read-side shape of an order with line items resolved
// against current menu item data. The persisted price snapshot is carried
// alongside the live catalog entry.
type OrderView struct {
	ID           uuid.UUID          `json:"id"`
	OrderNumber  string             `json:"order_number"`
	Items        []ResolvedLineItem `json:"items"`
	TotalAmount  float64            `json:"total_amount"`
	Status       string             `json:"status"`
	CustomerName string             `json:"customer_name,omitempty"`
	TableNumber  int                `json:"table_number,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func (v *OrderView) GetID() uuid.UUID {
	return v.ID
}

func (v *OrderView) ResourceType() string {
	return "api/orders"
}

// NewOrderView joins an order's line items against the catalog entries in
// items, keyed by id.
func NewOrderView(o *Order, catalog map[uuid.UUID]*menu.MenuItem) *OrderView {
	resolved := make([]ResolvedLineItem, 0, len(o.Items))
	for _, item := range o.Items {
		resolved = append(resolved, ResolvedLineItem{
			MenuItem: catalog[item.MenuItemID],
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	return &OrderView{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		Items:        resolved,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status,
		CustomerName: o.CustomerName,
		TableNumber:  o.TableNumber,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// TopSeller is one row of the top-sellers report: cumulative quantity sold
// for a menu item across all orders, joined with its current catalog entry.
type TopSeller struct {
	MenuItemID uuid.UUID      `json:"menu_item_id" bson:"_id"`
	TotalSold  int            `json:"total_sold" bson:"total_sold"`
	MenuItem   *menu.MenuItem `json:"menu_item" bson:"menu_item"`
}
