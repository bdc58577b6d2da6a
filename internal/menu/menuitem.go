package menu

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Menu item categories. Every item belongs to exactly one.
const (
	CategoryAppetizer  = "Appetizer"
	CategoryMainCourse = "Main Course"
	CategoryDessert    = "Dessert"
	CategoryBeverage   = "Beverage"
)

// Categories lists every valid menu item category.
var Categories = []string{
	CategoryAppetizer,
	CategoryMainCourse,
	CategoryDessert,
	CategoryBeverage,
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultStock is the stock assigned to new items that do not specify one.
const DefaultStock = 100

// MenuItem represents a dish, drink or any orderable product
type MenuItem struct {
	ID              uuid.UUID `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	Category        string    `json:"category" bson:"category"`
	Price           float64   `json:"price" bson:"price"`
	Ingredients     []string  `json:"ingredients" bson:"ingredients"`
	IsAvailable     bool      `json:"is_available" bson:"is_available"`
	PreparationTime int       `json:"preparation_time,omitempty" bson:"preparation_time,omitempty"`
	ImageURL        string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Stock           int       `json:"stock" bson:"stock"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// GetID returns the menu item ID
func (m *MenuItem) GetID() uuid.UUID {
	return m.ID
}

// SetID sets the menu item ID
func (m *MenuItem) SetID(id uuid.UUID) {
	m.ID = id
}

// ResourceType returns the resource type for URL generation
func (m *MenuItem) ResourceType() string {
	return "api/menu"
}

// EnsureID generates a new ID if one is not set
func (m *MenuItem) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = apt.GenerateNewID()
	}
}

// BeforeCreate sets defaults and timestamps before persistence
func (m *MenuItem) BeforeCreate() {
	m.EnsureID()
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Ingredients == nil {
		m.Ingredients = []string{}
	}
}

// BeforeUpdate updates the timestamp
func (m *MenuItem) BeforeUpdate() {
	m.UpdatedAt = time.Now()
}

// ToggleAvailability flips the availability flag
func (m *MenuItem) ToggleAvailability() {
	m.IsAvailable = !m.IsAvailable
	m.UpdatedAt = time.Now()
}
