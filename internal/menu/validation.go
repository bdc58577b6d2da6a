package menu

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateMenuItem checks a menu item against the catalog invariants. It is
// run before every create and update; the store never sees an invalid
// document.
func ValidateMenuItem(item *MenuItem) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(item.Name) == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if item.Category == "" {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: "category is required",
		})
	} else if !ValidCategory(item.Category) {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("category must be one of: %s", strings.Join(Categories, ", ")),
		})
	}

	if item.Price < 0 {
		errors = append(errors, ValidationError{
			Field:   "price",
			Message: "price cannot be negative",
		})
	}

	if item.Stock < 0 {
		errors = append(errors, ValidationError{
			Field:   "stock",
			Message: "stock cannot be negative",
		})
	}

	if item.PreparationTime < 0 {
		errors = append(errors, ValidationError{
			Field:   "preparation_time",
			Message: "preparation time cannot be negative",
		})
	}

	return errors
}
