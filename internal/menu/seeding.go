package menu

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seeds returns all seeds for the menu catalog
func Seeds(db *mongo.Database) []seed.Seed {
	return []seed.Seed{
		{
			ID:          "2026-08-12_menu_sample_items",
			Description: "Seed a small representative menu across all categories",
			Run: func(ctx context.Context) error {
				return seedSampleMenuItems(ctx, db)
			},
		},
	}
}

func seedSampleMenuItems(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("menu_items")
	now := time.Now()

	samples := []*MenuItem{
		{
			Name:        "Bruschetta",
			Description: "Grilled bread with tomato, garlic and basil",
			Category:    CategoryAppetizer,
			Price:       6.50,
			Ingredients: []string{"bread", "tomato", "garlic", "basil", "olive oil"},
		},
		{
			Name:            "Margherita Pizza",
			Description:     "Tomato, mozzarella and fresh basil",
			Category:        CategoryMainCourse,
			Price:           11.00,
			Ingredients:     []string{"dough", "tomato", "mozzarella", "basil"},
			PreparationTime: 15,
		},
		{
			Name:            "Grilled Salmon",
			Description:     "Salmon fillet with seasonal vegetables",
			Category:        CategoryMainCourse,
			Price:           18.50,
			Ingredients:     []string{"salmon", "lemon", "zucchini", "carrot"},
			PreparationTime: 20,
		},
		{
			Name:        "Tiramisu",
			Description: "Coffee-soaked ladyfingers with mascarpone",
			Category:    CategoryDessert,
			Price:       7.00,
			Ingredients: []string{"mascarpone", "coffee", "ladyfingers", "cocoa"},
		},
		{
			Name:        "Fresh Lemonade",
			Category:    CategoryBeverage,
			Price:       3.50,
			Ingredients: []string{"lemon", "sugar", "mint"},
		},
	}

	for _, item := range samples {
		item.IsAvailable = true
		item.Stock = DefaultStock
		item.BeforeCreate()
		item.CreatedAt = now
		item.UpdatedAt = now // single seed batch shares one timestamp

		// Upsert by name so reseeding never duplicates items.
		_, err := collection.UpdateOne(ctx,
			bson.M{"name": item.Name},
			bson.M{"$setOnInsert": item},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seed menu item %s: %w", item.Name, err)
		}
	}

	return nil
}

// SeedingFunc returns a lifecycle OnStart-compatible function applying the
// menu seeds through the shared seed tracker.
func SeedingFunc(appName string, dbFn func() *mongo.Database, logger apt.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		logger.Info("Applying menu catalog seeds...")
		db := dbFn()
		tracker := seed.NewMongoTracker(db)
		seeds := Seeds(db)
		if err := seed.Apply(ctx, tracker, seeds, appName); err != nil {
			return fmt.Errorf("apply seeds: %w", err)
		}
		logger.Info("Menu catalog seeds applied successfully")
		return nil
	}
}
