package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tablecraft/restaurant-admin/internal/order"
)

// OrderRepo implements order.OrderRepo on MongoDB.
type OrderRepo struct {
	collection *mongo.Collection
}

func NewOrderRepo(db *mongo.Database) *OrderRepo {
	return &OrderRepo{
		collection: db.Collection("orders"),
	}
}

// EnsureIndexes creates the unique order number index and a creation-time
// index backing the paginated listing.
func (r *OrderRepo) EnsureIndexes(ctx context.Context) error {
	numberIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "order_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, numberIndex); err != nil {
		return fmt.Errorf("cannot create order_number index: %w", err)
	}

	createdIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, createdIndex); err != nil {
		return fmt.Errorf("cannot create created_at index: %w", err)
	}

	return nil
}

func (r *OrderRepo) Create(ctx context.Context, o *order.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	if _, err := r.collection.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("cannot create order: %w", err)
	}

	return nil
}

func (r *OrderRepo) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get order: %w", err)
	}
	return &o, nil
}

// List returns orders sorted by creation time descending, paginated with
// skip = (page-1) * limit.
func (r *OrderRepo) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	page := filter.Page
	if page < 1 {
		page = order.DefaultPage
	}
	limit := filter.Limit
	if limit < 1 {
		limit = order.DefaultLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*order.Order
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode orders: %w", err)
	}

	return result, nil
}

// UpdateStatus atomically sets the status on the order document and returns
// the updated order, or (nil, nil) when the order does not exist.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*order.Order, error) {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var o order.Order
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&o)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot update order status: %w", err)
	}

	return &o, nil
}

// TopSellers aggregates cumulative quantities sold per menu item across all
// orders and joins the current catalog entry. Ties are broken by menu item
// id so the report is deterministic.
func (r *OrderRepo) TopSellers(ctx context.Context, limit int) ([]order.TopSeller, error) {
	if limit < 1 {
		limit = order.TopSellersLimit
	}

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$items.menu_item",
			"total_sold": bson.M{"$sum": "$items.quantity"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "menu_items",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "menu_item",
		}}},
		{{Key: "$unwind", Value: "$menu_item"}},
		{{Key: "$sort", Value: bson.D{
			{Key: "total_sold", Value: -1},
			{Key: "_id", Value: 1},
		}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("cannot aggregate top sellers: %w", err)
	}
	defer cursor.Close(ctx)

	var result []order.TopSeller
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode top sellers: %w", err)
	}

	return result, nil
}
