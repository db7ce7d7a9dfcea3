package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

const ordersCollection = "orders"

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

type mongoOrderItem struct {
	ProductID string  `bson:"product_id"`
	Name      string  `bson:"name"`
	Price     float64 `bson:"price"`
	Quantity  int     `bson:"quantity"`
}

type mongoOrder struct {
	ID        string           `bson:"_id"`
	UserID    string           `bson:"user_id"`
	Items     []mongoOrderItem `bson:"items"`
	Total     float64          `bson:"total"`
	CreatedAt time.Time        `bson:"created_at"`
}

func (mo mongoOrder) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(mo.Items))
	for _, it := range mo.Items {
		items = append(items, domain.OrderItem(it))
	}
	return &domain.Order{
		ID:        mo.ID,
		UserID:    mo.UserID,
		Items:     items,
		Total:     mo.Total,
		CreatedAt: mo.CreatedAt.UTC(),
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	items := make([]mongoOrderItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, mongoOrderItem(it))
	}

	_, err := r.coll.InsertOne(ctx, mongoOrder{
		ID:        order.ID,
		UserID:    order.UserID,
		Items:     items,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	orders := []*domain.Order{}
	for cur.Next(ctx) {
		var mo mongoOrder
		if err := cur.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, mo.toDomain())
	}
	return orders, cur.Err()
}

func (r *OrderRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{})
}

// TotalRevenue sums total across every order in a single $group stage.
func (r *OrderRepository) TotalRevenue(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total"},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("total revenue: %w", err)
	}
	defer cur.Close(ctx)

	var row struct {
		Total float64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("decode revenue: %w", err)
		}
	}
	return row.Total, cur.Err()
}

func (r *OrderRepository) CountByUser(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$user_id",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("order counts by user: %w", err)
	}
	defer cur.Close(ctx)

	counts := map[string]int64{}
	for cur.Next(ctx) {
		var row struct {
			UserID string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode order count: %w", err)
		}
		counts[row.UserID] = row.Count
	}
	return counts, cur.Err()
}

// EnsureIndexes creates the user_id index backing order history reads.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
