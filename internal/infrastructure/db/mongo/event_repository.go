package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

const eventsCollection = "events"

// EventRepository persists interaction events and serves the grouped rollup
// reads. Events are append-only; there is no update path.
type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(eventsCollection)}
}

type mongoEvent struct {
	UserID    string    `bson:"user_id"`
	Type      string    `bson:"type"`
	ProductID string    `bson:"product_id,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

func (r *EventRepository) Insert(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, mongoEvent{
		UserID:    event.UserID,
		Type:      event.Type,
		ProductID: event.ProductID,
		Timestamp: event.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{})
}

// TopProductsByType groups events of one type by product and returns the
// highest counts first. Mongo's sort is stable for equal keys, which gives
// the tie behavior the dashboard relies on.
func (r *EventRepository) TopProductsByType(ctx context.Context, eventType string, limit int) ([]ports.ProductEventCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"type":       eventType,
			"product_id": bson.M{"$exists": true, "$ne": ""},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$product_id",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("top products by %s: %w", eventType, err)
	}
	defer cur.Close(ctx)

	rows := []ports.ProductEventCount{}
	for cur.Next(ctx) {
		var row struct {
			ProductID string `bson:"_id"`
			Count     int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode product count: %w", err)
		}
		rows = append(rows, ports.ProductEventCount{ProductID: row.ProductID, Count: row.Count})
	}
	return rows, cur.Err()
}

func (r *EventRepository) CountByProductForType(ctx context.Context, eventType string, productIDs []string) (map[string]int64, error) {
	if len(productIDs) == 0 {
		return map[string]int64{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"type":       eventType,
			"product_id": bson.M{"$in": productIDs},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$product_id",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("counts by product for %s: %w", eventType, err)
	}
	defer cur.Close(ctx)

	counts := map[string]int64{}
	for cur.Next(ctx) {
		var row struct {
			ProductID string `bson:"_id"`
			Count     int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode product count: %w", err)
		}
		counts[row.ProductID] = row.Count
	}
	return counts, cur.Err()
}

func (r *EventRepository) CountByUser(ctx context.Context) (map[string]int64, error) {
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
		return nil, fmt.Errorf("event counts by user: %w", err)
	}
	defer cur.Close(ctx)

	counts := map[string]int64{}
	for cur.Next(ctx) {
		var row struct {
			UserID string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode event count: %w", err)
		}
		counts[row.UserID] = row.Count
	}
	return counts, cur.Err()
}

// EnsureIndexes creates the indexes the rollup pipelines group on.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "product_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	})
	return err
}
