package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

const cartCollection = "cart_items"

type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(cartCollection)}
}

type mongoCartLine struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ProductID primitive.ObjectID `bson:"product_id"`
	Quantity  int                `bson:"quantity"`
	AddedAt   time.Time          `bson:"added_at"`
}

// joinedCartLine is the $lookup output shape: the line plus its live product.
type joinedCartLine struct {
	mongoCartLine `bson:",inline"`
	Product       mongoProduct `bson:"product"`
}

func (ml mongoCartLine) toDomain() *domain.CartLine {
	return &domain.CartLine{
		ID:        ml.ID.Hex(),
		UserID:    ml.UserID,
		ProductID: ml.ProductID.Hex(),
		Quantity:  ml.Quantity,
		AddedAt:   ml.AddedAt.UTC(),
	}
}

// AddOrIncrement merges a repeat add into the existing (user, product) line
// with one upsert: $inc quantity when the line exists, insert with added_at
// otherwise. The unique (user_id, product_id) index guarantees at most one
// line per pair even under concurrent upserts.
func (r *CartRepository) AddOrIncrement(ctx context.Context, userID, productID string, quantity int, addedAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "product_id": oid}
	update := bson.M{
		"$inc":         bson.M{"quantity": quantity},
		"$setOnInsert": bson.M{"added_at": addedAt},
	}

	err = upsertRetryingDuplicate(func() error {
		_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		return err
	})
	if err != nil {
		return fmt.Errorf("upsert cart line: %w", err)
	}
	return nil
}

// upsertRetryingDuplicate runs an upsert and retries it exactly once when the
// unique index rejects a concurrent insert. Two upserts racing on the same
// missing key can both take the insert path; the loser fails with a
// duplicate-key error, and by then the line exists, so the retry takes the
// $inc path and neither increment is lost.
func upsertRetryingDuplicate(update func() error) error {
	err := update()
	if mongo.IsDuplicateKeyError(err) {
		err = update()
	}
	return err
}

// ListWithProducts joins each line with its live product document. The plain
// $unwind drops lines whose product was deleted, which is exactly the
// silent-omission contract.
func (r *CartRepository) ListWithProducts(ctx context.Context, userID string) ([]*domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         productsCollection,
			"localField":   "product_id",
			"foreignField": "_id",
			"as":           "product",
		}}},
		{{Key: "$unwind", Value: "$product"}},
		{{Key: "$sort", Value: bson.D{{Key: "added_at", Value: 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer cur.Close(ctx)

	lines := []*domain.CartLine{}
	for cur.Next(ctx) {
		var jl joinedCartLine
		if err := cur.Decode(&jl); err != nil {
			return nil, fmt.Errorf("decode cart line: %w", err)
		}
		line := jl.mongoCartLine.toDomain()
		line.Product = jl.Product.toDomain()
		lines = append(lines, line)
	}
	return lines, cur.Err()
}

func (r *CartRepository) FindByID(ctx context.Context, lineID string) (*domain.CartLine, error) {
	oid, err := primitive.ObjectIDFromHex(lineID)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ml mongoCartLine
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find cart line: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *CartRepository) DecrementQuantity(ctx context.Context, lineID string) error {
	oid, err := primitive.ObjectIDFromHex(lineID)
	if err != nil {
		return domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Guarded by quantity > 1 so a racing decrement cannot push a line to zero.
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "quantity": bson.M{"$gt": 1}},
		bson.M{"$inc": bson.M{"quantity": -1}},
	)
	if err != nil {
		return fmt.Errorf("decrement cart line: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, lineID string) error {
	oid, err := primitive.ObjectIDFromHex(lineID)
	if err != nil {
		return domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *CartRepository) ClearUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the unique (user_id, product_id) index that enforces
// the one-line-per-pair invariant at the store level.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "product_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
