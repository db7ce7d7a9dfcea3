package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

const productsCollection = "products"

// filterAll is the sentinel meaning "no filter" for category/brand/color.
const filterAll = "all"

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Category    string             `bson:"category"`
	Brand       string             `bson:"brand"`
	Color       string             `bson:"color,omitempty"`
	Price       float64            `bson:"price"`
	Stock       int                `bson:"stock"`
	Size        string             `bson:"size,omitempty"`
	Description string             `bson:"description,omitempty"`
	Image       string             `bson:"image,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
}

func (mp mongoProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:          mp.ID.Hex(),
		Name:        mp.Name,
		Category:    mp.Category,
		Brand:       mp.Brand,
		Color:       mp.Color,
		Price:       mp.Price,
		Stock:       mp.Stock,
		Size:        mp.Size,
		Description: mp.Description,
		Image:       mp.Image,
		CreatedAt:   unixToTime(mp.CreatedAt),
	}
}

// buildCatalogQuery translates a resolved CatalogFilter into a conjunctive
// Mongo filter plus a sort document. Kept pure so the translation is testable
// without a running store.
func buildCatalogQuery(f ports.CatalogFilter) (bson.M, bson.D) {
	query := bson.M{}

	if f.Category != "" && f.Category != filterAll {
		query["category"] = f.Category
	}
	if f.Brand != "" && f.Brand != filterAll {
		query["brand"] = f.Brand
	}
	if f.Color != "" && f.Color != filterAll {
		query["color"] = f.Color
	}

	if f.Search != "" {
		pattern := regexp.QuoteMeta(f.Search)
		query["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"brand": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["price"] = price
	}

	var sort bson.D
	switch f.Sort {
	case ports.SortNameDesc:
		sort = bson.D{{Key: "name", Value: -1}}
	case ports.SortPriceAsc:
		sort = bson.D{{Key: "price", Value: 1}}
	case ports.SortPriceDesc:
		sort = bson.D{{Key: "price", Value: -1}}
	case ports.SortNewest:
		sort = bson.D{{Key: "created_at", Value: -1}}
	default:
		sort = bson.D{{Key: "name", Value: 1}}
	}

	return query, sort
}

func (r *ProductRepository) List(ctx context.Context, filter ports.CatalogFilter) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, sort := buildCatalogQuery(filter)

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cur.Close(ctx)

	products := []*domain.Product{}
	for cur.Next(ctx) {
		var mp mongoProduct
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, mp.toDomain())
	}
	return products, cur.Err()
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProduct
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue // dangling reference, caller substitutes a placeholder
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return map[string]*domain.Product{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}
	defer cur.Close(ctx)

	found := make(map[string]*domain.Product, len(oids))
	for cur.Next(ctx) {
		var mp mongoProduct
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		p := mp.toDomain()
		found[p.ID] = p
	}
	return found, cur.Err()
}

func (r *ProductRepository) UpdateStock(ctx context.Context, id string, stock int) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProduct
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"stock": stock}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update stock: %w", err)
	}
	return mp.toDomain(), nil
}

// EnsureIndexes creates the indexes backing catalog filters.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	})
	return err
}
