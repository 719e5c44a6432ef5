// Package product owns product catalog items.
package product

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tech-manthan/mernspace-catalog-service/apperror"
	"github.com/tech-manthan/mernspace-catalog-service/catalog"
	"github.com/tech-manthan/mernspace-catalog-service/db"
	"github.com/tech-manthan/mernspace-catalog-service/models"
	"github.com/tech-manthan/mernspace-catalog-service/utils"
)

var searchFields = []string{"name", "description"}

type Store struct {
	coll *mongo.Collection
}

func NewStore(database *db.Database) *Store {
	return &Store{coll: database.Products}
}

func (s *Store) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	result, err := s.coll.InsertOne(ctx, product)
	if err != nil {
		return nil, apperror.Storage("failed to create product", err)
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return product, nil
}

// Update holds the partial update; nil fields are left untouched.
type Update struct {
	Name               *string
	Description        *string
	Image              *string
	PriceConfiguration map[string]models.ProductPriceOption
	Attributes         []models.ProductAttribute
	TenantID           *string
	CategoryID         *primitive.ObjectID
	IsPublish          *bool
}

func (u Update) set() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	if u.PriceConfiguration != nil {
		set["priceConfiguration"] = u.PriceConfiguration
	}
	if u.Attributes != nil {
		set["attributes"] = u.Attributes
	}
	if u.TenantID != nil {
		set["tenantId"] = *u.TenantID
	}
	if u.CategoryID != nil {
		set["categoryId"] = *u.CategoryID
	}
	if u.IsPublish != nil {
		set["isPublish"] = *u.IsPublish
	}
	return set
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Product, error) {
	set := upd.set()
	if len(set) == 0 {
		var product models.Product
		err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("product not found")
		}
		if err != nil {
			return nil, apperror.Storage("failed to get product", err)
		}
		return &product, nil
	}
	set["updatedAt"] = time.Now().UTC()

	var product models.Product
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("product not found")
	}
	if err != nil {
		return nil, apperror.Storage("failed to update product", err)
	}
	return &product, nil
}

// GetByID returns the product joined with its owning category summary. A
// missing category comes back as null rather than an error.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ProductWithCategory, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	pipeline = append(pipeline, catalog.CategoryLookup()...)

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperror.Storage("failed to get product", err)
	}
	defer cursor.Close(ctx)

	var results []models.ProductWithCategory
	if err := cursor.All(ctx, &results); err != nil {
		return nil, apperror.Storage("failed to decode product", err)
	}
	if len(results) == 0 {
		return nil, apperror.NotFound("product not found")
	}
	return &results[0], nil
}

// Search matches name or description as a case-insensitive substring,
// applies the supplied filters, joins categories and pages newest first.
func (s *Store) Search(ctx context.Context, q string, f catalog.Filters, pq utils.PageQuery) (*catalog.Paginated[models.ProductWithCategory], error) {
	pipeline := catalog.SearchPipeline(q, searchFields, f, true)
	return catalog.Paginate[models.ProductWithCategory](ctx, s.coll, pipeline, pq)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperror.Storage("failed to delete product", err)
	}
	if result.DeletedCount == 0 {
		return apperror.NotFound("product not found")
	}
	return nil
}

// CountByCategory serves the referential integrity guard.
func (s *Store) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"categoryId": categoryID})
	if err != nil {
		return 0, apperror.Storage("failed to count products", err)
	}
	return n, nil
}
