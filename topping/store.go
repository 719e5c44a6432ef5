// Package topping owns topping catalog items: single-priced add-ons that
// share the product lifecycle but not its configuration map.
package topping

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

type Store struct {
	coll *mongo.Collection
}

func NewStore(database *db.Database) *Store {
	return &Store{coll: database.Toppings}
}

func (s *Store) Create(ctx context.Context, topping *models.Topping) (*models.Topping, error) {
	now := time.Now().UTC()
	topping.CreatedAt = now
	topping.UpdatedAt = now

	result, err := s.coll.InsertOne(ctx, topping)
	if err != nil {
		return nil, apperror.Storage("failed to create topping", err)
	}
	topping.ID = result.InsertedID.(primitive.ObjectID)
	return topping, nil
}

// Update holds the partial update; nil fields are left untouched.
type Update struct {
	Name       *string
	Price      *float64
	Image      *string
	TenantID   *string
	CategoryID *primitive.ObjectID
	IsPublish  *bool
}

func (u Update) set() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Image != nil {
		set["image"] = *u.Image
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

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Topping, error) {
	set := upd.set()
	if len(set) == 0 {
		return s.get(ctx, id)
	}
	set["updatedAt"] = time.Now().UTC()

	var topping models.Topping
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&topping)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("topping not found")
	}
	if err != nil {
		return nil, apperror.Storage("failed to update topping", err)
	}
	return &topping, nil
}

func (s *Store) get(ctx context.Context, id primitive.ObjectID) (*models.Topping, error) {
	var topping models.Topping
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&topping)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("topping not found")
	}
	if err != nil {
		return nil, apperror.Storage("failed to get topping", err)
	}
	return &topping, nil
}

// GetByID returns the topping joined with its owning category summary.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ToppingWithCategory, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	pipeline = append(pipeline, catalog.CategoryLookup()...)

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperror.Storage("failed to get topping", err)
	}
	defer cursor.Close(ctx)

	var results []models.ToppingWithCategory
	if err := cursor.All(ctx, &results); err != nil {
		return nil, apperror.Storage("failed to decode topping", err)
	}
	if len(results) == 0 {
		return nil, apperror.NotFound("topping not found")
	}
	return &results[0], nil
}

// Search matches name as a case-insensitive substring with the supplied
// filters, joined with categories, newest first.
func (s *Store) Search(ctx context.Context, q string, f catalog.Filters, pq utils.PageQuery) (*catalog.Paginated[models.ToppingWithCategory], error) {
	pipeline := catalog.SearchPipeline(q, []string{"name"}, f, true)
	return catalog.Paginate[models.ToppingWithCategory](ctx, s.coll, pipeline, pq)
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperror.Storage("failed to delete topping", err)
	}
	if result.DeletedCount == 0 {
		return apperror.NotFound("topping not found")
	}
	return nil
}

// CountByCategory serves the referential integrity guard.
func (s *Store) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"categoryId": categoryID})
	if err != nil {
		return 0, apperror.Storage("failed to count toppings", err)
	}
	return n, nil
}
