// Package category owns category schema documents: the dynamic price
// configuration and attribute widgets items instantiate.
package category

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tech-manthan/mernspace-catalog-service/apperror"
	"github.com/tech-manthan/mernspace-catalog-service/catalog"
	"github.com/tech-manthan/mernspace-catalog-service/db"
	"github.com/tech-manthan/mernspace-catalog-service/models"
	"github.com/tech-manthan/mernspace-catalog-service/rdx"
	"github.com/tech-manthan/mernspace-catalog-service/utils"
)

const cacheTTL = 10 * time.Minute

type Store struct {
	coll  *mongo.Collection
	cache *rdx.Cache
}

func NewStore(database *db.Database, cache *rdx.Cache) *Store {
	return &Store{coll: database.Categories, cache: cache}
}

func cacheKey(id primitive.ObjectID) string {
	return "category:" + id.Hex()
}

func (s *Store) Create(ctx context.Context, name string, pc map[string]models.PriceOption, attrs []models.Attribute) (*models.Category, error) {
	now := time.Now().UTC()
	category := &models.Category{
		Name:               name,
		PriceConfiguration: pc,
		Attributes:         attrs,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	result, err := s.coll.InsertOne(ctx, category)
	if err != nil {
		return nil, apperror.Storage("failed to create category", err)
	}
	category.ID = result.InsertedID.(primitive.ObjectID)
	return category, nil
}

// Update holds the partial update; nil fields are left untouched.
type Update struct {
	Name               *string
	PriceConfiguration map[string]models.PriceOption
	Attributes         []models.Attribute
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Category, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.PriceConfiguration != nil {
		set["priceConfiguration"] = upd.PriceConfiguration
	}
	if upd.Attributes != nil {
		set["attributes"] = upd.Attributes
	}
	if len(set) == 0 {
		// Nothing to apply; an empty partial must leave the entity unchanged.
		return s.Get(ctx, id)
	}
	set["updatedAt"] = time.Now().UTC()

	var category models.Category
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("category not found")
	}
	if err != nil {
		return nil, apperror.Storage("failed to update category", err)
	}

	s.invalidate(ctx, id)
	return &category, nil
}

// Get reads through the Redis cache.
func (s *Store) Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	key := cacheKey(id)
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		var category models.Category
		if err := json.Unmarshal([]byte(cached), &category); err == nil {
			return &category, nil
		}
	}

	var category models.Category
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("category not found")
	}
	if err != nil {
		return nil, apperror.Storage("failed to get category", err)
	}

	if data, err := json.Marshal(category); err == nil {
		if err := s.cache.Set(ctx, key, string(data), cacheTTL); err != nil {
			log.Printf("category: cache set %s: %v", key, err)
		}
	}
	return &category, nil
}

// Search matches name as a case-insensitive substring, newest first.
func (s *Store) Search(ctx context.Context, q string, pq utils.PageQuery) (*catalog.Paginated[models.Category], error) {
	pipeline := catalog.SearchPipeline(q, []string{"name"}, catalog.Filters{}, false)
	return catalog.Paginate[models.Category](ctx, s.coll, pipeline, pq)
}

// Delete removes the document and reports how many were removed. External
// callers go through the integrity guard, never here directly.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, apperror.Storage("failed to delete category", err)
	}
	s.invalidate(ctx, id)
	return result.DeletedCount, nil
}

func (s *Store) invalidate(ctx context.Context, id primitive.ObjectID) {
	if err := s.cache.Del(ctx, cacheKey(id)); err != nil {
		log.Printf("category: cache invalidate %s: %v", id.Hex(), err)
	}
}
