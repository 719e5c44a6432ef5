// Package catalog builds and executes the read pipelines shared by the
// category and item stores: text search, optional equality filters, the
// category join, newest-first ordering and pagination, all in a single
// aggregate round trip.
package catalog

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tech-manthan/mernspace-catalog-service/apperror"
	"github.com/tech-manthan/mernspace-catalog-service/utils"
)

// Filters are equality predicates applied only when set.
type Filters struct {
	TenantID   *string
	CategoryID *primitive.ObjectID
	IsPublish  *bool
}

type Paginated[T any] struct {
	Docs      []T   `json:"docs"`
	TotalDocs int64 `json:"totalDocs"`
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
}

// Match builds the $match document: supplied filters plus a
// case-insensitive substring predicate over textFields. An empty query
// matches everything.
func Match(q string, textFields []string, f Filters) bson.M {
	match := bson.M{}

	if f.TenantID != nil {
		match["tenantId"] = *f.TenantID
	}
	if f.CategoryID != nil {
		match["categoryId"] = *f.CategoryID
	}
	if f.IsPublish != nil {
		match["isPublish"] = *f.IsPublish
	}

	regex := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	switch len(textFields) {
	case 0:
	case 1:
		match[textFields[0]] = regex
	default:
		or := make(bson.A, 0, len(textFields))
		for _, field := range textFields {
			or = append(or, bson.M{field: regex})
		}
		match["$or"] = or
	}

	return match
}

// CategoryLookup joins the owning category onto each item, projected to
// the summary shape. Items whose category no longer resolves keep a null
// category rather than dropping out of the result.
func CategoryLookup() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "categories",
			"localField":   "categoryId",
			"foreignField": "_id",
			"as":           "category",
			"pipeline": mongo.Pipeline{
				bson.D{{Key: "$project", Value: bson.M{
					"_id":                1,
					"name":               1,
					"attributes":         1,
					"priceConfiguration": 1,
				}}},
			},
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$category",
			"preserveNullAndEmptyArrays": true,
		}}},
	}
}

// SortNewestFirst orders by creation time descending with _id as the
// tiebreak so paging stays stable.
func SortNewestFirst() bson.D {
	return bson.D{{Key: "$sort", Value: bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	}}}
}

// SearchPipeline composes match, optional category join and sort.
func SearchPipeline(q string, textFields []string, f Filters, joinCategory bool) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: Match(q, textFields, f)}},
	}
	if joinCategory {
		pipeline = append(pipeline, CategoryLookup()...)
	}
	pipeline = append(pipeline, SortNewestFirst())
	return pipeline
}

// Skip returns the page window offset for a 1-indexed page.
func Skip(pq utils.PageQuery) int64 {
	return int64(pq.Page-1) * int64(pq.Limit)
}

type facetResult[T any] struct {
	Metadata []struct {
		Total int64 `bson:"total"`
	} `bson:"metadata"`
	Docs []T `bson:"docs"`
}

// Paginate appends a $facet counting the filtered set and slicing the page
// window, then runs the whole pipeline as one aggregate. TotalDocs always
// reflects the pre-page set; a page past the end yields empty docs.
func Paginate[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, pq utils.PageQuery) (*Paginated[T], error) {
	faceted := append(pipeline, bson.D{{Key: "$facet", Value: bson.M{
		"metadata": mongo.Pipeline{
			bson.D{{Key: "$count", Value: "total"}},
		},
		"docs": mongo.Pipeline{
			bson.D{{Key: "$skip", Value: Skip(pq)}},
			bson.D{{Key: "$limit", Value: int64(pq.Limit)}},
		},
	}}})

	cursor, err := coll.Aggregate(ctx, faceted)
	if err != nil {
		return nil, apperror.Storage("failed to run search", err)
	}
	defer cursor.Close(ctx)

	var results []facetResult[T]
	if err := cursor.All(ctx, &results); err != nil {
		return nil, apperror.Storage("failed to decode search results", err)
	}

	out := &Paginated[T]{
		Docs:  []T{},
		Page:  pq.Page,
		Limit: pq.Limit,
	}
	if len(results) > 0 {
		if results[0].Docs != nil {
			out.Docs = results[0].Docs
		}
		if len(results[0].Metadata) > 0 {
			out.TotalDocs = results[0].Metadata[0].Total
		}
	}
	return out, nil
}
