// Package integrity blocks category deletion while catalog items still
// reference the category.
package integrity

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tech-manthan/mernspace-catalog-service/apperror"
)

// ReferenceCounter reports how many items of one variant reference a
// category.
type ReferenceCounter interface {
	CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
}

// CategoryDeleter removes a category and reports the removed count.
type CategoryDeleter interface {
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type Guard struct {
	categories CategoryDeleter
	refs       []ReferenceCounter
}

func NewGuard(categories CategoryDeleter, refs ...ReferenceCounter) *Guard {
	return &Guard{categories: categories, refs: refs}
}

// DeleteCategory checks every referencing collection, then deletes. The
// check and the delete are two round trips; an item created in between can
// end up with a dangling reference (accepted, see DESIGN.md).
func (g *Guard) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	for _, ref := range g.refs {
		n, err := ref.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperror.Conflict("category is being used by catalog items and cannot be deleted")
		}
	}

	count, err := g.categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if count != 1 {
		return apperror.Conflict("category not deleted, try again")
	}
	return nil
}
