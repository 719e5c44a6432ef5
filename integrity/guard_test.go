package integrity

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tech-manthan/mernspace-catalog-service/apperror"
)

type stubCounter struct {
	count int64
	err   error
}

func (s stubCounter) CountByCategory(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return s.count, s.err
}

type stubDeleter struct {
	deleted int64
	err     error
	called  bool
}

func (s *stubDeleter) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	s.called = true
	return s.deleted, s.err
}

func TestDeleteCategoryBlockedByReferences(t *testing.T) {
	deleter := &stubDeleter{deleted: 1}
	guard := NewGuard(deleter, stubCounter{count: 0}, stubCounter{count: 3})

	err := guard.DeleteCategory(context.Background(), primitive.NewObjectID())
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
	if deleter.called {
		t.Fatal("category must be left untouched when items reference it")
	}
}

func TestDeleteCategoryProceedsWhenUnreferenced(t *testing.T) {
	deleter := &stubDeleter{deleted: 1}
	guard := NewGuard(deleter, stubCounter{}, stubCounter{})

	if err := guard.DeleteCategory(context.Background(), primitive.NewObjectID()); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !deleter.called {
		t.Fatal("delete was never issued")
	}
}

func TestDeleteCategoryZeroRemoved(t *testing.T) {
	guard := NewGuard(&stubDeleter{deleted: 0}, stubCounter{})

	err := guard.DeleteCategory(context.Background(), primitive.NewObjectID())
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("zero-removed must surface as Conflict, got %v", err)
	}
}

func TestDeleteCategoryCounterFailure(t *testing.T) {
	deleter := &stubDeleter{deleted: 1}
	storageErr := apperror.Storage("failed to count products", errors.New("down"))
	guard := NewGuard(deleter, stubCounter{err: storageErr})

	err := guard.DeleteCategory(context.Background(), primitive.NewObjectID())
	if !apperror.IsKind(err, apperror.KindStorage) {
		t.Fatalf("expected Storage, got %v", err)
	}
	if deleter.called {
		t.Fatal("must not delete when the reference check fails")
	}
}
