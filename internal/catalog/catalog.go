// Package catalog holds the storage and service plumbing shared by the
// machine, product type and technology packages.
package catalog

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"

	"github.com/goliatone/go-vendcms/internal/slugs"
)

// Entity is implemented by every top level content record.
type Entity interface {
	GetID() uuid.UUID
	GetSlug() string
	IsVisible() bool
}

// Repository is the read side every store offers: the slug resolver source
// plus a full listing of visible records.
type Repository[T any] interface {
	slugs.Source[T]
	List(ctx context.Context) ([]T, error)
}

// Writer persists a record together with its child collections.
type Writer[T any] interface {
	Save(ctx context.Context, record T) (T, error)
}

// NotFoundError is returned by Get style lookups that require a record.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
