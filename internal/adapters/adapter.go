// Package adapters exposes every content type behind one read interface and
// turns the legacy write paths into rejected, recorded operations.
package adapters

import "context"

// Reader is the read side every content type offers.
type Reader[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
	FetchBySlug(ctx context.Context, slug string) (*T, error)
	FetchByID(ctx context.Context, id string) (*T, error)
}

// Writer is the legacy write side. Content adapters built by ReadOnly reject
// every call.
type Writer[T any] interface {
	Create(ctx context.Context, record T) (*T, error)
	Update(ctx context.Context, id string, record T) (*T, error)
	Delete(ctx context.Context, id string) error
	Clone(ctx context.Context, id string) (*T, error)
}

// ContentAdapter is the full surface the admin screens call.
type ContentAdapter[T any] interface {
	Reader[T]
	Writer[T]
}

// Legacy capability interfaces. A source may implement any subset.
type (
	AllGetter[T any] interface {
		GetAll(ctx context.Context) ([]T, error)
	}
	SlugGetter[T any] interface {
		GetBySlug(ctx context.Context, slug string) (*T, error)
	}
	IDGetter[T any] interface {
		GetByID(ctx context.Context, id string) (*T, error)
	}
)

// Operation names used in logs, registry keys and errors.
const (
	OpFetchAll    = "fetchAll"
	OpFetchBySlug = "fetchBySlug"
	OpFetchByID   = "fetchById"
	OpCreate      = "create"
	OpUpdate      = "update"
	OpDelete      = "delete"
	OpClone       = "clone"
)
