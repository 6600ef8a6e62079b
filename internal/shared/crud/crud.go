// Package crud holds the contract shared by the author and magazine repositories
// and the helpers that turn a decoded JSON body into bound column values.
package crud

import (
	"context"
	"errors"
	"math"
)

var (
	// ErrNotFound is returned when an update or delete touched zero rows.
	ErrNotFound = errors.New("record not found")
	// ErrNothingToUpdate is returned when no recognized field was supplied,
	// so no UPDATE statement is issued at all.
	ErrNothingToUpdate = errors.New("no recognized fields to update")
)

// Fields is a decoded request body keyed by column name.
type Fields map[string]any

// Has reports whether name is present, even with a null value.
func (f Fields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// Without returns a copy of f with the given names removed.
func (f Fields) Without(names ...string) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	for _, name := range names {
		delete(out, name)
	}
	return out
}

// Repository is the four-operation capability every entity implements.
type Repository[T any] interface {
	// Create inserts a row and returns its generated identity.
	Create(ctx context.Context, fields Fields) (int64, error)
	// Read returns at most perPage rows starting at (page-1)*perPage, in storage order.
	Read(ctx context.Context, page, perPage int) ([]T, error)
	// Update applies the recognized fields to the row identified by key.
	Update(ctx context.Context, key int64, fields Fields) error
	// Delete removes the row identified by key.
	Delete(ctx context.Context, key int64) error
}

// Offset computes the row offset of a page. Pages start at 1.
// The result saturates at MaxInt64, the largest OFFSET the stores accept.
func Offset(page, perPage int) uint64 {
	if page < 1 || perPage < 1 {
		return 0
	}
	if uint64(page-1) > math.MaxInt64/uint64(perPage) {
		return math.MaxInt64
	}
	return uint64(page-1) * uint64(perPage)
}
