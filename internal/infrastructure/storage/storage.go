package storage

import (
	"context"
	"errors"
	"path/filepath"
)

// ErrInvalidName is returned for asset names that are not a single path element.
var ErrInvalidName = errors.New("invalid asset name")

// AssetStore relocates a staged upload into asset storage.
// Store takes ownership of src: on success the staged file no longer exists.
// The returned path is root-relative and starts with "/".
type AssetStore interface {
	Store(ctx context.Context, src, name string) (string, error)
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return ErrInvalidName
	}
	return nil
}
