package model

import "errors"

// Magazine is one row of the magazine table plus its linked author keys.
type Magazine struct {
	MagazineKey int64   `json:"magazine_key" db:"magazine_key"`
	Title       *string `json:"title" db:"title"`
	Short       *string `json:"short" db:"short"`
	Image       *string `json:"image" db:"image"`
	Published   *string `json:"published" db:"published"`
	Authors     []int64 `json:"authors"`
}

const (
	Table     = "magazine"
	KeyColumn = "magazine_key"

	LinkTable     = "magazine_authors"
	LinkAuthorKey = "author_key"

	// AuthorsField carries the author keys in create/update bodies.
	AuthorsField = "authors"
	ImageField   = "image"
)

// FieldNames are the columns a request body may set.
var FieldNames = []string{"title", "short", "image", "published"}

// Columns is the select list, key first.
var Columns = append([]string{KeyColumn}, FieldNames...)

// Required on /magazine/add.
var RequiredOnCreate = []string{"title", AuthorsField}

var ErrAuthorsNotArray = errors.New("authors must be an array of author keys")
