package model

// Author is one row of the author table.
// Names are nullable: only first and second name are required on create,
// and that check belongs to the handler, not the store.
type Author struct {
	AuthorKey  int64   `json:"author_key" db:"author_key"`
	FirstName  *string `json:"first_name" db:"first_name"`
	SecondName *string `json:"second_name" db:"second_name"`
	ThirdName  *string `json:"third_name" db:"third_name"`
}

const (
	Table     = "author"
	KeyColumn = "author_key"
)

// FieldNames are the columns a request body may set.
var FieldNames = []string{"first_name", "second_name", "third_name"}

// Columns is the select list, key first.
var Columns = append([]string{KeyColumn}, FieldNames...)

// Required on /author/add.
var RequiredOnCreate = []string{"first_name", "second_name"}
