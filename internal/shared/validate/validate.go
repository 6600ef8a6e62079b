// Package validate holds the presence and shape checks run before a repository call.
// Each helper returns a *FieldError naming the offending key; handlers return it
// through response.FromError, which answers 400 with {key: message}.
package validate

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"magazine-backend/internal/shared/crud"
)

const (
	NotSet       = "not set"
	NotInteger   = "not integer"
	NotArray     = "not array"
	NotPositive  = "not positive integer"
	InvalidQuery = "invalid query"
	OutOfRange   = "out of range"

	DefaultPage    = 1
	DefaultPerPage = 20
)

// FieldError is a client error reported as {Key: Message}.
type FieldError struct {
	Key     string
	Message string
}

func (e *FieldError) Error() string {
	return e.Key + ": " + e.Message
}

func (e *FieldError) FieldMessage() (string, string) {
	return e.Key, e.Message
}

// RequirePresent fails on the first key that does not exist in source.
// A key holding null counts as present.
func RequirePresent(source crud.Fields, keys ...string) error {
	for _, key := range keys {
		if source == nil {
			return &FieldError{Key: key, Message: NotSet}
		}
		rule := validation.Map(validation.Key(key)).AllowExtraKeys()
		if err := validation.Validate(source, rule); err != nil {
			return &FieldError{Key: key, Message: NotSet}
		}
	}
	return nil
}

// RequireTrue fails with {key: message} when cond is false.
func RequireTrue(cond bool, key, message string) error {
	if cond {
		return nil
	}
	return &FieldError{Key: key, Message: message}
}

// RequireRule runs ozzo rules on value and replaces their message with a fixed one.
func RequireRule(key string, value interface{}, message string, rules ...validation.Rule) error {
	if err := validation.Validate(value, rules...); err != nil {
		return &FieldError{Key: key, Message: message}
	}
	return nil
}

// RequireKey checks that key is present and holds an integer identity.
func RequireKey(source crud.Fields, key string) (int64, error) {
	if err := RequirePresent(source, key); err != nil {
		return 0, err
	}
	n, ok := crud.ParseKey(source[key])
	if !ok {
		return 0, &FieldError{Key: key, Message: NotInteger}
	}
	return n, nil
}

// RequireKeySet checks that key holds a JSON array of identities.
func RequireKeySet(source crud.Fields, key string) ([]int64, error) {
	keys, ok := crud.KeySet(source[key])
	if !ok {
		return nil, &FieldError{Key: key, Message: NotArray}
	}
	return keys, nil
}

// BindObject decodes the request body, which must be exactly one JSON object.
// Numbers stay json.Number so keys and text columns round-trip exactly.
func BindObject(c *gin.Context) (crud.Fields, error) {
	invalid := &FieldError{Key: "error", Message: InvalidQuery}
	if c.Request.Body == nil {
		return nil, invalid
	}

	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()

	var body map[string]interface{}
	if err := dec.Decode(&body); err != nil || body == nil {
		return nil, invalid
	}
	// Anything after the object, even another valid value, is rejected.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, invalid
	}

	return crud.Fields(body), nil
}

// Page reads the page/perPage query parameters, defaulting to 1 and 20.
func Page(c *gin.Context) (int, int, error) {
	page, err := positiveQuery(c, "page", DefaultPage)
	if err != nil {
		return 0, 0, err
	}
	perPage, err := positiveQuery(c, "perPage", DefaultPerPage)
	if err != nil {
		return 0, 0, err
	}
	// (page-1)*perPage must fit the store's signed 64-bit OFFSET.
	if uint64(page-1) > math.MaxInt64/uint64(perPage) {
		return 0, 0, &FieldError{Key: "page", Message: OutOfRange}
	}
	return page, perPage, nil
}

func positiveQuery(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FieldError{Key: name, Message: NotPositive}
	}
	// Required rejects 0, which Min alone treats as empty and lets through.
	return n, RequireRule(name, n, NotPositive, validation.Required, validation.Min(1))
}
