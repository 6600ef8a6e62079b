package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Result is what a handler returns instead of writing to the connection itself.
// Every JSON body is an envelope with exactly one top-level key.
type Result struct {
	Status int
	Key    string
	Value  interface{}
	Plain  string // non-empty: plain text body, no envelope
}

// FieldReporter is implemented by validation errors that name the offending field.
type FieldReporter interface {
	error
	FieldMessage() (key, message string)
}

// Success responses
func OK(key string, value interface{}) Result {
	return Result{Status: http.StatusOK, Key: key, Value: value}
}

// Error responses
func Error(message string) Result {
	return Field("error", message)
}

func Field(key, message string) Result {
	return Result{Status: http.StatusBadRequest, Key: key, Value: message}
}

// Forbidden deliberately skips the JSON envelope.
func Forbidden() Result {
	return Result{Status: http.StatusForbidden, Plain: "Forbidden"}
}

// FromError turns a validation failure into its field-keyed 400.
// Any other error is reported under "error" with its message.
func FromError(err error) Result {
	var fr FieldReporter
	if errors.As(err, &fr) {
		return Field(fr.FieldMessage())
	}
	return Error(err.Error())
}

// Write emits the result and stops the handler chain.
func (r Result) Write(c *gin.Context) {
	if r.Plain != "" {
		c.String(r.Status, r.Plain)
	} else {
		c.JSON(r.Status, gin.H{r.Key: r.Value})
	}
	c.Abort()
}

// Handle adapts a Result-returning handler to gin.
func Handle(fn func(c *gin.Context) Result) gin.HandlerFunc {
	return func(c *gin.Context) {
		fn(c).Write(c)
	}
}

// ForbiddenHandler answers unknown routes and wrong methods.
func ForbiddenHandler(c *gin.Context) {
	Forbidden().Write(c)
}
