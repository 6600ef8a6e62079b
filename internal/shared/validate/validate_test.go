package validate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magazine-backend/internal/shared/crud"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(method, target, body string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	c.Request = r
	return c
}

func fieldOf(t *testing.T, err error) *FieldError {
	t.Helper()
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	return fe
}

func TestRequirePresent(t *testing.T) {
	body := crud.Fields{"first_name": "Ada", "third_name": nil}

	assert.NoError(t, RequirePresent(body, "first_name"))
	assert.NoError(t, RequirePresent(body, "third_name"), "null counts as present")

	fe := fieldOf(t, RequirePresent(body, "first_name", "second_name", "title"))
	assert.Equal(t, "second_name", fe.Key)
	assert.Equal(t, NotSet, fe.Message)

	fe = fieldOf(t, RequirePresent(nil, "title"))
	assert.Equal(t, "title", fe.Key)
}

func TestRequireTrue(t *testing.T) {
	assert.NoError(t, RequireTrue(true, "image", "jpg or png only"))

	fe := fieldOf(t, RequireTrue(false, "image", "jpg or png only"))
	assert.Equal(t, &FieldError{Key: "image", Message: "jpg or png only"}, fe)
}

func TestRequireKey(t *testing.T) {
	key, err := RequireKey(crud.Fields{"author_key": json.Number("4")}, "author_key")
	require.NoError(t, err)
	assert.Equal(t, int64(4), key)

	key, err = RequireKey(crud.Fields{"author_key": "12"}, "author_key")
	require.NoError(t, err)
	assert.Equal(t, int64(12), key)

	fe := fieldOf(t, func() error { _, err := RequireKey(crud.Fields{}, "author_key"); return err }())
	assert.Equal(t, NotSet, fe.Message)

	fe = fieldOf(t, func() error { _, err := RequireKey(crud.Fields{"author_key": "x"}, "author_key"); return err }())
	assert.Equal(t, NotInteger, fe.Message)
}

func TestRequireKeySet(t *testing.T) {
	keys, err := RequireKeySet(crud.Fields{"authors": []any{json.Number("1"), json.Number("2")}}, "authors")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, keys)

	_, err = RequireKeySet(crud.Fields{"authors": "1"}, "authors")
	assert.Equal(t, NotArray, fieldOf(t, err).Message)
}

func TestBindObject(t *testing.T) {
	body, err := BindObject(testContext(http.MethodPost, "/author/add", `{"first_name":"Ada","author_key":5}`))
	require.NoError(t, err)
	assert.Equal(t, "Ada", body["first_name"])
	assert.Equal(t, json.Number("5"), body["author_key"])

	for _, raw := range []string{"", "[1,2]", "null", "\"text\"", "{broken", `{"a":1} {"x":1}`, `{"a":1}]`, `{"a":1} 7`} {
		_, err := BindObject(testContext(http.MethodPost, "/author/add", raw))
		fe := fieldOf(t, err)
		assert.Equal(t, "error", fe.Key, raw)
		assert.Equal(t, InvalidQuery, fe.Message, raw)
	}
}

func TestBindObjectAllowsTrailingWhitespace(t *testing.T) {
	body, err := BindObject(testContext(http.MethodPost, "/author/add", "{\"first_name\":\"Ada\"}\n\t "))
	require.NoError(t, err)
	assert.Equal(t, "Ada", body["first_name"])
}

func TestPageRejectsOffsetOverflow(t *testing.T) {
	_, _, err := Page(testContext(http.MethodGet, "/author/list?page=9223372036854775807&perPage=9223372036854775807", ""))
	fe := fieldOf(t, err)
	assert.Equal(t, "page", fe.Key)
	assert.Equal(t, OutOfRange, fe.Message)

	page, perPage, err := Page(testContext(http.MethodGet, "/author/list?page=9223372036854775807&perPage=1", ""))
	require.NoError(t, err)
	assert.Equal(t, 9223372036854775807, page)
	assert.Equal(t, 1, perPage)
}

func TestPage(t *testing.T) {
	page, perPage, err := Page(testContext(http.MethodGet, "/author/list", ""))
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, perPage)

	page, perPage, err = Page(testContext(http.MethodGet, "/author/list?page=2&perPage=1", ""))
	require.NoError(t, err)
	assert.Equal(t, 2, page)
	assert.Equal(t, 1, perPage)

	for _, q := range []string{"page=0", "page=-1", "page=abc", "perPage=0", "perPage=1.5"} {
		_, _, err := Page(testContext(http.MethodGet, "/author/list?"+q, ""))
		fe := fieldOf(t, err)
		assert.Equal(t, NotPositive, fe.Message, q)
		assert.Equal(t, strings.SplitN(q, "=", 2)[0], fe.Key, q)
	}
}
