package crud

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Assignments keeps the recognized names present in fields, in the order of names,
// with values coerced for binding. The result feeds squirrel's SetMap.
func Assignments(fields Fields, names []string) map[string]interface{} {
	out := make(map[string]interface{})
	for _, name := range names {
		if v, ok := fields[name]; ok {
			out[name] = ColumnValue(v)
		}
	}
	return out
}

// Values returns the bound values of names in order; absent names bind NULL.
func Values(fields Fields, names []string) []interface{} {
	return lo.Map(names, func(name string, _ int) interface{} {
		return ColumnValue(fields[name])
	})
}

// ColumnValue converts a decoded JSON value to the text stored in a column.
func ColumnValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		if val {
			return "1"
		}
		return ""
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return nil
		}
		return string(data)
	}
}

var leadingInt = regexp.MustCompile(`^\s*[+-]?\d+`)

// IntValue coerces a decoded JSON value to an integer key the way a lenient
// form parser does: numbers are truncated, strings use their leading digits,
// everything else is 0.
func IntValue(v any) int64 {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return int64(f)
		}
		return IntValue(val.String())
	case float64:
		return int64(val)
	case int:
		return int64(val)
	case int64:
		return val
	case bool:
		if val {
			return 1
		}
		return 0
	case string:
		m := leadingInt.FindString(val)
		if m == "" {
			return 0
		}
		n, err := strconv.ParseInt(strings.TrimSpace(m), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// ParseKey converts an identity given as a JSON number or a numeric string.
// Unlike IntValue it refuses anything that is not a whole integer.
func ParseKey(v any) (int64, bool) {
	switch val := v.(type) {
	case json.Number:
		n, err := val.Int64()
		return n, err == nil
	case float64:
		if val != float64(int64(val)) {
			return 0, false
		}
		return int64(val), true
	case int:
		return int64(val), true
	case int64:
		return val, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// KeySet reads a JSON array of identities. Duplicates within one array are dropped.
func KeySet(v any) ([]int64, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	keys := lo.Map(items, func(item any, _ int) int64 { return IntValue(item) })
	return lo.Uniq(keys), true
}
