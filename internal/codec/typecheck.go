package codec

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/chess-client/internal/domain"
)

var rawMessageType = reflect.TypeOf(jsoniter.RawMessage{})

// decodeError names the first value whose JSON type does not fit t.
func decodeError(prefix string, data []byte, t reflect.Type, err error) error {
	var doc any
	if json.Unmarshal(data, &doc) == nil {
		if path, reason, ok := typeMismatch(doc, t, ""); ok {
			return &domain.SchemaError{Path: orRoot(joinPath(prefix, path)), Reason: reason}
		}
	}
	return &domain.SchemaError{Path: orRoot(prefix), Reason: err.Error()}
}

func typeMismatch(v any, t reflect.Type, path string) (string, string, bool) {
	if v == nil || t == rawMessageType {
		return "", "", false
	}
	switch t.Kind() {
	case reflect.Ptr:
		return typeMismatch(v, t.Elem(), path)
	case reflect.Struct:
		fields, ok := v.(map[string]any)
		if !ok {
			return path, "must be an object", true
		}
		for i := 0; i < t.NumField(); i++ {
			name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
			value, present := fields[name]
			if name == "" || name == "-" || !present {
				continue
			}
			if p, reason, ok := typeMismatch(value, t.Field(i).Type, joinPath(path, name)); ok {
				return p, reason, true
			}
		}
	case reflect.Slice, reflect.Array:
		items, ok := v.([]any)
		if !ok {
			return path, "must be an array", true
		}
		for i, item := range items {
			if t.Kind() == reflect.Array && i >= t.Len() {
				break
			}
			if p, reason, ok := typeMismatch(item, t.Elem(), joinPath(path, fmt.Sprintf("[%d]", i))); ok {
				return p, reason, true
			}
		}
	case reflect.String:
		if _, ok := v.(string); !ok {
			return path, "must be a string", true
		}
	case reflect.Bool:
		if _, ok := v.(bool); !ok {
			return path, "must be a boolean", true
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, ok := v.(float64); !ok || n != math.Trunc(n) {
			return path, "must be an integer", true
		}
	}
	return "", "", false
}
