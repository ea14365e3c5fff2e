package quickteller

import "reflect"

// ToArray returns v unchanged when it is already a slice (as []any) and wraps any
// other value in a one-element slice. A nil value yields an empty slice.
//
// The XML decoder collapses a repeated element into a bare value when only one
// instance is present, so every list-returning operation goes through here.
func ToArray(v any) []any {
	if v == nil {
		return []any{}
	}

	switch val := v.(type) {
	case []any:
		return val
	case []map[string]any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = val[i]
		}
		return out
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}

	return []any{v}
}
