package quickteller

import (
	"errors"
	"reflect"
	"strings"

	"github.com/clbanning/mxj/v2"
	"github.com/go-viper/mapstructure/v2"
)

const (
	responseRoot = "Response"
	attrPrefix   = "-"
	textKey      = "#text"
)

var errMissingRoot = errors.New("response element is missing")

// ToMap converts an XML fragment into nested maps. Values are kept as strings,
// attributes are merged with child elements and a single child stays a single
// value rather than a one-element list.
func ToMap(fragment string) (map[string]any, error) {
	m, err := mxj.NewMapXml([]byte(stripDeclaration(fragment)))
	if err != nil {
		return nil, err
	}
	return mergeAttributes(map[string]any(m)), nil
}

// stripDeclaration drops a leading byte order mark and XML declaration. The
// fragment is already a decoded string, so a declared encoding such as utf-16
// no longer describes its bytes.
func stripDeclaration(fragment string) string {
	doc := strings.TrimLeft(fragment, "\ufeff \t\r\n")
	if !strings.HasPrefix(doc, "<?xml") {
		return fragment
	}
	end := strings.Index(doc, "?>")
	if end < 0 {
		return fragment
	}
	return doc[end+len("?>"):]
}

func mergeAttributes(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		if strings.HasPrefix(key, attrPrefix) {
			continue
		}
		out[key] = mergeValue(value)
	}
	for key, value := range m {
		if !strings.HasPrefix(key, attrPrefix) {
			continue
		}
		name := strings.TrimPrefix(key, attrPrefix)
		if _, taken := out[name]; !taken {
			out[name] = value
		}
	}
	return out
}

func mergeValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return mergeAttributes(value)
	case []any:
		items := make([]any, len(value))
		for i, item := range value {
			items[i] = mergeValue(item)
		}
		return items
	default:
		return v
	}
}

// decodeResponse parses the result fragment of operation and decodes its
// Response element into T.
func decodeResponse[T any](operation, fragment string) (*T, error) {
	m, err := ToMap(fragment)
	if err != nil {
		return nil, &DecodeError{Operation: operation, Err: err}
	}

	root, ok := m[responseRoot]
	if !ok {
		return nil, &DecodeError{Operation: operation, Err: errMissingRoot}
	}

	out := new(T)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			sequenceHook,
			emptyElementHook,
			textNodeHook,
		),
		Result: out,
	})
	if err != nil {
		return nil, &DecodeError{Operation: operation, Err: err}
	}
	if err := decoder.Decode(root); err != nil {
		return nil, &DecodeError{Operation: operation, Err: err}
	}
	return out, nil
}

// sequenceHook makes every list-typed field a list, whether the document held
// one element or many.
func sequenceHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Slice || from.Kind() == reflect.Slice {
		return data, nil
	}
	if s, ok := data.(string); ok && strings.TrimSpace(s) == "" {
		return []any{}, nil
	}
	return ToArray(data), nil
}

// emptyElementHook decodes an empty element such as <BillPayment/> into a zero
// struct.
func emptyElementHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Struct || from.Kind() != reflect.String {
		return data, nil
	}
	if strings.TrimSpace(data.(string)) == "" {
		return map[string]any{}, nil
	}
	return data, nil
}

// textNodeHook reads the text of an element that also carries attributes.
func textNodeHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || from.Kind() != reflect.Map {
		return data, nil
	}
	m, ok := data.(map[string]any)
	if !ok {
		return data, nil
	}
	if text, ok := m[textKey]; ok {
		return text, nil
	}
	return "", nil
}
