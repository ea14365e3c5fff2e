package quickteller

import (
	"encoding/xml"
	"fmt"
)

// Arguments is the single generic parameter of every Quickteller operation.
type Arguments struct {
	XMLParams string
}

// BuildArguments serializes v as a compact XML document without declaration
// and wraps it in a CDATA section.
func BuildArguments(v any) (*Arguments, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal xml params: %w", err)
	}
	return &Arguments{XMLParams: "<![CDATA[" + string(body) + "]]>"}, nil
}

// EmptyArguments is used by operations that take no parameters.
func EmptyArguments() *Arguments {
	return &Arguments{}
}

func (a *Arguments) params() *string {
	if a == nil || a.XMLParams == "" {
		return nil
	}
	return &a.XMLParams
}
