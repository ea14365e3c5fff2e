package soap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const envelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

type requestEnvelope struct {
	XMLName xml.Name    `xml:"soap:Envelope"`
	SoapNS  string      `xml:"xmlns:soap,attr"`
	Body    requestBody `xml:"soap:Body"`
}

type requestBody struct {
	Operation requestOperation
}

type requestOperation struct {
	XMLName   xml.Name
	Namespace string     `xml:"xmlns,attr,omitempty"`
	Params    *rawParams `xml:"xmlParams,omitempty"`
}

// rawParams is written verbatim so a CDATA section survives marshalling.
type rawParams struct {
	Inner string `xml:",innerxml"`
}

type responseEnvelope struct {
	Body struct {
		Fault   *Fault `xml:"Fault"`
		Content []byte `xml:",innerxml"`
	} `xml:"Body"`
}

type resultField struct {
	Inner string `xml:",innerxml"`
	Text  string `xml:",chardata"`
}

func buildEnvelope(namespace, operation string, xmlParams *string) ([]byte, error) {
	env := requestEnvelope{
		SoapNS: envelopeNS,
		Body: requestBody{
			Operation: requestOperation{
				XMLName:   xml.Name{Local: operation},
				Namespace: namespace,
			},
		},
	}
	if xmlParams != nil {
		env.Body.Operation.Params = &rawParams{Inner: *xmlParams}
	}

	body, err := xml.Marshal(env)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// parseEnvelope returns the children of <operation>Response keyed by element
// name, or the Fault carried by the body.
func parseEnvelope(data []byte, operation string) (Result, error) {
	var env responseEnvelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("invalid soap envelope: %w", err)
	}
	if env.Body.Fault != nil {
		return nil, env.Body.Fault
	}

	decoder := xml.NewDecoder(bytes.NewReader(env.Body.Content))
	wrapper := operation + "Response"
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("soap body has no %s element", wrapper)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid soap body: %w", err)
		}
		if start, ok := token.(xml.StartElement); ok && start.Name.Local == wrapper {
			return readFields(decoder)
		}
	}
}

func readFields(decoder *xml.Decoder) (Result, error) {
	result := Result{}
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid soap body: %w", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			var field resultField
			if err := decoder.DecodeElement(&field, &t); err != nil {
				return nil, fmt.Errorf("invalid %s element: %w", t.Name.Local, err)
			}
			result[t.Name.Local] = fieldValue(field)
		case xml.EndElement:
			return result, nil
		}
	}
}

// fieldValue prefers the text content, which holds escaped or CDATA wrapped
// documents, and falls back to inline markup.
func fieldValue(field resultField) string {
	if text := strings.TrimSpace(field.Text); text != "" {
		return text
	}
	return strings.TrimSpace(field.Inner)
}
