package soap

import "fmt"

// Fault is a SOAP 1.1 fault returned by the service.
type Fault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
	Detail string `xml:"detail"`
}

func (f *Fault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.String)
}

// HTTPError is a non-2xx response that carried no SOAP fault.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("soap request failed with status %d", e.StatusCode)
}
