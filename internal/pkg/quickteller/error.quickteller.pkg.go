package quickteller

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotInitialized     = errors.New("initialize the Quickteller client first by calling Init()")
	ErrAlreadyInitialized = errors.New("quickteller client is already initialized")
	ErrMissingConfig      = errors.New("missing quickteller configuration")
)

// Error is a business failure reported by Quickteller, or classified locally
// from an otherwise successful response.
type Error struct {
	Message     string
	Code        *string
	Description *string

	// RequestReference is set for bill payment advice failures so callers can
	// correlate retries with the reference that was sent.
	RequestReference string
}

func NewError(message string, code, description *string) *Error {
	return &Error{
		Message:     message,
		Code:        code,
		Description: description,
	}
}

func (e *Error) Error() string {
	if e.Code == nil || e.Description == nil || *e.Code == "" || *e.Description == "" {
		return e.Message
	}
	return fmt.Sprintf("%s with response code %s : %s", e.Message, *e.Code, *e.Description)
}

// ResponseCode returns the provider code, or "" for locally classified errors.
func (e *Error) ResponseCode() string {
	if e.Code == nil {
		return ""
	}
	return *e.Code
}

// ResponseDescription returns the provider description, or "".
func (e *Error) ResponseDescription() string {
	if e.Description == nil {
		return ""
	}
	return *e.Description
}

// ConfigError is returned by Init when required settings are empty.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("the following settings are required to initialize the Quickteller client: %s",
		strings.Join(e.Missing, ", "))
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// DecodeError wraps a malformed XML response. It is a transport-level failure,
// never a classified business error.
type DecodeError struct {
	Operation string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %v", e.Operation, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// AsError extracts a business *Error from err.
func AsError(err error) (*Error, bool) {
	var qErr *Error
	if errors.As(err, &qErr) {
		return qErr, true
	}
	return nil, false
}

// HasCode reports whether err is a business error carrying the given code.
func HasCode(err error, code string) bool {
	qErr, ok := AsError(err)
	return ok && qErr.Code != nil && *qErr.Code == code
}

// IsNotFound reports whether err means the requested billers, biller or
// transaction do not exist, whether classified locally or by the provider.
func IsNotFound(err error) bool {
	qErr, ok := AsError(err)
	if !ok {
		return false
	}
	if qErr.Code == nil {
		return true
	}
	switch *qErr.Code {
	case CodeBillerNotFound, CodeDataNotFound:
		return true
	}
	return false
}
