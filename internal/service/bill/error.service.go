package bill

import (
	"errors"
	"net/http"

	types "go-quickteller/internal/common/type"
	"go-quickteller/internal/pkg/helper"
	"go-quickteller/internal/pkg/quickteller"
)

// errorResponse maps a Quickteller failure to an HTTP response: not found
// codes to 404, other business codes to 422, an unready client to 503 and
// anything else, transport and decoding failures included, to 502.
func errorResponse(err error) *types.Response {
	if qErr, ok := quickteller.AsError(err); ok {
		code := http.StatusUnprocessableEntity
		if quickteller.IsNotFound(err) {
			code = http.StatusNotFound
		}
		return helper.ParseResponse(&types.Response{
			Code:    code,
			Message: qErr.Error(),
			Data: ErrorDetail{
				ResponseCode:        qErr.ResponseCode(),
				ResponseDescription: qErr.ResponseDescription(),
				RequestReference:    qErr.RequestReference,
			},
			Error: err,
		})
	}

	var cfgErr *quickteller.ConfigError
	if errors.Is(err, quickteller.ErrNotInitialized) || errors.Is(err, quickteller.ErrAlreadyInitialized) || errors.As(err, &cfgErr) {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "Quickteller client is not ready",
			Error:   err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusBadGateway,
		Message: "Quickteller request failed",
		Error:   err,
	})
}
