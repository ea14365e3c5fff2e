package helper

import (
	"net/http"

	types "go-quickteller/internal/common/type"
)

// ParseResponse fills the defaults of r: 200 when no code is set, and the
// status text when no message is set.
func ParseResponse(r *types.Response) *types.Response {
	if r.Code == 0 {
		r.Code = http.StatusOK
		if r.Error != nil {
			r.Code = http.StatusInternalServerError
		}
	}
	if r.Message == "" {
		r.Message = http.StatusText(r.Code)
	}
	return r
}

func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}
