package middleware

import (
	"github.com/gin-gonic/gin"

	types "go-quickteller/internal/common/type"
	"go-quickteller/internal/pkg/helper"
	"go-quickteller/internal/pkg/logger"
	"go-quickteller/internal/pkg/validation"
)

// ResponseInit installs the "send" function handlers use to write a
// types.Response and stop the chain.
func ResponseInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("send", func(r *types.Response) {
			r = helper.ParseResponse(r)

			body := types.ResponseAPI{
				Status:    r.Code,
				Message:   r.Message,
				Data:      r.Data,
				RequestID: c.GetString(RequestIDKey),
			}
			if r.Error != nil {
				body.Error = validation.ParseError(r.Error)
				if r.Code >= 500 {
					logger.Error.Printf("%s %s: %v", body.RequestID, r.Message, r.Error)
				}
			}

			for key, value := range r.Headers {
				c.Header(key, value)
			}
			c.AbortWithStatusJSON(r.Code, body)
		})
		c.Next()
	}
}
