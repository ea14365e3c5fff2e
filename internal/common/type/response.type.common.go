package types

// Response is what services hand back to handlers. The "send" function
// installed by middleware.ResponseInit renders it as a ResponseAPI.
type Response struct {
	Code    int
	Message string
	Data    any
	Error   error
	// Headers are copied onto the HTTP response.
	Headers map[string]string
}

type ResponseAPI struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
