package models

// ErrorResponse is the standard JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
	// ResetAt is set only on rate-limit rejections (unix seconds).
	ResetAt int64 `json:"resetAt,omitempty"`
}
