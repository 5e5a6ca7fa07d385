package models

import "time"

// ErrorCode classifies a failed generation by its cause so callers can route
// without parsing error strings.
type ErrorCode string

const (
	// ErrCodeInvalidRequest means the caller's input was malformed (missing
	// prompt or model, unknown aspect ratio). No provider was consulted.
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeModelNotFound means no registered provider claims the requested
	// model id.
	ErrCodeModelNotFound ErrorCode = "model_not_found"

	// ErrCodeProviderUnavailable means the resolved provider's local
	// availability check failed, typically a missing credential.
	ErrCodeProviderUnavailable ErrorCode = "provider_unavailable"

	// ErrCodeProviderError means the vendor call failed or returned no usable
	// image.
	ErrCodeProviderError ErrorCode = "provider_error"

	// ErrCodeTimeout means the vendor call exceeded the configured deadline.
	ErrCodeTimeout ErrorCode = "timeout"

	// ErrCodeInternal means the service itself failed unexpectedly while
	// handling the request.
	ErrCodeInternal ErrorCode = "internal_error"
)

// GenerationResponse is the uniform result returned to callers regardless of
// which provider served the request. Exactly one of ImageURL (success) or
// Error (failure) is populated; Provider, Model and GeneratedAt are always
// set by adapters, even on failure.
type GenerationResponse struct {
	Success     bool           `json:"success"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	Error       string         `json:"error,omitempty"`
	ErrorCode   ErrorCode      `json:"errorCode,omitempty"`
	Provider    string         `json:"provider"`
	Model       string         `json:"model"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// NewSuccess builds a success-shaped response.
func NewSuccess(provider, model, imageURL string) *GenerationResponse {
	return &GenerationResponse{
		Success:     true,
		ImageURL:    imageURL,
		Provider:    provider,
		Model:       model,
		GeneratedAt: time.Now().UTC(),
	}
}

// NewFailure builds a failure-shaped response with a classified cause.
func NewFailure(provider, model string, code ErrorCode, message string) *GenerationResponse {
	return &GenerationResponse{
		Success:     false,
		Error:       message,
		ErrorCode:   code,
		Provider:    provider,
		Model:       model,
		GeneratedAt: time.Now().UTC(),
	}
}

// WithMetadata attaches a provider-specific key/value pair and returns the
// response for chaining.
func (r *GenerationResponse) WithMetadata(key string, value any) *GenerationResponse {
	if r.Metadata == nil {
		r.Metadata = make(map[string]any)
	}
	r.Metadata[key] = value
	return r
}
