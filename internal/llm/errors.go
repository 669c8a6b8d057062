package llm

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotConfigured is returned when no API key was supplied
var ErrNotConfigured = errors.New("text generation is not configured")

// User-facing messages per failure class
const (
	MessageNotConfigured = "The AI client is not initialized. Set GEMINI_API_KEY to enable AI features."
	MessageInvalidKey    = "The provided API Key is not valid. Please check your configuration."
	MessageFailed        = "Failed to generate content from AI. Please try again later."
)

// ConfigError represents a generator that could not be initialized
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm config error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// AuthError represents the remote service rejecting the API key
type AuthError struct {
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm auth error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm auth error: %s", e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// GenerationError represents any other failed generation call
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm generation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm generation error: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// invalidKeyMarker is the text the endpoint returns for a malformed or revoked key
const invalidKeyMarker = "API key not valid"

// classify wraps a raw SDK error in AuthError or GenerationError
func classify(err error) error {
	if isAuthFailure(err) {
		return &AuthError{Message: "API key rejected", Cause: err}
	}
	return &GenerationError{Message: "failed to generate content", Cause: err}
}

func isAuthFailure(err error) bool {
	if strings.Contains(err.Error(), invalidKeyMarker) {
		return true
	}
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unauthenticated, codes.PermissionDenied:
			return true
		}
	}
	return false
}

// UserMessage returns the message to show next to the control that triggered
// a generation, or "" for a nil error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return MessageNotConfigured
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return MessageInvalidKey
	}
	return MessageFailed
}
