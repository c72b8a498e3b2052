package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/session"
	"github.com/tessro/uampc/internal/uamp"
)

// Error types for common failure scenarios.
var (
	ErrServerUnreachable = errors.New("uamp server unreachable")
	ErrNoState           = errors.New("server sent no state")
	ErrTimeout           = errors.New("request timeout")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrNotInteractive    = errors.New("not running in a terminal")
)

// UampcError wraps an error with a user-friendly suggestion.
type UampcError struct {
	Err        error
	Suggestion string
}

func (e *UampcError) Error() string {
	return e.Err.Error()
}

func (e *UampcError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &UampcError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var uErr *UampcError
	if errors.As(err, &uErr) && uErr.Suggestion != "" {
		return uErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Connection errors
	if errors.Is(err, ErrServerUnreachable) || strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return "Start the uamp server or point uampc at it with --address/--port or server.address in the config"
	}

	if errors.Is(err, uamp.ErrNotUamp) {
		return "Something else is listening on that port. Check server.port in the config"
	}

	if errors.Is(err, ErrTimeout) || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return "The server did not answer in time. Raise server.timeout or check the network"
	}

	// Player state errors
	if errors.Is(err, session.ErrNothingPlaying) {
		return "Start playback first, for example with 'uampc play <query>'"
	}

	if errors.Is(err, core.ErrInvalidTab) {
		return "Run 'uampc queue' to see the playlist tabs"
	}

	if errors.Is(err, core.ErrIndexOutOfRange) {
		return "Run 'uampc queue' to see valid positions"
	}

	if errors.Is(err, ErrNotInteractive) {
		return "Pass the value as an argument instead of picking it interactively"
	}

	// Config errors
	if errors.Is(err, ErrConfigNotFound) {
		return "Run 'uampc config init' to create a configuration file"
	}

	if errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Run 'uampc config show' to inspect the configuration"
	}

	// Server errors
	var apiErr *uamp.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 500 {
		return "The uamp server failed to handle the request. Check its log"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// Err joins the collected errors, or returns nil.
func (p *PartialResult[T]) Err() error {
	return errors.Join(p.Errors...)
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors occurred:\n", len(p.Errors))
	for i, err := range p.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}
