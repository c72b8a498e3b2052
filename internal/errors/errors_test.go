package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/session"
	"github.com/tessro/uampc/internal/uamp"
)

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"explicit", WithSuggestion(errors.New("boom"), "do the thing"), "do the thing"},
		{"unreachable", fmt.Errorf("subscribe: %w", ErrServerUnreachable), "Start the uamp server"},
		{"refused", errors.New("dial tcp 127.0.0.1:8267: connect: connection refused"), "Start the uamp server"},
		{"not uamp", fmt.Errorf("ping: %w", uamp.ErrNotUamp), "Something else is listening"},
		{"deadline", errors.New("context deadline exceeded"), "did not answer in time"},
		{"nothing playing", session.ErrNothingPlaying, "Start playback first"},
		{"tab", fmt.Errorf("raise: %w", core.ErrInvalidTab), "playlist tabs"},
		{"position", core.ErrIndexOutOfRange, "valid positions"},
		{"config", ErrConfigNotFound, "uampc config init"},
		{"server", &uamp.APIError{Status: 500}, "failed to handle the request"},
		{"client", &uamp.APIError{Status: 400, Body: "bad"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetSuggestion(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("GetSuggestion() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("GetSuggestion() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestWithSuggestionUnwraps(t *testing.T) {
	err := WithSuggestion(fmt.Errorf("jump: %w", core.ErrIndexOutOfRange), "pick another row")
	if !errors.Is(err, core.ErrIndexOutOfRange) {
		t.Error("errors.Is() = false through UampcError")
	}
	if err.Error() != "jump: index out of range" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q", got)
	}
	if got := Format(errors.New("plain")); got != "Error: plain" {
		t.Errorf("Format() = %q", got)
	}
	got := Format(WithSuggestion(errors.New("bad"), "fix it"))
	if got != "Error: bad\n\nSuggestion: fix it" {
		t.Errorf("Format() = %q", got)
	}
}

func TestPartialResult(t *testing.T) {
	var p PartialResult[int]
	p.AddError(nil)
	if p.HasErrors() || p.Err() != nil || p.ErrorSummary() != "" {
		t.Fatal("empty result reports errors")
	}

	p.AddError(errors.New("first"))
	if p.ErrorSummary() != "first" {
		t.Errorf("ErrorSummary() = %q", p.ErrorSummary())
	}
	p.AddError(errors.New("second"))
	want := "2 errors occurred:\n  1. first\n  2. second\n"
	if p.ErrorSummary() != want {
		t.Errorf("ErrorSummary() = %q, want %q", p.ErrorSummary(), want)
	}
	if p.Err() == nil {
		t.Error("Err() = nil")
	}
}
