package uamp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-test/deep"

	"github.com/tessro/uampc/internal/core"
)

func testClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL+"/", time.Second, nil)
	c.retryWait = time.Millisecond
	return c
}

func TestSendQuery(t *testing.T) {
	var got []string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != ctrlPath {
			t.Errorf("path = %q, want %q", r.URL.Path, ctrlPath)
		}
		got = append(got, r.URL.RawQuery)
	}))

	ctx := context.Background()
	if err := c.Send(ctx, RaiseTab(2).Then(Jump(5)).Then(Play())); err != nil {
		t.Fatal(err)
	}
	if err := c.Seek(ctx, core.NewDuration(75, 0)); err != nil {
		t.Fatal(err)
	}
	if err := c.Next(ctx); err != nil {
		t.Fatal(err)
	}

	want := []string{"rps=2&pj=5&pp=play", "seek=1%3A15", "ns"}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestSendPlaylist(t *testing.T) {
	var body map[string]PlaylistRequest
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &body); err != nil {
			t.Errorf("body %s: %v", data, err)
		}
	}))

	if err := c.SetPlaylist(context.Background(), []core.SongID{4, 2, 9}, 1, true); err != nil {
		t.Fatal(err)
	}
	want := map[string]PlaylistRequest{
		"SetPlaylist": {Songs: []core.SongID{4, 2, 9}, Position: 1, Play: true},
	}
	if diff := deep.Equal(body, want); diff != nil {
		t.Error(diff)
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
	}))

	if err := c.TogglePlay(context.Background()); err != nil {
		t.Fatalf("TogglePlay() = %v", err)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestRetryGivesUp(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "player crashed", http.StatusInternalServerError)
	}))

	err := c.Pause(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("Pause() = %v, want APIError 500", err)
	}
	if n := calls.Load(); n != maxRetries+1 {
		t.Errorf("calls = %d, want %d", n, maxRetries+1)
	}
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad position", http.StatusBadRequest)
	}))

	err := c.Jump(context.Background(), 99)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Jump() = %v, want APIError", err)
	}
	if got := apiErr.Error(); got != "uamp error 400: bad position" {
		t.Errorf("Error() = %q", got)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestPing(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		wantErr error
	}{
		{"uamp", "polo", nil},
		{"other", "hello", ErrNotUamp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != pingPath {
					http.NotFound(w, r)
					return
				}
				_, _ = io.WriteString(w, tt.answer)
			}))
			err := c.Ping(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Ping() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSendCanceled(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Play(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Play() = %v, want context.Canceled", err)
	}
}
