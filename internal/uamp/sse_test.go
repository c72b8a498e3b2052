package uamp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-test/deep"
)

func TestListenParsesEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "text/event-stream" {
			t.Errorf("Accept = %q", got)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, ": keepalive\n\n")
		fmt.Fprint(w, "event: playback\ndata: \"Playing\"\n\n")
		fmt.Fprint(w, "event: queue\ndata: [1,\ndata: 2]\n\n")
		fmt.Fprint(w, "data: plain\n\n")
		fmt.Fprint(w, "event: quitting\ndata:\n\n")
	}))
	defer srv.Close()

	s := NewStream(srv.URL, nil)
	events := make(chan Event, 10)
	connected := false
	ok, err := s.Listen(context.Background(), events, func() { connected = true })
	if !ok || !connected {
		t.Fatalf("Listen() connected = %v, %v", ok, connected)
	}
	if err == nil {
		t.Error("Listen() returned nil error after stream end")
	}
	close(events)

	var got []Event
	for ev := range events {
		got = append(got, ev)
	}
	want := []Event{
		{Name: EventPlayback, Data: []byte(`"Playing"`)},
		{Name: EventQueue, Data: []byte("[1,\n2]")},
		{Name: "message", Data: []byte("plain")},
		{Name: EventQuitting},
	}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestListenRejectsStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	ok, err := NewStream(srv.URL, nil).Listen(context.Background(), make(chan Event), nil)
	if ok || err == nil {
		t.Errorf("Listen() = %v, %v, want not connected with error", ok, err)
	}
}

func TestRunReconnects(t *testing.T) {
	var conns atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := conns.Add(1)
		if n == 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, "event: set-volume\ndata: 0.%d\n\n", n)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewStream(srv.URL, nil, WithBackoff(time.Millisecond, 5*time.Millisecond))
	events := make(chan Event)
	status := make(chan Status, 32)
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, events, status) }()

	for _, want := range []string{"0.1", "0.3"} {
		select {
		case ev := <-events:
			if string(ev.Data) != want {
				t.Errorf("event data = %s, want %s", ev.Data, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}

	close(status)
	var connects, failures int
	for st := range status {
		if st.Connected {
			connects++
		} else if st.Err != nil {
			failures++
		}
	}
	if connects < 2 || failures < 2 {
		t.Errorf("status: %d connects, %d failures", connects, failures)
	}
}

func TestRunGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewStream(srv.URL, nil, WithBackoff(time.Microsecond, time.Microsecond))
	err := s.Run(context.Background(), make(chan Event), nil)
	if err == nil {
		t.Fatal("Run() = nil, want error")
	}
}

func TestBackoff(t *testing.T) {
	s := NewStream("http://localhost", nil)
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{4, 8 * time.Second},
		{5, 16 * time.Second},
		{6, 30 * time.Second},
		{10, 30 * time.Second},
	}
	for _, tt := range tests {
		if got := s.backoff(tt.attempt); got != tt.want {
			t.Errorf("backoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}
