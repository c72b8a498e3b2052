package uamp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// MaxReconnects is the number of consecutive failed connection
	// attempts before Run gives up.
	MaxReconnects = 10

	// set-all carries the whole library.
	maxEventSize = 64 << 20
)

// Status reports changes of the stream connection.
type Status struct {
	Connected bool
	// Attempt is the reconnect attempt about to be made, 0 when connected.
	Attempt int
	Err     error
}

// Stream follows the server event stream.
type Stream struct {
	url        string
	httpClient *http.Client
	log        *zap.Logger

	baseBackoff time.Duration
	maxBackoff  time.Duration
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithBackoff sets the reconnect backoff bounds.
func WithBackoff(base, max time.Duration) StreamOption {
	return func(s *Stream) {
		s.baseBackoff = base
		s.maxBackoff = max
	}
}

// WithHTTPClient replaces the HTTP client. It must not set a timeout.
func WithHTTPClient(c *http.Client) StreamOption {
	return func(s *Stream) {
		s.httpClient = c
	}
}

// NewStream creates a stream for the server at baseURL.
func NewStream(baseURL string, log *zap.Logger, opts ...StreamOption) *Stream {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Stream{
		url:         strings.TrimRight(baseURL, "/") + subPath,
		httpClient:  &http.Client{},
		log:         log.With(zap.String("module", "uamp-stream")),
		baseBackoff: time.Second,
		maxBackoff:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run delivers events until ctx is done, reconnecting with exponential
// backoff when the connection drops. It gives up after MaxReconnects
// consecutive failures. status may be nil.
func (s *Stream) Run(ctx context.Context, events chan<- Event, status chan<- Status) error {
	attempt := 0
	for {
		connected, err := s.Listen(ctx, events, func() {
			attempt = 0
			notify(ctx, status, Status{Connected: true})
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if connected {
			s.log.Info("stream closed", zap.Error(err))
		} else {
			s.log.Warn("connect failed", zap.Error(err))
		}

		if attempt >= MaxReconnects {
			return fmt.Errorf("reconnect failed after %d attempts: %w", MaxReconnects, err)
		}
		attempt++
		notify(ctx, status, Status{Attempt: attempt, Err: err})

		wait := s.backoff(attempt)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (s *Stream) backoff(attempt int) time.Duration {
	shift := min(attempt-1, 5)
	return min(s.baseBackoff*time.Duration(1<<shift), s.maxBackoff)
}

func notify(ctx context.Context, status chan<- Status, st Status) {
	if status == nil {
		return
	}
	select {
	case status <- st:
	case <-ctx.Done():
	}
}

// Listen makes a single connection and delivers its events. onConnect
// runs once the server accepted the subscription. It reports whether the
// connection was established.
func (s *Stream) Listen(ctx context.Context, events chan<- Event, onConnect func()) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("event stream returned %d", resp.StatusCode)
	}
	s.log.Info("connected", zap.String("url", s.url))
	if onConnect != nil {
		onConnect()
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	var (
		name string
		data bytes.Buffer
	)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "":
			if name == "" && data.Len() == 0 {
				continue
			}
			ev := Event{Name: name, Data: append([]byte(nil), data.Bytes()...)}
			name = ""
			data.Reset()
			if ev.Name == "" {
				ev.Name = "message"
			}
			s.log.Debug("event", zap.String("name", ev.Name), zap.Int("size", len(ev.Data)))
			select {
			case events <- ev:
			case <-ctx.Done():
				return true, ctx.Err()
			}

		case strings.HasPrefix(line, ":"):
			// keepalive

		default:
			field, value, _ := strings.Cut(line, ":")
			value = strings.TrimPrefix(value, " ")
			switch field {
			case "event":
				name = value
			case "data":
				if data.Len() > 0 {
					data.WriteByte('\n')
				}
				data.WriteString(value)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return true, err
	}
	return true, errors.New("event stream ended")
}
