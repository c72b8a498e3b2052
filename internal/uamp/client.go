// Package uamp talks to a uamp server: it follows the server event stream
// and sends control requests.
package uamp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tessro/uampc/internal/core"
)

const (
	// DefaultTimeout bounds a single control request.
	DefaultTimeout = 10 * time.Second

	// Retry configuration for transient errors
	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond

	ctrlPath = "/api/ctrl"
	pingPath = "/api/marco"
	subPath  = "/api/sub"
)

// ErrNotUamp is returned when the ping endpoint answers, but not like a
// uamp server.
var ErrNotUamp = errors.New("server did not answer the ping")

// Client sends control intents to a uamp server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
	retryWait  time.Duration
}

// NewClient creates a client for the server at baseURL
// (for example http://127.0.0.1:8267).
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With(zap.String("module", "uamp-client")),
		retryWait:  baseRetryWait,
	}
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send performs an intent.
func (c *Client) Send(ctx context.Context, intent Intent) error {
	if intent.Playlist != nil {
		body, err := json.Marshal(struct {
			SetPlaylist *PlaylistRequest `json:"SetPlaylist"`
		}{intent.Playlist})
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		if _, err := c.request(ctx, http.MethodPost, ctrlPath, body); err != nil {
			return err
		}
	}
	if len(intent.Params) > 0 {
		if _, err := c.request(ctx, http.MethodGet, ctrlPath+"?"+intent.Query(), nil); err != nil {
			return err
		}
	}
	return nil
}

// Ping checks that a uamp server is listening.
func (c *Client) Ping(ctx context.Context) error {
	body, err := c.request(ctx, http.MethodGet, pingPath, nil)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(body)) != "polo" {
		return fmt.Errorf("%w: got %q", ErrNotUamp, body)
	}
	return nil
}

func (c *Client) Play(ctx context.Context) error       { return c.Send(ctx, Play()) }
func (c *Client) Pause(ctx context.Context) error      { return c.Send(ctx, Pause()) }
func (c *Client) TogglePlay(ctx context.Context) error { return c.Send(ctx, TogglePlay()) }
func (c *Client) Next(ctx context.Context) error       { return c.Send(ctx, Next(1)) }
func (c *Client) Prev(ctx context.Context) error       { return c.Send(ctx, Prev()) }

func (c *Client) Seek(ctx context.Context, pos core.Duration) error {
	return c.Send(ctx, Seek(pos))
}

func (c *Client) Volume(ctx context.Context, volume float64) error {
	return c.Send(ctx, Volume(volume))
}

func (c *Client) Mute(ctx context.Context, mute bool) error {
	return c.Send(ctx, Mute(mute))
}

func (c *Client) Jump(ctx context.Context, position int) error {
	return c.Send(ctx, Jump(position))
}

func (c *Client) SetPlaylist(ctx context.Context, songs []core.SongID, position int, play bool) error {
	return c.Send(ctx, SetPlaylist(songs, position, play))
}

func (c *Client) PopPlaylist(ctx context.Context, count int) error {
	return c.Send(ctx, PopPlaylist(count))
}

var _ core.Controller = (*Client)(nil)

func (c *Client) request(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	fullURL := c.baseURL + path
	c.log.Debug("request", zap.String("method", method), zap.String("url", fullURL), zap.ByteString("body", body))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.retryWait * time.Duration(1<<(attempt-1))
			c.log.Debug("retry", zap.Int("attempt", attempt), zap.Duration("wait", wait), zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			c.log.Debug("network error", zap.Error(err))
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = &APIError{Status: resp.StatusCode, Body: string(respBody)}
			c.log.Debug("server error, will retry", zap.Error(lastErr))
			continue
		}
		if resp.StatusCode >= 400 {
			return nil, &APIError{Status: resp.StatusCode, Body: string(respBody)}
		}
		return respBody, nil
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("uamp error %d: %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("uamp error %d: %s", e.Status, body)
}
