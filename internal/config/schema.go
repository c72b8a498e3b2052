package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	TUI    TUIConfig    `toml:"tui"`
	Tail   TailConfig   `toml:"tail"`
	Web    WebConfig    `toml:"web"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig holds the uamp server connection settings.
type ServerConfig struct {
	Address string `toml:"address"`
	Port    int    `toml:"port"`
	// Timeout for control requests, in milliseconds.
	Timeout int `toml:"timeout"`
}

// URL returns the server base URL.
func (c ServerConfig) URL() string {
	return fmt.Sprintf("http://%s", net.JoinHostPort(c.Address, strconv.Itoa(c.Port)))
}

// RequestTimeout returns the control request timeout.
func (c ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}

// AppURL returns the address of the web player served by the server.
func (c ServerConfig) AppURL() string {
	return c.URL() + "/app"
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme         string `toml:"theme"`
	BarAutoscroll *bool  `toml:"bar_autoscroll"`
	// SearchDebounce is the delay in milliseconds before a typed search runs.
	SearchDebounce int `toml:"search_debounce"`
	// TickInterval is how often, in milliseconds, the progress bar advances.
	TickInterval int `toml:"tick_interval"`
}

// Autoscroll reports whether the bar playlist follows the current song.
func (c TUIConfig) Autoscroll() bool {
	return c.BarAutoscroll == nil || *c.BarAutoscroll
}

// TailConfig holds settings for tail/follow mode.
type TailConfig struct {
	Emoji     bool `toml:"emoji"`
	Timestamp bool `toml:"timestamp"`
}

// WebConfig holds settings for opening the web player.
type WebConfig struct {
	// Command opens the web player instead of the system browser.
	// ${ADDRESS} in its arguments is replaced by the player address.
	Command string `toml:"command"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Format string `toml:"format"`
}
