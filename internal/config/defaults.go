package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	autoscroll := true
	return &Config{
		Server: ServerConfig{
			Address: "127.0.0.1",
			Port:    8267,
			Timeout: 10000,
		},
		TUI: TUIConfig{
			Theme:          "auto",
			BarAutoscroll:  &autoscroll,
			SearchDebounce: 200,
			TickInterval:   1000,
		},
		Tail: TailConfig{
			Emoji:     true,
			Timestamp: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Server
	if c.Server.Address == "" {
		c.Server.Address = d.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = d.Server.Timeout
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.BarAutoscroll == nil {
		c.TUI.BarAutoscroll = d.TUI.BarAutoscroll
	}
	if c.TUI.SearchDebounce == 0 {
		c.TUI.SearchDebounce = d.TUI.SearchDebounce
	}
	if c.TUI.TickInterval == 0 {
		c.TUI.TickInterval = d.TUI.TickInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}
