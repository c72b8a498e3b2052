package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tessro/uampc/internal/config"
	errs "github.com/tessro/uampc/internal/errors"
	"github.com/tessro/uampc/internal/logging"
	"github.com/tessro/uampc/internal/session"
	"github.com/tessro/uampc/internal/uamp"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool
	address string
	port    int

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "uampc",
	Short: "Control a uamp music server from the terminal",
	Long: `uampc is a terminal client for the uamp music player server.

It browses the server's library, manages its playlist stack and controls
playback, either from the interactive UI (uampc ui) or one command at a time.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.uampcrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&address, "address", "a", "", "server address (overrides config)")
	rootCmd.PersistentFlags().IntVarP(&port, "port", "p", 0, "server port (overrides config)")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if address != "" {
		cfg.Server.Address = address
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}

	logger, err = newLogger()
	return err
}

// newLogger logs to the configured file. Verbose runs without a log file
// write debug output to stderr instead.
func newLogger() (*zap.Logger, error) {
	if verbose && cfg.Log.File == "" {
		core := zapcore.NewCore(logging.Encoder("console"), zapcore.Lock(os.Stderr), zapcore.DebugLevel)
		return zap.New(core), nil
	}
	return logging.New(cfg.Log)
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, errs.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}

func newClient() *uamp.Client {
	return uamp.NewClient(cfg.Server.URL(), cfg.Server.RequestTimeout(), logger)
}

func newStream() *uamp.Stream {
	return uamp.NewStream(cfg.Server.URL(), logger)
}

// send performs intent against the configured server.
func send(ctx context.Context, intent uamp.Intent) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Server.RequestTimeout())
	defer cancel()
	if err := newClient().Send(ctx, intent); err != nil {
		return fmt.Errorf("%s: %w", intent, err)
	}
	return nil
}

// loadSession connects to the event stream and returns a session filled
// from the first set-all event.
func loadSession(ctx context.Context) (*session.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Server.RequestTimeout())
	defer cancel()

	events := make(chan uamp.Event, 16)
	errc := make(chan error, 1)
	go func() {
		_, err := newStream().Listen(ctx, events, nil)
		errc <- err
	}()

	s := session.New(session.Options{}, logger)
	for {
		select {
		case ev := <-events:
			if ev.Name != uamp.EventSetAll {
				continue
			}
			if _, err := s.Apply(ev); err != nil {
				return nil, fmt.Errorf("load state: %w", err)
			}
			return s, nil
		case err := <-errc:
			switch {
			case ctx.Err() != nil:
				return nil, fmt.Errorf("%w: no state from %s", errs.ErrTimeout, cfg.Server.URL())
			case err == nil:
				return nil, errs.ErrNoState
			}
			return nil, fmt.Errorf("%w: %w", errs.ErrServerUnreachable, err)
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: no state from %s", errs.ErrTimeout, cfg.Server.URL())
		}
	}
}
