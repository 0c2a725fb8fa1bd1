package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	StartDir     string
	LogFile      string
	Debug        bool
	Watch        bool
	TickInterval time.Duration
	Editor       string
}

const (
	envStartDir = "FM_START_DIR"
	envLogFile  = "FM_LOG_FILE"
	envDebug    = "FM_DEBUG"
	envWatch    = "FM_WATCH"
	envTick     = "FM_TICK_INTERVAL"
	envEditor   = "FM_EDITOR"

	DefaultTickInterval = 250 * time.Millisecond
)

// Options binds Config fields to command-line flags.
type Options struct {
	cfg     Config
	noWatch bool
}

// BindFlags registers the flags on fs with defaults taken from environ.
func BindFlags(fs *pflag.FlagSet, environ []string) *Options {
	env := parseEnv(environ)
	opts := &Options{}

	fs.StringVarP(&opts.cfg.LogFile, "log-file", "l", envOrDefault(env, envLogFile, ""), "write logs to this file (logging is off when empty)")
	fs.BoolVarP(&opts.cfg.Debug, "debug", "d", envOrBool(env, envDebug, false), "enable debug logging")
	fs.BoolVar(&opts.noWatch, "no-watch", !envOrBool(env, envWatch, true), "do not watch the current directory for changes")
	fs.DurationVar(&opts.cfg.TickInterval, "tick", envOrDuration(env, envTick, DefaultTickInterval), "interval between timer ticks")
	fs.StringVarP(&opts.cfg.Editor, "editor", "e", envOrDefault(env, envEditor, ""), "editor command (defaults to $VISUAL, then $EDITOR)")
	opts.cfg.StartDir = envOrDefault(env, envStartDir, "")

	return opts
}

// Config resolves the bound flags and positional args into a validated Config.
func (o *Options) Config(args []string) (Config, error) {
	cfg := o.cfg
	cfg.Watch = !o.noWatch
	if len(args) > 1 {
		return Config{}, fmt.Errorf("expected at most one directory, got %d", len(args))
	}
	if len(args) == 1 {
		cfg.StartDir = args[0]
	}
	if cfg.StartDir != "" {
		abs, err := filepath.Abs(cfg.StartDir)
		if err != nil {
			return Config{}, fmt.Errorf("resolve start directory: %w", err)
		}
		cfg.StartDir = abs
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures the configuration is usable.
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be > 0 (got %s)", c.TickInterval)
	}
	return nil
}

// Environ returns the process environment; tests pass their own slice.
func Environ() []string {
	return os.Environ()
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
