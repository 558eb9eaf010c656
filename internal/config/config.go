package config

import (
	"strings"
	"time"

	"github.com/dshills/szkit/internal/sz"
)

// Config holds the resolved settings.
type Config struct {
	Log    LogConfig
	Input  InputConfig
	Output OutputConfig
	Grep   GrepConfig
	Watch  WatchConfig
	Store  StoreConfig
}

// LogConfig configures logging.
type LogConfig struct {
	Level string
}

// InputConfig configures record reading.
type InputConfig struct {
	// Delimiters are the record delimiter bytes in escaped form.
	Delimiters string
}

// OutputConfig configures record writing.
type OutputConfig struct {
	Escape bool
	Color  string
}

// GrepConfig configures matching.
type GrepConfig struct {
	IgnoreCase bool
}

// WatchConfig configures --follow.
type WatchConfig struct {
	Debounce time.Duration
}

// StoreConfig configures string allocation.
type StoreConfig struct {
	MaxBytes int
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Defaults returns the built-in settings layer.
func Defaults() map[string]any {
	return map[string]any{
		"log": map[string]any{
			"level": "info",
		},
		"input": map[string]any{
			"delimiters": `\n`,
		},
		"output": map[string]any{
			"escape": false,
			"color":  ColorAuto,
		},
		"grep": map[string]any{
			"ignoreCase": false,
		},
		"watch": map[string]any{
			"debounce": "100ms",
		},
		"store": map[string]any{
			"maxBytes": int64(0),
		},
	}
}

// Default returns the configuration with only defaults applied.
func Default() *Config {
	c, err := fromMap(Defaults())
	if err != nil {
		panic(err)
	}
	return c
}

// fromMap reads a merged settings map into a Config.
func fromMap(m map[string]any) (*Config, error) {
	var c Config
	a := &accessor{data: m}
	a.String("log.level", &c.Log.Level)
	a.String("input.delimiters", &c.Input.Delimiters)
	a.Bool("output.escape", &c.Output.Escape)
	a.String("output.color", &c.Output.Color)
	a.Bool("grep.ignoreCase", &c.Grep.IgnoreCase)
	a.Duration("watch.debounce", &c.Watch.Debounce)
	a.Int("store.maxBytes", &c.Store.MaxBytes)
	if a.err != nil {
		return nil, a.err
	}
	return &c, nil
}

// Validate checks every setting and returns the first *ValidationError.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log.level", Value: c.Log.Level, Message: "must be debug, info, warn or error"}
	}

	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return &ValidationError{Path: "output.color", Value: c.Output.Color, Message: "must be auto, always or never"}
	}

	delims, err := c.DecodedDelimiters()
	if err != nil {
		return &ValidationError{Path: "input.delimiters", Value: c.Input.Delimiters, Message: err.Error()}
	}
	if delims == "" {
		return &ValidationError{Path: "input.delimiters", Value: c.Input.Delimiters, Message: "must not be empty"}
	}

	if c.Watch.Debounce < 0 {
		return &ValidationError{Path: "watch.debounce", Value: c.Watch.Debounce, Message: "must not be negative"}
	}
	if c.Store.MaxBytes < 0 {
		return &ValidationError{Path: "store.maxBytes", Value: c.Store.MaxBytes, Message: "must not be negative"}
	}
	return nil
}

// DecodedDelimiters returns the raw delimiter bytes.
func (c *Config) DecodedDelimiters() (string, error) {
	d, err := sz.Decode(sz.Str(c.Input.Delimiters))
	if err != nil {
		return "", err
	}
	defer d.Free()
	return d.String(), nil
}

// NewStore returns a string store honoring the store settings.
func (c *Config) NewStore(opts ...sz.Option) *sz.Store {
	return sz.NewStore(append([]sz.Option{sz.WithMaxBytes(c.Store.MaxBytes)}, opts...)...)
}
