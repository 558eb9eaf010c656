package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/szkit/internal/config/loader"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "SZ_"

// envConfigPath names the variable that selects a config file.
const envConfigPath = EnvPrefix + "CONFIG"

// Option configures Load.
type Option func(*options)

type options struct {
	fs        loader.FileSystem
	path      string
	defPath   string
	env       *loader.EnvLoader
	overrides map[string]any
}

// WithFile loads the named config file. The file must exist.
func WithFile(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithFS sets the file system config files are read from.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnv replaces the environment loader.
func WithEnv(env *loader.EnvLoader) Option {
	return func(o *options) {
		o.env = env
	}
}

// WithOverride sets a value with the highest priority, as a flag would.
func WithOverride(path string, value any) Option {
	return func(o *options) {
		loader.SetByPath(o.overrides, path, value)
	}
}

// DefaultPath returns the config file read when none is named.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sz", "config.toml")
}

// Load resolves the configuration from every layer and validates it.
func Load(opts ...Option) (*Config, error) {
	o := options{
		fs:        loader.DefaultFS(),
		defPath:   DefaultPath(),
		overrides: make(map[string]any),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.env == nil {
		o.env = loader.NewEnvLoader(EnvPrefix)
	}
	o.env.Ignore(envConfigPath)

	merged := Defaults()

	path, required := o.path, true
	if path == "" {
		path = os.Getenv(envConfigPath)
	}
	if path == "" {
		path, required = o.defPath, false
	}
	if path != "" {
		file, err := loadFile(o.fs, path, required)
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}

	env, err := o.env.Load()
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	merged = loader.DeepMerge(merged, env)
	merged = loader.DeepMerge(merged, o.overrides)

	c, err := fromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func loadFile(fsys loader.FileSystem, path string, required bool) (map[string]any, error) {
	if _, err := fsys.Stat(path); err != nil {
		if required {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, nil
	}
	l, err := loader.ForPath(fsys, path)
	if err != nil {
		return nil, err
	}
	return l.Load()
}
