package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/szkit/internal/app"
	"github.com/dshills/szkit/internal/config"
)

// flagOverrides maps global flags onto config paths.
var flagOverrides = []struct {
	flag string
	path string
	get  func(o *rootOptions) any
}{
	{"log-level", "log.level", func(o *rootOptions) any { return o.logLevel }},
	{"delims", "input.delimiters", func(o *rootOptions) any { return o.delims }},
	{"escape", "output.escape", func(o *rootOptions) any { return o.escape }},
	{"color", "output.color", func(o *rootOptions) any { return o.color }},
	{"max-bytes", "store.maxBytes", func(o *rootOptions) any { return int64(o.maxBytes) }},
}

// loadRuntime resolves the configuration, with flags the user set taking
// priority, and builds the run state.
func loadRuntime(cmd *cobra.Command, o *rootOptions) (*app.Runtime, error) {
	var opts []config.Option
	if o.configPath != "" {
		opts = append(opts, config.WithFile(o.configPath))
	}
	flags := cmd.Flags()
	for _, f := range flagOverrides {
		if flags.Changed(f.flag) {
			opts = append(opts, config.WithOverride(f.path, f.get(o)))
		}
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}

	rt := app.New(cfg, app.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()))
	rt.Logger.WithComponent(cmd.Name()).Debug("config loaded: delims=%q escape=%v color=%s",
		cfg.Input.Delimiters, cfg.Output.Escape, cfg.Output.Color)
	return rt, nil
}
