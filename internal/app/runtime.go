package app

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/dshills/szkit/internal/config"
	"github.com/dshills/szkit/internal/lines"
	"github.com/dshills/szkit/internal/sz"
)

// Runtime is the state shared by every input of one command invocation.
type Runtime struct {
	Config  *config.Config
	Logger  *Logger
	Metrics *Metrics
	RunID   string
	Stdout  io.Writer
	Stderr  io.Writer

	isTerminal func(w io.Writer) bool
	getenv     func(string) string
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithOutput sets the writers records and logs go to.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(rt *Runtime) {
		rt.Stdout = stdout
		rt.Stderr = stderr
	}
}

// WithTerminal overrides terminal detection for the color "auto" mode.
func WithTerminal(fn func(w io.Writer) bool) Option {
	return func(rt *Runtime) {
		rt.isTerminal = fn
	}
}

// WithGetenv overrides environment lookup.
func WithGetenv(fn func(string) string) Option {
	return func(rt *Runtime) {
		rt.getenv = fn
	}
}

// New creates a Runtime for a validated configuration.
func New(cfg *config.Config, opts ...Option) *Runtime {
	rt := &Runtime{
		Config:     cfg,
		Metrics:    NewMetrics(),
		RunID:      uuid.NewString(),
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		isTerminal: fdTerminal,
		getenv:     os.Getenv,
	}
	for _, opt := range opts {
		opt(rt)
	}

	rt.Logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(cfg.Log.Level),
		Output: rt.Stderr,
		Prefix: "sz",
	}).WithField("run", rt.RunID)

	return rt
}

func fdTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// UseColor reports whether output should be colorized.
func (rt *Runtime) UseColor() bool {
	switch rt.Config.Output.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if rt.getenv("NO_COLOR") != "" {
		return false
	}
	return rt.isTerminal(rt.Stdout)
}

// Input is the per-input state: a private string store and its tracing.
type Input struct {
	Name   string
	Store  *sz.Store
	Logger *Logger

	rt     *Runtime
	tracer *borrowTracer
	timer  *Timer
}

// Input starts processing the named input.
func (rt *Runtime) Input(name string) *Input {
	in := &Input{
		Name:   name,
		Logger: rt.Logger.WithField("input", name),
		rt:     rt,
		timer:  StartTimer(),
	}
	var opts []sz.Option
	if rt.Logger.Level() == LogLevelDebug {
		in.tracer = &borrowTracer{metrics: rt.Metrics}
		opts = append(opts, sz.WithTracer(in.tracer))
	}
	in.Store = rt.Config.NewStore(opts...)
	return in
}

// Options returns record-loop options bound to the input's store.
func (in *Input) Options() (lines.Options, error) {
	delims, err := in.rt.Config.DecodedDelimiters()
	if err != nil {
		return lines.Options{}, fmt.Errorf("input.delimiters: %w", err)
	}
	opts := lines.Options{
		Delims: delims,
		Store:  in.Store,
	}
	if len(delims) > 0 {
		opts.Separator = []byte{delims[0]}
	}
	if in.rt.Config.Output.Escape {
		opts.Emit = func(w io.Writer, line *sz.Sz) error {
			_, err := io.WriteString(w, sz.Encode(line))
			return err
		}
	}
	return opts, nil
}

// Finish records the input's counters and checks its store for leaks. The
// returned error wraps runErr, or ErrLeak if strings were left live.
func (in *Input) Finish(stats lines.Stats, runErr error) error {
	st := in.Store.Stats()
	m := in.rt.Metrics
	m.RecordRecords(stats.Read, stats.Kept, stats.Dropped)
	m.RecordStrings(st.Made, st.Freed)
	m.RecordInput(in.timer.Elapsed(), runErr != nil)

	in.Logger.Debug("finished: read=%d kept=%d dropped=%d made=%d freed=%d",
		stats.Read, stats.Kept, stats.Dropped, st.Made, st.Freed)

	if in.tracer != nil {
		if depth := in.tracer.depth.Load(); depth != 0 {
			in.Logger.Warn("unbalanced borrows: %d", depth)
		}
	}

	if runErr != nil {
		return runErr
	}
	if in.Store.Leaked() {
		in.Logger.Warn("%d strings still live", st.Live())
		return fmt.Errorf("%w: %d strings", ErrLeak, st.Live())
	}
	return nil
}

// borrowTracer counts argument borrows for debug runs.
type borrowTracer struct {
	metrics *Metrics
	depth   atomic.Int64
}

func (t *borrowTracer) Coerced(*sz.Sz) {
	t.depth.Add(1)
	t.metrics.borrows.Add(1)
}

func (t *borrowTracer) Released(*sz.Sz) {
	t.depth.Add(-1)
	t.metrics.releases.Add(1)
}
