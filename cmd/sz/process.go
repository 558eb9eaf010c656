package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/szkit/internal/app"
	"github.com/dshills/szkit/internal/lines"
	"github.com/dshills/szkit/internal/sz"
	"github.com/dshills/szkit/internal/watcher"
)

// stdinName names standard input among the inputs.
const stdinName = "-"

// emitWrapper decorates the record writer of an input.
type emitWrapper func(base func(io.Writer, *sz.Sz) error) func(io.Writer, *sz.Sz) error

// pipeline describes how a command processes its inputs.
type pipeline struct {
	name string

	// chain returns the filters for one input. Nil keeps every record.
	chain func() lines.Chain

	// emit, if set, replaces how kept records are written.
	emit emitWrapper

	// discard drops the output instead of writing it.
	discard bool
}

// result is the outcome of one input.
type result struct {
	name  string
	out   bytes.Buffer
	stats lines.Stats
	chain lines.Chain
	err   error
}

// run processes every input. Several inputs are read in parallel and their
// output is written in input order. Per-input failures are collected; the
// remaining inputs are still processed.
func (p *pipeline) run(ctx context.Context, rt *app.Runtime, stdin io.Reader, inputs []string, o *rootOptions) ([]*result, error) {
	if len(inputs) == 0 {
		inputs = []string{stdinName}
	}

	if o.follow {
		if len(inputs) != 1 || inputs[0] == stdinName {
			return nil, errors.New("--follow needs exactly one file")
		}
		res := p.follow(ctx, rt, inputs[0])
		return []*result{res}, wrapErrors(p.name, []*result{res})
	}

	results := make([]*result, len(inputs))
	if len(inputs) == 1 {
		results[0] = &result{name: inputs[0]}
		p.runInput(ctx, rt, stdin, rt.Stdout, results[0])
		return results, wrapErrors(p.name, results)
	}

	jobs := o.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(inputs)))
	for i, name := range inputs {
		i, name := i, name
		g.Go(func() error {
			res := &result{name: name}
			p.runInput(gctx, rt, stdin, &res.out, res)
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range results {
		if _, err := res.out.WriteTo(rt.Stdout); err != nil {
			return results, err
		}
	}
	return results, wrapErrors(p.name, results)
}

// runInput processes one input, writing kept records to w.
func (p *pipeline) runInput(ctx context.Context, rt *app.Runtime, stdin io.Reader, w io.Writer, res *result) {
	r, closeFn, err := open(stdin, res.name)
	if err != nil {
		res.err = err
		return
	}
	defer closeFn()

	in := rt.Input(res.name)
	res.chain = p.newChain()
	res.stats, res.err = p.process(ctx, in, r, w, res.chain)
	res.err = in.Finish(res.stats, res.err)
}

func (p *pipeline) follow(ctx context.Context, rt *app.Runtime, path string) *result {
	res := &result{name: path, chain: p.newChain()}
	in := rt.Input(path)
	in.Logger.Info("following")

	err := watcher.Follow(ctx, path, rt.Config.Watch.Debounce, func(r io.Reader) error {
		stats, err := p.process(ctx, in, r, rt.Stdout, res.chain)
		res.stats.Read += stats.Read
		res.stats.Kept += stats.Kept
		res.stats.Dropped += stats.Dropped
		return err
	})
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	res.err = in.Finish(res.stats, err)
	return res
}

func (p *pipeline) newChain() lines.Chain {
	if p.chain == nil {
		return nil
	}
	return p.chain()
}

func (p *pipeline) process(ctx context.Context, in *app.Input, r io.Reader, w io.Writer, chain lines.Chain) (lines.Stats, error) {
	opts, err := in.Options()
	if err != nil {
		return lines.Stats{}, err
	}
	if p.emit != nil {
		opts.Emit = p.emit(emitter(opts))
	}
	if p.discard {
		w = io.Discard
	}
	return lines.Run(ctx, r, w, chain, opts)
}

// emitter returns the record writer opts would use.
func emitter(opts lines.Options) func(io.Writer, *sz.Sz) error {
	if opts.Emit != nil {
		return opts.Emit
	}
	return func(w io.Writer, line *sz.Sz) error {
		_, err := sz.WriteTo(w, line)
		return err
	}
}

func open(stdin io.Reader, name string) (io.Reader, func(), error) {
	if name == stdinName {
		return stdin, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// wrapErrors collects the per-input errors of results.
func wrapErrors(op string, results []*result) error {
	var errs app.ErrorList
	for _, res := range results {
		if res.err != nil {
			errs.Add(app.NewOperationError(op, res.name, res.err))
		}
	}
	return errs.AsError()
}

// kept returns the records kept over all results.
func kept(results []*result) int64 {
	var n int64
	for _, res := range results {
		n += res.stats.Kept
	}
	return n
}
