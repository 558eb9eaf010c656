package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/szkit/internal/app"
	"github.com/dshills/szkit/internal/lines"
	"github.com/dshills/szkit/internal/sz"
)

// measure is a filter that records the size of every line it sees.
type measure struct {
	bytes   int64
	longest int
}

func (m *measure) Name() string { return "measure" }

func (m *measure) Apply(line *sz.Sz) (bool, error) {
	n := line.Len()
	m.bytes += int64(n)
	m.longest = max(m.longest, n)
	return true, nil
}

func newStatsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file...]",
		Short: "Count records and bytes",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd, o)
			if err != nil {
				return err
			}
			p := &pipeline{
				name:    "stats",
				chain:   func() lines.Chain { return lines.Chain{&measure{}} },
				discard: true,
			}
			results, err := p.run(cmd.Context(), rt, cmd.InOrStdin(), args, o)

			tw := tabwriter.NewWriter(rt.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(tw, "INPUT\tRECORDS\tBYTES\tLONGEST")
			for _, res := range results {
				if res.err != nil {
					continue
				}
				m := res.chain[0].(*measure)
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", res.name, res.stats.Read, m.bytes, m.longest)
			}
			if ferr := tw.Flush(); ferr != nil {
				return ferr
			}

			snap := rt.Metrics.Snapshot()
			log := rt.Logger.WithComponent("stats")
			log.Info("inputs=%d records=%d strings made=%d freed=%d", snap.Inputs, snap.RecordsRead, snap.StringsMade, snap.StringsFreed)
			if rt.Logger.Level() == app.LogLevelDebug {
				log.Debug("borrows=%d releases=%d slowest input %v", snap.Borrows, snap.Releases, snap.InputMax)
			}
			return err
		},
	}
}
