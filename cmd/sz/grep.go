package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/szkit/internal/app"
	"github.com/dshills/szkit/internal/lines"
	"github.com/dshills/szkit/internal/sz"
)

type grepOptions struct {
	ignoreCase bool
	invert     bool
	count      bool
}

func newGrepCmd(o *rootOptions) *cobra.Command {
	g := &grepOptions{}

	cmd := &cobra.Command{
		Use:   "grep PATTERN [file...]",
		Short: "Keep records containing a pattern",
		Long: `Keep the records that contain PATTERN, given in escaped form. Exits with
status 1 when no record is kept.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd, o)
			if err != nil {
				return err
			}
			fold := rt.Config.Grep.IgnoreCase
			if cmd.Flags().Changed("ignore-case") {
				fold = g.ignoreCase
			}

			pattern := args[0]
			var f lines.Filter
			if g.invert {
				f, err = lines.NewExclude(pattern, lines.IgnoreCase(fold))
			} else {
				f, err = lines.NewInclude(pattern, lines.IgnoreCase(fold))
			}
			if err != nil {
				return err
			}

			p := &pipeline{
				name:    "grep",
				chain:   func() lines.Chain { return lines.Chain{f} },
				discard: g.count,
			}
			if !g.invert && !rt.Config.Output.Escape && rt.UseColor() {
				p.emit = highlighter(pattern, fold)
			}

			inputs := args[1:]
			results, err := p.run(cmd.Context(), rt, cmd.InOrStdin(), inputs, o)
			if g.count {
				for _, res := range results {
					if res.err != nil {
						continue
					}
					if len(results) > 1 {
						fmt.Fprintf(rt.Stdout, "%s:", res.name)
					}
					fmt.Fprintf(rt.Stdout, "%d\n", res.stats.Kept)
				}
			}
			if err != nil {
				return err
			}
			if kept(results) == 0 {
				return app.ErrNoMatch
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&g.ignoreCase, "ignore-case", "i", false, "ignore ASCII case")
	cmd.Flags().BoolVarP(&g.invert, "invert-match", "v", false, "keep records that do not match")
	cmd.Flags().BoolVar(&g.count, "count", false, "print the number of kept records instead")
	return cmd
}

// highlighter writes records with every match colored.
func highlighter(pattern string, fold bool) emitWrapper {
	hl := color.New(color.FgRed, color.Bold)
	hl.EnableColor()

	return func(func(io.Writer, *sz.Sz) error) func(io.Writer, *sz.Sz) error {
		return func(w io.Writer, line *sz.Sz) error {
			matches, err := lines.Highlight(line, pattern, lines.IgnoreCase(fold))
			if err != nil {
				return err
			}
			b := line.Bytes()
			prev := 0
			for _, m := range matches {
				if _, err := w.Write(b[prev:m.Start]); err != nil {
					return err
				}
				if _, err := hl.Fprint(w, string(b[m.Start:m.End])); err != nil {
					return err
				}
				prev = m.End
			}
			_, err = w.Write(b[prev:])
			return err
		}
	}
}
