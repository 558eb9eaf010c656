// Package main is the entry point for the sz command, a record filter built
// on managed strings.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/szkit/internal/app"
)

// Exit codes.
const (
	exitOK      = 0
	exitNoMatch = 1
	exitError   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, app.ErrNoMatch) {
			return exitNoMatch
		}
		fmt.Fprintf(stderr, "sz: %v\n", err)
		return exitError
	}
	return exitOK
}

// rootOptions holds the global flags.
type rootOptions struct {
	configPath string
	logLevel   string
	delims     string
	escape     bool
	color      string
	maxBytes   int
	follow     bool
	jobs       int
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	root := &cobra.Command{
		Use:   "sz",
		Short: "Filter and rewrite delimited records",
		Long: `sz reads records separated by delimiter bytes, passes each through a chain
of filters and writes the records that survive.

Patterns, translation sets and delimiters are given in escaped form:
\n, \t, \xHH and \NNN are understood.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&o.configPath, "config", "c", "", "configuration file (TOML or YAML)")
	pf.StringVar(&o.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVarP(&o.delims, "delims", "d", `\n`, "record delimiter bytes, escaped")
	pf.BoolVarP(&o.escape, "escape", "e", false, "write records in escaped form")
	pf.StringVar(&o.color, "color", "auto", "colorize output (auto|always|never)")
	pf.IntVar(&o.maxBytes, "max-bytes", 0, "largest string buffer in bytes, 0 for no limit")
	pf.BoolVarP(&o.follow, "follow", "f", false, "keep reading a file as it grows")
	pf.IntVarP(&o.jobs, "jobs", "j", 0, "inputs processed in parallel, 0 for one per CPU")

	root.AddCommand(
		newCatCmd(o),
		newTrCmd(o),
		newGrepCmd(o),
		newEncodeCmd(o),
		newDecodeCmd(o),
		newSplitCmd(o),
		newStatsCmd(o),
		newVersionCmd(),
	)
	return root
}
