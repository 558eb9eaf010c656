package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Build information, overridden with -ldflags.
var (
	Version = "0.1.0-dev"
	Commit  = ""
	Date    = ""
)

type versionPayload struct {
	Tool    string `json:"tool"`
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
	Go      string `json:"go"`
}

func newVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := versionPayload{
				Tool:    "sz",
				Version: Version,
				Commit:  Commit,
				Date:    Date,
				Go:      runtime.Version(),
			}
			out := cmd.OutOrStdout()

			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			case "pretty", "":
				name := color.New(color.FgCyan, color.Bold).Sprint(payload.Tool)
				fmt.Fprintf(out, "%s %s (%s)\n", name, payload.Version, payload.Go)
				if payload.Commit != "" {
					fmt.Fprintf(out, "commit: %s\n", payload.Commit)
				}
				if payload.Date != "" {
					fmt.Fprintf(out, "built:  %s\n", payload.Date)
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q (want pretty or json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}
