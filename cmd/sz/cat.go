package main

import (
	"github.com/spf13/cobra"
)

func newCatCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cat [file...]",
		Short: "Copy records to standard output",
		Long: `Copy records to standard output, rewriting delimiters and optionally
escaping each record. With no file, or when file is -, read standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd, o)
			if err != nil {
				return err
			}
			p := &pipeline{name: "cat"}
			_, err = p.run(cmd.Context(), rt, cmd.InOrStdin(), args, o)
			return err
		},
	}
}
