package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/szkit/internal/lines"
)

func newTrCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tr FROM TO [file...]",
		Short: "Translate bytes in every record",
		Long: `Replace each byte of FROM found in a record with the byte at the same
position in TO. Both sets accept ranges such as a-z. Bytes of FROM beyond
the end of TO are left alone.`,
		Example: `  sz tr a-z A-Z notes.txt
  sz tr '\t' ' ' data.tsv`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := lines.NewTranslate(args[0], args[1])
			if err != nil {
				return err
			}
			rt, err := loadRuntime(cmd, o)
			if err != nil {
				return err
			}
			p := &pipeline{
				name:  "tr",
				chain: func() lines.Chain { return lines.Chain{f} },
			}
			_, err = p.run(cmd.Context(), rt, cmd.InOrStdin(), args[2:], o)
			return err
		},
	}
}
