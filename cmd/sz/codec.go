package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/szkit/internal/lines"
)

func newEncodeCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file...]",
		Short: "Escape non-printable bytes in every record",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd, o)
			if err != nil {
				return err
			}
			p := &pipeline{
				name:  "encode",
				chain: func() lines.Chain { return lines.Chain{lines.NewEncode()} },
			}
			_, err = p.run(cmd.Context(), rt, cmd.InOrStdin(), args, o)
			return err
		},
	}
}

func newDecodeCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file...]",
		Short: "Expand escape sequences in every record",
		Long: `Expand \n, \t, \xHH, \NNN and the other escape sequences in every record.
A malformed record stops the input with an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd, o)
			if err != nil {
				return err
			}
			p := &pipeline{
				name:  "decode",
				chain: func() lines.Chain { return lines.Chain{lines.NewDecode()} },
			}
			_, err = p.run(cmd.Context(), rt, cmd.InOrStdin(), args, o)
			return err
		},
	}
}
