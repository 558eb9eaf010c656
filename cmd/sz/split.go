package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/szkit/internal/lines"
	"github.com/dshills/szkit/internal/sz"
)

type splitOptions struct {
	delims string
	field  int
}

func newSplitCmd(o *rootOptions) *cobra.Command {
	s := &splitOptions{}

	cmd := &cobra.Command{
		Use:   "split [file...]",
		Short: "Break records into fields",
		Long: `Break every record into fields separated by runs of the field delimiter
bytes and write one field per line. Leading and trailing delimiters yield
no empty fields.`,
		Example: `  sz split -F : /etc/passwd
  sz split -F ' \t' -n 2 access.log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.field < 0 {
				return fmt.Errorf("invalid field number %d", s.field)
			}
			delims, err := sz.Decode(sz.Str(s.delims))
			if err != nil {
				return fmt.Errorf("field delimiters: %w", err)
			}
			set := delims.String()
			delims.Free()

			rt, err := loadRuntime(cmd, o)
			if err != nil {
				return err
			}
			p := &pipeline{
				name: "split",
				emit: fieldWriter(set, s.field),
			}
			_, err = p.run(cmd.Context(), rt, cmd.InOrStdin(), args, o)
			return err
		},
	}

	cmd.Flags().StringVarP(&s.delims, "field-delims", "F", `\t `, "field delimiter bytes, escaped")
	cmd.Flags().IntVarP(&s.field, "field", "n", 0, "write only the nth field, 0 for all")
	return cmd
}

// fieldWriter writes the fields of a record, one per line.
func fieldWriter(delims string, field int) emitWrapper {
	return func(base func(io.Writer, *sz.Sz) error) func(io.Writer, *sz.Sz) error {
		return func(w io.Writer, line *sz.Sz) error {
			fields := lines.Fields(line, sz.Str(delims))
			if field > 0 {
				if field > len(fields) {
					return nil
				}
				fields = fields[field-1 : field]
			}
			for i, f := range fields {
				if i > 0 {
					if _, err := io.WriteString(w, "\n"); err != nil {
						return err
					}
				}
				if err := base(w, f); err != nil {
					return err
				}
			}
			return nil
		}
	}
}
