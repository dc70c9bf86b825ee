package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yeonchae62/REU-Project/pkg/convert"
)

const convertLong = `Convert a range pasted from an annotation spreadsheet to JSON.

Format 1 covers cells F3:G61, grouped slope/flat, trial 1/2,
single-view/multi-view/HMD, then task.
Format 2 covers cells I3:J76, grouped demolition/baseline,
none/mv1/mv2/discrete/continuous, trial 1/2, then task.

Input defaults to stdin and output to stdout.`

func convertCmd() *cobra.Command {
	var format int
	cmd := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert pasted spreadsheet annotations to JSON",
		Long:  convertLong,
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) > 0 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer file.Close()
				in = file
			}

			if len(args) < 2 || args[1] == "-" {
				return convert.Convert(in, cmd.OutOrStdout(), format)
			}
			file, err := os.Create(args[1])
			if err != nil {
				return err
			}
			if err := convert.Convert(in, file, format); err != nil {
				file.Close()
				return err
			}
			return file.Close()
		},
	}
	cmd.Flags().IntVarP(&format, "format", "f", 0, "spreadsheet layout, 1 or 2")
	_ = cmd.MarkFlagRequired("format")
	return cmd
}
