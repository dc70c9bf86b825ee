package main

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"
)

func (a *app) exportCmd() *cobra.Command {
	var (
		output    string
		selection string
		restrict  bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the analysed signal as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			s, err = narrow(cmd.Context(), s, selection, restrict)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				w := bufio.NewWriter(cmd.OutOrStdout())
				if err := s.WriteCSV(w); err != nil {
					return err
				}
				return w.Flush()
			}

			file, err := os.Create(output)
			if err != nil {
				return err
			}
			w := bufio.NewWriter(file)
			if err := s.WriteCSV(w); err != nil {
				file.Close()
				return err
			}
			if err := w.Flush(); err != nil {
				file.Close()
				return err
			}
			a.log.Info("wrote export", "path", output)
			return file.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "CSV file to write (default stdout)")
	cmd.Flags().StringVarP(&selection, "select", "s", "", "group pattern such as \"*/f*/*\"")
	cmd.Flags().BoolVar(&restrict, "restrict", false, "export only the raw signal inside the selected groups")
	return cmd
}
