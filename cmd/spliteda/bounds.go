package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) boundsCmd() *cobra.Command {
	var selection string
	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Print the time bounds of the raw signal and each segment group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			s, err = narrow(cmd.Context(), s, selection, false)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "GROUP\tSTART\tEND\tDURATION")
			raw := s.RawBounds()
			fmt.Fprintf(tw, "raw\t%s\t%s\t%s\n", a.formatTime(raw.Start), a.formatTime(raw.End), raw.Duration())
			for _, g := range s.Groups.Groups() {
				b := s.Groups[g]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g, a.formatTime(b.Start), a.formatTime(b.End), b.Duration())
			}
			if b, err := s.GroupBounds(); err == nil {
				fmt.Fprintf(tw, "all groups\t%s\t%s\t%s\n", a.formatTime(b.Start), a.formatTime(b.End), b.Duration())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&selection, "select", "s", "", "group pattern such as \"*/s*/*\"")
	return cmd
}
