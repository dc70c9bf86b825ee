package main

import (
	"fmt"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) summaryCmd() *cobra.Command {
	var (
		selection string
		restrict  bool
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarise SCRs and SCL inside each segment group",
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

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "GROUP\tSAMPLES\tSECONDS\tSCRS\tSCR/MIN\tAMPLITUDE\tRISE S\tRECOVERY S\tSCL MEAN\tSCL STD\t")
			for _, gs := range s.Summaries() {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
					gs.Group, gs.Samples, num(gs.Duration), gs.SCRCount, num(gs.SCRPerMinute),
					num(gs.AmplitudeMean), num(gs.RiseTimeMean), num(gs.RecoveryTimeMean),
					num(gs.SCLMean), num(gs.SCLStd))
			}
			all := s.Summary()
			fmt.Fprintf(tw, "session\t%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				all.Samples, num(all.Duration), all.SCRCount, num(all.SCRPerMinute),
				num(all.AmplitudeMean), num(all.RiseTimeMean), num(all.RecoveryTimeMean),
				num(all.SCLMean), num(all.SCLStd))
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&selection, "select", "s", "", "group pattern such as \"HMD/*/*\"")
	cmd.Flags().BoolVar(&restrict, "restrict", false, "analyse only the raw signal inside the selected groups")
	return cmd
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
