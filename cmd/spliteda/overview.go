package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yeonchae62/REU-Project/pkg/figure"
	"github.com/yeonchae62/REU-Project/pkg/overview"
)

func (a *app) overviewCmd() *cobra.Command {
	var (
		output  string
		regions string
		width   int
		height  int
	)
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Draw the raw signal as a single strip in seconds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			var marked []figure.Region
			if regions != "" {
				f, ok := a.cfg.Find(regions)
				if !ok {
					return fmt.Errorf("no figure named %q", regions)
				}
				specs, err := f.RegionSpecs()
				if err != nil {
					return err
				}
				marked = s.Regions(specs)
			}

			title := "EDA Overview"
			if a.cfg.Label != "" {
				title += ", " + a.cfg.Label
			}
			o := s.Overview(title, marked)
			o.Width, o.Height = width, height

			if output == "" {
				output = filepath.Join(a.cfg.OutputDir, "overview.png")
			}
			if err := overview.Save(output, o); err != nil {
				return err
			}
			a.log.Info("wrote overview", "path", output, "samples", len(o.Values))
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file to write (default <output_dir>/overview.png)")
	cmd.Flags().StringVar(&regions, "regions", "type1", "figure whose regions are marked; empty for none")
	cmd.Flags().IntVar(&width, "width", overview.DefaultWidth, "width in pixels")
	cmd.Flags().IntVar(&height, "height", overview.DefaultHeight, "height in pixels")
	return cmd
}
