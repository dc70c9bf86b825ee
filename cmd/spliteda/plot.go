package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/yeonchae62/REU-Project/pkg/config"
	"github.com/yeonchae62/REU-Project/pkg/figure"
	"github.com/yeonchae62/REU-Project/pkg/segment"
	"github.com/yeonchae62/REU-Project/pkg/session"
)

func (a *app) plotCmd() *cobra.Command {
	var (
		names     []string
		outputDir string
		format    string
	)
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Draw the configured EDA figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("output-dir") {
				a.cfg.OutputDir = outputDir
			}
			if cmd.Flags().Changed("format") {
				a.cfg.Format = format
			}

			figures := a.cfg.Figures
			if len(names) > 0 {
				figures = figures[:0:0]
				for _, name := range names {
					f, ok := a.cfg.Find(name)
					if !ok {
						return fmt.Errorf("no figure named %q", name)
					}
					figures = append(figures, f)
				}
			}

			s, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
				return err
			}
			b := s.RawBounds()
			a.log.Info("raw bounds", "start", a.formatTime(b.Start), "end", a.formatTime(b.End))

			for _, f := range figures {
				if err := a.drawFigure(cmd, s, f); err != nil {
					return fmt.Errorf("figure %s: %w", f.Name, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&names, "figure", "f", nil, "figures to draw (default all)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for figure files")
	cmd.Flags().StringVar(&format, "format", "", "image format: png, jpg, svg or pdf")
	return cmd
}

func (a *app) drawFigure(cmd *cobra.Command, s *session.Session, f config.Figure) error {
	log := a.log.With("figure", f.Name)

	sel, err := f.SelectPattern()
	if err != nil {
		return err
	}
	specs, err := f.RegionSpecs()
	if err != nil {
		return err
	}

	part := s.Select(sel)
	if f.Restrict {
		part, err = part.Restrict(cmd.Context())
		if errors.Is(err, segment.ErrNoGroups) || errors.Is(err, session.ErrOutsideBounds) {
			log.Warn("skipping figure", "reason", err)
			return nil
		}
		if err != nil {
			return err
		}
	}

	fig := part.Figure(f.TitleFor(a.cfg.Label), part.Regions(specs), a.loc)
	path := a.cfg.OutputPath(f)
	width := vg.Length(a.cfg.Width) * vg.Inch
	height := vg.Length(a.cfg.Height) * vg.Inch
	if err := figure.Save(path, fig, width, height); err != nil {
		return err
	}
	log.Info("wrote figure", "path", path, "regions", len(fig.Regions))
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
