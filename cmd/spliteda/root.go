package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/yeonchae62/REU-Project/pkg/config"
	"github.com/yeonchae62/REU-Project/pkg/segment"
	"github.com/yeonchae62/REU-Project/pkg/session"
)

// app is the state shared by every command.
type app struct {
	configPath string
	raw        string
	segments   string
	label      string
	timezone   string
	logLevel   string

	cfg config.Config
	loc *time.Location
	log hclog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "spliteda",
		Short:             "Plot electrodermal activity against annotated segments",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVar(&a.raw, "raw", "", "raw EDA csv recorded for the whole experiment")
	flags.StringVar(&a.segments, "segments", "", "folder holding <condition>/<environment>/<trial>/eda.csv segments")
	flags.StringVar(&a.label, "label", "", "session label used in titles and file names")
	flags.StringVar(&a.timezone, "timezone", "", "time zone for tick labels (default "+config.DefaultTimezone+")")
	flags.StringVar(&a.logLevel, "log-level", "info", "trace, debug, info, warn or error")

	root.AddCommand(
		a.plotCmd(),
		a.overviewCmd(),
		a.boundsCmd(),
		a.summaryCmd(),
		a.exportCmd(),
		convertCmd(),
		a.configCmd(),
	)
	return root
}

// setup builds the logger and the effective configuration. Flags override
// the configuration file.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := hclog.LevelFromString(a.logLevel)
	if level == hclog.NoLevel {
		return fmt.Errorf("unknown log level %q", a.logLevel)
	}
	a.log = hclog.New(&hclog.LoggerOptions{
		Name:   "spliteda",
		Level:  level,
		Output: cmd.ErrOrStderr(),
	})

	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.log.Debug("loaded config", "path", a.configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("raw") {
		a.cfg.Raw = a.raw
	}
	if flags.Changed("segments") {
		a.cfg.Segments = a.segments
	}
	if flags.Changed("label") {
		a.cfg.Label = a.label
	}
	if flags.Changed("timezone") {
		a.cfg.Timezone = a.timezone
	}

	loc, err := a.cfg.Location()
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	a.loc = loc
	return nil
}

// load validates the configuration and loads the session it names.
func (a *app) load(ctx context.Context) (*session.Session, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	opts := a.cfg.SessionOptions()
	opts.Log = a.log
	return session.Load(ctx, a.cfg.Raw, a.cfg.Segments, opts)
}

// narrow applies an optional "a/b/c" selection and restriction to s.
func narrow(ctx context.Context, s *session.Session, selection string, restrict bool) (*session.Session, error) {
	if selection != "" {
		p, err := segment.ParsePatternString(selection)
		if err != nil {
			return nil, err
		}
		s = s.Select(p)
	}
	if restrict {
		return s.Restrict(ctx)
	}
	return s, nil
}

func (a *app) formatTime(micros float64) string {
	return segment.MicrosTime(micros, a.loc).Format("2006-01-02 15:04:05.000")
}
