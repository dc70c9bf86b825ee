// Package config holds the run configuration: inputs, output settings,
// analysis options and the figures to draw.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/yeonchae62/REU-Project/pkg/eda"
	"github.com/yeonchae62/REU-Project/pkg/figure"
	"github.com/yeonchae62/REU-Project/pkg/segment"
	"github.com/yeonchae62/REU-Project/pkg/session"
)

// DefaultTimezone is the zone the experiments were recorded in.
const DefaultTimezone = "America/Chicago"

// LabelPlaceholder in a figure title is replaced by Config.Label.
const LabelPlaceholder = "{label}"

// Region is a labelled group pattern.
type Region struct {
	Label   string   `yaml:"label"`
	Pattern []string `yaml:"pattern"`
}

// Figure describes one image to draw.
type Figure struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	// Select limits the groups the figure sees; empty means all.
	Select []string `yaml:"select,omitempty"`
	// Restrict cuts the raw signal to the selected groups.
	Restrict bool     `yaml:"restrict,omitempty"`
	Regions  []Region `yaml:"regions"`
}

// Config is a full run description.
type Config struct {
	Raw       string `yaml:"raw"`
	Segments  string `yaml:"segments"`
	Label     string `yaml:"label"`
	Timezone  string `yaml:"timezone"`
	OutputDir string `yaml:"output_dir"`
	// Format is the image format: png, jpg, svg or pdf.
	Format string `yaml:"format"`
	// Width and Height are in inches.
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	GapSigma float64 `yaml:"gap_sigma"`
	Strict   bool    `yaml:"strict"`
	// Interpolate fills missing values instead of dropping readings.
	Interpolate bool        `yaml:"interpolate"`
	Analysis    eda.Options `yaml:"analysis"`
	Figures     []Figure    `yaml:"figures"`
}

var (
	slopePattern = []string{"*", "s*", "*"}
	flatPattern  = []string{"*", "f*", "*"}
)

func partRegions() []Region {
	return []Region{
		{Label: "Single View", Pattern: []string{"single-view", "*", "*"}},
		{Label: "Multi View", Pattern: []string{"multiple-view", "*", "*"}},
		{Label: "HMD", Pattern: []string{"HMD", "*", "*"}},
	}
}

// Default returns the stock configuration with the three standard figures.
func Default() Config {
	return Config{
		Timezone:  DefaultTimezone,
		OutputDir: ".",
		Format:    "png",
		Width:     15,
		Height:    9,
		GapSigma:  3,
		Analysis:  eda.DefaultOptions(),
		Figures: []Figure{
			{
				Name:  "type1",
				Title: "Electrodermal Activity (EDA), " + LabelPlaceholder + ", Type 1",
				Regions: []Region{
					{Label: "Slope", Pattern: slopePattern},
					{Label: "Flat", Pattern: flatPattern},
				},
			},
			{
				Name:     "type2-slope",
				Title:    "Electrodermal Activity (EDA), " + LabelPlaceholder + ", Type 2 - Slope",
				Select:   slopePattern,
				Restrict: true,
				Regions:  partRegions(),
			},
			{
				Name:     "type2-flat",
				Title:    "Electrodermal Activity (EDA), " + LabelPlaceholder + ", Type 2 - Flat",
				Select:   flatPattern,
				Restrict: true,
				Regions:  partRegions(),
			},
		},
	}
}

// Load reads the YAML file at path over Default. Lists in the file
// replace the defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML over Default.
func Parse(b []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Marshal encodes c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports every problem in c.
func (c Config) Validate() error {
	var errs []error
	if c.Raw == "" {
		errs = append(errs, errors.New("raw: path required"))
	}
	if c.Segments == "" {
		errs = append(errs, errors.New("segments: path required"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if !figure.Supported(c.Format) {
		errs = append(errs, fmt.Errorf("format: unsupported %q", c.Format))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size: %gx%g inches must be positive", c.Width, c.Height))
	}
	if c.GapSigma < 0 {
		errs = append(errs, fmt.Errorf("gap_sigma: must not be negative, got %g", c.GapSigma))
	}
	if err := c.Analysis.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("analysis: %w", err))
	}

	names := make(map[string]bool)
	for i, f := range c.Figures {
		if f.Name == "" {
			errs = append(errs, fmt.Errorf("figures[%d]: name required", i))
		} else if names[f.Name] {
			errs = append(errs, fmt.Errorf("figures[%d]: duplicate name %q", i, f.Name))
		}
		names[f.Name] = true
		if _, err := f.SelectPattern(); err != nil {
			errs = append(errs, fmt.Errorf("figures[%d].select: %w", i, err))
		}
		if _, err := f.RegionSpecs(); err != nil {
			errs = append(errs, fmt.Errorf("figures[%d].regions: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Location loads the configured time zone; empty means DefaultTimezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.LoadLocation(DefaultTimezone)
	}
	return time.LoadLocation(c.Timezone)
}

// SessionOptions returns the options for session.Load.
func (c Config) SessionOptions() session.Options {
	return session.Options{
		Analysis:    c.Analysis,
		GapSigma:    c.GapSigma,
		Strict:      c.Strict,
		Interpolate: c.Interpolate,
	}
}

// Find returns the figure named name.
func (c Config) Find(name string) (Figure, bool) {
	for _, f := range c.Figures {
		if f.Name == name {
			return f, true
		}
	}
	return Figure{}, false
}

// OutputPath is where figure f is written.
func (c Config) OutputPath(f Figure) string {
	name := f.Name
	if c.Label != "" {
		name = sanitize(c.Label) + "_" + name
	}
	return filepath.Join(c.OutputDir, name+"."+strings.ToLower(c.Format))
}

// TitleFor expands the label placeholder in f.Title. Without a label the
// placeholder and the separator before it are dropped.
func (f Figure) TitleFor(label string) string {
	title := f.Title
	if label == "" {
		title = strings.ReplaceAll(title, ", "+LabelPlaceholder, "")
	}
	return strings.TrimSpace(strings.ReplaceAll(title, LabelPlaceholder, label))
}

// SelectPattern parses Select; an empty Select matches every group.
func (f Figure) SelectPattern() (segment.Pattern, error) {
	if len(f.Select) == 0 {
		return segment.MatchAll, nil
	}
	return segment.ParsePatternSlice(f.Select)
}

// RegionSpecs parses the region patterns.
func (f Figure) RegionSpecs() ([]session.RegionSpec, error) {
	out := make([]session.RegionSpec, 0, len(f.Regions))
	for _, r := range f.Regions {
		p, err := segment.ParsePatternSlice(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.Label, err)
		}
		out = append(out, session.RegionSpec{Label: r.Label, Pattern: p})
	}
	return out, nil
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':':
			return '-'
		}
		return r
	}, s)
}
