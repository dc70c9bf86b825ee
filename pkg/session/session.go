// Package session ties the raw recording, its analysis and the segment
// descriptor set together.
package session

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/yeonchae62/REU-Project/pkg/data"
	"github.com/yeonchae62/REU-Project/pkg/dataprep"
	"github.com/yeonchae62/REU-Project/pkg/eda"
	"github.com/yeonchae62/REU-Project/pkg/figure"
	"github.com/yeonchae62/REU-Project/pkg/overview"
	"github.com/yeonchae62/REU-Project/pkg/segment"
)

// ErrOutsideBounds is returned by Restrict when no raw reading falls inside
// the group bounds.
var ErrOutsideBounds = errors.New("no raw readings inside segment bounds")

// Options configures Load.
type Options struct {
	Analysis eda.Options
	// GapSigma is passed to dataprep.SplitOnGaps.
	GapSigma float64
	// Strict fails on malformed rows instead of skipping them.
	Strict bool
	// Interpolate fills non-finite values from their neighbours instead of
	// dropping the readings.
	Interpolate bool
	Log         hclog.Logger
}

// Session is a loaded experiment: the raw signal split into analysed
// chunks, plus the segment groups currently selected.
type Session struct {
	Chunks   []dataprep.Chunk
	Analyses []*eda.Analysis
	Groups   segment.Set

	readings []data.Reading
	opts     Options
	log      hclog.Logger
}

// Load reads the raw signal at rawPath and the segment tree under
// segmentsDir.
func Load(ctx context.Context, rawPath, segmentsDir string, opts Options) (*Session, error) {
	log := opts.Log
	if log == nil {
		log = hclog.NewNullLogger()
	}

	loader := data.NewLoader(log.Named("data"))
	loader.Strict = opts.Strict

	readings, err := loader.ReadFile(ctx, rawPath)
	if err != nil {
		return nil, err
	}
	groups, err := segment.Walk(ctx, segmentsDir, loader)
	if err != nil {
		return nil, err
	}
	log.Info("loaded experiment", "readings", len(readings), "groups", len(groups))

	return New(ctx, readings, groups, opts)
}

// New analyses readings and pairs them with groups.
func New(ctx context.Context, readings []data.Reading, groups segment.Set, opts Options) (*Session, error) {
	log := opts.Log
	if log == nil {
		log = hclog.NewNullLogger()
	}

	if opts.Interpolate {
		var filled int
		readings, filled = dataprep.Interpolate(readings)
		if filled > 0 {
			log.Info("interpolated missing values", "count", filled)
		}
	}
	kept, dropped := dataprep.DropInvalid(readings)
	if dropped > 0 {
		log.Warn("dropped invalid readings", "count", dropped)
	}
	if len(kept) == 0 {
		return nil, data.ErrNoReadings
	}

	chunks := dataprep.SplitOnGaps(kept, opts.GapSigma)
	log.Debug("split raw signal", "chunks", len(chunks))

	analyses := make([]*eda.Analysis, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := eda.Process(dataprep.Values(c.Readings), c.SamplingRate, opts.Analysis)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			analyses[i] = a
			if !a.Filtered {
				log.Warn("sampling rate too low to clean, using raw signal", "chunk", i, "rate", c.SamplingRate)
			}
			log.Trace("analysed chunk", "index", i, "samples", a.Len(), "rate", c.SamplingRate, "scrs", a.SCR.Len())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Session{
		Chunks:   chunks,
		Analyses: analyses,
		Groups:   groups,
		readings: kept,
		opts:     opts,
		log:      log,
	}, nil
}

// Select returns a session sharing the raw chunks whose groups match p.
func (s *Session) Select(p segment.Pattern) *Session {
	out := *s
	out.Groups = s.Groups.Select(p)
	s.log.Debug("selected groups", "pattern", p.String(), "count", len(out.Groups))
	return &out
}

// RawBounds returns the first and last raw timestamps.
func (s *Session) RawBounds() segment.Bounds {
	return segment.Bounds{Start: s.Chunks[0].Start(), End: s.Chunks[len(s.Chunks)-1].End()}
}

// GroupBounds returns the earliest start and latest end of the groups.
func (s *Session) GroupBounds() (segment.Bounds, error) {
	return s.Groups.Bounds()
}

// Restrict returns a session whose raw signal is cut to GroupBounds and
// analysed again.
func (s *Session) Restrict(ctx context.Context) (*Session, error) {
	b, err := s.GroupBounds()
	if err != nil {
		return nil, err
	}
	readings := dataprep.FilterBounds(s.readings, b.Start, b.End)
	if len(readings) == 0 {
		return nil, ErrOutsideBounds
	}
	return New(ctx, readings, s.Groups, s.opts)
}

// RegionSpec names the groups that make up one figure region.
type RegionSpec struct {
	Label   string
	Pattern segment.Pattern
}

// Regions resolves each spec to the bounds of the groups it matches.
// Specs that match nothing are skipped.
func (s *Session) Regions(specs []RegionSpec) []figure.Region {
	var out []figure.Region
	for _, spec := range specs {
		b, err := s.Groups.Select(spec.Pattern).Bounds()
		if err != nil {
			s.log.Warn("region matches no groups", "label", spec.Label, "pattern", spec.Pattern.String())
			continue
		}
		out = append(out, figure.Region{Start: b.Start, End: b.End, Label: spec.Label})
	}
	return out
}

// Figure builds the three-panel figure of the whole session.
func (s *Session) Figure(title string, regions []figure.Region, loc *time.Location) figure.Figure {
	f := figure.Figure{Title: title, Regions: regions, Location: loc}
	for i, c := range s.Chunks {
		f.Traces = append(f.Traces, figure.Trace{X: dataprep.Timestamps(c.Readings), Analysis: s.Analyses[i]})
	}
	return f
}

// Overview builds a raw strip with times in seconds from the first reading.
func (s *Session) Overview(title string, regions []figure.Region) overview.Overview {
	origin := s.readings[0].Micros
	o := overview.Overview{
		Title:   title,
		Seconds: make([]float64, len(s.readings)),
		Values:  dataprep.Values(s.readings),
	}
	for i, rd := range s.readings {
		o.Seconds[i] = (rd.Micros - origin) / 1e6
	}
	for _, r := range regions {
		o.Regions = append(o.Regions, figure.Region{
			Start: (r.Start - origin) / 1e6,
			End:   (r.End - origin) / 1e6,
			Label: r.Label,
		})
	}
	return o
}
