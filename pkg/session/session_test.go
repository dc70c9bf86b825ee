package session_test

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonchae62/REU-Project/pkg/data"
	"github.com/yeonchae62/REU-Project/pkg/segment"
	"github.com/yeonchae62/REU-Project/pkg/session"
)

const (
	origin = 1.7e15
	step   = 125000.0 // 8 Hz
	n      = 800
	// second chunk starts ten minutes after the first ends
	second = origin + n*step + 600e6
)

func at(base float64, i int) float64 { return base + float64(i)*step }

func writeCSV(t *testing.T, path string, base float64, from, to int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	var sb strings.Builder
	sb.WriteString("timestamp,eda\n")
	for i := from; i <= to; i++ {
		v := 2 + 0.4*math.Sin(float64(i)/40) + 0.05*math.Sin(float64(i)/3)
		fmt.Fprintf(&sb, "%d,%.6f\n", int64(at(base, i)), v)
	}
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
}

func fixture(t *testing.T) (raw, segments string) {
	t.Helper()
	dir := t.TempDir()
	raw = filepath.Join(dir, "raw", "eda.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(raw), 0o755))

	var sb strings.Builder
	sb.WriteString("timestamp,eda\n")
	for _, base := range []float64{origin, second} {
		for i := 0; i < n; i++ {
			fmt.Fprintf(&sb, "%d,%.6f\n", int64(at(base, i)), 2+0.4*math.Sin(float64(i)/40))
		}
	}
	require.NoError(t, os.WriteFile(raw, []byte(sb.String()), 0o644))

	segments = filepath.Join(dir, "Data")
	writeCSV(t, filepath.Join(segments, "single-view", "slope", "1", "eda.csv"), origin, 100, 300)
	writeCSV(t, filepath.Join(segments, "HMD", "flat", "1", "eda.csv"), second, 200, 600)
	writeCSV(t, filepath.Join(segments, "HMD", "slope", "2", "eda.csv"), second, 0, 100)
	return raw, segments
}

func load(t *testing.T) *session.Session {
	t.Helper()
	raw, segments := fixture(t)
	s, err := session.Load(context.Background(), raw, segments, session.Options{})
	require.NoError(t, err)
	return s
}

func TestLoad(t *testing.T) {
	s := load(t)

	require.Len(t, s.Chunks, 2)
	require.Len(t, s.Analyses, 2)
	assert.Len(t, s.Groups, 3)
	for i, a := range s.Analyses {
		assert.Equal(t, len(s.Chunks[i].Readings), a.Len())
		assert.InDelta(t, 8.0, a.SamplingRate, 1e-9)
	}

	b := s.RawBounds()
	assert.Equal(t, origin, b.Start)
	assert.Equal(t, at(second, n-1), b.End)
}

func TestLoad_MissingRaw(t *testing.T) {
	_, segments := fixture(t)
	_, err := session.Load(context.Background(), filepath.Join(t.TempDir(), "none.csv"), segments, session.Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSelect(t *testing.T) {
	s := load(t)
	slope := s.Select(segment.MustParsePattern("*", "s*", "*"))

	assert.Len(t, slope.Groups, 2)
	assert.Len(t, s.Groups, 3)
	assert.Equal(t, s.Chunks, slope.Chunks)

	b, err := slope.GroupBounds()
	require.NoError(t, err)
	assert.Equal(t, at(origin, 100), b.Start)
	assert.Equal(t, at(second, 100), b.End)

	_, err = s.Select(segment.MustParsePattern("nothing", "*", "*")).GroupBounds()
	assert.ErrorIs(t, err, segment.ErrNoGroups)
}

func TestRestrict(t *testing.T) {
	s := load(t)
	hmd, err := s.Select(segment.MustParsePattern("HMD", "*", "*")).Restrict(context.Background())
	require.NoError(t, err)

	require.Len(t, hmd.Chunks, 1)
	assert.Len(t, hmd.Chunks[0].Readings, 601)
	assert.Equal(t, segment.Bounds{Start: second, End: at(second, 600)}, hmd.RawBounds())
}

func TestRegions(t *testing.T) {
	s := load(t)
	regions := s.Regions([]session.RegionSpec{
		{Label: "Slope", Pattern: segment.MustParsePattern("*", "s*", "*")},
		{Label: "Missing", Pattern: segment.MustParsePattern("x*", "*", "*")},
		{Label: "Flat", Pattern: segment.MustParsePattern("*", "f*", "*")},
	})
	require.Len(t, regions, 2)
	assert.Equal(t, "Slope", regions[0].Label)
	assert.Equal(t, at(origin, 100), regions[0].Start)
	assert.Equal(t, "Flat", regions[1].Label)
	assert.Equal(t, at(second, 600), regions[1].End)
}

func TestFigureAndOverview(t *testing.T) {
	s := load(t)
	regions := s.Regions([]session.RegionSpec{{Label: "Flat", Pattern: segment.MatchAll}})

	f := s.Figure("All", regions, nil)
	require.Len(t, f.Traces, 2)
	assert.Len(t, f.Traces[1].X, n)

	o := s.Overview("All", regions)
	require.Len(t, o.Seconds, 2*n)
	assert.Equal(t, 0.0, o.Seconds[0])
	assert.InDelta(t, 0.125, o.Seconds[1], 1e-9)
	require.Len(t, o.Regions, 1)
	assert.InDelta(t, 12.5, o.Regions[0].Start, 1e-9)
}

func TestSummaries(t *testing.T) {
	s := load(t)
	sums := s.Summaries()
	require.Len(t, sums, 3)

	assert.Equal(t, segment.Group{"HMD", "flat", "1"}, sums[0].Group)
	assert.Equal(t, 401, sums[0].Samples)
	assert.Equal(t, segment.Group{"HMD", "slope", "2"}, sums[1].Group)
	assert.Equal(t, 101, sums[1].Samples)
	assert.Equal(t, segment.Group{"single-view", "slope", "1"}, sums[2].Group)
	assert.Equal(t, 201, sums[2].Samples)
	assert.InDelta(t, 201.0/8, sums[2].Duration, 1e-9)

	assert.Equal(t, 2*n, s.Summary().Samples)
}

func TestWriteCSV(t *testing.T) {
	s := load(t)
	var buf bytes.Buffer
	require.NoError(t, s.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2*n+1)
	assert.True(t, strings.HasPrefix(lines[0], "Timestamp,EDA_Raw"))
	assert.Equal(t, 1, strings.Count(buf.String(), "Timestamp"))
}

func TestNew_Interpolate(t *testing.T) {
	readings := make([]data.Reading, 200)
	for i := range readings {
		readings[i] = data.Reading{Micros: at(origin, i), Value: 2}
	}
	readings[50].Value = math.NaN()

	dropped, err := session.New(context.Background(), readings, segment.Set{}, session.Options{})
	require.NoError(t, err)
	// the hole left by the dropped reading splits the recording
	assert.Len(t, dropped.Chunks, 2)
	assert.Equal(t, 199, dropped.Summary().Samples)

	filled, err := session.New(context.Background(), readings, segment.Set{}, session.Options{Interpolate: true})
	require.NoError(t, err)
	require.Len(t, filled.Chunks, 1)
	assert.Equal(t, 200, filled.Analyses[0].Len())
	assert.Equal(t, 2.0, filled.Analyses[0].Raw[50])

	_, err = session.New(context.Background(), nil, segment.Set{}, session.Options{})
	assert.ErrorIs(t, err, data.ErrNoReadings)
}
