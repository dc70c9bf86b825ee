package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	origin = 1.695e15
	step   = 250000.0 // 4 Hz
)

func writeSignal(t *testing.T, path string, from, to int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	var sb strings.Builder
	sb.WriteString("timestamp,eda\n")
	for i := from; i <= to; i++ {
		v := 1.5 + 0.3*math.Sin(float64(i)/25) + 0.05*math.Sin(float64(i)/2)
		fmt.Fprintf(&sb, "%d,%.6f\n", int64(origin+float64(i)*step), v)
	}
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
}

// experiment lays out a raw recording and two segment groups.
func experiment(t *testing.T) (raw, segments string) {
	t.Helper()
	dir := t.TempDir()
	raw = filepath.Join(dir, "EDA", "eda.csv")
	writeSignal(t, raw, 0, 1199)

	segments = filepath.Join(dir, "post", "Hao")
	writeSignal(t, filepath.Join(segments, "single-view", "slope", "1", "eda.csv"), 100, 400)
	writeSignal(t, filepath.Join(segments, "HMD", "flat", "1", "eda.csv"), 600, 1000)
	return raw, segments
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestPlot(t *testing.T) {
	raw, segments := experiment(t)
	outDir := filepath.Join(t.TempDir(), "figures")

	out, err := run(t, "", "plot", "--raw", raw, "--segments", segments,
		"--label", "Hao", "--format", "svg", "--output-dir", outDir, "--log-level", "error")
	require.NoError(t, err)

	for _, name := range []string{"Hao_type1.svg", "Hao_type2-slope.svg", "Hao_type2-flat.svg"} {
		path := filepath.Join(outDir, name)
		assert.FileExists(t, path)
		assert.Contains(t, out, path)
	}
}

func TestPlot_UnknownFigure(t *testing.T) {
	raw, segments := experiment(t)
	_, err := run(t, "", "plot", "--raw", raw, "--segments", segments, "-f", "type9")
	assert.ErrorContains(t, err, `no figure named "type9"`)
}

func TestOverview(t *testing.T) {
	raw, segments := experiment(t)
	path := filepath.Join(t.TempDir(), "overview.png")

	_, err := run(t, "", "overview", "--raw", raw, "--segments", segments, "-o", path, "--width", "600", "--height", "200")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestBounds(t *testing.T) {
	raw, segments := experiment(t)
	out, err := run(t, "", "bounds", "--raw", raw, "--segments", segments, "--timezone", "UTC")
	require.NoError(t, err)

	assert.Contains(t, out, "HMD/flat/1")
	assert.Contains(t, out, "single-view/slope/1")
	assert.Contains(t, out, "all groups")
	// origin is 2023-09-18 01:20:00 UTC
	assert.Contains(t, out, "2023-09-18 01:20:00.000")

	out, err = run(t, "", "bounds", "--raw", raw, "--segments", segments, "-s", "HMD/*/*")
	require.NoError(t, err)
	assert.NotContains(t, out, "single-view")
}

func TestSummary(t *testing.T) {
	raw, segments := experiment(t)
	out, err := run(t, "", "summary", "--raw", raw, "--segments", segments)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "SCR/MIN")
	assert.Contains(t, lines[1], "HMD/flat/1")
	assert.Contains(t, lines[1], " 401")
	assert.Contains(t, lines[2], "single-view/slope/1")
	assert.Contains(t, lines[3], "session")
}

func TestExport(t *testing.T) {
	raw, segments := experiment(t)
	out, err := run(t, "", "export", "--raw", raw, "--segments", segments, "-s", "*/f*/*", "--restrict")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 402)
	assert.True(t, strings.HasPrefix(lines[0], "Timestamp,"))

	path := filepath.Join(t.TempDir(), "export.csv")
	_, err = run(t, "", "export", "--raw", raw, "--segments", segments, "-o", path)
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1201, strings.Count(string(b), "\n"))
}

func TestConvert(t *testing.T) {
	out, err := run(t, "x\n0:01,0:02\n", "convert", "-f", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"format": 1`)
	assert.Contains(t, out, `"0:02"`)

	_, err = run(t, "", "convert")
	assert.ErrorContains(t, err, "format")
}

func TestConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spliteda.yaml")
	require.NoError(t, os.WriteFile(path, []byte("label: Hao\n"), 0o644))

	out, err := run(t, "", "config", "--config", path, "--raw", "r.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "label: Hao")
	assert.Contains(t, out, "raw: r.csv")
	assert.Contains(t, out, "timezone: America/Chicago")
}

func TestErrors(t *testing.T) {
	_, err := run(t, "", "bounds")
	assert.ErrorContains(t, err, "raw: path required")

	_, err = run(t, "", "bounds", "--log-level", "loud")
	assert.ErrorContains(t, err, "unknown log level")

	_, err = run(t, "", "bounds", "--timezone", "Mars/Olympus")
	assert.ErrorContains(t, err, "timezone")

	raw, segments := experiment(t)
	_, err = run(t, "", "bounds", "--raw", raw+".missing", "--segments", segments)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
