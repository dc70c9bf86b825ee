// Package convert turns ranges pasted from the annotation spreadsheets into
// JSON. Rows are comma or tab separated; the first two cells of a row are a
// start and end time and empty cells become null.
package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ErrFormat is returned for an unknown spreadsheet layout.
var ErrFormat = errors.New("convert: format must be 1 or 2")

// Span is a start and end cell; nil cells were empty.
type Span [2]*string

// Meta identifies where a record sits in the experiment.
type Meta[P any] struct {
	Path P `json:"path"`
}

// Document is the converted output.
type Document[R any] struct {
	Format int `json:"format"`
	Data   []R `json:"data"`
}

// Path1 locates a format 1 record.
type Path1 struct {
	Kind   string `json:"kind"`
	Ground string `json:"ground"`
	Trial  int    `json:"trial"`
}

// Task1 is one trial of format 1.
type Task1 struct {
	Meta     Meta[Path1] `json:"meta"`
	Pickup   Span        `json:"pickup"`
	Obstacle Span        `json:"obstacle"`
	Dump     Span        `json:"dump"`
}

// Path2 locates a format 2 record.
type Path2 struct {
	Environment string `json:"environment"`
	VisualGuide string `json:"visual_guide"`
	Trial       int    `json:"trial"`
}

// Task2 is a demolition trial with task spans, or a baseline run with
// Trials.
type Task2 struct {
	Meta     Meta[Path2] `json:"meta"`
	Pickup   *Span       `json:"pickup,omitempty"`
	Obstacle *Span       `json:"obstacle,omitempty"`
	Dump     *Span       `json:"dump,omitempty"`
	Trials   []Span      `json:"trials,omitempty"`
}

var format1Order = []Path1{
	{"single-view", "slope", 1},
	{"multiple-view", "slope", 1},
	{"HMD", "slope", 1},
	{"single-view", "slope", 2},
	{"multiple-view", "slope", 2},
	{"HMD", "slope", 2},
	{"single-view", "flat", 1},
	{"multiple-view", "flat", 1},
	{"HMD", "flat", 1},
	{"single-view", "flat", 2},
	{"multiple-view", "flat", 2},
	{"HMD", "flat", 2},
}

var (
	demolitionOrder = []Path2{
		{"demolition", "none", 1},
		{"demolition", "none", 2},
		{"demolition", "mv1", 1},
		{"demolition", "mv1", 2},
		{"demolition", "mv2", 1},
		{"demolition", "mv2", 2},
		{"demolition", "discrete", 1},
		{"demolition", "discrete", 2},
		{"demolition", "continuous", 1},
		{"demolition", "continuous", 2},
	}
	baselineOrder = []Path2{
		{"baseline", "none", 1},
		{"baseline", "mv1", 1},
		{"baseline", "mv2", 1},
		{"baseline", "discrete", 1},
		{"baseline", "continuous", 1},
	}
)

const (
	format1Lines    = 5 // ignored, pickup, obstacle, dump, blank
	demolitionLines = 4 // pickup, obstacle, dump, blank
	baselineLines   = 7 // six trials, blank
	baselineTrials  = 6
)

var separator = regexp.MustCompile(`,|\t`)

// sheet is the pasted range split into lines; lines past the end read as
// empty.
type sheet []string

func newSheet(input string) sheet {
	lines := strings.Split(input, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func (s sheet) span(line int) Span {
	var out Span
	if line >= len(s) {
		return out
	}
	for i, cell := range separator.Split(s[line], -1) {
		if i == len(out) {
			break
		}
		if cell != "" {
			out[i] = &cell
		}
	}
	return out
}

// Format1 converts the slope/flat layout: twelve groups of five lines.
func Format1(input string) Document[Task1] {
	s := newSheet(input)
	doc := Document[Task1]{Format: 1, Data: make([]Task1, 0, len(format1Order))}
	for g, path := range format1Order {
		base := g * format1Lines
		doc.Data = append(doc.Data, Task1{
			Meta:     Meta[Path1]{Path: path},
			Pickup:   s.span(base + 1),
			Obstacle: s.span(base + 2),
			Dump:     s.span(base + 3),
		})
	}
	return doc
}

// Format2 converts the demolition/baseline layout: ten demolition groups
// of four lines followed by five baseline groups of seven.
func Format2(input string) Document[Task2] {
	s := newSheet(input)
	doc := Document[Task2]{Format: 2, Data: make([]Task2, 0, len(demolitionOrder)+len(baselineOrder))}
	for g, path := range demolitionOrder {
		base := g * demolitionLines
		pickup, obstacle, dump := s.span(base), s.span(base+1), s.span(base+2)
		doc.Data = append(doc.Data, Task2{
			Meta:     Meta[Path2]{Path: path},
			Pickup:   &pickup,
			Obstacle: &obstacle,
			Dump:     &dump,
		})
	}

	offset := len(demolitionOrder) * demolitionLines
	for g, path := range baselineOrder {
		base := offset + g*baselineLines
		trials := make([]Span, baselineTrials)
		for i := range trials {
			trials[i] = s.span(base + i)
		}
		doc.Data = append(doc.Data, Task2{Meta: Meta[Path2]{Path: path}, Trials: trials})
	}
	return doc
}

// Convert reads a pasted range from r and writes it to w as indented JSON.
func Convert(r io.Reader, w io.Writer, format int) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var doc any
	switch format {
	case 1:
		doc = Format1(string(raw))
	case 2:
		doc = Format2(string(raw))
	default:
		return fmt.Errorf("%w, got %d", ErrFormat, format)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(doc)
}
