// Package segment models the per-segment output of the annotation tool: a
// directory tree whose eda.csv files each cover one condition, environment
// and trial of the experiment.
package segment

import (
	"errors"
	"fmt"
	"strings"
)

// Wildcard matches zero or more characters inside a pattern component.
const Wildcard = "*"

var (
	// ErrBadPattern is returned for patterns that are not three components
	// with at most one wildcard each.
	ErrBadPattern = errors.New("bad group pattern")
)

// Group identifies a segment by the three directories above its eda.csv,
// e.g. HMD/fdump/1/eda.csv is {"HMD", "fdump", "1"}.
type Group [3]string

func (g Group) String() string { return strings.Join(g[:], "/") }

// component is one element of a Pattern.
type component struct {
	literal  string
	wildcard bool
	prefix   string
	suffix   string
}

func parseComponent(s string) (component, error) {
	switch strings.Count(s, Wildcard) {
	case 0:
		return component{literal: s}, nil
	case 1:
		i := strings.Index(s, Wildcard)
		return component{wildcard: true, prefix: s[:i], suffix: s[i+1:]}, nil
	}
	return component{}, fmt.Errorf("%w: %q has more than one %q", ErrBadPattern, s, Wildcard)
}

func (c component) match(s string) bool {
	if !c.wildcard {
		return s == c.literal
	}
	return strings.HasPrefix(s, c.prefix) &&
		strings.HasSuffix(s, c.suffix) &&
		len(s) >= len(c.prefix)+len(c.suffix)
}

func (c component) String() string {
	if !c.wildcard {
		return c.literal
	}
	return c.prefix + Wildcard + c.suffix
}

// Pattern selects groups component by component. A component without a
// wildcard matches exactly; "s*" matches anything starting with "s".
type Pattern struct {
	parts [3]component
}

// MatchAll is the pattern * * *.
var MatchAll = MustParsePattern(Wildcard, Wildcard, Wildcard)

// ParsePattern builds a Pattern from its three components.
func ParsePattern(condition, environment, trial string) (Pattern, error) {
	var p Pattern
	for i, s := range []string{condition, environment, trial} {
		c, err := parseComponent(s)
		if err != nil {
			return Pattern{}, err
		}
		p.parts[i] = c
	}
	return p, nil
}

// ParsePatternSlice builds a Pattern from exactly three components.
func ParsePatternSlice(parts []string) (Pattern, error) {
	if len(parts) != 3 {
		return Pattern{}, fmt.Errorf("%w: want 3 components, got %d", ErrBadPattern, len(parts))
	}
	return ParsePattern(parts[0], parts[1], parts[2])
}

// ParsePatternString parses "a/b/c" or "a,b,c".
func ParsePatternString(s string) (Pattern, error) {
	sep := "/"
	if strings.Contains(s, ",") {
		sep = ","
	}
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return ParsePatternSlice(parts)
}

// MustParsePattern is ParsePattern that panics on error.
func MustParsePattern(condition, environment, trial string) Pattern {
	p, err := ParsePattern(condition, environment, trial)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether every component of g matches.
func (p Pattern) Match(g Group) bool {
	for i, c := range p.parts {
		if !c.match(g[i]) {
			return false
		}
	}
	return true
}

func (p Pattern) String() string {
	return p.parts[0].String() + "/" + p.parts[1].String() + "/" + p.parts[2].String()
}
