package segment

import (
	"errors"
	"slices"
	"time"
)

// ErrNoGroups is returned when bounds are requested from an empty Set.
var ErrNoGroups = errors.New("no segment groups")

// Bounds is an inclusive time range in microseconds since the Unix epoch.
type Bounds struct {
	Start float64
	End   float64
}

// Contains reports whether t lies in b.
func (b Bounds) Contains(t float64) bool { return b.Start <= t && t <= b.End }

// Duration returns the length of b.
func (b Bounds) Duration() time.Duration {
	return time.Duration((b.End - b.Start) * float64(time.Microsecond))
}

// Times converts b to wall-clock times in loc.
func (b Bounds) Times(loc *time.Location) (time.Time, time.Time) {
	return MicrosTime(b.Start, loc), MicrosTime(b.End, loc)
}

// MicrosTime converts microseconds since the Unix epoch to a time in loc.
func MicrosTime(micros float64, loc *time.Location) time.Time {
	t := time.UnixMicro(int64(micros))
	if loc != nil {
		t = t.In(loc)
	}
	return t
}

// Set maps each group to the time range its eda.csv covers.
type Set map[Group]Bounds

// Select returns the groups matching p.
func (s Set) Select(p Pattern) Set {
	out := make(Set)
	for g, b := range s {
		if p.Match(g) {
			out[g] = b
		}
	}
	return out
}

// Bounds returns the earliest start and latest end over all groups.
func (s Set) Bounds() (Bounds, error) {
	if len(s) == 0 {
		return Bounds{}, ErrNoGroups
	}
	first := true
	var out Bounds
	for _, b := range s {
		if first || b.Start < out.Start {
			out.Start = b.Start
		}
		if first || b.End > out.End {
			out.End = b.End
		}
		first = false
	}
	return out, nil
}

// Groups returns the groups in lexical order.
func (s Set) Groups() []Group {
	out := make([]Group, 0, len(s))
	for g := range s {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b Group) int {
		for i := range a {
			if c := compare(a[i], b[i]); c != 0 {
				return c
			}
		}
		return 0
	})
	return out
}

func compare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
