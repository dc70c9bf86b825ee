package session

import (
	"io"
	"sort"

	"github.com/yeonchae62/REU-Project/pkg/dataprep"
	"github.com/yeonchae62/REU-Project/pkg/eda"
	"github.com/yeonchae62/REU-Project/pkg/segment"
)

// GroupSummary is the analysis of the raw signal inside one group.
type GroupSummary struct {
	Group  segment.Group
	Bounds segment.Bounds
	eda.Summary
}

// Summaries summarises every group in lexical order.
func (s *Session) Summaries() []GroupSummary {
	groups := s.Groups.Groups()
	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		b := s.Groups[g]
		out = append(out, GroupSummary{Group: g, Bounds: b, Summary: eda.SummarizeWindows(s.windows(b)...)})
	}
	return out
}

// Summary summarises the whole session.
func (s *Session) Summary() eda.Summary {
	windows := make([]eda.Window, len(s.Analyses))
	for i, a := range s.Analyses {
		windows[i] = eda.Window{Analysis: a, From: 0, To: a.Len()}
	}
	return eda.SummarizeWindows(windows...)
}

// windows returns the samples of each chunk inside b.
func (s *Session) windows(b segment.Bounds) []eda.Window {
	var out []eda.Window
	for i, c := range s.Chunks {
		if c.End() < b.Start || c.Start() > b.End {
			continue
		}
		rs := c.Readings
		from := sort.Search(len(rs), func(j int) bool { return rs[j].Micros >= b.Start })
		to := sort.Search(len(rs), func(j int) bool { return rs[j].Micros > b.End })
		if from < to {
			out = append(out, eda.Window{Analysis: s.Analyses[i], From: from, To: to})
		}
	}
	return out
}

// WriteCSV exports every analysed sample with a single header row.
func (s *Session) WriteCSV(w io.Writer) error {
	for i, c := range s.Chunks {
		if err := eda.WriteCSV(w, dataprep.Timestamps(c.Readings), s.Analyses[i], i == 0); err != nil {
			return err
		}
	}
	return nil
}
