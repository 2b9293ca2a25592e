// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package profiler

import "sort"

// Overlay aggregates per-frame Timestamp trees into the rolling
// min/max/average view spec.md §4.6's draw_profiler shows, grounded on
// the reference implementation's ProfilerUI (original_source/sources/
// ProfilerUI.{hpp,cpp}). That implementation renders through ImGui;
// no example repo in this module's retrieval pack wires a Go ImGui
// binding, so Overlay stops at the aggregated data a UI layer would
// need and leaves rendering to the caller rather than fabricating a
// dependency the corpus never shows.
type Overlay struct {
	history    [][]Timestamp
	maxFrames  int
	MinElapsed float64
	MaxElapsed float64
	AvgElapsed float64
}

// NewOverlay creates an Overlay retaining up to maxFrames of history.
func NewOverlay(maxFrames int) *Overlay {
	return &Overlay{maxFrames: maxFrames}
}

// Push records one frame's fetched timestamps and recomputes the
// rolling min/max/average over the retained history.
func (o *Overlay) Push(frame []Timestamp) {
	cp := make([]Timestamp, len(frame))
	copy(cp, frame)
	o.history = append(o.history, cp)
	if len(o.history) > o.maxFrames {
		o.history = o.history[len(o.history)-o.maxFrames:]
	}
	o.recompute()
}

func (o *Overlay) recompute() {
	var sum float64
	var n int
	o.MinElapsed, o.MaxElapsed = 0, 0
	first := true
	for _, frame := range o.history {
		for _, ts := range frame {
			if ts.Depth != 0 {
				continue // only the root regions sum to total frame time
			}
			if first || ts.Elapsed < o.MinElapsed {
				o.MinElapsed = ts.Elapsed
			}
			if first || ts.Elapsed > o.MaxElapsed {
				o.MaxElapsed = ts.Elapsed
			}
			first = false
			sum += ts.Elapsed
			n++
		}
	}
	if n > 0 {
		o.AvgElapsed = sum / float64(n)
	}
}

// Summary is one named region's aggregated timing, for a caller to
// render a table or graph from.
type Summary struct {
	Name    string
	Calls   int
	Total   float64
	Average float64
}

// Summaries returns every distinct region name seen across the
// retained history, sorted by total elapsed time descending — the
// sort order a profiler overlay's top-down view uses.
func (o *Overlay) Summaries() []Summary {
	totals := map[string]*Summary{}
	for _, frame := range o.history {
		for _, ts := range frame {
			s, ok := totals[ts.Name]
			if !ok {
				s = &Summary{Name: ts.Name}
				totals[ts.Name] = s
			}
			s.Calls++
			s.Total += ts.Elapsed
		}
	}
	out := make([]Summary, 0, len(totals))
	for _, s := range totals {
		if s.Calls > 0 {
			s.Average = s.Total / float64(s.Calls)
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// DrawProfiler implements spec.md §4.6's draw_profiler(&mut show): when
// show is true, pulls the latest frame's timestamps in and returns the
// aggregated summary a UI layer renders; when false it's a no-op that
// leaves the retained history untouched.
func (p *Profiler) DrawProfiler(overlay *Overlay, show *bool) []Summary {
	if show == nil || !*show {
		return nil
	}
	overlay.Push(p.Timestamps())
	return overlay.Summaries()
}
