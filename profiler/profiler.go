// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

// Package profiler implements spec.md §4.6: a per-frame timestamp
// tree built from push_timestamp/pop_timestamp calls recorded into
// command buffers, read back once the GPU has finished the frame.
// Grounded on the teacher's hal/vulkan/query.go (QuerySet, reused
// directly via device.QuerySet) and the reference implementation's
// VkProfiler.{hpp,cpp} (original_source/sources/Vulkan/VkProfiler.cpp)
// for the push/pop stack bookkeeping, since the teacher repo has no
// profiler of its own to generalize (WebGPU's timestamp-query API is
// queried very differently — wgpu has no tree of named regions at
// all, just raw query-set writes).
package profiler

import (
	"fmt"

	"gerium/device"
	"gerium/vk"
)

// Timestamp is one named region pushed/popped within a single frame.
type Timestamp struct {
	Start, End uint32 // query indices in the whole query pool, frame-slot offset included
	Parent     uint32 // index of the enclosing region within this frame's slice; 0 for a root region
	Depth      uint32
	Frame      uint64
	Elapsed    float64 // nanoseconds, valid only after FetchDataFromGpu
	Name       string
}

// Profiler implements command.Profiler (structurally — this package
// does not import command to avoid the cycle command.go's doc comment
// describes; command.CommandBuffer.SetProfiler accepts any value
// satisfying that interface's method set, which Profiler does).
type Profiler struct {
	dev             *device.Device
	queries         *device.QuerySet
	queriesPerFrame uint32
	maxFrames       uint32

	currentQuery uint32
	parentQuery  uint32
	depth        uint32

	timestamps []Timestamp // len == queriesPerFrame*maxFrames, indexed by frameSlot*queriesPerFrame+slot
}

// New creates a Profiler over dev's existing timestamp query pool
// (bring-up step 5). dev.Config().QueriesPerFrame must be non-zero, or
// every PushTimestamp call reports !ok and no timestamps are ever
// written, matching spec.md's "profiler disabled" configuration.
func New(dev *device.Device, maxFrames uint32) *Profiler {
	cfg := dev.Config()
	return &Profiler{
		dev:             dev,
		queries:         dev.Queries(),
		queriesPerFrame: cfg.QueriesPerFrame,
		maxFrames:       maxFrames,
		timestamps:      make([]Timestamp, cfg.QueriesPerFrame*maxFrames),
	}
}

// Enabled reports whether this Profiler has any queries to write into,
// mirroring spec.md §4.6's has_timestamps() guard at push time.
func (p *Profiler) Enabled() bool { return p.queriesPerFrame > 0 && p.queries.Count() > 0 }

// QueryPool returns the underlying VkQueryPool, satisfying
// command.Profiler.
func (p *Profiler) QueryPool() vk.QueryPool { return p.queries.Pool() }

func (p *Profiler) slotBase() uint32 {
	return uint32(p.dev.CurrentFrameSlot()) * p.queriesPerFrame
}

// PushTimestamp reserves the next query pair for a named region and
// opens it as a child of whatever region is currently open (or a root
// if none is), grounded on VkProfiler::pushTimestamp's parent-stack
// bookkeeping.
func (p *Profiler) PushTimestamp(name string) (uint32, bool) {
	if !p.Enabled() || p.currentQuery >= p.queriesPerFrame {
		return 0, false
	}
	idx := p.slotBase() + p.currentQuery
	ts := &p.timestamps[idx]
	*ts = Timestamp{
		Start:  idx * 2,
		End:    idx*2 + 1,
		Parent: p.parentQuery,
		Depth:  p.depth,
		Name:   name,
	}
	p.parentQuery = p.currentQuery
	p.currentQuery++
	p.depth++
	return ts.Start, true
}

// PopTimestamp closes the most recently pushed, still-open region.
func (p *Profiler) PopTimestamp() (uint32, bool) {
	if !p.Enabled() || p.depth == 0 {
		return 0, false
	}
	idx := p.slotBase() + p.parentQuery
	ts := &p.timestamps[idx]
	p.parentQuery = ts.Parent
	p.depth--
	return ts.End, true
}

// HasTimestamps mirrors spec.md §4.6's has_timestamps(): true once at
// least one region has been pushed this frame and every pushed region
// has also been popped (depth back to zero).
func (p *Profiler) HasTimestamps() bool {
	return p.currentQuery > 0 && p.depth == 0
}

// ResetFrame clears the CPU-side push/pop bookkeeping for the frame
// about to be recorded — the GPU-side vkCmdResetQueryPool for the same
// slot already happens in device.Device.NewFrame, so this only resets
// the cursor VkProfiler::resetTimestamps resets.
func (p *Profiler) ResetFrame() {
	p.currentQuery = 0
	p.parentQuery = 0
	p.depth = 0
}

// FetchDataFromGpu reads back every query this frame wrote and
// computes each region's elapsed nanoseconds from the device's
// timestamp period, grounded on VkProfiler::fetchDataFromGpu. Call
// once a frame at least MaxFrames ago has had its fence signaled, so
// the queries it wrote are guaranteed complete.
func (p *Profiler) FetchDataFromGpu() error {
	if !p.HasTimestamps() {
		return nil
	}
	base := p.slotBase()
	queryOffset := base * 2
	queryCount := p.currentQuery * 2
	data, err := p.queries.Results(p.dev.Commands(), p.dev.Handle(), queryOffset, queryCount)
	if err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	period := float64(p.dev.TimestampPeriod())
	absFrame := p.dev.AbsoluteFrame()
	for q := uint32(0); q < p.currentQuery; q++ {
		ts := &p.timestamps[base+q]
		start := float64(data[q*2])
		end := float64(data[q*2+1])
		ts.Frame = absFrame
		ts.Elapsed = (end - start) * period
	}
	return nil
}

// Timestamps returns the regions recorded for the current frame slot,
// valid after FetchDataFromGpu has run for it.
func (p *Profiler) Timestamps() []Timestamp {
	base := p.slotBase()
	return p.timestamps[base : base+p.currentQuery]
}
