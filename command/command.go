// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

// Package command implements spec.md §4.5/§4.5.1: the CommandBuffer
// recording surface and the pool that partitions primary/secondary
// buffers across in-flight frames and worker threads. Grounded on the
// teacher's hal/vulkan/command.go (BeginEncoding/EndEncoding, the
// resource-transition helpers, and the copy/blit recorders), reworked
// from WebGPU's deferred "encoder then submit" model onto this
// module's opaque-record state machine with explicit bind/draw/barrier
// calls, and from dynamic rendering (VkRenderingInfo, which this
// runtime's trimmed vk package does not wrap) onto classic
// RenderPass/Framebuffer begin/end.
package command

import (
	"errors"
	"fmt"

	"gerium/resource"
	"gerium/vk"
)

// State mirrors the lifecycle spec.md §4.5 names: "Free → Recording
// (begin) → Executable (end) → Pending (submitted) → Free (after
// fence)".
type State int

const (
	StateFree State = iota
	StateRecording
	StateExecutable
	StatePending
)

func (s State) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateRecording:
		return "recording"
	case StateExecutable:
		return "executable"
	case StatePending:
		return "pending"
	default:
		return "unknown"
	}
}

var (
	// ErrAlreadyRecording is the logic error spec.md §4.5 calls out:
	// "Reusing a buffer currently Recording is a logic error".
	ErrAlreadyRecording = errors.New("command: buffer is already recording")
	ErrNotRecording      = errors.New("command: buffer is not recording")
	ErrPoolExhausted     = errors.New("command: pool exhausted for this frame")
)

// Profiler is the subset of the profiler package's Profiler a
// CommandBuffer needs to emit timestamp writes for push_marker/
// pop_marker, kept as an interface here so this package doesn't import
// profiler; profiler.Profiler satisfies it structurally without
// importing command either.
type Profiler interface {
	// PushTimestamp reserves the next query pair for a named region,
	// returning the query index to write the start timestamp into.
	// ok is false when the profiler is disabled or out of queries for
	// this frame.
	PushTimestamp(name string) (query uint32, ok bool)
	// PopTimestamp closes the most recently pushed, still-open region
	// and returns the query index for the end timestamp.
	PopTimestamp() (query uint32, ok bool)
	// QueryPool returns the timestamp query pool the returned indices
	// address, so CommandBuffer can issue vkCmdWriteTimestamp itself.
	QueryPool() vk.QueryPool
}

// CommandBuffer wraps one vk.CommandBuffer with the recording state
// machine and the bind/draw/barrier surface of spec.md §4.5. Records
// are opaque: every method below appends to the underlying Vulkan
// command buffer directly, deferred only in the sense that nothing
// reaches the GPU until Submit.
type CommandBuffer struct {
	handle vk.CommandBuffer
	cmds   *vk.Commands
	res    *resource.Manager
	level  uint32

	state State

	boundPipeline    resource.PipelineHandle
	hasBoundPipeline bool
	boundDescriptors [maxBoundSets]boundSet

	profiler    Profiler
	markerDepth int
}

type boundSet struct {
	set   resource.DescriptorSetHandle
	bound bool
}

// maxBoundSets bounds the per-bind tracking array; pipeline layouts in
// this runtime rarely exceed a handful of sets (frame, pass, material,
// draw).
const maxBoundSets = 8

func newCommandBuffer(handle vk.CommandBuffer, cmds *vk.Commands, res *resource.Manager, level uint32) *CommandBuffer {
	return &CommandBuffer{handle: handle, cmds: cmds, res: res, level: level}
}

// Handle returns the underlying vk.CommandBuffer, for Submit/Execute
// call sites that need the raw handle.
func (cb *CommandBuffer) Handle() vk.CommandBuffer { return cb.handle }

// State reports the current lifecycle state.
func (cb *CommandBuffer) State() State { return cb.state }

// IsRecording reflects spec.md §4.5's is_recording.
func (cb *CommandBuffer) IsRecording() bool { return cb.state == StateRecording }

// SetProfiler attaches the profiler push_marker/pop_marker delegates
// to; nil disables timestamp writes (a valid, supported configuration
// for headless/benchmark builds).
func (cb *CommandBuffer) SetProfiler(p Profiler) { cb.profiler = p }

// Begin transitions Free → Recording. oneTimeSubmit matches
// VK_COMMAND_BUFFER_USAGE_ONE_TIME_SUBMIT_BIT, set for one-shot
// uploads and mipmap generation per spec.md §4.5's submit(wait=true)
// contract.
func (cb *CommandBuffer) Begin(oneTimeSubmit bool) error {
	if cb.state == StateRecording {
		return ErrAlreadyRecording
	}
	var flags uint32
	if oneTimeSubmit {
		flags = uint32(vk.CommandBufferUsageOneTimeSubmitBit)
	}
	info := vk.CommandBufferBeginInfo{SType: vk.StructureTypeCommandBufferBeginInfo, Flags: flags}
	if result := cb.cmds.BeginCommandBuffer(cb.handle, &info); !result.IsSuccess() {
		return fmt.Errorf("command: vkBeginCommandBuffer failed: %s", result)
	}
	cb.state = StateRecording
	cb.hasBoundPipeline = false
	for i := range cb.boundDescriptors {
		cb.boundDescriptors[i] = boundSet{}
	}
	cb.markerDepth = 0
	return nil
}

// End transitions Recording → Executable without submitting — what a
// secondary buffer recorded on a worker thread calls before handing
// itself to a primary buffer's Execute.
func (cb *CommandBuffer) End() error { return cb.end() }

// end transitions Recording → Executable. Unexported: Submit/Execute
// reach it directly; outside callers use the exported End.
func (cb *CommandBuffer) end() error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	if result := cb.cmds.EndCommandBuffer(cb.handle); !result.IsSuccess() {
		return fmt.Errorf("command: vkEndCommandBuffer failed: %s", result)
	}
	cb.state = StateExecutable
	return nil
}

// markPending and markFree are called by the owning Pool/Device once
// a submission's fence has signaled.
func (cb *CommandBuffer) markPending() { cb.state = StatePending }
func (cb *CommandBuffer) markFree()     { cb.state = StateFree }
