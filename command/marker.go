// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package command

import "gerium/vk"

// PushMarker records push_marker(name): opens a named profiler region
// and writes its start timestamp, a no-op when no Profiler is attached
// (spec.md §4.6, "timestamp writes when profiler enabled").
func (cb *CommandBuffer) PushMarker(name string) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	if cb.profiler == nil {
		return nil
	}
	query, ok := cb.profiler.PushTimestamp(name)
	if !ok {
		return nil
	}
	cb.cmds.CmdWriteTimestamp(cb.handle, vk.PipelineStageTopOfPipe, cb.profiler.QueryPool(), query)
	cb.markerDepth++
	return nil
}

// PopMarker records pop_marker(): closes the most recently pushed
// region and writes its end timestamp.
func (cb *CommandBuffer) PopMarker() error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	if cb.profiler == nil {
		return nil
	}
	query, ok := cb.profiler.PopTimestamp()
	if !ok {
		return nil
	}
	cb.cmds.CmdWriteTimestamp(cb.handle, vk.PipelineStageBottomOfPipe, cb.profiler.QueryPool(), query)
	if cb.markerDepth > 0 {
		cb.markerDepth--
	}
	return nil
}
