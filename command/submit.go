// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"

	"gerium/vk"
)

// Submit records spec.md §4.5's submit(queue, wait): ends recording,
// submits to queue with no semaphores, and when wait is true blocks
// until the queue is idle before returning. Per-frame primary buffers
// reach the GPU through device.Device.Present instead, which attaches
// the swapchain's acquire/present semaphores; Submit is for the
// one-shot work that bring-up's upload path and mipmap generation need
// completed before the caller can proceed (spec.md §4.5's "wait=true"
// case). Secondary command buffers recorded on worker threads are not
// submitted here: they are ended with End and replayed into a primary
// buffer via Execute.
func (cb *CommandBuffer) Submit(queue vk.Queue, wait bool) error {
	if err := cb.end(); err != nil {
		return err
	}
	info := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    &cb.handle,
	}
	if result := cb.cmds.QueueSubmit(queue, 1, &info, 0); !result.IsSuccess() {
		return fmt.Errorf("command: vkQueueSubmit failed: %s", result)
	}
	cb.markPending()
	if wait {
		if result := cb.cmds.QueueWaitIdle(queue); !result.IsSuccess() {
			return fmt.Errorf("command: vkQueueWaitIdle failed: %s", result)
		}
		cb.markFree()
	}
	return nil
}

// Execute records execute(secondary_cmds[]): replays a set of already-
// ended secondary buffers into this (primary) buffer's current render
// pass via vkCmdExecuteCommands. Every entry in secondary must be in
// Executable state (its own end() already called).
func (cb *CommandBuffer) Execute(secondary []*CommandBuffer) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	handles := make([]vk.CommandBuffer, len(secondary))
	for i, s := range secondary {
		if s.state != StateExecutable {
			return fmt.Errorf("command: execute: secondary buffer %d is not Executable", i)
		}
		handles[i] = s.handle
	}
	cb.cmds.CmdExecuteCommands(cb.handle, handles)
	return nil
}
