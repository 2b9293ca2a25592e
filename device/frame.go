// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package device

import (
	"fmt"

	"gerium/vk"
)

// frameSlot is the per-in-flight-frame command pool and its
// preallocated primary command buffers (bring-up step 6: "per-frame
// command pools, one per thread" — this is the render thread's pool
// for each frame slot; command.Pool creates the worker threads' own
// secondary-buffer pools).
type frameSlot struct {
	pool    vk.CommandPool
	buffers []vk.CommandBuffer
}

// frameState is the full per-frame record bring-up step 6 produces:
// one frameSlot per in-flight frame, plus the frame counters the
// per-frame loop advances.
type frameState struct {
	slots          []frameSlot
	current        int
	absoluteFrame  uint64
	resizePending  bool
}

func newFrameState(cmds *vk.Commands, device vk.Device, graphicsFamily uint32, maxFrames int, buffersPerFrame uint32) (*frameState, error) {
	fs := &frameState{slots: make([]frameSlot, maxFrames)}
	for i := 0; i < maxFrames; i++ {
		createInfo := vk.CommandPoolCreateInfo{
			SType:            vk.StructureTypeCommandPoolCreateInfo,
			Flags:            uint32(vk.CommandPoolCreateResetCommandBufferBit),
			QueueFamilyIndex: graphicsFamily,
		}
		var pool vk.CommandPool
		if result := cmds.CreateCommandPool(device, &createInfo, &pool); !result.IsSuccess() {
			fs.destroy(cmds, device)
			return nil, fmt.Errorf("device: vkCreateCommandPool failed: %s", result)
		}

		buffers := make([]vk.CommandBuffer, buffersPerFrame)
		if buffersPerFrame > 0 {
			allocInfo := vk.CommandBufferAllocateInfo{
				SType:              vk.StructureTypeCommandBufferAllocateInfo,
				CommandPool:        pool,
				Level:              vk.CommandBufferLevelPrimary,
				CommandBufferCount: buffersPerFrame,
			}
			if result := cmds.AllocateCommandBuffers(device, &allocInfo, &buffers[0]); !result.IsSuccess() {
				cmds.DestroyCommandPool(device, pool)
				fs.destroy(cmds, device)
				return nil, fmt.Errorf("device: vkAllocateCommandBuffers failed: %s", result)
			}
		}

		fs.slots[i] = frameSlot{pool: pool, buffers: buffers}
	}
	return fs, nil
}

func (fs *frameState) destroy(cmds *vk.Commands, device vk.Device) {
	for _, slot := range fs.slots {
		if slot.pool != 0 {
			cmds.DestroyCommandPool(device, slot.pool)
		}
	}
	fs.slots = nil
}

// Frame is the state handed to a caller between NewFrame and Present:
// the acquired swapchain image and the command buffers reserved for
// this frame slot.
type Frame struct {
	Slot          int
	ImageIndex    uint32
	Buffers       []vk.CommandBuffer
	AbsoluteFrame uint64
}

// NewFrame implements the per-frame loop's acquisition step (spec.md
// §4.2): wait the in-flight fence for the next frame slot, reset its
// command pool, and acquire the next swapchain image. Returns
// ErrSkipFrame (not a hard error) when the swapchain needs rebuilding;
// the caller should skip rendering this tick and retry next tick once
// Resize has run.
func (d *Device) NewFrame() (*Frame, error) {
	if d.frames.resizePending {
		return nil, ErrSkipFrame
	}

	slot := d.frames.current
	if err := d.sync.wait(d.cmds, d.handle, slot); err != nil {
		return nil, err
	}

	if result := d.cmds.ResetCommandPool(d.handle, d.frames.slots[slot].pool); !result.IsSuccess() {
		return nil, fmt.Errorf("device: vkResetCommandPool failed: %s", result)
	}

	index, err := d.swapchain.AcquireNextImage(d.cmds, d.handle, d.sync.imageAvailable[slot])
	if err != nil {
		if err == ErrSkipFrame {
			logger.Warn("swapchain out of date, skipping frame", "slot", slot)
			d.frames.resizePending = true
		}
		return nil, err
	}

	firstQuery := uint32(slot) * d.config.QueriesPerFrame * 2
	if d.queries.Count() > 0 && len(d.frames.slots[slot].buffers) > 0 {
		d.queries.Reset(d.cmds, d.frames.slots[slot].buffers[0], firstQuery, d.config.QueriesPerFrame*2)
	}

	d.frames.absoluteFrame++

	return &Frame{
		Slot:          slot,
		ImageIndex:    index,
		Buffers:       d.frames.slots[slot].buffers,
		AbsoluteFrame: d.frames.absoluteFrame,
	}, nil
}

// Present submits the frame's command buffers to the graphics queue
// and presents the acquired image, signaling the in-flight fence so
// the next NewFrame for this slot can reuse it. Advances to the next
// frame slot on success or on a transient ErrSkipFrame.
func (d *Device) Present(frame *Frame, submitted []vk.CommandBuffer) error {
	slot := frame.Slot
	waitStage := vk.PipelineStageColorAttachmentOut

	var submitInfo vk.SubmitInfo
	submitInfo.SType = vk.StructureTypeSubmitInfo
	submitInfo.WaitSemaphoreCount = 1
	submitInfo.PWaitSemaphores = &d.sync.imageAvailable[slot]
	submitInfo.PWaitDstStageMask = &waitStage
	submitInfo.SignalSemaphoreCount = 1
	submitInfo.PSignalSemaphores = &d.sync.renderFinished[slot]
	if len(submitted) > 0 {
		submitInfo.CommandBufferCount = uint32(len(submitted))
		submitInfo.PCommandBuffers = &submitted[0]
	}

	if result := d.cmds.QueueSubmit(d.graphics, 1, &submitInfo, d.sync.inFlight[slot]); !result.IsSuccess() {
		return fmt.Errorf("device: vkQueueSubmit failed: %s", result)
	}

	presentErr := d.swapchain.Present(d.cmds, d.graphics, d.sync.renderFinished[slot], frame.ImageIndex)
	d.frames.current = (slot + 1) % len(d.frames.slots)
	if presentErr == ErrSkipFrame {
		d.frames.resizePending = true
		return ErrSkipFrame
	}
	return presentErr
}

// Resize drains the GPU, recreates the swapchain at the given size,
// and clears the pending-resize flag. The caller is responsible for
// rebuilding any framebuffers that referenced the old swapchain
// images before calling this, and any frame-graph targets after.
func (d *Device) Resize(width, height uint32) error {
	logger.Info("resizing swapchain", "width", width, "height", height)
	if err := d.WaitIdle(); err != nil {
		return err
	}
	swapchain, err := newSwapchain(d.cmds, d.physicalDevice, d.handle, d.surface, width, height, d.swapchain)
	if err != nil {
		logger.Error("swapchain recreation failed", "error", err)
		return err
	}
	d.swapchain = swapchain
	d.frames.resizePending = false
	return nil
}

// Swapchain returns the current swapchain, for resource factories that
// build framebuffers from its images.
func (d *Device) Swapchain() *Swapchain { return d.swapchain }

// AbsoluteFrame returns the monotonically increasing frame counter
// advanced by NewFrame.
func (d *Device) AbsoluteFrame() uint64 { return d.frames.absoluteFrame }
