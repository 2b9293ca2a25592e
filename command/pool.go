// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"

	"gerium/device"
	"gerium/resource"
	"gerium/vk"
)

// Pool implements spec.md §4.5.1: "kMaxFrames x (1 + worker_threads)
// pools. Slot 0 of each frame holds primary buffers; slots 1..N are
// per-worker secondary pools." Bring-up step 6 already allocates slot
// 0 per frame (device.Device's internal frameState, one VkCommandPool
// per in-flight frame holding CommandBuffersPerFrame primary buffers);
// Pool owns the worker secondary-pool partition on top of that and
// hands out wrapped *CommandBuffer values from both through one API,
// so callers never touch device.Frame.Buffers directly.
type Pool struct {
	dev             *device.Device
	res             *resource.Manager
	buffersPerFrame uint32
	workerThreads   uint32

	primaryCursor []uint32

	secondaryPools  [][]vk.CommandPool
	secondaryBufs   [][][]vk.CommandBuffer
	secondaryCursor [][]uint32
}

// NewPool creates the secondary-pool partition and sizes the cursors
// for both primary and secondary acquisition. dev must already have
// completed bring-up (its primary per-frame pools exist).
func NewPool(dev *device.Device, res *resource.Manager) (*Pool, error) {
	cfg := dev.Config()
	buffersPerFrame := cfg.CommandBuffersPerFrame
	workerThreads := cfg.WorkerThreads
	graphicsFamily, _, _ := dev.QueueFamilies()

	p := &Pool{
		dev:             dev,
		res:             res,
		buffersPerFrame: buffersPerFrame,
		workerThreads:   workerThreads,
		primaryCursor:   make([]uint32, device.MaxFrames),
		secondaryPools:  make([][]vk.CommandPool, device.MaxFrames),
		secondaryBufs:   make([][][]vk.CommandBuffer, device.MaxFrames),
		secondaryCursor: make([][]uint32, device.MaxFrames),
	}

	cmds := dev.Commands()
	handle := dev.Handle()
	for frame := 0; frame < device.MaxFrames; frame++ {
		p.secondaryPools[frame] = make([]vk.CommandPool, workerThreads)
		p.secondaryBufs[frame] = make([][]vk.CommandBuffer, workerThreads)
		p.secondaryCursor[frame] = make([]uint32, workerThreads)

		for worker := uint32(0); worker < workerThreads; worker++ {
			createInfo := vk.CommandPoolCreateInfo{
				SType:            vk.StructureTypeCommandPoolCreateInfo,
				Flags:            uint32(vk.CommandPoolCreateResetCommandBufferBit),
				QueueFamilyIndex: graphicsFamily,
			}
			var vkPool vk.CommandPool
			if result := cmds.CreateCommandPool(handle, &createInfo, &vkPool); !result.IsSuccess() {
				p.destroyPartial(cmds, handle)
				return nil, fmt.Errorf("command: vkCreateCommandPool (worker %d, frame %d) failed: %s", worker, frame, result)
			}
			p.secondaryPools[frame][worker] = vkPool

			bufs := make([]vk.CommandBuffer, buffersPerFrame)
			if buffersPerFrame > 0 {
				allocInfo := vk.CommandBufferAllocateInfo{
					SType:              vk.StructureTypeCommandBufferAllocateInfo,
					CommandPool:        vkPool,
					Level:              vk.CommandBufferLevelSecondary,
					CommandBufferCount: buffersPerFrame,
				}
				if result := cmds.AllocateCommandBuffers(handle, &allocInfo, &bufs[0]); !result.IsSuccess() {
					p.destroyPartial(cmds, handle)
					return nil, fmt.Errorf("command: vkAllocateCommandBuffers (worker %d, frame %d) failed: %s", worker, frame, result)
				}
			}
			p.secondaryBufs[frame][worker] = bufs
		}
	}
	return p, nil
}

func (p *Pool) destroyPartial(cmds *vk.Commands, handle vk.Device) {
	for _, pools := range p.secondaryPools {
		for _, pool := range pools {
			if pool != 0 {
				cmds.DestroyCommandPool(handle, pool)
			}
		}
	}
}

// Destroy releases every worker secondary pool this Pool owns. The
// primary per-frame pools (slot 0) belong to device.Device and are
// released by its own Destroy.
func (p *Pool) Destroy() {
	p.destroyPartial(p.dev.Commands(), p.dev.Handle())
	p.secondaryPools = nil
	p.secondaryBufs = nil
}

// ResetFrame resets the per-frame acquisition cursors and
// vkResetCommandPool's every worker pool for that frame slot — called
// once per frame, mirroring device.NewFrame's reset of the primary
// pool for the same slot. slot must be < device.MaxFrames.
func (p *Pool) ResetFrame(slot int) error {
	p.primaryCursor[slot] = 0
	cmds := p.dev.Commands()
	handle := p.dev.Handle()
	for worker, pool := range p.secondaryPools[slot] {
		p.secondaryCursor[slot][worker] = 0
		if result := cmds.ResetCommandPool(handle, pool); !result.IsSuccess() {
			return fmt.Errorf("command: vkResetCommandPool (worker pool) failed: %s", result)
		}
	}
	return nil
}

// GetPrimary returns the next unused primary command buffer for
// frame's slot, in Free state ready for Begin. Exceeding
// buffers_per_frame acquisitions within one frame is the logic error
// spec.md §4.5.1 describes.
func (p *Pool) GetPrimary(frame *device.Frame) (*CommandBuffer, error) {
	cursor := p.primaryCursor[frame.Slot]
	if cursor >= uint32(len(frame.Buffers)) {
		return nil, ErrPoolExhausted
	}
	p.primaryCursor[frame.Slot] = cursor + 1
	return newCommandBuffer(frame.Buffers[cursor], p.dev.Commands(), p.res, vk.CommandBufferLevelPrimary), nil
}

// GetSecondary returns the next unused secondary command buffer for
// the given frame slot and worker index (0-based, < worker_threads).
func (p *Pool) GetSecondary(slot int, worker int) (*CommandBuffer, error) {
	if worker < 0 || worker >= len(p.secondaryBufs[slot]) {
		return nil, fmt.Errorf("command: worker index %d out of range", worker)
	}
	bufs := p.secondaryBufs[slot][worker]
	cursor := p.secondaryCursor[slot][worker]
	if cursor >= uint32(len(bufs)) {
		return nil, ErrPoolExhausted
	}
	p.secondaryCursor[slot][worker] = cursor + 1
	return newCommandBuffer(bufs[cursor], p.dev.Commands(), p.res, vk.CommandBufferLevelSecondary), nil
}

// WorkerThreads returns the configured secondary-pool count per frame.
func (p *Pool) WorkerThreads() uint32 { return p.workerThreads }
