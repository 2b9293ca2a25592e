// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package resource

import (
	"fmt"
	"unsafe"

	"gerium/internal/logging"
	"gerium/vk"
)

var streamerLogger = logging.For("gerium:streamer")

// UploadRequest is one texture upload queued on a Streamer: Data is
// copied into Texture's top mip level, and Done (if non-nil) is
// called from the streamer goroutine once the transfer completes or
// fails, matching original_source/example/AsyncLoader.hpp's
// completion-callback shape (spec.md §9's "Coroutine/async upload
// thread" redesign note).
type UploadRequest struct {
	Texture TextureHandle
	Data    []byte
	Done    func(error)
}

// Streamer is a dedicated goroutine draining a channel of texture
// upload requests on the transfer queue, so the render thread never
// blocks on a host-to-device copy. Grounded on
// original_source/example/AsyncLoader.hpp: one worker, one command
// pool, one fence, requests served strictly in submission order.
type Streamer struct {
	mgr     *Manager
	queue   vk.Queue
	pool    vk.CommandPool
	fence   vk.Fence
	cb      vk.CommandBuffer
	reqs    chan UploadRequest
	stopped chan struct{}
}

// NewStreamer starts the upload goroutine on queueFamily/queue — the
// device's dedicated transfer queue when one exists, per spec.md §4.2.
// queueDepth bounds how many pending uploads the caller can enqueue
// before Upload blocks.
func NewStreamer(mgr *Manager, queueFamily uint32, queue vk.Queue, queueDepth int) (*Streamer, error) {
	cmds := mgr.dev.Commands()
	dh := mgr.dev.Handle()

	poolInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            uint32(vk.CommandPoolCreateResetCommandBufferBit | vk.CommandPoolCreateTransientBit),
		QueueFamilyIndex: queueFamily,
	}
	var pool vk.CommandPool
	if result := cmds.CreateCommandPool(dh, &poolInfo, &pool); !result.IsSuccess() {
		return nil, fmtErr("vkCreateCommandPool (streamer)", result)
	}

	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	var cb vk.CommandBuffer
	if result := cmds.AllocateCommandBuffers(dh, &allocInfo, &cb); !result.IsSuccess() {
		cmds.DestroyCommandPool(dh, pool)
		return nil, fmtErr("vkAllocateCommandBuffers (streamer)", result)
	}

	var fence vk.Fence
	if result := cmds.CreateFence(dh, false, &fence); !result.IsSuccess() {
		cmds.DestroyCommandPool(dh, pool)
		return nil, fmtErr("vkCreateFence (streamer)", result)
	}

	if queueDepth <= 0 {
		queueDepth = 8
	}
	s := &Streamer{
		mgr:     mgr,
		queue:   queue,
		pool:    pool,
		fence:   fence,
		cb:      cb,
		reqs:    make(chan UploadRequest, queueDepth),
		stopped: make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// Upload enqueues req for asynchronous transfer, blocking only if the
// streamer's internal queue is full.
func (s *Streamer) Upload(req UploadRequest) {
	s.reqs <- req
}

// Close stops accepting new uploads and waits for the worker goroutine
// to drain whatever is already queued before releasing its command
// pool and fence.
func (s *Streamer) Close() {
	close(s.reqs)
	<-s.stopped
	cmds := s.mgr.dev.Commands()
	dh := s.mgr.dev.Handle()
	cmds.DestroyFence(dh, s.fence)
	cmds.DestroyCommandPool(dh, s.pool)
}

func (s *Streamer) run() {
	defer close(s.stopped)
	for req := range s.reqs {
		err := s.upload(req)
		if err != nil {
			streamerLogger.Error("upload failed", "error", err)
		} else {
			streamerLogger.Debug("upload complete", "bytes", len(req.Data))
		}
		if req.Done != nil {
			req.Done(err)
		}
	}
}

// upload stages req.Data into a Staging buffer, records a one-shot
// transfer on the streamer's dedicated command buffer (layout
// transition, copy, layout transition to shader-read), and blocks this
// goroutine until the transfer queue signals completion.
func (s *Streamer) upload(req UploadRequest) error {
	tex := s.mgr.Texture(req.Texture)
	if tex == nil {
		return fmt.Errorf("resource: upload: invalid texture handle")
	}

	staging, err := s.mgr.CreateBuffer(BufferCreation{
		Size:  uint64(len(req.Data)),
		Usage: BufferUsageStaging,
		Name:  "streamer-staging",
	})
	if err != nil {
		return fmt.Errorf("resource: upload: staging buffer: %w", err)
	}
	defer s.mgr.DestroyBuffer(staging)

	ptr, err := s.mgr.Map(staging)
	if err != nil {
		return fmt.Errorf("resource: upload: map staging: %w", err)
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(req.Data)), req.Data)
	s.mgr.Unmap(staging)

	cmds := s.mgr.dev.Commands()
	dh := s.mgr.dev.Handle()

	if result := cmds.ResetCommandPool(dh, s.pool); !result.IsSuccess() {
		return fmtErr("vkResetCommandPool (streamer)", result)
	}
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: uint32(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if result := cmds.BeginCommandBuffer(s.cb, &beginInfo); !result.IsSuccess() {
		return fmtErr("vkBeginCommandBuffer (streamer)", result)
	}

	subresource := vk.ImageSubresourceRange{
		AspectMask: vk.ImageAspectColor,
		LevelCount: 1,
		LayerCount: 1,
	}
	toDst := vk.ImageMemoryBarrier{
		SType:            vk.StructureTypeImageMemoryBarrier,
		DstAccessMask:    vk.AccessTransferWrite,
		OldLayout:        vk.ImageLayoutUndefined,
		NewLayout:        vk.ImageLayoutTransferDstOptimal,
		Image:            tex.Handle,
		SubresourceRange: subresource,
	}
	cmds.CmdPipelineBarrier(s.cb, vk.PipelineStageTopOfPipe, vk.PipelineStageTransfer, nil, []vk.ImageMemoryBarrier{toDst})

	region := vk.BufferImageCopy{
		ImageSubresource: vk.ImageSubresourceLayers{AspectMask: vk.ImageAspectColor, LayerCount: 1},
		ImageExtent:      tex.Extent,
	}
	bufHandle := s.mgr.Buffer(staging).Handle
	cmds.CmdCopyBufferToImage(s.cb, bufHandle, tex.Handle, vk.ImageLayoutTransferDstOptimal, []vk.BufferImageCopy{region})

	toRead := vk.ImageMemoryBarrier{
		SType:            vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:    vk.AccessTransferWrite,
		DstAccessMask:    vk.AccessShaderRead,
		OldLayout:        vk.ImageLayoutTransferDstOptimal,
		NewLayout:        vk.ImageLayoutShaderReadOnlyOptimal,
		Image:            tex.Handle,
		SubresourceRange: subresource,
	}
	cmds.CmdPipelineBarrier(s.cb, vk.PipelineStageTransfer, vk.PipelineStageFragmentShader, nil, []vk.ImageMemoryBarrier{toRead})

	if result := cmds.EndCommandBuffer(s.cb); !result.IsSuccess() {
		return fmtErr("vkEndCommandBuffer (streamer)", result)
	}

	submit := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    &s.cb,
	}
	if result := cmds.QueueSubmit(s.queue, 1, &submit, s.fence); !result.IsSuccess() {
		return fmtErr("vkQueueSubmit (streamer)", result)
	}
	if result := cmds.WaitForFences(dh, s.fence, ^uint64(0)); !result.IsSuccess() {
		return fmtErr("vkWaitForFences (streamer)", result)
	}
	if result := cmds.ResetFences(dh, s.fence); !result.IsSuccess() {
		return fmtErr("vkResetFences (streamer)", result)
	}

	tex.Layout = vk.ImageLayoutShaderReadOnlyOptimal
	return nil
}
