// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
	"unsafe"

	"gerium/resource"
	"gerium/vk"
)

// SetViewport records set_viewport(x,y,w,h,min_d,max_d). Vulkan's
// viewport origin is top-left with Y growing downward, the opposite
// of this runtime's framebuffer convention, so spec.md §4.5 flips it:
// "y' = fb_h - y, h' = -h" — a negative-height viewport is valid with
// VK_KHR_maintenance1 (core since 1.1) and is what every desktop
// Vulkan driver this runtime targets supports.
func (cb *CommandBuffer) SetViewport(x, y, w, h, minDepth, maxDepth float32, fbHeight float32) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	viewport := vk.Viewport{
		X:        x,
		Y:        fbHeight - y,
		Width:    w,
		Height:   -h,
		MinDepth: minDepth,
		MaxDepth: maxDepth,
	}
	cb.cmds.CmdSetViewport(cb.handle, &viewport)
	return nil
}

// SetScissor records set_scissor(x,y,w,h).
func (cb *CommandBuffer) SetScissor(x, y int32, w, h uint32) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	scissor := vk.Rect2D{Offset: vk.Offset2D{X: x, Y: y}, Extent: vk.Extent2D{Width: w, Height: h}}
	cb.cmds.CmdSetScissor(cb.handle, &scissor)
	return nil
}

// BindTechnique records bind_technique(Pipeline) — a no-op if this
// buffer already has the same pipeline bound, matching spec.md §4.5.
func (cb *CommandBuffer) BindTechnique(h resource.PipelineHandle) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	if cb.hasBoundPipeline && cb.boundPipeline == h {
		return nil
	}
	pipeline := cb.res.Pipeline(h)
	if pipeline == nil {
		return fmt.Errorf("command: bind_technique: stale pipeline handle")
	}
	cb.cmds.CmdBindPipeline(cb.handle, pipeline.BindPoint, pipeline.Handle)
	cb.boundPipeline = h
	cb.hasBoundPipeline = true
	return nil
}

// BindVertexBuffer records bind_vertex_buffer(Buffer, binding,
// offset), resolving a Dynamic buffer's parent vk.Buffer and global
// ring offset transparently (spec.md §4.5, "resolves parent+
// global_offset for dynamic sub-allocations").
func (cb *CommandBuffer) BindVertexBuffer(h resource.BufferHandle, binding uint32, offset uint64) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	buf, vkOffset, err := cb.resolveBuffer(h, offset)
	if err != nil {
		return err
	}
	cb.cmds.CmdBindVertexBuffers(cb.handle, binding, 1, &buf, &vkOffset)
	return nil
}

// BindIndexBuffer records bind_index_buffer(Buffer, offset, index_type).
func (cb *CommandBuffer) BindIndexBuffer(h resource.BufferHandle, offset uint64, indexType uint32) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	buf, vkOffset, err := cb.resolveBuffer(h, offset)
	if err != nil {
		return err
	}
	cb.cmds.CmdBindIndexBuffer(cb.handle, buf, vkOffset, indexType)
	return nil
}

// resolveBuffer returns the vk.Buffer and absolute offset a bind call
// should use: for an owned buffer that's its own handle plus the
// caller offset; for a Dynamic sub-allocation it's the ring's parent
// buffer plus GlobalOffset+caller offset.
func (cb *CommandBuffer) resolveBuffer(h resource.BufferHandle, offset uint64) (vk.Buffer, uint64, error) {
	buf := cb.res.Buffer(h)
	if buf == nil {
		return 0, 0, fmt.Errorf("command: stale buffer handle")
	}
	if buf.Usage == resource.BufferUsageDynamic {
		return buf.Parent, buf.GlobalOffset + offset, nil
	}
	return buf.Handle, offset, nil
}

// BindDescriptorSet records bind_descriptor_set(DescriptorSet, set):
// flushes any writes staged since the last bind (spec.md §4.9), then
// binds with dynamic offsets for each dynamic-UBO/SSBO binding in
// declaration order.
func (cb *CommandBuffer) BindDescriptorSet(h resource.DescriptorSetHandle, set uint32, pipeline resource.PipelineHandle) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	p := cb.res.Pipeline(pipeline)
	if p == nil {
		return fmt.Errorf("command: bind_descriptor_set: stale pipeline handle")
	}
	if cb.res.IsDirty(h) {
		if err := cb.res.Flush(h); err != nil {
			return err
		}
	}
	ds := cb.res.DescriptorSetVk(h)
	if ds == 0 {
		return fmt.Errorf("command: bind_descriptor_set: stale descriptor set handle")
	}
	offsets := cb.res.DynamicOffsets(h)
	cb.cmds.CmdBindDescriptorSetsDynamic(cb.handle, p.BindPoint, p.Layout, set, ds, offsets)
	if int(set) < len(cb.boundDescriptors) {
		cb.boundDescriptors[set] = boundSet{set: h, bound: true}
	}
	return nil
}

// Draw records draw(first_vertex, vertex_count, first_instance, instance_count).
func (cb *CommandBuffer) Draw(firstVertex, vertexCount, firstInstance, instanceCount uint32) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	cb.cmds.CmdDraw(cb.handle, vertexCount, instanceCount, firstVertex, firstInstance)
	return nil
}

// DrawIndexed records draw_indexed.
func (cb *CommandBuffer) DrawIndexed(firstIndex, indexCount int32, vertexOffset int32, firstInstance, instanceCount uint32) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	cb.cmds.CmdDrawIndexed(cb.handle, uint32(indexCount), instanceCount, uint32(firstIndex), vertexOffset, firstInstance)
	return nil
}

// DrawIndirect records draw_indirect(buffer, offset, count_buffer,
// count_offset, max_draws, stride). count_buffer/count_offset support
// VK_KHR_draw_indirect_count when FeatureDrawIndirectCount is active;
// this runtime's trimmed vk package only wraps the non-count variant,
// so any countBuffer other than the Undefined handle is rejected rather
// than silently ignored.
func (cb *CommandBuffer) DrawIndirect(h resource.BufferHandle, offset uint64, countBuffer resource.BufferHandle, countOffset uint64, maxDraws, stride uint32) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	if !countBuffer.IsUndefined() {
		return fmt.Errorf("command: draw_indirect: count-buffer variant not supported by this runtime's Vulkan binding")
	}
	buf, vkOffset, err := cb.resolveBuffer(h, offset)
	if err != nil {
		return err
	}
	cb.cmds.CmdDrawIndirect(cb.handle, buf, vkOffset, maxDraws, stride)
	return nil
}

// DrawIndexedIndirect records draw_indexed_indirect.
func (cb *CommandBuffer) DrawIndexedIndirect(h resource.BufferHandle, offset uint64, drawCount, stride uint32) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	buf, vkOffset, err := cb.resolveBuffer(h, offset)
	if err != nil {
		return err
	}
	cb.cmds.CmdDrawIndexedIndirect(cb.handle, buf, vkOffset, drawCount, stride)
	return nil
}

// PushConstants records a push-constant update against the bound
// pipeline's layout.
func (cb *CommandBuffer) PushConstants(pipeline resource.PipelineHandle, stages vk.ShaderStageFlagBits, offset uint32, data []byte) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	if len(data) == 0 {
		return nil
	}
	p := cb.res.Pipeline(pipeline)
	if p == nil {
		return fmt.Errorf("command: push_constants: stale pipeline handle")
	}
	cb.cmds.CmdPushConstants(cb.handle, p.Layout, stages, offset, uint32(len(data)), unsafe.Pointer(&data[0]))
	return nil
}

// Dispatch records dispatch(gx,gy,gz) for compute nodes.
func (cb *CommandBuffer) Dispatch(x, y, z uint32) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	cb.cmds.CmdDispatch(cb.handle, x, y, z)
	return nil
}

// BeginRenderPass starts a classic (non-dynamic-rendering) render
// pass, per spec.md §4.4's RenderPass/Framebuffer derivation — this
// runtime's vk package does not wrap VK_KHR_dynamic_rendering, the
// mechanism the teacher's BeginRenderPass uses, so render passes are
// begun the pre-1.3 way here instead.
func (cb *CommandBuffer) BeginRenderPass(pass vk.RenderPass, fb vk.Framebuffer, area vk.Rect2D, clears []vk.ClearValue) error {
	return cb.beginRenderPass(pass, fb, area, clears, vk.SubpassContentsInline)
}

// BeginRenderPassSecondary is BeginRenderPass's counterpart for a node
// whose Prepare callback requested more than one worker (spec.md §5):
// the pass's draw work is recorded into secondary buffers on worker
// goroutines and inlined here with ExecuteCommands, so the primary
// must open the pass with SubpassContentsSecondaryCommandBuffers
// instead of recording directly.
func (cb *CommandBuffer) BeginRenderPassSecondary(pass vk.RenderPass, fb vk.Framebuffer, area vk.Rect2D, clears []vk.ClearValue) error {
	return cb.beginRenderPass(pass, fb, area, clears, vk.SubpassContentsSecondaryCommandBuffers)
}

func (cb *CommandBuffer) beginRenderPass(pass vk.RenderPass, fb vk.Framebuffer, area vk.Rect2D, clears []vk.ClearValue, contents uint32) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	info := vk.RenderPassBeginInfo{
		SType:           vk.StructureTypeRenderPassBeginInfo,
		RenderPass:      pass,
		Framebuffer:     fb,
		RenderArea:      area,
		ClearValueCount: uint32(len(clears)),
	}
	if len(clears) > 0 {
		info.PClearValues = &clears[0]
	}
	cb.cmds.CmdBeginRenderPass(cb.handle, &info, contents)
	return nil
}

// EndRenderPass closes the render pass opened by BeginRenderPass.
func (cb *CommandBuffer) EndRenderPass() error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	cb.cmds.CmdEndRenderPass(cb.handle)
	return nil
}

// BeginSecondary starts recording a secondary buffer that will be
// inlined into a primary's active render pass via ExecuteCommands —
// the per-worker counterpart of Begin for spec.md §5's multi-threaded
// recording model. renderPass/framebuffer must match what the primary
// opened with BeginRenderPassSecondary.
func (cb *CommandBuffer) BeginSecondary(renderPass vk.RenderPass, subpass uint32, framebuffer vk.Framebuffer) error {
	if cb.state == StateRecording {
		return ErrAlreadyRecording
	}
	inheritance := vk.CommandBufferInheritanceInfo{
		SType:       vk.StructureTypeCommandBufferInheritanceInfo,
		RenderPass:  renderPass,
		Subpass:     subpass,
		Framebuffer: framebuffer,
	}
	info := vk.CommandBufferBeginInfo{
		SType:            vk.StructureTypeCommandBufferBeginInfo,
		Flags:            uint32(vk.CommandBufferUsageOneTimeSubmitBit | vk.CommandBufferUsageRenderPassContinueBit),
		PInheritanceInfo: uintptr(unsafe.Pointer(&inheritance)),
	}
	if result := cb.cmds.BeginCommandBuffer(cb.handle, &info); !result.IsSuccess() {
		return fmt.Errorf("command: vkBeginCommandBuffer (secondary) failed: %s", result)
	}
	cb.state = StateRecording
	cb.hasBoundPipeline = false
	for i := range cb.boundDescriptors {
		cb.boundDescriptors[i] = boundSet{}
	}
	cb.markerDepth = 0
	return nil
}

// BeginSecondaryCompute starts recording a secondary buffer for a
// compute node's worker partition — no render pass to inherit, just
// the one-time-submit usage every worker-recorded buffer needs.
func (cb *CommandBuffer) BeginSecondaryCompute() error {
	if cb.state == StateRecording {
		return ErrAlreadyRecording
	}
	info := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: uint32(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if result := cb.cmds.BeginCommandBuffer(cb.handle, &info); !result.IsSuccess() {
		return fmt.Errorf("command: vkBeginCommandBuffer (secondary) failed: %s", result)
	}
	cb.state = StateRecording
	cb.hasBoundPipeline = false
	for i := range cb.boundDescriptors {
		cb.boundDescriptors[i] = boundSet{}
	}
	cb.markerDepth = 0
	return nil
}

// ExecuteCommands inlines already-ended secondary buffers into this
// (primary) buffer's recording — spec.md §5's fan-in step after a
// node's workers finish recording in parallel. Every secondary must be
// in the Executable state (End already called).
func (cb *CommandBuffer) ExecuteCommands(secondaries []*CommandBuffer) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	if len(secondaries) == 0 {
		return nil
	}
	handles := make([]vk.CommandBuffer, len(secondaries))
	for i, s := range secondaries {
		if s.state != StateExecutable {
			return fmt.Errorf("command: execute_commands: secondary %d is not Executable", i)
		}
		handles[i] = s.handle
	}
	cb.cmds.CmdExecuteCommands(cb.handle, handles)
	return nil
}
