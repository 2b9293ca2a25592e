// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package command

import (
	"gerium/resource"
	"gerium/vk"
)

// usageScope is the (access, stage) a resource usage implies — what
// spec.md §4.5's barrier_buffer_{read,write}/barrier_texture_{read,write}
// resolve a logical usage into before computing the minimum transition.
// There is no single teacher helper this is grounded on (hal/vulkan's
// TransitionBuffers/TransitionTextures call usage-to-access/stage
// helpers that were never found alongside them); the mapping below is
// the standard Vulkan synchronization table for each usage instead.
type usageScope struct {
	access vk.AccessFlags
	stage  vk.PipelineStageFlagBits
	layout vk.ImageLayout // textures only
}

// Buffer usages spec.md §4.5 names.
const (
	BufferUsageVertex BufferUsage = iota
	BufferUsageIndex
	BufferUsageUniform
	BufferUsageShaderRead
	BufferUsageShaderWrite
	BufferUsageIndirect
	BufferUsageTransferSrc
	BufferUsageTransferDst
)

// BufferUsage names the logical access a barrier_buffer_{read,write}
// call is transitioning toward.
type BufferUsage int

func bufferUsageScope(u BufferUsage) usageScope {
	switch u {
	case BufferUsageVertex:
		return usageScope{vk.AccessVertexAttributeRead, vk.PipelineStageVertexInput, 0}
	case BufferUsageIndex:
		return usageScope{vk.AccessIndexRead, vk.PipelineStageVertexInput, 0}
	case BufferUsageUniform:
		return usageScope{vk.AccessUniformRead, vk.PipelineStageVertexShader | vk.PipelineStageFragmentShader | vk.PipelineStageComputeShader, 0}
	case BufferUsageShaderRead:
		return usageScope{vk.AccessShaderRead, vk.PipelineStageVertexShader | vk.PipelineStageFragmentShader | vk.PipelineStageComputeShader, 0}
	case BufferUsageShaderWrite:
		return usageScope{vk.AccessShaderWrite, vk.PipelineStageVertexShader | vk.PipelineStageFragmentShader | vk.PipelineStageComputeShader, 0}
	case BufferUsageIndirect:
		return usageScope{vk.AccessIndirectCommandRead, vk.PipelineStageDrawIndirect, 0}
	case BufferUsageTransferSrc:
		return usageScope{vk.AccessTransferRead, vk.PipelineStageTransfer, 0}
	case BufferUsageTransferDst:
		return usageScope{vk.AccessTransferWrite, vk.PipelineStageTransfer, 0}
	default:
		return usageScope{vk.AccessMemoryRead, vk.PipelineStageAllCommands, 0}
	}
}

// TextureUsage names the logical access a barrier_texture_{read,write}
// call is transitioning toward.
type TextureUsage int

const (
	TextureUsageShaderRead TextureUsage = iota
	TextureUsageShaderWrite
	TextureUsageColorAttachment
	TextureUsageDepthStencilAttachment
	TextureUsageTransferSrc
	TextureUsageTransferDst
	TextureUsagePresent
)

func textureUsageScope(u TextureUsage) usageScope {
	switch u {
	case TextureUsageShaderRead:
		return usageScope{vk.AccessShaderRead, vk.PipelineStageFragmentShader | vk.PipelineStageComputeShader, vk.ImageLayoutShaderReadOnlyOptimal}
	case TextureUsageShaderWrite:
		return usageScope{vk.AccessShaderWrite, vk.PipelineStageComputeShader, vk.ImageLayoutGeneral}
	case TextureUsageColorAttachment:
		return usageScope{vk.AccessColorAttachmentRead | vk.AccessColorAttachmentWrite, vk.PipelineStageColorAttachmentOut, vk.ImageLayoutColorAttachmentOptimal}
	case TextureUsageDepthStencilAttachment:
		return usageScope{vk.AccessDepthStencilAttachmentRead | vk.AccessDepthStencilAttachmentWrite, vk.PipelineStageEarlyFragmentTests | vk.PipelineStageLateFragmentTests, vk.ImageLayoutDepthStencilAttachmentOptimal}
	case TextureUsageTransferSrc:
		return usageScope{vk.AccessTransferRead, vk.PipelineStageTransfer, vk.ImageLayoutTransferSrcOptimal}
	case TextureUsageTransferDst:
		return usageScope{vk.AccessTransferWrite, vk.PipelineStageTransfer, vk.ImageLayoutTransferDstOptimal}
	case TextureUsagePresent:
		return usageScope{0, vk.PipelineStageBottomOfPipe, vk.ImageLayoutPresentSrcKHR}
	default:
		return usageScope{vk.AccessMemoryRead, vk.PipelineStageAllCommands, vk.ImageLayoutGeneral}
	}
}

// emitBufferBarrier records the minimum vkCmdPipelineBarrier between a
// buffer's last recorded access scope and to, then updates the stored
// scope to to.
func (cb *CommandBuffer) emitBufferBarrier(h resource.BufferHandle, to usageScope) {
	buf := cb.res.Buffer(h)
	if buf == nil {
		return
	}
	vkBuf := buf.Handle
	var offset uint64
	if buf.Usage == resource.BufferUsageDynamic {
		vkBuf = buf.Parent
		offset = buf.GlobalOffset
	}
	srcStage := buf.LastStage
	if srcStage == 0 {
		srcStage = vk.PipelineStageTopOfPipe
	}
	barrier := vk.BufferMemoryBarrier{
		SType:         vk.StructureTypeBufferMemoryBarrier,
		SrcAccessMask: buf.LastAccess,
		DstAccessMask: to.access,
		Buffer:        vkBuf,
		Offset:        offset,
		Size:          buf.Size,
	}
	cb.cmds.CmdPipelineBarrier(cb.handle, srcStage, to.stage, []vk.BufferMemoryBarrier{barrier}, nil)
	buf.LastAccess = to.access
	buf.LastStage = to.stage
}

// BarrierBufferRead records barrier_buffer_read: transitions buf to
// usage u, where u is a read-only access (uniform, vertex, index,
// shader-read, indirect, transfer-src).
func (cb *CommandBuffer) BarrierBufferRead(h resource.BufferHandle, u BufferUsage) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	cb.emitBufferBarrier(h, bufferUsageScope(u))
	return nil
}

// BarrierBufferWrite records barrier_buffer_write: transitions buf to
// a write-capable usage (shader-write, transfer-dst).
func (cb *CommandBuffer) BarrierBufferWrite(h resource.BufferHandle, u BufferUsage) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	cb.emitBufferBarrier(h, bufferUsageScope(u))
	return nil
}

// emitTextureBarrier records the minimum vkCmdPipelineBarrier between
// a texture's last recorded scope and to, including the layout
// transition, then updates the stored scope.
func (cb *CommandBuffer) emitTextureBarrier(h resource.TextureHandle, to usageScope) {
	tex := cb.res.Texture(h)
	if tex == nil {
		return
	}
	srcStage := tex.LastStage
	if srcStage == 0 {
		srcStage = vk.PipelineStageTopOfPipe
	}
	aspect := vk.ImageAspectColor
	barrier := vk.ImageMemoryBarrier{
		SType:            vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:    tex.LastAccess,
		DstAccessMask:    to.access,
		OldLayout:        tex.Layout,
		NewLayout:        to.layout,
		Image:            tex.Handle,
		SubresourceRange: vk.ImageSubresourceRange{AspectMask: aspect, LevelCount: tex.MipLevels, LayerCount: 1},
	}
	cb.cmds.CmdPipelineBarrier(cb.handle, srcStage, to.stage, nil, []vk.ImageMemoryBarrier{barrier})
	tex.LastAccess = to.access
	tex.LastStage = to.stage
	tex.Layout = to.layout
}

// BarrierTextureRead records barrier_texture_read.
func (cb *CommandBuffer) BarrierTextureRead(h resource.TextureHandle, u TextureUsage) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	cb.emitTextureBarrier(h, textureUsageScope(u))
	return nil
}

// BarrierTextureWrite records barrier_texture_write.
func (cb *CommandBuffer) BarrierTextureWrite(h resource.TextureHandle, u TextureUsage) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	cb.emitTextureBarrier(h, textureUsageScope(u))
	return nil
}
