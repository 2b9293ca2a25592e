// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"

	"gerium/resource"
	"gerium/vk"
)

// FillBuffer records fill_buffer(buffer, offset, size, value).
func (cb *CommandBuffer) FillBuffer(h resource.BufferHandle, offset, size uint64, value uint32) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	buf, vkOffset, err := cb.resolveBuffer(h, offset)
	if err != nil {
		return err
	}
	cb.cmds.CmdFillBuffer(cb.handle, buf, vkOffset, size, value)
	return nil
}

// CopyBuffer records copy_buffer(src, src_offset, dst, dst_offset, size).
func (cb *CommandBuffer) CopyBuffer(src resource.BufferHandle, srcOffset uint64, dst resource.BufferHandle, dstOffset, size uint64) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	srcBuf, srcVkOffset, err := cb.resolveBuffer(src, srcOffset)
	if err != nil {
		return err
	}
	dstBuf, dstVkOffset, err := cb.resolveBuffer(dst, dstOffset)
	if err != nil {
		return err
	}
	cb.cmds.CmdCopyBuffer(cb.handle, srcBuf, dstBuf, srcVkOffset, dstVkOffset, size)
	return nil
}

// CopyBufferToTexture records copy_buffer_to_texture(src, dst,
// mip_level), copying the whole extent of that mip. The destination
// texture must already be in TransferDstOptimal layout (call
// BarrierTextureWrite with TextureUsageTransferDst first).
func (cb *CommandBuffer) CopyBufferToTexture(src resource.BufferHandle, srcOffset uint64, dst resource.TextureHandle, mipLevel uint32) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	srcBuf, srcVkOffset, err := cb.resolveBuffer(src, srcOffset)
	if err != nil {
		return err
	}
	tex := cb.res.Texture(dst)
	if tex == nil {
		return fmt.Errorf("command: copy_buffer_to_texture: stale texture handle")
	}
	extent := mipExtent(tex.Extent, mipLevel)
	region := vk.BufferImageCopy{
		BufferOffset:     srcVkOffset,
		ImageSubresource: vk.ImageSubresourceLayers{AspectMask: vk.ImageAspectColor, MipLevel: mipLevel, LayerCount: 1},
		ImageExtent:      extent,
	}
	cb.cmds.CmdCopyBufferToImage(cb.handle, srcBuf, tex.Handle, tex.Layout, []vk.BufferImageCopy{region})
	return nil
}

func mipExtent(base vk.Extent3D, level uint32) vk.Extent3D {
	e := base
	for i := uint32(0); i < level; i++ {
		if e.Width > 1 {
			e.Width /= 2
		}
		if e.Height > 1 {
			e.Height /= 2
		}
		if e.Depth > 1 {
			e.Depth /= 2
		}
	}
	return e
}

// GenerateMipmaps records generate_mipmaps(texture): blits each mip
// level from the one above it, sandwiching every blit between a
// TransferSrc barrier on the source mip and a TransferDst barrier on
// the destination mip, and finalizes every mip to ShaderReadOnlyOptimal
// once the chain completes (spec.md §4.5).
func (cb *CommandBuffer) GenerateMipmaps(h resource.TextureHandle) error {
	if cb.state != StateRecording {
		return ErrNotRecording
	}
	tex := cb.res.Texture(h)
	if tex == nil {
		return fmt.Errorf("command: generate_mipmaps: stale texture handle")
	}
	if tex.MipLevels < 2 {
		return nil
	}

	cb.emitTextureBarrier(h, textureUsageScope(TextureUsageTransferSrc))

	for level := uint32(1); level < tex.MipLevels; level++ {
		cb.emitMipBarrier(tex, level, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal, 0, vk.AccessTransferWrite, vk.PipelineStageTransfer)

		srcExtent := mipExtent(tex.Extent, level-1)
		dstExtent := mipExtent(tex.Extent, level)
		blit := vk.ImageBlit{
			SrcSubresource: vk.ImageSubresourceLayers{AspectMask: vk.ImageAspectColor, MipLevel: level - 1, LayerCount: 1},
			SrcOffsets:     [2]vk.Offset3D{{}, {X: int32(srcExtent.Width), Y: int32(srcExtent.Height), Z: 1}},
			DstSubresource: vk.ImageSubresourceLayers{AspectMask: vk.ImageAspectColor, MipLevel: level, LayerCount: 1},
			DstOffsets:     [2]vk.Offset3D{{}, {X: int32(dstExtent.Width), Y: int32(dstExtent.Height), Z: 1}},
		}
		cb.cmds.CmdBlitImage(cb.handle, tex.Handle, vk.ImageLayoutTransferSrcOptimal, tex.Handle, vk.ImageLayoutTransferDstOptimal, []vk.ImageBlit{blit}, vk.FilterLinear)

		cb.emitMipBarrier(tex, level, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutTransferSrcOptimal, vk.AccessTransferWrite, vk.AccessTransferRead, vk.PipelineStageTransfer)
	}

	tex.Layout = vk.ImageLayoutTransferSrcOptimal
	tex.LastAccess = vk.AccessTransferWrite
	tex.LastStage = vk.PipelineStageTransfer
	cb.emitTextureBarrier(h, textureUsageScope(TextureUsageShaderRead))
	return nil
}

// emitMipBarrier transitions a single mip level of tex, independent of
// the whole-resource tracking emitTextureBarrier uses — generate_mipmaps
// needs per-mip transitions mid-chain, while the resource's stored
// Layout/LastAccess/LastStage only need to reflect the final state once
// the whole chain finishes.
func (cb *CommandBuffer) emitMipBarrier(tex *resource.Texture, level uint32, oldLayout, newLayout vk.ImageLayout, srcAccess, dstAccess vk.AccessFlags, stage vk.PipelineStageFlagBits) {
	barrier := vk.ImageMemoryBarrier{
		SType:            vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:    srcAccess,
		DstAccessMask:    dstAccess,
		OldLayout:        oldLayout,
		NewLayout:        newLayout,
		Image:            tex.Handle,
		SubresourceRange: vk.ImageSubresourceRange{AspectMask: vk.ImageAspectColor, BaseMipLevel: level, LevelCount: 1, LayerCount: 1},
	}
	cb.cmds.CmdPipelineBarrier(cb.handle, stage, stage, nil, []vk.ImageMemoryBarrier{barrier})
}
