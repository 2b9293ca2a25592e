// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package resource

import (
	"fmt"

	"gerium/device/memory"
	"gerium/handle"
	"gerium/vk"
)

// UndefTexture returns the Undefined sentinel TextureHandle, for
// packages outside resource (the frame graph) that need to reset a
// handle field without reaching into the unexported textureTag marker.
func UndefTexture() TextureHandle { return handle.Undef[textureTag]() }

// TextureHandleAt wraps a raw pool index as a TextureHandle, for callers
// that need a handle without a backing Manager — a frame graph test
// double standing in for the renderer facade, for instance.
func TextureHandleAt(idx uint16) TextureHandle { return handle.New[textureTag](idx) }

// CreateTexture implements spec.md §4.3's texture factory: usage bits
// are derived from the Creation flags (Sampled is always set; Storage
// when Compute; ColorAttachment/DepthStencilAttachment when
// RenderTarget, selected by format; TransferSrc/Dst are always added
// so uploads and mipmap generation work without a separate usage
// flag), grounded on hal/vulkan/device.go's CreateTexture.
//
// AliasOf is accepted but has no effect: the texture always gets its
// own backing memory, because the allocator's pool/dedicated split has
// no entry point for binding a second image at an existing
// VkDeviceMemory offset. The frame graph's free-list reuse (spec.md
// §4.7.2) reuses whole textures between transient attachments instead.
func (m *Manager) CreateTexture(creation TextureCreation) (TextureHandle, error) {
	if creation.Width == 0 || creation.Height == 0 {
		return handle.Undef[textureTag](), fmt.Errorf("resource: %w: texture size must be > 0", errInvalidArgument)
	}

	depth := creation.Depth
	if depth == 0 {
		depth = 1
	}
	mips := creation.MipLevels
	if mips == 0 {
		mips = 1
	}

	usage := vk.ImageUsageTransferSrc | vk.ImageUsageTransferDst | vk.ImageUsageSampled
	if creation.Compute {
		usage |= vk.ImageUsageStorage
	}
	if creation.RenderTarget {
		if isDepthFormat(creation.Format) {
			usage |= vk.ImageUsageDepthStencilAttachment
		} else {
			usage |= vk.ImageUsageColorAttachment
		}
	}

	cmds := m.dev.Commands()
	dh := m.dev.Handle()

	imageType := uint32(vk.ImageType2D)
	if depth > 1 {
		imageType = vk.ImageType3D
	}

	info := vk.ImageCreateInfo{
		SType:         vk.StructureTypeImageCreateInfo,
		ImageType:     imageType,
		Format:        creation.Format,
		Extent:        vk.Extent3D{Width: creation.Width, Height: creation.Height, Depth: depth},
		MipLevels:     mips,
		ArrayLayers:   1,
		Samples:       uint32(vk.SampleCount1),
		Tiling:        vk.ImageTilingOptimal,
		Usage:         usage,
		SharingMode:   uint32(vk.SharingModeExclusive),
		InitialLayout: vk.ImageLayoutUndefined,
	}

	var image vk.Image
	if result := cmds.CreateImage(dh, &info, &image); !result.IsSuccess() {
		return handle.Undef[textureTag](), fmtErr("vkCreateImage", result)
	}

	var reqs vk.MemoryRequirements
	cmds.GetImageMemoryRequirements(dh, image, &reqs)

	block, err := m.dev.Allocator().Alloc(memory.AllocationRequest{
		Size:           reqs.Size,
		Alignment:      reqs.Alignment,
		Usage:          memory.UsageFastDeviceAccess,
		MemoryTypeBits: reqs.MemoryTypeBits,
	})
	if err != nil {
		cmds.DestroyImage(dh, image)
		return handle.Undef[textureTag](), fmt.Errorf("resource: texture allocation failed: %w", err)
	}
	if result := cmds.BindImageMemory(dh, image, block.Memory, block.Offset); !result.IsSuccess() {
		_ = m.dev.Allocator().Free(block)
		cmds.DestroyImage(dh, image)
		return handle.Undef[textureTag](), fmtErr("vkBindImageMemory", result)
	}

	aspect := vk.ImageAspectColor
	if isDepthFormat(creation.Format) {
		aspect = vk.ImageAspectDepth
	}
	viewInfo := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2D,
		Format:   creation.Format,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: aspect,
			LevelCount: mips,
			LayerCount: 1,
		},
	}
	var view vk.ImageView
	if result := cmds.CreateImageView(dh, &viewInfo, &view); !result.IsSuccess() {
		_ = m.dev.Allocator().Free(block)
		cmds.DestroyImage(dh, image)
		return handle.Undef[textureTag](), fmtErr("vkCreateImageView", result)
	}

	h, t, err := m.textures.ObtainAndAccess()
	if err != nil {
		cmds.DestroyImageView(dh, view)
		_ = m.dev.Allocator().Free(block)
		cmds.DestroyImage(dh, image)
		return handle.Undef[textureTag](), err
	}
	*t = Texture{
		Handle:    image,
		View:      view,
		Memory:    block,
		Extent:    info.Extent,
		Format:    creation.Format,
		Usage:     usage,
		MipLevels: mips,
		Layout:    vk.ImageLayoutUndefined,
	}
	return h, nil
}

// WrapSwapchainImage registers an externally-owned swapchain image
// (no memory to free, never destroyed by DestroyTexture) so it can be
// addressed by the same TextureHandle the frame graph uses for every
// other attachment.
func (m *Manager) WrapSwapchainImage(img vk.Image, view vk.ImageView, format vk.Format, extent vk.Extent2D) (TextureHandle, error) {
	h, t, err := m.textures.ObtainAndAccess()
	if err != nil {
		return handle.Undef[textureTag](), err
	}
	*t = Texture{
		Handle:     img,
		View:       view,
		Extent:     vk.Extent3D{Width: extent.Width, Height: extent.Height, Depth: 1},
		Format:     format,
		MipLevels:  1,
		Layout:     vk.ImageLayoutUndefined,
		isExternal: true,
	}
	return h, nil
}

// TextureView returns the VkImageView backing h, or 0 if h is stale —
// what the frame graph's framebuffer instantiation pass needs
// (spec.md §4.7.2) without exposing the whole Texture struct.
func (m *Manager) TextureView(h TextureHandle) vk.ImageView {
	t := m.textures.Access(h)
	if t == nil {
		return 0
	}
	return t.View
}

// TextureExtent returns h's width/height, or ok=false if h is stale —
// used by the frame graph's free-list aliasing check (spec.md
// §4.7.2's "reuse the first whose calc_texture_size >= needed").
func (m *Manager) TextureExtent(h TextureHandle) (width, height uint32, ok bool) {
	t := m.textures.Access(h)
	if t == nil {
		return 0, 0, false
	}
	return t.Extent.Width, t.Extent.Height, true
}

func (m *Manager) DestroyTexture(h TextureHandle) {
	t := m.textures.Access(h)
	if t == nil {
		return
	}
	if !t.isExternal {
		m.destroyTextureResources(t)
	}
	m.textures.Release(h)
}

// CreateSampler creates a VkSampler from the given filter/address-mode
// selection.
func (m *Manager) CreateSampler(creation SamplerCreation) (SamplerHandle, error) {
	info := vk.SamplerCreateInfo{
		SType:     vk.StructureTypeSamplerCreateInfo,
		MagFilter: creation.MagFilter,
		MinFilter: creation.MinFilter,
	}
	var s vk.Sampler
	if result := m.dev.Commands().CreateSampler(m.dev.Handle(), &info, &s); !result.IsSuccess() {
		return handle.Undef[samplerTag](), fmtErr("vkCreateSampler", result)
	}
	h, entry, err := m.samplers.ObtainAndAccess()
	if err != nil {
		m.dev.Commands().DestroySampler(m.dev.Handle(), s)
		return handle.Undef[samplerTag](), err
	}
	entry.Handle = s
	return h, nil
}

func (m *Manager) DestroySampler(h SamplerHandle) {
	s := m.samplers.Access(h)
	if s == nil {
		return
	}
	if s.Handle != 0 {
		m.dev.Commands().DestroySampler(m.dev.Handle(), s.Handle)
	}
	m.samplers.Release(h)
}

func isDepthFormat(f vk.Format) bool {
	switch f {
	case vk.FormatD32Sfloat, vk.FormatD32SfloatS8Uint, vk.FormatD24UnormS8Uint:
		return true
	default:
		return false
	}
}
