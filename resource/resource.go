// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

// Package resource implements the factories of spec.md §4.3: buffers,
// textures, samplers, render passes, framebuffers, shader programs
// (SPIR-V reflected by this package's own bytecode walk in program.go),
// pipelines, and descriptor sets. Every
// factory accepts a plain Creation descriptor and returns a stable
// [handle.Handle], grounded on the teacher's hal/vulkan resource types
// (hal/vulkan/resource.go) reworked from interface-returning factories
// into handle-pool entries, matching this module's pooled-resource
// design instead of the teacher's per-object heap allocation.
package resource

import (
	"fmt"

	"gerium/device"
	"gerium/device/memory"
	"gerium/handle"
	"gerium/vk"
)

type bufferTag struct{}

func (bufferTag) handleMarker() {}

type textureTag struct{}

func (textureTag) handleMarker() {}

type samplerTag struct{}

func (samplerTag) handleMarker() {}

// BufferHandle, TextureHandle, and SamplerHandle are stable indices
// into a Manager's resource pools.
type (
	BufferHandle  = handle.Handle[bufferTag]
	TextureHandle = handle.Handle[textureTag]
	SamplerHandle = handle.Handle[samplerTag]
)

// BufferUsage mirrors spec.md §4.3's Immutable/Dynamic/Staging split.
type BufferUsage uint32

const (
	BufferUsageImmutable BufferUsage = iota
	BufferUsageDynamic
	BufferUsageStaging
)

// VulkanUsage are the VkBufferUsage bits a Creation can request
// directly, composed with whatever the factory adds implicitly
// (TransferDst for Immutable's staged upload, TransferSrc for
// Staging).
type VulkanUsage = vk.BufferUsageFlags

// Buffer is a resource-pool entry for a VkBuffer. Dynamic buffers have
// no private vk.Buffer/memory.MemoryBlock of their own — Parent and
// GlobalOffset address into the Manager's dynamic ring instead.
type Buffer struct {
	Handle vk.Buffer
	Memory *memory.MemoryBlock
	Size   uint64
	Usage  BufferUsage

	// Parent and GlobalOffset are set for Dynamic buffers: Parent is
	// the ring's backing vk.Buffer, GlobalOffset the byte offset within
	// it this allocation owns. Immutable/Staging buffers own their own
	// vk.Buffer instead and leave these zero.
	Parent       vk.Buffer
	GlobalOffset uint64

	mappedPtr uintptr

	// LastAccess and LastStage are the access scope the command package
	// last emitted a barrier for (spec.md §4.5's barrier_buffer_{read,write}
	// "emit minimum vkCmdPipelineBarrier for the transition" — the
	// minimum is computed against whatever scope was last recorded
	// here). Zero value means "never touched on the GPU timeline yet".
	LastAccess vk.AccessFlags
	LastStage  vk.PipelineStageFlagBits
}

// Texture is a resource-pool entry for a VkImage(+View).
type Texture struct {
	Handle     vk.Image
	View       vk.ImageView
	Memory     *memory.MemoryBlock
	Extent     vk.Extent3D
	Format     vk.Format
	Usage      vk.ImageUsageFlags
	MipLevels  uint32
	Layout     vk.ImageLayout
	isExternal bool // swapchain images: no owned memory, not destroyed here

	// LastAccess and LastStage mirror Buffer's fields, for
	// barrier_texture_{read,write}'s minimum-barrier computation.
	LastAccess vk.AccessFlags
	LastStage  vk.PipelineStageFlagBits
}

// Sampler is a resource-pool entry for a VkSampler.
type Sampler struct {
	Handle vk.Sampler
}

// BufferCreation and TextureCreation are the plain value-type
// descriptors spec.md §4.3 calls for.
type BufferCreation struct {
	Size     uint64
	Usage    BufferUsage
	VkUsage  VulkanUsage
	InitialData []byte
	Name     string
}

type TextureCreation struct {
	Width, Height, Depth uint32
	MipLevels            uint32
	Format               vk.Format
	RenderTarget         bool
	Compute              bool
	Sampled              bool
	AliasOf              TextureHandle
	Name                 string
}

type SamplerCreation struct {
	MinFilter, MagFilter uint32
	MipmapMode           uint32
	AddressMode          uint32
	Name                 string
}

// Manager owns every resource pool and the device/allocator they
// allocate from.
type Manager struct {
	dev *device.Device

	buffers        *handle.Pool[Buffer, bufferTag]
	textures       *handle.Pool[Texture, textureTag]
	samplers       *handle.Pool[Sampler, samplerTag]
	descriptorSets *handle.Pool[DescriptorSet, descriptorSetTag]
	pipelines      *handle.Pool[Pipeline, pipelineTag]

	descriptorPool vk.DescriptorPool
	dynamicRing    *dynamicRing

	// renderPasses and framebuffers cache VkRenderPass/VkFramebuffer
	// objects keyed by attachment configuration, grounded on the
	// teacher's hal/vulkan/renderpass.go RenderPassCache — the frame
	// graph's compile pass (spec.md §4.7.2) creates a node's render pass
	// once and reuses it across frames and across recompiles that don't
	// change the attachment set.
	renderPasses map[RenderPassKey]vk.RenderPass
	framebuffers map[framebufferKey]vk.Framebuffer
}

// NewManager creates resource pools sized per cfg and the host-visible
// dynamic ring buffer of size cfg.DynamicSSBOSize that Dynamic buffers
// are sub-allocated from (spec.md §4.3). The ring is not reset between
// frames.
func NewManager(dev *device.Device, cfg device.Config, poolCapacity int) (*Manager, error) {
	m := &Manager{
		dev:            dev,
		buffers:        handle.New[Buffer, bufferTag](poolCapacity, true),
		textures:       handle.New[Texture, textureTag](poolCapacity, true),
		samplers:       handle.New[Sampler, samplerTag](poolCapacity/4+1, true),
		descriptorSets: handle.New[DescriptorSet, descriptorSetTag](int(cfg.DescriptorSetsPoolSize), true),
		pipelines:      handle.New[Pipeline, pipelineTag](poolCapacity/4+1, true),
	}
	ring, err := newDynamicRing(dev, cfg.DynamicSSBOSize)
	if err != nil {
		return nil, err
	}
	m.dynamicRing = ring

	if err := m.initDescriptorPool(cfg.DescriptorSetsPoolSize, cfg.DescriptorPoolElements); err != nil {
		m.dynamicRing.destroy(dev.Commands(), dev.Handle())
		return nil, err
	}
	return m, nil
}

func (m *Manager) Destroy() {
	cmds := m.dev.Commands()
	h := m.dev.Handle()
	m.buffers.Range(func(_ BufferHandle, b *Buffer) bool {
		m.destroyBufferResources(b)
		return true
	})
	m.textures.Range(func(_ TextureHandle, t *Texture) bool {
		if !t.isExternal {
			m.destroyTextureResources(t)
		}
		return true
	})
	m.samplers.Range(func(_ SamplerHandle, s *Sampler) bool {
		if s.Handle != 0 {
			cmds.DestroySampler(h, s.Handle)
		}
		return true
	})
	m.pipelines.Range(func(_ PipelineHandle, p *Pipeline) bool {
		if p.Handle != 0 {
			cmds.DestroyPipeline(h, p.Handle)
		}
		if p.ownsLayout && p.Layout != 0 {
			cmds.DestroyPipelineLayout(h, p.Layout)
		}
		return true
	})
	if m.dynamicRing != nil {
		m.dynamicRing.destroy(cmds, h)
	}
	m.destroyRenderPassCache()
	m.destroyDescriptorPool()
}

func (m *Manager) Buffer(h BufferHandle) *Buffer   { return m.buffers.Access(h) }
func (m *Manager) Texture(h TextureHandle) *Texture { return m.textures.Access(h) }
func (m *Manager) Sampler(h SamplerHandle) *Sampler { return m.samplers.Access(h) }

func (m *Manager) destroyBufferResources(b *Buffer) {
	cmds := m.dev.Commands()
	dh := m.dev.Handle()
	if b.Handle != 0 {
		cmds.DestroyBuffer(dh, b.Handle)
	}
	if b.Memory != nil {
		_ = m.dev.Allocator().Free(b.Memory)
	}
}

func (m *Manager) destroyTextureResources(t *Texture) {
	cmds := m.dev.Commands()
	dh := m.dev.Handle()
	if t.View != 0 {
		cmds.DestroyImageView(dh, t.View)
	}
	if t.Handle != 0 {
		cmds.DestroyImage(dh, t.Handle)
	}
	if t.Memory != nil {
		_ = m.dev.Allocator().Free(t.Memory)
	}
}

func fmtErr(op string, result vk.Result) error {
	return fmt.Errorf("resource: %s failed: %s", op, result)
}
