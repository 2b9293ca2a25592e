// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package resource

import (
	"gerium/handle"
	"gerium/vk"
)

// descriptorSetTag marks DescriptorSetHandle, a pool entry for a
// VkDescriptorSet allocated from the Manager's single global pool
// (spec.md §4.3's bring-up step 7: one global descriptor pool, sized
// once at startup, never grown).
type descriptorSetTag struct{}

func (descriptorSetTag) handleMarker() {}

// DescriptorSetHandle addresses a descriptor set in the Manager's pool.
type DescriptorSetHandle = handle.Handle[descriptorSetTag]

// DescriptorBinding describes one binding of a descriptor set layout.
// Program reflection (program.go) builds these from SPIR-V; callers
// that skip reflection (compute-only utility passes, the profiler
// overlay) can also build them by hand.
type DescriptorBinding struct {
	Binding    uint32
	Type       vk.DescriptorType
	Count      uint32
	StageFlags vk.ShaderStageFlagBits
}

// DescriptorSet is a resource-pool entry: the allocated VkDescriptorSet
// plus the writes queued for it. Writes are staged with Write* and
// only reach vkUpdateDescriptorSets when Flush is called — spec.md
// §4.3/§4.9 defer the update to first use each frame rather than
// writing on every bind, so a set whose bound resources haven't
// changed since last frame costs nothing to rebind.
type DescriptorSet struct {
	Handle  vk.DescriptorSet
	Layout  vk.DescriptorSetLayout
	pending []vk.WriteDescriptorSet
	images  []vk.DescriptorImageInfo
	buffers []vk.DescriptorBufferInfo
	dirty   bool

	// dynamicBindings tracks, in the order WriteBuffer staged them, which
	// binding slots are UniformBufferDynamic/StorageBufferDynamic and
	// which BufferHandle backs each — CommandBuffer.BindDescriptorSet
	// (command package) reads the handle's ring GlobalOffset through
	// DynamicOffsets at bind time.
	dynamicBindings []dynamicBinding
}

type dynamicBinding struct {
	binding uint32
	buffer  BufferHandle
}

// CreateDescriptorSetLayout builds a VkDescriptorSetLayout from an
// explicit binding list, grounded on hal/vulkan/descriptor.go's pool
// sizing (DescriptorCounts) generalized from per-object pools to a
// single global one, since this module's vk.Commands has no
// individual-set-free entry point (no vkFreeDescriptorSets wrapper) —
// sets live for the lifetime of the pipeline that owns them instead
// of being freed and recreated per draw call.
func (m *Manager) CreateDescriptorSetLayout(bindings []DescriptorBinding) (vk.DescriptorSetLayout, error) {
	vkBindings := make([]vk.DescriptorSetLayoutBinding, len(bindings))
	for i, b := range bindings {
		vkBindings[i] = vk.DescriptorSetLayoutBinding{
			Binding:         b.Binding,
			DescriptorType:  b.Type,
			DescriptorCount: b.Count,
			StageFlags:      b.StageFlags,
		}
	}
	info := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(vkBindings)),
	}
	if len(vkBindings) > 0 {
		info.PBindings = &vkBindings[0]
	}
	var layout vk.DescriptorSetLayout
	if result := m.dev.Commands().CreateDescriptorSetLayout(m.dev.Handle(), &info, &layout); !result.IsSuccess() {
		return 0, fmtErr("vkCreateDescriptorSetLayout", result)
	}
	return layout, nil
}

func (m *Manager) DestroyDescriptorSetLayout(layout vk.DescriptorSetLayout) {
	if layout != 0 {
		m.dev.Commands().DestroyDescriptorSetLayout(m.dev.Handle(), layout)
	}
}

// initDescriptorPool creates the single global descriptor pool sized
// by cfg.DescriptorSetsPoolSize sets, each with cfg.DescriptorPoolElements
// descriptors of every commonly used type — the fixed-ratio sizing
// hal/vulkan/descriptor.go falls back to when per-type counts aren't
// known up front, which is always true here since this factory is
// called well before any program has been reflected.
func (m *Manager) initDescriptorPool(maxSets, perTypeCount uint32) error {
	sizes := []vk.DescriptorPoolSize{
		{Type: vk.DescriptorTypeUniformBuffer, DescriptorCount: perTypeCount},
		{Type: vk.DescriptorTypeStorageBuffer, DescriptorCount: perTypeCount},
		{Type: vk.DescriptorTypeUniformBufferDynamic, DescriptorCount: perTypeCount},
		{Type: vk.DescriptorTypeStorageBufferDynamic, DescriptorCount: perTypeCount},
		{Type: vk.DescriptorTypeCombinedImageSampler, DescriptorCount: perTypeCount},
		{Type: vk.DescriptorTypeSampledImage, DescriptorCount: perTypeCount},
		{Type: vk.DescriptorTypeStorageImage, DescriptorCount: perTypeCount},
		{Type: vk.DescriptorTypeSampler, DescriptorCount: perTypeCount},
	}
	info := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       maxSets,
		PoolSizeCount: uint32(len(sizes)),
		PPoolSizes:    &sizes[0],
	}
	var pool vk.DescriptorPool
	if result := m.dev.Commands().CreateDescriptorPool(m.dev.Handle(), &info, &pool); !result.IsSuccess() {
		return fmtErr("vkCreateDescriptorPool", result)
	}
	m.descriptorPool = pool
	return nil
}

// AllocateDescriptorSet allocates one set of the given layout from the
// global pool and registers it in the Manager's descriptor-set pool.
func (m *Manager) AllocateDescriptorSet(layout vk.DescriptorSetLayout) (DescriptorSetHandle, error) {
	info := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     m.descriptorPool,
		DescriptorSetCount: 1,
		PSetLayouts:        &layout,
	}
	var set vk.DescriptorSet
	if result := m.dev.Commands().AllocateDescriptorSets(m.dev.Handle(), &info, &set); !result.IsSuccess() {
		return handle.Undef[descriptorSetTag](), fmtErr("vkAllocateDescriptorSets", result)
	}
	h, entry, err := m.descriptorSets.ObtainAndAccess()
	if err != nil {
		return handle.Undef[descriptorSetTag](), err
	}
	*entry = DescriptorSet{Handle: set, Layout: layout}
	return h, nil
}

// WriteBuffer stages a buffer-backed descriptor write; it has no
// effect on the live descriptor set until Flush runs. bufHandle is
// resolved through the Manager's buffer pool so the write targets the
// right vk.Buffer whether it's an owned Immutable/Staging allocation
// or a Dynamic sub-allocation of the ring — for Dynamic buffers the
// descriptor is written against the ring's base buffer at offset 0,
// and the handle's GlobalOffset is supplied separately as a dynamic
// offset at bind time (see DynamicOffsets).
func (m *Manager) WriteBuffer(h DescriptorSetHandle, binding uint32, descType vk.DescriptorType, bufHandle BufferHandle) {
	ds := m.descriptorSets.Access(h)
	if ds == nil {
		return
	}
	buf := m.Buffer(bufHandle)
	if buf == nil {
		return
	}

	isDynamic := descType == vk.DescriptorTypeUniformBufferDynamic || descType == vk.DescriptorTypeStorageBufferDynamic
	var vkBuf vk.Buffer
	var size uint64
	if buf.Usage == BufferUsageDynamic {
		vkBuf, size = buf.Parent, buf.Size
	} else {
		vkBuf, size = buf.Handle, buf.Size
	}

	ds.buffers = append(ds.buffers, vk.DescriptorBufferInfo{Buffer: vkBuf, Offset: 0, Range: size})
	ds.pending = append(ds.pending, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          ds.Handle,
		DstBinding:      binding,
		DescriptorCount: 1,
		DescriptorType:  descType,
	})
	if isDynamic {
		ds.dynamicBindings = append(ds.dynamicBindings, dynamicBinding{binding: binding, buffer: bufHandle})
	}
	ds.dirty = true
}

// WriteImage stages an image/sampler descriptor write; no effect
// until Flush.
func (m *Manager) WriteImage(h DescriptorSetHandle, binding uint32, descType vk.DescriptorType, view vk.ImageView, sampler vk.Sampler, layout vk.ImageLayout) {
	ds := m.descriptorSets.Access(h)
	if ds == nil {
		return
	}
	ds.images = append(ds.images, vk.DescriptorImageInfo{Sampler: sampler, ImageView: view, ImageLayout: layout})
	ds.pending = append(ds.pending, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          ds.Handle,
		DstBinding:      binding,
		DescriptorCount: 1,
		DescriptorType:  descType,
	})
	ds.dirty = true
}

// Flush applies every staged write for a set via a single
// vkUpdateDescriptorSets call and clears the pending queue. Command
// recording calls this immediately before binding a set that was
// marked dirty since its last bind (spec.md §4.5's "flush-then-bind").
func (m *Manager) Flush(h DescriptorSetHandle) error {
	ds := m.descriptorSets.Access(h)
	if ds == nil || !ds.dirty {
		return nil
	}
	imgIdx, bufIdx := 0, 0
	for i := range ds.pending {
		switch {
		case ds.pending[i].DescriptorType == vk.DescriptorTypeSampler,
			ds.pending[i].DescriptorType == vk.DescriptorTypeCombinedImageSampler,
			ds.pending[i].DescriptorType == vk.DescriptorTypeSampledImage,
			ds.pending[i].DescriptorType == vk.DescriptorTypeStorageImage:
			ds.pending[i].PImageInfo = &ds.images[imgIdx]
			imgIdx++
		default:
			ds.pending[i].PBufferInfo = &ds.buffers[bufIdx]
			bufIdx++
		}
	}
	m.dev.Commands().UpdateDescriptorSets(m.dev.Handle(), uint32(len(ds.pending)), &ds.pending[0])
	ds.pending = ds.pending[:0]
	ds.images = ds.images[:0]
	ds.buffers = ds.buffers[:0]
	ds.dirty = false
	return nil
}

// IsDirty reports whether a set has writes queued that haven't been
// flushed yet.
func (m *Manager) IsDirty(h DescriptorSetHandle) bool {
	ds := m.descriptorSets.Access(h)
	return ds != nil && ds.dirty
}

// DescriptorSetVk returns the raw vk.DescriptorSet for h, or 0 if h is
// stale — what CommandBuffer.BindDescriptorSet needs to call
// vkCmdBindDescriptorSets directly.
func (m *Manager) DescriptorSetVk(h DescriptorSetHandle) vk.DescriptorSet {
	ds := m.descriptorSets.Access(h)
	if ds == nil {
		return 0
	}
	return ds.Handle
}

// DynamicOffsets returns the current ring offset of every
// dynamic-UBO/SSBO binding on a set, in the declaration order WriteBuffer
// staged them — the shape vkCmdBindDescriptorSets' pDynamicOffsets
// expects (spec.md §4.5, "binds with dynamic offsets for each
// dynamic-UBO/SSBO binding in the layout, in declaration order").
func (m *Manager) DynamicOffsets(h DescriptorSetHandle) []uint32 {
	ds := m.descriptorSets.Access(h)
	if ds == nil || len(ds.dynamicBindings) == 0 {
		return nil
	}
	offsets := make([]uint32, len(ds.dynamicBindings))
	for i, db := range ds.dynamicBindings {
		if buf := m.Buffer(db.buffer); buf != nil {
			offsets[i] = uint32(buf.GlobalOffset)
		}
	}
	return offsets
}

func (m *Manager) destroyDescriptorPool() {
	if m.descriptorPool != 0 {
		m.dev.Commands().DestroyDescriptorPool(m.dev.Handle(), m.descriptorPool)
		m.descriptorPool = 0
	}
}
