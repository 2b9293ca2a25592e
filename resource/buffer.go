// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package resource

import (
	"fmt"

	"gerium/device"
	"gerium/device/memory"
	"gerium/handle"
	"gerium/vk"
)

var errInvalidArgument = device.ErrInvalidArgument

// dynamicRing is the host-visible ring Dynamic buffers
// suballocate from (spec.md §4.3). It is a single persistently-mapped
// VkBuffer; CreateBuffer(Dynamic) hands back a byte range within it
// rather than a private buffer, grounded on the teacher's
// Device.CreateBuffer host-access path in hal/vulkan/device.go,
// generalized from "one VkBuffer per allocation" to "one shared ring,
// many suballocations" since spec.md requires a parent+global_offset
// pair rather than an independent handle per Dynamic buffer.
type dynamicRing struct {
	buffer vk.Buffer
	block  *memory.MemoryBlock
	size   uint64
	cursor uint64
	mapped uintptr
}

func newDynamicRing(dev deviceLike, size uint64) (*dynamicRing, error) {
	if size == 0 {
		return &dynamicRing{}, nil
	}
	cmds := dev.Commands()
	dh := dev.Handle()

	if pageSize := hostPageSize(); size%pageSize != 0 {
		size += pageSize - size%pageSize
	}

	info := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       vk.BufferUsageUniformBuffer | vk.BufferUsageStorageBuffer | vk.BufferUsageTransferDst,
		SharingMode: uint32(vk.SharingModeExclusive),
	}
	var buf vk.Buffer
	if result := cmds.CreateBuffer(dh, &info, &buf); !result.IsSuccess() {
		return nil, fmtErr("vkCreateBuffer (dynamic ring)", result)
	}

	var reqs vk.MemoryRequirements
	cmds.GetBufferMemoryRequirements(dh, buf, &reqs)

	block, err := dev.Allocator().Alloc(memory.AllocationRequest{
		Size:           reqs.Size,
		Alignment:      reqs.Alignment,
		Usage:          memory.UsageHostAccess | memory.UsageUpload,
		MemoryTypeBits: reqs.MemoryTypeBits,
	})
	if err != nil {
		cmds.DestroyBuffer(dh, buf)
		return nil, fmt.Errorf("resource: dynamic ring allocation failed: %w", err)
	}
	if result := cmds.BindBufferMemory(dh, buf, block.Memory, block.Offset); !result.IsSuccess() {
		_ = dev.Allocator().Free(block)
		cmds.DestroyBuffer(dh, buf)
		return nil, fmtErr("vkBindBufferMemory (dynamic ring)", result)
	}

	ptr, err := dev.Allocator().Map(block)
	if err != nil {
		_ = dev.Allocator().Free(block)
		cmds.DestroyBuffer(dh, buf)
		return nil, fmt.Errorf("resource: failed to map dynamic ring: %w", err)
	}

	return &dynamicRing{buffer: buf, block: block, size: reqs.Size, mapped: uintptr(ptr)}, nil
}

func (r *dynamicRing) destroy(cmds *vk.Commands, dh vk.Device) {
	if r.buffer != 0 {
		cmds.DestroyBuffer(dh, r.buffer)
		r.buffer = 0
	}
}

// alloc reserves size bytes aligned to alignment after the previous
// allocation, and fails once the request no longer fits; it does not
// wrap. Nothing in this module calls Reset, so the cursor only
// advances: the ring's size bounds the total bytes of every Dynamic
// buffer created over the Manager's lifetime, and destroying a Dynamic
// buffer does not return its range.
func (r *dynamicRing) alloc(size, alignment uint64) (uint64, error) {
	if alignment == 0 {
		alignment = 1
	}
	offset := (r.cursor + alignment - 1) &^ (alignment - 1)
	if offset+size > r.size {
		return 0, fmt.Errorf("resource: dynamic ring exhausted (%d/%d bytes requested at offset %d)", size, r.size, offset)
	}
	r.cursor = offset + size
	return offset, nil
}

// Reset rewinds the ring cursor to the start of a new frame.
func (r *dynamicRing) Reset() { r.cursor = 0 }

// deviceLike is the subset of *device.Device the resource package
// needs, kept as an interface so ring/buffer/texture helpers don't
// all need the concrete *device.Device import cycle-free.
type deviceLike interface {
	Commands() *vk.Commands
	Handle() vk.Device
	Allocator() *memory.GpuAllocator
}

// UndefBuffer returns the Undefined sentinel BufferHandle, mirroring
// UndefTexture for callers outside this package.
func UndefBuffer() BufferHandle { return handle.Undef[bufferTag]() }

// BufferHandleAt wraps a raw pool index as a BufferHandle, for callers
// that need a handle without a backing Manager — a frame graph test
// double standing in for the renderer facade, for instance.
func BufferHandleAt(idx uint16) BufferHandle { return handle.New[bufferTag](idx) }

// CreateBuffer implements spec.md §4.3's buffer factory: Immutable
// buffers are device-local (with the caller responsible for staging
// the upload via the transfer queue — see command.CommandBuffer.CopyBuffer);
// Dynamic buffers suballocate from the dynamic ring; Staging buffers
// are host-visible with VK_BUFFER_USAGE_TRANSFER_SRC_BIT implied.
func (m *Manager) CreateBuffer(creation BufferCreation) (BufferHandle, error) {
	switch creation.Usage {
	case BufferUsageDynamic:
		return m.createDynamicBuffer(creation)
	default:
		return m.createOwnedBuffer(creation)
	}
}

func (m *Manager) createDynamicBuffer(creation BufferCreation) (BufferHandle, error) {
	offset, err := m.dynamicRing.alloc(creation.Size, 256)
	if err != nil {
		return handle.Undef[bufferTag](), err
	}
	h, b, err := m.buffers.ObtainAndAccess()
	if err != nil {
		return handle.Undef[bufferTag](), err
	}
	*b = Buffer{
		Size:         creation.Size,
		Usage:        BufferUsageDynamic,
		Parent:       m.dynamicRing.buffer,
		GlobalOffset: offset,
		mappedPtr:    m.dynamicRing.mapped + uintptr(offset),
	}
	return h, nil
}

func (m *Manager) createOwnedBuffer(creation BufferCreation) (BufferHandle, error) {
	cmds := m.dev.Commands()
	dh := m.dev.Handle()

	usage := creation.VkUsage
	if creation.Usage == BufferUsageStaging {
		usage |= vk.BufferUsageTransferSrc
	} else {
		usage |= vk.BufferUsageTransferDst
	}

	info := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        creation.Size,
		Usage:       usage,
		SharingMode: uint32(vk.SharingModeExclusive),
	}
	var buf vk.Buffer
	if result := cmds.CreateBuffer(dh, &info, &buf); !result.IsSuccess() {
		return handle.Undef[bufferTag](), fmtErr("vkCreateBuffer", result)
	}

	var reqs vk.MemoryRequirements
	cmds.GetBufferMemoryRequirements(dh, buf, &reqs)

	memUsage := memory.UsageFastDeviceAccess
	if creation.Usage == BufferUsageStaging {
		memUsage = memory.UsageHostAccess | memory.UsageUpload
	}
	block, err := m.dev.Allocator().Alloc(memory.AllocationRequest{
		Size:           reqs.Size,
		Alignment:      reqs.Alignment,
		Usage:          memUsage,
		MemoryTypeBits: reqs.MemoryTypeBits,
	})
	if err != nil {
		cmds.DestroyBuffer(dh, buf)
		return handle.Undef[bufferTag](), fmt.Errorf("resource: buffer allocation failed: %w", err)
	}
	if result := cmds.BindBufferMemory(dh, buf, block.Memory, block.Offset); !result.IsSuccess() {
		_ = m.dev.Allocator().Free(block)
		cmds.DestroyBuffer(dh, buf)
		return handle.Undef[bufferTag](), fmtErr("vkBindBufferMemory", result)
	}

	h, b, err := m.buffers.ObtainAndAccess()
	if err != nil {
		_ = m.dev.Allocator().Free(block)
		cmds.DestroyBuffer(dh, buf)
		return handle.Undef[bufferTag](), err
	}
	*b = Buffer{Handle: buf, Memory: block, Size: creation.Size, Usage: creation.Usage}
	return h, nil
}

func (m *Manager) DestroyBuffer(h BufferHandle) {
	b := m.buffers.Access(h)
	if b == nil {
		return
	}
	if b.Usage != BufferUsageDynamic {
		m.destroyBufferResources(b)
	}
	m.buffers.Release(h)
}

// Map returns a host pointer for a Dynamic or Staging buffer. Mapping
// an Immutable (device-local) buffer is a programmer error per
// spec.md §4.3 ("mapping a device-local buffer fails with
// InvalidArgument").
func (m *Manager) Map(h BufferHandle) (uintptr, error) {
	b := m.buffers.Access(h)
	if b == nil {
		return 0, fmt.Errorf("resource: %w: unknown buffer handle", errInvalidArgument)
	}
	if b.Usage == BufferUsageImmutable {
		return 0, fmt.Errorf("resource: %w: cannot map an Immutable buffer", errInvalidArgument)
	}
	if b.Usage == BufferUsageDynamic {
		return b.mappedPtr, nil
	}
	ptr, err := m.dev.Allocator().Map(b.Memory)
	if err != nil {
		return 0, fmt.Errorf("resource: map failed: %w", err)
	}
	b.mappedPtr = uintptr(ptr)
	return b.mappedPtr, nil
}

func (m *Manager) Unmap(h BufferHandle) {
	b := m.buffers.Access(h)
	if b == nil || b.Usage == BufferUsageDynamic {
		return
	}
	m.dev.Allocator().Unmap(b.Memory)
	b.mappedPtr = 0
}
