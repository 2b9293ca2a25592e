// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

// Package memory implements a VMA-style suballocator over VkDeviceMemory:
// a pool per memory type, each pool backed by fixed-size blocks carved up
// with a [BuddyAllocator], with a dedicated-allocation fallback for
// requests too large (or too numerous) to suballocate.
package memory

import "gerium/vk"

// UsageFlags describes how an allocation will be accessed, steering
// [MemoryTypeSelector] toward device-local vs. host-visible memory.
type UsageFlags uint32

const (
	UsageFastDeviceAccess UsageFlags = 1 << iota
	UsageHostAccess
	UsageUpload
	UsageDownload
	UsageTransient
)

// AllocationRequest describes a memory allocation request.
type AllocationRequest struct {
	Size           uint64
	Alignment      uint64
	Usage          UsageFlags
	MemoryTypeBits uint32
}

// MemoryBlock is an allocated memory region, either a suballocation
// within a pooled VkDeviceMemory block or a dedicated one.
type MemoryBlock struct {
	Memory vk.DeviceMemory
	Offset uint64
	Size   uint64

	memoryTypeIndex uint32
	dedicated       bool
	buddyBlock      *BuddyBlock

	// MappedPtr holds the host pointer once Map() is called; Unmap()
	// clears it. Staging buffers keep this mapped for their whole
	// lifetime rather than map/unmap per transfer.
	MappedPtr uintptr
}

func (b *MemoryBlock) IsDedicated() bool       { return b.dedicated }
func (b *MemoryBlock) MemoryTypeIndex() uint32 { return b.memoryTypeIndex }

type MemoryType struct {
	PropertyFlags vk.MemoryPropertyFlags
	HeapIndex     uint32
}

type MemoryHeap struct {
	Size  uint64
	Flags vk.MemoryHeapFlags
}

// DeviceMemoryProperties mirrors the fields of
// VkPhysicalDeviceMemoryProperties this allocator reads.
type DeviceMemoryProperties struct {
	MemoryTypes []MemoryType
	MemoryHeaps []MemoryHeap
}

// MemoryTypeSelector picks the best memory type index for a request.
type MemoryTypeSelector struct {
	properties DeviceMemoryProperties
	validTypes uint32
}

const knownMemoryFlags = vk.MemoryPropertyDeviceLocalBit |
	vk.MemoryPropertyHostVisibleBit |
	vk.MemoryPropertyHostCoherentBit |
	vk.MemoryPropertyHostCachedBit |
	vk.MemoryPropertyLazilyAllocatedBit

func NewMemoryTypeSelector(props DeviceMemoryProperties) *MemoryTypeSelector {
	var validTypes uint32
	for i, mt := range props.MemoryTypes {
		if mt.PropertyFlags & ^knownMemoryFlags == 0 {
			validTypes |= 1 << i
		}
	}
	return &MemoryTypeSelector{properties: props, validTypes: validTypes}
}

// SelectMemoryType returns the best memory type index for req, trying
// required+preferred flags first and falling back to required-only.
func (s *MemoryTypeSelector) SelectMemoryType(req AllocationRequest) (uint32, bool) {
	required, preferred := s.usageToFlags(req.Usage)

	if idx, ok := s.findMemoryType(req.MemoryTypeBits, required|preferred); ok {
		return idx, true
	}
	return s.findMemoryType(req.MemoryTypeBits, required)
}

func (s *MemoryTypeSelector) findMemoryType(typeBits uint32, flags vk.MemoryPropertyFlags) (uint32, bool) {
	for i, mt := range s.properties.MemoryTypes {
		typeMask := uint32(1) << i
		if typeBits&typeMask == 0 || s.validTypes&typeMask == 0 {
			continue
		}
		if mt.PropertyFlags&flags == flags {
			return uint32(i), true
		}
	}
	return 0, false
}

func (s *MemoryTypeSelector) usageToFlags(usage UsageFlags) (required, preferred vk.MemoryPropertyFlags) {
	if usage&UsageHostAccess != 0 || usage&UsageUpload != 0 || usage&UsageDownload != 0 {
		required |= vk.MemoryPropertyHostVisibleBit
		if usage&UsageUpload != 0 {
			preferred |= vk.MemoryPropertyHostCoherentBit
		}
		if usage&UsageDownload != 0 {
			preferred |= vk.MemoryPropertyHostCachedBit
		}
	} else if usage&UsageFastDeviceAccess != 0 {
		preferred |= vk.MemoryPropertyDeviceLocalBit
	}
	if usage&UsageTransient != 0 {
		preferred |= vk.MemoryPropertyLazilyAllocatedBit
	}
	return required, preferred
}

func (s *MemoryTypeSelector) GetHeapSize(heapIndex uint32) uint64 {
	if int(heapIndex) >= len(s.properties.MemoryHeaps) {
		return 0
	}
	return s.properties.MemoryHeaps[heapIndex].Size
}

func (s *MemoryTypeSelector) GetMemoryType(index uint32) (MemoryType, bool) {
	if int(index) >= len(s.properties.MemoryTypes) {
		return MemoryType{}, false
	}
	return s.properties.MemoryTypes[index], true
}

func (s *MemoryTypeSelector) IsDeviceLocal(typeIndex uint32) bool {
	mt, ok := s.GetMemoryType(typeIndex)
	return ok && mt.PropertyFlags&vk.MemoryPropertyDeviceLocalBit != 0
}

func (s *MemoryTypeSelector) IsHostVisible(typeIndex uint32) bool {
	mt, ok := s.GetMemoryType(typeIndex)
	return ok && mt.PropertyFlags&vk.MemoryPropertyHostVisibleBit != 0
}
