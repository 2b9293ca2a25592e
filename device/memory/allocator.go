// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package memory

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"gerium/vk"
)

// AllocatorConfig configures a [GpuAllocator].
type AllocatorConfig struct {
	// BlockSize is the size of memory blocks requested from Vulkan.
	// Must be a power of 2. Default: 64MB.
	BlockSize uint64

	// MinAllocationSize is the smallest suballocation granularity.
	// Must be a power of 2. Default: 256 bytes (Vulkan's own minimum
	// alignment guarantee).
	MinAllocationSize uint64

	// DedicatedThreshold is the size at or above which an allocation gets its
	// own VkDeviceMemory instead of suballocation. Default: 32MB.
	DedicatedThreshold uint64

	// MaxBlocksPerHeap bounds how many blocks a single memory-type pool
	// may request before falling back to dedicated allocations.
	// Default: 8 (512MB per heap at the default block size).
	MaxBlocksPerHeap int
}

func DefaultConfig() AllocatorConfig {
	return AllocatorConfig{
		BlockSize:          64 << 20,
		MinAllocationSize:  256,
		DedicatedThreshold: 32 << 20,
		MaxBlocksPerHeap:   8,
	}
}

// MemoryPool manages allocations for a single Vulkan memory type.
type MemoryPool struct {
	memoryTypeIndex uint32
	blockSize       uint64
	minAllocSize    uint64
	maxBlocks       int

	blocks []*poolBlock
	stats  PoolStats
}

type poolBlock struct {
	memory vk.DeviceMemory
	size   uint64
	buddy  *BuddyAllocator
}

type PoolStats struct {
	BlockCount      int
	TotalSize       uint64
	UsedSize        uint64
	AllocationCount uint64
}

// GpuAllocator suballocates VkDeviceMemory for buffers and textures. One
// instance per [gerium/device.Device]; thread-safe.
type GpuAllocator struct {
	mu sync.Mutex

	device   vk.Device
	cmds     *vk.Commands
	config   AllocatorConfig
	selector *MemoryTypeSelector

	pools     []*MemoryPool
	dedicated map[vk.DeviceMemory]*MemoryBlock

	stats AllocatorStats
}

type AllocatorStats struct {
	TotalAllocated       uint64
	TotalUsed            uint64
	PooledAllocations    uint64
	DedicatedAllocations uint64
	AllocationCount      uint64
}

var (
	ErrNoSuitableMemoryType = errors.New("memory: no suitable memory type")
	ErrAllocationFailed     = errors.New("memory: vkAllocateMemory failed")
	ErrInvalidBlock         = errors.New("memory: invalid memory block")
	ErrNotHostVisible       = errors.New("memory: block is not host-visible")
)

// NewGpuAllocator builds an allocator over a device's memory types, as
// reported by vkGetPhysicalDeviceMemoryProperties.
func NewGpuAllocator(cmds *vk.Commands, device vk.Device, props DeviceMemoryProperties, config AllocatorConfig) (*GpuAllocator, error) {
	if !isPowerOfTwo(config.BlockSize) {
		return nil, fmt.Errorf("memory: BlockSize must be a power of 2: %d", config.BlockSize)
	}
	if !isPowerOfTwo(config.MinAllocationSize) {
		return nil, fmt.Errorf("memory: MinAllocationSize must be a power of 2: %d", config.MinAllocationSize)
	}
	if config.MinAllocationSize > config.BlockSize {
		return nil, fmt.Errorf("memory: MinAllocationSize (%d) > BlockSize (%d)", config.MinAllocationSize, config.BlockSize)
	}

	selector := NewMemoryTypeSelector(props)

	pools := make([]*MemoryPool, len(props.MemoryTypes))
	for i := range props.MemoryTypes {
		pools[i] = &MemoryPool{
			memoryTypeIndex: uint32(i),
			blockSize:       config.BlockSize,
			minAllocSize:    config.MinAllocationSize,
			maxBlocks:       config.MaxBlocksPerHeap,
		}
	}

	return &GpuAllocator{
		device:    device,
		cmds:      cmds,
		config:    config,
		selector:  selector,
		pools:     pools,
		dedicated: make(map[vk.DeviceMemory]*MemoryBlock),
	}, nil
}

// Alloc reserves GPU memory satisfying req, suballocating from a pool
// unless the request is large enough to warrant a dedicated
// VkDeviceMemory allocation.
func (a *GpuAllocator) Alloc(req AllocationRequest) (*MemoryBlock, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	memTypeIndex, ok := a.selector.SelectMemoryType(req)
	if !ok {
		return nil, ErrNoSuitableMemoryType
	}

	alignment := req.Alignment
	if alignment < a.config.MinAllocationSize {
		alignment = a.config.MinAllocationSize
	}

	size := req.Size
	if size%alignment != 0 {
		size = ((size / alignment) + 1) * alignment
	}

	if size >= a.config.DedicatedThreshold {
		return a.allocDedicated(size, memTypeIndex)
	}
	return a.allocPooled(size, memTypeIndex)
}

func (a *GpuAllocator) allocDedicated(size uint64, memTypeIndex uint32) (*MemoryBlock, error) {
	memory, err := a.vulkanAllocate(size, memTypeIndex)
	if err != nil {
		return nil, err
	}

	block := &MemoryBlock{
		Memory:          memory,
		Size:            size,
		memoryTypeIndex: memTypeIndex,
		dedicated:       true,
	}
	a.dedicated[memory] = block
	a.stats.TotalAllocated += size
	a.stats.TotalUsed += size
	a.stats.DedicatedAllocations++
	a.stats.AllocationCount++
	return block, nil
}

func (a *GpuAllocator) allocPooled(size uint64, memTypeIndex uint32) (*MemoryBlock, error) {
	pool := a.pools[memTypeIndex]

	for _, block := range pool.blocks {
		if buddyBlock, err := block.buddy.Alloc(size); err == nil {
			memBlock := &MemoryBlock{
				Memory:          block.memory,
				Offset:          buddyBlock.Offset,
				Size:            buddyBlock.Size,
				memoryTypeIndex: memTypeIndex,
				buddyBlock:      &buddyBlock,
			}
			pool.stats.UsedSize += buddyBlock.Size
			pool.stats.AllocationCount++
			a.stats.TotalUsed += buddyBlock.Size
			a.stats.PooledAllocations++
			a.stats.AllocationCount++
			return memBlock, nil
		}
	}

	if len(pool.blocks) >= pool.maxBlocks {
		return a.allocDedicated(size, memTypeIndex)
	}

	memory, err := a.vulkanAllocate(pool.blockSize, memTypeIndex)
	if err != nil {
		return nil, err
	}

	buddy, err := NewBuddyAllocator(pool.blockSize, pool.minAllocSize)
	if err != nil {
		a.vulkanFree(memory)
		return nil, err
	}

	newBlock := &poolBlock{memory: memory, size: pool.blockSize, buddy: buddy}
	pool.blocks = append(pool.blocks, newBlock)
	pool.stats.BlockCount++
	pool.stats.TotalSize += pool.blockSize
	a.stats.TotalAllocated += pool.blockSize

	buddyBlock, err := buddy.Alloc(size)
	if err != nil {
		return nil, err
	}

	memBlock := &MemoryBlock{
		Memory:          memory,
		Offset:          buddyBlock.Offset,
		Size:            buddyBlock.Size,
		memoryTypeIndex: memTypeIndex,
		buddyBlock:      &buddyBlock,
	}
	pool.stats.UsedSize += buddyBlock.Size
	pool.stats.AllocationCount++
	a.stats.TotalUsed += buddyBlock.Size
	a.stats.PooledAllocations++
	a.stats.AllocationCount++
	return memBlock, nil
}

// Free releases a block acquired from Alloc.
func (a *GpuAllocator) Free(block *MemoryBlock) error {
	if block == nil {
		return ErrInvalidBlock
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if block.dedicated {
		return a.freeDedicated(block)
	}
	return a.freePooled(block)
}

func (a *GpuAllocator) freeDedicated(block *MemoryBlock) error {
	if _, ok := a.dedicated[block.Memory]; !ok {
		return ErrInvalidBlock
	}
	a.vulkanFree(block.Memory)
	delete(a.dedicated, block.Memory)

	a.stats.TotalAllocated -= block.Size
	a.stats.TotalUsed -= block.Size
	a.stats.DedicatedAllocations--
	a.stats.AllocationCount--
	return nil
}

func (a *GpuAllocator) freePooled(block *MemoryBlock) error {
	if block.buddyBlock == nil {
		return ErrInvalidBlock
	}
	pool := a.pools[block.memoryTypeIndex]

	for _, pb := range pool.blocks {
		if pb.memory != block.Memory {
			continue
		}
		if err := pb.buddy.Free(*block.buddyBlock); err != nil {
			return err
		}
		pool.stats.UsedSize -= block.buddyBlock.Size
		pool.stats.AllocationCount--
		a.stats.TotalUsed -= block.buddyBlock.Size
		a.stats.PooledAllocations--
		a.stats.AllocationCount--
		return nil
	}
	return ErrInvalidBlock
}

// Map maps a host-visible block into the process address space, storing
// the pointer on the block itself so Unmap can find it again.
func (a *GpuAllocator) Map(block *MemoryBlock) (unsafe.Pointer, error) {
	if !a.selector.IsHostVisible(block.memoryTypeIndex) {
		return nil, ErrNotHostVisible
	}
	var data unsafe.Pointer
	if result := a.cmds.MapMemory(a.device, block.Memory, block.Offset, block.Size, &data); result != vk.Success {
		return nil, fmt.Errorf("%w: vkMapMemory returned %s", ErrAllocationFailed, result)
	}
	block.MappedPtr = uintptr(data)
	return data, nil
}

// Unmap unmaps a block previously mapped with Map.
func (a *GpuAllocator) Unmap(block *MemoryBlock) {
	a.cmds.UnmapMemory(a.device, block.Memory)
	block.MappedPtr = 0
}

// Stats returns a snapshot of allocator-wide counters.
func (a *GpuAllocator) Stats() AllocatorStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// PoolStats returns the statistics for one memory-type pool.
func (a *GpuAllocator) PoolStats(memTypeIndex uint32) (PoolStats, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if int(memTypeIndex) >= len(a.pools) {
		return PoolStats{}, false
	}
	return a.pools[memTypeIndex].stats, true
}

// Destroy frees every live allocation. Call before destroying the
// VkDevice that owns this allocator.
func (a *GpuAllocator) Destroy() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for memory := range a.dedicated {
		a.vulkanFree(memory)
	}
	a.dedicated = make(map[vk.DeviceMemory]*MemoryBlock)

	for _, pool := range a.pools {
		for _, block := range pool.blocks {
			a.vulkanFree(block.memory)
		}
		pool.blocks = nil
		pool.stats = PoolStats{}
	}
	a.stats = AllocatorStats{}
}

func (a *GpuAllocator) vulkanAllocate(size uint64, memTypeIndex uint32) (vk.DeviceMemory, error) {
	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  size,
		MemoryTypeIndex: memTypeIndex,
	}
	var memory vk.DeviceMemory
	if result := a.cmds.AllocateMemory(a.device, &allocInfo, &memory); result != vk.Success {
		return 0, fmt.Errorf("%w: vkAllocateMemory returned %s", ErrAllocationFailed, result)
	}
	return memory, nil
}

func (a *GpuAllocator) vulkanFree(memory vk.DeviceMemory) {
	a.cmds.FreeMemory(a.device, memory)
}

// Selector exposes the memory-type selector for callers (e.g. the
// resource factories) that need to ask IsDeviceLocal/IsHostVisible
// questions directly.
func (a *GpuAllocator) Selector() *MemoryTypeSelector { return a.selector }
