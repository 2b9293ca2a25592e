// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package vk

// DeviceSize mirrors VkDeviceSize; kept distinct from plain uint64 at the
// call sites that came from the teacher's generated bindings, even
// though the underlying representation is identical.
type DeviceSize = uint64

type SharingMode uint32

const (
	SharingModeExclusive  SharingMode = 0
	SharingModeConcurrent SharingMode = 1
)

type MemoryPropertyFlags uint32

const (
	MemoryPropertyDeviceLocalBit     MemoryPropertyFlags = 1 << 0
	MemoryPropertyHostVisibleBit     MemoryPropertyFlags = 1 << 1
	MemoryPropertyHostCoherentBit    MemoryPropertyFlags = 1 << 2
	MemoryPropertyHostCachedBit      MemoryPropertyFlags = 1 << 3
	MemoryPropertyLazilyAllocatedBit MemoryPropertyFlags = 1 << 4
)

type MemoryHeapFlags uint32

const MemoryHeapDeviceLocalBit MemoryHeapFlags = 1 << 0

type SampleCountFlagBits uint32

const (
	SampleCount1  SampleCountFlagBits = 1 << 0
	SampleCount2  SampleCountFlagBits = 1 << 1
	SampleCount4  SampleCountFlagBits = 1 << 2
	SampleCount8  SampleCountFlagBits = 1 << 3
	SampleCount16 SampleCountFlagBits = 1 << 4
)

const (
	ImageTilingOptimal uint32 = 0
	ImageTilingLinear  uint32 = 1
)

const (
	ImageTypeCube2D uint32 = 1000 // sentinel: no native VkImageType value; callers map VIEW_TYPE_CUBE separately
	ImageType1D     uint32 = 0
	ImageType2D     uint32 = 1
	ImageType3D     uint32 = 2
)

const (
	ImageViewType1D      uint32 = 0
	ImageViewType2D      uint32 = 1
	ImageViewType3D      uint32 = 2
	ImageViewTypeCube    uint32 = 3
	ImageViewType1DArray uint32 = 4
	ImageViewType2DArray uint32 = 5
)

type CommandPoolCreateFlags uint32

const (
	CommandPoolCreateTransientBit          CommandPoolCreateFlags = 1 << 0
	CommandPoolCreateResetCommandBufferBit CommandPoolCreateFlags = 1 << 1
)

const (
	CommandBufferLevelPrimary   uint32 = 0
	CommandBufferLevelSecondary uint32 = 1
)

type CommandBufferUsageFlags uint32

const (
	CommandBufferUsageOneTimeSubmitBit      CommandBufferUsageFlags = 1 << 0
	CommandBufferUsageRenderPassContinueBit CommandBufferUsageFlags = 1 << 1
)

// SubpassContents selects how a render pass's commands are recorded:
// inline into the primary buffer, or split across secondary buffers
// the primary later inlines with vkCmdExecuteCommands.
const (
	SubpassContentsInline                  uint32 = 0
	SubpassContentsSecondaryCommandBuffers uint32 = 1
)

const (
	PipelineBindPointGraphics uint32 = 0
	PipelineBindPointCompute  uint32 = 1
)

const (
	IndexTypeUint16 uint32 = 0
	IndexTypeUint32 uint32 = 1
)

const (
	QueryTypeTimestamp uint32 = 2
)

const (
	FilterNearest uint32 = 0
	FilterLinear  uint32 = 1

	SamplerMipmapModeNearest uint32 = 0
	SamplerMipmapModeLinear  uint32 = 1

	SamplerAddressModeRepeat         uint32 = 0
	SamplerAddressModeMirroredRepeat uint32 = 1
	SamplerAddressModeClampToEdge    uint32 = 2
	SamplerAddressModeClampToBorder  uint32 = 3
)

const (
	CompareOpNever        uint32 = 0
	CompareOpLess         uint32 = 1
	CompareOpEqual        uint32 = 2
	CompareOpLessOrEqual  uint32 = 3
	CompareOpGreater      uint32 = 4
	CompareOpNotEqual     uint32 = 5
	CompareOpGreaterOrEqual uint32 = 6
	CompareOpAlways       uint32 = 7
)

const (
	PrimitiveTopologyPointList     uint32 = 0
	PrimitiveTopologyLineList      uint32 = 1
	PrimitiveTopologyTriangleList  uint32 = 3
	PrimitiveTopologyTriangleStrip uint32 = 4
)

const (
	PolygonModeFill  uint32 = 0
	PolygonModeLine  uint32 = 1
	PolygonModePoint uint32 = 2
)

const (
	CullModeNone         uint32 = 0
	CullModeFrontBit     uint32 = 1 << 0
	CullModeBackBit      uint32 = 1 << 1
	CullModeFrontAndBack uint32 = 0x3
)

const (
	FrontFaceCounterClockwise uint32 = 0
	FrontFaceClockwise        uint32 = 1
)

const (
	DynamicStateViewport uint32 = 0
	DynamicStateScissor  uint32 = 1
)

const (
	BlendFactorZero            uint32 = 0
	BlendFactorOne             uint32 = 1
	BlendFactorSrcAlpha        uint32 = 6
	BlendFactorOneMinusSrcAlpha uint32 = 7
)

const (
	BlendOpAdd uint32 = 0
)

const ColorComponentAll uint32 = 0xF

type QueueFlags uint32

const (
	QueueGraphicsBit      QueueFlags = 1 << 0
	QueueComputeBit       QueueFlags = 1 << 1
	QueueTransferBit      QueueFlags = 1 << 2
	QueueSparseBindingBit QueueFlags = 1 << 3
)

// PhysicalDeviceType mirrors VkPhysicalDeviceType; DeviceType in
// PhysicalDeviceProperties is stored as a plain uint32 since it shares a
// struct with other raw fields, but callers comparing it should use
// these named constants.
const (
	PhysicalDeviceTypeOther         uint32 = 0
	PhysicalDeviceTypeIntegratedGPU uint32 = 1
	PhysicalDeviceTypeDiscreteGPU   uint32 = 2
	PhysicalDeviceTypeVirtualGPU    uint32 = 3
	PhysicalDeviceTypeCPU           uint32 = 4
)

// MakeApiVersion mirrors VK_MAKE_API_VERSION(variant, major, minor, patch).
func MakeApiVersion(variant, major, minor, patch uint32) uint32 {
	return (variant << 29) | (major << 22) | (minor << 12) | patch
}

const ApiVersion1_3 = uint32(0)<<29 | 1<<22 | 3<<12 | 0

const (
	False uint32 = 0
	True  uint32 = 1
)
