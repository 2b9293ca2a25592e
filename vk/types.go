// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package vk

// Dispatchable and non-dispatchable handles are both represented as
// uint64: on 64-bit platforms the Vulkan loader hands back a real pointer
// for dispatchable handles (Instance, PhysicalDevice, Device, Queue,
// CommandBuffer) and an opaque 64-bit integer for non-dispatchable ones.
// Neither is ever dereferenced from Go, so a flat uint64 is sufficient and
// keeps struct layout rules simple when these appear as fields in
// create-info structs passed across the FFI boundary.
type (
	Instance             uint64
	PhysicalDevice        uint64
	Device                uint64
	Queue                 uint64
	CommandBuffer         uint64
	CommandPool           uint64
	Buffer                uint64
	BufferView            uint64
	Image                 uint64
	ImageView             uint64
	Sampler               uint64
	DeviceMemory          uint64
	ShaderModule          uint64
	RenderPass            uint64
	Framebuffer           uint64
	Pipeline              uint64
	PipelineLayout        uint64
	PipelineCache         uint64
	DescriptorSetLayout   uint64
	DescriptorPool        uint64
	DescriptorSet         uint64
	Semaphore             uint64
	Fence                 uint64
	QueryPool             uint64
	SurfaceKHR            uint64
	SwapchainKHR          uint64
	DebugUtilsMessengerEXT uint64
	DeviceAddress         uint64
)

// Result mirrors VkResult. Non-negative values are success codes.
type Result int32

const (
	Success                   Result = 0
	NotReady                  Result = 1
	Timeout                   Result = 2
	EventSet                  Result = 3
	EventReset                Result = 4
	Incomplete                Result = 5
	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost           Result = -4
	ErrorMemoryMapFailed      Result = -5
	ErrorLayerNotPresent      Result = -6
	ErrorExtensionNotPresent  Result = -7
	ErrorFeatureNotPresent    Result = -8
	ErrorIncompatibleDriver   Result = -9
	ErrorSurfaceLostKHR       Result = -1000000000
	ErrorOutOfDateKHR         Result = -1000001004
	SuboptimalKHR             Result = 1000001003
)

func (r Result) IsSuccess() bool { return r >= 0 }

func (r Result) String() string {
	switch r {
	case Success:
		return "VK_SUCCESS"
	case NotReady:
		return "VK_NOT_READY"
	case Timeout:
		return "VK_TIMEOUT"
	case Incomplete:
		return "VK_INCOMPLETE"
	case ErrorOutOfHostMemory:
		return "VK_ERROR_OUT_OF_HOST_MEMORY"
	case ErrorOutOfDeviceMemory:
		return "VK_ERROR_OUT_OF_DEVICE_MEMORY"
	case ErrorDeviceLost:
		return "VK_ERROR_DEVICE_LOST"
	case ErrorSurfaceLostKHR:
		return "VK_ERROR_SURFACE_LOST_KHR"
	case ErrorOutOfDateKHR:
		return "VK_ERROR_OUT_OF_DATE_KHR"
	case SuboptimalKHR:
		return "VK_SUBOPTIMAL_KHR"
	default:
		return "VK_RESULT(" + itoa(int32(r)) + ")"
	}
}

func itoa(v int32) string {
	neg := v < 0
	if neg {
		v = -v
	}
	if v == 0 {
		return "0"
	}
	var buf [12]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// StructureType mirrors VkStructureType for the subset of create-info
// structs this package defines.
type StructureType uint32

const (
	StructureTypeApplicationInfo                  StructureType = 0
	StructureTypeInstanceCreateInfo               StructureType = 1
	StructureTypeDeviceQueueCreateInfo            StructureType = 2
	StructureTypeDeviceCreateInfo                 StructureType = 3
	StructureTypeSubmitInfo                       StructureType = 4
	StructureTypeMemoryAllocateInfo                StructureType = 5
	StructureTypeFenceCreateInfo                  StructureType = 8
	StructureTypeSemaphoreCreateInfo               StructureType = 9
	StructureTypeBufferCreateInfo                  StructureType = 12
	StructureTypeBufferViewCreateInfo              StructureType = 13
	StructureTypeImageCreateInfo                   StructureType = 14
	StructureTypeImageViewCreateInfo               StructureType = 15
	StructureTypeShaderModuleCreateInfo            StructureType = 16
	StructureTypePipelineCacheCreateInfo           StructureType = 17
	StructureTypePipelineShaderStageCreateInfo     StructureType = 18
	StructureTypePipelineVertexInputStateCreateInfo StructureType = 19
	StructureTypePipelineInputAssemblyStateCreateInfo StructureType = 20
	StructureTypePipelineViewportStateCreateInfo   StructureType = 22
	StructureTypePipelineRasterizationStateCreateInfo StructureType = 23
	StructureTypePipelineMultisampleStateCreateInfo StructureType = 24
	StructureTypePipelineDepthStencilStateCreateInfo StructureType = 25
	StructureTypePipelineColorBlendStateCreateInfo StructureType = 26
	StructureTypePipelineDynamicStateCreateInfo    StructureType = 27
	StructureTypeGraphicsPipelineCreateInfo        StructureType = 28
	StructureTypeComputePipelineCreateInfo         StructureType = 29
	StructureTypePipelineLayoutCreateInfo          StructureType = 30
	StructureTypeSamplerCreateInfo                 StructureType = 31
	StructureTypeDescriptorSetLayoutCreateInfo     StructureType = 32
	StructureTypeDescriptorPoolCreateInfo          StructureType = 33
	StructureTypeDescriptorSetAllocateInfo         StructureType = 34
	StructureTypeWriteDescriptorSet                StructureType = 35
	StructureTypeCopyDescriptorSet                 StructureType = 36
	StructureTypeFramebufferCreateInfo             StructureType = 37
	StructureTypeRenderPassCreateInfo              StructureType = 38
	StructureTypeCommandPoolCreateInfo             StructureType = 39
	StructureTypeCommandBufferAllocateInfo         StructureType = 40
	StructureTypeCommandBufferInheritanceInfo      StructureType = 41
	StructureTypeCommandBufferBeginInfo            StructureType = 42
	StructureTypeRenderPassBeginInfo               StructureType = 43
	StructureTypeQueryPoolCreateInfo                StructureType = 11
	StructureTypeBufferMemoryBarrier                StructureType = 44
	StructureTypeImageMemoryBarrier                 StructureType = 45
	StructureTypeSwapchainCreateInfoKHR            StructureType = 1000001000
	StructureTypePresentInfoKHR                    StructureType = 1000001001
	StructureTypePipelineRenderingCreateInfo       StructureType = 1000044002
)

type Extent2D struct{ Width, Height uint32 }
type Extent3D struct{ Width, Height, Depth uint32 }
type Offset2D struct{ X, Y int32 }
type Offset3D struct{ X, Y, Z int32 }
type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}
type Viewport struct {
	X, Y, Width, Height, MinDepth, MaxDepth float32
}

// ClearColorValue is a 16-byte union; float32 accessors cover every
// clear case this runtime needs.
type ClearColorValue [4]float32
type ClearDepthStencilValue struct {
	Depth   float32
	Stencil uint32
}
type ClearValue struct {
	Color        ClearColorValue
	DepthStencil ClearDepthStencilValue
}

type MemoryRequirements struct {
	Size           uint64
	Alignment      uint64
	MemoryTypeBits uint32
}

type MemoryRequirements2 struct {
	SType              StructureType
	PNext              uintptr
	MemoryRequirements MemoryRequirements
}

type AllocationCallbacks struct {
	// Left opaque: this runtime never installs custom host allocators,
	// so every *AllocationCallbacks argument is passed as nil.
	_ [0]byte
}

// LayerProperties mirrors VkLayerProperties, returned by
// vkEnumerateInstanceLayerProperties.
type LayerProperties struct {
	LayerName      [256]byte
	SpecVersion    uint32
	ImplVersion    uint32
	Description    [256]byte
}

type ApplicationInfo struct {
	SType              StructureType
	PNext              uintptr
	PApplicationName   *byte
	ApplicationVersion uint32
	PEngineName        *byte
	EngineVersion      uint32
	ApiVersion         uint32
}

type InstanceCreateInfo struct {
	SType                   StructureType
	PNext                   uintptr
	Flags                   uint32
	PApplicationInfo        *ApplicationInfo
	EnabledLayerCount       uint32
	PpEnabledLayerNames     **byte
	EnabledExtensionCount   uint32
	PpEnabledExtensionNames **byte
}

type DeviceQueueCreateInfo struct {
	SType            StructureType
	PNext            uintptr
	Flags            uint32
	QueueFamilyIndex uint32
	QueueCount       uint32
	PQueuePriorities *float32
}

type PhysicalDeviceFeatures struct {
	// Only the handful of fields this core ever toggles; the remainder
	// of the ~55-field Vulkan struct defaults to false (0) which matches
	// a zero-valued Go struct, since every field is a uint32 boolean.
	RobustBufferAccess      uint32
	FullDrawIndexUint32     uint32
	SamplerAnisotropy       uint32
	FragmentStoresAndAtomics uint32
	_pad                    [48]uint32
}

type DeviceCreateInfo struct {
	SType                   StructureType
	PNext                   uintptr
	Flags                   uint32
	QueueCreateInfoCount    uint32
	PQueueCreateInfos       *DeviceQueueCreateInfo
	EnabledLayerCount       uint32
	PpEnabledLayerNames     **byte
	EnabledExtensionCount   uint32
	PpEnabledExtensionNames **byte
	PEnabledFeatures        *PhysicalDeviceFeatures
}

type QueueFamilyProperties struct {
	QueueFlags                 uint32
	QueueCount                 uint32
	TimestampValidBits         uint32
	MinImageTransferGranularity Extent3D
}

type PhysicalDeviceProperties struct {
	ApiVersion        uint32
	DriverVersion     uint32
	VendorID          uint32
	DeviceID          uint32
	DeviceType        uint32
	DeviceName        [256]byte
	PipelineCacheUUID [16]byte
	Limits            PhysicalDeviceLimits
	SparseProperties  [16]byte
}

// PhysicalDeviceLimits is trimmed to the fields this core reads
// (timestamp period for the profiler, alignment for the allocator); the
// struct's true size in the driver ABI is padded to match so later
// fields in PhysicalDeviceProperties still land at the right offset.
type PhysicalDeviceLimits struct {
	MaxImageDimension2D              uint32
	_pad0                            [27]uint32
	MinUniformBufferOffsetAlignment  uint64
	MinStorageBufferOffsetAlignment  uint64
	_pad1                            [30]uint32
	TimestampComputeAndGraphics      uint32
	TimestampPeriod                  float32
	_pad2                            [20]uint32
}

type MemoryType struct {
	PropertyFlags uint32
	HeapIndex     uint32
}
type MemoryHeap struct {
	Size  uint64
	Flags uint32
}
type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [32]MemoryType
	MemoryHeapCount uint32
	MemoryHeaps     [16]MemoryHeap
}

type MemoryAllocateInfo struct {
	SType           StructureType
	PNext           uintptr
	AllocationSize  uint64
	MemoryTypeIndex uint32
}

type BufferCreateInfo struct {
	SType                 StructureType
	PNext                 uintptr
	Flags                 uint32
	Size                  uint64
	Usage                 BufferUsageFlags
	SharingMode           uint32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
}

type BufferUsageFlags uint32

const (
	BufferUsageTransferSrc    BufferUsageFlags = 1 << 0
	BufferUsageTransferDst    BufferUsageFlags = 1 << 1
	BufferUsageUniformTexel   BufferUsageFlags = 1 << 2
	BufferUsageStorageTexel   BufferUsageFlags = 1 << 3
	BufferUsageUniformBuffer  BufferUsageFlags = 1 << 4
	BufferUsageStorageBuffer  BufferUsageFlags = 1 << 5
	BufferUsageIndexBuffer    BufferUsageFlags = 1 << 6
	BufferUsageVertexBuffer   BufferUsageFlags = 1 << 7
	BufferUsageIndirectBuffer BufferUsageFlags = 1 << 8
)

type ImageCreateInfo struct {
	SType                 StructureType
	PNext                 uintptr
	Flags                 uint32
	ImageType             uint32
	Format                Format
	Extent                Extent3D
	MipLevels             uint32
	ArrayLayers           uint32
	Samples               uint32
	Tiling                uint32
	Usage                 ImageUsageFlags
	SharingMode           uint32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
	InitialLayout         ImageLayout
}

type ImageUsageFlags uint32

const (
	ImageUsageTransferSrc            ImageUsageFlags = 1 << 0
	ImageUsageTransferDst            ImageUsageFlags = 1 << 1
	ImageUsageSampled                ImageUsageFlags = 1 << 2
	ImageUsageStorage                ImageUsageFlags = 1 << 3
	ImageUsageColorAttachment        ImageUsageFlags = 1 << 4
	ImageUsageDepthStencilAttachment ImageUsageFlags = 1 << 5
	ImageUsageTransientAttachment    ImageUsageFlags = 1 << 6
	ImageUsageInputAttachment        ImageUsageFlags = 1 << 7
)

type ImageLayout uint32

const (
	ImageLayoutUndefined                    ImageLayout = 0
	ImageLayoutGeneral                      ImageLayout = 1
	ImageLayoutColorAttachmentOptimal        ImageLayout = 2
	ImageLayoutDepthStencilAttachmentOptimal ImageLayout = 3
	ImageLayoutDepthStencilReadOnlyOptimal   ImageLayout = 4
	ImageLayoutShaderReadOnlyOptimal         ImageLayout = 5
	ImageLayoutTransferSrcOptimal            ImageLayout = 6
	ImageLayoutTransferDstOptimal            ImageLayout = 7
	ImageLayoutPresentSrcKHR                 ImageLayout = 1000001002
)

type Format uint32

const (
	FormatUndefined        Format = 0
	FormatR8G8B8A8Unorm    Format = 37
	FormatR8G8B8A8Srgb     Format = 43
	FormatB8G8R8A8Unorm    Format = 44
	FormatB8G8R8A8Srgb     Format = 50
	FormatR16G16B16A16Sfloat Format = 97
	FormatR32G32B32A32Sfloat Format = 109
	FormatD32Sfloat        Format = 126
	FormatD24UnormS8Uint   Format = 129
	FormatD32SfloatS8Uint  Format = 130
)

type ComponentMapping struct {
	R, G, B, A uint32
}

// QueueFamilyIgnored marks a barrier as not transferring queue family
// ownership.
const QueueFamilyIgnored uint32 = 0xFFFFFFFF

// AccessFlags is VkAccessFlags: the read/write memory-access types a
// pipeline barrier synchronizes between.
type AccessFlags uint32

const (
	AccessIndirectCommandRead        AccessFlags = 1 << 0
	AccessIndexRead                  AccessFlags = 1 << 1
	AccessVertexAttributeRead        AccessFlags = 1 << 2
	AccessUniformRead                AccessFlags = 1 << 3
	AccessShaderRead                 AccessFlags = 1 << 5
	AccessShaderWrite                AccessFlags = 1 << 6
	AccessColorAttachmentRead        AccessFlags = 1 << 7
	AccessColorAttachmentWrite       AccessFlags = 1 << 8
	AccessDepthStencilAttachmentRead AccessFlags = 1 << 9
	AccessDepthStencilAttachmentWrite AccessFlags = 1 << 10
	AccessTransferRead               AccessFlags = 1 << 11
	AccessTransferWrite              AccessFlags = 1 << 12
	AccessHostRead                   AccessFlags = 1 << 13
	AccessHostWrite                  AccessFlags = 1 << 14
	AccessMemoryRead                 AccessFlags = 1 << 15
	AccessMemoryWrite                AccessFlags = 1 << 16
)

// BufferMemoryBarrier is VkBufferMemoryBarrier.
type BufferMemoryBarrier struct {
	SType               StructureType
	PNext               uintptr
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Buffer              Buffer
	Offset              uint64
	Size                uint64
}

// ImageMemoryBarrier is VkImageMemoryBarrier.
type ImageMemoryBarrier struct {
	SType               StructureType
	PNext               uintptr
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	OldLayout           ImageLayout
	NewLayout           ImageLayout
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               Image
	SubresourceRange    ImageSubresourceRange
}

type ImageSubresourceRange struct {
	AspectMask     ImageAspectFlags
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// ImageSubresourceLayers addresses one mip/layer range of an image for
// a copy or blit command.
type ImageSubresourceLayers struct {
	AspectMask     ImageAspectFlags
	MipLevel       uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// BufferImageCopy describes one region of a vkCmdCopyBufferToImage (or
// the image-to-buffer direction, unused by this module).
type BufferImageCopy struct {
	BufferOffset      uint64
	BufferRowLength   uint32
	BufferImageHeight uint32
	ImageSubresource  ImageSubresourceLayers
	ImageOffset       Offset3D
	ImageExtent       Extent3D
}

// ImageBlit describes one region of a vkCmdBlitImage, used to
// downsample each mip level from the one above it during mipmap
// generation.
type ImageBlit struct {
	SrcSubresource ImageSubresourceLayers
	SrcOffsets     [2]Offset3D
	DstSubresource ImageSubresourceLayers
	DstOffsets     [2]Offset3D
}

type ImageAspectFlags uint32

const (
	ImageAspectColor   ImageAspectFlags = 1 << 0
	ImageAspectDepth   ImageAspectFlags = 1 << 1
	ImageAspectStencil ImageAspectFlags = 1 << 2
)

type ImageViewCreateInfo struct {
	SType            StructureType
	PNext            uintptr
	Flags            uint32
	Image            Image
	ViewType         uint32
	Format           Format
	Components       ComponentMapping
	SubresourceRange ImageSubresourceRange
}

type SamplerCreateInfo struct {
	SType                   StructureType
	PNext                   uintptr
	Flags                   uint32
	MagFilter               uint32
	MinFilter               uint32
	MipmapMode              uint32
	AddressModeU            uint32
	AddressModeV            uint32
	AddressModeW            uint32
	MipLodBias              float32
	AnisotropyEnable        uint32
	MaxAnisotropy           float32
	CompareEnable           uint32
	CompareOp               uint32
	MinLod                  float32
	MaxLod                  float32
	BorderColor              uint32
	UnnormalizedCoordinates uint32
}

type AttachmentDescription struct {
	Flags          uint32
	Format         Format
	Samples        uint32
	LoadOp         AttachmentLoadOp
	StoreOp        AttachmentStoreOp
	StencilLoadOp  AttachmentLoadOp
	StencilStoreOp AttachmentStoreOp
	InitialLayout  ImageLayout
	FinalLayout    ImageLayout
}

type AttachmentLoadOp uint32
type AttachmentStoreOp uint32

const (
	AttachmentLoadOpLoad     AttachmentLoadOp = 0
	AttachmentLoadOpClear    AttachmentLoadOp = 1
	AttachmentLoadOpDontCare AttachmentLoadOp = 2

	AttachmentStoreOpStore    AttachmentStoreOp = 0
	AttachmentStoreOpDontCare AttachmentStoreOp = 1
)

type AttachmentReference struct {
	Attachment uint32
	Layout     ImageLayout
}

type SubpassDescription struct {
	Flags                   uint32
	PipelineBindPoint       uint32
	InputAttachmentCount    uint32
	PInputAttachments       *AttachmentReference
	ColorAttachmentCount    uint32
	PColorAttachments       *AttachmentReference
	PResolveAttachments     *AttachmentReference
	PDepthStencilAttachment *AttachmentReference
	PreserveAttachmentCount uint32
	PPreserveAttachments    *uint32
}

type SubpassDependency struct {
	SrcSubpass      uint32
	DstSubpass      uint32
	SrcStageMask    PipelineStageFlagBits
	DstStageMask    PipelineStageFlagBits
	SrcAccessMask   uint32
	DstAccessMask   uint32
	DependencyFlags uint32
}

type RenderPassCreateInfo struct {
	SType           StructureType
	PNext           uintptr
	Flags           uint32
	AttachmentCount uint32
	PAttachments    *AttachmentDescription
	SubpassCount    uint32
	PSubpasses      *SubpassDescription
	DependencyCount uint32
	PDependencies   *SubpassDependency
}

type FramebufferCreateInfo struct {
	SType           StructureType
	PNext           uintptr
	Flags           uint32
	RenderPass      RenderPass
	AttachmentCount uint32
	PAttachments    *ImageView
	Width           uint32
	Height          uint32
	Layers          uint32
}

type RenderPassBeginInfo struct {
	SType           StructureType
	PNext           uintptr
	RenderPass      RenderPass
	Framebuffer     Framebuffer
	RenderArea      Rect2D
	ClearValueCount uint32
	PClearValues    *ClearValue
}

type ShaderModuleCreateInfo struct {
	SType    StructureType
	PNext    uintptr
	Flags    uint32
	CodeSize uintptr
	PCode    *uint32
}

type PipelineShaderStageCreateInfo struct {
	SType               StructureType
	PNext               uintptr
	Flags               uint32
	Stage               ShaderStageFlagBits
	Module              ShaderModule
	PName               *byte
	PSpecializationInfo uintptr
}

type ShaderStageFlagBits uint32

const (
	ShaderStageVertex   ShaderStageFlagBits = 1 << 0
	ShaderStageFragment ShaderStageFlagBits = 1 << 4
	ShaderStageCompute  ShaderStageFlagBits = 1 << 5
)

type VertexInputBindingDescription struct {
	Binding   uint32
	Stride    uint32
	InputRate uint32
}
type VertexInputAttributeDescription struct {
	Location uint32
	Binding  uint32
	Format   Format
	Offset   uint32
}
type PipelineVertexInputStateCreateInfo struct {
	SType                           StructureType
	PNext                           uintptr
	Flags                           uint32
	VertexBindingDescriptionCount   uint32
	PVertexBindingDescriptions      *VertexInputBindingDescription
	VertexAttributeDescriptionCount uint32
	PVertexAttributeDescriptions    *VertexInputAttributeDescription
}

type PipelineInputAssemblyStateCreateInfo struct {
	SType                  StructureType
	PNext                  uintptr
	Flags                  uint32
	Topology               uint32
	PrimitiveRestartEnable uint32
}

type PipelineViewportStateCreateInfo struct {
	SType         StructureType
	PNext         uintptr
	Flags         uint32
	ViewportCount uint32
	PViewports    *Viewport
	ScissorCount  uint32
	PScissors     *Rect2D
}

type PipelineRasterizationStateCreateInfo struct {
	SType                   StructureType
	PNext                   uintptr
	Flags                   uint32
	DepthClampEnable        uint32
	RasterizerDiscardEnable uint32
	PolygonMode             uint32
	CullMode                uint32
	FrontFace               uint32
	DepthBiasEnable         uint32
	DepthBiasConstantFactor float32
	DepthBiasClamp          float32
	DepthBiasSlopeFactor    float32
	LineWidth               float32
}

type PipelineMultisampleStateCreateInfo struct {
	SType                 StructureType
	PNext                 uintptr
	Flags                 uint32
	RasterizationSamples  uint32
	SampleShadingEnable   uint32
	MinSampleShading      float32
	PSampleMask           uintptr
	AlphaToCoverageEnable uint32
	AlphaToOneEnable      uint32
}

type StencilOpState struct {
	FailOp      uint32
	PassOp      uint32
	DepthFailOp uint32
	CompareOp   uint32
	CompareMask uint32
	WriteMask   uint32
	Reference   uint32
}

type PipelineDepthStencilStateCreateInfo struct {
	SType                 StructureType
	PNext                 uintptr
	Flags                 uint32
	DepthTestEnable       uint32
	DepthWriteEnable      uint32
	DepthCompareOp        uint32
	DepthBoundsTestEnable uint32
	StencilTestEnable     uint32
	Front                 StencilOpState
	Back                  StencilOpState
	MinDepthBounds        float32
	MaxDepthBounds        float32
}

type PipelineColorBlendAttachmentState struct {
	BlendEnable         uint32
	SrcColorBlendFactor uint32
	DstColorBlendFactor uint32
	ColorBlendOp        uint32
	SrcAlphaBlendFactor uint32
	DstAlphaBlendFactor uint32
	AlphaBlendOp        uint32
	ColorWriteMask      uint32
}

type PipelineColorBlendStateCreateInfo struct {
	SType           StructureType
	PNext           uintptr
	Flags           uint32
	LogicOpEnable   uint32
	LogicOp         uint32
	AttachmentCount uint32
	PAttachments    *PipelineColorBlendAttachmentState
	BlendConstants  [4]float32
}

type PipelineDynamicStateCreateInfo struct {
	SType             StructureType
	PNext             uintptr
	Flags             uint32
	DynamicStateCount uint32
	PDynamicStates    *uint32
}

type PushConstantRange struct {
	StageFlags ShaderStageFlagBits
	Offset     uint32
	Size       uint32
}

type PipelineLayoutCreateInfo struct {
	SType                  StructureType
	PNext                  uintptr
	Flags                  uint32
	SetLayoutCount         uint32
	PSetLayouts            *DescriptorSetLayout
	PushConstantRangeCount uint32
	PPushConstantRanges    *PushConstantRange
}

type GraphicsPipelineCreateInfo struct {
	SType               StructureType
	PNext               uintptr
	Flags               uint32
	StageCount          uint32
	PStages             *PipelineShaderStageCreateInfo
	PVertexInputState   *PipelineVertexInputStateCreateInfo
	PInputAssemblyState *PipelineInputAssemblyStateCreateInfo
	PTessellationState  uintptr
	PViewportState      *PipelineViewportStateCreateInfo
	PRasterizationState *PipelineRasterizationStateCreateInfo
	PMultisampleState   *PipelineMultisampleStateCreateInfo
	PDepthStencilState  *PipelineDepthStencilStateCreateInfo
	PColorBlendState    *PipelineColorBlendStateCreateInfo
	PDynamicState       *PipelineDynamicStateCreateInfo
	Layout              PipelineLayout
	RenderPass          RenderPass
	Subpass             uint32
	BasePipelineHandle  Pipeline
	BasePipelineIndex   int32
}

type ComputePipelineCreateInfo struct {
	SType              StructureType
	PNext              uintptr
	Flags              uint32
	Stage              PipelineShaderStageCreateInfo
	Layout             PipelineLayout
	BasePipelineHandle Pipeline
	BasePipelineIndex  int32
}

type DescriptorSetLayoutBinding struct {
	Binding            uint32
	DescriptorType     DescriptorType
	DescriptorCount    uint32
	StageFlags         ShaderStageFlagBits
	PImmutableSamplers *Sampler
}

type DescriptorType uint32

const (
	DescriptorTypeSampler              DescriptorType = 0
	DescriptorTypeCombinedImageSampler DescriptorType = 1
	DescriptorTypeSampledImage         DescriptorType = 2
	DescriptorTypeStorageImage         DescriptorType = 3
	DescriptorTypeUniformTexelBuffer   DescriptorType = 4
	DescriptorTypeStorageTexelBuffer   DescriptorType = 5
	DescriptorTypeUniformBuffer        DescriptorType = 6
	DescriptorTypeStorageBuffer        DescriptorType = 7
	DescriptorTypeUniformBufferDynamic DescriptorType = 8
	DescriptorTypeStorageBufferDynamic DescriptorType = 9
	DescriptorTypeInputAttachment      DescriptorType = 10
)

type DescriptorSetLayoutCreateInfo struct {
	SType        StructureType
	PNext        uintptr
	Flags        uint32
	BindingCount uint32
	PBindings    *DescriptorSetLayoutBinding
}

type DescriptorPoolSize struct {
	Type            DescriptorType
	DescriptorCount uint32
}

type DescriptorPoolCreateInfo struct {
	SType         StructureType
	PNext         uintptr
	Flags         uint32
	MaxSets       uint32
	PoolSizeCount uint32
	PPoolSizes    *DescriptorPoolSize
}

type DescriptorSetAllocateInfo struct {
	SType              StructureType
	PNext              uintptr
	DescriptorPool     DescriptorPool
	DescriptorSetCount uint32
	PSetLayouts        *DescriptorSetLayout
}

type DescriptorImageInfo struct {
	Sampler     Sampler
	ImageView   ImageView
	ImageLayout ImageLayout
}

type DescriptorBufferInfo struct {
	Buffer Buffer
	Offset uint64
	Range  uint64
}

type WriteDescriptorSet struct {
	SType            StructureType
	PNext            uintptr
	DstSet           DescriptorSet
	DstBinding       uint32
	DstArrayElement  uint32
	DescriptorCount  uint32
	DescriptorType   DescriptorType
	PImageInfo       *DescriptorImageInfo
	PBufferInfo      *DescriptorBufferInfo
	PTexelBufferView *BufferView
}

type CommandPoolCreateInfo struct {
	SType            StructureType
	PNext            uintptr
	Flags            uint32
	QueueFamilyIndex uint32
}

type CommandBufferAllocateInfo struct {
	SType              StructureType
	PNext              uintptr
	CommandPool        CommandPool
	Level              uint32
	CommandBufferCount uint32
}

type CommandBufferBeginInfo struct {
	SType            StructureType
	PNext            uintptr
	Flags            uint32
	PInheritanceInfo uintptr
}

// CommandBufferInheritanceInfo tells a secondary command buffer which
// render pass/subpass/framebuffer it will be executed within, required
// when it's begun with CommandBufferUsageRenderPassContinueBit set.
type CommandBufferInheritanceInfo struct {
	SType                StructureType
	PNext                uintptr
	RenderPass           RenderPass
	Subpass              uint32
	Framebuffer          Framebuffer
	OcclusionQueryEnable uint32
	QueryFlags           uint32
	PipelineStatistics   uint32
}

type SubmitInfo struct {
	SType                StructureType
	PNext                uintptr
	WaitSemaphoreCount   uint32
	PWaitSemaphores      *Semaphore
	PWaitDstStageMask    *PipelineStageFlagBits
	CommandBufferCount   uint32
	PCommandBuffers      *CommandBuffer
	SignalSemaphoreCount uint32
	PSignalSemaphores    *Semaphore
}

type PipelineStageFlagBits uint32

const (
	PipelineStageTopOfPipe          PipelineStageFlagBits = 1 << 0
	PipelineStageDrawIndirect       PipelineStageFlagBits = 1 << 1
	PipelineStageVertexInput        PipelineStageFlagBits = 1 << 2
	PipelineStageVertexShader       PipelineStageFlagBits = 1 << 3
	PipelineStageFragmentShader     PipelineStageFlagBits = 1 << 7
	PipelineStageEarlyFragmentTests PipelineStageFlagBits = 1 << 8
	PipelineStageLateFragmentTests  PipelineStageFlagBits = 1 << 9
	PipelineStageColorAttachmentOut PipelineStageFlagBits = 1 << 10
	PipelineStageComputeShader      PipelineStageFlagBits = 1 << 11
	PipelineStageTransfer           PipelineStageFlagBits = 1 << 12
	PipelineStageBottomOfPipe       PipelineStageFlagBits = 1 << 13
	PipelineStageHost               PipelineStageFlagBits = 1 << 14
	PipelineStageAllCommands        PipelineStageFlagBits = 1 << 16
)

type FenceCreateInfo struct {
	SType StructureType
	PNext uintptr
	Flags uint32
}

type SemaphoreCreateInfo struct {
	SType StructureType
	PNext uintptr
	Flags uint32
}

type QueryPoolCreateInfo struct {
	SType              StructureType
	PNext              uintptr
	Flags              uint32
	QueryType          uint32
	QueryCount         uint32
	PipelineStatistics uint32
}

type QueryResultFlags uint32

const (
	QueryResult64              QueryResultFlags = 1 << 0
	QueryResultWait            QueryResultFlags = 1 << 1
	QueryResultWithAvailability QueryResultFlags = 1 << 2
)

type SwapchainCreateInfoKHR struct {
	SType                 StructureType
	PNext                 uintptr
	Flags                 uint32
	Surface               SurfaceKHR
	MinImageCount         uint32
	ImageFormat           Format
	ImageColorSpace       uint32
	ImageExtent           Extent2D
	ImageArrayLayers      uint32
	ImageUsage            ImageUsageFlags
	ImageSharingMode      uint32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
	PreTransform          uint32
	CompositeAlpha        uint32
	PresentMode           uint32
	Clipped               uint32
	OldSwapchain          SwapchainKHR
}

type PresentInfoKHR struct {
	SType              StructureType
	PNext              uintptr
	WaitSemaphoreCount uint32
	PWaitSemaphores    *Semaphore
	SwapchainCount     uint32
	PSwapchains        *SwapchainKHR
	PImageIndices      *uint32
	PResults           *Result
}

const (
	ColorSpaceSrgbNonlinear uint32 = 0

	PresentModeImmediate   uint32 = 0
	PresentModeMailbox     uint32 = 1
	PresentModeFifo        uint32 = 2
	PresentModeFifoRelaxed uint32 = 3

	CompositeAlphaOpaqueBit uint32 = 1 << 0

	SurfaceTransformIdentityBit uint32 = 1 << 0
)

// SurfaceCapabilitiesKHR mirrors VkSurfaceCapabilitiesKHR.
type SurfaceCapabilitiesKHR struct {
	MinImageCount           uint32
	MaxImageCount            uint32
	CurrentExtent           Extent2D
	MinImageExtent          Extent2D
	MaxImageExtent          Extent2D
	MaxImageArrayLayers     uint32
	SupportedTransforms     uint32
	CurrentTransform        uint32
	SupportedCompositeAlpha uint32
	SupportedUsageFlags     ImageUsageFlags
}
