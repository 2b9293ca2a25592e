// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

// Package device owns Vulkan instance/device bring-up, the swapchain,
// per-frame synchronization, the GPU memory allocator, and the
// timestamp query pool — everything a Renderer needs before it can
// start walking a frame graph.
package device

// MaxFrames is the number of frames the CPU is allowed to run ahead of
// the GPU. Two is double-buffering, three triple-buffering; higher
// values smooth frame-time variance at the cost of input latency.
const MaxFrames = 3

// Config are the renderer creation options from spec.md §6, "Renderer
// creation options".
type Config struct {
	AppVersion    uint32
	DebugMode     bool
	AppName       string
	EngineName    string

	// CommandBuffersPerFrame bounds how many primary/secondary command
	// buffers the CommandBuffer Pool preallocates per frame slot.
	CommandBuffersPerFrame uint32

	// WorkerThreads sizes the CommandBuffer Pool's secondary-pool
	// partition: spec.md §4.5.1's "kMaxFrames x (1 + worker_threads)
	// pools", slots 1..WorkerThreads per frame. Zero means single-
	// threaded recording (no secondary command buffers).
	WorkerThreads uint32

	// DescriptorSetsPoolSize and DescriptorPoolElements size the global
	// descriptor pool created in bring-up step 7.
	DescriptorSetsPoolSize uint32
	DescriptorPoolElements uint32

	// DynamicSSBOSize is the size in bytes of the host-visible ring
	// buffer Dynamic buffers suballocate from. The ring is not reset
	// between frames, so this bounds the total Dynamic bytes a Manager
	// hands out over its lifetime.
	DynamicSSBOSize uint64

	// QueriesPerFrame sizes the timestamp query pool: the pool holds
	// QueriesPerFrame * MaxFrames * 2 queries (one start + one end per
	// named timestamp region).
	QueriesPerFrame uint32

	// Features requested at device-creation time. Support is not
	// checked: FeatureMeshShader adds the VK_EXT_mesh_shader device
	// extension, and the other flags are recorded without enabling
	// anything (see createLogicalDevice).
	Features FeatureFlags

	// EnableValidation requests the VK_LAYER_KHRONOS_validation layer.
	// Initialization fails with ErrFeatureNotSupported if the layer is
	// requested but not present on the system.
	EnableValidation bool
}

// FeatureFlags are the optional device features spec.md §6 names.
type FeatureFlags uint32

const (
	FeatureDrawIndirect FeatureFlags = 1 << iota
	FeatureDrawIndirectCount
	FeatureStorage8Bit
	FeatureStorage16Bit
	FeatureBindless
	FeatureMeshShader
)

// DefaultConfig returns the spec-mandated defaults.
func DefaultConfig() Config {
	return Config{
		AppVersion:             1,
		AppName:                "gerium",
		EngineName:             "gerium",
		CommandBuffersPerFrame: 5,
		DescriptorSetsPoolSize: 128,
		DescriptorPoolElements: 128,
		DynamicSSBOSize:        64 << 20,
		QueriesPerFrame:        32,
	}
}
