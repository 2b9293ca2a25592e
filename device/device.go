// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package device

import (
	"fmt"

	"gerium/device/memory"
	"gerium/internal/logging"
	"gerium/vk"
)

var logger = logging.For("gerium:device")

// Device owns a VkInstance/VkDevice pair, the selected queues, the GPU
// memory allocator, the swapchain, per-frame synchronization, and the
// timestamp query pool — everything bring-up produces per spec.md
// §4.2 before a Renderer can walk a frame graph.
type Device struct {
	cmds *vk.Commands

	instance       vk.Instance
	physicalDevice vk.PhysicalDevice
	deviceProps    vk.PhysicalDeviceProperties
	handle         vk.Device

	families     queueFamilies
	graphics     vk.Queue
	compute      vk.Queue
	transfer     vk.Queue

	allocator *memory.GpuAllocator

	surface    vk.SurfaceKHR
	swapchain  *Swapchain
	sync       *frameSync
	queries    *QuerySet
	frames     *frameState

	config Config
}

// New runs the full bring-up sequence: instance, physical device and
// queue selection, logical device, allocator, swapchain, per-frame
// sync objects, and the timestamp query pool. surface must already
// exist; platform window/surface creation is the caller's
// responsibility.
func New(cfg Config, surface vk.SurfaceKHR, width, height uint32) (*Device, error) {
	logger.Info("bring-up starting", "width", width, "height", height)
	if err := vk.Init(); err != nil {
		logger.Error("loader init failed", "error", err)
		return nil, fmt.Errorf("device: loader init failed: %w", err)
	}

	cmds := vk.NewCommands()
	if err := cmds.LoadGlobal(); err != nil {
		return nil, fmt.Errorf("device: failed to load global commands: %w", err)
	}

	instance, err := createInstance(cmds, cfg)
	if err != nil {
		return nil, err
	}
	if err := cmds.LoadInstance(instance); err != nil {
		cmds.DestroyInstance(instance)
		return nil, fmt.Errorf("device: failed to load instance commands: %w", err)
	}

	pd, props, families, err := pickPhysicalDevice(cmds, instance, surface)
	if err != nil {
		cmds.DestroyInstance(instance)
		return nil, err
	}

	handle, err := createLogicalDevice(cmds, pd, families, cfg)
	if err != nil {
		cmds.DestroyInstance(instance)
		return nil, err
	}
	if err := cmds.LoadDevice(handle); err != nil {
		cmds.DestroyDevice(handle)
		cmds.DestroyInstance(instance)
		return nil, fmt.Errorf("device: failed to load device commands: %w", err)
	}

	d := &Device{
		cmds:           cmds,
		instance:       instance,
		physicalDevice: pd,
		deviceProps:    props,
		handle:         handle,
		families:       families,
		surface:        surface,
		config:         cfg,
	}

	cmds.GetDeviceQueue(handle, families.graphics, 0, &d.graphics)
	cmds.GetDeviceQueue(handle, families.compute, 0, &d.compute)
	cmds.GetDeviceQueue(handle, families.transfer, 0, &d.transfer)

	if err := d.initAllocator(); err != nil {
		d.destroyPartial()
		return nil, err
	}

	swapchain, err := newSwapchain(cmds, pd, handle, surface, width, height, nil)
	if err != nil {
		d.destroyPartial()
		return nil, err
	}
	d.swapchain = swapchain

	sync, err := newFrameSync(cmds, handle, MaxFrames)
	if err != nil {
		d.destroyPartial()
		return nil, err
	}
	d.sync = sync

	queries, err := newQuerySet(cmds, handle, cfg.QueriesPerFrame*MaxFrames*2)
	if err != nil {
		d.destroyPartial()
		return nil, err
	}
	d.queries = queries

	frames, err := newFrameState(cmds, handle, families.graphics, MaxFrames, cfg.CommandBuffersPerFrame)
	if err != nil {
		d.destroyPartial()
		return nil, err
	}
	d.frames = frames

	logger.Info("bring-up complete", "graphicsFamily", families.graphics, "computeFamily", families.compute, "transferFamily", families.transfer)
	return d, nil
}

// initAllocator converts VkPhysicalDeviceMemoryProperties into the
// allocator's format and constructs the GPU allocator, grounded on the
// teacher's Device.initAllocator in hal/vulkan/device.go.
func (d *Device) initAllocator() error {
	var vkProps vk.PhysicalDeviceMemoryProperties
	d.cmds.GetPhysicalDeviceMemoryProperties(d.physicalDevice, &vkProps)

	props := memory.DeviceMemoryProperties{
		MemoryTypes: make([]memory.MemoryType, vkProps.MemoryTypeCount),
		MemoryHeaps: make([]memory.MemoryHeap, vkProps.MemoryHeapCount),
	}
	for i := uint32(0); i < vkProps.MemoryTypeCount; i++ {
		props.MemoryTypes[i] = memory.MemoryType{
			PropertyFlags: vk.MemoryPropertyFlags(vkProps.MemoryTypes[i].PropertyFlags),
			HeapIndex:     vkProps.MemoryTypes[i].HeapIndex,
		}
	}
	for i := uint32(0); i < vkProps.MemoryHeapCount; i++ {
		props.MemoryHeaps[i] = memory.MemoryHeap{
			Size:  vkProps.MemoryHeaps[i].Size,
			Flags: vk.MemoryHeapFlags(vkProps.MemoryHeaps[i].Flags),
		}
	}

	allocator, err := memory.NewGpuAllocator(d.cmds, d.handle, props, memory.DefaultConfig())
	if err != nil {
		return fmt.Errorf("device: failed to create memory allocator: %w", err)
	}
	d.allocator = allocator
	return nil
}

// Allocator returns the device's GPU memory allocator.
func (d *Device) Allocator() *memory.GpuAllocator { return d.allocator }

// Commands returns the loaded Vulkan entry points, for packages built
// on top of Device (resource factories, command recording).
func (d *Device) Commands() *vk.Commands { return d.cmds }

// Handle returns the underlying VkDevice.
func (d *Device) Handle() vk.Device { return d.handle }

// GraphicsQueue, ComputeQueue, and TransferQueue return the selected
// queue handles. Compute/transfer alias the graphics queue when the
// physical device had no dedicated family for that role.
func (d *Device) GraphicsQueue() vk.Queue { return d.graphics }
func (d *Device) ComputeQueue() vk.Queue  { return d.compute }
func (d *Device) TransferQueue() vk.Queue { return d.transfer }

func (d *Device) QueueFamilies() (graphics, compute, transfer uint32) {
	return d.families.graphics, d.families.compute, d.families.transfer
}

// Queries returns the timestamp query pool bring-up step 5 created,
// for the profiler and the CommandBuffer Pool's per-frame reset.
func (d *Device) Queries() *QuerySet { return d.queries }

// Config returns the creation-time configuration, for components that
// size themselves off it (the CommandBuffer Pool's worker-thread
// partition, the profiler's queries-per-frame).
func (d *Device) Config() Config { return d.config }

// TimestampPeriod returns the nanoseconds-per-tick conversion factor
// for this physical device's timestamp queries (VkPhysicalDeviceLimits
// ::timestampPeriod), for the profiler's elapsed-time computation.
func (d *Device) TimestampPeriod() float32 { return d.deviceProps.Limits.TimestampPeriod }

// AbsoluteFrame and CurrentFrameSlot expose the frame counters the
// profiler needs to address the right region of its ring: AbsoluteFrame
// is the monotonically increasing counter (see frame.go), and
// CurrentFrameSlot is that counter's position in the MaxFrames ring the
// query pool and command pools are partitioned by.
func (d *Device) CurrentFrameSlot() int { return d.frames.current }

// WaitIdle blocks until all queues on the device are idle. Used before
// swapchain recreation and at shutdown.
func (d *Device) WaitIdle() error {
	if result := d.cmds.DeviceWaitIdle(d.handle); !result.IsSuccess() {
		return fmt.Errorf("%w: vkDeviceWaitIdle: %s", ErrDeviceLost, result)
	}
	return nil
}

// Destroy tears down every bring-up resource in reverse creation
// order: frame state, query pool, sync objects, swapchain, allocator,
// device, instance.
func (d *Device) Destroy() {
	_ = d.WaitIdle()
	d.destroyPartial()
}

func (d *Device) destroyPartial() {
	if d.frames != nil {
		d.frames.destroy(d.cmds, d.handle)
		d.frames = nil
	}
	if d.queries != nil {
		d.queries.destroy(d.cmds, d.handle)
		d.queries = nil
	}
	if d.sync != nil {
		d.sync.destroy(d.cmds, d.handle)
		d.sync = nil
	}
	if d.swapchain != nil {
		d.swapchain.Destroy(d.cmds, d.handle)
		d.swapchain = nil
	}
	if d.allocator != nil {
		d.allocator.Destroy()
		d.allocator = nil
	}
	if d.handle != 0 {
		d.cmds.DestroyDevice(d.handle)
		d.handle = 0
	}
	if d.instance != 0 {
		d.cmds.DestroyInstance(d.instance)
		d.instance = 0
	}
}

// createLogicalDevice creates the VkDevice for bring-up step 4,
// requesting one queue per distinct family in families and enabling
// VK_KHR_swapchain plus the PhysicalDeviceFeatures this trimmed vk
// package can represent. Extended Vulkan 1.2/1.3 feature structs
// (descriptor indexing for FeatureBindless, 8/16-bit storage,
// VK_EXT_mesh_shader) have no pNext-chain struct in this package; those
// flags are recorded on Config but are presently requested only as
// instance/device extension strings where one exists, never as a
// feature-struct toggle. See DESIGN.md.
func createLogicalDevice(cmds *vk.Commands, pd vk.PhysicalDevice, families queueFamilies, cfg Config) (vk.Device, error) {
	unique := uniqueFamilies(families)
	priority := float32(1.0)
	queueInfos := make([]vk.DeviceQueueCreateInfo, len(unique))
	for i, family := range unique {
		queueInfos[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: &priority,
		}
	}

	extensions := []string{"VK_KHR_swapchain\x00"}
	if cfg.Features&FeatureMeshShader != 0 {
		extensions = append(extensions, "VK_EXT_mesh_shader\x00")
	}
	extList := newCStringList(extensions)

	features := vk.PhysicalDeviceFeatures{
		FullDrawIndexUint32:      vk.True,
		FragmentStoresAndAtomics: vk.True,
	}

	createInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       &queueInfos[0],
		EnabledExtensionCount:   extList.count(),
		PpEnabledExtensionNames: extList.ppChar(),
		PEnabledFeatures:        &features,
	}

	var device vk.Device
	if result := cmds.CreateDevice(pd, &createInfo, &device); !result.IsSuccess() {
		return 0, fmt.Errorf("device: vkCreateDevice failed: %s", result)
	}
	return device, nil
}

func uniqueFamilies(f queueFamilies) []uint32 {
	seen := map[uint32]struct{}{}
	var out []uint32
	for _, idx := range []uint32{f.graphics, f.compute, f.transfer} {
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	return out
}
