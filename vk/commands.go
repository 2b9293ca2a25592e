// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Commands holds the function pointers resolved for one Instance/Device
// pair. Global functions are resolved once; instance and device
// functions are resolved by [Commands.LoadInstance] and
// [Commands.LoadDevice] respectively, matching the three-stage loading
// hierarchy Vulkan itself requires (a device function pointer obtained
// before vkCreateDevice is undefined behavior).
type Commands struct {
	// global
	createInstance                        unsafe.Pointer
	enumerateInstanceVersion              unsafe.Pointer
	enumerateInstanceLayerProperties      unsafe.Pointer
	enumerateInstanceExtensionProperties  unsafe.Pointer

	// instance
	destroyInstance                        unsafe.Pointer
	enumeratePhysicalDevices                unsafe.Pointer
	getPhysicalDeviceProperties             unsafe.Pointer
	getPhysicalDeviceQueueFamilyProperties   unsafe.Pointer
	getPhysicalDeviceMemoryProperties        unsafe.Pointer
	getPhysicalDeviceFeatures                unsafe.Pointer
	createDevice                             unsafe.Pointer
	getDeviceProcAddr                        unsafe.Pointer

	// device
	destroyDevice                   unsafe.Pointer
	getDeviceQueue                  unsafe.Pointer
	deviceWaitIdle                  unsafe.Pointer
	queueSubmit                     unsafe.Pointer
	queueWaitIdle                   unsafe.Pointer

	allocateMemory                  unsafe.Pointer
	freeMemory                      unsafe.Pointer
	mapMemory                       unsafe.Pointer
	unmapMemory                     unsafe.Pointer

	createBuffer                    unsafe.Pointer
	destroyBuffer                   unsafe.Pointer
	getBufferMemoryRequirements      unsafe.Pointer
	bindBufferMemory                unsafe.Pointer

	createImage                     unsafe.Pointer
	destroyImage                    unsafe.Pointer
	getImageMemoryRequirements       unsafe.Pointer
	bindImageMemory                 unsafe.Pointer
	createImageView                 unsafe.Pointer
	destroyImageView                unsafe.Pointer

	createSampler                   unsafe.Pointer
	destroySampler                  unsafe.Pointer

	createRenderPass                unsafe.Pointer
	destroyRenderPass               unsafe.Pointer
	createFramebuffer               unsafe.Pointer
	destroyFramebuffer              unsafe.Pointer

	createShaderModule              unsafe.Pointer
	destroyShaderModule             unsafe.Pointer
	createPipelineLayout            unsafe.Pointer
	destroyPipelineLayout           unsafe.Pointer
	createGraphicsPipelines         unsafe.Pointer
	createComputePipelines          unsafe.Pointer
	destroyPipeline                 unsafe.Pointer

	createDescriptorSetLayout       unsafe.Pointer
	destroyDescriptorSetLayout      unsafe.Pointer
	createDescriptorPool            unsafe.Pointer
	destroyDescriptorPool           unsafe.Pointer
	allocateDescriptorSets          unsafe.Pointer
	updateDescriptorSets            unsafe.Pointer

	createCommandPool                unsafe.Pointer
	destroyCommandPool                unsafe.Pointer
	resetCommandPool                 unsafe.Pointer
	allocateCommandBuffers            unsafe.Pointer
	freeCommandBuffers                unsafe.Pointer
	beginCommandBuffer                unsafe.Pointer
	endCommandBuffer                  unsafe.Pointer
	cmdBeginRenderPass                unsafe.Pointer
	cmdEndRenderPass                  unsafe.Pointer
	cmdBindPipeline                   unsafe.Pointer
	cmdBindDescriptorSets             unsafe.Pointer
	cmdBindVertexBuffers              unsafe.Pointer
	cmdBindIndexBuffer                unsafe.Pointer
	cmdDraw                           unsafe.Pointer
	cmdDrawIndexed                    unsafe.Pointer
	cmdDispatch                       unsafe.Pointer
	cmdSetViewport                    unsafe.Pointer
	cmdSetScissor                     unsafe.Pointer
	cmdPushConstants                  unsafe.Pointer
	cmdCopyBuffer                     unsafe.Pointer
	cmdCopyBufferToImage              unsafe.Pointer
	cmdBlitImage                      unsafe.Pointer
	cmdFillBuffer                     unsafe.Pointer
	cmdExecuteCommands                unsafe.Pointer
	cmdDrawIndirect                   unsafe.Pointer
	cmdDrawIndexedIndirect            unsafe.Pointer
	cmdPipelineBarrier                unsafe.Pointer
	cmdWriteTimestamp                 unsafe.Pointer
	cmdResetQueryPool                 unsafe.Pointer

	createFence                      unsafe.Pointer
	destroyFence                     unsafe.Pointer
	resetFences                      unsafe.Pointer
	waitForFences                    unsafe.Pointer
	getFenceStatus                   unsafe.Pointer
	createSemaphore                  unsafe.Pointer
	destroySemaphore                 unsafe.Pointer

	createQueryPool                  unsafe.Pointer
	destroyQueryPool                 unsafe.Pointer
	getQueryPoolResults              unsafe.Pointer

	createSwapchainKHR                unsafe.Pointer
	destroySwapchainKHR                unsafe.Pointer
	getSwapchainImagesKHR              unsafe.Pointer
	acquireNextImageKHR                unsafe.Pointer
	queuePresentKHR                   unsafe.Pointer

	getPhysicalDeviceSurfaceCapabilitiesKHR unsafe.Pointer
	getPhysicalDeviceSurfaceSupportKHR      unsafe.Pointer
}

// NewCommands returns a zero-valued Commands; call LoadGlobal,
// LoadInstance, and LoadDevice before issuing any call.
func NewCommands() *Commands { return &Commands{} }

// LoadGlobal resolves functions callable before any VkInstance exists.
func (c *Commands) LoadGlobal() error {
	c.createInstance = GetInstanceProcAddr(0, "vkCreateInstance")
	if c.createInstance == nil {
		return fmt.Errorf("vk: vkCreateInstance not found")
	}
	c.enumerateInstanceVersion = GetInstanceProcAddr(0, "vkEnumerateInstanceVersion")
	c.enumerateInstanceLayerProperties = GetInstanceProcAddr(0, "vkEnumerateInstanceLayerProperties")
	c.enumerateInstanceExtensionProperties = GetInstanceProcAddr(0, "vkEnumerateInstanceExtensionProperties")
	return nil
}

// LoadInstance resolves instance-level functions. Must run after
// vkCreateInstance succeeds.
func (c *Commands) LoadInstance(instance Instance) error {
	if instance == 0 {
		return fmt.Errorf("vk: LoadInstance requires a non-null instance")
	}
	SetDeviceProcAddr(instance)

	c.destroyInstance = GetInstanceProcAddr(instance, "vkDestroyInstance")
	c.enumeratePhysicalDevices = GetInstanceProcAddr(instance, "vkEnumeratePhysicalDevices")
	c.getPhysicalDeviceProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceProperties")
	c.getPhysicalDeviceQueueFamilyProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceQueueFamilyProperties")
	c.getPhysicalDeviceMemoryProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceMemoryProperties")
	c.getPhysicalDeviceFeatures = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceFeatures")
	c.createDevice = GetInstanceProcAddr(instance, "vkCreateDevice")
	c.getDeviceProcAddr = GetInstanceProcAddr(instance, "vkGetDeviceProcAddr")
	c.getPhysicalDeviceSurfaceCapabilitiesKHR = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceSurfaceCapabilitiesKHR")
	c.getPhysicalDeviceSurfaceSupportKHR = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceSurfaceSupportKHR")
	return nil
}

// LoadDevice resolves device-level functions, including all vkCmd*
// recording entry points. Must run after vkCreateDevice succeeds.
func (c *Commands) LoadDevice(device Device) error {
	if device == 0 {
		return fmt.Errorf("vk: LoadDevice requires a non-null device")
	}
	get := func(name string) unsafe.Pointer { return GetDeviceProcAddr(device, name) }

	c.destroyDevice = get("vkDestroyDevice")
	c.getDeviceQueue = get("vkGetDeviceQueue")
	c.deviceWaitIdle = get("vkDeviceWaitIdle")
	c.queueSubmit = get("vkQueueSubmit")
	c.queueWaitIdle = get("vkQueueWaitIdle")

	c.allocateMemory = get("vkAllocateMemory")
	c.freeMemory = get("vkFreeMemory")
	c.mapMemory = get("vkMapMemory")
	c.unmapMemory = get("vkUnmapMemory")

	c.createBuffer = get("vkCreateBuffer")
	c.destroyBuffer = get("vkDestroyBuffer")
	c.getBufferMemoryRequirements = get("vkGetBufferMemoryRequirements")
	c.bindBufferMemory = get("vkBindBufferMemory")

	c.createImage = get("vkCreateImage")
	c.destroyImage = get("vkDestroyImage")
	c.getImageMemoryRequirements = get("vkGetImageMemoryRequirements")
	c.bindImageMemory = get("vkBindImageMemory")
	c.createImageView = get("vkCreateImageView")
	c.destroyImageView = get("vkDestroyImageView")

	c.createSampler = get("vkCreateSampler")
	c.destroySampler = get("vkDestroySampler")

	c.createRenderPass = get("vkCreateRenderPass")
	c.destroyRenderPass = get("vkDestroyRenderPass")
	c.createFramebuffer = get("vkCreateFramebuffer")
	c.destroyFramebuffer = get("vkDestroyFramebuffer")

	c.createShaderModule = get("vkCreateShaderModule")
	c.destroyShaderModule = get("vkDestroyShaderModule")
	c.createPipelineLayout = get("vkCreatePipelineLayout")
	c.destroyPipelineLayout = get("vkDestroyPipelineLayout")
	c.createGraphicsPipelines = get("vkCreateGraphicsPipelines")
	c.createComputePipelines = get("vkCreateComputePipelines")
	c.destroyPipeline = get("vkDestroyPipeline")

	c.createDescriptorSetLayout = get("vkCreateDescriptorSetLayout")
	c.destroyDescriptorSetLayout = get("vkDestroyDescriptorSetLayout")
	c.createDescriptorPool = get("vkCreateDescriptorPool")
	c.destroyDescriptorPool = get("vkDestroyDescriptorPool")
	c.allocateDescriptorSets = get("vkAllocateDescriptorSets")
	c.updateDescriptorSets = get("vkUpdateDescriptorSets")

	c.createCommandPool = get("vkCreateCommandPool")
	c.destroyCommandPool = get("vkDestroyCommandPool")
	c.resetCommandPool = get("vkResetCommandPool")
	c.allocateCommandBuffers = get("vkAllocateCommandBuffers")
	c.freeCommandBuffers = get("vkFreeCommandBuffers")
	c.beginCommandBuffer = get("vkBeginCommandBuffer")
	c.endCommandBuffer = get("vkEndCommandBuffer")
	c.cmdBeginRenderPass = get("vkCmdBeginRenderPass")
	c.cmdEndRenderPass = get("vkCmdEndRenderPass")
	c.cmdBindPipeline = get("vkCmdBindPipeline")
	c.cmdBindDescriptorSets = get("vkCmdBindDescriptorSets")
	c.cmdBindVertexBuffers = get("vkCmdBindVertexBuffers")
	c.cmdBindIndexBuffer = get("vkCmdBindIndexBuffer")
	c.cmdDraw = get("vkCmdDraw")
	c.cmdDrawIndexed = get("vkCmdDrawIndexed")
	c.cmdDispatch = get("vkCmdDispatch")
	c.cmdSetViewport = get("vkCmdSetViewport")
	c.cmdSetScissor = get("vkCmdSetScissor")
	c.cmdPushConstants = get("vkCmdPushConstants")
	c.cmdCopyBuffer = get("vkCmdCopyBuffer")
	c.cmdCopyBufferToImage = get("vkCmdCopyBufferToImage")
	c.cmdBlitImage = get("vkCmdBlitImage")
	c.cmdFillBuffer = get("vkCmdFillBuffer")
	c.cmdExecuteCommands = get("vkCmdExecuteCommands")
	c.cmdDrawIndirect = get("vkCmdDrawIndirect")
	c.cmdDrawIndexedIndirect = get("vkCmdDrawIndexedIndirect")
	c.cmdPipelineBarrier = get("vkCmdPipelineBarrier")
	c.cmdWriteTimestamp = get("vkCmdWriteTimestamp")
	c.cmdResetQueryPool = get("vkCmdResetQueryPool")

	c.createFence = get("vkCreateFence")
	c.destroyFence = get("vkDestroyFence")
	c.resetFences = get("vkResetFences")
	c.waitForFences = get("vkWaitForFences")
	c.getFenceStatus = get("vkGetFenceStatus")
	c.createSemaphore = get("vkCreateSemaphore")
	c.destroySemaphore = get("vkDestroySemaphore")

	c.createQueryPool = get("vkCreateQueryPool")
	c.destroyQueryPool = get("vkDestroyQueryPool")
	c.getQueryPoolResults = get("vkGetQueryPoolResults")

	c.createSwapchainKHR = get("vkCreateSwapchainKHR")
	c.destroySwapchainKHR = get("vkDestroySwapchainKHR")
	c.getSwapchainImagesKHR = get("vkGetSwapchainImagesKHR")
	c.acquireNextImageKHR = get("vkAcquireNextImageKHR")
	c.queuePresentKHR = get("vkQueuePresentKHR")

	if c.createBuffer == nil {
		return fmt.Errorf("vk: vkCreateBuffer not found, driver too old")
	}
	return nil
}

// ptrArg turns a C pointer value into the pointer-to-pointer goffi's
// CallFunction requires for pointer-typed arguments (see doc.go).
func ptrArg(p unsafe.Pointer) unsafe.Pointer { return unsafe.Pointer(&p) }

func callResult(iface *types.CallInterface, fn unsafe.Pointer, args []unsafe.Pointer) Result {
	if fn == nil {
		return ErrorInitializationFailed
	}
	var ret uint32
	if err := ffi.CallFunction(iface, fn, unsafe.Pointer(&ret), args); err != nil {
		return ErrorInitializationFailed
	}
	return Result(ret)
}

func callVoid(iface *types.CallInterface, fn unsafe.Pointer, args []unsafe.Pointer) {
	if fn == nil {
		return
	}
	_ = ffi.CallFunction(iface, fn, nil, args)
}
