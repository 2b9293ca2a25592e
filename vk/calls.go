// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package vk

import "unsafe"

// CreateInstance wraps vkCreateInstance.
func (c *Commands) CreateInstance(info *InstanceCreateInfo, out *Instance) Result {
	infoPtr := unsafe.Pointer(info)
	outPtr := unsafe.Pointer(out)
	args := []unsafe.Pointer{ptrArg(infoPtr), ptrArg(nil), ptrArg(outPtr)}
	return callResult(&sigResultPtrPtrPtr, c.createInstance, args)
}

// EnumerateInstanceLayerProperties wraps vkEnumerateInstanceLayerProperties.
// Pass count with *count == 0 and properties == nil to query the count.
func (c *Commands) EnumerateInstanceLayerProperties(count *uint32, properties *LayerProperties) Result {
	args := []unsafe.Pointer{
		ptrArg(unsafe.Pointer(count)),
		ptrArg(unsafe.Pointer(properties)),
	}
	return callResult(&sigResultPtrPtr, c.enumerateInstanceLayerProperties, args)
}

// DestroyInstance wraps vkDestroyInstance.
func (c *Commands) DestroyInstance(instance Instance) {
	args := []unsafe.Pointer{unsafe.Pointer(&instance), ptrArg(nil)}
	callVoid(&sigVoidHandlePtr, c.destroyInstance, args)
}

// EnumeratePhysicalDevices wraps vkEnumeratePhysicalDevices.
func (c *Commands) EnumeratePhysicalDevices(instance Instance, count *uint32, devices *PhysicalDevice) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&instance),
		ptrArg(unsafe.Pointer(count)),
		ptrArg(unsafe.Pointer(devices)),
	}
	return callResult(&sigResultHandlePtrPtr, c.enumeratePhysicalDevices, args)
}

// GetPhysicalDeviceProperties wraps vkGetPhysicalDeviceProperties.
func (c *Commands) GetPhysicalDeviceProperties(pd PhysicalDevice, props *PhysicalDeviceProperties) {
	args := []unsafe.Pointer{unsafe.Pointer(&pd), ptrArg(unsafe.Pointer(props))}
	callVoid(&sigVoidHandlePtr, c.getPhysicalDeviceProperties, args)
}

// GetPhysicalDeviceFeatures wraps vkGetPhysicalDeviceFeatures.
func (c *Commands) GetPhysicalDeviceFeatures(pd PhysicalDevice, features *PhysicalDeviceFeatures) {
	args := []unsafe.Pointer{unsafe.Pointer(&pd), ptrArg(unsafe.Pointer(features))}
	callVoid(&sigVoidHandlePtr, c.getPhysicalDeviceFeatures, args)
}

// GetPhysicalDeviceMemoryProperties wraps vkGetPhysicalDeviceMemoryProperties.
func (c *Commands) GetPhysicalDeviceMemoryProperties(pd PhysicalDevice, props *PhysicalDeviceMemoryProperties) {
	args := []unsafe.Pointer{unsafe.Pointer(&pd), ptrArg(unsafe.Pointer(props))}
	callVoid(&sigVoidHandlePtr, c.getPhysicalDeviceMemoryProperties, args)
}

// GetPhysicalDeviceQueueFamilyProperties wraps vkGetPhysicalDeviceQueueFamilyProperties.
func (c *Commands) GetPhysicalDeviceQueueFamilyProperties(pd PhysicalDevice, count *uint32, props *QueueFamilyProperties) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&pd),
		ptrArg(unsafe.Pointer(count)),
		ptrArg(unsafe.Pointer(props)),
	}
	callVoid(&sigVoidHandlePtrPtr, c.getPhysicalDeviceQueueFamilyProperties, args)
}

// GetPhysicalDeviceSurfaceCapabilitiesKHR wraps vkGetPhysicalDeviceSurfaceCapabilitiesKHR.
func (c *Commands) GetPhysicalDeviceSurfaceCapabilitiesKHR(pd PhysicalDevice, surface SurfaceKHR, out *SurfaceCapabilitiesKHR) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&pd),
		unsafe.Pointer(&surface),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandleHandlePtr, c.getPhysicalDeviceSurfaceCapabilitiesKHR, args)
}

// GetPhysicalDeviceSurfaceSupportKHR wraps vkGetPhysicalDeviceSurfaceSupportKHR.
func (c *Commands) GetPhysicalDeviceSurfaceSupportKHR(pd PhysicalDevice, queueFamilyIndex uint32, surface SurfaceKHR, supported *uint32) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&pd),
		unsafe.Pointer(&queueFamilyIndex),
		unsafe.Pointer(&surface),
		ptrArg(unsafe.Pointer(supported)),
	}
	return callResult(&sigResultHandleU32HandlePtr, c.getPhysicalDeviceSurfaceSupportKHR, args)
}

// CreateDevice wraps vkCreateDevice.
func (c *Commands) CreateDevice(pd PhysicalDevice, info *DeviceCreateInfo, out *Device) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&pd),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createDevice, args)
}

// DestroyDevice wraps vkDestroyDevice.
func (c *Commands) DestroyDevice(device Device) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), ptrArg(nil)}
	callVoid(&sigVoidHandlePtr, c.destroyDevice, args)
}

// GetDeviceQueue wraps vkGetDeviceQueue.
func (c *Commands) GetDeviceQueue(device Device, familyIndex, queueIndex uint32, out *Queue) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&familyIndex),
		unsafe.Pointer(&queueIndex),
		ptrArg(unsafe.Pointer(out)),
	}
	callVoid(&sigVoidHandleU32U32Handle, c.getDeviceQueue, args)
}

// DeviceWaitIdle wraps vkDeviceWaitIdle.
func (c *Commands) DeviceWaitIdle(device Device) Result {
	return callResult(&sigResultHandle, c.deviceWaitIdle, []unsafe.Pointer{unsafe.Pointer(&device)})
}

// QueueWaitIdle wraps vkQueueWaitIdle.
func (c *Commands) QueueWaitIdle(queue Queue) Result {
	return callResult(&sigResultHandle, c.queueWaitIdle, []unsafe.Pointer{unsafe.Pointer(&queue)})
}

// QueueSubmit wraps vkQueueSubmit.
func (c *Commands) QueueSubmit(queue Queue, submitCount uint32, submits *SubmitInfo, fence Fence) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&queue),
		unsafe.Pointer(&submitCount),
		ptrArg(unsafe.Pointer(submits)),
		unsafe.Pointer(&fence),
	}
	return callResult(&sigResultHandleU32PtrHandle, c.queueSubmit, args)
}

// AllocateMemory wraps vkAllocateMemory.
func (c *Commands) AllocateMemory(device Device, info *MemoryAllocateInfo, out *DeviceMemory) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.allocateMemory, args)
}

// FreeMemory wraps vkFreeMemory.
func (c *Commands) FreeMemory(device Device, memory DeviceMemory) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&memory), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.freeMemory, args)
}

// MapMemory wraps vkMapMemory.
func (c *Commands) MapMemory(device Device, memory DeviceMemory, offset, size uint64, data *unsafe.Pointer) Result {
	var flags uint32
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&memory),
		unsafe.Pointer(&offset),
		unsafe.Pointer(&size),
		unsafe.Pointer(&flags),
		ptrArg(unsafe.Pointer(data)),
	}
	return callResult(&sigResultMapMemory, c.mapMemory, args)
}

// UnmapMemory wraps vkUnmapMemory.
func (c *Commands) UnmapMemory(device Device, memory DeviceMemory) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&memory)}
	callVoid(&sigVoidHandleHandle, c.unmapMemory, args)
}

// CreateBuffer wraps vkCreateBuffer.
func (c *Commands) CreateBuffer(device Device, info *BufferCreateInfo, out *Buffer) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createBuffer, args)
}

// DestroyBuffer wraps vkDestroyBuffer.
func (c *Commands) DestroyBuffer(device Device, buffer Buffer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buffer), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroyBuffer, args)
}

// GetBufferMemoryRequirements wraps vkGetBufferMemoryRequirements.
func (c *Commands) GetBufferMemoryRequirements(device Device, buffer Buffer, out *MemoryRequirements) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buffer), ptrArg(unsafe.Pointer(out))}
	callVoid(&sigVoidHandleHandlePtr, c.getBufferMemoryRequirements, args)
}

// BindBufferMemory wraps vkBindBufferMemory.
func (c *Commands) BindBufferMemory(device Device, buffer Buffer, memory DeviceMemory, offset uint64) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&buffer),
		unsafe.Pointer(&memory),
		unsafe.Pointer(&offset),
	}
	return callResult(&sigResultHandleHandleHandleU64, c.bindBufferMemory, args)
}

// CreateImage wraps vkCreateImage.
func (c *Commands) CreateImage(device Device, info *ImageCreateInfo, out *Image) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createImage, args)
}

// DestroyImage wraps vkDestroyImage.
func (c *Commands) DestroyImage(device Device, image Image) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&image), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroyImage, args)
}

// GetImageMemoryRequirements wraps vkGetImageMemoryRequirements.
func (c *Commands) GetImageMemoryRequirements(device Device, image Image, out *MemoryRequirements) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&image), ptrArg(unsafe.Pointer(out))}
	callVoid(&sigVoidHandleHandlePtr, c.getImageMemoryRequirements, args)
}

// BindImageMemory wraps vkBindImageMemory.
func (c *Commands) BindImageMemory(device Device, image Image, memory DeviceMemory, offset uint64) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&image),
		unsafe.Pointer(&memory),
		unsafe.Pointer(&offset),
	}
	return callResult(&sigResultHandleHandleHandleU64, c.bindImageMemory, args)
}

// CreateImageView wraps vkCreateImageView.
func (c *Commands) CreateImageView(device Device, info *ImageViewCreateInfo, out *ImageView) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createImageView, args)
}

// DestroyImageView wraps vkDestroyImageView.
func (c *Commands) DestroyImageView(device Device, view ImageView) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&view), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroyImageView, args)
}

// CreateSampler wraps vkCreateSampler.
func (c *Commands) CreateSampler(device Device, info *SamplerCreateInfo, out *Sampler) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createSampler, args)
}

// DestroySampler wraps vkDestroySampler.
func (c *Commands) DestroySampler(device Device, sampler Sampler) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&sampler), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroySampler, args)
}

// CreateRenderPass wraps vkCreateRenderPass.
func (c *Commands) CreateRenderPass(device Device, info *RenderPassCreateInfo, out *RenderPass) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createRenderPass, args)
}

// DestroyRenderPass wraps vkDestroyRenderPass.
func (c *Commands) DestroyRenderPass(device Device, pass RenderPass) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pass), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroyRenderPass, args)
}

// CreateFramebuffer wraps vkCreateFramebuffer.
func (c *Commands) CreateFramebuffer(device Device, info *FramebufferCreateInfo, out *Framebuffer) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createFramebuffer, args)
}

// DestroyFramebuffer wraps vkDestroyFramebuffer.
func (c *Commands) DestroyFramebuffer(device Device, fb Framebuffer) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fb), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroyFramebuffer, args)
}

// CreateShaderModule wraps vkCreateShaderModule.
func (c *Commands) CreateShaderModule(device Device, info *ShaderModuleCreateInfo, out *ShaderModule) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createShaderModule, args)
}

// DestroyShaderModule wraps vkDestroyShaderModule.
func (c *Commands) DestroyShaderModule(device Device, module ShaderModule) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&module), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroyShaderModule, args)
}

// CreatePipelineLayout wraps vkCreatePipelineLayout.
func (c *Commands) CreatePipelineLayout(device Device, info *PipelineLayoutCreateInfo, out *PipelineLayout) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createPipelineLayout, args)
}

// DestroyPipelineLayout wraps vkDestroyPipelineLayout.
func (c *Commands) DestroyPipelineLayout(device Device, layout PipelineLayout) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&layout), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroyPipelineLayout, args)
}

// CreateGraphicsPipelines wraps vkCreateGraphicsPipelines (single-entry
// form; this core never batches unrelated pipelines per call).
func (c *Commands) CreateGraphicsPipelines(device Device, info *GraphicsPipelineCreateInfo, out *Pipeline) Result {
	var cache PipelineCache
	var count uint32 = 1
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&cache),
		unsafe.Pointer(&count),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandleHandleU32PtrPtrPtr, c.createGraphicsPipelines, args)
}

// CreateComputePipelines wraps vkCreateComputePipelines.
func (c *Commands) CreateComputePipelines(device Device, info *ComputePipelineCreateInfo, out *Pipeline) Result {
	var cache PipelineCache
	var count uint32 = 1
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&cache),
		unsafe.Pointer(&count),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandleHandleU32PtrPtrPtr, c.createComputePipelines, args)
}

// DestroyPipeline wraps vkDestroyPipeline.
func (c *Commands) DestroyPipeline(device Device, pipeline Pipeline) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pipeline), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroyPipeline, args)
}

// CreateDescriptorSetLayout wraps vkCreateDescriptorSetLayout.
func (c *Commands) CreateDescriptorSetLayout(device Device, info *DescriptorSetLayoutCreateInfo, out *DescriptorSetLayout) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createDescriptorSetLayout, args)
}

// DestroyDescriptorSetLayout wraps vkDestroyDescriptorSetLayout.
func (c *Commands) DestroyDescriptorSetLayout(device Device, layout DescriptorSetLayout) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&layout), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroyDescriptorSetLayout, args)
}

// CreateDescriptorPool wraps vkCreateDescriptorPool.
func (c *Commands) CreateDescriptorPool(device Device, info *DescriptorPoolCreateInfo, out *DescriptorPool) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createDescriptorPool, args)
}

// DestroyDescriptorPool wraps vkDestroyDescriptorPool.
func (c *Commands) DestroyDescriptorPool(device Device, pool DescriptorPool) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroyDescriptorPool, args)
}

// AllocateDescriptorSets wraps vkAllocateDescriptorSets.
func (c *Commands) AllocateDescriptorSets(device Device, info *DescriptorSetAllocateInfo, out *DescriptorSet) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtr, c.allocateDescriptorSets, args)
}

// UpdateDescriptorSets wraps vkUpdateDescriptorSets (this core never
// issues copy-descriptor-set operations, so copyCount is always 0).
func (c *Commands) UpdateDescriptorSets(device Device, writeCount uint32, writes *WriteDescriptorSet) {
	var copyCount uint32
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&writeCount),
		ptrArg(unsafe.Pointer(writes)),
		unsafe.Pointer(&copyCount),
		ptrArg(nil),
	}
	callVoid(&sigVoidHandleU32PtrU32Ptr, c.updateDescriptorSets, args)
}

// CreateCommandPool wraps vkCreateCommandPool.
func (c *Commands) CreateCommandPool(device Device, info *CommandPoolCreateInfo, out *CommandPool) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createCommandPool, args)
}

// DestroyCommandPool wraps vkDestroyCommandPool.
func (c *Commands) DestroyCommandPool(device Device, pool CommandPool) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroyCommandPool, args)
}

// ResetCommandPool wraps vkResetCommandPool.
func (c *Commands) ResetCommandPool(device Device, pool CommandPool) Result {
	var flags uint32
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&flags)}
	return callResult(&sigResultHandleHandleU32, c.resetCommandPool, args)
}

// AllocateCommandBuffers wraps vkAllocateCommandBuffers.
func (c *Commands) AllocateCommandBuffers(device Device, info *CommandBufferAllocateInfo, out *CommandBuffer) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtr, c.allocateCommandBuffers, args)
}

// FreeCommandBuffers wraps vkFreeCommandBuffers.
func (c *Commands) FreeCommandBuffers(device Device, pool CommandPool, count uint32, buffers *CommandBuffer) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pool),
		unsafe.Pointer(&count),
		ptrArg(unsafe.Pointer(buffers)),
	}
	callVoid(&sigVoidHandleHandleU32Ptr, c.freeCommandBuffers, args)
}

// BeginCommandBuffer wraps vkBeginCommandBuffer.
func (c *Commands) BeginCommandBuffer(cb CommandBuffer, info *CommandBufferBeginInfo) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), ptrArg(unsafe.Pointer(info))}
	return callResult(&sigResultHandlePtr, c.beginCommandBuffer, args)
}

// EndCommandBuffer wraps vkEndCommandBuffer.
func (c *Commands) EndCommandBuffer(cb CommandBuffer) Result {
	return callResult(&sigResultHandle, c.endCommandBuffer, []unsafe.Pointer{unsafe.Pointer(&cb)})
}

// CmdBeginRenderPass wraps vkCmdBeginRenderPass. contents selects
// SubpassContentsInline for draws recorded directly into cb, or
// SubpassContentsSecondaryCommandBuffers when the pass's work was
// recorded into secondary buffers cb will later inline with
// CmdExecuteCommands.
func (c *Commands) CmdBeginRenderPass(cb CommandBuffer, info *RenderPassBeginInfo, contents uint32) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), ptrArg(unsafe.Pointer(info)), unsafe.Pointer(&contents)}
	callVoid(&sigVoidHandlePtrU32, c.cmdBeginRenderPass, args)
}

// CmdEndRenderPass wraps vkCmdEndRenderPass.
func (c *Commands) CmdEndRenderPass(cb CommandBuffer) {
	callVoid(&sigVoidHandle, c.cmdEndRenderPass, []unsafe.Pointer{unsafe.Pointer(&cb)})
}

// CmdBindPipeline wraps vkCmdBindPipeline.
func (c *Commands) CmdBindPipeline(cb CommandBuffer, bindPoint uint32, pipeline Pipeline) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&bindPoint), unsafe.Pointer(&pipeline)}
	callVoid(&sigVoidHandleU32Handle, c.cmdBindPipeline, args)
}

// CmdBindDescriptorSets wraps vkCmdBindDescriptorSets (no dynamic
// offsets in this call shape; dynamic-offset writes go through
// CmdBindDescriptorSetsDynamic).
func (c *Commands) CmdBindDescriptorSets(cb CommandBuffer, bindPoint uint32, layout PipelineLayout, firstSet, setCount uint32, sets *DescriptorSet) {
	var dynamicOffsetCount uint32
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&bindPoint),
		unsafe.Pointer(&layout),
		unsafe.Pointer(&firstSet),
		unsafe.Pointer(&setCount),
		ptrArg(unsafe.Pointer(sets)),
		unsafe.Pointer(&dynamicOffsetCount),
		ptrArg(nil),
	}
	callVoid(&sigVoidBindDescriptorSets, c.cmdBindDescriptorSets, args)
}

// CmdBindDescriptorSetsDynamic wraps vkCmdBindDescriptorSets with
// dynamic uniform/storage buffer offsets.
func (c *Commands) CmdBindDescriptorSetsDynamic(cb CommandBuffer, bindPoint uint32, layout PipelineLayout, firstSet uint32, set DescriptorSet, offsets []uint32) {
	setCount := uint32(1)
	var offsetPtr *uint32
	if len(offsets) > 0 {
		offsetPtr = &offsets[0]
	}
	offsetCount := uint32(len(offsets))
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&bindPoint),
		unsafe.Pointer(&layout),
		unsafe.Pointer(&firstSet),
		unsafe.Pointer(&setCount),
		ptrArg(unsafe.Pointer(&set)),
		unsafe.Pointer(&offsetCount),
		ptrArg(unsafe.Pointer(offsetPtr)),
	}
	callVoid(&sigVoidBindDescriptorSets, c.cmdBindDescriptorSets, args)
}

// CmdBindVertexBuffers wraps vkCmdBindVertexBuffers.
func (c *Commands) CmdBindVertexBuffers(cb CommandBuffer, firstBinding, bindingCount uint32, buffers *Buffer, offsets *uint64) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&firstBinding),
		unsafe.Pointer(&bindingCount),
		ptrArg(unsafe.Pointer(buffers)),
		ptrArg(unsafe.Pointer(offsets)),
	}
	callVoid(&sigVoidHandleU32U32PtrPtr, c.cmdBindVertexBuffers, args)
}

// CmdBindIndexBuffer wraps vkCmdBindIndexBuffer.
func (c *Commands) CmdBindIndexBuffer(cb CommandBuffer, buffer Buffer, offset uint64, indexType uint32) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&buffer),
		unsafe.Pointer(&offset),
		unsafe.Pointer(&indexType),
	}
	callVoid(&sigVoidHandleHandleU64U32, c.cmdBindIndexBuffer, args)
}

// CmdDraw wraps vkCmdDraw.
func (c *Commands) CmdDraw(cb CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&vertexCount),
		unsafe.Pointer(&instanceCount),
		unsafe.Pointer(&firstVertex),
		unsafe.Pointer(&firstInstance),
	}
	callVoid(&sigVoidHandleU32x4, c.cmdDraw, args)
}

// CmdDrawIndexed wraps vkCmdDrawIndexed.
func (c *Commands) CmdDrawIndexed(cb CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&indexCount),
		unsafe.Pointer(&instanceCount),
		unsafe.Pointer(&firstIndex),
		unsafe.Pointer(&vertexOffset),
		unsafe.Pointer(&firstInstance),
	}
	callVoid(&sigVoidHandleU32x5, c.cmdDrawIndexed, args)
}

// CmdDispatch wraps vkCmdDispatch.
func (c *Commands) CmdDispatch(cb CommandBuffer, x, y, z uint32) {
	args := []unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&x), unsafe.Pointer(&y), unsafe.Pointer(&z)}
	callVoid(&sigVoidHandleU32x3, c.cmdDispatch, args)
}

// CmdSetViewport wraps vkCmdSetViewport (always a single dynamic viewport;
// this core never uses multi-viewport).
func (c *Commands) CmdSetViewport(cb CommandBuffer, viewport *Viewport) {
	var first, count uint32 = 0, 1
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&first),
		unsafe.Pointer(&count),
		ptrArg(unsafe.Pointer(viewport)),
	}
	callVoid(&sigVoidHandleU32U32Ptr, c.cmdSetViewport, args)
}

// CmdSetScissor wraps vkCmdSetScissor (single dynamic scissor rect).
func (c *Commands) CmdSetScissor(cb CommandBuffer, scissor *Rect2D) {
	var first, count uint32 = 0, 1
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&first),
		unsafe.Pointer(&count),
		ptrArg(unsafe.Pointer(scissor)),
	}
	callVoid(&sigVoidHandleU32U32Ptr, c.cmdSetScissor, args)
}

// CmdPushConstants wraps vkCmdPushConstants.
func (c *Commands) CmdPushConstants(cb CommandBuffer, layout PipelineLayout, stages ShaderStageFlagBits, offset, size uint32, data unsafe.Pointer) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&layout),
		unsafe.Pointer(&stages),
		unsafe.Pointer(&offset),
		unsafe.Pointer(&size),
		ptrArg(data),
	}
	callVoid(&sigVoidHandleHandleU32U32U32Ptr, c.cmdPushConstants, args)
}

// CmdPipelineBarrier wraps vkCmdPipelineBarrier. The frame graph and
// command recorder emit at most one buffer or image barrier per
// resource transition, but both counts are real parameters so a
// caller can batch several together in one call.
func (c *Commands) CmdPipelineBarrier(cb CommandBuffer, srcStage, dstStage PipelineStageFlagBits, bufferBarriers []BufferMemoryBarrier, imageBarriers []ImageMemoryBarrier) {
	var dependencyFlags, memoryBarrierCount uint32
	bufferCount := uint32(len(bufferBarriers))
	imageCount := uint32(len(imageBarriers))
	var bufferPtr, imagePtr unsafe.Pointer
	if bufferCount > 0 {
		bufferPtr = unsafe.Pointer(&bufferBarriers[0])
	}
	if imageCount > 0 {
		imagePtr = unsafe.Pointer(&imageBarriers[0])
	}
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&srcStage),
		unsafe.Pointer(&dstStage),
		unsafe.Pointer(&dependencyFlags),
		unsafe.Pointer(&memoryBarrierCount),
		ptrArg(nil),
		unsafe.Pointer(&bufferCount),
		ptrArg(bufferPtr),
		unsafe.Pointer(&imageCount),
		ptrArg(imagePtr),
	}
	callVoid(&sigVoidPipelineBarrier, c.cmdPipelineBarrier, args)
}

// CmdWriteTimestamp wraps vkCmdWriteTimestamp, the profiler's GPU
// timestamp emission primitive.
func (c *Commands) CmdWriteTimestamp(cb CommandBuffer, stage PipelineStageFlagBits, pool QueryPool, query uint32) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&stage),
		unsafe.Pointer(&pool),
		unsafe.Pointer(&query),
	}
	callVoid(&sigVoidHandleU32HandleU32, c.cmdWriteTimestamp, args)
}

// CmdResetQueryPool wraps vkCmdResetQueryPool.
func (c *Commands) CmdResetQueryPool(cb CommandBuffer, pool QueryPool, first, count uint32) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&pool),
		unsafe.Pointer(&first),
		unsafe.Pointer(&count),
	}
	callVoid(&sigVoidHandleHandleU32U32, c.cmdResetQueryPool, args)
}

// CmdCopyBuffer wraps vkCmdCopyBuffer with a single region, the only
// shape the streamer and staging uploads ever need.
func (c *Commands) CmdCopyBuffer(cb CommandBuffer, src, dst Buffer, srcOffset, dstOffset, size uint64) {
	type region struct{ SrcOffset, DstOffset, Size uint64 }
	r := region{srcOffset, dstOffset, size}
	var count uint32 = 1
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&src),
		unsafe.Pointer(&dst),
		unsafe.Pointer(&count),
		ptrArg(unsafe.Pointer(&r)),
	}
	callVoid(&sigVoidHandleHandleHandleU32Ptr, c.cmdCopyBuffer, args)
}

// CmdCopyBufferToImage wraps vkCmdCopyBufferToImage.
func (c *Commands) CmdCopyBufferToImage(cb CommandBuffer, src Buffer, dst Image, dstLayout ImageLayout, regions []BufferImageCopy) {
	if len(regions) == 0 {
		return
	}
	count := uint32(len(regions))
	layout := uint32(dstLayout)
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&src),
		unsafe.Pointer(&dst),
		unsafe.Pointer(&layout),
		unsafe.Pointer(&count),
		ptrArg(unsafe.Pointer(&regions[0])),
	}
	callVoid(&sigVoidCopyBufferToImage, c.cmdCopyBufferToImage, args)
}

// CmdBlitImage wraps vkCmdBlitImage.
func (c *Commands) CmdBlitImage(cb CommandBuffer, src Image, srcLayout ImageLayout, dst Image, dstLayout ImageLayout, regions []ImageBlit, filter uint32) {
	if len(regions) == 0 {
		return
	}
	count := uint32(len(regions))
	sl := uint32(srcLayout)
	dl := uint32(dstLayout)
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&src),
		unsafe.Pointer(&sl),
		unsafe.Pointer(&dst),
		unsafe.Pointer(&dl),
		unsafe.Pointer(&count),
		ptrArg(unsafe.Pointer(&regions[0])),
		unsafe.Pointer(&filter),
	}
	callVoid(&sigVoidBlitImage, c.cmdBlitImage, args)
}

// CmdFillBuffer wraps vkCmdFillBuffer.
func (c *Commands) CmdFillBuffer(cb CommandBuffer, dst Buffer, offset, size uint64, data uint32) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&dst),
		unsafe.Pointer(&offset),
		unsafe.Pointer(&size),
		unsafe.Pointer(&data),
	}
	callVoid(&sigVoidFillBuffer, c.cmdFillBuffer, args)
}

// CmdExecuteCommands wraps vkCmdExecuteCommands, used to run secondary
// command buffers recorded by frame graph worker goroutines.
func (c *Commands) CmdExecuteCommands(cb CommandBuffer, secondary []CommandBuffer) {
	if len(secondary) == 0 {
		return
	}
	count := uint32(len(secondary))
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&count),
		ptrArg(unsafe.Pointer(&secondary[0])),
	}
	callVoid(&sigVoidExecuteCommands, c.cmdExecuteCommands, args)
}

// CmdDrawIndirect wraps vkCmdDrawIndirect.
func (c *Commands) CmdDrawIndirect(cb CommandBuffer, buf Buffer, offset uint64, drawCount, stride uint32) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&buf),
		unsafe.Pointer(&offset),
		unsafe.Pointer(&drawCount),
		unsafe.Pointer(&stride),
	}
	callVoid(&sigVoidDrawIndirect, c.cmdDrawIndirect, args)
}

// CmdDrawIndexedIndirect wraps vkCmdDrawIndexedIndirect.
func (c *Commands) CmdDrawIndexedIndirect(cb CommandBuffer, buf Buffer, offset uint64, drawCount, stride uint32) {
	args := []unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&buf),
		unsafe.Pointer(&offset),
		unsafe.Pointer(&drawCount),
		unsafe.Pointer(&stride),
	}
	callVoid(&sigVoidDrawIndirect, c.cmdDrawIndexedIndirect, args)
}

// CreateFence wraps vkCreateFence.
func (c *Commands) CreateFence(device Device, signaled bool, out *Fence) Result {
	var flags uint32
	if signaled {
		flags = 1
	}
	info := FenceCreateInfo{SType: StructureTypeFenceCreateInfo, Flags: flags}
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(&info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createFence, args)
}

// DestroyFence wraps vkDestroyFence.
func (c *Commands) DestroyFence(device Device, fence Fence) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fence), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroyFence, args)
}

// ResetFences wraps vkResetFences for a single fence.
func (c *Commands) ResetFences(device Device, fence Fence) Result {
	var count uint32 = 1
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), ptrArg(unsafe.Pointer(&fence))}
	return callResult(&sigResultHandleU32Ptr, c.resetFences, args)
}

// WaitForFences wraps vkWaitForFences for a single fence.
func (c *Commands) WaitForFences(device Device, fence Fence, timeoutNanos uint64) Result {
	var count, waitAll uint32 = 1, 1
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&count),
		ptrArg(unsafe.Pointer(&fence)),
		unsafe.Pointer(&waitAll),
		unsafe.Pointer(&timeoutNanos),
	}
	return callResult(&sigResultHandleU32PtrU32U64, c.waitForFences, args)
}

// GetFenceStatus wraps vkGetFenceStatus.
func (c *Commands) GetFenceStatus(device Device, fence Fence) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fence)}
	return callResult(&sigResultHandleHandle, c.getFenceStatus, args)
}

// CreateSemaphore wraps vkCreateSemaphore.
func (c *Commands) CreateSemaphore(device Device, out *Semaphore) Result {
	info := SemaphoreCreateInfo{SType: StructureTypeSemaphoreCreateInfo}
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(&info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createSemaphore, args)
}

// DestroySemaphore wraps vkDestroySemaphore.
func (c *Commands) DestroySemaphore(device Device, sem Semaphore) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&sem), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroySemaphore, args)
}

// CreateQueryPool wraps vkCreateQueryPool.
func (c *Commands) CreateQueryPool(device Device, info *QueryPoolCreateInfo, out *QueryPool) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createQueryPool, args)
}

// DestroyQueryPool wraps vkDestroyQueryPool.
func (c *Commands) DestroyQueryPool(device Device, pool QueryPool) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroyQueryPool, args)
}

// GetQueryPoolResults wraps vkGetQueryPoolResults.
func (c *Commands) GetQueryPoolResults(device Device, pool QueryPool, first, count uint32, dataSize uintptr, data unsafe.Pointer, stride uint64, flags QueryResultFlags) Result {
	size := uint64(dataSize)
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pool),
		unsafe.Pointer(&first),
		unsafe.Pointer(&count),
		unsafe.Pointer(&size),
		ptrArg(data),
		unsafe.Pointer(&stride),
		unsafe.Pointer(&flags),
	}
	return callResult(&sigResultQueryPoolResults, c.getQueryPoolResults, args)
}

// CreateSwapchainKHR wraps vkCreateSwapchainKHR.
func (c *Commands) CreateSwapchainKHR(device Device, info *SwapchainCreateInfoKHR, out *SwapchainKHR) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		ptrArg(unsafe.Pointer(info)),
		ptrArg(nil),
		ptrArg(unsafe.Pointer(out)),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createSwapchainKHR, args)
}

// DestroySwapchainKHR wraps vkDestroySwapchainKHR.
func (c *Commands) DestroySwapchainKHR(device Device, swapchain SwapchainKHR) {
	args := []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&swapchain), ptrArg(nil)}
	callVoid(&sigVoidHandleHandlePtr, c.destroySwapchainKHR, args)
}

// GetSwapchainImagesKHR wraps vkGetSwapchainImagesKHR.
func (c *Commands) GetSwapchainImagesKHR(device Device, swapchain SwapchainKHR, count *uint32, images *Image) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&swapchain),
		ptrArg(unsafe.Pointer(count)),
		ptrArg(unsafe.Pointer(images)),
	}
	return callResult(&sigResultHandleHandlePtrPtr, c.getSwapchainImagesKHR, args)
}

// AcquireNextImageKHR wraps vkAcquireNextImageKHR.
func (c *Commands) AcquireNextImageKHR(device Device, swapchain SwapchainKHR, timeoutNanos uint64, semaphore Semaphore, fence Fence, index *uint32) Result {
	args := []unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&swapchain),
		unsafe.Pointer(&timeoutNanos),
		unsafe.Pointer(&semaphore),
		unsafe.Pointer(&fence),
		ptrArg(unsafe.Pointer(index)),
	}
	return callResult(&sigResultAcquireNextImageKHR, c.acquireNextImageKHR, args)
}

// QueuePresentKHR wraps vkQueuePresentKHR.
func (c *Commands) QueuePresentKHR(queue Queue, info *PresentInfoKHR) Result {
	args := []unsafe.Pointer{unsafe.Pointer(&queue), ptrArg(unsafe.Pointer(info))}
	return callResult(&sigResultHandlePtr, c.queuePresentKHR, args)
}
