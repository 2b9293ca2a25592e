// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Signature templates are reused across many Vulkan functions that share
// a parameter shape, the same trick the full Vulkan API uses: ~700
// functions boil down to a few dozen distinct call shapes. Each
// TypeDescriptor here must match the real Vulkan C parameter it stands
// in for exactly — handles/uint64_t as u64, uint32_t/enums/VkBool32 as
// u32, and any C pointer (struct pointer, array pointer, out-pointer) as
// ptr — since goffi reads exactly that many bytes from the
// pointer-to-storage each args[] slot holds.
var (
	// VkResult-returning shapes.
	sigResultPtrPtr                  types.CallInterface // vkEnumerateInstanceLayerProperties
	sigResultPtrPtrPtr               types.CallInterface // vkCreateInstance
	sigResultHandlePtr               types.CallInterface // vkBeginCommandBuffer, vkQueuePresentKHR
	sigResultHandlePtrPtr            types.CallInterface // vkEnumeratePhysicalDevices, vkAllocateDescriptorSets, vkAllocateCommandBuffers
	sigResultHandlePtrPtrPtr         types.CallInterface // vkCreateX(device, info, alloc, *out)
	sigResultHandleHandle            types.CallInterface // vkGetFenceStatus
	sigResultHandleHandlePtr         types.CallInterface // vkGetPhysicalDeviceSurfaceCapabilitiesKHR
	sigResultHandleHandlePtrPtr      types.CallInterface // vkGetSwapchainImagesKHR
	sigResultHandleHandleU32         types.CallInterface // vkResetCommandPool
	sigResultHandleHandleHandleU64   types.CallInterface // vkBindBufferMemory, vkBindImageMemory
	sigResultHandleU32PtrHandle      types.CallInterface // vkQueueSubmit
	sigResultHandleU32Ptr            types.CallInterface // vkResetFences
	sigResultHandleU32PtrU32U64      types.CallInterface // vkWaitForFences
	sigResultHandleU32HandlePtr      types.CallInterface // vkGetPhysicalDeviceSurfaceSupportKHR
	sigResultMapMemory               types.CallInterface // vkMapMemory
	sigResultHandleHandleU32PtrPtrPtr types.CallInterface // vkCreateGraphicsPipelines/vkCreateComputePipelines
	sigResultQueryPoolResults        types.CallInterface // vkGetQueryPoolResults
	sigResultAcquireNextImageKHR     types.CallInterface // vkAcquireNextImageKHR
	sigResultHandle                  types.CallInterface // vkEndCommandBuffer, vkQueueWaitIdle, vkDeviceWaitIdle

	// void-returning shapes.
	sigVoidHandlePtr                 types.CallInterface // vkDestroyInstance/vkDestroyDevice, vkGetPhysicalDeviceProperties/Features/MemoryProperties
	sigVoidHandleHandlePtr           types.CallInterface // vkDestroyX(device, handle, alloc)
	sigVoidHandleHandle              types.CallInterface // vkUnmapMemory
	sigVoidHandlePtrPtr              types.CallInterface // vkGetPhysicalDeviceQueueFamilyProperties
	sigVoidHandleU32U32Handle        types.CallInterface // vkGetDeviceQueue
	sigVoidHandle                    types.CallInterface // vkCmdEndRenderPass
	sigVoidHandleU32PtrU32Ptr        types.CallInterface // vkUpdateDescriptorSets
	sigVoidHandleHandleU32Ptr        types.CallInterface // vkFreeCommandBuffers
	sigVoidHandlePtrU32              types.CallInterface // vkCmdBeginRenderPass
	sigVoidHandleU32Handle           types.CallInterface // vkCmdBindPipeline
	sigVoidBindDescriptorSets        types.CallInterface // vkCmdBindDescriptorSets
	sigVoidHandleU32U32PtrPtr        types.CallInterface // vkCmdBindVertexBuffers
	sigVoidHandleHandleU64U32        types.CallInterface // vkCmdBindIndexBuffer
	sigVoidHandleU32x4                types.CallInterface // vkCmdDraw
	sigVoidHandleU32x5                types.CallInterface // vkCmdDrawIndexed
	sigVoidHandleU32x3                types.CallInterface // vkCmdDispatch
	sigVoidHandleU32U32Ptr           types.CallInterface // vkCmdSetViewport, vkCmdSetScissor
	sigVoidHandleHandleU32U32U32Ptr  types.CallInterface // vkCmdPushConstants
	sigVoidPipelineBarrier           types.CallInterface // vkCmdPipelineBarrier
	sigVoidHandleU32HandleU32        types.CallInterface // vkCmdWriteTimestamp
	sigVoidHandleHandleU32U32        types.CallInterface // vkCmdResetQueryPool
	sigVoidHandleHandleHandleU32Ptr  types.CallInterface // vkCmdCopyBuffer
	sigVoidCopyBufferToImage         types.CallInterface // vkCmdCopyBufferToImage
	sigVoidBlitImage                 types.CallInterface // vkCmdBlitImage
	sigVoidFillBuffer                types.CallInterface // vkCmdFillBuffer
	sigVoidExecuteCommands           types.CallInterface // vkCmdExecuteCommands
	sigVoidDrawIndirect              types.CallInterface // vkCmdDrawIndirect, vkCmdDrawIndexedIndirect
)

func initSignatures() error {
	type sig struct {
		iface  *types.CallInterface
		ret    *types.TypeDescriptor
		params []*types.TypeDescriptor
	}

	u64 := types.UInt64TypeDescriptor
	u32 := types.UInt32TypeDescriptor
	ptr := types.PointerTypeDescriptor
	void := types.VoidTypeDescriptor

	sigs := []sig{
		{&sigResultPtrPtr, u32, []*types.TypeDescriptor{ptr, ptr}},
		{&sigResultPtrPtrPtr, u32, []*types.TypeDescriptor{ptr, ptr, ptr}},
		{&sigResultHandlePtr, u32, []*types.TypeDescriptor{u64, ptr}},
		{&sigResultHandlePtrPtr, u32, []*types.TypeDescriptor{u64, ptr, ptr}},
		{&sigResultHandlePtrPtrPtr, u32, []*types.TypeDescriptor{u64, ptr, ptr, ptr}},
		{&sigResultHandleHandle, u32, []*types.TypeDescriptor{u64, u64}},
		{&sigResultHandleHandlePtr, u32, []*types.TypeDescriptor{u64, u64, ptr}},
		{&sigResultHandleHandlePtrPtr, u32, []*types.TypeDescriptor{u64, u64, ptr, ptr}},
		{&sigResultHandleHandleU32, u32, []*types.TypeDescriptor{u64, u64, u32}},
		{&sigResultHandleHandleHandleU64, u32, []*types.TypeDescriptor{u64, u64, u64, u64}},
		{&sigResultHandleU32PtrHandle, u32, []*types.TypeDescriptor{u64, u32, ptr, u64}},
		{&sigResultHandleU32Ptr, u32, []*types.TypeDescriptor{u64, u32, ptr}},
		{&sigResultHandleU32PtrU32U64, u32, []*types.TypeDescriptor{u64, u32, ptr, u32, u64}},
		{&sigResultHandleU32HandlePtr, u32, []*types.TypeDescriptor{u64, u32, u64, ptr}},
		{&sigResultMapMemory, u32, []*types.TypeDescriptor{u64, u64, u64, u64, u32, ptr}},
		{&sigResultHandleHandleU32PtrPtrPtr, u32, []*types.TypeDescriptor{u64, u64, u32, ptr, ptr, ptr}},
		{&sigResultQueryPoolResults, u32, []*types.TypeDescriptor{u64, u64, u32, u32, u64, ptr, u64, u32}},
		{&sigResultAcquireNextImageKHR, u32, []*types.TypeDescriptor{u64, u64, u64, u64, u64, ptr}},
		{&sigResultHandle, u32, []*types.TypeDescriptor{u64}},

		{&sigVoidHandlePtr, void, []*types.TypeDescriptor{u64, ptr}},
		{&sigVoidHandleHandlePtr, void, []*types.TypeDescriptor{u64, u64, ptr}},
		{&sigVoidHandleHandle, void, []*types.TypeDescriptor{u64, u64}},
		{&sigVoidHandlePtrPtr, void, []*types.TypeDescriptor{u64, ptr, ptr}},
		{&sigVoidHandleU32U32Handle, void, []*types.TypeDescriptor{u64, u32, u32, ptr}},
		{&sigVoidHandle, void, []*types.TypeDescriptor{u64}},
		{&sigVoidHandleU32PtrU32Ptr, void, []*types.TypeDescriptor{u64, u32, ptr, u32, ptr}},
		{&sigVoidHandleHandleU32Ptr, void, []*types.TypeDescriptor{u64, u64, u32, ptr}},
		{&sigVoidHandlePtrU32, void, []*types.TypeDescriptor{u64, ptr, u32}},
		{&sigVoidHandleU32Handle, void, []*types.TypeDescriptor{u64, u32, u64}},
		{&sigVoidBindDescriptorSets, void, []*types.TypeDescriptor{u64, u32, u64, u32, u32, ptr, u32, ptr}},
		{&sigVoidHandleU32U32PtrPtr, void, []*types.TypeDescriptor{u64, u32, u32, ptr, ptr}},
		{&sigVoidHandleHandleU64U32, void, []*types.TypeDescriptor{u64, u64, u64, u32}},
		{&sigVoidHandleU32x4, void, []*types.TypeDescriptor{u64, u32, u32, u32, u32}},
		{&sigVoidHandleU32x5, void, []*types.TypeDescriptor{u64, u32, u32, u32, u32, u32}},
		{&sigVoidHandleU32x3, void, []*types.TypeDescriptor{u64, u32, u32, u32}},
		{&sigVoidHandleU32U32Ptr, void, []*types.TypeDescriptor{u64, u32, u32, ptr}},
		{&sigVoidHandleHandleU32U32U32Ptr, void, []*types.TypeDescriptor{u64, u64, u32, u32, u32, ptr}},
		{&sigVoidPipelineBarrier, void, []*types.TypeDescriptor{u64, u32, u32, u32, u32, ptr, u32, ptr, u32, ptr}},
		{&sigVoidHandleU32HandleU32, void, []*types.TypeDescriptor{u64, u32, u64, u32}},
		{&sigVoidHandleHandleU32U32, void, []*types.TypeDescriptor{u64, u64, u32, u32}},
		{&sigVoidHandleHandleHandleU32Ptr, void, []*types.TypeDescriptor{u64, u64, u64, u32, ptr}},
		{&sigVoidCopyBufferToImage, void, []*types.TypeDescriptor{u64, u64, u64, u32, u32, ptr}},
		{&sigVoidBlitImage, void, []*types.TypeDescriptor{u64, u64, u32, u64, u32, u32, ptr, u32}},
		{&sigVoidFillBuffer, void, []*types.TypeDescriptor{u64, u64, u64, u64, u32}},
		{&sigVoidExecuteCommands, void, []*types.TypeDescriptor{u64, u32, ptr}},
		{&sigVoidDrawIndirect, void, []*types.TypeDescriptor{u64, u64, u64, u32, u32}},
	}

	for _, s := range sigs {
		if err := ffi.PrepareCallInterface(s.iface, types.DefaultCall, s.ret, s.params); err != nil {
			return err
		}
	}
	return nil
}
