// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package device

import (
	"fmt"

	"gerium/vk"
)

// SwapchainImage is one presentable image plus the view the
// framebuffer attachments bind to.
type SwapchainImage struct {
	Image vk.Image
	View  vk.ImageView
}

// Swapchain wraps VkSwapchainKHR and its images/views, grounded on the
// teacher's Surface.createSwapchain in hal/vulkan/swapchain.go,
// adapted to take an externally-supplied vk.SurfaceKHR rather than
// creating one: platform window/surface creation is out of scope here.
type Swapchain struct {
	handle vk.SwapchainKHR
	format vk.Format
	extent vk.Extent2D
	images []SwapchainImage
}

func (s *Swapchain) Handle() vk.SwapchainKHR  { return s.handle }
func (s *Swapchain) Format() vk.Format        { return s.format }
func (s *Swapchain) Extent() vk.Extent2D      { return s.extent }
func (s *Swapchain) Images() []SwapchainImage { return s.images }

// newSwapchain creates (or recreates, if old is non-nil) the
// swapchain for surface at the requested width/height, clamped to the
// surface's reported capabilities.
func newSwapchain(cmds *vk.Commands, pd vk.PhysicalDevice, device vk.Device, surface vk.SurfaceKHR, width, height uint32, old *Swapchain) (*Swapchain, error) {
	var caps vk.SurfaceCapabilitiesKHR
	if result := cmds.GetPhysicalDeviceSurfaceCapabilitiesKHR(pd, surface, &caps); !result.IsSuccess() {
		return nil, fmt.Errorf("%w: vkGetPhysicalDeviceSurfaceCapabilitiesKHR: %s", ErrSurfaceLost, result)
	}

	imageCount := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && imageCount > caps.MaxImageCount {
		imageCount = caps.MaxImageCount
	}

	extent := vk.Extent2D{Width: width, Height: height}
	if caps.CurrentExtent.Width != 0xFFFFFFFF {
		extent = caps.CurrentExtent
	} else {
		extent = clampExtent(extent, caps.MinImageExtent, caps.MaxImageExtent)
	}

	const format = vk.FormatB8G8R8A8Unorm
	const colorSpace = vk.ColorSpaceSrgbNonlinear

	var oldHandle vk.SwapchainKHR
	if old != nil {
		oldHandle = old.handle
	}

	createInfo := vk.SwapchainCreateInfoKHR{
		SType:            vk.StructureTypeSwapchainCreateInfoKHR,
		Surface:          surface,
		MinImageCount:    imageCount,
		ImageFormat:      format,
		ImageColorSpace:  colorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageColorAttachment | vk.ImageUsageTransferDst,
		ImageSharingMode: uint32(vk.SharingModeExclusive),
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   1, // VK_COMPOSITE_ALPHA_OPAQUE_BIT_KHR
		PresentMode:      0, // VK_PRESENT_MODE_FIFO_KHR: always supported, vsync'd
		Clipped:          vk.True,
		OldSwapchain:     oldHandle,
	}

	var handle vk.SwapchainKHR
	if result := cmds.CreateSwapchainKHR(device, &createInfo, &handle); !result.IsSuccess() {
		return nil, fmt.Errorf("device: vkCreateSwapchainKHR failed: %s", result)
	}

	if old != nil {
		old.destroyViews(cmds, device)
		cmds.DestroySwapchainKHR(device, old.handle)
	}

	var count uint32
	if result := cmds.GetSwapchainImagesKHR(device, handle, &count, nil); !result.IsSuccess() {
		cmds.DestroySwapchainKHR(device, handle)
		return nil, fmt.Errorf("device: vkGetSwapchainImagesKHR failed: %s", result)
	}
	rawImages := make([]vk.Image, count)
	if result := cmds.GetSwapchainImagesKHR(device, handle, &count, &rawImages[0]); !result.IsSuccess() {
		cmds.DestroySwapchainKHR(device, handle)
		return nil, fmt.Errorf("device: vkGetSwapchainImagesKHR failed: %s", result)
	}

	images := make([]SwapchainImage, count)
	for i, img := range rawImages {
		viewInfo := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    img,
			ViewType: vk.ImageViewType2D,
			Format:   format,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectColor,
				LevelCount: 1,
				LayerCount: 1,
			},
		}
		var view vk.ImageView
		if result := cmds.CreateImageView(device, &viewInfo, &view); !result.IsSuccess() {
			for _, created := range images[:i] {
				cmds.DestroyImageView(device, created.View)
			}
			cmds.DestroySwapchainKHR(device, handle)
			return nil, fmt.Errorf("device: vkCreateImageView failed: %s", result)
		}
		images[i] = SwapchainImage{Image: img, View: view}
	}

	return &Swapchain{handle: handle, format: format, extent: extent, images: images}, nil
}

func clampExtent(want, min, max vk.Extent2D) vk.Extent2D {
	clamp := func(v, lo, hi uint32) uint32 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return vk.Extent2D{
		Width:  clamp(want.Width, min.Width, max.Width),
		Height: clamp(want.Height, min.Height, max.Height),
	}
}

func (s *Swapchain) destroyViews(cmds *vk.Commands, device vk.Device) {
	for _, img := range s.images {
		cmds.DestroyImageView(device, img.View)
	}
	s.images = nil
}

func (s *Swapchain) Destroy(cmds *vk.Commands, device vk.Device) {
	if s.handle == 0 {
		return
	}
	s.destroyViews(cmds, device)
	cmds.DestroySwapchainKHR(device, s.handle)
	s.handle = 0
}

// AcquireNextImage acquires the next presentable image, signaling
// signal when it is ready. Returns ErrSkipFrame (not a hard error) on
// VK_SUBOPTIMAL_KHR/VK_ERROR_OUT_OF_DATE_KHR per spec.md §7's
// transient-failure handling — the caller should schedule a resize.
func (s *Swapchain) AcquireNextImage(cmds *vk.Commands, device vk.Device, signal vk.Semaphore) (uint32, error) {
	var index uint32
	result := cmds.AcquireNextImageKHR(device, s.handle, ^uint64(0), signal, 0, &index)
	switch result {
	case vk.Success:
		return index, nil
	case vk.SuboptimalKHR, vk.ErrorOutOfDateKHR:
		return 0, ErrSkipFrame
	default:
		if result == vk.ErrorDeviceLost {
			return 0, ErrDeviceLost
		}
		return 0, fmt.Errorf("device: vkAcquireNextImageKHR failed: %s", result)
	}
}

// Present submits imageIndex for presentation on queue, waiting on
// wait. Returns ErrSkipFrame on a suboptimal/out-of-date result so the
// caller schedules a resize on the next frame rather than treating it
// as fatal.
func (s *Swapchain) Present(cmds *vk.Commands, queue vk.Queue, wait vk.Semaphore, imageIndex uint32) error {
	swapchains := [1]vk.SwapchainKHR{s.handle}
	indices := [1]uint32{imageIndex}
	info := vk.PresentInfoKHR{
		SType:              vk.StructureTypePresentInfoKHR,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    &wait,
		SwapchainCount:     1,
		PSwapchains:        &swapchains[0],
		PImageIndices:      &indices[0],
	}
	result := cmds.QueuePresentKHR(queue, &info)
	switch result {
	case vk.Success:
		return nil
	case vk.SuboptimalKHR, vk.ErrorOutOfDateKHR:
		return ErrSkipFrame
	default:
		if result == vk.ErrorDeviceLost {
			return ErrDeviceLost
		}
		return fmt.Errorf("device: vkQueuePresentKHR failed: %s", result)
	}
}
