// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package device

import (
	"fmt"

	"gerium/vk"
)

// frameSync holds the per-in-flight-frame CPU fence and the image-
// available/render-finished semaphore pair bring-up step 5 creates.
// Grounded on the binary-fence half of the teacher's fencePool
// (hal/vulkan/fence_pool.go); this module's vk package has no timeline
// semaphore support (no VkSemaphoreTypeCreateInfo / 64-bit wait-value
// calls), so frameSync tracks one CPU fence per frame slot instead of
// a monotonic submission counter.
type frameSync struct {
	inFlight       []vk.Fence
	imageAvailable []vk.Semaphore
	renderFinished []vk.Semaphore
}

func newFrameSync(cmds *vk.Commands, device vk.Device, maxFrames int) (*frameSync, error) {
	s := &frameSync{
		inFlight:       make([]vk.Fence, maxFrames),
		imageAvailable: make([]vk.Semaphore, maxFrames),
		renderFinished: make([]vk.Semaphore, maxFrames),
	}
	for i := 0; i < maxFrames; i++ {
		if result := cmds.CreateFence(device, true, &s.inFlight[i]); !result.IsSuccess() {
			s.destroy(cmds, device)
			return nil, fmt.Errorf("device: vkCreateFence failed: %s", result)
		}
		if result := cmds.CreateSemaphore(device, &s.imageAvailable[i]); !result.IsSuccess() {
			s.destroy(cmds, device)
			return nil, fmt.Errorf("device: vkCreateSemaphore failed: %s", result)
		}
		if result := cmds.CreateSemaphore(device, &s.renderFinished[i]); !result.IsSuccess() {
			s.destroy(cmds, device)
			return nil, fmt.Errorf("device: vkCreateSemaphore failed: %s", result)
		}
	}
	return s, nil
}

// wait blocks until the in-flight fence for slot is signaled, then
// resets it for reuse this frame.
func (s *frameSync) wait(cmds *vk.Commands, device vk.Device, slot int) error {
	fence := s.inFlight[slot]
	if result := cmds.WaitForFences(device, fence, ^uint64(0)); !result.IsSuccess() {
		return fmt.Errorf("%w: vkWaitForFences: %s", ErrDeviceLost, result)
	}
	if result := cmds.ResetFences(device, fence); !result.IsSuccess() {
		return fmt.Errorf("device: vkResetFences failed: %s", result)
	}
	return nil
}

func (s *frameSync) destroy(cmds *vk.Commands, device vk.Device) {
	for _, f := range s.inFlight {
		if f != 0 {
			cmds.DestroyFence(device, f)
		}
	}
	for _, sem := range s.imageAvailable {
		if sem != 0 {
			cmds.DestroySemaphore(device, sem)
		}
	}
	for _, sem := range s.renderFinished {
		if sem != 0 {
			cmds.DestroySemaphore(device, sem)
		}
	}
}
