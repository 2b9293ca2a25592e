// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package device

import (
	"fmt"

	"gerium/vk"
)

// queueFamilies are the (possibly aliased) family indices bring-up
// step 3 selects: graphics is required, compute prefers an async
// (non-graphics) family, transfer prefers a dedicated (non-graphics,
// non-compute) family. Unavailable roles alias to graphics.
type queueFamilies struct {
	graphics uint32
	compute  uint32
	transfer uint32
}

// pickPhysicalDevice enumerates physical devices and selects one by
// preference (discrete > integrated > virtual) that exposes a graphics
// queue family with present support on surface.
func pickPhysicalDevice(cmds *vk.Commands, instance vk.Instance, surface vk.SurfaceKHR) (vk.PhysicalDevice, vk.PhysicalDeviceProperties, queueFamilies, error) {
	var count uint32
	if result := cmds.EnumeratePhysicalDevices(instance, &count, nil); !result.IsSuccess() {
		return 0, vk.PhysicalDeviceProperties{}, queueFamilies{}, fmt.Errorf("device: vkEnumeratePhysicalDevices failed: %s", result)
	}
	if count == 0 {
		return 0, vk.PhysicalDeviceProperties{}, queueFamilies{}, ErrNoSuitablePhysicalDevice
	}

	candidates := make([]vk.PhysicalDevice, count)
	if result := cmds.EnumeratePhysicalDevices(instance, &count, &candidates[0]); !result.IsSuccess() {
		return 0, vk.PhysicalDeviceProperties{}, queueFamilies{}, fmt.Errorf("device: vkEnumeratePhysicalDevices failed: %s", result)
	}

	type scored struct {
		pd       vk.PhysicalDevice
		props    vk.PhysicalDeviceProperties
		families queueFamilies
		score    int
	}

	var best *scored
	for _, pd := range candidates {
		var props vk.PhysicalDeviceProperties
		cmds.GetPhysicalDeviceProperties(pd, &props)

		families, ok := selectQueueFamilies(cmds, pd, surface)
		if !ok {
			continue
		}

		score := devicePreferenceScore(props.DeviceType)
		if best == nil || score > best.score {
			best = &scored{pd: pd, props: props, families: families, score: score}
		}
	}

	if best == nil {
		return 0, vk.PhysicalDeviceProperties{}, queueFamilies{}, ErrNoSuitablePhysicalDevice
	}
	return best.pd, best.props, best.families, nil
}

func devicePreferenceScore(deviceType uint32) int {
	switch deviceType {
	case vk.PhysicalDeviceTypeDiscreteGPU:
		return 3
	case vk.PhysicalDeviceTypeIntegratedGPU:
		return 2
	case vk.PhysicalDeviceTypeVirtualGPU:
		return 1
	default:
		return 0
	}
}

// selectQueueFamilies walks the physical device's queue families and
// assigns graphics/compute/transfer roles, preferring a dedicated
// (non-overlapping) family for compute and transfer where the hardware
// offers one. Returns ok=false if no family supports both graphics and
// presentation on surface.
func selectQueueFamilies(cmds *vk.Commands, pd vk.PhysicalDevice, surface vk.SurfaceKHR) (queueFamilies, bool) {
	var count uint32
	cmds.GetPhysicalDeviceQueueFamilyProperties(pd, &count, nil)
	if count == 0 {
		return queueFamilies{}, false
	}
	families := make([]vk.QueueFamilyProperties, count)
	cmds.GetPhysicalDeviceQueueFamilyProperties(pd, &count, &families[0])

	graphics := int32(-1)
	for i, f := range families {
		if f.QueueFlags&uint32(vk.QueueGraphicsBit) == 0 {
			continue
		}
		var present uint32
		if surface != 0 {
			if result := cmds.GetPhysicalDeviceSurfaceSupportKHR(pd, uint32(i), surface, &present); !result.IsSuccess() {
				continue
			}
		} else {
			present = vk.True
		}
		if present != 0 {
			graphics = int32(i)
			break
		}
	}
	if graphics < 0 {
		return queueFamilies{}, false
	}

	compute := uint32(graphics)
	for i, f := range families {
		if uint32(i) == uint32(graphics) {
			continue
		}
		if f.QueueFlags&uint32(vk.QueueComputeBit) != 0 {
			compute = uint32(i)
			break
		}
	}

	transfer := uint32(graphics)
	for i, f := range families {
		idx := uint32(i)
		if idx == uint32(graphics) || idx == compute {
			continue
		}
		if f.QueueFlags&uint32(vk.QueueTransferBit) != 0 {
			transfer = idx
			break
		}
	}
	// Dedicated-transfer families often advertise only the transfer bit;
	// a family offering transfer+something-else is still preferable to
	// aliasing onto graphics, so fall back to any non-graphics family
	// with the transfer bit set, including the family compute already
	// claimed.
	if transfer == uint32(graphics) {
		for i, f := range families {
			idx := uint32(i)
			if idx == uint32(graphics) {
				continue
			}
			if f.QueueFlags&uint32(vk.QueueTransferBit) != 0 {
				transfer = idx
				break
			}
		}
	}

	return queueFamilies{graphics: uint32(graphics), compute: compute, transfer: transfer}, true
}
