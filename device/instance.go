// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package device

import (
	"fmt"

	"gerium/vk"
)

// requiredInstanceExtensions names the instance extensions bring-up
// step 1 always requests. Platform surface extensions (win32/xcb/
// wayland/metal) are the caller's concern: per spec.md, "platform
// window/event surfaces" are out of scope and a vk.SurfaceKHR arrives
// pre-created at Device.New.
var requiredInstanceExtensions = []string{
	"VK_KHR_surface\x00",
	"VK_KHR_get_physical_device_properties2\x00",
}

const validationLayerName = "VK_LAYER_KHRONOS_validation\x00"

// createInstance builds the VkInstance for bring-up step 1, enabling
// the validation layer when cfg.EnableValidation is set and failing
// with ErrFeatureNotSupported if the layer is unavailable.
func createInstance(cmds *vk.Commands, cfg Config) (vk.Instance, error) {
	extensions := append([]string(nil), requiredInstanceExtensions...)
	if cfg.EnableValidation {
		extensions = append(extensions, "VK_EXT_debug_utils\x00")
	}
	extList := newCStringList(extensions)

	var layers []string
	if cfg.EnableValidation {
		if !validationLayerAvailable(cmds) {
			return 0, fmt.Errorf("%w: validation requested but %s not present", ErrFeatureNotSupported, validationLayerName)
		}
		layers = []string{validationLayerName}
	}
	layerList := newCStringList(layers)

	appName := newCStringList([]string{cfg.AppName + "\x00"})
	engineName := newCStringList([]string{cfg.EngineName + "\x00"})

	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   appName.ptrs[0],
		ApplicationVersion: cfg.AppVersion,
		PEngineName:        engineName.ptrs[0],
		EngineVersion:      cfg.AppVersion,
		ApiVersion:         vk.ApiVersion1_3,
	}

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledLayerCount:       layerList.count(),
		PpEnabledLayerNames:     layerList.ppChar(),
		EnabledExtensionCount:   extList.count(),
		PpEnabledExtensionNames: extList.ppChar(),
	}

	var instance vk.Instance
	if result := cmds.CreateInstance(&createInfo, &instance); !result.IsSuccess() {
		return 0, fmt.Errorf("device: vkCreateInstance failed: %s", result)
	}
	return instance, nil
}

// validationLayerAvailable checks vkEnumerateInstanceLayerProperties
// for VK_LAYER_KHRONOS_validation.
func validationLayerAvailable(cmds *vk.Commands) bool {
	var count uint32
	if result := cmds.EnumerateInstanceLayerProperties(&count, nil); !result.IsSuccess() || count == 0 {
		return false
	}
	layers := make([]vk.LayerProperties, count)
	if result := cmds.EnumerateInstanceLayerProperties(&count, &layers[0]); !result.IsSuccess() {
		return false
	}
	for i := range layers {
		if cString(layers[i].LayerName[:]) == validationLayerName[:len(validationLayerName)-1] {
			return true
		}
	}
	return false
}

func cString(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}
