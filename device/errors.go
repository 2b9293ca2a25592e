// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package device

import "errors"

// Errors surfaced across bring-up and the per-frame loop, per spec.md
// §7's Fatal/Transient/Programmer taxonomy.
var (
	// ErrSkipFrame is transient: the swapchain was suboptimal or out of
	// date. The caller should retry acquisition on the next tick; a
	// resize has already been scheduled.
	ErrSkipFrame = errors.New("device: skip frame, swapchain rebuild scheduled")

	// ErrOutOfMemory is fatal on the startup path and transient-if-retried
	// elsewhere: a vkAllocateMemory or pool allocation failed.
	ErrOutOfMemory = errors.New("device: out of memory")

	// ErrFeatureNotSupported means a requested Config feature (validation
	// layer, bindless, mesh shader, ...) is unavailable on this physical
	// device/driver.
	ErrFeatureNotSupported = errors.New("device: feature not supported")

	// ErrDeviceLost and ErrSurfaceLost are fatal: the caller must destroy
	// and recreate the Device.
	ErrDeviceLost  = errors.New("device: device lost")
	ErrSurfaceLost = errors.New("device: surface lost")

	// ErrInvalidArgument covers programmer errors caught at the API
	// boundary: mapping a device-local buffer, an unknown handle, etc.
	ErrInvalidArgument = errors.New("device: invalid argument")

	// ErrNoSuitablePhysicalDevice means enumeration found no device with
	// a graphics queue family and present support for the target surface.
	ErrNoSuitablePhysicalDevice = errors.New("device: no suitable physical device")
)
