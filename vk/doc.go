// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

// Package vk provides pure-Go Vulkan 1.3 bindings used by the device,
// resource, and command packages. It loads libvulkan via goffi (no cgo)
// and exposes just the subset of the ~700-function Vulkan API this
// runtime core actually drives: instance/device bring-up, swapchains,
// buffers/images/views/samplers, render passes/framebuffers, descriptor
// sets, shader modules/pipelines, command buffers, synchronization
// primitives, and timestamp query pools.
//
// # goffi calling convention
//
// goffi's CallFunction expects args[] to hold pointers to WHERE each
// argument value is stored, never the values themselves — including for
// C pointer arguments, which must be passed as a pointer to the Go
// variable holding that pointer (pointer-to-pointer):
//
//	var value uint64 = 42
//	args[i] = unsafe.Pointer(&value)   // scalar: pointer to storage
//
//	ptr := unsafe.Pointer(&data[0])    // ptr IS the C pointer value
//	args[i] = unsafe.Pointer(&ptr)     // pointer TO that pointer
//
// Reading an argument slot as if it held the value directly crashes on
// first use, since ffi_call dereferences every slot once before applying
// the prepared signature.
package vk
