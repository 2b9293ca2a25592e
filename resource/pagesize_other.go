// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

//go:build !unix

package resource

// hostPageSize falls back to the common x86/x64 page size on platforms
// where golang.org/x/sys has no generic Getpagesize (Windows queries it
// through GetSystemInfo, which isn't worth the extra syscall surface
// for a value that is 4096 on every Vulkan-capable Windows target this
// module ships against).
func hostPageSize() uint64 {
	return 4096
}
