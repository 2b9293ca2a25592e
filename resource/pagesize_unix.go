// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

//go:build unix

package resource

import "golang.org/x/sys/unix"

// hostPageSize reports the OS page size the dynamic ring's
// persistently-mapped allocation should be rounded up to, the same
// practical reasoning the teacher's platform-specific loader files
// apply to the Vulkan library name: one cross-platform seam, resolved
// per OS at build time rather than behind a runtime switch.
func hostPageSize() uint64 {
	return uint64(unix.Getpagesize())
}
