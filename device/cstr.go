// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package device

import "unsafe"

// cStringList keeps a set of Go strings alive as NUL-terminated byte
// buffers plus the **char-shaped pointer array Vulkan's
// PpEnabledXxxNames fields expect, grounded on the teacher's
// extensionPtrs pattern in adapter.go, generalized to extension and
// layer name lists alike.
type cStringList struct {
	bufs []([]byte)
	ptrs []*byte
}

func newCStringList(names []string) *cStringList {
	l := &cStringList{
		bufs: make([][]byte, len(names)),
		ptrs: make([]*byte, len(names)),
	}
	for i, name := range names {
		buf := make([]byte, len(name)+1)
		copy(buf, name)
		l.bufs[i] = buf
		l.ptrs[i] = &buf[0]
	}
	return l
}

func (l *cStringList) count() uint32 { return uint32(len(l.ptrs)) }

// ppChar returns the address of the first element as a **byte, or nil
// when the list is empty — Vulkan requires a null PpEnabledXxxNames
// when the matching count is zero.
func (l *cStringList) ppChar() **byte {
	if len(l.ptrs) == 0 {
		return nil
	}
	return &l.ptrs[0]
}

func (l *cStringList) ptr() unsafe.Pointer { return unsafe.Pointer(l.ppChar()) }
