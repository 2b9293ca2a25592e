// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package device

import (
	"fmt"
	"unsafe"

	"gerium/vk"
)

// QuerySet is the bring-up step 5 timestamp query pool, sized
// queries_per_frame * MaxFrames * 2 (one start and one end timestamp
// per named region, per in-flight frame). Grounded on the teacher's
// QuerySet in hal/vulkan/query.go; this module's vk package exposes
// only CmdResetQueryPool (no host-side vkResetQueryPool), so Reset
// records the reset into a command buffer instead of calling it
// directly.
type QuerySet struct {
	pool  vk.QueryPool
	count uint32
}

func newQuerySet(cmds *vk.Commands, device vk.Device, count uint32) (*QuerySet, error) {
	if count == 0 {
		return &QuerySet{}, nil
	}
	createInfo := vk.QueryPoolCreateInfo{
		SType:      vk.StructureTypeQueryPoolCreateInfo,
		QueryType:  vk.QueryTypeTimestamp,
		QueryCount: count,
	}
	var pool vk.QueryPool
	if result := cmds.CreateQueryPool(device, &createInfo, &pool); !result.IsSuccess() {
		return nil, fmt.Errorf("device: vkCreateQueryPool failed: %s", result)
	}
	return &QuerySet{pool: pool, count: count}, nil
}

// Pool returns the underlying VkQueryPool handle.
func (q *QuerySet) Pool() vk.QueryPool { return q.pool }

// Count returns the total number of queries the pool holds.
func (q *QuerySet) Count() uint32 { return q.count }

// Reset records a command-buffer reset of the slice
// [firstQuery, firstQuery+count) — must be called before the first
// vkCmdWriteTimestamp into that range each frame.
func (q *QuerySet) Reset(cmds *vk.Commands, cb vk.CommandBuffer, firstQuery, count uint32) {
	if q.pool == 0 {
		return
	}
	cmds.CmdResetQueryPool(cb, q.pool, firstQuery, count)
}

// WriteTimestamp records a timestamp write at the given pipeline
// stage into query index.
func (q *QuerySet) WriteTimestamp(cmds *vk.Commands, cb vk.CommandBuffer, stage vk.PipelineStageFlagBits, index uint32) {
	cmds.CmdWriteTimestamp(cb, stage, q.pool, index)
}

// Results reads back count 64-bit timestamp values starting at
// firstQuery. Callers should only read a range already known to be
// completed (e.g. from MaxFrames frames ago), since
// GetQueryPoolResults without the Wait flag returns NotReady for
// queries the GPU has not finished yet.
func (q *QuerySet) Results(cmds *vk.Commands, device vk.Device, firstQuery, count uint32) ([]uint64, error) {
	if count == 0 {
		return nil, nil
	}
	out := make([]uint64, count)
	const stride = 8
	result := cmds.GetQueryPoolResults(device, q.pool, firstQuery, count,
		uintptr(count)*stride, unsafe.Pointer(&out[0]), stride, vk.QueryResult64)
	if result == vk.NotReady {
		return nil, ErrSkipFrame
	}
	if !result.IsSuccess() {
		return nil, fmt.Errorf("device: vkGetQueryPoolResults failed: %s", result)
	}
	return out, nil
}

func (q *QuerySet) destroy(cmds *vk.Commands, device vk.Device) {
	if q.pool != 0 {
		cmds.DestroyQueryPool(device, q.pool)
		q.pool = 0
	}
}
