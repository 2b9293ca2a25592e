// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package resource

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gerium/vk"
)

// TestRenderPassKeyOfIsOrderSensitive covers the render-pass cache's
// hit/miss behavior (spec.md §4.4): two attachment lists with the same
// members in a different order must NOT collide, since color
// attachment order is part of the pass's actual binding contract.
func TestRenderPassKeyOfIsOrderSensitive(t *testing.T) {
	a := AttachmentDescription{Format: vk.FormatR8G8B8A8Unorm, LoadOp: vk.AttachmentLoadOpClear, StoreOp: vk.AttachmentStoreOpStore}
	b := AttachmentDescription{Format: vk.FormatD32Sfloat, LoadOp: vk.AttachmentLoadOpLoad, StoreOp: vk.AttachmentStoreOpStore}

	k1 := keyOf(RenderPassCreation{Colors: []AttachmentDescription{a, b}})
	k2 := keyOf(RenderPassCreation{Colors: []AttachmentDescription{b, a}})
	require.NotEqual(t, k1, k2)
}

// TestRenderPassKeyOfIgnoresDepthWhenAbsent covers the no-depth case:
// a nil Depth must key identically to another creation with no Depth,
// and differently from one that has one.
func TestRenderPassKeyOfIgnoresDepthWhenAbsent(t *testing.T) {
	colors := []AttachmentDescription{{Format: vk.FormatR8G8B8A8Unorm}}
	noDepth := keyOf(RenderPassCreation{Colors: colors})
	sameNoDepth := keyOf(RenderPassCreation{Colors: colors})
	require.Equal(t, noDepth, sameNoDepth)

	withDepth := keyOf(RenderPassCreation{
		Colors: colors,
		Depth:  &AttachmentDescription{Format: vk.FormatD32Sfloat, IsDepth: true},
	})
	require.NotEqual(t, noDepth, withDepth)
}

// TestRenderPassKeyOfMatchesOnIdenticalConfiguration covers the cache
// hit path: two independently built, field-identical creations must
// produce the same key so CreateRenderPass can reuse the cached pass.
func TestRenderPassKeyOfMatchesOnIdenticalConfiguration(t *testing.T) {
	build := func() RenderPassCreation {
		return RenderPassCreation{
			Colors: []AttachmentDescription{
				{Format: vk.FormatR8G8B8A8Unorm, LoadOp: vk.AttachmentLoadOpClear, StoreOp: vk.AttachmentStoreOpStore,
					InitialLayout: vk.ImageLayoutUndefined, FinalLayout: vk.ImageLayoutColorAttachmentOptimal},
			},
			Depth: &AttachmentDescription{
				Format: vk.FormatD32Sfloat, LoadOp: vk.AttachmentLoadOpClear, StoreOp: vk.AttachmentStoreOpStore,
				InitialLayout: vk.ImageLayoutUndefined, FinalLayout: vk.ImageLayoutDepthStencilAttachmentOptimal, IsDepth: true,
			},
		}
	}
	require.Equal(t, keyOf(build()), keyOf(build()))
}
