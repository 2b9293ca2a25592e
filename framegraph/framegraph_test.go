// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gerium/resource"
	"gerium/vk"
)

// fakeRenderer is a minimal stand-in for the Renderer facade, grounded
// on the same one-way-dependency pattern [handle.Pool]'s own tests use:
// no real GPU backend, just enough bookkeeping to exercise Compile's
// allocation and framebuffer-building logic.
type fakeRenderer struct {
	nextTexture uint16
	nextBuffer  uint16
	extents     map[resource.TextureHandle][2]uint32
	destroyed   []resource.TextureHandle
	renderPasses int
	framebuffers int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{extents: make(map[resource.TextureHandle][2]uint32)}
}

func (f *fakeRenderer) CreateTexture(c resource.TextureCreation) (resource.TextureHandle, error) {
	h := resource.TextureHandleAt(f.nextTexture)
	f.nextTexture++
	f.extents[h] = [2]uint32{c.Width, c.Height}
	return h, nil
}

func (f *fakeRenderer) DestroyTexture(h resource.TextureHandle) {
	f.destroyed = append(f.destroyed, h)
	delete(f.extents, h)
}

func (f *fakeRenderer) TextureView(resource.TextureHandle) vk.ImageView { return 0 }

func (f *fakeRenderer) TextureExtent(h resource.TextureHandle) (uint32, uint32, bool) {
	e, ok := f.extents[h]
	return e[0], e[1], ok
}

func (f *fakeRenderer) CreateBuffer(resource.BufferCreation) (resource.BufferHandle, error) {
	h := resource.BufferHandleAt(f.nextBuffer)
	f.nextBuffer++
	return h, nil
}

func (f *fakeRenderer) DestroyBuffer(resource.BufferHandle) {}

func (f *fakeRenderer) CreateRenderPass(resource.RenderPassCreation) (vk.RenderPass, error) {
	f.renderPasses++
	return vk.RenderPass(f.renderPasses), nil
}

func (f *fakeRenderer) DestroyRenderPass(vk.RenderPass) {}

func (f *fakeRenderer) CreateFramebuffer(resource.FramebufferCreation) (vk.Framebuffer, error) {
	f.framebuffers++
	return vk.Framebuffer(f.framebuffers), nil
}

func (f *fakeRenderer) SwapchainSize() (uint32, uint32) { return 800, 600 }

var _ Renderer = (*fakeRenderer)(nil)

func colorOutput(name string) OutputCreation {
	return OutputCreation{
		Name: name,
		Type: ResourceTypeTexture,
		Texture: TextureInfo{
			Format:    vk.FormatR8G8B8A8Unorm,
			Width:     800,
			Height:    600,
			Operation: OpClear,
		},
	}
}

func bufferOutput(name string) OutputCreation {
	return OutputCreation{
		Name:   name,
		Type:   ResourceTypeBuffer,
		Buffer: BufferInfo{Size: 256},
	}
}

// TestCompileTopologicalOrderRespectsProducerConsumerEdges covers
// spec.md §4.7.2: a node must appear after every node producing one of
// its inputs.
func TestCompileTopologicalOrderRespectsProducerConsumerEdges(t *testing.T) {
	g := New(newFakeRenderer(), 800, 600)

	_, err := g.AddNode(NodeCreation{
		Name:    "gbuffer",
		Outputs: []OutputCreation{colorOutput("albedo")},
	})
	require.NoError(t, err)

	_, err = g.AddNode(NodeCreation{
		Name:    "lighting",
		Inputs:  []InputCreation{{Name: "albedo"}},
		Outputs: []OutputCreation{colorOutput("lit")},
	})
	require.NoError(t, err)

	_, err = g.AddNode(NodeCreation{
		Name:   "present",
		Inputs: []InputCreation{{Name: "lit"}},
	})
	require.NoError(t, err)

	require.NoError(t, g.Compile())
	require.Equal(t, []string{"gbuffer", "lighting", "present"}, orderedNames(t, g))
}

func orderedNames(t *testing.T, g *Graph) []string {
	t.Helper()
	var names []string
	for i := 0; ; i++ {
		n, _, ok := g.GetNodeAt(i)
		if !ok {
			break
		}
		names = append(names, n.Name)
	}
	return names
}

// TestCompileSkipsDisabledNodesAsEdgeTargets covers spec.md §4.7.2: a
// disabled node stays in its producer's edge list but the topological
// sort skips it as an edge target, so it is absent from the compiled
// order.
func TestCompileSkipsDisabledNodesAsEdgeTargets(t *testing.T) {
	g := New(newFakeRenderer(), 800, 600)

	_, err := g.AddNode(NodeCreation{Name: "a", Outputs: []OutputCreation{colorOutput("x")}})
	require.NoError(t, err)
	_, err = g.AddNode(NodeCreation{Name: "b", Inputs: []InputCreation{{Name: "x"}}})
	require.NoError(t, err)

	require.NoError(t, g.EnableNode("b", false))
	require.NoError(t, g.Compile())
	require.Equal(t, []string{"a"}, orderedNames(t, g))
}

// TestCompileAllocatesOutputsExactlyOnce covers spec.md §4.7.2: a
// freshly declared output resource starts Undefined (not the zero-value
// pool index) and Compile allocates it exactly once, never again on a
// second Compile of an unchanged graph.
func TestCompileAllocatesOutputsExactlyOnce(t *testing.T) {
	r := newFakeRenderer()
	g := New(r, 800, 600)

	_, err := g.AddNode(NodeCreation{Name: "a", Outputs: []OutputCreation{colorOutput("x")}})
	require.NoError(t, err)

	res, ok := g.GetResource("x")
	require.True(t, ok)
	require.True(t, res.Texture.Handles[0].IsUndefined())

	require.NoError(t, g.Compile())
	require.False(t, res.Texture.Handles[0].IsUndefined())
	require.Equal(t, uint16(1), r.nextTexture)

	// Compile again without any change: idempotent, no second allocation.
	require.NoError(t, g.Compile())
	require.Equal(t, uint16(1), r.nextTexture)
}

// TestCompileReusesFreeListForTransientAttachments covers spec.md
// §4.7.2's aliasing pass: once a transient attachment's last consumer
// has run, a later, same-or-smaller output reuses its handle instead of
// allocating a new one.
func TestCompileReusesFreeListForTransientAttachments(t *testing.T) {
	r := newFakeRenderer()
	g := New(r, 800, 600)

	_, err := g.AddNode(NodeCreation{Name: "a", Outputs: []OutputCreation{colorOutput("tmp1")}})
	require.NoError(t, err)
	// b consumes tmp1 (releasing it to the free list during b's own
	// processing) and produces a buffer "sync" purely to force b before c
	// in the compiled order, so c's allocation sees tmp1 already freed.
	_, err = g.AddNode(NodeCreation{
		Name:    "b",
		Inputs:  []InputCreation{{Name: "tmp1"}},
		Outputs: []OutputCreation{bufferOutput("sync")},
	})
	require.NoError(t, err)
	_, err = g.AddNode(NodeCreation{
		Name:    "c",
		Inputs:  []InputCreation{{Name: "sync"}},
		Outputs: []OutputCreation{colorOutput("tmp2")},
	})
	require.NoError(t, err)

	require.NoError(t, g.Compile())
	require.Equal(t, uint16(1), r.nextTexture, "tmp2 should alias tmp1's released handle, not allocate fresh")

	tmp1, ok := g.GetResource("tmp1")
	require.True(t, ok)
	tmp2, ok := g.GetResource("tmp2")
	require.True(t, ok)
	require.Equal(t, tmp1.Texture.Handles[0], tmp2.Texture.Handles[0])
}

// TestCompileDoubleBuffersSaveForNextFrameOutputs covers spec.md §4.4's
// ping-pong invariant: an output any consumer reads with PreviousFrame
// gets two handles and two framebuffers.
func TestCompileDoubleBuffersSaveForNextFrameOutputs(t *testing.T) {
	g := New(newFakeRenderer(), 800, 600)

	_, err := g.AddNode(NodeCreation{Name: "history", Outputs: []OutputCreation{colorOutput("accum")}})
	require.NoError(t, err)
	_, err = g.AddNode(NodeCreation{
		Name:   "blend",
		Inputs: []InputCreation{{Name: "accum", PreviousFrame: true}},
	})
	require.NoError(t, err)

	require.NoError(t, g.Compile())

	res, ok := g.GetResource("accum")
	require.True(t, ok)
	require.True(t, res.SaveForNextFrame)
	require.False(t, res.Texture.Handles[0].IsUndefined())
	require.False(t, res.Texture.Handles[1].IsUndefined())
	require.NotEqual(t, res.Texture.Handles[0], res.Texture.Handles[1])

	n, ok := g.GetNode("history")
	require.True(t, ok)
	require.Equal(t, 2, n.maxFramebuffers)
}

// TestResizeResetsAutoScaledHandlesToUndefined covers the bug where a
// resized, auto-scaled attachment's stale handles must become the
// Undefined sentinel (not the zero-value pool index) so the next
// Compile reallocates instead of mistaking index 0 for live storage.
func TestResizeResetsAutoScaledHandlesToUndefined(t *testing.T) {
	r := newFakeRenderer()
	g := New(r, 800, 600)

	_, err := g.AddNode(NodeCreation{
		Name: "a",
		Outputs: []OutputCreation{{
			Name: "scaled",
			Type: ResourceTypeTexture,
			Texture: TextureInfo{
				Format:    vk.FormatR8G8B8A8Unorm,
				Width:     800,
				Height:    600,
				AutoScale: 1.0,
				Operation: OpClear,
			},
		}},
	})
	require.NoError(t, err)
	require.NoError(t, g.Compile())

	res, ok := g.GetResource("scaled")
	require.True(t, ok)
	firstHandle := res.Texture.Handles[0]
	require.False(t, firstHandle.IsUndefined())

	require.NoError(t, g.Resize(800, 1600, 600, 1200))
	require.True(t, res.Texture.Handles[0].IsUndefined(), "resize must reset a reallocated attachment to Undefined, not the zero-value handle")
	require.Contains(t, r.destroyed, firstHandle)

	require.NoError(t, g.Compile())
	require.False(t, res.Texture.Handles[0].IsUndefined())
	require.NotEqual(t, firstHandle, res.Texture.Handles[0])
}
