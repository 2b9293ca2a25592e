// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"gerium/command"
	"gerium/vk"
)

// Execute implements spec.md §4.7.4: walks the compiled order, emits
// entry barriers for every texture input and output of a node,
// binds a graphic node's render pass and the framebuffer matching the
// current frame's ping-pong parity before invoking its Render callback,
// invokes a compute node's Render callback directly (it is responsible
// for its own dispatch and barriers), and brackets every node with a
// profiling marker. A node whose Prepare call (spec.md §5/§6) asked
// for more than one worker has its Render callback fanned out across
// secondary command buffers recorded in parallel via errgroup, then
// inlined into cb with ExecuteCommands; every other node records
// inline exactly as before. A callback failure aborts the remainder of
// the frame and is surfaced to the caller, per spec.md §7's Callback
// error class. slot is the frame's command-pool slot (device.Frame.Slot),
// used to acquire this frame's secondary buffers from pool.
func (g *Graph) Execute(pool *command.Pool, cb *command.CommandBuffer, slot int, frameParity uint32) error {
	for _, nh := range g.order {
		n := g.nodes.Access(nh)
		if !n.Enabled {
			continue
		}

		if err := cb.PushMarker(n.Name); err != nil {
			return fmt.Errorf("framegraph: node %q: %w", n.Name, err)
		}

		if err := g.emitEntryBarriers(cb, n, frameParity); err != nil {
			_ = cb.PopMarker()
			return fmt.Errorf("framegraph: node %q: %w", n.Name, err)
		}

		callbacks, data, ok := g.GetPass(n.Pass)
		if !ok || callbacks.Render == nil {
			_ = cb.PopMarker()
			continue
		}

		if n.Compute || len(n.Outputs) == 0 {
			if err := g.executeDirect(pool, cb, slot, n, callbacks, data); err != nil {
				_ = cb.PopMarker()
				return err
			}
			if err := cb.PopMarker(); err != nil {
				return fmt.Errorf("framegraph: node %q: %w", n.Name, err)
			}
			continue
		}

		fbIndex := 0
		if n.maxFramebuffers > 1 {
			fbIndex = int(frameParity) % n.maxFramebuffers
		}
		fb := n.framebuffers[fbIndex]

		w, h, clears := g.attachmentInfo(n)
		area := vk.Rect2D{Extent: vk.Extent2D{Width: w, Height: h}}

		if err := g.executeRenderPass(pool, cb, slot, n, callbacks, data, fb, area, clears, w, h); err != nil {
			_ = cb.PopMarker()
			return err
		}
		if err := cb.PopMarker(); err != nil {
			return fmt.Errorf("framegraph: node %q: %w", n.Name, err)
		}
	}
	return nil
}

// executeDirect runs a compute or no-attachment node's Render, either
// inline on cb (workers<=1) or fanned out across secondary buffers
// executed outside any render pass.
func (g *Graph) executeDirect(pool *command.Pool, cb *command.CommandBuffer, slot int, n *Node, callbacks Callbacks, data any) error {
	if n.workers <= 1 {
		if err := callbacks.Render(g, g.renderer, data, cb, 0, 1); err != nil {
			return fmt.Errorf("framegraph: node %q: render: %w", n.Name, err)
		}
		return nil
	}
	secondaries, err := g.recordSecondaries(pool, slot, n, callbacks, data, func(sec *command.CommandBuffer) error {
		return sec.BeginSecondaryCompute()
	})
	if err != nil {
		return fmt.Errorf("framegraph: node %q: %w", n.Name, err)
	}
	if err := cb.ExecuteCommands(secondaries); err != nil {
		return fmt.Errorf("framegraph: node %q: execute_commands: %w", n.Name, err)
	}
	return nil
}

// executeRenderPass runs a graphic node's Render inside its bound
// render pass, either inline (workers<=1) or by opening the pass with
// SubpassContentsSecondaryCommandBuffers and inlining each worker's
// recorded secondary.
func (g *Graph) executeRenderPass(pool *command.Pool, cb *command.CommandBuffer, slot int, n *Node, callbacks Callbacks, data any, fb vk.Framebuffer, area vk.Rect2D, clears []vk.ClearValue, w, h uint32) error {
	if n.workers <= 1 {
		if err := cb.BeginRenderPass(n.renderPass, fb, area, clears); err != nil {
			return fmt.Errorf("framegraph: node %q: %w", n.Name, err)
		}
		if err := cb.SetViewport(0, 0, float32(w), float32(h), 0, 1, float32(h)); err != nil {
			_ = cb.EndRenderPass()
			return fmt.Errorf("framegraph: node %q: %w", n.Name, err)
		}
		if err := cb.SetScissor(0, 0, w, h); err != nil {
			_ = cb.EndRenderPass()
			return fmt.Errorf("framegraph: node %q: %w", n.Name, err)
		}
		if err := callbacks.Render(g, g.renderer, data, cb, 0, 1); err != nil {
			_ = cb.EndRenderPass()
			return fmt.Errorf("framegraph: node %q: render: %w", n.Name, err)
		}
		return cb.EndRenderPass()
	}

	secondaries, err := g.recordSecondaries(pool, slot, n, callbacks, data, func(sec *command.CommandBuffer) error {
		if err := sec.BeginSecondary(n.renderPass, 0, fb); err != nil {
			return err
		}
		if err := sec.SetViewport(0, 0, float32(w), float32(h), 0, 1, float32(h)); err != nil {
			return err
		}
		return sec.SetScissor(0, 0, w, h)
	})
	if err != nil {
		return fmt.Errorf("framegraph: node %q: %w", n.Name, err)
	}
	if err := cb.BeginRenderPassSecondary(n.renderPass, fb, area, clears); err != nil {
		return fmt.Errorf("framegraph: node %q: %w", n.Name, err)
	}
	if err := cb.ExecuteCommands(secondaries); err != nil {
		_ = cb.EndRenderPass()
		return fmt.Errorf("framegraph: node %q: execute_commands: %w", n.Name, err)
	}
	return cb.EndRenderPass()
}

// recordSecondaries acquires n.workers secondary command buffers for
// this frame slot (sequentially — Pool's acquisition cursor is not
// safe for concurrent use) and records each worker's partition of
// n.Render in parallel via errgroup, matching spec.md §5's
// "multi-threaded recording, single-threaded submission" model. begin
// opens each secondary buffer (inheriting the render pass for a
// graphic node, or bare for a compute node) before Render runs.
func (g *Graph) recordSecondaries(pool *command.Pool, slot int, n *Node, callbacks Callbacks, data any, begin func(*command.CommandBuffer) error) ([]*command.CommandBuffer, error) {
	secondaries := make([]*command.CommandBuffer, n.workers)
	for worker := uint32(0); worker < n.workers; worker++ {
		sec, err := pool.GetSecondary(slot, int(worker))
		if err != nil {
			return nil, fmt.Errorf("acquire secondary (worker %d): %w", worker, err)
		}
		secondaries[worker] = sec
	}

	var grp errgroup.Group
	for worker := range secondaries {
		worker := worker
		sec := secondaries[worker]
		grp.Go(func() error {
			if err := begin(sec); err != nil {
				return fmt.Errorf("worker %d: begin: %w", worker, err)
			}
			if err := callbacks.Render(g, g.renderer, data, sec, uint32(worker), n.workers); err != nil {
				return fmt.Errorf("worker %d: render: %w", worker, err)
			}
			return sec.End()
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return secondaries, nil
}

// emitEntryBarriers transitions every texture input into the
// shader-read layout it needs as a sampled attachment, and every
// texture output this node produces into its attachment-write layout —
// the entry-barrier step of spec.md §4.7.4. A barrier is recorded for
// each of them whatever layout the texture is already in. For a
// double-buffered resource, outputs and same-frame inputs use the slot
// frameParity selects and a PreviousFrame input uses the other slot.
func (g *Graph) emitEntryBarriers(cb *command.CommandBuffer, n *Node, frameParity uint32) error {
	for _, in := range n.Inputs {
		r := g.resources.Access(in.Resource)
		if r.Type != ResourceTypeTexture {
			continue
		}
		idx := 0
		if r.SaveForNextFrame {
			idx = int(frameParity % 2)
			if in.SaveForNextFrame {
				idx = int((frameParity + 1) % 2)
			}
		}
		th := r.Texture.Handles[idx]
		if th.IsUndefined() {
			continue
		}
		if err := cb.BarrierTextureRead(th, command.TextureUsageShaderRead); err != nil {
			return err
		}
	}
	for _, oh := range n.Outputs {
		r := g.resources.Access(oh)
		if r.Type != ResourceTypeTexture {
			continue
		}
		idx := 0
		if r.SaveForNextFrame {
			idx = int(frameParity % 2)
		}
		th := r.Texture.Handles[idx]
		if th.IsUndefined() {
			continue
		}
		usage := command.TextureUsageColorAttachment
		if r.Texture.IsDepth {
			usage = command.TextureUsageDepthStencilAttachment
		}
		if err := cb.BarrierTextureWrite(th, usage); err != nil {
			return err
		}
	}
	return nil
}

// attachmentInfo returns n's framebuffer extent and the per-attachment
// clear values in output declaration order, matching the attachment
// order renderPassCreationFor built the render pass with (color slots
// first, depth last).
func (g *Graph) attachmentInfo(n *Node) (width, height uint32, clears []vk.ClearValue) {
	var depth *vk.ClearValue
	for _, oh := range n.Outputs {
		r := g.resources.Access(oh)
		if r.Type != ResourceTypeTexture {
			continue
		}
		if width == 0 {
			width, height = g.calcSize(r.Texture)
		}
		cv := vk.ClearValue{Color: r.Texture.ClearColor, DepthStencil: r.Texture.ClearDepth}
		if r.Texture.IsDepth {
			depth = &cv
			continue
		}
		clears = append(clears, cv)
	}
	if depth != nil {
		clears = append(clears, *depth)
	}
	return width, height, clears
}
