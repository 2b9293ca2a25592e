// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"fmt"

	"gerium/handle"
	"gerium/internal/logging"
	"gerium/resource"
	"gerium/vk"
)

var logger = logging.For("gerium:frame-graph")

// Compile implements spec.md §4.7.2. It is a no-op when the graph has
// no pending changes (idempotent when not dirty, per §4.7.1). On
// success it rebuilds the execution order, resolves and allocates
// every resource, and instantiates each graphic node's RenderPass and
// Framebuffer(s).
func (g *Graph) Compile() error {
	if !g.hasChanges {
		return nil
	}
	logger.Debug("compiling", "nodes", g.nodes.Len())

	var resetErr error
	g.nodes.Range(func(_ NodeHandle, n *Node) bool {
		n.Edges = n.Edges[:0]
		return true
	})
	g.nodes.Range(func(nh NodeHandle, n *Node) bool {
		if err := g.computeEdges(nh, n); err != nil {
			resetErr = err
			return false
		}
		return true
	})
	if resetErr != nil {
		return resetErr
	}

	order, err := g.topologicalSort()
	if err != nil {
		return err
	}
	g.order = order

	if err := g.lifetimePass(); err != nil {
		return err
	}
	if err := g.instantiationPass(); err != nil {
		return err
	}

	g.hasChanges = false
	logger.Debug("compile complete", "order", len(g.order))
	return nil
}

// computeEdges resolves every input of n to its producing resource and
// records a producer→consumer edge unless the input reads last
// frame's output (save_for_next_frame breaks the same-frame cycle,
// spec.md §4.7.2).
func (g *Graph) computeEdges(nh NodeHandle, n *Node) error {
	for i := range n.Inputs {
		in := &n.Inputs[i]
		rh, r, err := g.resolveInput(in.Name)
		if err != nil {
			return fmt.Errorf("framegraph: node %q: %w", n.Name, err)
		}
		in.Resource = rh
		if in.SaveForNextFrame || r.Producer.IsUndefined() {
			continue
		}
		producer := g.nodes.Access(r.Producer)
		producer.Edges = append(producer.Edges, nh)
	}
	return nil
}

// resolveInput finds the canonical Resource an input names: either
// already registered by some node's output, or — the first time it is
// referenced — materialized from an AddBuffer/AddTexture external
// binding, grounded on FrameGraph::fillExternalResource.
func (g *Graph) resolveInput(name string) (ResourceHandle, *Resource, error) {
	if rh, ok := g.resourceNames[name]; ok {
		return rh, g.resources.Access(rh), nil
	}
	ext, ok := g.external[name]
	if !ok {
		return handle.Undef[resourceTag](), nil, fmt.Errorf("unknown resource %q", name)
	}
	rh, r, err := g.resources.ObtainAndAccess()
	if err != nil {
		return handle.Undef[resourceTag](), nil, err
	}
	*r = Resource{Name: name, External: true, Producer: handle.Undef[nodeTag]()}
	if ext.isTexture {
		r.Type = ResourceTypeTexture
		r.Texture.Handles[0] = ext.texture
	} else {
		r.Type = ResourceTypeBuffer
		r.Buffer.Handle = ext.buffer
	}
	g.resourceNames[name] = rh
	return rh, r, nil
}

// topologicalSort implements spec.md §4.7.2's iterative DFS: visited
// 0=unseen, 1=on stack, 2=done; the stack is seeded with every enabled
// node in declaration (pool dense) order; a node is appended to sorted
// the moment it transitions 1→2 (reverse post-order). The compiled
// order is the reversal of sorted. Disabled nodes are skipped
// entirely, both as roots and as edge targets.
func (g *Graph) topologicalSort() ([]NodeHandle, error) {
	visited := make(map[handle.Index]uint8, g.nodes.Len())
	var sorted []NodeHandle
	var stack []NodeHandle

	var roots []NodeHandle
	g.nodes.Range(func(nh NodeHandle, n *Node) bool {
		if n.Enabled {
			roots = append(roots, nh)
		}
		return true
	})

	for _, root := range roots {
		if visited[root.Index()] != 0 {
			continue
		}
		stack = append(stack, root)
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			switch visited[top.Index()] {
			case 2:
				stack = stack[:len(stack)-1]
			case 1:
				visited[top.Index()] = 2
				sorted = append(sorted, top)
				stack = stack[:len(stack)-1]
			default:
				visited[top.Index()] = 1
				node := g.nodes.Access(top)
				for _, child := range node.Edges {
					cn := g.nodes.Access(child)
					if !cn.Enabled || visited[child.Index()] != 0 {
						continue
					}
					stack = append(stack, child)
				}
			}
		}
	}

	order := make([]NodeHandle, len(sorted))
	for i, nh := range sorted {
		order[len(sorted)-1-i] = nh
	}
	return order, nil
}

// lifetimePass is the two-pass ref-counting and allocation step of
// spec.md §4.7.2: the first pass counts consumers and propagates
// save_for_next_frame from inputs onto the resources they read; the
// second allocates every not-yet-allocated, non-external output
// (consulting the free list for attachment aliasing) and releases
// attachment handles back to the free list once their last consumer
// has run.
func (g *Graph) lifetimePass() error {
	g.resources.Range(func(_ ResourceHandle, r *Resource) bool {
		r.RefCount = 0
		return true
	})
	for _, nh := range g.order {
		n := g.nodes.Access(nh)
		if !n.Enabled {
			continue
		}
		for _, in := range n.Inputs {
			r := g.resources.Access(in.Resource)
			r.RefCount++
			if in.SaveForNextFrame {
				r.SaveForNextFrame = true
			}
		}
	}

	g.freeList = g.freeList[:0]

	for _, nh := range g.order {
		n := g.nodes.Access(nh)
		if !n.Enabled {
			continue
		}
		for _, oh := range n.Outputs {
			r := g.resources.Access(oh)
			if r.External || r.Type == ResourceTypeReference {
				continue
			}
			switch r.Type {
			case ResourceTypeTexture:
				if r.Texture.Handles[0].IsUndefined() {
					if err := g.allocateTexture(r); err != nil {
						return err
					}
				}
			case ResourceTypeBuffer:
				if r.Buffer.Handle.IsUndefined() {
					if err := g.allocateBuffer(r); err != nil {
						return err
					}
				}
			}
		}
		for _, in := range n.Inputs {
			r := g.resources.Access(in.Resource)
			if r.External || r.Type != ResourceTypeTexture {
				continue
			}
			r.RefCount--
			if r.RefCount == 0 && !r.SaveForNextFrame {
				g.freeList = append(g.freeList, r.Texture.Handles[0])
			}
		}
	}
	return nil
}

// allocateTexture allocates one (or, if save_for_next_frame, two)
// TextureHandle for r, preferring to alias a same-or-larger, released
// transient attachment from the free list over allocating fresh —
// spec.md §4.7.2's "consult free_list ... reuse the first whose
// calc_texture_size >= needed". Per the conservative interpretation of
// the underspecified stored+aliasing interaction (spec.md §9's Open
// Questions), a resource that is itself save_for_next_frame never
// reuses the free list — it always gets fresh storage for both slots.
func (g *Graph) allocateTexture(r *Resource) error {
	w, h := g.calcSize(r.Texture)
	count := 1
	if r.SaveForNextFrame {
		count = 2
	}
	for i := 0; i < count; i++ {
		if !r.SaveForNextFrame {
			if th, ok := g.reuseFromFreeList(w, h); ok {
				r.Texture.Handles[i] = th
				continue
			}
		}
		th, err := g.renderer.CreateTexture(resource.TextureCreation{
			Width:        w,
			Height:       h,
			Depth:        1,
			Format:       r.Texture.Format,
			RenderTarget: true,
			Compute:      r.Texture.Compute,
			Sampled:      true,
			Name:         r.Name,
		})
		if err != nil {
			logger.Error("texture allocation failed", "resource", r.Name, "error", err)
			return fmt.Errorf("framegraph: allocate texture %q: %w", r.Name, err)
		}
		r.Texture.Handles[i] = th
	}
	return nil
}

func (g *Graph) reuseFromFreeList(w, h uint32) (resource.TextureHandle, bool) {
	for idx, fh := range g.freeList {
		ew, eh, ok := g.renderer.TextureExtent(fh)
		if ok && ew >= w && eh >= h {
			g.freeList = append(g.freeList[:idx], g.freeList[idx+1:]...)
			return fh, true
		}
	}
	return resource.TextureHandle{}, false
}

func (g *Graph) allocateBuffer(r *Resource) error {
	bh, err := g.renderer.CreateBuffer(resource.BufferCreation{
		Size:    r.Buffer.Size,
		VkUsage: r.Buffer.Usage,
		Name:    r.Name,
	})
	if err != nil {
		return fmt.Errorf("framegraph: allocate buffer %q: %w", r.Name, err)
	}
	r.Buffer.Handle = bh
	return nil
}

// calcSize implements calc_framebuffer_size: explicit Width/Height
// when non-zero, else the current swapchain size; auto_scale then
// scales whichever base size was chosen.
func (g *Graph) calcSize(info TextureInfo) (uint32, uint32) {
	w, h := info.Width, info.Height
	if w == 0 || h == 0 {
		w, h = g.width, g.height
	}
	if info.AutoScale != 0 {
		w = uint32(float32(w) * info.AutoScale)
		h = uint32(float32(h) * info.AutoScale)
	}
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	return w, h
}

// instantiationPass creates each enabled graphic node's RenderPass
// (once) and 1 or 2 Framebuffers depending on whether any of its
// attachments is save_for_next_frame, and resolves every node's Pass
// handle by looking up its registered callbacks by name — spec.md
// §4.7.2's final instantiation and pass-binding steps. A node with no
// registered pass gets an Undefined Pass handle, and Execute invokes no
// callbacks for it. Compute nodes create no render-pass objects.
func (g *Graph) instantiationPass() error {
	for _, nh := range g.order {
		n := g.nodes.Access(nh)
		if !n.Enabled {
			continue
		}

		n.Pass = handle.Undef[passTag]()
		if ph, ok := g.passNames[n.Name]; ok {
			n.Pass = ph
		}

		if n.Compute || len(n.Outputs) == 0 {
			continue
		}
		if n.renderPass == 0 {
			creation, err := g.renderPassCreationFor(n)
			if err != nil {
				return err
			}
			rp, err := g.renderer.CreateRenderPass(creation)
			if err != nil {
				return fmt.Errorf("framegraph: node %q: %w", n.Name, err)
			}
			n.renderPass = rp
		}
		if err := g.createFramebuffers(n); err != nil {
			return err
		}
	}
	return nil
}

// renderPassCreationFor builds the attachment list spec.md §4.4
// derives from a node's outputs: color slots in declared order, at
// most one depth-stencil slot, Clear when explicitly requested, Load
// when the attachment is carried over from the previous frame, else
// DontCare.
func (g *Graph) renderPassCreationFor(n *Node) (resource.RenderPassCreation, error) {
	var creation resource.RenderPassCreation
	for _, oh := range n.Outputs {
		r := g.resources.Access(oh)
		if r.Type != ResourceTypeTexture {
			continue
		}
		loadOp := vk.AttachmentLoadOpDontCare
		switch {
		case r.Texture.Operation == OpClear:
			loadOp = vk.AttachmentLoadOpClear
		case r.SaveForNextFrame:
			loadOp = vk.AttachmentLoadOpLoad
		}
		if r.Texture.IsDepth {
			if creation.Depth != nil {
				return creation, fmt.Errorf("node %q: more than one depth-stencil output", n.Name)
			}
			initial := vk.ImageLayoutUndefined
			if loadOp == vk.AttachmentLoadOpLoad {
				initial = vk.ImageLayoutDepthStencilAttachmentOptimal
			}
			creation.Depth = &resource.AttachmentDescription{
				Format:        r.Texture.Format,
				LoadOp:        loadOp,
				StoreOp:       vk.AttachmentStoreOpStore,
				InitialLayout: initial,
				FinalLayout:   vk.ImageLayoutDepthStencilAttachmentOptimal,
				IsDepth:       true,
			}
			continue
		}
		initial := vk.ImageLayoutUndefined
		if loadOp == vk.AttachmentLoadOpLoad {
			initial = vk.ImageLayoutColorAttachmentOptimal
		}
		creation.Colors = append(creation.Colors, resource.AttachmentDescription{
			Format:        r.Texture.Format,
			LoadOp:        loadOp,
			StoreOp:       vk.AttachmentStoreOpStore,
			InitialLayout: initial,
			FinalLayout:   vk.ImageLayoutColorAttachmentOptimal,
		})
	}
	return creation, nil
}

// createFramebuffers builds n's framebuffer(s): index 0 always, index
// 1 only when some attachment is double-buffered, each addressing the
// matching ping-pong slot of every output (spec.md §4.4's "concrete
// TextureHandle for the current frame, ping-pong index 0 or 1").
func (g *Graph) createFramebuffers(n *Node) error {
	maxFb := 1
	for _, oh := range n.Outputs {
		r := g.resources.Access(oh)
		if r.Type == ResourceTypeTexture && r.SaveForNextFrame {
			maxFb = 2
			break
		}
	}
	n.maxFramebuffers = maxFb

	for i := 0; i < maxFb; i++ {
		views := make([]vk.ImageView, 0, len(n.Outputs))
		var w, h uint32
		for _, oh := range n.Outputs {
			r := g.resources.Access(oh)
			if r.Type != ResourceTypeTexture {
				continue
			}
			idx := 0
			if r.SaveForNextFrame {
				idx = i
			}
			th := r.Texture.Handles[idx]
			views = append(views, g.renderer.TextureView(th))
			if w, h, _ = g.renderer.TextureExtent(th); w == 0 {
				w, h = g.calcSize(r.Texture)
			}
		}
		fb, err := g.renderer.CreateFramebuffer(resource.FramebufferCreation{
			RenderPass: n.renderPass,
			Views:      views,
			Width:      w,
			Height:     h,
		})
		if err != nil {
			return fmt.Errorf("framegraph: node %q: framebuffer %d: %w", n.Name, i, err)
		}
		n.framebuffers[i] = fb
	}
	return nil
}
