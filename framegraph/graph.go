// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"fmt"

	"gerium/handle"
	"gerium/resource"
	"gerium/vk"
)

// externalBinding records a resource registered via AddBuffer/AddTexture:
// an application-owned handle bound into the graph by name rather than
// allocated by Compile.
type externalBinding struct {
	isTexture bool
	texture   resource.TextureHandle
	buffer    resource.BufferHandle
}

// Graph is one frame graph instance: the node/resource/pass pools, the
// name-keyed caches spec.md §4.7.1's add_pass/add_node/add_buffer use
// to resolve by name, and the compile-time bookkeeping (free list,
// compiled order) spec.md §4.7.2 describes.
type Graph struct {
	renderer Renderer

	nodes     *handle.Pool[Node, nodeTag]
	resources *handle.Pool[Resource, resourceTag]
	passes    *handle.Pool[registeredPass, passTag]

	nodeNames     map[string]NodeHandle
	resourceNames map[string]ResourceHandle
	passNames     map[string]RenderPassHandle
	external      map[string]externalBinding

	order      []NodeHandle // compiled execution order, spec.md §4.7.2
	freeList   []resource.TextureHandle
	hasChanges bool

	width, height uint32 // last known swapchain size, for calcSize
}

const (
	maxNodes     = 256
	maxResources = 256
	maxPasses    = 64
)

// New creates an empty Graph over renderer, with the given initial
// swapchain size (used by auto_scale and zero-sized texture
// declarations until the first Resize call).
func New(renderer Renderer, width, height uint32) *Graph {
	return &Graph{
		renderer:      renderer,
		nodes:         handle.New[Node, nodeTag](maxNodes, true),
		resources:     handle.New[Resource, resourceTag](maxResources, true),
		passes:        handle.New[registeredPass, passTag](maxPasses, true),
		nodeNames:     make(map[string]NodeHandle),
		resourceNames: make(map[string]ResourceHandle),
		passNames:     make(map[string]RenderPassHandle),
		external:      make(map[string]externalBinding),
		width:         width,
		height:        height,
		hasChanges:    true,
	}
}

// AddPass registers the render-pass callback set under name, grounded
// on FrameGraph::addPass. Adding a pass whose name already exists
// fails, matching spec.md §4.7.1.
func (g *Graph) AddPass(name string, callbacks Callbacks, data any) (RenderPassHandle, error) {
	if _, ok := g.passNames[name]; ok {
		return handle.Undef[passTag](), fmt.Errorf("framegraph: pass %q already exists", name)
	}
	h, entry, err := g.passes.ObtainAndAccess()
	if err != nil {
		return handle.Undef[passTag](), err
	}
	*entry = registeredPass{Name: name, Callbacks: callbacks, Data: data}
	g.passNames[name] = h
	g.hasChanges = true
	if callbacks.Initialize != nil {
		if err := callbacks.Initialize(g, g.renderer, data); err != nil {
			delete(g.passNames, name)
			g.passes.Release(h)
			return handle.Undef[passTag](), fmt.Errorf("framegraph: pass %q: initialize: %w", name, err)
		}
	}
	return h, nil
}

// RemovePass unregisters a previously added pass by name, invoking its
// Uninitialize callback first.
func (g *Graph) RemovePass(name string) error {
	h, ok := g.passNames[name]
	if !ok {
		return fmt.Errorf("framegraph: pass %q not found", name)
	}
	p := g.passes.Access(h)
	if p.Callbacks.Uninitialize != nil {
		p.Callbacks.Uninitialize(g, g.renderer, p.Data)
	}
	delete(g.passNames, name)
	g.passes.Release(h)
	g.hasChanges = true
	return nil
}

// GetPass looks up a registered pass's callbacks by handle.
func (g *Graph) GetPass(h RenderPassHandle) (Callbacks, any, bool) {
	if h.IsUndefined() {
		return Callbacks{}, nil, false
	}
	p := g.passes.Access(h)
	if p == nil {
		return Callbacks{}, nil, false
	}
	return p.Callbacks, p.Data, true
}

// AddNode registers a node producing creation.Outputs from
// creation.Inputs, grounded on FrameGraph::addNode/createNodeInput/
// createNodeOutput. Output resources are registered into the
// name-keyed resource cache immediately (so a later node can name them
// as an input); input resolution is deferred to Compile.
func (g *Graph) AddNode(creation NodeCreation) (NodeHandle, error) {
	if _, ok := g.nodeNames[creation.Name]; ok {
		return handle.Undef[nodeTag](), fmt.Errorf("framegraph: node %q already exists", creation.Name)
	}
	nh, node, err := g.nodes.ObtainAndAccess()
	if err != nil {
		return handle.Undef[nodeTag](), err
	}
	*node = Node{Name: creation.Name, Compute: creation.Compute, Enabled: true}

	for _, in := range creation.Inputs {
		node.Inputs = append(node.Inputs, nodeInput{
			Name:             in.Name,
			SaveForNextFrame: in.PreviousFrame,
			Resource:         handle.Undef[resourceTag](),
		})
	}

	for _, out := range creation.Outputs {
		rh, err := g.createNodeOutput(out, nh)
		if err != nil {
			g.nodes.Release(nh)
			return handle.Undef[nodeTag](), err
		}
		node.Outputs = append(node.Outputs, rh)
	}

	g.nodeNames[creation.Name] = nh
	g.hasChanges = true
	return nh, nil
}

// createNodeOutput registers one output declaration as a canonical,
// name-addressable Resource — grounded on FrameGraph::createNodeOutput.
// A Reference-typed output is NOT given fresh storage: Compile resolves
// it to whatever resource its name already names elsewhere in the
// graph, so it is still entered into the name cache here (a
// Reference's whole purpose is being found by name) but carries no
// texture/buffer declaration of its own.
func (g *Graph) createNodeOutput(out OutputCreation, producer NodeHandle) (ResourceHandle, error) {
	rh, r, err := g.resources.ObtainAndAccess()
	if err != nil {
		return handle.Undef[resourceTag](), err
	}
	*r = Resource{
		Name:     out.Name,
		Type:     out.Type,
		Producer: producer,
	}
	switch out.Type {
	case ResourceTypeTexture:
		r.Texture = out.Texture
		r.Texture.Handles = [2]resource.TextureHandle{resource.UndefTexture(), resource.UndefTexture()}
	case ResourceTypeBuffer:
		r.Buffer = out.Buffer
		r.Buffer.Handle = resource.UndefBuffer()
	}
	g.resourceNames[out.Name] = rh
	return rh, nil
}

// EnableNode toggles a node's Enabled flag, marking the graph dirty
// only if the value actually changed (spec.md §4.7.1).
func (g *Graph) EnableNode(name string, enable bool) error {
	nh, ok := g.nodeNames[name]
	if !ok {
		return fmt.Errorf("framegraph: node %q not found", name)
	}
	node := g.nodes.Access(nh)
	if node.Enabled != enable {
		node.Enabled = enable
		g.hasChanges = true
	}
	return nil
}

// AddBuffer and AddTexture bind an application-owned resource into the
// graph under name, for nodes to reference as an external input/output
// (spec.md §4.7.1). An Undefined handle unregisters the binding.
func (g *Graph) AddBuffer(name string, h resource.BufferHandle) {
	if h.IsUndefined() {
		delete(g.external, name)
		return
	}
	g.external[name] = externalBinding{buffer: h}
	g.hasChanges = true
}

func (g *Graph) AddTexture(name string, h resource.TextureHandle) {
	if h.IsUndefined() {
		delete(g.external, name)
		return
	}
	g.external[name] = externalBinding{isTexture: true, texture: h}
	g.hasChanges = true
}

// GetResource looks up a resource by name.
func (g *Graph) GetResource(name string) (*Resource, bool) {
	rh, ok := g.resourceNames[name]
	if !ok {
		return nil, false
	}
	return g.resources.Access(rh), true
}

// GetResourceHandle resolves a resource name to its handle.
func (g *Graph) GetResourceHandle(name string) (ResourceHandle, bool) {
	rh, ok := g.resourceNames[name]
	return rh, ok
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int { return g.nodes.Len() }

// GetNode looks up a node by name.
func (g *Graph) GetNode(name string) (*Node, bool) {
	nh, ok := g.nodeNames[name]
	if !ok {
		return nil, false
	}
	return g.nodes.Access(nh), true
}

// GetNodeAt returns the nth node in the compiled execution order, or
// nil if Compile has not run or n is out of range — the form
// spec.md's "nodes()" accessor takes after a successful compile.
func (g *Graph) GetNodeAt(n int) (*Node, NodeHandle, bool) {
	if n < 0 || n >= len(g.order) {
		return nil, handle.Undef[nodeTag](), false
	}
	nh := g.order[n]
	return g.nodes.Access(nh), nh, true
}

// Order returns the compiled execution order (node handles), valid
// after Compile.
func (g *Graph) Order() []NodeHandle { return g.order }

// Clear tears down every node's render pass/framebuffers and every
// non-external output's texture(s)/buffer, and resets the graph to
// empty — grounded on FrameGraph::clear.
func (g *Graph) Clear() {
	g.passes.Range(func(_ RenderPassHandle, p *registeredPass) bool {
		if p.Callbacks.Uninitialize != nil {
			p.Callbacks.Uninitialize(g, g.renderer, p.Data)
		}
		return true
	})
	g.nodes.Range(func(_ NodeHandle, n *Node) bool {
		g.destroyNodeRenderTargets(n)
		return true
	})
	g.resources.Range(func(_ ResourceHandle, r *Resource) bool {
		if r.External || r.Type == ResourceTypeReference {
			return true
		}
		switch r.Type {
		case ResourceTypeTexture:
			for _, th := range r.Texture.Handles {
				if !th.IsUndefined() {
					g.renderer.DestroyTexture(th)
				}
			}
		case ResourceTypeBuffer:
			if !r.Buffer.Handle.IsUndefined() {
				g.renderer.DestroyBuffer(r.Buffer.Handle)
			}
		}
		return true
	})
	g.nodes.ReleaseAll()
	g.resources.ReleaseAll()
	g.passes.ReleaseAll()
	g.nodeNames = make(map[string]NodeHandle)
	g.resourceNames = make(map[string]ResourceHandle)
	g.passNames = make(map[string]RenderPassHandle)
	g.external = make(map[string]externalBinding)
	g.order = nil
	g.freeList = nil
	g.hasChanges = true
}

// destroyNodeRenderTargets destroys a node's render pass — the
// Renderer's DestroyRenderPass also evicts every cached framebuffer
// built from it (resource.Manager.DestroyFramebuffersFor), so a
// node's framebuffers never need a separate teardown call.
func (g *Graph) destroyNodeRenderTargets(n *Node) {
	if n.renderPass != 0 {
		g.renderer.DestroyRenderPass(n.renderPass)
		n.renderPass = 0
	}
	n.framebuffers = [2]vk.Framebuffer{}
}
