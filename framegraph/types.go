// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

// Package framegraph implements spec.md §4.7: a DAG of named nodes
// producing and consuming named resources, compiled into a topological
// execution order with automatic attachment lifetime tracking and
// transient-texture aliasing. Grounded on original_source/sources/
// FrameGraph.{hpp,cpp} — the teacher repo has no frame-graph concept of
// its own (gogpu-wgpu is a single-pass WebGPU backend), so the
// node/resource/compile model here is translated from the reference
// implementation's C++ class into Go idiom: fixed-size C arrays become
// handle.Pool slabs, absl::flat_hash_map name caches become plain Go
// maps, and the virtual RenderPass callback interface becomes a struct
// of function values (Callbacks) plus a small Renderer capability
// interface, matching this module's existing pattern of structural
// interfaces at package boundaries (command.Profiler).
package framegraph

import (
	"gerium/command"
	"gerium/handle"
	"gerium/resource"
	"gerium/vk"
)

type nodeTag struct{}

func (nodeTag) handleMarker() {}

type resourceTag struct{}

func (resourceTag) handleMarker() {}

type passTag struct{}

func (passTag) handleMarker() {}

// NodeHandle, ResourceHandle, and RenderPassHandle are the three
// pooled handle kinds spec.md §4.7.1 names: add_node, the resources an
// add_node call produces/consumes, and add_pass's registered callback
// set.
type (
	NodeHandle       = handle.Handle[nodeTag]
	ResourceHandle   = handle.Handle[resourceTag]
	RenderPassHandle = handle.Handle[passTag]
)

// ResourceType distinguishes the three resource kinds spec.md §4.7
// models: a renderable/sampleable Texture, a Buffer, and a Reference —
// a consume-only alias that names another resource and never
// allocates storage of its own.
type ResourceType uint8

const (
	ResourceTypeTexture ResourceType = iota
	ResourceTypeBuffer
	ResourceTypeReference
)

// TextureOperation is the load operation spec.md §4.4 derives a
// RenderPass attachment from: Clear when the output requests it,
// DontCare for a fresh transient attachment, Load for one carried over
// from a previous frame.
type TextureOperation uint8

const (
	OpDontCare TextureOperation = iota
	OpLoad
	OpClear
)

// TextureInfo is a texture/attachment resource's declaration. Width
// and Height of zero mean "use the current swapchain size" (calcSize);
// AutoScale, when non-zero, scales that base size by a fraction
// instead of using Width/Height directly — spec.md §4.7.2's allocation
// pass and §4.7.3's resize propagation both key off this field.
type TextureInfo struct {
	Format    vk.Format
	Width     uint32
	Height    uint32
	Depth     uint32
	AutoScale float32
	IsDepth   bool
	Compute   bool // storage image usage, for a compute node's output
	Operation TextureOperation
	ClearColor vk.ClearColorValue
	ClearDepth vk.ClearDepthStencilValue

	// Handles holds up to two concrete textures: index 0 always, index
	// 1 only when the resource is save_for_next_frame (double-buffered,
	// spec.md's "Ping-pong" glossary entry).
	Handles [2]resource.TextureHandle
}

// BufferInfo is a buffer resource's declaration.
type BufferInfo struct {
	Size      uint64
	Usage     vk.BufferUsageFlags
	FillValue uint32
	Handle    resource.BufferHandle
}

// Resource is one named node output (or, for ResourceTypeReference, an
// alias of another resource by name) — grounded on FrameGraphResource
// in FrameGraph.hpp.
type Resource struct {
	Name             string
	Type             ResourceType
	External         bool
	SaveForNextFrame bool
	RefCount         int
	Producer         NodeHandle

	Texture TextureInfo
	Buffer  BufferInfo
}

// nodeInput is an unresolved input declaration: only a name and the
// save_for_next_frame flag are known at add_node time. Compile's
// computeEdges step (spec.md §4.7.2) resolves Resource to the matching
// output resource and, unless SaveForNextFrame, records a same-frame
// producer→consumer edge.
type nodeInput struct {
	Name             string
	SaveForNextFrame bool
	Resource         ResourceHandle
}

// Node is one add_node call: a unit of work producing Outputs from
// Inputs, plus the lazily-created RenderPass/Framebuffers a graphic
// node needs (spec.md §4.7.2's instantiation pass).
type Node struct {
	Name    string
	Compute bool
	Enabled bool

	Inputs  []nodeInput
	Outputs []ResourceHandle
	Edges   []NodeHandle // consumers, rebuilt every compile

	Pass         RenderPassHandle
	renderPass   vk.RenderPass
	framebuffers [2]vk.Framebuffer
	maxFramebuffers int

	// workers is the number of parallel secondary-buffer recorders this
	// node's last Prepare call requested, clamped to the pool's
	// configured worker count. 0/1 means "record inline on the
	// primary", matching spec.md §5/§6's prepare/render contract.
	workers uint32
}

// Callbacks is the external callback contract of spec.md §6: Prepare
// is called once per frame before recording and returns how many
// secondary command buffers the pass intends to record; Render
// records the pass's draw/dispatch work for one worker partition;
// Resize runs after any swapchain size change and must not record GPU
// work; Initialize/Uninitialize bracket pass registration and teardown.
// Any nil field is treated as a no-op.
type Callbacks struct {
	Initialize   func(g *Graph, r Renderer, data any) error
	Uninitialize func(g *Graph, r Renderer, data any)
	Prepare      func(g *Graph, r Renderer, data any, maxWorkers uint32) (uint32, error)
	Resize       func(g *Graph, r Renderer, data any) error
	Render       func(g *Graph, r Renderer, data any, cb *command.CommandBuffer, workerIndex, totalWorkers uint32) error
}

type registeredPass struct {
	Name      string
	Callbacks Callbacks
	Data      any
}

// NodeCreation is add_node's argument: a name, whether it's a compute
// node, and its input/output declarations.
type NodeCreation struct {
	Name    string
	Compute bool
	Inputs  []InputCreation
	Outputs []OutputCreation
}

// InputCreation declares one input by the name of the resource it
// reads. PreviousFrame marks a save_for_next_frame read — the input
// reads the slot the previous frame wrote, and does not add a
// same-frame ordering edge against its producer.
type InputCreation struct {
	Name          string
	PreviousFrame bool
}

// OutputCreation declares one output resource this node produces.
// Exactly one of Texture/Buffer is meaningful, selected by Type.
type OutputCreation struct {
	Name    string
	Type    ResourceType
	Texture TextureInfo
	Buffer  BufferInfo
}

// Renderer is the capability set the frame graph needs from the
// renderer facade to allocate resources and build render passes —
// kept as a small interface (rather than an import of the root gerium
// package) to avoid a framegraph↔gerium import cycle, the same
// one-way-dependency pattern command.Profiler uses against the
// profiler package.
type Renderer interface {
	CreateTexture(resource.TextureCreation) (resource.TextureHandle, error)
	DestroyTexture(resource.TextureHandle)
	TextureView(resource.TextureHandle) vk.ImageView
	TextureExtent(resource.TextureHandle) (width, height uint32, ok bool)

	CreateBuffer(resource.BufferCreation) (resource.BufferHandle, error)
	DestroyBuffer(resource.BufferHandle)

	CreateRenderPass(resource.RenderPassCreation) (vk.RenderPass, error)
	DestroyRenderPass(vk.RenderPass)
	CreateFramebuffer(resource.FramebufferCreation) (vk.Framebuffer, error)

	SwapchainSize() (width, height uint32)
}
