// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

// Package gerium is the renderer facade spec.md §4.8 describes: a
// single entry point that owns the device, the resource pools, the
// command-buffer pool, and the profiler, and drives one frame graph
// per application. It replaces this module's original WebGPU-facing
// root API (Instance/Adapter/Device/Queue wrapping github.com/gogpu/
// wgpu/core) end to end — that API had no Vulkan render-pass/frame-
// graph concept to generalize, so this facade is built fresh on top of
// the vk/device/resource/command/profiler/framegraph packages that
// replaced hal/vulkan's concerns earlier in this module, following the
// same create/reference/destroy lifecycle shape the teacher's Instance/
// Adapter/Device API used (explicit creation, explicit teardown, no
// finalizers).
package gerium

import (
	"fmt"
	"sync/atomic"

	"gerium/command"
	"gerium/device"
	"gerium/framegraph"
	"gerium/internal/logging"
	"gerium/internal/thread"
	"gerium/profiler"
	"gerium/resource"
	"gerium/vk"
)

var logger = logging.For("gerium:renderer")

// Config bundles the device/resource configuration a Renderer needs at
// creation, mirroring device.Config's bring-up knobs.
type Config struct {
	Device       device.Config
	PoolCapacity int
	MaxWorkers   uint32

	// StreamerQueueDepth bounds how many texture uploads UploadTexture
	// can have in flight before it blocks; zero uses the streamer's
	// default.
	StreamerQueueDepth int
}

// Renderer is spec.md §4.8's facade: create_buffer/texture/technique/
// descriptor_set, reference_X/destroy_X ref-counting, bind_buffer/
// texture/resource, map_buffer/unmap_buffer, new_frame/render/present,
// get_profiler/get_texture_info.
type Renderer struct {
	dev  *device.Device
	res  *resource.Manager
	cmds *command.Pool
	prof *profiler.Profiler
	loop *thread.RenderLoop
	strm *resource.Streamer

	maxWorkers uint32

	bufferRefs   map[resource.BufferHandle]*int32
	textureRefs  map[resource.TextureHandle]*int32
	pipelineRefs map[resource.PipelineHandle]*int32
	descRefs     map[resource.DescriptorSetHandle]*int32

	frame      *device.Frame
	primary    *command.CommandBuffer
	frameParity uint32
}

// New brings up the whole Vulkan runtime in the order spec.md's bring-
// up steps describe: device (queues, allocator, swapchain, sync
// objects, per-frame command pools), the resource manager (buffer/
// texture/sampler/pipeline/descriptor-set pools, the dynamic ring, the
// global descriptor pool), the per-thread command-buffer pool, and the
// profiler's query pool.
func New(cfg Config, surface vk.SurfaceKHR, width, height uint32) (*Renderer, error) {
	dev, err := device.New(cfg.Device, surface, width, height)
	if err != nil {
		logger.Error("device bring-up failed", "error", err)
		return nil, fmt.Errorf("gerium: device bring-up: %w", err)
	}

	res, err := resource.NewManager(dev, cfg.Device, cfg.PoolCapacity)
	if err != nil {
		logger.Error("resource manager bring-up failed", "error", err)
		dev.Destroy()
		return nil, fmt.Errorf("gerium: resource manager: %w", err)
	}

	pool, err := command.NewPool(dev, res)
	if err != nil {
		logger.Error("command pool bring-up failed", "error", err)
		res.Destroy()
		dev.Destroy()
		return nil, fmt.Errorf("gerium: command pool: %w", err)
	}

	maxWorkers := cfg.MaxWorkers
	if maxWorkers == 0 {
		maxWorkers = 1
	}

	_, _, transferFamily := dev.QueueFamilies()
	strm, err := resource.NewStreamer(res, transferFamily, dev.TransferQueue(), cfg.StreamerQueueDepth)
	if err != nil {
		logger.Error("streamer bring-up failed", "error", err)
		pool.Destroy()
		res.Destroy()
		dev.Destroy()
		return nil, fmt.Errorf("gerium: streamer: %w", err)
	}

	return &Renderer{
		dev:          dev,
		res:          res,
		cmds:         pool,
		prof:         profiler.New(dev, uint32(len(dev.Swapchain().Images()))),
		loop:         thread.NewRenderLoop(),
		strm:         strm,
		maxWorkers:   maxWorkers,
		bufferRefs:   make(map[resource.BufferHandle]*int32),
		textureRefs:  make(map[resource.TextureHandle]*int32),
		pipelineRefs: make(map[resource.PipelineHandle]*int32),
		descRefs:     make(map[resource.DescriptorSetHandle]*int32),
	}, nil
}

// Destroy tears everything down in the reverse of New's bring-up order.
// The render loop's dedicated OS thread is stopped first so no queued
// frame operation races the teardown below.
func (r *Renderer) Destroy() {
	r.loop.Stop()
	r.strm.Close()
	r.cmds.Destroy()
	r.res.Destroy()
	r.dev.Destroy()
}

// UploadTexture queues an asynchronous host-to-device texture upload
// on the streamer's transfer queue, spec.md §9's "Coroutine/async
// upload thread" redesign note. done (if non-nil) is invoked from the
// streamer's own goroutine, never the caller's, once the transfer
// completes or fails.
func (r *Renderer) UploadTexture(h resource.TextureHandle, data []byte, done func(error)) {
	r.strm.Upload(resource.UploadRequest{Texture: h, Data: data, Done: done})
}

// GetProfiler returns the frame profiler, spec.md §4.8's get_profiler.
func (r *Renderer) GetProfiler() *profiler.Profiler { return r.prof }

// GetTextureInfo returns a texture's current extent, spec.md §4.8's
// get_texture_info — what a UI layer or a resize callback needs
// without the caller reaching into the resource manager directly.
func (r *Renderer) GetTextureInfo(h resource.TextureHandle) (width, height uint32, ok bool) {
	return r.res.TextureExtent(h)
}

// --- create_X / reference_X / destroy_X: spec.md §4.8's ref-counted
// resource lifecycle. A resource created via CreateX starts at a
// refcount of 1; Reference increments it; Destroy decrements it and
// only actually releases GPU state when the count reaches zero — the
// same "shared ownership, last destroy wins" rule spec.md's glossary
// gives for Reference()/Destroy() pairs on a created resource.

func (r *Renderer) CreateBuffer(creation resource.BufferCreation) (resource.BufferHandle, error) {
	h, err := r.res.CreateBuffer(creation)
	if err != nil {
		return h, err
	}
	r.bufferRefs[h] = new(int32)
	*r.bufferRefs[h] = 1
	return h, nil
}

func (r *Renderer) ReferenceBuffer(h resource.BufferHandle) {
	if c, ok := r.bufferRefs[h]; ok {
		atomic.AddInt32(c, 1)
	}
}

func (r *Renderer) DestroyBuffer(h resource.BufferHandle) {
	c, ok := r.bufferRefs[h]
	if !ok {
		r.res.DestroyBuffer(h)
		return
	}
	if atomic.AddInt32(c, -1) <= 0 {
		delete(r.bufferRefs, h)
		r.res.DestroyBuffer(h)
	}
}

func (r *Renderer) CreateTexture(creation resource.TextureCreation) (resource.TextureHandle, error) {
	h, err := r.res.CreateTexture(creation)
	if err != nil {
		return h, err
	}
	r.textureRefs[h] = new(int32)
	*r.textureRefs[h] = 1
	return h, nil
}

func (r *Renderer) ReferenceTexture(h resource.TextureHandle) {
	if c, ok := r.textureRefs[h]; ok {
		atomic.AddInt32(c, 1)
	}
}

func (r *Renderer) DestroyTexture(h resource.TextureHandle) {
	c, ok := r.textureRefs[h]
	if !ok {
		r.res.DestroyTexture(h)
		return
	}
	if atomic.AddInt32(c, -1) <= 0 {
		delete(r.textureRefs, h)
		r.res.DestroyTexture(h)
	}
}

// CreateTechnique builds a graphics pipeline — spec.md §4.8's
// create_technique — one VkPipeline plus its layout, ref-counted like
// every other created resource.
func (r *Renderer) CreateTechnique(creation resource.GraphicsPipelineCreation) (resource.PipelineHandle, error) {
	h, err := r.res.CreateGraphicsPipeline(creation)
	if err != nil {
		return h, err
	}
	r.pipelineRefs[h] = new(int32)
	*r.pipelineRefs[h] = 1
	return h, nil
}

// CreateComputeTechnique builds a compute pipeline variant of
// CreateTechnique.
func (r *Renderer) CreateComputeTechnique(creation resource.ComputePipelineCreation) (resource.PipelineHandle, error) {
	h, err := r.res.CreateComputePipeline(creation)
	if err != nil {
		return h, err
	}
	r.pipelineRefs[h] = new(int32)
	*r.pipelineRefs[h] = 1
	return h, nil
}

func (r *Renderer) ReferenceTechnique(h resource.PipelineHandle) {
	if c, ok := r.pipelineRefs[h]; ok {
		atomic.AddInt32(c, 1)
	}
}

func (r *Renderer) DestroyTechnique(h resource.PipelineHandle) {
	c, ok := r.pipelineRefs[h]
	if !ok {
		r.res.DestroyPipeline(h)
		return
	}
	if atomic.AddInt32(c, -1) <= 0 {
		delete(r.pipelineRefs, h)
		r.res.DestroyPipeline(h)
	}
}

// CreateDescriptorSet allocates a descriptor set from the global pool,
// spec.md §4.8's create_descriptor_set.
func (r *Renderer) CreateDescriptorSet(layout vk.DescriptorSetLayout) (resource.DescriptorSetHandle, error) {
	h, err := r.res.AllocateDescriptorSet(layout)
	if err != nil {
		return h, err
	}
	r.descRefs[h] = new(int32)
	*r.descRefs[h] = 1
	return h, nil
}

func (r *Renderer) ReferenceDescriptorSet(h resource.DescriptorSetHandle) {
	if c, ok := r.descRefs[h]; ok {
		atomic.AddInt32(c, 1)
	}
}

// DestroyDescriptorSet decrements a descriptor set's refcount. The
// underlying VkDescriptorSet is never individually freed back to the
// pool (this module's vk.Commands has no vkFreeDescriptorSets wrapper,
// noted in resource/descriptor.go) — reaching zero just stops the set
// from being tracked here.
func (r *Renderer) DestroyDescriptorSet(h resource.DescriptorSetHandle) {
	c, ok := r.descRefs[h]
	if !ok {
		return
	}
	if atomic.AddInt32(c, -1) <= 0 {
		delete(r.descRefs, h)
	}
}

// --- bind_buffer / bind_texture / bind_resource: stage a descriptor
// write, deferred to Flush at first use each frame by
// resource.Manager's descriptor update cache (spec.md §4.9).

func (r *Renderer) BindBuffer(set resource.DescriptorSetHandle, binding uint32, descType vk.DescriptorType, buf resource.BufferHandle) {
	r.res.WriteBuffer(set, binding, descType, buf)
}

func (r *Renderer) BindTexture(set resource.DescriptorSetHandle, binding uint32, descType vk.DescriptorType, tex resource.TextureHandle, sampler vk.Sampler, layout vk.ImageLayout) {
	r.res.WriteImage(set, binding, descType, r.res.TextureView(tex), sampler, layout)
}

// BindResource resolves name through g (the active frame graph) and
// binds whichever concrete texture or buffer it currently names —
// spec.md §4.9's "if the bound set refers to a frame-graph resource
// name, resolve it through the current frame graph" indirection.
func (r *Renderer) BindResource(g *framegraph.Graph, set resource.DescriptorSetHandle, binding uint32, descType vk.DescriptorType, name string, sampler vk.Sampler) error {
	res, ok := g.GetResource(name)
	if !ok {
		return fmt.Errorf("gerium: bind_resource: unknown frame graph resource %q", name)
	}
	switch res.Type {
	case framegraph.ResourceTypeBuffer:
		r.BindBuffer(set, binding, descType, res.Buffer.Handle)
	case framegraph.ResourceTypeTexture:
		r.BindTexture(set, binding, descType, res.Texture.Handles[0], sampler, vk.ImageLayoutShaderReadOnlyOptimal)
	default:
		return fmt.Errorf("gerium: bind_resource: %q is a Reference, not bindable directly", name)
	}
	return nil
}

// MapBuffer and UnmapBuffer are thin passthroughs to the resource
// manager, spec.md §4.8's map_buffer/unmap_buffer.
func (r *Renderer) MapBuffer(h resource.BufferHandle) (uintptr, error) { return r.res.Map(h) }
func (r *Renderer) UnmapBuffer(h resource.BufferHandle)                { r.res.Unmap(h) }

// --- new_frame / render / present: the per-frame loop spec.md §4.8
// and §4.2 describe.

// NewFrame acquires the next swapchain image and the primary command
// buffer for this frame slot, and begins recording. Returns
// device.ErrSkipFrame (not a hard error) when the swapchain needs
// rebuilding. Runs on the render loop's dedicated OS thread — spec.md
// §5's "single-threaded submission" — so it never races a Present or
// Resize issued from a concurrent call.
func (r *Renderer) NewFrame() error {
	return r.onRenderThread(func() error {
		frame, err := r.dev.NewFrame()
		if err != nil {
			if err != device.ErrSkipFrame {
				logger.Error("new_frame failed", "error", err)
			}
			return err
		}
		cb, err := r.cmds.GetPrimary(frame)
		if err != nil {
			return err
		}
		if err := cb.Begin(true); err != nil {
			return err
		}
		cb.SetProfiler(r.prof)
		r.prof.ResetFrame()
		r.frame = frame
		r.primary = cb
		r.frameParity = uint32(frame.AbsoluteFrame % 2)
		return nil
	})
}

// Render walks g's compiled order and records its draw/dispatch work
// into the frame's primary command buffer — spec.md §4.8's
// render(&frame_graph). Compile is called first if g has pending
// changes (add_node/enable_node/resize since the last compile), per
// spec.md §4.7.1's "compile is a no-op unless the graph is dirty".
func (r *Renderer) Render(g *framegraph.Graph) error {
	return r.onRenderThread(func() error {
		if err := g.Compile(); err != nil {
			logger.Error("frame graph compile failed", "error", err)
			return fmt.Errorf("gerium: frame graph compile: %w", err)
		}
		if err := g.Prepare(r.cmds); err != nil {
			logger.Error("frame graph prepare failed", "error", err)
			return fmt.Errorf("gerium: frame graph prepare: %w", err)
		}
		if err := g.Execute(r.cmds, r.primary, r.frame.Slot, r.frameParity); err != nil {
			logger.Error("frame graph execute failed", "error", err)
			return err
		}
		return nil
	})
}

// Present ends recording, submits the primary command buffer, and
// presents the acquired swapchain image.
func (r *Renderer) Present() error {
	return r.onRenderThread(func() error {
		if err := r.primary.End(); err != nil {
			return err
		}
		if err := r.prof.FetchDataFromGpu(); err != nil {
			return err
		}
		err := r.dev.Present(r.frame, []vk.CommandBuffer{r.primary.Handle()})
		r.frame = nil
		r.primary = nil
		return err
	})
}

// Resize recreates the swapchain and propagates the new size into g,
// per spec.md §4.7.3. Safe to call from a UI/window-event thread: the
// actual swapchain recreation still runs on the render thread, the
// same separation internal/thread's RenderLoop was built for.
func (r *Renderer) Resize(g *framegraph.Graph, width, height uint32) error {
	return r.onRenderThread(func() error {
		oldW, oldH := r.SwapchainSize()
		if err := r.dev.Resize(width, height); err != nil {
			logger.Error("swapchain resize failed", "error", err)
			return err
		}
		return g.Resize(oldW, width, oldH, height)
	})
}

// onRenderThread runs f on the render loop's dedicated OS thread and
// propagates its error back to the caller.
func (r *Renderer) onRenderThread(f func() error) error {
	result := r.loop.RunOnRenderThread(func() any { return f() })
	if result == nil {
		return nil
	}
	return result.(error)
}

// SwapchainSize implements framegraph.Renderer.
func (r *Renderer) SwapchainSize() (width, height uint32) {
	ext := r.dev.Swapchain().Extent()
	return ext.Width, ext.Height
}

// CreateRenderPass, DestroyRenderPass, CreateFramebuffer, TextureView,
// and TextureExtent complete framegraph.Renderer by delegating to the
// resource manager directly — they are not ref-counted, since the
// frame graph itself (not application code) owns their lifetime.
func (r *Renderer) CreateRenderPass(c resource.RenderPassCreation) (vk.RenderPass, error) {
	return r.res.CreateRenderPass(c)
}
func (r *Renderer) DestroyRenderPass(rp vk.RenderPass) { r.res.DestroyRenderPass(rp) }
func (r *Renderer) CreateFramebuffer(c resource.FramebufferCreation) (vk.Framebuffer, error) {
	return r.res.CreateFramebuffer(c)
}
func (r *Renderer) TextureView(h resource.TextureHandle) vk.ImageView { return r.res.TextureView(h) }

// TextureExtent implements framegraph.Renderer; GetTextureInfo is the
// same call under the facade's public spec.md §4.8 name.
func (r *Renderer) TextureExtent(h resource.TextureHandle) (width, height uint32, ok bool) {
	return r.res.TextureExtent(h)
}

var _ framegraph.Renderer = (*Renderer)(nil)
