// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package resource

import (
	"fmt"

	"gerium/vk"
)

// AttachmentDescription is one color or depth/stencil slot in a
// RenderPassCreation, matching the ordering rule of spec.md §4.4: color
// slots fill in declared order, at most one depth-stencil slot.
type AttachmentDescription struct {
	Format        vk.Format
	LoadOp        vk.AttachmentLoadOp
	StoreOp       vk.AttachmentStoreOp
	InitialLayout vk.ImageLayout
	FinalLayout   vk.ImageLayout
	IsDepth       bool
}

// RenderPassCreation describes a classic VkRenderPass with a single
// subpass, the shape spec.md §4.4 derives from a frame graph node's
// outputs. Keyed caching (RenderPassKey below) is grounded on the
// teacher's hal/vulkan/renderpass.go RenderPassCache, generalized from
// the teacher's MSAA-resolve shape to this spec's plain color+depth
// attachment list (this runtime does not implement MSAA resolve).
type RenderPassCreation struct {
	Colors []AttachmentDescription
	Depth  *AttachmentDescription
}

// RenderPassKey uniquely identifies a RenderPass configuration for the
// cache below.
type RenderPassKey struct {
	colors string // encoded color attachment list, comparable as a map key
	depth  string
}

func encodeAttachment(a AttachmentDescription) string {
	return fmt.Sprintf("%d:%d:%d:%d:%d", a.Format, a.LoadOp, a.StoreOp, a.InitialLayout, a.FinalLayout)
}

func keyOf(c RenderPassCreation) RenderPassKey {
	var k RenderPassKey
	for _, a := range c.Colors {
		k.colors += encodeAttachment(a) + "|"
	}
	if c.Depth != nil {
		k.depth = encodeAttachment(*c.Depth)
	}
	return k
}

// RenderPassHandle addresses a cached VkRenderPass. DestroyRenderPass
// releases one pass together with its cached framebuffers (the frame
// graph does this through the renderer); Manager.Destroy tears down
// every cached pass that remains.
type RenderPassHandle = vk.RenderPass

// CreateRenderPass builds (or returns from cache) a VkRenderPass for
// the given attachment list: one subpass, color attachments in
// declared order followed by at most one depth-stencil attachment, no
// explicit subpass dependencies (matching the teacher's "Vulkan
// handles implicit ones" choice, since this runtime has no MSAA
// resolve step to order against).
func (m *Manager) CreateRenderPass(creation RenderPassCreation) (vk.RenderPass, error) {
	key := keyOf(creation)
	if rp, ok := m.renderPasses[key]; ok {
		return rp, nil
	}

	attachments := make([]vk.AttachmentDescription, 0, len(creation.Colors)+1)
	colorRefs := make([]vk.AttachmentReference, 0, len(creation.Colors))
	for _, c := range creation.Colors {
		attachments = append(attachments, vk.AttachmentDescription{
			Format:         c.Format,
			Samples:        uint32(vk.SampleCount1),
			LoadOp:         c.LoadOp,
			StoreOp:        c.StoreOp,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  c.InitialLayout,
			FinalLayout:    c.FinalLayout,
		})
		colorRefs = append(colorRefs, vk.AttachmentReference{
			Attachment: uint32(len(attachments) - 1),
			Layout:     vk.ImageLayoutColorAttachmentOptimal,
		})
	}

	var depthRef *vk.AttachmentReference
	if creation.Depth != nil {
		d := *creation.Depth
		attachments = append(attachments, vk.AttachmentDescription{
			Format:         d.Format,
			Samples:        uint32(vk.SampleCount1),
			LoadOp:         d.LoadOp,
			StoreOp:        d.StoreOp,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  d.InitialLayout,
			FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
		})
		depthRef = &vk.AttachmentReference{
			Attachment: uint32(len(attachments) - 1),
			Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
		}
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:       vk.PipelineBindPointGraphics,
		PDepthStencilAttachment: depthRef,
	}
	if len(colorRefs) > 0 {
		subpass.ColorAttachmentCount = uint32(len(colorRefs))
		subpass.PColorAttachments = &colorRefs[0]
	}

	info := vk.RenderPassCreateInfo{
		SType:        vk.StructureTypeRenderPassCreateInfo,
		SubpassCount: 1,
		PSubpasses:   &subpass,
	}
	if len(attachments) > 0 {
		info.AttachmentCount = uint32(len(attachments))
		info.PAttachments = &attachments[0]
	}

	var rp vk.RenderPass
	if result := m.dev.Commands().CreateRenderPass(m.dev.Handle(), &info, &rp); !result.IsSuccess() {
		return 0, fmtErr("vkCreateRenderPass", result)
	}
	if m.renderPasses == nil {
		m.renderPasses = make(map[RenderPassKey]vk.RenderPass)
	}
	m.renderPasses[key] = rp
	return rp, nil
}

// FramebufferCreation lists the attachment views (color then depth, in
// the same order CreateRenderPass used) plus the framebuffer extent.
type FramebufferCreation struct {
	RenderPass vk.RenderPass
	Views      []vk.ImageView
	Width      uint32
	Height     uint32
}

type framebufferKey struct {
	rp     vk.RenderPass
	views  string
	w, h   uint32
}

func (m *Manager) CreateFramebuffer(creation FramebufferCreation) (vk.Framebuffer, error) {
	var viewKey string
	for _, v := range creation.Views {
		viewKey += fmt.Sprintf("%d|", v)
	}
	key := framebufferKey{rp: creation.RenderPass, views: viewKey, w: creation.Width, h: creation.Height}
	if fb, ok := m.framebuffers[key]; ok {
		return fb, nil
	}

	info := vk.FramebufferCreateInfo{
		SType:      vk.StructureTypeFramebufferCreateInfo,
		RenderPass: creation.RenderPass,
		Width:      creation.Width,
		Height:     creation.Height,
		Layers:     1,
	}
	if len(creation.Views) > 0 {
		info.AttachmentCount = uint32(len(creation.Views))
		info.PAttachments = &creation.Views[0]
	}

	var fb vk.Framebuffer
	if result := m.dev.Commands().CreateFramebuffer(m.dev.Handle(), &info, &fb); !result.IsSuccess() {
		return 0, fmtErr("vkCreateFramebuffer", result)
	}
	if m.framebuffers == nil {
		m.framebuffers = make(map[framebufferKey]vk.Framebuffer)
	}
	m.framebuffers[key] = fb
	return fb, nil
}

// DestroyFramebuffersFor evicts and destroys every cached framebuffer
// built from the given render pass — the frame graph calls this before
// recreating a node's render pass on resize (spec.md §4.7.3).
func (m *Manager) DestroyFramebuffersFor(rp vk.RenderPass) {
	cmds := m.dev.Commands()
	dh := m.dev.Handle()
	for k, fb := range m.framebuffers {
		if k.rp == rp {
			cmds.DestroyFramebuffer(dh, fb)
			delete(m.framebuffers, k)
		}
	}
}

func (m *Manager) DestroyRenderPass(rp vk.RenderPass) {
	cmds := m.dev.Commands()
	dh := m.dev.Handle()
	m.DestroyFramebuffersFor(rp)
	for k, cached := range m.renderPasses {
		if cached == rp {
			delete(m.renderPasses, k)
		}
	}
	if rp != 0 {
		cmds.DestroyRenderPass(dh, rp)
	}
}

func (m *Manager) destroyRenderPassCache() {
	cmds := m.dev.Commands()
	dh := m.dev.Handle()
	for _, fb := range m.framebuffers {
		cmds.DestroyFramebuffer(dh, fb)
	}
	m.framebuffers = nil
	for _, rp := range m.renderPasses {
		cmds.DestroyRenderPass(dh, rp)
	}
	m.renderPasses = nil
}
