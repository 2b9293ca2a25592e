// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"fmt"

	"gerium/resource"
)

// Resize implements spec.md §4.7.3: destroys every node's framebuffers
// and render-pass objects (forcing lazy recreation on the next
// Compile), recomputes auto_scale attachment sizes and destroys any
// whose dimensions actually changed, invokes every node's Resize
// callback, and marks the graph dirty so the next Compile rebuilds it.
func (g *Graph) Resize(oldWidth, newWidth, oldHeight, newHeight uint32) error {
	scaleX := float32(newWidth) / float32(oldWidth)
	scaleY := float32(newHeight) / float32(oldHeight)

	g.nodes.Range(func(_ NodeHandle, n *Node) bool {
		g.destroyNodeRenderTargets(n)
		return true
	})

	g.resources.Range(func(_ ResourceHandle, r *Resource) bool {
		if r.External || r.Type != ResourceTypeTexture || r.Texture.AutoScale == 0 {
			return true
		}
		oldW, oldH := g.calcSize(r.Texture)

		scaled := r.Texture
		scaled.Width = uint32(float32(scaled.Width) * scaleX)
		scaled.Height = uint32(float32(scaled.Height) * scaleY)
		prevW, prevH := g.width, g.height
		g.width, g.height = newWidth, newHeight
		newW, newH := g.calcSize(scaled)
		g.width, g.height = prevW, prevH
		if newW == oldW && newH == oldH {
			return true
		}
		for i, th := range r.Texture.Handles {
			if !th.IsUndefined() {
				g.renderer.DestroyTexture(th)
			}
			r.Texture.Handles[i] = resource.UndefTexture()
		}
		r.Texture.Width = scaled.Width
		r.Texture.Height = scaled.Height
		return true
	})

	g.width, g.height = newWidth, newHeight

	var resizeErr error
	g.nodes.Range(func(_ NodeHandle, n *Node) bool {
		ph, ok := g.passNames[n.Name]
		if !ok {
			return true
		}
		cb, data, _ := g.GetPass(ph)
		if cb.Resize == nil {
			return true
		}
		if err := cb.Resize(g, g.renderer, data); err != nil {
			resizeErr = fmt.Errorf("framegraph: node %q: resize: %w", n.Name, err)
			return false
		}
		return true
	})
	if resizeErr != nil {
		return resizeErr
	}

	g.hasChanges = true
	return nil
}
