// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package framegraph

import (
	"fmt"

	"gerium/command"
)

// Prepare implements spec.md §5/§6's per-frame negotiation step: before
// any node's Render runs, each enabled node's registered Prepare
// callback (if any) is asked how many secondary command buffers it
// intends to record this frame, given pool's configured worker count.
// The returned count is clamped to that maximum and cached on the node
// for Execute to act on. A node with no Prepare callback always
// records inline on the primary buffer (workers=1). Must be called
// once per frame, after Compile and before Execute.
func (g *Graph) Prepare(pool *command.Pool) error {
	maxWorkers := pool.WorkerThreads()
	if maxWorkers == 0 {
		maxWorkers = 1
	}
	for _, nh := range g.order {
		n := g.nodes.Access(nh)
		if !n.Enabled {
			continue
		}
		callbacks, data, ok := g.GetPass(n.Pass)
		if !ok || callbacks.Prepare == nil {
			n.workers = 1
			continue
		}
		w, err := callbacks.Prepare(g, g.renderer, data, maxWorkers)
		if err != nil {
			logger.Error("prepare failed", "node", n.Name, "error", err)
			return fmt.Errorf("framegraph: node %q: prepare: %w", n.Name, err)
		}
		if w == 0 {
			w = 1
		}
		if w > maxWorkers {
			w = maxWorkers
		}
		n.workers = w
		logger.Debug("prepared", "node", n.Name, "workers", w)
	}
	return nil
}
