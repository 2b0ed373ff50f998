// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// RenderNode is a minimal scene tree node.
//
// The producer mutates nodes between frames. The render thread walks them
// only during sync, while the producer is blocked, so no locking is needed.
type RenderNode struct {
	name      string
	children  []*RenderNode
	animating bool
	redraw    bool
}

// NewRenderNode creates a node with the given name.
func NewRenderNode(name string) *RenderNode {
	return &RenderNode{name: name}
}

// Name returns the node name.
func (n *RenderNode) Name() string {
	return n.name
}

// AddChild appends c to the node's children.
func (n *RenderNode) AddChild(c *RenderNode) {
	n.children = append(n.children, c)
}

// Children returns the node's children.
func (n *RenderNode) Children() []*RenderNode {
	return n.children
}

// SetAnimating marks the node as running an animation.
func (n *RenderNode) SetAnimating(animating bool) {
	n.animating = animating
}

// RequestUIRedraw asks for one more producer frame after the next sync.
// The request is consumed by the next full PrepareTree.
func (n *RenderNode) RequestUIRedraw() {
	n.redraw = true
}

// PrepareTree reports animations and redraw requests of the subtree.
func (n *RenderNode) PrepareTree(info *TreeInfo) {
	if n.animating {
		info.Out.HasAnimations = true
	}
	if info.Mode == ModeFull && n.redraw {
		info.Out.RequiresUIRedraw = true
		n.redraw = false
	}
	for _, c := range n.children {
		c.PrepareTree(info)
	}
}

var _ Node = (*RenderNode)(nil)
