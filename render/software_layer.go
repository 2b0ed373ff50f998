// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"sync/atomic"
)

var nextLayerID atomic.Uint64

// SoftwareLayer is a LayerUpdater for a SoftwareContext.
//
// The producer stages changes with the setters and then pushes the layer to
// the frame synchronizer. The staged state is copied into the context's
// LayerStore when Apply runs during the next sync.
type SoftwareLayer struct {
	id    uint64
	store *LayerStore

	z       int
	at      image.Point
	size    image.Point
	content image.Image
	visible bool

	contentDirty bool
	stateDirty   bool
	detached     bool
}

// NewSoftwareLayer creates a visible layer at z-order z backed by ctx.
func NewSoftwareLayer(ctx *SoftwareContext, z int) *SoftwareLayer {
	return &SoftwareLayer{
		id:      nextLayerID.Add(1),
		store:   ctx.Layers(),
		z:       z,
		visible: true,
	}
}

// ID returns the layer id.
func (l *SoftwareLayer) ID() uint64 {
	return l.id
}

// SetContent stages new content drawn at position at.
// img must not be modified until the next sync has applied it.
func (l *SoftwareLayer) SetContent(img image.Image, at image.Point) {
	l.content = img
	l.at = at
	l.contentDirty = true
}

// SetPosition stages a move without new content.
func (l *SoftwareLayer) SetPosition(at image.Point) {
	l.at = at
	l.stateDirty = true
}

// SetScaledSize stages the destination size. A zero size draws unscaled.
func (l *SoftwareLayer) SetScaledSize(size image.Point) {
	l.size = size
	l.contentDirty = l.content != nil
}

// SetVisible stages a visibility change.
func (l *SoftwareLayer) SetVisible(visible bool) {
	l.visible = visible
	l.stateDirty = true
}

// Detach stages removal of the layer from the context.
func (l *SoftwareLayer) Detach() {
	l.detached = true
}

// Apply copies the staged state into the layer store. Called on the render
// thread during sync.
func (l *SoftwareLayer) Apply() {
	switch {
	case l.detached:
		l.store.Remove(l.id)
	case l.contentDirty && l.content != nil:
		l.store.Update(l.id, l.z, l.at, l.size, l.content, l.visible)
	case l.stateDirty:
		l.store.Move(l.id, l.at)
		l.store.SetVisible(l.id, l.visible)
	}
	l.contentDirty = false
	l.stateDirty = false
}

var _ LayerUpdater = (*SoftwareLayer)(nil)
