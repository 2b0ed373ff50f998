// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"slices"

	xdraw "golang.org/x/image/draw"
)

// storedLayer is the render-thread copy of one layer.
type storedLayer struct {
	img     *image.RGBA
	z       int
	at      image.Point
	size    image.Point // destination size; zero means unscaled
	visible bool
}

func (l *storedLayer) dstRect() image.Rectangle {
	size := l.size
	if size == (image.Point{}) {
		size = l.img.Bounds().Size()
	}
	return image.Rectangle{Min: l.at, Max: l.at.Add(size)}
}

// LayerStore holds the render-thread copies of all layers, composited in
// ascending z-order. Equal z values keep insertion order.
//
// LayerStore belongs to the render thread. Layer updates reach it only
// through LayerUpdater.Apply during sync.
type LayerStore struct {
	layers  map[uint64]*storedLayer
	order   []uint64 // cached z-order, nil when stale
	seq     []uint64 // insertion order
	uploads []uint64 // ids whose content changed since TakeUploads
	removed []uint64 // ids removed since TakeRemoved
}

// NewLayerStore creates an empty store.
func NewLayerStore() *LayerStore {
	return &LayerStore{layers: make(map[uint64]*storedLayer)}
}

// Update copies src into the layer id, creating it if needed, and queues a
// texture upload for it. The store keeps its own copy so the producer may
// reuse src immediately after.
func (s *LayerStore) Update(id uint64, z int, at, size image.Point, src image.Image, visible bool) {
	l, ok := s.layers[id]
	if !ok {
		l = &storedLayer{}
		s.layers[id] = l
		s.seq = append(s.seq, id)
		s.order = nil
	}
	if l.z != z {
		s.order = nil
	}

	b := src.Bounds()
	if l.img == nil || l.img.Bounds().Size() != b.Size() {
		l.img = image.NewRGBA(image.Rectangle{Max: b.Size()})
	}
	xdraw.Copy(l.img, image.Point{}, src, b, xdraw.Src, nil)

	l.z = z
	l.at = at
	l.size = size
	l.visible = visible
	if !slices.Contains(s.uploads, id) {
		s.uploads = append(s.uploads, id)
	}
}

// SetVisible changes layer visibility without touching its content.
func (s *LayerStore) SetVisible(id uint64, visible bool) {
	if l, ok := s.layers[id]; ok {
		l.visible = visible
	}
}

// Move changes the layer position without a texture upload.
func (s *LayerStore) Move(id uint64, at image.Point) {
	if l, ok := s.layers[id]; ok {
		l.at = at
	}
}

// Remove deletes a layer. It reports whether the layer existed.
func (s *LayerStore) Remove(id uint64) bool {
	if _, ok := s.layers[id]; !ok {
		return false
	}
	delete(s.layers, id)
	s.seq = slices.DeleteFunc(s.seq, func(v uint64) bool { return v == id })
	s.uploads = slices.DeleteFunc(s.uploads, func(v uint64) bool { return v == id })
	s.removed = append(s.removed, id)
	s.order = nil
	return true
}

// Len returns the number of layers.
func (s *LayerStore) Len() int {
	return len(s.layers)
}

// Has reports whether layer id exists.
func (s *LayerStore) Has(id uint64) bool {
	_, ok := s.layers[id]
	return ok
}

// Visible reports whether layer id exists and is visible.
func (s *LayerStore) Visible(id uint64) bool {
	l, ok := s.layers[id]
	return ok && l.visible
}

// Size returns the content size of layer id.
func (s *LayerStore) Size(id uint64) (image.Point, bool) {
	l, ok := s.layers[id]
	if !ok {
		return image.Point{}, false
	}
	return l.img.Bounds().Size(), true
}

// IDs returns layer ids in composite order.
func (s *LayerStore) IDs() []uint64 {
	if s.order == nil {
		s.order = slices.Clone(s.seq)
		slices.SortStableFunc(s.order, func(a, b uint64) int {
			return s.layers[a].z - s.layers[b].z
		})
	}
	return slices.Clone(s.order)
}

// TakeUploads returns and clears the ids updated since the last call.
func (s *LayerStore) TakeUploads() []uint64 {
	ids := s.uploads
	s.uploads = nil
	return ids
}

// TakeRemoved returns and clears the ids removed since the last call.
func (s *LayerStore) TakeRemoved() []uint64 {
	ids := s.removed
	s.removed = nil
	return ids
}

// Composite draws every visible layer onto dst in z-order, clipped to clip.
// Layers with a destination size different from their content are scaled.
func (s *LayerStore) Composite(dst *image.RGBA, clip image.Rectangle) {
	clip = clip.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	target, ok := dst.SubImage(clip).(*image.RGBA)
	if !ok {
		return
	}

	for _, id := range s.IDs() {
		l := s.layers[id]
		if !l.visible {
			continue
		}
		r := l.dstRect()
		if r.Intersect(clip).Empty() {
			continue
		}
		if r.Size() == l.img.Bounds().Size() {
			xdraw.Draw(target, r, l.img, image.Point{}, xdraw.Over)
			continue
		}
		xdraw.ApproxBiLinear.Scale(target, r, l.img, l.img.Bounds(), xdraw.Over, nil)
	}
}
