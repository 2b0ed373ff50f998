// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"slices"
	"testing"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

func TestLayerStoreUpdate(t *testing.T) {
	s := NewLayerStore()
	src := solidImage(8, 4, red)

	s.Update(1, 0, image.Pt(2, 2), image.Point{}, src, true)

	if s.Len() != 1 || !s.Has(1) {
		t.Fatalf("Len()=%d Has(1)=%v, want 1 and true", s.Len(), s.Has(1))
	}
	if size, ok := s.Size(1); !ok || size != image.Pt(8, 4) {
		t.Errorf("Size(1) = %v, %v; want (8,4), true", size, ok)
	}
	if !s.Visible(1) {
		t.Error("Visible(1) = false, want true")
	}

	// The store keeps its own copy.
	src.SetRGBA(0, 0, blue)
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	s.Composite(dst, dst.Bounds())
	if got := dst.RGBAAt(2, 2); got != red {
		t.Errorf("composited pixel = %v, want red from the copy", got)
	}
}

func TestLayerStoreUploads(t *testing.T) {
	s := NewLayerStore()
	img := solidImage(2, 2, red)

	s.Update(1, 0, image.Point{}, image.Point{}, img, true)
	s.Update(2, 0, image.Point{}, image.Point{}, img, true)
	s.Update(1, 0, image.Point{}, image.Point{}, img, true)

	if got := s.TakeUploads(); !slices.Equal(got, []uint64{1, 2}) {
		t.Errorf("TakeUploads() = %v, want [1 2]", got)
	}
	if got := s.TakeUploads(); len(got) != 0 {
		t.Errorf("second TakeUploads() = %v, want empty", got)
	}

	s.Move(1, image.Pt(3, 3))
	s.SetVisible(2, false)
	if got := s.TakeUploads(); len(got) != 0 {
		t.Errorf("Move/SetVisible queued uploads %v", got)
	}
}

func TestLayerStoreRemove(t *testing.T) {
	s := NewLayerStore()
	img := solidImage(2, 2, red)
	s.Update(1, 0, image.Point{}, image.Point{}, img, true)
	s.Update(2, 1, image.Point{}, image.Point{}, img, true)

	if !s.Remove(1) {
		t.Error("Remove(1) = false, want true")
	}
	if s.Remove(1) {
		t.Error("second Remove(1) = true, want false")
	}
	if s.Has(1) || s.Len() != 1 {
		t.Errorf("Has(1)=%v Len()=%d after remove", s.Has(1), s.Len())
	}
	if got := s.TakeUploads(); !slices.Equal(got, []uint64{2}) {
		t.Errorf("TakeUploads() = %v, want [2]", got)
	}
	if got := s.TakeRemoved(); !slices.Equal(got, []uint64{1}) {
		t.Errorf("TakeRemoved() = %v, want [1]", got)
	}
	if _, ok := s.Size(1); ok {
		t.Error("Size(1) ok after remove")
	}
}

func TestLayerStoreOrder(t *testing.T) {
	s := NewLayerStore()
	img := solidImage(1, 1, red)

	s.Update(10, 2, image.Point{}, image.Point{}, img, true)
	s.Update(11, 0, image.Point{}, image.Point{}, img, true)
	s.Update(12, 2, image.Point{}, image.Point{}, img, true)
	s.Update(13, 1, image.Point{}, image.Point{}, img, true)

	want := []uint64{11, 13, 10, 12}
	if got := s.IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}

	// Changing z reorders.
	s.Update(11, 5, image.Point{}, image.Point{}, img, true)
	want = []uint64{13, 10, 12, 11}
	if got := s.IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs() after z change = %v, want %v", got, want)
	}

	// Returned slices are copies.
	ids := s.IDs()
	ids[0] = 99
	if s.IDs()[0] == 99 {
		t.Error("IDs() returned the internal slice")
	}
}

func TestLayerStoreComposite(t *testing.T) {
	s := NewLayerStore()
	s.Update(1, 0, image.Pt(0, 0), image.Point{}, solidImage(10, 10, red), true)
	s.Update(2, 1, image.Pt(5, 5), image.Point{}, solidImage(10, 10, green), true)
	s.Update(3, 2, image.Pt(0, 0), image.Point{}, solidImage(4, 4, blue), false)

	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	s.Composite(dst, dst.Bounds())

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{1, 1, red},     // hidden blue layer is skipped
		{7, 7, green},   // higher z on top
		{12, 12, green}, // green only
		{2, 8, red},
	}
	for _, tt := range tests {
		if got := dst.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if got := dst.RGBAAt(18, 18); got.A != 0 {
		t.Errorf("pixel (18,18) = %v, want transparent", got)
	}
}

func TestLayerStoreCompositeClip(t *testing.T) {
	s := NewLayerStore()
	s.Update(1, 0, image.Pt(0, 0), image.Point{}, solidImage(10, 10, red), true)

	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	s.Composite(dst, image.Rect(0, 0, 5, 5))

	if got := dst.RGBAAt(2, 2); got != red {
		t.Errorf("inside clip = %v, want red", got)
	}
	if got := dst.RGBAAt(7, 7); got.A != 0 {
		t.Errorf("outside clip = %v, want transparent", got)
	}

	// A clip outside the destination draws nothing.
	other := image.NewRGBA(image.Rect(0, 0, 10, 10))
	s.Composite(other, image.Rect(20, 20, 30, 30))
	if got := other.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("pixel = %v after out-of-bounds clip, want transparent", got)
	}
}

func TestLayerStoreCompositeScaled(t *testing.T) {
	s := NewLayerStore()
	s.Update(1, 0, image.Pt(0, 0), image.Pt(8, 8), solidImage(2, 2, blue), true)

	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	s.Composite(dst, dst.Bounds())

	// Bilinear filtering may round, so only require the pixel to be blue.
	if got := dst.RGBAAt(4, 4); got.B < 250 || got.A < 250 || got.R != 0 || got.G != 0 {
		t.Errorf("scaled pixel (4,4) = %v, want blue", got)
	}
	if got := dst.RGBAAt(9, 9); got.A != 0 {
		t.Errorf("pixel (9,9) outside scaled layer = %v, want transparent", got)
	}
}

func TestLayerStoreMoveAndVisibility(t *testing.T) {
	s := NewLayerStore()
	s.Update(1, 0, image.Pt(0, 0), image.Point{}, solidImage(2, 2, red), true)
	s.Move(1, image.Pt(6, 6))
	s.SetVisible(42, false) // unknown ids are ignored
	s.Move(42, image.Pt(1, 1))

	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	s.Composite(dst, dst.Bounds())
	if got := dst.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("old position = %v, want transparent", got)
	}
	if got := dst.RGBAAt(7, 7); got != red {
		t.Errorf("new position = %v, want red", got)
	}

	s.SetVisible(1, false)
	if s.Visible(1) {
		t.Error("Visible(1) = true after SetVisible(false)")
	}
}
