// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewPixmapTarget(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"small", 100, 100},
		{"medium", 800, 600},
		{"wide", 1000, 100},
		{"tall", 100, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := NewPixmapTarget(tt.width, tt.height)
			if err != nil {
				t.Fatalf("NewPixmapTarget() error = %v", err)
			}
			if target.Width() != tt.width {
				t.Errorf("Width() = %d, want %d", target.Width(), tt.width)
			}
			if target.Height() != tt.height {
				t.Errorf("Height() = %d, want %d", target.Height(), tt.height)
			}
			if target.Format() != gputypes.TextureFormatRGBA8Unorm {
				t.Errorf("Format() = %v, want RGBA8Unorm", target.Format())
			}
			want := Rect{Right: tt.width, Bottom: tt.height}
			if target.Bounds() != want {
				t.Errorf("Bounds() = %+v, want %+v", target.Bounds(), want)
			}
		})
	}
}

func TestNewPixmapTargetInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		_, err := NewPixmapTarget(size[0], size[1])
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewPixmapTarget(%d, %d) error = %v, want ErrInvalidSize", size[0], size[1], err)
		}
	}
}

func TestPixmapTargetFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 40))
	target := NewPixmapTargetFromImage(img)

	if target.Image() != img {
		t.Error("Image() should return the wrapped image")
	}
	if target.Width() != 50 || target.Height() != 40 {
		t.Errorf("size = %dx%d, want 50x40", target.Width(), target.Height())
	}
}

func TestPixmapTargetClear(t *testing.T) {
	target, _ := NewPixmapTarget(10, 10)
	red := color.RGBA{R: 255, A: 255}

	target.Clear(Rect{Left: 2, Top: 2, Right: 5, Bottom: 5}, red)

	img := target.Image()
	if got := img.RGBAAt(3, 3); got != red {
		t.Errorf("inside pixel = %v, want red", got)
	}
	if got := img.RGBAAt(6, 6); got.A != 0 {
		t.Errorf("outside pixel = %v, want transparent", got)
	}

	// Rectangles past the surface are clipped; empty ones do nothing.
	target.Clear(Rect{Left: 8, Top: 8, Right: 100, Bottom: 100}, red)
	if got := img.RGBAAt(9, 9); got != red {
		t.Errorf("clipped clear pixel = %v, want red", got)
	}
	target.Clear(Rect{Left: 5, Top: 5, Right: 5, Bottom: 9}, color.White)
	if got := img.RGBAAt(5, 5); got.A != 0 {
		t.Errorf("empty clear changed pixel to %v", got)
	}
}

func TestPixmapTargetSnapshot(t *testing.T) {
	target, _ := NewPixmapTarget(4, 4)
	target.Clear(target.Bounds(), color.White)

	snap := target.Snapshot()
	target.Clear(target.Bounds(), color.Black)

	if got := snap.RGBAAt(1, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("snapshot pixel = %v, want white", got)
	}
	if got := target.Image().RGBAAt(1, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("surface pixel = %v, want black", got)
	}
}

func TestRect(t *testing.T) {
	tests := []struct {
		r     Rect
		empty bool
	}{
		{Rect{}, true},
		{Rect{Right: 10, Bottom: 10}, false},
		{Rect{Left: 5, Right: 5, Bottom: 10}, true},
		{Rect{Left: 0, Top: 8, Right: 10, Bottom: 2}, true},
	}
	for _, tt := range tests {
		if got := tt.r.Empty(); got != tt.empty {
			t.Errorf("%+v.Empty() = %v, want %v", tt.r, got, tt.empty)
		}
	}

	r := Rect{Left: 1, Top: 2, Right: 3, Bottom: 4}
	if got := r.Image(); got != image.Rect(1, 2, 3, 4) {
		t.Errorf("Image() = %v, want (1,2)-(3,4)", got)
	}
}
