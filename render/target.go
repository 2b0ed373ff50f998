// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
)

// ErrInvalidSize is returned when a surface is created with a non-positive
// dimension.
var ErrInvalidSize = errors.New("render: invalid surface size")

// PixmapTarget is a CPU-backed drawing surface using *image.RGBA.
//
// The software context composites layers into it during Draw. Hosts read
// it back with Image after a frame completes.
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a width×height surface cleared to transparent.
func NewPixmapTarget(width, height int) (*PixmapTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &PixmapTarget{img: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

// NewPixmapTargetFromImage wraps img without copying it.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the surface width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the surface height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Bounds returns the full surface rectangle.
func (t *PixmapTarget) Bounds() Rect {
	b := t.img.Bounds()
	return Rect{Left: b.Min.X, Top: b.Min.Y, Right: b.Max.X, Bottom: b.Max.Y}
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Image returns the underlying image. It shares memory with the surface.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills r, clipped to the surface, with c.
func (t *PixmapTarget) Clear(r Rect, c color.Color) {
	area := r.Image().Intersect(t.img.Bounds())
	if area.Empty() {
		return
	}
	xdraw.Draw(t.img, area, image.NewUniform(c), image.Point{}, xdraw.Src)
}

// Snapshot returns a copy of the surface contents.
func (t *PixmapTarget) Snapshot() *image.RGBA {
	out := image.NewRGBA(t.img.Bounds())
	copy(out.Pix, t.img.Pix)
	return out
}
