// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// Render contexts RECEIVE the device from the host; they never create one.
// The software context only reads the surface format and adapter info from
// it, so a NullDeviceHandle is enough for CPU rendering.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// TextureDescriptor describes a layer texture held by a render context.
type TextureDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Width is the texture width in pixels.
	Width uint32

	// Height is the texture height in pixels.
	Height uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat
}

// NewTextureDescriptor returns a descriptor for a 2D texture.
// An undefined format is replaced with RGBA8Unorm.
func NewTextureDescriptor(label string, width, height int, format gputypes.TextureFormat) TextureDescriptor {
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	//nolint:gosec // G115: layer sizes are bounded by the surface size
	return TextureDescriptor{
		Label:  label,
		Width:  uint32(max(width, 0)),
		Height: uint32(max(height, 0)),
		Format: format,
	}
}

// Bytes returns the approximate memory footprint, assuming 4 bytes per pixel.
func (d TextureDescriptor) Bytes() int64 {
	return int64(d.Width) * int64(d.Height) * 4
}

// NullDeviceHandle is a DeviceHandle with no GPU behind it.
// Used for CPU-only rendering and tests.
type NullDeviceHandle struct{}

// Device returns nil.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns TextureFormatUndefined (headless).
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo reports a software adapter.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "Software Renderer", Type: gpucontext.AdapterTypeSoftware}
}

var _ DeviceHandle = NullDeviceHandle{}
