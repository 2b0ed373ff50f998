// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the render-thread collaborators of the frame
// synchronizer and ships a CPU implementation of them.
//
// # Key Principle
//
// A render context RECEIVES its device from the host application, it does
// NOT create one. DeviceHandle is gpucontext.DeviceProvider, so any gogpu
// host can hand its device to a context.
//
// # Core Interfaces
//
//   - Context: surface activation, tree preparation, draw, fences, deferred
//     frame work and frame listeners
//   - Node: a scene tree root walked during PrepareTree
//   - LayerUpdater: a pending layer update applied during sync
//
// # Software Implementation
//
//   - SoftwareContext: composites layers onto a PixmapTarget
//   - SoftwareLayer: stages layer content on the producer side
//   - LayerStore: the render-thread copy of all layers
//   - RenderNode: a minimal scene tree node
//
// # Usage
//
//	ctx, err := render.NewSoftwareContext(render.NullDeviceHandle{})
//	if err != nil {
//	    return err
//	}
//	defer ctx.Close()
//
//	surface, _ := render.NewPixmapTarget(800, 600)
//	ctx.SetSurface(surface)
//
//	layer := render.NewSoftwareLayer(ctx, 0)
//	layer.SetContent(img, image.Pt(10, 10))
//	task.PushLayerUpdate(layer)
//
// # Thread Safety
//
// Context methods run on the render thread. SoftwareContext.SetSurface,
// Stop, Start and the statistics accessors may be called from any goroutine.
package render
