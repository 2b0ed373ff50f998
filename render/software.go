// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/framesync/frame"
	"github.com/gogpu/framesync/internal/cache"
	"github.com/gogpu/framesync/renderthread"
)

// ErrNilDevice is returned when a render context is created without a
// device handle.
var ErrNilDevice = errors.New("render: nil device handle")

const defaultTextureCacheSize = 64

var epoch = time.Now()

// monotonicNow returns nanoseconds on the monotonic clock.
func monotonicNow() int64 {
	return int64(time.Since(epoch))
}

// SoftwareOption configures a SoftwareContext.
type SoftwareOption func(*softwareOptions)

type softwareOptions struct {
	textureCacheSize int
	dequeueDelay     time.Duration
	clearColor       color.Color
}

// WithTextureCacheSize sets how many layer textures stay resident.
// When more layers need uploading than there is room for, PrepareTree
// reports PrepareTextures=false. Values below 1 are ignored.
func WithTextureCacheSize(n int) SoftwareOption {
	return func(o *softwareOptions) {
		if n > 0 {
			o.textureCacheSize = n
		}
	}
}

// WithDequeueDelay adds a fixed wait before each buffer is acquired,
// modelling a display that holds buffers.
func WithDequeueDelay(d time.Duration) SoftwareOption {
	return func(o *softwareOptions) {
		o.dequeueDelay = d
	}
}

// WithClearColor sets the color the content bounds are cleared to before
// layers are composited. The default is transparent.
func WithClearColor(c color.Color) SoftwareOption {
	return func(o *softwareOptions) {
		o.clearColor = c
	}
}

// SoftwareContext is a CPU implementation of Context.
//
// Layers are kept in a LayerStore and composited onto a PixmapTarget with
// golang.org/x/image/draw. Texture residency is tracked in an LRU cache so
// that cache pressure can be reported to the frame synchronizer. Deferred
// frame work runs on a dedicated goroutine and doubles as the fence set.
//
// The host attaches a surface with SetSurface and may Stop and Start the
// context from any goroutine. All Context methods run on the render thread.
type SoftwareContext struct {
	device DeviceHandle
	format gputypes.TextureFormat
	opts   softwareOptions
	logger atomic.Pointer[slog.Logger]

	// mu guards host-controlled state and the published frame info.
	mu        sync.Mutex
	surface   *PixmapTarget
	stopped   bool
	published frame.Info

	// Render-thread state.
	bounds         Rect
	layers         *LayerStore
	textures       *cache.Cache[uint64, TextureDescriptor]
	pinned         []uint64
	frameInfo      frame.Info
	lastDrawnVsync int64
	nextFrame      int64

	work   *renderthread.Thread
	fences sync.WaitGroup

	listenerMu        sync.Mutex
	completeListeners []func(int64)
	commitListeners   []func(bool)

	framesDrawn   atomic.Int64
	framesSkipped atomic.Int64
}

// NewSoftwareContext creates a software render context for device.
// The surface format comes from device.SurfaceFormat(); headless devices
// fall back to RGBA8Unorm.
func NewSoftwareContext(device DeviceHandle, opts ...SoftwareOption) (*SoftwareContext, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	o := softwareOptions{
		textureCacheSize: defaultTextureCacheSize,
		clearColor:       color.Transparent,
	}
	for _, opt := range opts {
		opt(&o)
	}

	format := device.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}

	c := &SoftwareContext{
		device:    device,
		format:    format,
		opts:      o,
		layers:    NewLayerStore(),
		textures:  cache.New[uint64, TextureDescriptor](o.textureCacheSize),
		nextFrame: 1,
		work:      renderthread.New(renderthread.WithoutOSThreadLock()),
	}
	c.logger.Store(slog.New(slog.DiscardHandler))
	return c, nil
}

// SetLogger sets the logger used for diagnostics. Nil disables logging.
func (c *SoftwareContext) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	c.logger.Store(l)

	info := c.device.AdapterInfo()
	l.Debug("render: software context attached",
		"adapter", info.Name,
		"adapterType", info.Type.String(),
		"format", c.format.String(),
		"textureCache", c.textures.Capacity())
}

func (c *SoftwareContext) log() *slog.Logger {
	return c.logger.Load()
}

// Format returns the texture format used for layer textures.
func (c *SoftwareContext) Format() gputypes.TextureFormat {
	return c.format
}

// Layers returns the render-thread layer store.
func (c *SoftwareContext) Layers() *LayerStore {
	return c.layers
}

// SetSurface attaches s as the drawing surface. Nil detaches it.
func (c *SoftwareContext) SetSurface(s *PixmapTarget) {
	c.mu.Lock()
	c.surface = s
	c.mu.Unlock()
}

// Stop makes MakeCurrent fail until Start is called.
func (c *SoftwareContext) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
}

// Start undoes Stop.
func (c *SoftwareContext) Start() {
	c.mu.Lock()
	c.stopped = false
	c.mu.Unlock()
}

// MakeCurrent reports whether the context may draw.
func (c *SoftwareContext) MakeCurrent() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.stopped
}

// HasSurface reports whether a surface is attached.
func (c *SoftwareContext) HasSurface() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface != nil
}

// UnpinImages releases the layer images pinned by the previous frame.
func (c *SoftwareContext) UnpinImages() {
	c.pinned = c.pinned[:0]
}

// Pinned returns the number of layer images pinned by the last prepared
// frame. Render thread only.
func (c *SoftwareContext) Pinned() int {
	return len(c.pinned)
}

// SetContentDrawBounds sets the region Draw clears and composites into.
// An empty rectangle means the whole surface.
func (c *SoftwareContext) SetContentDrawBounds(bounds Rect) {
	c.bounds = bounds
}

// PrepareTree uploads changed layers into the texture cache, walks target
// and decides whether the frame can be drawn.
func (c *SoftwareContext) PrepareTree(info *TreeInfo, fi *frame.Info, syncQueued int64, target Node) {
	c.frameInfo = *fi
	c.frameInfo.Set(frame.SyncQueued, syncQueued)
	c.frameInfo.Set(frame.SyncStart, monotonicNow())

	for _, id := range c.layers.TakeRemoved() {
		c.textures.Delete(id)
	}
	if info.TexturesConstrained {
		c.trimHiddenTextures()
	}

	uploads := c.layers.TakeUploads()
	missing := 0
	for _, id := range uploads {
		if !c.textures.Contains(id) {
			missing++
		}
	}
	info.PrepareTextures = missing <= c.textures.Room()
	for _, id := range uploads {
		size, ok := c.layers.Size(id)
		if !ok {
			continue
		}
		desc := NewTextureDescriptor(fmt.Sprintf("layer-%d", id), size.X, size.Y, c.format)
		for _, evicted := range c.textures.Put(id, desc) {
			c.log().Debug("render: layer texture evicted", "layer", evicted)
		}
		c.pinned = append(c.pinned, id)
	}

	if target != nil {
		target.PrepareTree(info)
	}
	if info.Out.HasAnimations {
		c.frameInfo.AddFlag(frame.FlagRTAnimation)
	}

	// A second frame for a vsync that was already drawn is skipped.
	if vsync := fi.Get(frame.Vsync); !info.ForceDrawFrame && vsync != 0 && vsync <= c.lastDrawnVsync {
		info.Out.CanDrawThisFrame = false
	}
	if !info.Out.CanDrawThisFrame {
		c.frameInfo.AddFlag(frame.FlagSkippedFrame)
		c.framesSkipped.Add(1)
	}
}

// trimHiddenTextures drops textures of invisible layers to free cache room.
func (c *SoftwareContext) trimHiddenTextures() {
	for _, id := range c.layers.IDs() {
		if !c.layers.Visible(id) && c.textures.Delete(id) {
			c.log().Debug("render: hidden layer texture released", "layer", id)
		}
	}
}

// Draw waits for deferred frame work, acquires the surface, and composites
// the layers. It returns the buffer acquisition time in nanoseconds.
func (c *SoftwareContext) Draw() int64 {
	c.waitOnFences()
	c.frameInfo.Set(frame.IssueDrawCommandsStart, monotonicNow())

	dequeueStart := time.Now()
	if c.opts.dequeueDelay > 0 {
		time.Sleep(c.opts.dequeueDelay)
	}
	c.mu.Lock()
	surface, stopped := c.surface, c.stopped
	c.mu.Unlock()
	dequeue := int64(time.Since(dequeueStart))

	if surface == nil || stopped {
		c.flushCommitListeners(false)
		return dequeue
	}

	bounds := c.bounds
	if bounds.Empty() {
		bounds = surface.Bounds()
	}
	surface.Clear(bounds, c.opts.clearColor)
	c.layers.Composite(surface.Image(), bounds.Image())

	frameNumber := c.nextFrame
	c.nextFrame++
	c.lastDrawnVsync = c.frameInfo.Get(frame.Vsync)
	c.frameInfo.Set(frame.DequeueBufferDuration, dequeue)
	c.frameInfo.Set(frame.FrameCompleted, monotonicNow())
	c.framesDrawn.Add(1)

	c.mu.Lock()
	c.published = c.frameInfo
	c.mu.Unlock()

	c.flushCommitListeners(true)
	c.flushCompleteListeners(frameNumber)
	return dequeue
}

// WaitOnFences waits for deferred frame work. Commit listeners registered
// by that work are told no buffer was produced.
func (c *SoftwareContext) WaitOnFences() {
	c.waitOnFences()
	c.flushCommitListeners(false)
}

func (c *SoftwareContext) waitOnFences() {
	c.fences.Wait()
}

// EnqueueFrameWork runs work on the context's frame-work goroutine.
func (c *SoftwareContext) EnqueueFrameWork(work func()) {
	c.fences.Add(1)
	c.work.Post(func() {
		defer c.fences.Done()
		work()
	})
}

// FrameNumber returns the number the next drawn frame will carry.
func (c *SoftwareContext) FrameNumber() int64 {
	return c.nextFrame
}

// AddFrameCompleteListener registers fn for the next drawn frame.
func (c *SoftwareContext) AddFrameCompleteListener(fn func(frameNumber int64)) {
	if fn == nil {
		return
	}
	c.listenerMu.Lock()
	c.completeListeners = append(c.completeListeners, fn)
	c.listenerMu.Unlock()
}

// AddFrameCommitListener registers fn for the current frame.
func (c *SoftwareContext) AddFrameCommitListener(fn func(didProduceBuffer bool)) {
	if fn == nil {
		return
	}
	c.listenerMu.Lock()
	c.commitListeners = append(c.commitListeners, fn)
	c.listenerMu.Unlock()
}

func (c *SoftwareContext) flushCommitListeners(didProduceBuffer bool) {
	c.listenerMu.Lock()
	fns := c.commitListeners
	c.commitListeners = nil
	c.listenerMu.Unlock()
	for _, fn := range fns {
		fn(didProduceBuffer)
	}
}

func (c *SoftwareContext) flushCompleteListeners(frameNumber int64) {
	c.listenerMu.Lock()
	fns := c.completeListeners
	c.completeListeners = nil
	c.listenerMu.Unlock()
	for _, fn := range fns {
		fn(frameNumber)
	}
}

// LastFrameInfo returns the timing vector of the most recently drawn frame.
func (c *SoftwareContext) LastFrameInfo() frame.Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.published
}

// ResidentTextures returns the number of layer textures in the cache.
func (c *SoftwareContext) ResidentTextures() int {
	return c.textures.Len()
}

// FramesDrawn returns the number of frames composited so far.
func (c *SoftwareContext) FramesDrawn() int64 {
	return c.framesDrawn.Load()
}

// FramesSkipped returns the number of frames PrepareTree marked undrawable.
func (c *SoftwareContext) FramesSkipped() int64 {
	return c.framesSkipped.Load()
}

// Close waits for deferred frame work and stops the frame-work goroutine.
func (c *SoftwareContext) Close() {
	c.waitOnFences()
	c.work.Close()
}

var _ Context = (*SoftwareContext)(nil)
