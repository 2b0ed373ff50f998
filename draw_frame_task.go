// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framesync

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/framesync/frame"
	"github.com/gogpu/framesync/internal/oneshot"
	"github.com/gogpu/framesync/render"
	"github.com/gogpu/framesync/renderthread"
)

// RenderThread is the FIFO executor frames are posted to.
// *renderthread.Thread implements it.
type RenderThread interface {
	// Post queues fn to run after everything posted before it.
	Post(fn func())

	// TimeLord returns the vsync timing source owned by the thread.
	TimeLord() *renderthread.TimeLord
}

// FrameCallback runs as deferred frame work after a frame has synced. It
// may return a FrameCommitCallback to learn whether the frame produced a
// buffer.
type FrameCallback func(result SyncResult, frameNumber int64) FrameCommitCallback

// FrameCommitCallback reports whether a frame was committed with a buffer.
type FrameCommitCallback func(didProduceBuffer bool)

// FrameCompleteCallback runs when a drawn frame completes.
type FrameCompleteCallback func(frameNumber int64)

// DrawFrameTask hands frames from a producer goroutine to a render thread.
//
// The producer describes a frame (frame info, layer updates, callbacks) and
// calls DrawFrame, which blocks only until the render thread has synced that
// state. Drawing then continues on the render thread while the producer
// prepares the next frame.
//
// Task state is owned by the producer between frames and by the render
// thread from DrawFrame until the producer is released. Only one frame may
// be in flight per task.
type DrawFrameTask struct {
	opts taskOptions

	// Handed over at each rendezvous.
	thread                   RenderThread
	ctx                      render.Context
	target                   render.Node
	frameInfo                frame.Info
	layers                   LayerUpdateQueue
	contentDrawBounds        render.Rect
	forceDrawFrame           bool
	syncQueued               int64
	syncResult               SyncResult
	frameCallback            oneshot.Slot[FrameCallback]
	frameCompleteCallback    oneshot.Slot[FrameCompleteCallback]
	updateTargetWorkDuration func(int64)
	reportActualWorkDuration func(int64)

	// Render thread only.
	estimator           *WorkDurationEstimator
	texturesConstrained bool

	rv       rendezvous
	inFlight atomic.Bool
}

// NewDrawFrameTask creates a task. SetContext must be called before the
// first frame.
func NewDrawFrameTask(opts ...TaskOption) *DrawFrameTask {
	o := defaultTaskOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &DrawFrameTask{opts: o}
	t.rv.init()
	t.estimator = NewWorkDurationEstimator(o.cpuTimePercentage, o.observer)
	t.estimator.logger = t.logger
	return t
}

func (t *DrawFrameTask) logger() *slog.Logger {
	if t.opts.logger != nil {
		return t.opts.logger
	}
	return Logger()
}

// SetContext wires the task to the render thread, the render context and
// the root node frames are prepared from. Passing a nil ctx detaches the
// task; layer mutations and DrawFrame then panic until a context is set.
func (t *DrawFrameTask) SetContext(thread RenderThread, ctx render.Context, target render.Node) {
	if t.ctx != nil && t.ctx != ctx {
		detachLogger(t.ctx)
	}
	t.thread = thread
	t.ctx = ctx
	t.target = target
	if ctx == nil {
		return
	}
	attachLogger(ctx)

	name := ""
	if target != nil {
		name = target.Name()
	}
	t.logger().Info("framesync: context attached", "target", name)
}

// PushLayerUpdate queues a layer update for the next sync.
// It panics if no context is set.
func (t *DrawFrameTask) PushLayerUpdate(l render.LayerUpdater) {
	t.mustHaveContext("PushLayerUpdate")
	t.layers.Push(l)
}

// RemoveLayerUpdate drops a queued layer update.
// It panics if no context is set.
func (t *DrawFrameTask) RemoveLayerUpdate(l render.LayerUpdater) {
	t.mustHaveContext("RemoveLayerUpdate")
	t.layers.Remove(l)
}

// PendingLayerUpdates returns the number of queued layer updates.
func (t *DrawFrameTask) PendingLayerUpdates() int {
	return t.layers.Len()
}

// SetHintSessionCallbacks installs the work duration callbacks. Hints are
// only computed when both are non-nil. Set them before the first frame.
func (t *DrawFrameTask) SetHintSessionCallbacks(updateTarget, reportActual func(int64)) {
	t.updateTargetWorkDuration = updateTarget
	t.reportActualWorkDuration = reportActual
}

// SetContentDrawBounds sets the rectangle the next frame draws into.
func (t *DrawFrameTask) SetContentDrawBounds(r render.Rect) {
	t.contentDrawBounds = r
}

// SetFrameCallback sets a callback for the next frame only. Nil clears it.
func (t *DrawFrameTask) SetFrameCallback(fn FrameCallback) {
	if fn == nil {
		t.frameCallback.Clear()
		return
	}
	t.frameCallback.Set(fn)
}

// SetFrameCompleteCallback sets a completion callback for the next frame
// only. Nil clears it.
func (t *DrawFrameTask) SetFrameCompleteCallback(fn FrameCompleteCallback) {
	if fn == nil {
		t.frameCompleteCallback.Clear()
		return
	}
	t.frameCompleteCallback.Set(fn)
}

// ForceDrawFrame makes the next frame draw even if the context would skip it.
func (t *DrawFrameTask) ForceDrawFrame() {
	t.forceDrawFrame = true
}

// FrameInfo returns the frame info the producer fills in before DrawFrame.
func (t *DrawFrameTask) FrameInfo() *frame.Info {
	return &t.frameInfo
}

// Releases returns how many times the render thread has released the
// producer. After n completed DrawFrame calls it is exactly n.
func (t *DrawFrameTask) Releases() int64 {
	return t.rv.releases.Load()
}

// DrawFrame syncs the current frame to the render thread and blocks until
// the render thread releases the producer: right after sync when resources
// allow, otherwise after drawing. It returns the sync result.
//
// DrawFrame panics if no context is set or if another DrawFrame on the same
// task has not returned yet.
func (t *DrawFrameTask) DrawFrame() SyncResult {
	t.mustHaveContext("DrawFrame")
	if !t.inFlight.CompareAndSwap(false, true) {
		panic("framesync: DrawFrame called while a frame is in flight")
	}
	defer t.inFlight.Store(false)

	t.syncResult = SyncOK
	t.syncQueued = t.opts.clock()
	t.rv.postAndWait(func() { t.thread.Post(t.run) })
	return t.syncResult
}

func (t *DrawFrameTask) mustHaveContext(op string) {
	if t.ctx == nil {
		panic("framesync: " + op + " called before SetContext")
	}
}

// run executes one frame on the render thread.
func (t *DrawFrameTask) run() {
	clock := t.opts.clock
	syncStart := clock()
	queueDelay := syncStart - t.syncQueued

	canReleaseEarly, canDraw := t.syncFrameState()

	if cb, ok := t.frameCompleteCallback.Take(); ok {
		t.ctx.AddFrameCompleteListener(cb)
	}

	// Once the producer is released it may reuse every task field, so
	// everything needed below is copied out first.
	ctx := t.ctx
	frameCallback, hasFrameCallback := t.frameCallback.Take()
	result := t.syncResult
	intendedVsync := t.frameInfo.Get(frame.IntendedVsync)
	frameDeadline := t.frameInfo.Get(frame.FrameDeadline)
	frameStartTime := t.frameInfo.Get(frame.FrameStartTime)
	updateTarget := t.updateTargetWorkDuration
	reportActual := t.reportActualWorkDuration
	estimator := t.estimator
	trace := t.opts.trace
	log := t.logger()
	rv := &t.rv

	released := false
	if canReleaseEarly {
		rv.release()
		released = true
	}

	frameNumber := ctx.FrameNumber()
	if hasFrameCallback {
		ctx.EnqueueFrameWork(func() {
			if commit := frameCallback(result, frameNumber); commit != nil {
				ctx.AddFrameCommitListener(commit)
			}
		})
	}

	var syncEnd int64
	if trace != nil {
		syncEnd = clock()
	}

	var dequeueBufferDuration int64
	if canDraw {
		dequeueBufferDuration = ctx.Draw()
	} else {
		// Outstanding work from a skipped frame must not overlap the next one.
		ctx.WaitOnFences()
	}

	if !released {
		rv.release()
	}

	if result.Has(SyncFrameDropped) {
		log.Debug("framesync: frame dropped", "frame", frameNumber, "result", result.String())
	}

	if updateTarget != nil && reportActual != nil {
		estimator.Update(HintSample{
			IntendedVsync:         intendedVsync,
			FrameDeadline:         frameDeadline,
			FrameStartTime:        frameStartTime,
			Now:                   clock(),
			QueueDelay:            queueDelay,
			DequeueBufferDuration: dequeueBufferDuration,
		}, updateTarget, reportActual)
	} else {
		estimator.lastDequeueBufferDuration = dequeueBufferDuration
	}

	if trace != nil {
		trace.Add(frame.Sample{
			FrameNumber:           frameNumber,
			SyncResult:            uint32(result),
			Drawn:                 canDraw,
			QueueDelay:            queueDelay,
			SyncDuration:          syncEnd - syncStart,
			DrawDuration:          clock() - syncEnd,
			DequeueBufferDuration: dequeueBufferDuration,
		})
	}
}

// syncFrameState copies producer state into the render context. It returns
// whether the producer can be released before drawing and whether the
// frame should be drawn.
func (t *DrawFrameTask) syncFrameState() (canReleaseEarly, canDraw bool) {
	fi := &t.frameInfo
	t.thread.TimeLord().VsyncReceived(
		fi.Get(frame.Vsync),
		fi.Get(frame.IntendedVsync),
		fi.Get(frame.FrameTimelineVsyncID),
		fi.Get(frame.FrameDeadline),
		fi.Get(frame.FrameInterval),
	)

	canDrawContext := t.ctx.MakeCurrent()
	t.ctx.UnpinImages()
	t.layers.Apply()
	t.ctx.SetContentDrawBounds(t.contentDrawBounds)

	info := render.NewTreeInfo(render.ModeFull)
	info.ForceDrawFrame = t.forceDrawFrame
	info.TexturesConstrained = t.texturesConstrained
	t.forceDrawFrame = false
	t.ctx.PrepareTree(&info, fi, t.syncQueued, t.target)

	if !t.ctx.HasSurface() || !canDrawContext {
		if !t.ctx.HasSurface() {
			t.syncResult |= SyncLostSurfaceRewardIfFound
		} else {
			t.syncResult |= SyncContextIsStopped
		}
		info.Out.CanDrawThisFrame = false
	}
	if info.Out.HasAnimations && info.Out.RequiresUIRedraw {
		t.syncResult |= SyncUIRedrawRequired
	}
	if !info.Out.CanDrawThisFrame {
		t.syncResult |= SyncFrameDropped
	}

	constrained := !info.PrepareTextures
	if constrained && !t.texturesConstrained {
		t.logger().Warn("framesync: texture cache full, holding producer until draw completes")
	}
	t.texturesConstrained = constrained

	return info.PrepareTextures, info.Out.CanDrawThisFrame
}
