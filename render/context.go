// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/framesync/frame"
)

// Context is the render-thread side of a window: it owns the drawing
// surface, uploads layers, prepares the scene tree and draws frames.
//
// Every method except AddFrameCommitListener is called from the render
// thread only. AddFrameCommitListener may also be called from deferred
// frame work queued with EnqueueFrameWork.
type Context interface {
	// MakeCurrent activates the drawing surface for this thread.
	// Returns false if the context is stopped and cannot draw.
	MakeCurrent() bool

	// UnpinImages releases images pinned by a previous frame.
	UnpinImages()

	// SetContentDrawBounds sets the rectangle the next frame draws into.
	SetContentDrawBounds(bounds Rect)

	// PrepareTree prepares target for drawing and fills in info.Out and
	// info.PrepareTextures. fi is valid for the duration of the call only;
	// implementations copy what they need. syncQueued is the monotonic time
	// the frame was enqueued.
	PrepareTree(info *TreeInfo, fi *frame.Info, syncQueued int64, target Node)

	// HasSurface reports whether a drawable surface is attached.
	HasSurface() bool

	// Draw renders the prepared frame and returns the time, in nanoseconds,
	// spent waiting to dequeue a buffer.
	Draw() int64

	// WaitOnFences blocks until outstanding work from earlier frames,
	// including deferred frame work, has finished.
	WaitOnFences()

	// EnqueueFrameWork runs work asynchronously off the render thread.
	// WaitOnFences and Draw wait for it.
	EnqueueFrameWork(work func())

	// FrameNumber returns the number of the frame being prepared.
	FrameNumber() int64

	// AddFrameCompleteListener registers fn to run once when the next drawn
	// frame completes.
	AddFrameCompleteListener(fn func(frameNumber int64))

	// AddFrameCommitListener registers fn to run once when the current frame
	// is committed (true) or abandoned without producing a buffer (false).
	AddFrameCommitListener(fn func(didProduceBuffer bool))
}

// TreeMode selects how much of the tree PrepareTree walks.
type TreeMode int

const (
	// ModeFull prepares the whole tree for a frame.
	ModeFull TreeMode = iota

	// ModeRTOnly only runs render-thread animations.
	ModeRTOnly
)

// String returns the mode name.
func (m TreeMode) String() string {
	switch m {
	case ModeFull:
		return "Full"
	case ModeRTOnly:
		return "RTOnly"
	default:
		return "Unknown"
	}
}

// TreeInfo carries inputs to and results from PrepareTree.
type TreeInfo struct {
	// Mode is the preparation mode.
	Mode TreeMode

	// ForceDrawFrame asks the context to draw even if it would skip.
	ForceDrawFrame bool

	// TexturesConstrained is true when the previous sync ran out of
	// texture cache room. Contexts should avoid optional uploads.
	TexturesConstrained bool

	// PrepareTextures is set by PrepareTree: false if the texture cache did
	// not have room for everything this frame needs.
	PrepareTextures bool

	// Out is filled in by PrepareTree.
	Out TreeOutput
}

// TreeOutput is the result of preparing a tree.
type TreeOutput struct {
	// CanDrawThisFrame is false if the frame must be skipped.
	CanDrawThisFrame bool

	// HasAnimations is true if any node is animating.
	HasAnimations bool

	// RequiresUIRedraw is true if a node asked the producer for another frame.
	RequiresUIRedraw bool
}

// NewTreeInfo returns a TreeInfo with optimistic defaults: the frame can be
// drawn and textures fit.
func NewTreeInfo(mode TreeMode) TreeInfo {
	return TreeInfo{
		Mode:            mode,
		PrepareTextures: true,
		Out:             TreeOutput{CanDrawThisFrame: true},
	}
}

// Node is the root of a scene tree handed to PrepareTree.
type Node interface {
	// Name identifies the node in logs.
	Name() string

	// PrepareTree walks the subtree and reports animations and redraw
	// requests into info.Out.
	PrepareTree(info *TreeInfo)
}

// LayerUpdater is a pending layer update. Apply runs on the render thread
// during sync and copies the producer's staged content into the context.
//
// Queues identify updaters with ==, so implementations should be pointer
// types. Queuing a value whose type is not comparable panics.
type LayerUpdater interface {
	Apply()
}

// Rect is an integer rectangle in surface pixels.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}
