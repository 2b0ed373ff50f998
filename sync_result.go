// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framesync

import (
	"strconv"
	"strings"
)

// SyncResult summarizes the outcome of the sync phase of one frame.
// Flags are independent and may be combined with |. The zero value is SyncOK.
type SyncResult uint32

const (
	// SyncOK means the frame synced without incident.
	SyncOK SyncResult = 0

	// SyncUIRedrawRequired means animations are running and the tree asked
	// the producer for another frame.
	SyncUIRedrawRequired SyncResult = 1 << 0

	// SyncLostSurfaceRewardIfFound means no drawable surface is attached.
	SyncLostSurfaceRewardIfFound SyncResult = 1 << 1

	// SyncContextIsStopped means a surface exists but could not be made current.
	SyncContextIsStopped SyncResult = 1 << 2

	// SyncFrameDropped means the frame was not drawn.
	SyncFrameDropped SyncResult = 1 << 3
)

var syncResultNames = []struct {
	flag SyncResult
	name string
}{
	{SyncUIRedrawRequired, "UIRedrawRequired"},
	{SyncLostSurfaceRewardIfFound, "LostSurfaceRewardIfFound"},
	{SyncContextIsStopped, "ContextIsStopped"},
	{SyncFrameDropped, "FrameDropped"},
}

// Has reports whether every bit of flag is set in r.
func (r SyncResult) Has(flag SyncResult) bool {
	return r&flag == flag
}

// String returns the set flags joined by "|", or "OK".
func (r SyncResult) String() string {
	if r == SyncOK {
		return "OK"
	}
	var parts []string
	rest := r
	for _, f := range syncResultNames {
		if r&f.flag != 0 {
			parts = append(parts, f.name)
			rest &^= f.flag
		}
	}
	if rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}
