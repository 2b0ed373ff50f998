// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framesync

import "testing"

func TestSyncResultValues(t *testing.T) {
	tests := []struct {
		flag SyncResult
		want uint32
	}{
		{SyncOK, 0},
		{SyncUIRedrawRequired, 1},
		{SyncLostSurfaceRewardIfFound, 2},
		{SyncContextIsStopped, 4},
		{SyncFrameDropped, 8},
	}
	for _, tt := range tests {
		if uint32(tt.flag) != tt.want {
			t.Errorf("%v = %d, want %d", tt.flag, uint32(tt.flag), tt.want)
		}
	}
}

func TestSyncResultHas(t *testing.T) {
	r := SyncLostSurfaceRewardIfFound | SyncFrameDropped

	if !r.Has(SyncFrameDropped) {
		t.Error("Has(FrameDropped) = false, want true")
	}
	if !r.Has(SyncLostSurfaceRewardIfFound | SyncFrameDropped) {
		t.Error("Has(LostSurface|FrameDropped) = false, want true")
	}
	if r.Has(SyncContextIsStopped) {
		t.Error("Has(ContextIsStopped) = true, want false")
	}
	if r.Has(SyncFrameDropped | SyncUIRedrawRequired) {
		t.Error("Has with a missing bit = true, want false")
	}
}

func TestSyncResultString(t *testing.T) {
	tests := []struct {
		r    SyncResult
		want string
	}{
		{SyncOK, "OK"},
		{SyncUIRedrawRequired, "UIRedrawRequired"},
		{SyncLostSurfaceRewardIfFound | SyncFrameDropped, "LostSurfaceRewardIfFound|FrameDropped"},
		{SyncContextIsStopped | SyncFrameDropped | SyncUIRedrawRequired, "UIRedrawRequired|ContextIsStopped|FrameDropped"},
		{SyncFrameDropped | 1<<8, "FrameDropped|0x100"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("SyncResult(%d).String() = %q, want %q", uint32(tt.r), got, tt.want)
		}
	}
}
