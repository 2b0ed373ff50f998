// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import "testing"

func TestIndexString(t *testing.T) {
	tests := []struct {
		idx  Index
		want string
	}{
		{Flags, "Flags"},
		{IntendedVsync, "IntendedVsync"},
		{FrameDeadline, "FrameDeadline"},
		{FrameTimelineVsyncID, "FrameTimelineVsyncID"},
		{DisplayPresentTime, "DisplayPresentTime"},
		{NumIndices, "Index(22)"},
		{Index(-1), "Index(-1)"},
	}
	for _, tt := range tests {
		if got := tt.idx.String(); got != tt.want {
			t.Errorf("Index(%d).String() = %q, want %q", int(tt.idx), got, tt.want)
		}
	}
}

func TestIndexNamesComplete(t *testing.T) {
	for i := Index(0); i < NumIndices; i++ {
		if indexNames[i] == "" {
			t.Errorf("slot %d has no name", int(i))
		}
	}
}

func TestInfoGetSet(t *testing.T) {
	var fi Info
	fi.Set(Vsync, 1000)
	fi.Set(FrameDeadline, 17_000_000)

	if got := fi.Get(Vsync); got != 1000 {
		t.Errorf("Get(Vsync) = %d, want 1000", got)
	}
	if got := fi.Get(FrameDeadline); got != 17_000_000 {
		t.Errorf("Get(FrameDeadline) = %d, want 17000000", got)
	}
	if got := fi.Get(IntendedVsync); got != 0 {
		t.Errorf("Get(IntendedVsync) = %d, want 0", got)
	}
}

func TestInfoFlags(t *testing.T) {
	var fi Info
	fi.AddFlag(FlagSkippedFrame)
	fi.AddFlag(FlagRTAnimation)

	if !fi.HasFlag(FlagSkippedFrame) {
		t.Error("HasFlag(FlagSkippedFrame) = false, want true")
	}
	if !fi.HasFlag(FlagRTAnimation) {
		t.Error("HasFlag(FlagRTAnimation) = false, want true")
	}
	if fi.HasFlag(FlagSurfaceCanvas) {
		t.Error("HasFlag(FlagSurfaceCanvas) = true, want false")
	}
}

func TestInfoDuration(t *testing.T) {
	tests := []struct {
		name       string
		start, end int64
		want       int64
	}{
		{"normal", 100, 350, 250},
		{"unset start", 0, 350, 0},
		{"unset end", 100, 0, 0},
		{"negative span", 400, 350, 0},
		{"zero span", 200, 200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fi Info
			fi.Set(SyncStart, tt.start)
			fi.Set(FrameCompleted, tt.end)
			if got := fi.Duration(SyncStart, FrameCompleted); got != tt.want {
				t.Errorf("Duration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInfoReset(t *testing.T) {
	var fi Info
	for i := Index(0); i < NumIndices; i++ {
		fi.Set(i, int64(i)+1)
	}
	fi.Reset()
	for i := Index(0); i < NumIndices; i++ {
		if fi.Get(i) != 0 {
			t.Errorf("after Reset, Get(%v) = %d, want 0", i, fi.Get(i))
		}
	}
}
