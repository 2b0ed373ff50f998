// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command framedemo drives a software render thread with animated layers
// and reports frame synchronization statistics.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/gogpu/gpucontext"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/framesync"
	"github.com/gogpu/framesync/frame"
	"github.com/gogpu/framesync/render"
	"github.com/gogpu/framesync/renderthread"
)

// window is a headless host window that counts redraw requests.
type window struct {
	gpucontext.NullWindowProvider
	redraws int
}

func (w *window) RequestRedraw() { w.redraws++ }

var _ gpucontext.WindowProvider = (*window)(nil)

// hintStats accumulates work duration hints on the render thread.
type hintStats struct {
	target     int64
	actualSum  int64
	actuals    int64
	suppressed int64
}

type config struct {
	frames   int
	layers   int
	cache    int
	dequeue  time.Duration
	cpu      int
	pace     bool
	output   string
	verbose  bool
	win      gpucontext.NullWindowProvider
	interval int64
}

func main() {
	var cfg config
	flag.IntVar(&cfg.frames, "frames", 120, "number of frames to produce")
	flag.IntVar(&cfg.layers, "layers", 4, "number of animated layers")
	flag.IntVar(&cfg.cache, "cache", 64, "layer texture cache size")
	flag.DurationVar(&cfg.dequeue, "dequeue", 0, "simulated buffer dequeue delay")
	flag.IntVar(&cfg.cpu, "cpu", framesync.DefaultCPUTimePercentage, "target CPU share of the frame budget, percent")
	flag.BoolVar(&cfg.pace, "pace", true, "sleep until each vsync")
	flag.StringVar(&cfg.output, "output", "", "write the last frame to this PNG file")
	flag.BoolVar(&cfg.verbose, "v", false, "log per-frame diagnostics")
	flag.IntVar(&cfg.win.W, "width", 320, "window width in points")
	flag.IntVar(&cfg.win.H, "height", 240, "window height in points")
	flag.Float64Var(&cfg.win.SF, "scale", 1, "window scale factor")
	flag.Int64Var(&cfg.interval, "interval", renderthread.DefaultFrameInterval, "vsync interval in nanoseconds")
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatalf("framedemo: %v", err)
	}
}

func run(cfg config) error {
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	framesync.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	win := &window{NullWindowProvider: cfg.win}
	w, h := win.Size()
	scale := win.ScaleFactor()
	pw, ph := int(float64(w)*scale), int(float64(h)*scale)

	rt := renderthread.New()
	ctx, err := render.NewSoftwareContext(render.NullDeviceHandle{},
		render.WithTextureCacheSize(cfg.cache),
		render.WithDequeueDelay(cfg.dequeue),
		render.WithClearColor(color.RGBA{R: 24, G: 24, B: 32, A: 255}),
	)
	if err != nil {
		rt.Close()
		return fmt.Errorf("create context: %w", err)
	}
	surface, err := render.NewPixmapTarget(pw, ph)
	if err != nil {
		rt.Close()
		ctx.Close()
		return fmt.Errorf("create surface: %w", err)
	}
	ctx.SetSurface(surface)

	start := time.Now()
	clock := func() int64 { return int64(time.Since(start)) }

	trace := frame.NewTraceBuffer(0)
	var stats hintStats
	task := framesync.NewDrawFrameTask(
		framesync.WithClock(clock),
		framesync.WithCPUTimePercentage(cfg.cpu),
		framesync.WithTraceBuffer(trace),
		framesync.WithHintObserver(framesync.HintObserverFunc(func(framesync.HintKind, int64) {
			stats.suppressed++
		})),
	)
	task.SetHintSessionCallbacks(
		func(d int64) { stats.target = d },
		func(d int64) {
			stats.actualSum += d
			stats.actuals++
		},
	)

	root := render.NewRenderNode("window")
	spinner := render.NewRenderNode("spinner")
	spinner.SetAnimating(true)
	root.AddChild(spinner)
	task.SetContext(rt, ctx, root)
	task.SetContentDrawBounds(surface.Bounds())

	layers := make([]*render.SoftwareLayer, cfg.layers)
	for i := range layers {
		layers[i] = render.NewSoftwareLayer(ctx, i)
		layers[i].SetContent(square(ph/4, hue(i, 0)), image.Point{})
		task.PushLayerUpdate(layers[i])
	}

	var completed int64
	results := make(map[framesync.SyncResult]int)
	for i := range cfg.frames {
		vsync := int64(i+1) * cfg.interval
		if cfg.pace {
			time.Sleep(time.Duration(vsync - clock()))
		}

		fi := task.FrameInfo()
		fi.Reset()
		fi.Set(frame.Vsync, vsync)
		fi.Set(frame.IntendedVsync, vsync)
		fi.Set(frame.FrameStartTime, clock())
		fi.Set(frame.FrameDeadline, vsync+cfg.interval)
		fi.Set(frame.FrameInterval, cfg.interval)
		fi.Set(frame.FrameTimelineVsyncID, int64(i))

		for j, l := range layers {
			l.SetPosition(orbit(i, j, len(layers), pw, ph))
			if i%30 == 0 && i > 0 {
				l.SetContent(square(ph/4, hue(j, i)), orbit(i, j, len(layers), pw, ph))
			}
			task.PushLayerUpdate(l)
		}
		if i%10 == 0 {
			spinner.RequestUIRedraw()
		}
		task.SetFrameCompleteCallback(func(int64) { completed++ })

		res := task.DrawFrame()
		results[res]++
		if res.Has(framesync.SyncUIRedrawRequired) {
			win.RequestRedraw()
		}
	}

	rt.Close()
	ctx.Close()
	task.SetContext(nil, nil, nil)

	if cfg.output != "" {
		if err := writePNG(cfg.output, surface.Snapshot()); err != nil {
			return err
		}
	}

	report(cfg, win, ctx, trace.Snapshot(), results, &stats, completed)
	return nil
}

func report(cfg config, win *window, ctx *render.SoftwareContext, tl frame.Timeline,
	results map[framesync.SyncResult]int, stats *hintStats, completed int64) {
	p := message.NewPrinter(language.English)

	p.Printf("frames produced:   %d\n", cfg.frames)
	p.Printf("frames drawn:      %d (completed %d)\n", ctx.FramesDrawn(), completed)
	p.Printf("frames dropped:    %d\n", tl.DroppedFrames)
	p.Printf("redraw requests:   %d\n", win.redraws)
	p.Printf("target work:       %d ns\n", stats.target)
	if stats.actuals > 0 {
		p.Printf("mean actual work:  %d ns\n", stats.actualSum/stats.actuals)
	}
	p.Printf("suppressed hints:  %d\n", stats.suppressed)

	var queue, draw int64
	for _, s := range tl.Samples {
		queue += s.QueueDelay
		draw += s.DrawDuration
	}
	if n := int64(len(tl.Samples)); n > 0 {
		p.Printf("mean queue delay:  %d ns\n", queue/n)
		p.Printf("mean draw time:    %d ns\n", draw/n)
	}
	for _, res := range slices.Sorted(maps.Keys(results)) {
		p.Printf("result %-28s %d\n", res.String(), results[res])
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func square(size int, c color.RGBA) *image.RGBA {
	size = max(size, 1)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// hue picks a layer color that shifts every content refresh.
func hue(layer, frameIndex int) color.RGBA {
	palette := []color.RGBA{
		{R: 230, G: 80, B: 80, A: 255},
		{R: 80, G: 200, B: 120, A: 255},
		{R: 80, G: 140, B: 230, A: 255},
		{R: 230, G: 200, B: 70, A: 255},
	}
	return palette[(layer+frameIndex/30)%len(palette)]
}

// orbit places layer j of n on a circle-like path that advances per frame.
func orbit(frameIndex, j, n, w, h int) image.Point {
	step := (frameIndex*4 + j*(360/max(n, 1))) % 360
	// Triangle wave in both axes keeps the math integer.
	tri := func(v, span int) int {
		span = max(span, 1)
		v %= 2 * span
		if v > span {
			v = 2*span - v
		}
		return v
	}
	return image.Pt(tri(step*w/180, w*3/4), tri((step+90)*h/180, h*3/4))
}
