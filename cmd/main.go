package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/glooviz/gloo/effects"
	"github.com/glooviz/gloo/encoder"
	"github.com/glooviz/gloo/glfwcontext"
	"github.com/glooviz/gloo/graphics"
	"github.com/glooviz/gloo/options"
	"github.com/glooviz/gloo/palette"
	"github.com/glooviz/gloo/renderer"
)

func init() {
	runtime.LockOSThread()
}

func buildConfig(opts *options.Options) renderer.Config {
	cfg := renderer.Config{
		EffectName:      *opts.Effect,
		Depth:           *opts.Depth,
		Resolution:      *opts.Resolution,
		Seed:            *opts.Seed,
		Speed:           *opts.Speed,
		PaletteStrategy: palette.Strategy(*opts.Strategy),
		Mode:            palette.Mode(*opts.Mode),
		AnchorColor:     *opts.Anchor,
		Animate:         !*opts.Still,
		StillFrame:      *opts.Still,
		OnError: func(msg string) {
			log.Printf("runtime error: %s", msg)
		},
		OnEffectChange: func(index int, name string) {
			log.Printf("effect: %d (%s)", index, name)
		},
	}
	if *opts.EffectIndex >= 0 {
		idx := *opts.EffectIndex
		cfg.EffectIndex = &idx
	}
	return cfg
}

func runInteractive(ctx *glfwcontext.Context, rt *renderer.Runtime, opts *options.Options) {
	playing := true
	ctx.RegisterKeyCallback(glfw.KeySpace, func() {
		playing = !playing
		rt.SetPlaying(playing)
	})
	ctx.RegisterKeyCallback(glfw.KeyR, func() {
		rt.Recompile()
	})
	nextIdx := rt.Effect().Index
	ctx.RegisterKeyCallback(glfw.KeyN, func() {
		nextIdx = (nextIdx + 1) % effects.Count()
		cfg := buildConfig(opts)
		cfg.EffectIndex = &nextIdx
		rt.SetConfig(cfg)
	})

	for !ctx.ShouldClose() {
		rt.Tick(ctx.Time())
		ctx.EndFrame()
	}
}

func runRecord(rt *renderer.Runtime, opts *options.Options) error {
	rt.Tick(0) // settle sizing so the buffer dimensions are final
	m := rt.Metrics()

	session, err := encoder.NewSession(encoder.Options{
		Width:      m.BufferWidth,
		Height:     m.BufferHeight,
		FPS:        *opts.FPS,
		OutputFile: *opts.OutputFile,
		FFMPEGPath: *opts.FFMPEGPath,
	})
	if err != nil {
		return fmt.Errorf("failed to start encoder: %w", err)
	}

	totalFrames := int(*opts.Duration * float64(*opts.FPS))
	for frame := 0; frame < totalFrames; frame++ {
		rt.Tick(float64(frame) / float64(*opts.FPS))
		if err := session.WriteFrame(rt.ReadPixels()); err != nil {
			session.Close()
			return fmt.Errorf("frame %d: %w", frame, err)
		}
	}
	return session.Close()
}

func main() {
	opts := &options.Options{
		Effect:      flag.String("effect", "", "effect name (empty selects by seed)"),
		EffectIndex: flag.Int("effect-index", -1, "numeric effect override (-1 disables)"),
		Depth:       flag.Int("depth", 4, "warp iteration depth"),
		Resolution:  flag.Float64("resolution", 1.0, "spatial resolution scale"),
		Seed:        flag.Float64("seed", 2.4, "deterministic visual seed"),
		Speed:       flag.Float64("speed", 1.0, "animation speed multiplier"),
		Strategy:    flag.String("palette", "brand-triad", "palette strategy"),
		Mode:        flag.String("mode", "dark", "color mode: light or dark"),
		Anchor:      flag.String("anchor", "", "anchor color hex for derived palettes"),
		Width:       flag.Int("width", 1280, "window width"),
		Height:      flag.Int("height", 720, "window height"),
		DPROverride: flag.Float64("dpr", 0, "device pixel ratio override (0 uses the live value)"),
		Still:       flag.Bool("still", false, "render a single still frame"),
		Record:      flag.Bool("record", false, "enable recording mode"),
		Duration:    flag.Float64("duration", 10.0, "duration to record in seconds"),
		FPS:         flag.Int("fps", 60, "frames per second for recording"),
		OutputFile:  flag.String("output", "output.mp4", "output file name for recording"),
		FFMPEGPath:  flag.String("ffmpeg", "", "path to ffmpeg executable"),
	}
	flag.Parse()

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(*opts.Width, *opts.Height, "gloo", !*opts.Record)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer ctx.Shutdown()
	ctx.MakeCurrent()

	env := graphics.Environment{
		HasContext:        true,
		HasResizeObserver: true,
		DPROverride:       *opts.DPROverride,
	}
	rt := renderer.New(env, ctx, buildConfig(opts))
	defer rt.Dispose()

	if err := rt.Err(); err != nil {
		log.Fatalf("Failed to start runtime: %v", err)
	}

	if *opts.Record {
		log.Println("Starting offscreen record loop...")
		if err := runRecord(rt, opts); err != nil {
			log.Fatalf("Recording failed: %v", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return
	}

	log.Println("Starting interactive render loop...")
	runInteractive(ctx, rt, opts)
}
