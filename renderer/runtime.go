package renderer

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/glooviz/gloo/effects"
	"github.com/glooviz/gloo/graphics"
	"github.com/glooviz/gloo/palette"
	"github.com/glooviz/gloo/shader"
)

// Config is the full construction input for a runtime instance. Changes
// submitted through SetConfig take effect on the next tick, never mid-draw.
type Config struct {
	// Effect selection, in priority order: EffectIndex (clamped), EffectName
	// (case-insensitive), then seeded selection. A seed alone selects
	// deterministically; RandomEffect opts out.
	EffectIndex *int
	EffectName  string

	Depth      int
	Resolution float64
	Seed       float64
	Speed      float64

	RandomEffect bool

	// Palette, when non-nil, is used as-is. Otherwise one is generated from
	// PaletteStrategy/Mode/Seed/AnchorColor.
	Palette         *palette.Palette
	PaletteStrategy palette.Strategy
	Mode            palette.Mode
	AnchorColor     string

	// Tint is mixed over the palette output by its alpha. A zero tint is a
	// no-op.
	Tint mgl32.Vec4

	Animate    bool
	StillFrame bool

	// PreserveDrawingBuffer marks hosts whose swapchain retains the last
	// presented frame. When false, paused ticks re-present the frozen frame
	// so pausing never degrades to a blank surface.
	PreserveDrawingBuffer bool

	// Explicit dimensions suppress auto-sizing entirely.
	ExplicitWidth  int
	ExplicitHeight int

	// DynamicUniforms, when set, is called once per running tick; the
	// returned values are uploaded before the draw. Unknown names are
	// tolerated silently.
	DynamicUniforms func(FrameContext) map[string]float32

	// OnError receives every fatal runtime error (context acquisition,
	// compile, link). Errors never cross the public boundary as panics.
	OnError func(msg string)
	// OnEffectChange fires once per successful (re)compilation.
	OnEffectChange func(index int, name string)
}

// Runtime is the live handle composing the compiled program, the scheduler
// and the sizing controller for one mounted surface. Create with New, tear
// down exactly once with Dispose; a disposed runtime is inert and must not
// be reused.
type Runtime struct {
	env     graphics.Environment
	surface graphics.Surface

	res    *Resources
	sched  *Scheduler
	sizing *sizingController

	cfg     Config
	pending *Config
	force   bool

	effect  effects.Descriptor
	pal     palette.Palette
	metrics Metrics

	uniformsDirty bool
	stillPending  bool

	err      error
	disposed bool
}

// New builds a runtime over the production OpenGL backend. A missing context
// is reported through OnError and yields an inert handle, never a panic.
func New(env graphics.Environment, surface graphics.Surface, cfg Config) *Runtime {
	return newRuntime(openGL{}, env, surface, cfg)
}

func newRuntime(g gpu, env graphics.Environment, surface graphics.Surface, cfg Config) *Runtime {
	rt := &Runtime{
		env:     env,
		surface: surface,
		cfg:     cfg,
		sched:   NewScheduler(),
	}

	if !env.HasContext {
		rt.fail(&ContextUnavailableError{Reason: "environment reports no context support"})
		return rt
	}

	res, err := newResources(g)
	if err != nil {
		rt.fail(err)
		return rt
	}
	rt.res = res
	rt.sizing = newSizingController(surface, env, cfg.ExplicitWidth, cfg.ExplicitHeight)

	rt.applyConfig(cfg, false)

	if cfg.Animate && !cfg.StillFrame {
		rt.sched.Start()
	} else {
		rt.stillPending = true
	}
	return rt
}

// applyConfig resolves the effect and palette, assembles the fragment
// source, and recompiles when its content hash moved (or force is set).
// A failed compile keeps the previous program bound and drawing; the bad
// config is reported and discarded.
func (rt *Runtime) applyConfig(cfg Config, force bool) {
	normalizeConfig(&cfg)

	eff := effects.Resolve(effects.ResolveOptions{
		Index:        cfg.EffectIndex,
		Name:         cfg.EffectName,
		Seed:         &cfg.Seed,
		RandomEffect: cfg.RandomEffect,
	})

	var pal palette.Palette
	if cfg.Palette != nil {
		pal = *cfg.Palette
	} else {
		pal = palette.Generate(cfg.Mode, cfg.PaletteStrategy, cfg.Seed, cfg.AnchorColor)
	}

	src := shader.Assemble(shader.Config{
		Effect:     eff,
		Depth:      cfg.Depth,
		Resolution: cfg.Resolution,
		Seed:       cfg.Seed,
		Speed:      cfg.Speed,
	})
	hash := shader.SourceHash(src)

	recompiled, err := rt.res.Ensure(shader.VertexSource(), src, hash, force)
	if err != nil {
		rt.fail(err)
		return
	}

	prevTint := rt.cfg.Tint
	rt.cfg = cfg
	rt.effect = eff

	if recompiled || pal.Hex() != rt.pal.Hex() || cfg.Tint != prevTint {
		rt.uniformsDirty = true
	}
	rt.pal = pal

	if recompiled && cfg.OnEffectChange != nil {
		cfg.OnEffectChange(eff.Index, eff.Name)
	}
}

func normalizeConfig(cfg *Config) {
	if cfg.Depth < 1 {
		cfg.Depth = 1
	}
	if cfg.Resolution <= 0 {
		cfg.Resolution = 1.0
	}
	if cfg.Speed == 0 {
		cfg.Speed = 1.0
	}
}

// Tick is the per-frame entry point, called by the host on its vsync
// heartbeat with a monotonic clock reading in seconds. Ordering within a
// tick: pending config, then sizing, then uniform upload, then draw.
func (rt *Runtime) Tick(now float64) {
	if rt.disposed || rt.res == nil {
		return
	}

	if rt.pending != nil || rt.force {
		cfg := rt.cfg
		if rt.pending != nil {
			cfg = *rt.pending
		}
		rt.applyConfig(cfg, rt.force)
		rt.pending = nil
		rt.force = false
	}

	m, resized := rt.sizing.Sync()
	rt.metrics = m

	if !rt.res.HasProgram() {
		return
	}

	ctx, running := rt.sched.Tick(now)
	if !running {
		switch {
		case rt.stillPending:
			rt.stillPending = false
		case rt.sched.Paused() && !rt.cfg.PreserveDrawingBuffer:
			// Re-present the frozen frame so the last image stays visible.
			frozen, ok := rt.sched.Frozen()
			if !ok && !resized && !rt.uniformsDirty {
				return
			}
			ctx = frozen
		default:
			return
		}
	}

	rt.res.Use()
	if resized || rt.uniformsDirty {
		rt.res.SetVec2("uResolution", float32(m.BufferWidth), float32(m.BufferHeight))
	}
	if rt.uniformsDirty {
		rt.res.SetVec3("uColor1", colorToVec3(rt.pal.Colors[0]))
		rt.res.SetVec3("uColor2", colorToVec3(rt.pal.Colors[1]))
		rt.res.SetVec3("uColor3", colorToVec3(rt.pal.Colors[2]))
		rt.res.SetVec4("uTint", rt.cfg.Tint)
		rt.uniformsDirty = false
	}
	rt.res.SetFloat("uTime", float32(ctx.Time))
	if rt.cfg.DynamicUniforms != nil {
		for name, v := range rt.cfg.DynamicUniforms(ctx) {
			rt.res.SetFloat(name, v)
		}
	}
	rt.res.Draw(m.BufferWidth, m.BufferHeight)
}

// SetConfig stages a configuration change; it lands at the next tick.
func (rt *Runtime) SetConfig(cfg Config) {
	if rt.disposed {
		return
	}
	c := cfg
	rt.pending = &c
}

// SetPlaying toggles the animation without touching GPU state. Pausing
// leaves the last drawn frame visible.
func (rt *Runtime) SetPlaying(playing bool) {
	if rt.disposed {
		return
	}
	rt.sched.SetPlaying(playing)
}

// Recompile forces a rebuild on the next tick even if the source hash is
// unchanged. Debug refresh hook.
func (rt *Runtime) Recompile() {
	if rt.disposed {
		return
	}
	rt.force = true
}

// Effect returns the currently compiled effect.
func (rt *Runtime) Effect() effects.Descriptor {
	return rt.effect
}

// Palette returns the palette currently feeding the color uniforms.
func (rt *Runtime) Palette() palette.Palette {
	return rt.pal
}

// Metrics returns the last observed surface metrics.
func (rt *Runtime) Metrics() Metrics {
	return rt.metrics
}

// Err returns the error slot: the most recent fatal error, or nil.
func (rt *Runtime) Err() error {
	return rt.err
}

// ReadPixels reads back the last drawn frame as RGBA bytes at buffer
// resolution. Used by the offscreen recorder.
func (rt *Runtime) ReadPixels() []byte {
	if rt.res == nil {
		return nil
	}
	return rt.res.ReadPixels(rt.metrics.BufferWidth, rt.metrics.BufferHeight)
}

// Dispose stops the scheduler first, then releases GPU resources, so no
// draw can touch a freed context. Idempotent; the runtime is unusable
// afterwards.
func (rt *Runtime) Dispose() {
	if rt.disposed {
		return
	}
	rt.sched.Stop()
	if rt.res != nil {
		rt.res.Dispose()
	}
	rt.disposed = true
}

func (rt *Runtime) fail(err error) {
	rt.err = err
	log.Printf("gloo runtime: %v", err)
	if rt.cfg.OnError != nil {
		rt.cfg.OnError(err.Error())
	}
}

func colorToVec3(c colorful.Color) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}
