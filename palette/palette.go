// Package palette produces the 3-color sets the shader mixes. Generation is
// deterministic for a given seed and never fails; unknown inputs degrade to
// the curated brand triad.
package palette

import (
	"math"

	perlin "github.com/aquilax/go-perlin"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/glooviz/gloo/effects"
)

type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

type Strategy string

const (
	StrategyBrandTriad    Strategy = "brand-triad"
	StrategySeededRandom  Strategy = "seeded-random"
	StrategySoftGlass     Strategy = "soft-glass"
	StrategyGradientNoise Strategy = "gradient-noise"
	StrategyMono          Strategy = "mono"
)

// Palette is always exactly three colors. Generated marks palettes produced
// by Generate as opposed to hand-built ones supplied by the caller.
type Palette struct {
	Colors    [3]colorful.Color
	Strategy  Strategy
	Mode      Mode
	Seed      float64
	Generated bool
}

// Hex returns the three colors as lowercase hex strings.
func (p Palette) Hex() [3]string {
	return [3]string{p.Colors[0].Hex(), p.Colors[1].Hex(), p.Colors[2].Hex()}
}

func hex(s string) colorful.Color {
	c, _ := colorful.Hex(s)
	return c
}

var brandTriad = map[Mode][3]colorful.Color{
	ModeLight: {hex("#6366f1"), hex("#14b8a6"), hex("#f59e0b")},
	ModeDark:  {hex("#818cf8"), hex("#2dd4bf"), hex("#fbbf24")},
}

// Curated pools the seeded-random strategy samples from.
var pools = map[Mode][]colorful.Color{
	ModeLight: {
		hex("#6366f1"), hex("#8b5cf6"), hex("#ec4899"), hex("#f97316"),
		hex("#f59e0b"), hex("#84cc16"), hex("#10b981"), hex("#14b8a6"),
		hex("#06b6d4"), hex("#0ea5e9"), hex("#3b82f6"), hex("#a855f7"),
		hex("#d946ef"), hex("#f43f5e"), hex("#eab308"), hex("#22c55e"),
		hex("#64748b"), hex("#94a3b8"),
	},
	ModeDark: {
		hex("#818cf8"), hex("#a78bfa"), hex("#f472b6"), hex("#fb923c"),
		hex("#fbbf24"), hex("#a3e635"), hex("#34d399"), hex("#2dd4bf"),
		hex("#22d3ee"), hex("#38bdf8"), hex("#60a5fa"), hex("#c084fc"),
		hex("#e879f9"), hex("#fb7185"), hex("#facc15"), hex("#4ade80"),
		hex("#94a3b8"), hex("#cbd5e1"),
	},
}

var defaultAnchor = map[Mode]colorful.Color{
	ModeLight: hex("#6366f1"),
	ModeDark:  hex("#818cf8"),
}

// Generate builds a palette for the given mode and strategy. seed feeds the
// deterministic strategies; anchorHex (optional, "" for the mode default)
// anchors the derived strategies. Generation never errors: unknown modes are
// treated as light, unknown strategies and unparsable anchors fall back to
// the brand triad and the default anchor.
func Generate(mode Mode, strategy Strategy, seed float64, anchorHex string) Palette {
	if mode != ModeDark {
		mode = ModeLight
	}

	anchor := defaultAnchor[mode]
	if anchorHex != "" {
		if c, err := colorful.Hex(anchorHex); err == nil {
			anchor = c
		}
	}

	p := Palette{Strategy: strategy, Mode: mode, Seed: seed, Generated: true}
	switch strategy {
	case StrategySeededRandom:
		p.Colors = seededRandom(mode, seed)
	case StrategySoftGlass:
		p.Colors = softGlass(mode, anchor)
	case StrategyGradientNoise:
		p.Colors = gradientNoise(mode, seed)
	case StrategyMono:
		p.Colors = mono(mode, anchor)
	default:
		p.Strategy = StrategyBrandTriad
		p.Colors = brandTriad[mode]
	}
	return p
}

// seededRandom draws three pool entries using lanes of the same avalanche
// hash the effect selector uses, so one seed pins both the effect and the
// palette. Duplicate picks are acceptable.
func seededRandom(mode Mode, seed float64) [3]colorful.Color {
	pool := pools[mode]
	var out [3]colorful.Color
	for i := range out {
		out[i] = pool[int(effects.SeedHash(seed, uint32(i))%uint32(len(pool)))]
	}
	return out
}

func softGlass(mode Mode, anchor colorful.Color) [3]colorful.Color {
	h, s, _ := anchor.Hsv()
	var out [3]colorful.Color
	if mode == ModeDark {
		vals := [3]float64{0.32, 0.24, 0.16}
		for i := range out {
			out[i] = colorful.Hsv(wrapHue(h+float64(i-1)*12), s*0.5, vals[i])
		}
		return out
	}
	vals := [3]float64{0.97, 0.92, 0.86}
	for i := range out {
		out[i] = colorful.Hsv(wrapHue(h+float64(i-1)*12), s*0.25, vals[i])
	}
	return out
}

// gradientNoise walks the hue circle with Perlin noise seeded from the
// avalanche hash, giving a softly-related triple that is still fully
// reproducible for a given seed.
func gradientNoise(mode Mode, seed float64) [3]colorful.Color {
	noise := perlin.NewPerlin(2, 2, 3, int64(effects.SeedHash(seed, 0)))
	baseHue := float64(effects.SeedHash(seed, 1) % 360)

	sat, val := 0.45, 0.95
	if mode == ModeDark {
		sat, val = 0.55, 0.45
	}

	var out [3]colorful.Color
	for i := range out {
		n := noise.Noise1D(0.37*float64(i) + 0.11)
		hue := wrapHue(baseHue + n*120 + float64(i)*40)
		out[i] = colorful.Hsv(hue, sat, val)
	}
	return out
}

func mono(mode Mode, anchor colorful.Color) [3]colorful.Color {
	h, s, v := anchor.Hsv()
	if mode == ModeDark && v > 0.6 {
		v = 0.6
	}
	var out [3]colorful.Color
	for i, f := range [3]float64{1.0, 0.72, 0.48} {
		out[i] = colorful.Hsv(h, s, clamp01(v*f))
	}
	return out
}

func wrapHue(h float64) float64 {
	return math.Mod(math.Mod(h, 360)+360, 360)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
