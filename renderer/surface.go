package renderer

import (
	"math"

	"github.com/glooviz/gloo/graphics"
)

// Metrics captures one observation of the surface's layout box and the
// backing-buffer resolution derived from it.
type Metrics struct {
	CSSWidth         float64
	CSSHeight        float64
	DevicePixelRatio float64
	BufferWidth      int
	BufferHeight     int
}

func computeMetrics(cssW, cssH, dpr float64) Metrics {
	return Metrics{
		CSSWidth:         cssW,
		CSSHeight:        cssH,
		DevicePixelRatio: dpr,
		BufferWidth:      int(math.Ceil(cssW * dpr)),
		BufferHeight:     int(math.Ceil(cssH * dpr)),
	}
}

// sizingController keeps the backing-buffer resolution in sync with the
// layout size times device pixel ratio. It is the only component that
// mutates the surface's buffer dimensions.
type sizingController struct {
	surface     graphics.Surface
	dprOverride float64
	explicitW   int
	explicitH   int
}

func newSizingController(surface graphics.Surface, env graphics.Environment, explicitW, explicitH int) *sizingController {
	return &sizingController{
		surface:     surface,
		dprOverride: env.DPROverride,
		explicitW:   explicitW,
		explicitH:   explicitH,
	}
}

// Sync recomputes metrics from the observed layout box and resizes the
// buffer when it drifted. The bool result reports whether the buffer
// changed, i.e. the resolution uniform needs a refresh before the next draw.
//
// Explicit width/height overrides suppress auto-sizing entirely: the buffer
// is pinned to the explicit dimensions and layout changes are ignored.
func (c *sizingController) Sync() (Metrics, bool) {
	if c.explicitW > 0 && c.explicitH > 0 {
		m := Metrics{
			CSSWidth:         float64(c.explicitW),
			CSSHeight:        float64(c.explicitH),
			DevicePixelRatio: 1,
			BufferWidth:      c.explicitW,
			BufferHeight:     c.explicitH,
		}
		bw, bh := c.surface.BufferSize()
		if bw != c.explicitW || bh != c.explicitH {
			c.surface.SetBufferSize(c.explicitW, c.explicitH)
			return m, true
		}
		return m, false
	}

	cssW, cssH := c.surface.LayoutSize()
	dpr := c.surface.DevicePixelRatio()
	if c.dprOverride > 0 {
		dpr = c.dprOverride
	}
	m := computeMetrics(cssW, cssH, dpr)

	bw, bh := c.surface.BufferSize()
	if m.BufferWidth != bw || m.BufferHeight != bh {
		c.surface.SetBufferSize(m.BufferWidth, m.BufferHeight)
		return m, true
	}
	return m, false
}
