// Package shader assembles the fragment program source from a warp snippet
// and a Config. Assembly is pure string composition: identical configs
// produce byte-identical source, which is what the renderer keys its
// recompilation cache on.
package shader

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/glooviz/gloo/effects"
)

// Config fully determines the assembled fragment source. Depth is clamped to
// a minimum of 1 at assembly time; Resolution, Seed and Speed are embedded as
// fixed-precision literals so the output stays deterministic.
type Config struct {
	Effect     effects.Descriptor
	Depth      int
	Resolution float64
	Seed       float64
	Speed      float64
}

const vertexSource = `#version 410 core
layout (location = 0) in vec2 in_vert;
void main() {
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const fragmentHeader = `#version 410 core
out vec4 fragColor;

uniform float uTime;
uniform vec2  uResolution;
uniform vec3  uColor1;
uniform vec3  uColor2;
uniform vec3  uColor3;
uniform vec4  uTint;

`

// VertexSource returns the fixed full-screen-quad vertex shader.
func VertexSource() string {
	return vertexSource
}

// Assemble composes the final fragment source: header uniforms, the effect
// snippet verbatim, then a main that normalizes coordinates, applies the
// seed offset, scales by the spatial resolution, runs the warp Depth times,
// mixes the three palette colors, tints, and vignettes the edges.
func Assemble(cfg Config) string {
	depth := cfg.Depth
	if depth < 1 {
		depth = 1
	}
	offX := math.Mod(cfg.Seed*0.7317, 10.0)
	offY := math.Mod(cfg.Seed*0.4131, 10.0)

	var b strings.Builder
	b.WriteString(fragmentHeader)
	b.WriteString(cfg.Effect.Snippet)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, `void main() {
    vec2 uv = (gl_FragCoord.xy * 2.0 - uResolution) / min(uResolution.x, uResolution.y);
    vec2 p = uv + vec2(%.3f, %.3f);
    p *= %.3f;
    float t = uTime * %.3f;
    for (int i = 0; i < %d; i++) {
        p = warp(p, t);
    }
    vec3 col = mix(uColor1, uColor2, 0.5 + 0.5 * sin(p.x));
    col = mix(col, uColor3, 0.5 + 0.5 * cos(p.y));
    col = mix(col, uTint.rgb, uTint.a);
    float vig = smoothstep(1.6, 0.35, length(uv));
    fragColor = vec4(col * vig, 1.0);
}
`, offX, offY, cfg.Resolution, cfg.Speed, depth)
	return b.String()
}

// SourceHash is the content hash the renderer records per compiled program.
func SourceHash(src string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(src))
	return h.Sum64()
}
