// Package effects holds the fixed catalog of GLSL warp snippets and the
// deterministic selection logic that maps seeds and overrides to a catalog
// entry.
package effects

import "strings"

// Descriptor identifies one warp effect. Index is the stable identity used
// everywhere else; Snippet is the GLSL text injected verbatim into the
// fragment template and must define `vec2 warp(vec2 p, float t)`.
type Descriptor struct {
	Index   int
	Name    string
	Snippet string
}

var catalog = [...]Descriptor{
	{0, "default", `vec2 warp(vec2 p, float t) {
    return p + 0.18 * vec2(sin(p.y * 1.7 + t), cos(p.x * 1.7 - t));
}`},
	{1, "spiral", `vec2 warp(vec2 p, float t) {
    float r = length(p);
    float a = atan(p.y, p.x) + 0.35 * sin(t * 0.5) + r * 1.3;
    return vec2(cos(a), sin(a)) * r;
}`},
	{2, "waves", `vec2 warp(vec2 p, float t) {
    p.x += 0.25 * sin(p.y * 2.4 + t * 0.8);
    p.y += 0.25 * sin(p.x * 2.1 - t * 0.6);
    return p;
}`},
	{3, "pulse", `vec2 warp(vec2 p, float t) {
    float r = length(p);
    return p * (1.0 + 0.3 * sin(r * 3.0 - t));
}`},
	{4, "ripple", `vec2 warp(vec2 p, float t) {
    float r = length(p);
    return p + (p / max(r, 1e-4)) * 0.12 * sin(r * 8.0 - t * 2.0);
}`},
	{5, "twist", `vec2 warp(vec2 p, float t) {
    float a = 0.6 * sin(t * 0.4) * length(p);
    mat2 m = mat2(cos(a), -sin(a), sin(a), cos(a));
    return m * p;
}`},
	{6, "vortex", `vec2 warp(vec2 p, float t) {
    float r = length(p);
    float a = atan(p.y, p.x) + 1.5 / (r + 0.35) + t * 0.3;
    return vec2(cos(a), sin(a)) * r;
}`},
	{7, "smoke", `vec2 warp(vec2 p, float t) {
    return p + 0.2 * vec2(sin(p.y * 3.1 + sin(t * 0.7)), cos(p.x * 2.7 + cos(t * 0.5)));
}`},
	{8, "kaleido", `vec2 warp(vec2 p, float t) {
    float r = length(p);
    float a = atan(p.y, p.x);
    a = mod(a, 1.04719755) - 0.52359878;
    a += t * 0.2;
    return vec2(cos(a), sin(a)) * r;
}`},
	{9, "bloom", `vec2 warp(vec2 p, float t) {
    float r = length(p);
    return p * (0.8 + 0.4 * sin(t * 0.6)) + 0.1 * vec2(sin(r * 5.0 + t), cos(r * 4.0 - t));
}`},
	{10, "drift", `vec2 warp(vec2 p, float t) {
    return vec2(p.x + 0.3 * sin(t * 0.3 + p.y), p.y + 0.3 * cos(t * 0.25 + p.x));
}`},
}

// Count returns the number of effects in the catalog.
func Count() int {
	return len(catalog)
}

// ByIndex returns the effect at i, clamping out-of-range indices into
// [0, Count()-1]. It never fails.
func ByIndex(i int) Descriptor {
	if i < 0 {
		i = 0
	}
	if i >= len(catalog) {
		i = len(catalog) - 1
	}
	return catalog[i]
}

// ByName looks up an effect by name, case-insensitively.
func ByName(name string) (Descriptor, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range catalog {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// All returns a copy of the catalog in index order.
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog[:])
	return out
}
