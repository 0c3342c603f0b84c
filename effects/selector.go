package effects

import "math/rand"

// ResolveOptions controls how an effect is chosen. Priority, highest first:
// Index override (clamped, never errors), Name override (case-insensitive;
// an unmatched name falls back to random), seeded selection when a Seed is
// present, then uniform random. A seed selects deterministically unless
// RandomEffect opts out.
type ResolveOptions struct {
	Index        *int
	Name         string
	Seed         *float64
	RandomEffect bool       // opt out of seeded selection and draw uniformly
	Rand         *rand.Rand // randomness source for the fallback paths; nil uses the global source
}

// SeedHash maps a numeric seed to a 32-bit avalanche-mixed hash. lane
// decorrelates multiple draws taken from the same seed; lane 0 is the
// canonical selection hash.
func SeedHash(seed float64, lane uint32) uint32 {
	q := uint32(int32(seed * 1000))
	return mix32(q + lane*0x9e3779b9)
}

// mix32 is a 32-bit integer avalanche (finalizer-style) mix.
func mix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x45d9f3b
	h ^= h >> 16
	h *= 0x45d9f3b
	h ^= h >> 16
	return h
}

// SeedIndex returns the catalog index a seed deterministically selects.
func SeedIndex(seed float64) int {
	return int(SeedHash(seed, 0) % uint32(len(catalog)))
}

// Resolve picks an effect per the documented priority. It never fails; every
// input, valid or not, maps to some catalog entry.
func Resolve(opts ResolveOptions) Descriptor {
	if opts.Index != nil {
		return ByIndex(*opts.Index)
	}
	if opts.Name != "" {
		if d, ok := ByName(opts.Name); ok {
			return d
		}
		return catalog[randIntn(opts.Rand, len(catalog))]
	}
	if opts.Seed != nil && !opts.RandomEffect {
		return catalog[SeedIndex(*opts.Seed)]
	}
	return catalog[randIntn(opts.Rand, len(catalog))]
}

func randIntn(r *rand.Rand, n int) int {
	if r != nil {
		return r.Intn(n)
	}
	return rand.Intn(n)
}
