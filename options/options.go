package options

// Options carries the flag-backed configuration for the viewer binary.
type Options struct {
	Effect      *string // effect name override; "" selects by seed
	EffectIndex *int    // numeric effect override; -1 disables
	Depth       *int
	Resolution  *float64
	Seed        *float64
	Speed       *float64

	Strategy *string // palette strategy
	Mode     *string // light or dark
	Anchor   *string // anchor color hex for derived palettes

	Width       *int
	Height      *int
	DPROverride *float64
	Still       *bool

	// Recording options
	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
}
