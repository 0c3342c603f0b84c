package graphics

// Context defines the interface for an OpenGL context host.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	// GetFramebufferSize returns the current backing-buffer size in pixels.
	GetFramebufferSize() (int, int)
	Time() float64
}

// Surface is the drawable the runtime sizes and renders into. Layout size is
// in CSS-equivalent units; the buffer size is the physical pixel resolution.
// Only the surface sizing controller mutates the buffer dimensions.
type Surface interface {
	LayoutSize() (float64, float64)
	DevicePixelRatio() float64
	BufferSize() (int, int)
	SetBufferSize(width, height int)
}

// Environment describes host capabilities, decided once at construction
// instead of probed ad hoc inside the runtime.
type Environment struct {
	// HasContext reports whether a GPU context can be acquired at all.
	HasContext bool
	// HasResizeObserver reports whether the host delivers layout resize
	// events. Without it the sizing controller polls each tick.
	HasResizeObserver bool
	// DPROverride, when > 0, takes precedence over the surface's live
	// device pixel ratio reading. Hosts use it to pin the ratio on drivers
	// where high-DPR backing buffers are unstable.
	DPROverride float64
}
