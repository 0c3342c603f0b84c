package renderer

import "testing"

func TestSchedulerFirstTickHasZeroDT(t *testing.T) {
	s := NewScheduler()
	s.Start()

	ctx, ok := s.Tick(100.0)
	if !ok {
		t.Fatalf("running scheduler rejected tick")
	}
	if ctx.DT != 0 || ctx.Time != 0 || ctx.FrameIndex != 0 {
		t.Fatalf("first tick = %+v; want dt=0 time=0 frame=0", ctx)
	}

	ctx, _ = s.Tick(100.016)
	if ctx.FrameIndex != 1 {
		t.Fatalf("frame index = %d; want 1", ctx.FrameIndex)
	}
	if ctx.DT < 0.0159 || ctx.DT > 0.0161 {
		t.Fatalf("dt = %v; want ~0.016", ctx.DT)
	}
}

func TestSchedulerIdleDoesNotTick(t *testing.T) {
	s := NewScheduler()
	if _, ok := s.Tick(1.0); ok {
		t.Fatalf("idle scheduler produced a frame")
	}
}

func TestSchedulerPauseResumeNoCatchUp(t *testing.T) {
	s := NewScheduler()
	s.Start()
	s.Tick(10.0)
	s.Tick(10.1)

	s.SetPlaying(false)
	if _, ok := s.Tick(10.2); ok {
		t.Fatalf("paused scheduler produced a frame")
	}

	// A long pause must not produce a catch-up dt on resume.
	s.SetPlaying(true)
	ctx, ok := s.Tick(60.0)
	if !ok {
		t.Fatalf("resumed scheduler rejected tick")
	}
	if ctx.DT != 0 {
		t.Fatalf("dt after resume = %v; want 0 (no catch-up burst)", ctx.DT)
	}
	ctx, _ = s.Tick(60.1)
	if ctx.DT < 0.0999 || ctx.DT > 0.1001 {
		t.Fatalf("dt after resume settle = %v; want ~0.1", ctx.DT)
	}
}

func TestSchedulerTimeExcludesPauses(t *testing.T) {
	s := NewScheduler()
	s.Start()
	s.Tick(0.0)
	ctx, _ := s.Tick(1.0)
	if ctx.Time != 1.0 {
		t.Fatalf("time = %v; want 1.0", ctx.Time)
	}

	s.SetPlaying(false)
	s.SetPlaying(true)
	s.Tick(50.0) // dt 0
	ctx, _ = s.Tick(51.0)
	if ctx.Time != 2.0 {
		t.Fatalf("time after pause = %v; want 2.0 (paused span excluded)", ctx.Time)
	}
}

func TestSchedulerStopIsTerminal(t *testing.T) {
	s := NewScheduler()
	s.Start()
	s.Tick(1.0)
	s.Stop()

	if _, ok := s.Tick(2.0); ok {
		t.Fatalf("stopped scheduler produced a frame")
	}
	s.SetPlaying(true)
	s.Start()
	if _, ok := s.Tick(3.0); ok {
		t.Fatalf("stopped scheduler restarted")
	}
	if !s.Stopped() {
		t.Fatalf("Stopped() = false after Stop")
	}
}

func TestSchedulerFrozenFrame(t *testing.T) {
	s := NewScheduler()
	if _, ok := s.Frozen(); ok {
		t.Fatalf("frozen frame reported before any tick")
	}
	s.Start()
	s.Tick(0.0)
	want, _ := s.Tick(0.5)
	s.SetPlaying(false)

	got, ok := s.Frozen()
	if !ok || got != want {
		t.Fatalf("Frozen() = %+v, %v; want %+v, true", got, ok, want)
	}
}
