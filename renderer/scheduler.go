package renderer

// FrameContext is produced fresh on every running tick and handed to the
// dynamic-uniform path. It is never persisted.
type FrameContext struct {
	// Time is seconds of accumulated running time since (re)start; paused
	// spans are excluded.
	Time       float64
	DT         float64
	FrameIndex int
}

type schedulerState int

const (
	schedIdle schedulerState = iota
	schedRunning
	schedPaused
	schedStopped
)

// Scheduler drives the play/pause animation state machine. The host supplies
// the vsync-aligned heartbeat by calling Tick with its clock reading; the
// scheduler decides whether that tick produces a frame.
//
// Idle → Running ⇄ Paused → Stopped. Stopped is terminal: a stopped
// scheduler never ticks again and cannot be restarted, which guards against
// stale closures firing after disposal.
type Scheduler struct {
	state    schedulerState
	time     float64
	last     float64
	haveLast bool
	frame    int
	lastCtx  FrameContext
	haveCtx  bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{state: schedIdle}
}

// Start transitions Idle → Running. The first tick after Start has dt=0.
func (s *Scheduler) Start() {
	if s.state == schedIdle {
		s.state = schedRunning
		s.haveLast = false
	}
}

// SetPlaying pauses or resumes. Resuming computes the next dt from "now":
// there is no catch-up burst for the paused duration. Calls on a stopped
// scheduler are ignored.
func (s *Scheduler) SetPlaying(playing bool) {
	switch {
	case s.state == schedRunning && !playing:
		s.state = schedPaused
		s.haveLast = false
	case s.state == schedPaused && playing:
		s.state = schedRunning
	case s.state == schedIdle && playing:
		s.Start()
	}
}

func (s *Scheduler) Playing() bool {
	return s.state == schedRunning
}

func (s *Scheduler) Paused() bool {
	return s.state == schedPaused
}

// Stop is terminal; any tick arriving afterwards is rejected.
func (s *Scheduler) Stop() {
	s.state = schedStopped
}

func (s *Scheduler) Stopped() bool {
	return s.state == schedStopped
}

// Tick advances the clock when running. now is the host's monotonic reading
// in seconds. Returns false when the scheduler is not running, in which case
// the FrameContext is zero and must not be used.
func (s *Scheduler) Tick(now float64) (FrameContext, bool) {
	if s.state != schedRunning {
		return FrameContext{}, false
	}
	dt := 0.0
	if s.haveLast {
		dt = now - s.last
		if dt < 0 {
			dt = 0
		}
	}
	s.last = now
	s.haveLast = true
	s.time += dt

	ctx := FrameContext{Time: s.time, DT: dt, FrameIndex: s.frame}
	s.frame++
	s.lastCtx = ctx
	s.haveCtx = true
	return ctx, true
}

// Frozen returns the last produced frame context, used to re-present the
// last frame while paused on hosts whose swap discards the backbuffer.
func (s *Scheduler) Frozen() (FrameContext, bool) {
	return s.lastCtx, s.haveCtx
}
