package overlay

// Phase is the stage of a fade.
type Phase int

const (
	FadeDone Phase = iota // No fade running
	FadeOut               // Darkening towards the midpoint
	FadeIn                // Brightening after the midpoint
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case FadeDone:
		return "done"
	case FadeOut:
		return "out"
	case FadeIn:
		return "in"
	default:
		return "unknown"
	}
}

// Fade is a fade-to-black and back, counted in frames. The screen is fully
// dark at the midpoint, which is when the caller swaps locations.
type Fade struct {
	total    int
	elapsed  int
	midpoint int
	fired    bool
}

// Start begins a fade lasting ticks frames. A running fade is restarted.
func (f *Fade) Start(ticks int) {
	f.total = max(2, ticks)
	f.midpoint = f.total / 2
	f.elapsed = 0
	f.fired = false
}

// Active reports whether a fade is running.
func (f *Fade) Active() bool {
	return f.elapsed < f.total
}

// Tick advances the fade one frame. midpoint is true on exactly one tick
// per fade.
func (f *Fade) Tick() (phase Phase, midpoint bool) {
	if !f.Active() {
		return FadeDone, false
	}
	f.elapsed++
	if !f.fired && f.elapsed >= f.midpoint {
		f.fired = true
		midpoint = true
	}
	return f.Phase(), midpoint
}

// Phase returns the current stage.
func (f *Fade) Phase() Phase {
	switch {
	case !f.Active():
		return FadeDone
	case f.elapsed < f.midpoint:
		return FadeOut
	default:
		return FadeIn
	}
}

// Alpha returns the black overlay opacity in [0,1].
func (f *Fade) Alpha() float64 {
	switch f.Phase() {
	case FadeOut:
		return float64(f.elapsed) / float64(f.midpoint)
	case FadeIn:
		return float64(f.total-f.elapsed) / float64(f.total-f.midpoint)
	default:
		return 0
	}
}
