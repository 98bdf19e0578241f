// Package input turns key-down and key-up events into the boolean flags the
// frame update reads.
//
// Flags are last-writer-wins: several presses of a key between two frames
// collapse into one held key and at most one edge. Movement only cares
// whether a key is held, so the lost count does not matter.
package input

import "github.com/samdwyer/noxistown/internal/entity"

// Key is a logical game key. Frontends map their physical keys onto these.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyInteract
	KeyCancel
	KeyQuit
	keyCount
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyInteract:
		return "interact"
	case KeyCancel:
		return "cancel"
	case KeyQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// direction returns the facing a movement key selects.
func (k Key) direction() (entity.Direction, bool) {
	switch k {
	case KeyUp:
		return entity.DirUp, true
	case KeyDown:
		return entity.DirDown, true
	case KeyLeft:
		return entity.DirLeft, true
	case KeyRight:
		return entity.DirRight, true
	default:
		return 0, false
	}
}

// KeyState holds held flags plus unconsumed rising edges.
type KeyState struct {
	held  [keyCount]bool
	edges [keyCount]bool

	facing    entity.Direction
	hasFacing bool
}

// Press records a key-down. Only the transition from released to held
// produces an edge, so key repeat does not re-trigger interact.
func (s *KeyState) Press(k Key) {
	if k < 0 || k >= keyCount {
		return
	}
	if !s.held[k] {
		s.edges[k] = true
	}
	s.held[k] = true
	if d, ok := k.direction(); ok {
		s.facing, s.hasFacing = d, true
	}
}

// Release records a key-up.
func (s *KeyState) Release(k Key) {
	if k < 0 || k >= keyCount {
		return
	}
	s.held[k] = false
}

// Held reports whether a key is down.
func (s *KeyState) Held(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	return s.held[k]
}

// Consume reports and clears the pending edge for a key.
func (s *KeyState) Consume(k Key) bool {
	if k < 0 || k >= keyCount || !s.edges[k] {
		return false
	}
	s.edges[k] = false
	return true
}

// ConsumeInteract reports a pending interact press, at most once per press.
func (s *KeyState) ConsumeInteract() bool {
	return s.Consume(KeyInteract)
}

// ConsumeCancel reports a pending cancel press.
func (s *KeyState) ConsumeCancel() bool {
	return s.Consume(KeyCancel)
}

// Intent builds this frame's movement request from the held flags.
func (s *KeyState) Intent() entity.Intent {
	return entity.Intent{
		Up:        s.held[KeyUp],
		Down:      s.held[KeyDown],
		Left:      s.held[KeyLeft],
		Right:     s.held[KeyRight],
		Facing:    s.facing,
		HasFacing: s.hasFacing,
	}
}

// EndFrame drops edges nobody consumed this frame.
func (s *KeyState) EndFrame() {
	s.edges = [keyCount]bool{}
}

// Reset releases every key, e.g. when the window loses focus.
func (s *KeyState) Reset() {
	*s = KeyState{facing: s.facing, hasFacing: s.hasFacing}
}
