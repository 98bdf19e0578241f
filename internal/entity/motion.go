package entity

import "github.com/samdwyer/noxistown/internal/world"

// Outcome reports how a requested move was resolved.
type Outcome int

const (
	Still   Outcome = iota // No displacement was requested
	Moved                  // Full displacement applied
	SlidX                  // Only the X component applied
	SlidY                  // Only the Y component applied
	Blocked                // Nothing applied
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Still:
		return "still"
	case Moved:
		return "moved"
	case SlidX:
		return "slid-x"
	case SlidY:
		return "slid-y"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Resolve moves box by (dx, dy) against area's solidity and returns the new
// box clamped into the area bounds.
//
// The order is fixed: the full move first, then X alone, then Y alone. Trying
// X before Y decides which wall an entity hugs on a diagonal, so callers rely
// on it. Single-axis moves have nothing to slide along and go straight from
// the full move to Blocked.
func Resolve(area world.Area, box world.Rect, dx, dy float64) (world.Rect, Outcome) {
	bounds := area.Bounds()
	if dx == 0 && dy == 0 {
		return box.ClampInto(bounds), Still
	}

	if next := box.Offset(dx, dy); !solid(area, next) {
		return next.ClampInto(bounds), Moved
	}

	if dx != 0 && dy != 0 {
		if next := box.Offset(dx, 0); !solid(area, next) {
			return next.ClampInto(bounds), SlidX
		}
		if next := box.Offset(0, dy); !solid(area, next) {
			return next.ClampInto(bounds), SlidY
		}
	}

	return box.ClampInto(bounds), Blocked
}

func solid(area world.Area, r world.Rect) bool {
	return area.IsSolid(r.X, r.Y, r.W, r.H)
}
