package entity

import (
	"github.com/samdwyer/noxistown/internal/config"
	"github.com/samdwyer/noxistown/internal/world"
)

// Intent is one frame's movement request, built from held key flags.
type Intent struct {
	Up, Down, Left, Right bool

	// Facing is the most recently pressed direction, valid if HasFacing.
	Facing    Direction
	HasFacing bool
}

// Delta returns the unit displacement of the held flags. Opposing keys
// cancel out.
func (in Intent) Delta() (float64, float64) {
	var dx, dy float64
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	return dx, dy
}

// Player is the avatar the user controls.
type Player struct {
	X, Y   float64 // Top-left in the active location's coordinates
	W, H   float64
	Speed  float64 // Pixels per frame
	Facing Direction
}

// NewPlayer creates a player at the configured start position, facing down.
func NewPlayer(cfg config.Config) *Player {
	return &Player{
		X:      cfg.PlayerStartX,
		Y:      cfg.PlayerStartY,
		W:      cfg.PlayerWidth,
		H:      cfg.PlayerHeight,
		Speed:  cfg.PlayerSpeed,
		Facing: DirDown,
	}
}

// Rect returns the player's hitbox.
func (p *Player) Rect() world.Rect {
	return world.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Place moves the player so its hitbox top-left is at r's top-left.
func (p *Player) Place(r world.Rect) {
	p.X, p.Y = r.X, r.Y
}

// Update applies one frame of held input against area.
func (p *Player) Update(area world.Area, in Intent) Outcome {
	if in.HasFacing {
		p.Facing = in.Facing
	}
	dx, dy := in.Delta()
	next, out := Resolve(area, p.Rect(), dx*p.Speed, dy*p.Speed)
	p.Place(next)
	return out
}

// InteractionPoint returns a point offset pixels ahead of the player in the
// facing direction. Renderers use it to place the talk prompt.
func (p *Player) InteractionPoint(offset float64) (float64, float64) {
	cx, cy := p.Rect().Center()
	switch p.Facing {
	case DirUp:
		return cx, p.Y - offset
	case DirLeft:
		return p.X - offset, cy
	case DirRight:
		return p.X + p.W + offset, cy
	default:
		return cx, p.Y + p.H + offset
	}
}
