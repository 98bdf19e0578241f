package entity

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/samdwyer/noxistown/internal/config"
	"github.com/samdwyer/noxistown/internal/gamedata"
	"github.com/samdwyer/noxistown/internal/world"
)

// Line is one dialog line returned by talking to an NPC. Text may hold
// several pages separated by '|'.
type Line struct {
	Speaker string
	Text    string
	Shop    bool // Open the upgrade shop once the line is read
}

// NPC is a townsperson. Outdoor NPCs wander; indoor ones stand still.
type NPC struct {
	ID     string
	Name   string
	Color  color.RGBA // Fallback marker color
	Home   string     // gamedata.HomeOutside or an interior ID
	Shop   bool
	Sprite string // Optional image path

	X, Y   float64 // Top-left in the coordinates of the NPC's location
	W, H   float64
	Speed  float64
	Facing Direction

	// Wandering is true only while the NPC is on the outdoor map and free
	// to roam. Interiors freeze their resident.
	Wandering bool

	// SpriteReady is set once the sprite image has loaded. Until then
	// renderers draw a colored marker.
	SpriteReady bool

	dialogs []string
	cursor  int

	moving      bool
	wanderTimer time.Duration
	pause       time.Duration
	jitter      time.Duration
	leash       float64
	rng         *rand.Rand

	outdoorX, outdoorY float64
}

// NewNPC creates an NPC from its roster entry. The NPC wanders if it lives
// outside. rng drives the wander choices.
func NewNPC(cfg config.Config, def *gamedata.NPCDef, rng *rand.Rand) *NPC {
	return &NPC{
		ID:        def.ID,
		Name:      def.Name,
		Color:     def.RGBA(),
		Home:      def.Home,
		Shop:      def.Shop,
		Sprite:    def.Sprite,
		X:         def.X,
		Y:         def.Y,
		W:         cfg.NPCSize,
		H:         cfg.NPCSize,
		Speed:     cfg.NPCSpeed,
		Facing:    DirDown,
		Wandering: def.LivesOutside(),
		dialogs:   def.Dialogs,
		pause:     cfg.NPCWanderPause,
		jitter:    cfg.NPCWanderJitter,
		leash:     cfg.NPCLeashMargin,
		rng:       rng,
		outdoorX:  def.X,
		outdoorY:  def.Y,
	}
}

// Rect returns the NPC's hitbox.
func (n *NPC) Rect() world.Rect {
	return world.Rect{X: n.X, Y: n.Y, W: n.W, H: n.H}
}

// SetPosition moves the NPC without collision checks.
func (n *NPC) SetPosition(x, y float64) {
	n.X, n.Y = x, y
}

// LivesOutside reports whether the NPC's home is the outdoor map.
func (n *NPC) LivesOutside() bool {
	return n.Home == gamedata.HomeOutside
}

// WanderTimer returns the time left before the next wander choice.
func (n *NPC) WanderTimer() time.Duration {
	return n.wanderTimer
}

// Update advances the wander behaviour by dt against area. It does nothing
// unless the NPC is wandering.
//
// A move that is blocked, or that would leave the leash rectangle inset from
// the area bounds, leaves the NPC in place and expires the wander timer so the
// next update picks a fresh direction.
func (n *NPC) Update(dt time.Duration, area world.Area) Outcome {
	if !n.Wandering {
		return Still
	}

	n.wanderTimer -= dt
	if n.wanderTimer <= 0 {
		n.chooseWander()
	}
	if !n.moving {
		return Still
	}

	dx, dy := n.Facing.Delta()
	next, out := Resolve(area, n.Rect(), dx*n.Speed, dy*n.Speed)
	if out == Blocked || !n.inLeash(area, next) {
		n.wanderTimer = 0
		return Blocked
	}
	n.X, n.Y = next.X, next.Y
	return out
}

// chooseWander picks uniformly among the four directions and a pause. A
// pause keeps the current facing.
func (n *NPC) chooseWander() {
	choice := n.rng.Intn(len(Directions) + 1)
	if choice < len(Directions) {
		n.Facing = Directions[choice]
		n.moving = true
	} else {
		n.moving = false
	}
	n.wanderTimer = n.pause + time.Duration(n.rng.Float64()*float64(n.jitter))
}

func (n *NPC) inLeash(area world.Area, r world.Rect) bool {
	l := area.Bounds().Inset(n.leash)
	return r.X > l.X && r.X < l.Right() && r.Y > l.Y && r.Y < l.Bottom()
}

// CanInteract reports whether the player is within talking range: the
// Euclidean distance between hitbox centers is under rng.
func (n *NPC) CanInteract(player world.Rect, rng float64) bool {
	px, py := player.Center()
	nx, ny := n.Rect().Center()
	return math.Hypot(px-nx, py-ny) < rng
}

// Interact returns the current dialog line and advances the cursor, looping
// back to the first line after the last. ok is false if the NPC has nothing
// to say.
func (n *NPC) Interact() (line Line, ok bool) {
	if len(n.dialogs) == 0 {
		return Line{}, false
	}
	text := n.dialogs[n.cursor]
	n.cursor = (n.cursor + 1) % len(n.dialogs)
	return Line{Speaker: n.Name, Text: text, Shop: n.Shop}, true
}

// DialogCount returns the number of dialog lines.
func (n *NPC) DialogCount() int {
	return len(n.dialogs)
}

// MarkSpriteReady records that the sprite image loaded and resizes the
// hitbox to the image.
func (n *NPC) MarkSpriteReady(w, h float64) {
	n.SpriteReady = true
	n.W, n.H = w, h
}

// GoInside freezes the NPC at (x, y) in an interior, remembering where it
// stood outside.
func (n *NPC) GoInside(x, y float64) {
	if n.Wandering {
		n.outdoorX, n.outdoorY = n.X, n.Y
	}
	n.Wandering = false
	n.moving = false
	n.X, n.Y = x, y
}

// GoOutside puts the NPC back where it last stood outside. Only NPCs that
// live outside resume wandering.
func (n *NPC) GoOutside() {
	n.X, n.Y = n.outdoorX, n.outdoorY
	n.Wandering = n.LivesOutside()
	n.wanderTimer = 0
}
