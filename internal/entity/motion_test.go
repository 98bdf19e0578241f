package entity

import (
	"context"
	"testing"

	"github.com/samdwyer/noxistown/internal/config"
	"github.com/samdwyer/noxistown/internal/world"
)

// openArea is an unbounded-solidity area: only the listed walls block.
type openArea struct {
	bounds world.Rect
	walls  []world.Rect
}

func (a openArea) Bounds() world.Rect { return a.bounds }

func (a openArea) IsSolid(x, y, w, h float64) bool {
	box := world.Rect{X: x, Y: y, W: w, H: h}
	for _, wall := range a.walls {
		if box.Intersects(wall) {
			return true
		}
	}
	return false
}

func TestResolve(t *testing.T) {
	bounds := world.Rect{W: 100, H: 100}
	box := world.Rect{X: 10, Y: 10, W: 10, H: 10}

	tests := []struct {
		name   string
		walls  []world.Rect
		dx, dy float64
		want   world.Rect
		out    Outcome
	}{
		{"open diagonal", nil, 2, 2, world.Rect{X: 12, Y: 12, W: 10, H: 10}, Moved},
		{"floor below slides along X", []world.Rect{{X: 0, Y: 20, W: 100, H: 5}}, 2, 2, world.Rect{X: 12, Y: 10, W: 10, H: 10}, SlidX},
		{"wall right slides along Y", []world.Rect{{X: 20, Y: 0, W: 5, H: 100}}, 2, 2, world.Rect{X: 10, Y: 12, W: 10, H: 10}, SlidY},
		{"corner blocks", []world.Rect{{X: 0, Y: 20, W: 100, H: 5}, {X: 20, Y: 0, W: 5, H: 100}}, 2, 2, box, Blocked},
		{"diagonal pillar prefers X", []world.Rect{{X: 20, Y: 20, W: 10, H: 10}}, 2, 2, world.Rect{X: 12, Y: 10, W: 10, H: 10}, SlidX},
		{"single axis into wall", []world.Rect{{X: 20, Y: 0, W: 5, H: 100}}, 2, 0, box, Blocked},
		{"no displacement", nil, 0, 0, box, Still},
	}

	for _, tt := range tests {
		area := openArea{bounds: bounds, walls: tt.walls}
		got, out := Resolve(area, box, tt.dx, tt.dy)
		if got != tt.want || out != tt.out {
			t.Errorf("%s: Resolve = %+v %v, want %+v %v", tt.name, got, out, tt.want, tt.out)
		}
	}
}

func TestResolveClampsToBounds(t *testing.T) {
	area := openArea{bounds: world.Rect{W: 100, H: 100}}
	got, out := Resolve(area, world.Rect{X: 88, Y: 2, W: 10, H: 10}, 4, -4)
	want := world.Rect{X: 90, Y: 0, W: 10, H: 10}
	if got != want || out != Moved {
		t.Errorf("Resolve = %+v %v, want %+v moved", got, out, want)
	}
}

// A player walking diagonally along a row of trees keeps sliding in X and
// never moves in Y.
func TestCorridorSlide(t *testing.T) {
	cfg := config.Default()
	layout := world.Layout{Rules: []world.Rule{world.Region("hedge", world.TileTree, 0, 5, 31, 5)}}
	grid := world.NewGrid(context.Background(), cfg, layout)

	p := NewPlayer(cfg)
	p.X, p.Y = 100, 5*grid.TileSize-p.H-1
	startY := p.Y

	for i := 0; i < 10; i++ {
		startX := p.X
		out := p.Update(grid, Intent{Down: true, Right: true})
		if out != SlidX {
			t.Fatalf("step %d: outcome = %v, want slid-x", i, out)
		}
		if p.Y != startY {
			t.Fatalf("step %d: Y moved to %v, want %v", i, p.Y, startY)
		}
		if p.X != startX+p.Speed {
			t.Fatalf("step %d: X = %v, want %v", i, p.X, startX+p.Speed)
		}
	}
}

func TestPlayerUpdate(t *testing.T) {
	cfg := config.Default()
	area := openArea{bounds: world.Rect{W: 1000, H: 1000}}
	p := NewPlayer(cfg)

	if p.Facing != DirDown {
		t.Errorf("initial facing = %v, want down", p.Facing)
	}

	x, y := p.X, p.Y
	if out := p.Update(area, Intent{Left: true, Right: true, Facing: DirRight, HasFacing: true}); out != Still {
		t.Errorf("opposing keys: outcome = %v, want still", out)
	}
	if p.X != x || p.Y != y {
		t.Errorf("opposing keys moved the player to (%v,%v)", p.X, p.Y)
	}
	if p.Facing != DirRight {
		t.Errorf("facing = %v, want right", p.Facing)
	}

	p.Update(area, Intent{Up: true})
	if p.Y != y-p.Speed {
		t.Errorf("Y = %v, want %v", p.Y, y-p.Speed)
	}
	if p.Facing != DirRight {
		t.Errorf("facing changed without a new press: %v", p.Facing)
	}
}

func TestInteractionPoint(t *testing.T) {
	p := &Player{X: 100, Y: 100, W: 24, H: 32}

	tests := []struct {
		facing Direction
		x, y   float64
	}{
		{DirUp, 112, 60},
		{DirDown, 112, 172},
		{DirLeft, 60, 116},
		{DirRight, 164, 116},
	}
	for _, tt := range tests {
		p.Facing = tt.facing
		if x, y := p.InteractionPoint(40); x != tt.x || y != tt.y {
			t.Errorf("%v: InteractionPoint = (%v,%v), want (%v,%v)", tt.facing, x, y, tt.x, tt.y)
		}
	}
}
