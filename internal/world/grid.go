package world

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/noxistown/internal/config"
	"github.com/samdwyer/noxistown/internal/telemetry"
)

// Grid is the outdoor town: a tile grid plus the buildings standing on it,
// their doors, and the interiors behind them.
type Grid struct {
	Cols     int
	Rows     int
	TileSize float64
	Tiles    [][]Tile

	buildings []Building
	doors     []Door
	interiors map[string]*Interior
}

// NewGrid builds the outdoor grid from layout. Generation is deterministic:
// the same layout always yields the same tiles.
func NewGrid(ctx context.Context, cfg config.Config, layout Layout) *Grid {
	_, span := telemetry.Tracer("world").Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()

	g := &Grid{
		Cols:      cfg.WorldCols,
		Rows:      cfg.WorldRows,
		TileSize:  float64(cfg.TileSize),
		interiors: make(map[string]*Interior, len(layout.Interiors)),
	}

	g.Tiles = make([][]Tile, g.Rows)
	for row := range g.Tiles {
		g.Tiles[row] = make([]Tile, g.Cols)
		for col := range g.Tiles[row] {
			g.Tiles[row][col] = determineTile(layout.Rules, col, row, g.Cols, g.Rows)
		}
	}

	for _, b := range layout.Buildings {
		g.buildings = append(g.buildings, b)
		g.doors = append(g.doors, Door{ID: b.ID, X: b.DoorX, Y: b.DoorY, Target: InteriorID(b.ID)})
		g.stampBuilding(b)
	}

	for _, in := range layout.Interiors {
		in.tileSize = g.TileSize
		g.interiors[in.ID] = in
	}

	span.SetAttributes(
		attribute.Int("world.cols", g.Cols),
		attribute.Int("world.rows", g.Rows),
		attribute.Int("world.buildings", len(g.buildings)),
		attribute.Int("world.interiors", len(g.interiors)),
		attribute.Int64("world.generation_us", time.Since(startTime).Microseconds()),
	)

	return g
}

// determineTile runs the rule table for one cell.
func determineTile(rules []Rule, col, row, cols, rows int) Tile {
	for _, r := range rules {
		if r.Match(col, row, cols, rows) {
			return r.Tile
		}
	}
	return TileGrass
}

// stampBuilding marks the footprint cells and the door cell for rendering.
func (g *Grid) stampBuilding(b Building) {
	c0, r0 := g.cell(b.Rect.X, b.Rect.Y)
	c1, r1 := g.cell(b.Rect.Right()-1, b.Rect.Bottom()-1)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if g.inBounds(col, row) {
				g.Tiles[row][col] = TileBuilding
			}
		}
	}
	// The anchor sits on the bottom edge; the door cell is the one just above it
	dc, dr := g.cell(b.DoorX, b.DoorY-g.TileSize/2)
	if g.inBounds(dc, dr) {
		g.Tiles[dr][dc] = TileDoor
	}
}

func (g *Grid) cell(x, y float64) (int, int) {
	return int(math.Floor(x / g.TileSize)), int(math.Floor(y / g.TileSize))
}

func (g *Grid) inBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// TileAt returns the tile under a world-pixel point. Anything outside the
// grid is TileBlocked.
func (g *Grid) TileAt(x, y float64) Tile {
	col, row := g.cell(x, y)
	if !g.inBounds(col, row) {
		return TileBlocked
	}
	return g.Tiles[row][col]
}

// IsSolid reports whether a box at (x,y) of size w×h is blocked.
//
// Only five points are sampled against tiles: the four corners and the
// center. An obstacle narrower than the box can slip between samples; this
// permissiveness is kept as-is. Buildings are tested by full rectangle
// overlap.
func (g *Grid) IsSolid(x, y, w, h float64) bool {
	points := [5][2]float64{
		{x, y},
		{x + w, y},
		{x, y + h},
		{x + w, y + h},
		{x + w/2, y + h/2},
	}
	for _, p := range points {
		if g.TileAt(p[0], p[1]).IsSolid() {
			return true
		}
	}

	box := Rect{X: x, Y: y, W: w, H: h}
	for _, b := range g.buildings {
		if box.Intersects(b.Rect) {
			return true
		}
	}
	return false
}

// DoorNear returns the first door, in building order, whose anchor is within
// one tile of the box center on both axes. When two doors qualify the earlier
// one wins.
func (g *Grid) DoorNear(x, y, w, h float64) (Door, bool) {
	box := Rect{X: x, Y: y, W: w, H: h}
	for _, d := range g.doors {
		if withinTile(box, d, g.TileSize) {
			return d, true
		}
	}
	return Door{}, false
}

// Bounds returns the outdoor world rectangle.
func (g *Grid) Bounds() Rect {
	return Rect{W: float64(g.Cols) * g.TileSize, H: float64(g.Rows) * g.TileSize}
}

// Buildings returns the buildings in door iteration order.
func (g *Grid) Buildings() []Building {
	return g.buildings
}

// Doors returns the outdoor doors.
func (g *Grid) Doors() []Door {
	return g.doors
}

// Interior returns the interior with the given ID.
func (g *Grid) Interior(id string) (*Interior, bool) {
	in, ok := g.interiors[id]
	return in, ok
}

// BuildingFor returns the building an interior belongs to.
func (g *Grid) BuildingFor(interiorID string) (Building, bool) {
	for _, b := range g.buildings {
		if InteriorID(b.ID) == interiorID {
			return b, true
		}
	}
	return Building{}, false
}
