package world

// InteriorSuffix joins a building ID to the ID of its interior.
const InteriorSuffix = "_interior"

// InteriorID returns the interior key for a building.
func InteriorID(buildingID string) string {
	return buildingID + InteriorSuffix
}

// Building is a solid footprint on the outdoor map with a door on its
// bottom edge.
type Building struct {
	ID    string
	Rect  Rect    // Footprint in world pixels
	DoorX float64 // Door anchor, on the bottom edge of Rect
	DoorY float64
	Large bool
}

// Door is a trigger point. Outdoor doors lead into an interior; an interior's
// exit door has Exit set and leads back outside.
type Door struct {
	ID     string // Building the door belongs to
	X, Y   float64
	Target string // Interior ID for outdoor doors, empty for exits
	Exit   bool
}

// Furniture is a rect inside an interior. Walkable furniture (rugs) is drawn
// but never blocks.
type Furniture struct {
	Kind     string
	Rect     Rect
	Walkable bool
}

// Interior is an indoor location with its own coordinate space anchored at
// (0,0). The top tile row is wall.
type Interior struct {
	ID         string
	BuildingID string
	Width      float64
	Height     float64
	ExitX      float64
	ExitY      float64
	Furniture  []Furniture

	// Resident is the NPC pulled inside while the player is here, if any.
	Resident  string
	ResidentX float64
	ResidentY float64

	tileSize float64
}

// Bounds returns the interior rectangle in its own coordinates.
func (in *Interior) Bounds() Rect {
	return Rect{W: in.Width, H: in.Height}
}

// wallBand returns the blocking strip along the top of the room.
func (in *Interior) wallBand() Rect {
	return Rect{W: in.Width, H: in.tileSize}
}

// IsSolid reports whether the box leaves the room, touches the top wall, or
// overlaps solid furniture.
func (in *Interior) IsSolid(x, y, w, h float64) bool {
	box := Rect{X: x, Y: y, W: w, H: h}
	if x < 0 || y < 0 || box.Right() > in.Width || box.Bottom() > in.Height {
		return true
	}
	if box.Intersects(in.wallBand()) {
		return true
	}
	for _, f := range in.Furniture {
		if !f.Walkable && box.Intersects(f.Rect) {
			return true
		}
	}
	return false
}

// TileAt returns the interior tile under a point, for rendering.
func (in *Interior) TileAt(x, y float64) Tile {
	if !in.Bounds().Contains(x, y) {
		return TileInteriorWall
	}
	if y < in.tileSize {
		return TileInteriorWall
	}
	if in.exitCell().Contains(x, y) {
		return TileDoor
	}
	for _, f := range in.Furniture {
		if !f.Walkable && f.Rect.Contains(x, y) {
			return TileFurniture
		}
	}
	return TileInteriorFloor
}

// exitCell is the tile cell drawn as the exit door.
func (in *Interior) exitCell() Rect {
	return Rect{X: in.ExitX - in.tileSize/2, Y: in.ExitY, W: in.tileSize, H: in.tileSize}
}

// ExitDoor returns the interior's exit door.
func (in *Interior) ExitDoor() Door {
	return Door{ID: in.BuildingID, X: in.ExitX, Y: in.ExitY, Exit: true}
}

// DoorNear returns the exit door if the box center is within one tile of it
// on both axes.
func (in *Interior) DoorNear(x, y, w, h float64) (Door, bool) {
	door := in.ExitDoor()
	if withinTile(Rect{X: x, Y: y, W: w, H: h}, door, in.tileSize) {
		return door, true
	}
	return Door{}, false
}

// Spawn returns where a w×h box is placed on entry: centered on the exit
// door horizontally, its center half a tile above the door.
func (in *Interior) Spawn(w, h float64) Rect {
	cy := in.ExitY - in.tileSize/2
	return Rect{X: in.ExitX - w/2, Y: cy - h/2, W: w, H: h}
}

// withinTile is the door tolerance test: independent per-axis distance from
// the box center, each strictly less than one tile.
func withinTile(box Rect, door Door, tileSize float64) bool {
	cx, cy := box.Center()
	dx := cx - door.X
	if dx < 0 {
		dx = -dx
	}
	dy := cy - door.Y
	if dy < 0 {
		dy = -dy
	}
	return dx < tileSize && dy < tileSize
}
