// Package world provides the town tile grid, buildings, interiors and the
// collision queries entities move against.
package world

// Tile represents a single map tile.
type Tile uint8

const (
	TileGrass Tile = iota
	TilePath
	TileTree
	TileWater
	TileBuilding
	TileDoor
	TileInteriorFloor
	TileInteriorWall
	TileFurniture
)

// TileBlocked is what every out-of-bounds query resolves to.
const TileBlocked = TileTree

// IsSolid returns true if the tile blocks movement when sampled.
// Building footprints are not solid here: the outdoor map blocks them by
// rectangle overlap instead.
func (t Tile) IsSolid() bool {
	switch t {
	case TileTree, TileWater, TileInteriorWall, TileFurniture:
		return true
	default:
		return false
	}
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileGrass:
		return "grass"
	case TilePath:
		return "path"
	case TileTree:
		return "tree"
	case TileWater:
		return "water"
	case TileBuilding:
		return "building"
	case TileDoor:
		return "door"
	case TileInteriorFloor:
		return "floor"
	case TileInteriorWall:
		return "wall"
	case TileFurniture:
		return "furniture"
	default:
		return "unknown"
	}
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	switch t {
	case TileGrass:
		return '.'
	case TilePath:
		return ':'
	case TileTree:
		return '♣'
	case TileWater:
		return '~'
	case TileBuilding:
		return '#'
	case TileDoor:
		return '+'
	case TileInteriorFloor:
		return ' '
	case TileInteriorWall:
		return '='
	case TileFurniture:
		return '%'
	default:
		return '?'
	}
}
