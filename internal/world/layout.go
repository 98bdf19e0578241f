package world

// Rule assigns a tile to every grid cell it matches. Rules are tried in
// order; the first match wins.
type Rule struct {
	Name  string
	Tile  Tile
	Match func(col, row, cols, rows int) bool
}

// Layout is the static description a Grid is built from.
type Layout struct {
	Rules     []Rule // Cells matching no rule are grass
	Buildings []Building
	Interiors []*Interior
}

// Region builds a rule covering cells [col0..col1] × [row0..row1].
func Region(name string, tile Tile, col0, row0, col1, row1 int) Rule {
	return Rule{
		Name: name,
		Tile: tile,
		Match: func(col, row, _, _ int) bool {
			return col >= col0 && col <= col1 && row >= row0 && row <= row1
		},
	}
}

// Band builds a rule covering rows [row0..row1] across the full grid width.
func Band(name string, tile Tile, row0, row1 int) Rule {
	return Rule{
		Name: name,
		Tile: tile,
		Match: func(_, row, _, _ int) bool {
			return row >= row0 && row <= row1
		},
	}
}

// Border builds a rule that fills the outer ring of the grid. The top edge
// is thicker to frame the town.
func Border(top, sides, bottom int) Rule {
	return Rule{
		Name: "border",
		Tile: TileTree,
		Match: func(col, row, cols, rows int) bool {
			return row < top || col < sides || col >= cols-sides || row >= rows-bottom
		},
	}
}

// NoxisTown returns the fixed layout of the town. Coordinates are given in
// tiles and scaled by tileSize.
func NoxisTown(tileSize int) Layout {
	t := float64(tileSize)

	rules := []Rule{
		Border(4, 2, 2),
		Region("pond", TileWater, 3, 28, 7, 33),
		Band("main street", TilePath, 13, 15),

		Region("house1 lane", TilePath, 10, 5, 11, 13),
		Region("house1 porch", TilePath, 8, 11, 11, 12),
		Region("house2 lane", TilePath, 20, 5, 21, 13),
		Region("house2 porch", TilePath, 18, 11, 21, 12),
		Region("mart lane", TilePath, 11, 15, 12, 16),
		Region("mart porch", TilePath, 8, 22, 12, 23),
		Region("home lane", TilePath, 20, 15, 21, 22),
		Region("home porch", TilePath, 18, 27, 21, 28),
	}

	building := func(id string, col, row, w, h int, doorCol float64, large bool) Building {
		r := Rect{X: float64(col) * t, Y: float64(row) * t, W: float64(w) * t, H: float64(h) * t}
		return Building{ID: id, Rect: r, DoorX: doorCol * t, DoorY: r.Bottom(), Large: large}
	}

	buildings := []Building{
		building("house1", 8, 6, 6, 5, 10.5, false),
		building("house2", 18, 6, 6, 5, 20.5, false),
		building("house3", 18, 22, 5, 5, 20.5, false),
		building("building1", 8, 16, 8, 6, 11.5, true),
	}

	furniture := func(kind string, col, row, w, h int) Furniture {
		return Furniture{
			Kind:     kind,
			Rect:     Rect{X: float64(col) * t, Y: float64(row) * t, W: float64(w) * t, H: float64(h) * t},
			Walkable: kind == "rug",
		}
	}

	room := func(buildingID string, cols, rows int, exitCol, exitRow float64, items ...Furniture) *Interior {
		return &Interior{
			ID:         InteriorID(buildingID),
			BuildingID: buildingID,
			Width:      float64(cols) * t,
			Height:     float64(rows) * t,
			ExitX:      exitCol * t,
			ExitY:      exitRow * t,
			Furniture:  items,
			tileSize:   t,
		}
	}

	house1 := room("house1", 13, 10, 6.5, 9,
		furniture("bed", 2, 2, 2, 2),
		furniture("table", 8, 3, 2, 1),
		furniture("rug", 5, 4, 3, 2),
	)
	house1.Resident, house1.ResidentX, house1.ResidentY = "YELLOW", 10*t, 6*t

	house2 := room("house2", 13, 10, 6.5, 9,
		furniture("bed", 9, 2, 2, 2),
		furniture("bookshelf", 2, 2, 1, 2),
		furniture("rug", 5, 5, 3, 2),
	)
	house2.Resident, house2.ResidentX, house2.ResidentY = "GREEN", 3*t, 6*t

	house3 := room("house3", 13, 10, 6.5, 9,
		furniture("bed", 2, 2, 2, 2),
		furniture("table", 8, 2, 2, 1),
		furniture("chair", 8, 3, 1, 1),
		furniture("rug", 5, 5, 3, 2),
	)
	house3.Resident, house3.ResidentX, house3.ResidentY = "HOUSE_KEEPER", 10*t, 5*t

	mart := room("building1", 16, 10, 8, 9,
		furniture("counter", 3, 2, 4, 1),
		furniture("counter", 9, 2, 4, 1),
		furniture("rug", 6, 6, 4, 2),
	)
	// Shopkeeper stands in the gap between the two counters
	mart.Resident, mart.ResidentX, mart.ResidentY = "SHOPKEEPER", 7*t+4, 2*t+4

	return Layout{
		Rules:     rules,
		Buildings: buildings,
		Interiors: []*Interior{house1, house2, house3, mart},
	}
}
