package gamedata

import "image/color"

// HomeOutside marks an NPC that lives on the outdoor map.
const HomeOutside = "outside"

// NPCDef defines a townsperson loaded from JSON.
type NPCDef struct {
	ID      string   `json:"id"`      // Unique identifier (e.g., "SCIENTIST")
	Name    string   `json:"name"`    // Speaker name shown in dialog
	Color   string   `json:"color"`   // Hex color of the fallback marker
	Home    string   `json:"home"`    // "outside" or an interior ID
	X       float64  `json:"x"`       // Outdoor spawn, ignored for indoor NPCs
	Y       float64  `json:"y"`
	Shop    bool     `json:"shop"`    // Talking opens the upgrade shop
	Sprite  string   `json:"sprite"`  // Optional image path
	Dialogs []string `json:"dialogs"` // Lines, pages separated by '|'
}

// RGBA returns the marker color, white if the hex code is malformed.
func (d *NPCDef) RGBA() color.RGBA {
	c, err := ParseHexColor(d.Color)
	if err != nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return c
}

// LivesOutside reports whether the NPC wanders the outdoor map.
func (d *NPCDef) LivesOutside() bool {
	return d.Home == HomeOutside
}

// NPCsFile represents the structure of npcs.json.
type NPCsFile struct {
	NPCs []NPCDef `json:"npcs"`
}

// LoadNPCs loads NPC definitions from the embedded npcs.json file.
func LoadNPCs() ([]NPCDef, error) {
	file, err := Load[NPCsFile]("npcs.json")
	if err != nil {
		return nil, err
	}
	return file.NPCs, nil
}
