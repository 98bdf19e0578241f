// Package town tracks where the player is (outdoors or inside one of the
// buildings) and moves the player and NPCs between locations.
package town

// Location is either the outdoor map or one interior. The zero value is
// Outside.
type Location struct {
	interior string
}

// Outside is the outdoor map.
var Outside = Location{}

// Inside returns the location of an interior.
func Inside(interiorID string) Location {
	return Location{interior: interiorID}
}

// IsOutside reports whether the location is the outdoor map.
func (l Location) IsOutside() bool {
	return l.interior == ""
}

// Interior returns the interior ID, or "" when outside.
func (l Location) Interior() string {
	return l.interior
}

// String returns "outside" or the interior ID.
func (l Location) String() string {
	if l.IsOutside() {
		return "outside"
	}
	return l.interior
}
