// Package game ties the town, the overlays and the economy together into a
// single per-frame update step.
package game

// Mode is what the frame update is currently driving.
type Mode int

const (
	// ModeExplore is free movement around the active location.
	ModeExplore Mode = iota
	// ModeDialog shows an NPC's line; interact turns the page.
	ModeDialog
	// ModeShop shows the upgrade menu; movement keys move the cursor.
	ModeShop
	// ModeTransition is a door fade; all input is ignored until it ends.
	ModeTransition
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeExplore:
		return "explore"
	case ModeDialog:
		return "dialog"
	case ModeShop:
		return "shop"
	case ModeTransition:
		return "transition"
	default:
		return "unknown"
	}
}

// BlocksInput reports whether the player is unable to walk around.
func (m Mode) BlocksInput() bool {
	return m != ModeExplore
}
