// Package overlay holds the frame-driven state machines drawn over the map:
// the typewriter dialog box, the door fade and the shop cursor. Each one
// advances only when the frame loop ticks it.
package overlay

import (
	"strings"

	"github.com/samdwyer/noxistown/internal/entity"
)

// PageSeparator splits one dialog line into pages.
const PageSeparator = "|"

// Dialog is a dialog box that types each page out one character at a time.
type Dialog struct {
	ticksPerChar int

	speaker  string
	pages    []string
	page     int
	revealed int // Runes of the current page shown
	ticks    int // Frames since the last rune was revealed
	shop     bool
	active   bool
}

// NewDialog creates a closed dialog that reveals one character every
// ticksPerChar frames.
func NewDialog(ticksPerChar int) *Dialog {
	return &Dialog{ticksPerChar: max(1, ticksPerChar)}
}

// Open shows a line starting from its first page.
func (d *Dialog) Open(line entity.Line) {
	d.speaker = line.Speaker
	d.pages = strings.Split(line.Text, PageSeparator)
	d.shop = line.Shop
	d.active = true
	d.showPage(0)
}

func (d *Dialog) showPage(i int) {
	d.page = i
	d.revealed = 0
	d.ticks = 0
}

// Tick advances the typewriter by one frame.
func (d *Dialog) Tick() {
	if !d.active || !d.Typing() {
		return
	}
	d.ticks++
	if d.ticks >= d.ticksPerChar {
		d.ticks = 0
		d.revealed++
	}
}

// Typing reports whether the current page is still being revealed.
func (d *Dialog) Typing() bool {
	return d.active && d.revealed < len([]rune(d.pages[d.page]))
}

// Advance moves to the next page, or closes the dialog after the last one.
// It does nothing while the current page is still typing. openShop is true
// when the dialog closed on a line that opens the shop.
func (d *Dialog) Advance() (closed, openShop bool) {
	if !d.active {
		return true, false
	}
	if d.Typing() {
		return false, false
	}
	if d.page+1 < len(d.pages) {
		d.showPage(d.page + 1)
		return false, false
	}
	d.active = false
	return true, d.shop
}

// Close hides the dialog without opening the shop.
func (d *Dialog) Close() {
	d.active = false
}

// Active reports whether the dialog is showing.
func (d *Dialog) Active() bool {
	return d.active
}

// Speaker returns the name of who is talking.
func (d *Dialog) Speaker() string {
	return d.speaker
}

// Visible returns the revealed part of the current page.
func (d *Dialog) Visible() string {
	if !d.active {
		return ""
	}
	r := []rune(d.pages[d.page])
	return string(r[:min(d.revealed, len(r))])
}

// Page returns the current page index and the page count.
func (d *Dialog) Page() (int, int) {
	return d.page, len(d.pages)
}
