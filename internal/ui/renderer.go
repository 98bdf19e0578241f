package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/noxistown/internal/economy"
	"github.com/samdwyer/noxistown/internal/game"
	"github.com/samdwyer/noxistown/internal/world"
)

const (
	hudRows    = 1 // Money and location across the top
	footerRows = 4 // Dialog, notices and key help along the bottom
)

// tileSource is implemented by both the outdoor grid and interiors.
type tileSource interface {
	TileAt(x, y float64) world.Tile
}

type cell struct {
	r     rune
	style tcell.Style
}

// Frame is one composed terminal picture.
type Frame struct {
	Width, Height int
	cells         []cell
}

func newFrame(w, h int) *Frame {
	f := &Frame{Width: w, Height: h, cells: make([]cell, w*h)}
	for i := range f.cells {
		f.cells[i] = cell{r: ' ', style: tcell.StyleDefault}
	}
	return f
}

func (f *Frame) set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	f.cells[y*f.Width+x] = cell{r: r, style: style}
}

func (f *Frame) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		f.set(x, y, r, style)
		x++
	}
}

// Rune returns the character at (x, y), or 0 outside the frame.
func (f *Frame) Rune(x, y int) rune {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0
	}
	return f.cells[y*f.Width+x].r
}

// Line returns row y as a string.
func (f *Frame) Line(y int) string {
	rs := make([]rune, f.Width)
	for x := range rs {
		rs[x] = f.Rune(x, y)
	}
	return string(rs)
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render composes the game state and flushes it to the terminal.
func (r *Renderer) Render(g *game.Game) {
	w, h := r.screen.Size()
	f := Compose(g, w, h)

	r.screen.Clear()
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.cells[y*f.Width+x]
			r.screen.SetContent(x, y, c.r, c.style)
		}
	}
	r.screen.Show()
}

// view maps world pixels to terminal cells. One cell is half a tile wide and
// a whole tile tall, which keeps tiles roughly square in a terminal font.
type view struct {
	g          *game.Game
	cellW      float64
	cellH      float64
	originX    float64 // Camera-space pixel shown at the map's top-left cell
	originY    float64
	cols, rows int
}

func newView(g *game.Game, width, height int) view {
	ts := float64(g.Config().TileSize)
	cam := g.Camera()
	v := view{
		g:     g,
		cellW: ts / 2,
		cellH: ts,
		cols:  width,
		rows:  max(0, height-hudRows-footerRows),
	}

	// A terminal smaller than the viewport shows the part around the player
	px, py := g.World().Player().Rect().Center()
	psx, psy := cam.WorldToScreen(px, py)
	v.originX = fitAxis(psx, float64(v.cols)*v.cellW, cam.ViewportWidth)
	v.originY = fitAxis(psy, float64(v.rows)*v.cellH, cam.ViewportHeight)
	return v
}

func fitAxis(focus, span, viewport float64) float64 {
	if span >= viewport {
		return 0
	}
	return max(0, min(focus-span/2, viewport-span))
}

// cellOf returns the map cell showing a world point.
func (v view) cellOf(wx, wy float64) (int, int, bool) {
	sx, sy := v.g.Camera().WorldToScreen(wx, wy)
	col := int(math.Floor((sx - v.originX) / v.cellW))
	row := int(math.Floor((sy - v.originY) / v.cellH))
	ok := col >= 0 && col < v.cols && row >= 0 && row < v.rows
	return col, row + hudRows, ok
}

// Compose draws the whole game into a width×height frame.
func Compose(g *game.Game, width, height int) *Frame {
	f := newFrame(width, height)
	v := newView(g, width, height)

	drawHUD(f, g)
	if g.Fade().Alpha() < 0.5 {
		drawMap(f, v)
		drawEntities(f, v)
		if g.Mode() == game.ModeExplore {
			drawPrompts(f, v)
		}
	}
	if g.Shop().Active() {
		drawShop(f, g)
	}
	drawFooter(f, g)
	return f
}

func drawHUD(f *Frame, g *game.Game) {
	l := g.Ledger()
	style := tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	hud := fmt.Sprintf(" $%s  +%s/s  [%s]",
		economy.FormatMoney(l.Money()),
		economy.FormatMoney(l.IncomePerSecond()),
		g.World().Location(),
	)
	f.text(0, 0, hud, style)
}

func drawMap(f *Frame, v view) {
	src, ok := v.g.World().ActiveArea().(tileSource)
	if !ok {
		return
	}
	cam := v.g.Camera()
	bounds := v.g.World().ActiveArea().Bounds()
	for row := 0; row < v.rows; row++ {
		for col := 0; col < v.cols; col++ {
			sx := v.originX + (float64(col)+0.5)*v.cellW
			sy := v.originY + (float64(row)+0.5)*v.cellH
			wx, wy := cam.ScreenToWorld(sx, sy)
			if !bounds.Contains(wx, wy) {
				continue
			}
			t := src.TileAt(wx, wy)
			f.set(col, row+hudRows, t.Rune(), tileStyle(t))
		}
	}
}

func drawEntities(f *Frame, v view) {
	cam := v.g.Camera()
	for _, npc := range v.g.World().VisibleNPCs() {
		r := npc.Rect()
		if !cam.IsVisible(r.X, r.Y, r.W, r.H) {
			continue
		}
		cx, cy := r.Center()
		if col, row, ok := v.cellOf(cx, cy); ok {
			c := npc.Color
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).Bold(true)
			f.set(col, row, glyph(npc.Name), style)
		}
	}

	px, py := v.g.World().Player().Rect().Center()
	if col, row, ok := v.cellOf(px, py); ok {
		f.set(col, row, '@', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	}
}

func drawPrompts(f *Frame, v view) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true).Blink(true)
	if npc, ok := v.g.World().NearbyNPC(); ok {
		cx, _ := npc.Rect().Center()
		if col, row, ok := v.cellOf(cx, npc.Y-v.cellH/2); ok {
			f.set(col, row, '!', style)
		}
		return
	}
	if door, ok := v.g.World().NearbyDoor(); ok {
		if col, row, ok := v.cellOf(door.X, door.Y-v.cellH*1.5); ok {
			f.set(col, row, '!', style)
		}
	}
}

func drawShop(f *Frame, g *game.Game) {
	title := tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	f.text(2, hudRows+1, "== Brain Shop ==  (enter: buy, esc: close)", title)

	for i, item := range g.Ledger().Items() {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		if !item.Affordable {
			style = style.Foreground(tcell.ColorGray)
		}
		marker := "  "
		if i == g.Shop().Cursor() {
			marker = "> "
			style = style.Reverse(true)
		}
		line := fmt.Sprintf("%s%-18s $%-9s +%s/s  owned %d",
			marker, item.Def.Name, economy.FormatMoney(item.Cost), economy.FormatMoney(item.Def.BaseIncome), item.Owned)
		f.text(2, hudRows+3+i, line, style)
	}
}

func drawFooter(f *Frame, g *game.Game) {
	top := f.Height - footerRows
	text := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	switch {
	case g.Dialog().Active():
		d := g.Dialog()
		f.text(1, top, d.Speaker()+":", text.Bold(true))
		f.text(2, top+1, d.Visible(), text)
		if !d.Typing() {
			f.text(2, top+2, "[space]", dim)
		}
	case g.Notice() != "":
		f.text(1, top+1, g.Notice(), text.Foreground(tcell.ColorGold))
	}
	f.text(1, top+3, "arrows/wasd move  space talk or use door  esc close  q quit", dim)
}

// glyph is the first letter of a name, or '&' for an unnamed NPC.
func glyph(name string) rune {
	for _, r := range name {
		return r
	}
	return '&'
}

func tileStyle(t world.Tile) tcell.Style {
	s := tcell.StyleDefault
	switch t {
	case world.TileGrass:
		return s.Foreground(tcell.ColorGreen)
	case world.TilePath:
		return s.Foreground(tcell.ColorTan)
	case world.TileTree:
		return s.Foreground(tcell.ColorDarkGreen)
	case world.TileWater:
		return s.Foreground(tcell.ColorBlue)
	case world.TileBuilding:
		return s.Foreground(tcell.ColorRed)
	case world.TileDoor:
		return s.Foreground(tcell.ColorSaddleBrown)
	case world.TileInteriorFloor:
		return s.Foreground(tcell.ColorBurlyWood)
	case world.TileInteriorWall:
		return s.Foreground(tcell.ColorDarkGray)
	case world.TileFurniture:
		return s.Foreground(tcell.ColorSienna)
	default:
		return s
	}
}
