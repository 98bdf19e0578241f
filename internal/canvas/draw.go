package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/samdwyer/noxistown/internal/economy"
	"github.com/samdwyer/noxistown/internal/game"
	"github.com/samdwyer/noxistown/internal/world"
)

var (
	colorBackground = color.RGBA{0x10, 0x10, 0x18, 0xff}
	colorPlayer     = color.RGBA{0xf2, 0xd0, 0x3b, 0xff}
	colorPanel      = color.RGBA{0x00, 0x00, 0x00, 0xc8}
	colorText       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorDim        = color.RGBA{0x90, 0x90, 0x90, 0xff}
	colorGold       = color.RGBA{0xff, 0xd7, 0x00, 0xff}
)

const (
	lineHeight   = 20
	dialogHeight = 110
	dialogChars  = 70 // Wrap width of the dialog box in characters
)

// tileSource is implemented by both the outdoor grid and interiors.
type tileSource interface {
	TileAt(x, y float64) world.Tile
}

func tileColor(t world.Tile) color.RGBA {
	switch t {
	case world.TileGrass:
		return color.RGBA{0x4c, 0x9a, 0x2a, 0xff}
	case world.TilePath:
		return color.RGBA{0xc8, 0xaa, 0x6e, 0xff}
	case world.TileTree:
		return color.RGBA{0x1e, 0x5a, 0x1e, 0xff}
	case world.TileWater:
		return color.RGBA{0x3a, 0x6e, 0xc8, 0xff}
	case world.TileBuilding:
		return color.RGBA{0x8b, 0x45, 0x2d, 0xff}
	case world.TileDoor:
		return color.RGBA{0x5a, 0x32, 0x14, 0xff}
	case world.TileInteriorFloor:
		return color.RGBA{0xde, 0xb8, 0x87, 0xff}
	case world.TileInteriorWall:
		return color.RGBA{0x55, 0x55, 0x5f, 0xff}
	case world.TileFurniture:
		return color.RGBA{0xa0, 0x52, 0x2d, 0xff}
	default:
		return color.RGBA{0xff, 0x00, 0xff, 0xff}
	}
}

// fadeColor is the black overlay for a fade at the given opacity.
func fadeColor(alpha float64) color.RGBA {
	a := uint8(math.Round(max(0, min(1, alpha)) * 0xff))
	return color.RGBA{A: a}
}

// Draw renders the current frame.
func (c *Game) Draw(screen *ebiten.Image) {
	g := c.game
	screen.Fill(colorBackground)

	c.drawTiles(screen)
	c.drawNPCs(screen)
	c.drawPlayer(screen)
	if g.Mode() == game.ModeExplore {
		c.drawPrompt(screen)
	}

	c.drawHUD(screen)
	if g.Dialog().Active() {
		c.drawDialog(screen)
	} else if g.Notice() != "" && g.Mode() == game.ModeExplore {
		c.drawNotice(screen)
	}
	if g.Shop().Active() {
		c.drawShop(screen)
	}

	if alpha := g.Fade().Alpha(); alpha > 0 {
		b := screen.Bounds()
		vector.FillRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), fadeColor(alpha), false)
	}
}

// drawTiles fills every tile that overlaps the viewport.
func (c *Game) drawTiles(screen *ebiten.Image) {
	area := c.game.World().ActiveArea()
	src, ok := area.(tileSource)
	if !ok {
		return
	}
	cam := c.game.Camera()
	ts := float64(c.game.Config().TileSize)
	bounds := area.Bounds()
	view := cam.Viewport()

	col0 := int(math.Floor(view.X / ts))
	row0 := int(math.Floor(view.Y / ts))
	col1 := int(math.Ceil(min(view.Right(), bounds.Right()) / ts))
	row1 := int(math.Ceil(min(view.Bottom(), bounds.Bottom()) / ts))

	for row := max(0, row0); row < row1; row++ {
		for col := max(0, col0); col < col1; col++ {
			wx, wy := float64(col)*ts, float64(row)*ts
			t := src.TileAt(wx+ts/2, wy+ts/2)
			sx, sy := cam.WorldToScreen(wx, wy)
			vector.FillRect(screen, float32(sx), float32(sy), float32(ts), float32(ts), tileColor(t), false)
		}
	}
}

func (c *Game) drawNPCs(screen *ebiten.Image) {
	cam := c.game.Camera()
	for _, npc := range c.game.World().VisibleNPCs() {
		r := npc.Rect()
		if !cam.IsVisible(r.X, r.Y, r.W, r.H) {
			continue
		}
		sx, sy := cam.WorldToScreen(r.X, r.Y)

		if img, ok := c.sprites[npc.ID]; ok && npc.SpriteReady {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(sx, sy)
			screen.DrawImage(img, op)
		} else {
			vector.FillRect(screen, float32(sx), float32(sy), float32(r.W), float32(r.H), npc.Color, false)
			vector.StrokeRect(screen, float32(sx), float32(sy), float32(r.W), float32(r.H), 1, color.Black, false)
		}
		c.label(screen, npc.Name, sx+r.W/2, sy-4, colorText)
	}
}

func (c *Game) drawPlayer(screen *ebiten.Image) {
	cam := c.game.Camera()
	p := c.game.World().Player()
	r := p.Rect()
	sx, sy := cam.WorldToScreen(r.X, r.Y)
	vector.FillRect(screen, float32(sx), float32(sy), float32(r.W), float32(r.H), colorPlayer, false)

	// A small notch shows which way the player faces
	const notch = 6
	cx, cy := sx+r.W/2, sy+r.H/2
	dx, dy := p.Facing.Delta()
	nx := cx + dx*(r.W/2-notch/2) - notch/2
	ny := cy + dy*(r.H/2-notch/2) - notch/2
	vector.FillRect(screen, float32(nx), float32(ny), notch, notch, color.Black, false)
}

func (c *Game) drawPrompt(screen *ebiten.Image) {
	w := c.game.World()
	cam := c.game.Camera()
	if npc, ok := w.NearbyNPC(); ok {
		r := npc.Rect()
		sx, sy := cam.WorldToScreen(r.X+r.W/2, r.Y)
		c.label(screen, "[Space] Talk", sx, sy-lineHeight, colorGold)
		return
	}
	if door, ok := w.NearbyDoor(); ok {
		sx, sy := cam.WorldToScreen(door.X, door.Y)
		verb := "Enter"
		if door.Exit {
			verb = "Exit"
		}
		c.label(screen, "[Space] "+verb, sx, sy-lineHeight*2, colorGold)
	}
}

func (c *Game) drawHUD(screen *ebiten.Image) {
	l := c.game.Ledger()
	vector.FillRect(screen, 0, 0, 300, lineHeight*2+8, colorPanel, false)
	c.print(screen, c.bold, "$"+economy.FormatMoney(l.Money()), 8, 4, colorGold)
	c.print(screen, c.face, fmt.Sprintf("+%s/s  %s", economy.FormatMoney(l.IncomePerSecond()), c.game.World().Location()), 8, 4+lineHeight, colorText)
}

func (c *Game) drawDialog(screen *ebiten.Image) {
	d := c.game.Dialog()
	b := screen.Bounds()
	top := float64(b.Dy() - dialogHeight - 10)
	vector.FillRect(screen, 10, float32(top), float32(b.Dx()-20), dialogHeight, colorPanel, false)
	vector.StrokeRect(screen, 10, float32(top), float32(b.Dx()-20), dialogHeight, 2, colorText, false)

	c.print(screen, c.bold, d.Speaker(), 24, top+8, colorGold)
	for i, line := range wrapWords(d.Visible(), dialogChars) {
		c.print(screen, c.face, line, 24, top+8+float64(i+1)*lineHeight, colorText)
	}
	if !d.Typing() {
		page, pages := d.Page()
		c.print(screen, c.face, fmt.Sprintf("%d/%d  [Space]", page+1, pages), float64(b.Dx()-130), top+dialogHeight-lineHeight-6, colorDim)
	}
}

func (c *Game) drawNotice(screen *ebiten.Image) {
	b := screen.Bounds()
	y := float64(b.Dy() - lineHeight - 12)
	vector.FillRect(screen, 0, float32(y-4), float32(b.Dx()), lineHeight+8, colorPanel, false)
	c.print(screen, c.face, c.game.Notice(), 12, y, colorGold)
}

func (c *Game) drawShop(screen *ebiten.Image) {
	b := screen.Bounds()
	items := c.game.Ledger().Items()
	w := float64(b.Dx()) - 120
	h := float64(len(items)+3) * lineHeight * 1.5
	x, y := 60.0, 60.0
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), colorPanel, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, colorGold, false)

	c.print(screen, c.bold, "Brain Shop", x+16, y+10, colorGold)
	c.print(screen, c.face, "Up/Down select  Space buy  Esc close", x+w-300, y+10, colorDim)

	for i, item := range items {
		rowY := y + 10 + float64(i+1)*lineHeight*1.5
		clr := colorText
		if !item.Affordable {
			clr = colorDim
		}
		if i == c.game.Shop().Cursor() {
			vector.FillRect(screen, float32(x+8), float32(rowY-2), float32(w-16), lineHeight+4, color.RGBA{0x40, 0x40, 0x60, 0xff}, false)
		}
		row := fmt.Sprintf("%-20s $%-10s +%s/s", item.Def.Name, economy.FormatMoney(item.Cost), economy.FormatMoney(item.Def.BaseIncome))
		c.print(screen, c.face, row, x+16, rowY, clr)
		c.print(screen, c.face, fmt.Sprintf("x%d", item.Owned), x+w-60, rowY, clr)
	}
}

// print draws s with its top-left corner at (x, y).
func (c *Game) print(screen *ebiten.Image, face *text.GoTextFace, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// label draws s centered on x with its baseline near y.
func (c *Game) label(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-lineHeight)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, s, c.face, op)
}

// wrapWords splits s into lines of at most width runes, breaking at spaces.
// A single word longer than width gets a line of its own.
func wrapWords(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	n := 0
	for _, word := range strings.Fields(s) {
		wl := len([]rune(word))
		if n > 0 && n+1+wl > width {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(word)
		n += wl
	}
	if n > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
