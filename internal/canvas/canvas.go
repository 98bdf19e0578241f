// Package canvas is the windowed frontend, drawn with ebiten.
package canvas

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/samdwyer/noxistown/internal/game"
	"github.com/samdwyer/noxistown/internal/input"
)

// binding maps one game key to the physical keys that drive it.
type binding struct {
	key  input.Key
	phys []ebiten.Key
}

var bindings = []binding{
	{input.KeyUp, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}},
	{input.KeyDown, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
	{input.KeyLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{input.KeyRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
	{input.KeyInteract, []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter, ebiten.KeyE}},
	{input.KeyCancel, []ebiten.Key{ebiten.KeyEscape}},
	{input.KeyQuit, []ebiten.Key{ebiten.KeyQ}},
}

// Game adapts the simulation to ebiten's Update/Draw/Layout loop.
type Game struct {
	ctx   context.Context
	game  *game.Game
	log   *zap.Logger
	frame time.Duration

	keys     input.KeyState
	hadFocus bool

	sprites map[string]*ebiten.Image // Keyed by NPC ID
	face    *text.GoTextFace
	bold    *text.GoTextFace
}

// New loads fonts and NPC sprites for g.
func New(ctx context.Context, g *game.Game, log *zap.Logger) (*Game, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}
	boldSrc, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}

	c := &Game{
		ctx:      ctx,
		game:     g,
		log:      log,
		frame:    g.Config().FrameDuration(),
		hadFocus: true,
		sprites:  make(map[string]*ebiten.Image),
		face:     &text.GoTextFace{Source: regular, Size: 16},
		bold:     &text.GoTextFace{Source: boldSrc, Size: 16},
	}
	c.loadSprites()
	return c, nil
}

// loadSprites loads every NPC image it can. NPCs whose sprite is missing
// keep drawing as a colored marker.
func (c *Game) loadSprites() {
	for _, npc := range c.game.World().NPCs() {
		if npc.Sprite == "" {
			continue
		}
		img, _, err := ebitenutil.NewImageFromFile(npc.Sprite)
		if err != nil {
			c.log.Debug("sprite unavailable, using marker",
				zap.String("npc", npc.ID),
				zap.String("path", npc.Sprite),
				zap.Error(err),
			)
			continue
		}
		b := img.Bounds()
		npc.MarkSpriteReady(float64(b.Dx()), float64(b.Dy()))
		c.sprites[npc.ID] = img
	}
}

// Update advances the simulation by one tick.
func (c *Game) Update() error {
	focused := ebiten.IsFocused()
	if !focused && c.hadFocus {
		c.keys.Reset()
	}
	c.hadFocus = focused

	c.poll()
	c.game.Frame(c.ctx, c.frame, &c.keys)
	if c.game.Quit() {
		return ebiten.Termination
	}
	return nil
}

func (c *Game) poll() {
	for _, b := range bindings {
		just, held := false, false
		for _, k := range b.phys {
			just = just || inpututil.IsKeyJustPressed(k)
			held = held || ebiten.IsKeyPressed(k)
		}
		apply(&c.keys, b.key, just, held)
	}
}

// apply feeds one key's state for this tick into the flags.
func apply(keys *input.KeyState, k input.Key, justPressed, pressed bool) {
	if justPressed {
		keys.Press(k)
	}
	if !pressed {
		keys.Release(k)
	}
}

// Layout keeps the logical screen at the camera viewport size.
func (c *Game) Layout(_, _ int) (int, int) {
	cfg := c.game.Config()
	return cfg.ViewportWidth, cfg.ViewportHeight
}

// Run opens the window and blocks until the player quits.
func Run(ctx context.Context, g *game.Game, log *zap.Logger) error {
	c, err := New(ctx, g, log)
	if err != nil {
		return err
	}

	cfg := g.Config()
	ebiten.SetWindowSize(cfg.ViewportWidth, cfg.ViewportHeight)
	ebiten.SetWindowTitle("Noxis Town")
	ebiten.SetTPS(cfg.TicksPerSecond)

	if err := ebiten.RunGame(c); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("canvas: %w", err)
	}
	return nil
}
