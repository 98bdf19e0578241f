package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/noxistown/internal/audio"
	"github.com/samdwyer/noxistown/internal/camera"
	"github.com/samdwyer/noxistown/internal/config"
	"github.com/samdwyer/noxistown/internal/economy"
	"github.com/samdwyer/noxistown/internal/gamedata"
	"github.com/samdwyer/noxistown/internal/input"
	"github.com/samdwyer/noxistown/internal/overlay"
	"github.com/samdwyer/noxistown/internal/save"
	"github.com/samdwyer/noxistown/internal/telemetry"
	"github.com/samdwyer/noxistown/internal/town"
	"github.com/samdwyer/noxistown/internal/world"
)

// Deps are the collaborators a Game needs. Nil fields get quiet defaults.
type Deps struct {
	Log   *zap.Logger
	Store save.Store
	Audio audio.Player
	Now   func() time.Time
}

// Game holds the entire game state. Frontends call Frame once per tick and
// then draw from the accessors.
type Game struct {
	cfg    config.Config
	log    *zap.Logger
	store  save.Store
	audio  audio.Player
	now    func() time.Time
	world  *town.World
	camera *camera.Camera
	ledger *economy.Ledger

	dialog *overlay.Dialog
	fade   overlay.Fade
	shop   overlay.Shop

	pendingDoor *world.Door // Door to walk through at the fade midpoint
	sinceSave   time.Duration
	notice      string
	quit        bool
}

// New builds the town, restores saved progress and credits income earned
// while the game was closed.
func New(ctx context.Context, cfg config.Config, deps Deps) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Store == nil {
		deps.Store = save.Discard{}
	}
	if deps.Audio == nil {
		deps.Audio = audio.Nop{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	registry, err := gamedata.LoadUpgradeRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load upgrades: %w", err)
	}
	roster, err := gamedata.LoadRoster()
	if err != nil {
		return nil, fmt.Errorf("failed to load npcs: %w", err)
	}

	grid := world.NewGrid(ctx, cfg, world.NoxisTown(cfg.TileSize))
	g := &Game{
		cfg:    cfg,
		log:    deps.Log,
		store:  deps.Store,
		audio:  deps.Audio,
		now:    deps.Now,
		world:  town.New(ctx, cfg, grid, roster, deps.Log),
		ledger: economy.NewLedger(registry),
		dialog: overlay.NewDialog(cfg.TypewriterTicks),
	}
	bounds := grid.Bounds()
	g.camera = camera.New(cfg, bounds.W, bounds.H)
	g.camera.Follow(g.world.Player().Rect())

	g.restore(ctx)

	span.SetAttributes(
		attribute.Int("game.upgrades", registry.Count()),
		attribute.Int("game.npcs", len(roster)),
		attribute.Float64("game.money", g.ledger.Money()),
	)
	return g, nil
}

// restore loads the save and pays out offline earnings.
func (g *Game) restore(ctx context.Context) {
	blob := save.LoadOrDefault(ctx, g.store, g.log)
	if skipped := g.ledger.Restore(blob); len(skipped) > 0 {
		g.log.Warn("save references unknown upgrades", zap.Strings("ids", skipped))
	}

	savedAt := blob.SavedAt()
	if savedAt.IsZero() {
		return
	}
	away := g.now().Sub(savedAt)
	earned := economy.OfflineEarnings(g.ledger.IncomePerSecond(), away, g.cfg.OfflineCap)
	if earned <= 0 {
		return
	}
	g.ledger.Deposit(earned)
	g.notice = fmt.Sprintf("Welcome back! You earned $%s while away.", economy.FormatMoney(earned))
	g.log.Info("offline earnings",
		zap.Duration("away", away),
		zap.Float64("earned", earned),
	)
}

// Mode returns what the frame update is currently driving.
func (g *Game) Mode() Mode {
	switch {
	case g.fade.Active():
		return ModeTransition
	case g.shop.Active():
		return ModeShop
	case g.dialog.Active():
		return ModeDialog
	default:
		return ModeExplore
	}
}

// Frame advances the game by one tick of dt. It is the only place game state
// changes.
func (g *Game) Frame(ctx context.Context, dt time.Duration, keys *input.KeyState) {
	defer keys.EndFrame()

	if keys.Consume(input.KeyQuit) {
		g.quit = true
	}

	g.dialog.Tick()
	if g.fade.Active() {
		if _, midpoint := g.fade.Tick(); midpoint {
			g.finishTransition(ctx)
		}
	}

	switch g.Mode() {
	case ModeExplore:
		g.world.Update(dt, keys.Intent())
		if keys.ConsumeInteract() {
			g.interact()
		}
	case ModeDialog:
		if keys.ConsumeInteract() {
			g.advanceDialog()
		}
	case ModeShop:
		g.updateShop(keys)
	}

	g.camera.Follow(g.world.Player().Rect())
	g.ledger.Tick(dt)

	g.sinceSave += dt
	if g.cfg.AutosaveInterval > 0 && g.sinceSave >= g.cfg.AutosaveInterval {
		g.sinceSave = 0
		if err := g.Save(ctx); err != nil {
			g.log.Warn("autosave failed", zap.Error(err))
		}
	}
}

// interact handles an interact press while exploring.
func (g *Game) interact() {
	in := g.world.Prepare()
	switch in.Kind {
	case town.InteractTalk:
		g.notice = ""
		g.dialog.Open(in.Line)
		g.audio.Play(audio.CueBlip)
		g.log.Debug("talk", zap.String("npc", in.NPC.ID))
	case town.InteractEnter, town.InteractExit:
		door := in.Door
		g.pendingDoor = &door
		g.fade.Start(g.cfg.FadeTicks)
		g.audio.Play(audio.CueDoor)
	}
}

// finishTransition walks through the pending door while the screen is dark.
func (g *Game) finishTransition(ctx context.Context) {
	door := g.pendingDoor
	g.pendingDoor = nil
	if door == nil {
		return
	}
	if err := g.world.UseDoor(ctx, *door); err != nil {
		g.log.Error("door transition failed", zap.String("door", door.ID), zap.Error(err))
		return
	}
	b := g.world.ActiveArea().Bounds()
	g.camera.SetWorld(b.W, b.H)
}

func (g *Game) advanceDialog() {
	if g.dialog.Typing() {
		return
	}
	closed, openShop := g.dialog.Advance()
	if !closed {
		g.audio.Play(audio.CueBlip)
		return
	}
	if openShop {
		g.shop.Open(len(g.ledger.Items()))
	}
}

func (g *Game) updateShop(keys *input.KeyState) {
	if keys.ConsumeCancel() {
		g.shop.Close()
		return
	}
	if keys.Consume(input.KeyUp) {
		g.shop.Prev()
	}
	if keys.Consume(input.KeyDown) {
		g.shop.Next()
	}
	if keys.ConsumeInteract() {
		g.buySelected()
	}
}

func (g *Game) buySelected() {
	items := g.ledger.Items()
	if len(items) == 0 {
		return
	}
	item := items[g.shop.Cursor()]
	err := g.ledger.Buy(item.Def.ID)
	switch {
	case errors.Is(err, economy.ErrInsufficientFunds):
		g.audio.Play(audio.CueDenied)
	case err != nil:
		g.log.Error("purchase failed", zap.Error(err))
	default:
		g.audio.Play(audio.CueCoin)
		g.log.Info("upgrade bought",
			zap.String("upgrade", item.Def.ID),
			zap.Int("owned", g.ledger.Owned(item.Def.ID)),
			zap.Float64("income_per_second", g.ledger.IncomePerSecond()),
		)
	}
}

// Save writes the current progress to the store.
func (g *Game) Save(ctx context.Context) error {
	return save.Write(ctx, g.store, g.ledger.Snapshot(g.now()))
}

// Close writes a final save and releases the store and audio device.
func (g *Game) Close(ctx context.Context) error {
	return errors.Join(
		g.Save(ctx),
		g.store.Close(),
		g.audio.Close(),
	)
}

// Quit reports whether the player asked to leave.
func (g *Game) Quit() bool { return g.quit }

// Config returns the configuration the game was built with.
func (g *Game) Config() config.Config { return g.cfg }

// World returns the town.
func (g *Game) World() *town.World { return g.world }

// Camera returns the camera.
func (g *Game) Camera() *camera.Camera { return g.camera }

// Ledger returns the economy.
func (g *Game) Ledger() *economy.Ledger { return g.ledger }

// Dialog returns the dialog box.
func (g *Game) Dialog() *overlay.Dialog { return g.dialog }

// Fade returns the door fade.
func (g *Game) Fade() *overlay.Fade { return &g.fade }

// Shop returns the shop menu.
func (g *Game) Shop() *overlay.Shop { return &g.shop }

// Notice returns a one-off message for the HUD, such as offline earnings.
func (g *Game) Notice() string { return g.notice }
