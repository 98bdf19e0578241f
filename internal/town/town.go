package town

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/noxistown/internal/config"
	"github.com/samdwyer/noxistown/internal/entity"
	"github.com/samdwyer/noxistown/internal/gamedata"
	"github.com/samdwyer/noxistown/internal/telemetry"
	"github.com/samdwyer/noxistown/internal/world"
)

var (
	// ErrNoInterior is returned when a door leads to an interior that does
	// not exist.
	ErrNoInterior = errors.New("no such interior")
	// ErrNotOutside is returned by Enter when the player is already inside.
	ErrNotOutside = errors.New("player is not outside")
	// ErrNotInside is returned by Exit when the player is outside.
	ErrNotInside = errors.New("player is not inside")
)

// InteractionKind says what an interact press did.
type InteractionKind int

const (
	InteractNone InteractionKind = iota
	InteractTalk
	InteractEnter
	InteractExit
)

// String returns the interaction name.
func (k InteractionKind) String() string {
	switch k {
	case InteractNone:
		return "none"
	case InteractTalk:
		return "talk"
	case InteractEnter:
		return "enter"
	case InteractExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Interaction is the result of an interact press.
type Interaction struct {
	Kind InteractionKind
	NPC  *entity.NPC // Set for InteractTalk
	Line entity.Line // Set for InteractTalk
	Door world.Door  // Set for InteractEnter and InteractExit
}

// World owns the player, the NPC roster and the active location. All of it
// is mutated from the single frame update.
type World struct {
	cfg      config.Config
	grid     *world.Grid
	player   *entity.Player
	npcs     []*entity.NPC
	location Location
	log      *zap.Logger
}

// New places the player at the configured start and builds the NPC roster.
// NPCs that live indoors start frozen at their interior's resident spot.
func New(ctx context.Context, cfg config.Config, grid *world.Grid, roster []gamedata.NPCDef, log *zap.Logger) *World {
	_, span := telemetry.Tracer("town").Start(ctx, "town.init")
	defer span.End()

	w := &World{
		cfg:    cfg,
		grid:   grid,
		player: entity.NewPlayer(cfg),
		log:    log,
	}

	rng := cfg.NewRand()
	indoor := 0
	for i := range roster {
		npc := entity.NewNPC(cfg, &roster[i], rng)
		if !npc.LivesOutside() {
			if in, ok := grid.Interior(npc.Home); ok {
				npc.GoInside(in.ResidentX, in.ResidentY)
			} else {
				log.Warn("npc home not found", zap.String("npc", npc.ID), zap.String("home", npc.Home))
			}
			indoor++
		}
		w.npcs = append(w.npcs, npc)
	}

	span.SetAttributes(
		attribute.Int("town.npcs", len(w.npcs)),
		attribute.Int("town.npcs_indoor", indoor),
	)
	return w
}

// Location returns the active location.
func (w *World) Location() Location {
	return w.location
}

// Player returns the player.
func (w *World) Player() *entity.Player {
	return w.player
}

// NPCs returns the full roster, visible or not.
func (w *World) NPCs() []*entity.NPC {
	return w.npcs
}

// Grid returns the outdoor map.
func (w *World) Grid() *world.Grid {
	return w.grid
}

// CurrentInterior returns the active interior, if the player is inside.
func (w *World) CurrentInterior() (*world.Interior, bool) {
	if w.location.IsOutside() {
		return nil, false
	}
	return w.grid.Interior(w.location.Interior())
}

// ActiveArea returns the geometry collision is checked against: the outdoor
// grid or the current interior, never both.
func (w *World) ActiveArea() world.Area {
	if in, ok := w.CurrentInterior(); ok {
		return in
	}
	return w.grid
}

// Update runs one frame of movement in the active location.
func (w *World) Update(dt time.Duration, intent entity.Intent) {
	area := w.ActiveArea()
	w.player.Update(area, intent)
	for _, npc := range w.VisibleNPCs() {
		npc.Update(dt, area)
	}
}

// VisibleNPCs returns the NPCs present in the active location: every
// wandering NPC outside, or the resident of the current interior.
func (w *World) VisibleNPCs() []*entity.NPC {
	if in, ok := w.CurrentInterior(); ok {
		if npc := w.npcByID(in.Resident); npc != nil {
			return []*entity.NPC{npc}
		}
		return nil
	}

	var visible []*entity.NPC
	for _, npc := range w.npcs {
		if npc.Wandering {
			visible = append(visible, npc)
		}
	}
	return visible
}

func (w *World) npcByID(id string) *entity.NPC {
	if id == "" {
		return nil
	}
	for _, npc := range w.npcs {
		if npc.ID == id {
			return npc
		}
	}
	return nil
}

// NearbyNPC returns the first visible NPC within talking range of the
// player.
func (w *World) NearbyNPC() (*entity.NPC, bool) {
	p := w.player.Rect()
	for _, npc := range w.VisibleNPCs() {
		if npc.CanInteract(p, w.cfg.InteractionRange) {
			return npc, true
		}
	}
	return nil, false
}

// NearbyDoor returns the door within tolerance of the player in the active
// location.
func (w *World) NearbyDoor() (world.Door, bool) {
	p := w.player.Rect()
	if in, ok := w.CurrentInterior(); ok {
		return in.DoorNear(p.X, p.Y, p.W, p.H)
	}
	return w.grid.DoorNear(p.X, p.Y, p.W, p.H)
}

// Interact handles one interact press and applies any door transition
// immediately.
func (w *World) Interact(ctx context.Context) (Interaction, error) {
	in := w.Prepare()
	switch in.Kind {
	case InteractEnter, InteractExit:
		if err := w.UseDoor(ctx, in.Door); err != nil {
			return Interaction{}, err
		}
	}
	return in, nil
}

// Prepare works out what an interact press does without moving anyone.
// Talking to an NPC takes priority over using a door, and advances the NPC's
// dialog cursor. A door interaction is only reported; the caller applies it
// with UseDoor, e.g. once a fade has gone dark.
func (w *World) Prepare() Interaction {
	if npc, ok := w.NearbyNPC(); ok {
		if line, ok := npc.Interact(); ok {
			return Interaction{Kind: InteractTalk, NPC: npc, Line: line}
		}
	}

	door, ok := w.NearbyDoor()
	if !ok {
		return Interaction{}
	}
	if door.Exit {
		return Interaction{Kind: InteractExit, Door: door}
	}
	return Interaction{Kind: InteractEnter, Door: door}
}

// UseDoor walks through a door: out of the current interior for an exit
// door, otherwise into the door's target.
func (w *World) UseDoor(ctx context.Context, door world.Door) error {
	if door.Exit {
		return w.Exit(ctx)
	}
	return w.Enter(ctx, door.Target)
}

// Enter moves the player from outside into an interior, just inside its exit
// door. The interior's resident, if any, is pulled inside and stops
// wandering.
func (w *World) Enter(ctx context.Context, interiorID string) error {
	_, span := telemetry.Tracer("town").Start(ctx, "location.enter")
	defer span.End()
	span.SetAttributes(attribute.String("location.interior", interiorID))

	if !w.location.IsOutside() {
		return telemetry.Fail(span, fmt.Errorf("enter %s: %w", interiorID, ErrNotOutside))
	}
	in, ok := w.grid.Interior(interiorID)
	if !ok {
		return telemetry.Fail(span, fmt.Errorf("enter %s: %w", interiorID, ErrNoInterior))
	}

	w.location = Inside(interiorID)
	w.player.Place(in.Spawn(w.player.W, w.player.H))

	resident := w.npcByID(in.Resident)
	if resident != nil {
		resident.GoInside(in.ResidentX, in.ResidentY)
		span.SetAttributes(attribute.String("location.resident", resident.ID))
	}

	w.log.Info("entered interior",
		zap.String("interior", interiorID),
		zap.Float64("x", w.player.X),
		zap.Float64("y", w.player.Y),
		zap.Bool("resident", resident != nil),
	)
	return nil
}

// Exit moves the player from an interior back outside, standing just below
// the building's door. A resident that lives outside goes back to where it
// was and resumes wandering.
func (w *World) Exit(ctx context.Context) error {
	_, span := telemetry.Tracer("town").Start(ctx, "location.exit")
	defer span.End()

	in, ok := w.CurrentInterior()
	if !ok {
		return telemetry.Fail(span, fmt.Errorf("exit: %w", ErrNotInside))
	}
	span.SetAttributes(attribute.String("location.interior", in.ID))

	b, ok := w.grid.BuildingFor(in.ID)
	if !ok {
		return telemetry.Fail(span, fmt.Errorf("exit %s: %w", in.ID, ErrNoInterior))
	}

	w.location = Outside
	w.player.Place(world.Rect{X: b.DoorX - w.player.W/2, Y: b.Rect.Bottom()})

	if resident := w.npcByID(in.Resident); resident != nil && resident.LivesOutside() {
		resident.GoOutside()
	}

	w.log.Info("left interior",
		zap.String("interior", in.ID),
		zap.String("building", b.ID),
		zap.Float64("x", w.player.X),
		zap.Float64("y", w.player.Y),
	)
	return nil
}
