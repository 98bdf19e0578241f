package town

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/samdwyer/noxistown/internal/config"
	"github.com/samdwyer/noxistown/internal/entity"
	"github.com/samdwyer/noxistown/internal/gamedata"
	"github.com/samdwyer/noxistown/internal/world"
)

const frame = 16 * time.Millisecond

func newTestWorld(t *testing.T) *World {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 42

	roster, err := gamedata.LoadRoster()
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}
	ctx := context.Background()
	grid := world.NewGrid(ctx, cfg, world.NoxisTown(cfg.TileSize))
	return New(ctx, cfg, grid, roster, zaptest.NewLogger(t))
}

// standAtDoor puts the player just below a building's door.
func standAtDoor(w *World, b world.Building) {
	p := w.Player()
	p.Place(world.Rect{X: b.DoorX - p.W/2, Y: b.Rect.Bottom()})
}

func npc(t *testing.T, w *World, id string) *entity.NPC {
	t.Helper()
	n := w.npcByID(id)
	if n == nil {
		t.Fatalf("npc %s not in roster", id)
	}
	return n
}

func TestLocationZeroIsOutside(t *testing.T) {
	var l Location
	if !l.IsOutside() || l != Outside {
		t.Error("zero Location should be Outside")
	}
	in := Inside("house1_interior")
	if in.IsOutside() || in.Interior() != "house1_interior" || in.String() != "house1_interior" {
		t.Errorf("Inside = %+v", in)
	}
}

func TestEnterExitIsReversible(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld(t)
	ts := w.Grid().TileSize

	for _, b := range w.Grid().Buildings() {
		standAtDoor(w, b)

		if err := w.Enter(ctx, world.InteriorID(b.ID)); err != nil {
			t.Fatalf("Enter %s: %v", b.ID, err)
		}
		if err := w.Exit(ctx); err != nil {
			t.Fatalf("Exit %s: %v", b.ID, err)
		}

		if !w.Location().IsOutside() {
			t.Fatalf("after exit location = %v", w.Location())
		}
		p := w.Player().Rect()
		cx, cy := p.Center()
		if dx, dy := cx-b.DoorX, cy-b.DoorY; dx <= -ts || dx >= ts || dy <= -ts || dy >= ts {
			t.Errorf("%s: player center (%v,%v) not within a tile of door (%v,%v)", b.ID, cx, cy, b.DoorX, b.DoorY)
		}
		if w.Grid().IsSolid(p.X, p.Y, p.W, p.H) {
			t.Errorf("%s: exit position %+v is solid", b.ID, p)
		}
		if _, ok := w.NearbyDoor(); !ok {
			t.Errorf("%s: exit position is not within door tolerance", b.ID)
		}
	}
}

func TestInteractEntersAndExits(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld(t)
	house1 := w.Grid().Buildings()[0]
	standAtDoor(w, house1)

	got, err := w.Interact(ctx)
	if err != nil {
		t.Fatalf("Interact: %v", err)
	}
	if got.Kind != InteractEnter || got.Door.ID != "house1" {
		t.Fatalf("Interact = %v %+v, want enter house1", got.Kind, got.Door)
	}
	if w.Location() != Inside("house1_interior") {
		t.Fatalf("location = %v, want house1_interior", w.Location())
	}

	in, _ := w.Grid().Interior("house1_interior")
	if want := in.Spawn(w.Player().W, w.Player().H); w.Player().Rect() != want {
		t.Errorf("player at %+v, want spawn %+v", w.Player().Rect(), want)
	}

	// The resident followed the player in and froze
	yellow := npc(t, w, "YELLOW")
	if yellow.Wandering || yellow.X != in.ResidentX || yellow.Y != in.ResidentY {
		t.Errorf("YELLOW wandering=%v at (%v,%v), want frozen at (%v,%v)", yellow.Wandering, yellow.X, yellow.Y, in.ResidentX, in.ResidentY)
	}
	visible := w.VisibleNPCs()
	if len(visible) != 1 || visible[0] != yellow {
		t.Errorf("visible NPCs inside = %d, want only YELLOW", len(visible))
	}

	got, err = w.Interact(ctx)
	if err != nil {
		t.Fatalf("Interact inside: %v", err)
	}
	if got.Kind != InteractExit {
		t.Fatalf("Interact inside = %v, want exit", got.Kind)
	}
	if !yellow.Wandering || yellow.X != 192 || yellow.Y != 544 {
		t.Errorf("YELLOW after exit wandering=%v at (%v,%v), want wandering at (192,544)", yellow.Wandering, yellow.X, yellow.Y)
	}
}

func TestInteractPrefersNPCOverDoor(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld(t)
	house1 := w.Grid().Buildings()[0]
	standAtDoor(w, house1)

	green := npc(t, w, "GREEN")
	green.SetPosition(w.Player().X+30, w.Player().Y)

	got, err := w.Interact(ctx)
	if err != nil {
		t.Fatalf("Interact: %v", err)
	}
	if got.Kind != InteractTalk || got.NPC != green {
		t.Fatalf("Interact = %v, want talk to GREEN", got.Kind)
	}
	if got.Line.Speaker != "Tobin" {
		t.Errorf("speaker = %q", got.Line.Speaker)
	}
	if !w.Location().IsOutside() {
		t.Error("talking should not change location")
	}
}

func TestInteractNothingNearby(t *testing.T) {
	w := newTestWorld(t)
	got, err := w.Interact(context.Background())
	if err != nil || got.Kind != InteractNone {
		t.Errorf("Interact at start = %v, %v; want none", got.Kind, err)
	}
}

func TestIndoorNPCs(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld(t)
	shopkeeper := npc(t, w, "SHOPKEEPER")

	for _, n := range w.VisibleNPCs() {
		if n == shopkeeper {
			t.Fatal("SHOPKEEPER should not be visible outside")
		}
	}

	if err := w.Enter(ctx, "building1_interior"); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	visible := w.VisibleNPCs()
	if len(visible) != 1 || visible[0] != shopkeeper {
		t.Fatalf("visible in mart = %d NPCs, want SHOPKEEPER", len(visible))
	}

	if err := w.Exit(ctx); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	if shopkeeper.Wandering {
		t.Error("SHOPKEEPER should stay indoors")
	}
}

func TestTransitionErrors(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld(t)

	if err := w.Exit(ctx); !errors.Is(err, ErrNotInside) {
		t.Errorf("Exit outside = %v, want ErrNotInside", err)
	}
	if err := w.Enter(ctx, "castle_interior"); !errors.Is(err, ErrNoInterior) {
		t.Errorf("Enter unknown = %v, want ErrNoInterior", err)
	}
	if !w.Location().IsOutside() {
		t.Fatal("failed enter changed location")
	}
	if err := w.Enter(ctx, "house2_interior"); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if err := w.Enter(ctx, "house3_interior"); !errors.Is(err, ErrNotOutside) {
		t.Errorf("Enter while inside = %v, want ErrNotOutside", err)
	}
}

func TestUpdateUsesActiveAreaOnly(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld(t)

	if err := w.Enter(ctx, "house1_interior"); err != nil {
		t.Fatalf("Enter: %v", err)
	}

	scientist := npc(t, w, "SCIENTIST")
	sx, sy := scientist.X, scientist.Y

	// Walk straight up from the exit; the rug is walkable and the top wall
	// band stops the player.
	for i := 0; i < 300; i++ {
		w.Update(frame, entity.Intent{Up: true})
	}
	if got := w.Player().Y; got != w.Grid().TileSize {
		t.Errorf("player Y = %v, want stopped under the wall at %v", got, w.Grid().TileSize)
	}
	if scientist.X != sx || scientist.Y != sy {
		t.Error("outdoor NPC moved while the player was inside")
	}

	if err := w.Exit(ctx); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	before := map[string]world.Rect{}
	for _, n := range w.VisibleNPCs() {
		before[n.ID] = n.Rect()
	}
	for i := 0; i < 600; i++ {
		w.Update(frame, entity.Intent{})
	}
	moved := false
	for _, n := range w.VisibleNPCs() {
		if n.Rect() != before[n.ID] {
			moved = true
		}
	}
	if !moved {
		t.Error("no outdoor NPC wandered in ten seconds")
	}
}

func TestPrepareDoesNotMove(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld(t)
	house2 := w.Grid().Buildings()[1]
	standAtDoor(w, house2)
	before := w.Player().Rect()

	in := w.Prepare()
	if in.Kind != InteractEnter || in.Door.Target != "house2_interior" {
		t.Fatalf("Prepare = %v %+v, want enter house2", in.Kind, in.Door)
	}
	if !w.Location().IsOutside() || w.Player().Rect() != before {
		t.Fatal("Prepare should not change location or position")
	}

	if err := w.UseDoor(ctx, in.Door); err != nil {
		t.Fatalf("UseDoor: %v", err)
	}
	if w.Location() != Inside("house2_interior") {
		t.Errorf("location = %v", w.Location())
	}
}
