package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/noxistown/internal/config"
	"github.com/samdwyer/noxistown/internal/game"
	"github.com/samdwyer/noxistown/internal/input"
)

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want input.Key
		ok   bool
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), input.KeyUp, true},
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), input.KeyLeft, true},
		{"wasd down", tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), input.KeyDown, true},
		{"wasd right upper", tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModNone), input.KeyRight, true},
		{"space interacts", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), input.KeyInteract, true},
		{"enter interacts", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), input.KeyInteract, true},
		{"escape cancels", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), input.KeyCancel, true},
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), input.KeyQuit, true},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), input.KeyQuit, true},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), 0, false},
		{"unbound key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), 0, false},
	}

	for _, tt := range tests {
		got, ok := keyFor(tt.ev)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("%s: keyFor = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEventsCloseWithoutReader(t *testing.T) {
	sim := tcell.NewSimulationScreen("")
	if err := sim.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s := newScreen(sim)
	events := s.Events()

	// Fill the buffer so the forwarder is stuck sending
	deadline := time.Now().Add(2 * time.Second)
	for len(events) < cap(events) && time.Now().Before(deadline) {
		sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
		time.Sleep(time.Millisecond)
	}
	if len(events) < cap(events) {
		t.Fatalf("buffered %d events, want %d", len(events), cap(events))
	}
	sim.InjectKey(tcell.KeyRune, 'y', tcell.ModNone)

	s.Close()

	closed := make(chan struct{})
	go func() {
		for range events {
		}
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("event channel still open after Close")
	}
}

func TestHoldTracker(t *testing.T) {
	h := newHoldTracker(100 * time.Millisecond)
	start := time.Unix(1000, 0)

	h.touch(input.KeyUp, start)
	h.touch(input.KeyLeft, start.Add(80*time.Millisecond))

	if got := h.expired(start.Add(100 * time.Millisecond)); len(got) != 0 {
		t.Errorf("expired at the window edge = %v, want none", got)
	}

	got := h.expired(start.Add(150 * time.Millisecond))
	if len(got) != 1 || got[0] != input.KeyUp {
		t.Errorf("expired after 150ms = %v, want [up]", got)
	}

	// Expired keys are forgotten
	if got := h.expired(start.Add(150 * time.Millisecond)); len(got) != 0 {
		t.Errorf("second expiry = %v, want none", got)
	}

	// Auto-repeat keeps a key alive
	h.touch(input.KeyLeft, start.Add(170*time.Millisecond))
	if got := h.expired(start.Add(260 * time.Millisecond)); len(got) != 0 {
		t.Errorf("repeated key expired early: %v", got)
	}
}

func newTestGame(t *testing.T) *game.Game {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 1
	g, err := game.New(context.Background(), cfg, game.Deps{})
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return g
}

func findRune(f *Frame, r rune) (int, int, bool) {
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if f.Rune(x, y) == r {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func TestComposeDrawsPlayerAndHUD(t *testing.T) {
	g := newTestGame(t)

	for _, size := range [][2]int{{120, 40}, {60, 20}} {
		f := Compose(g, size[0], size[1])

		if !strings.Contains(f.Line(0), "$0") {
			t.Errorf("%dx%d: HUD = %q, want money", size[0], size[1], f.Line(0))
		}
		if !strings.Contains(f.Line(0), "outside") {
			t.Errorf("%dx%d: HUD = %q, want location", size[0], size[1], f.Line(0))
		}

		_, y, ok := findRune(f, '@')
		if !ok {
			t.Errorf("%dx%d: player not drawn", size[0], size[1])
			continue
		}
		if y < hudRows || y >= f.Height-footerRows {
			t.Errorf("%dx%d: player row %d outside the map area", size[0], size[1], y)
		}
	}
}

func TestComposeTinyTerminal(t *testing.T) {
	g := newTestGame(t)

	// No map rows at all must not panic
	f := Compose(g, 10, 3)
	if f.Width != 10 || f.Height != 3 {
		t.Errorf("frame = %dx%d, want 10x3", f.Width, f.Height)
	}
	if _, _, ok := findRune(f, '@'); ok {
		t.Error("player drawn with no map rows")
	}
}

func TestFrameBounds(t *testing.T) {
	f := newFrame(4, 2)
	f.set(-1, 0, 'x', tcell.StyleDefault)
	f.set(4, 1, 'x', tcell.StyleDefault)
	f.text(2, 1, "abcdef", tcell.StyleDefault)

	if got := f.Line(1); got != "  ab" {
		t.Errorf("Line(1) = %q, want %q", got, "  ab")
	}
	if f.Rune(9, 9) != 0 {
		t.Error("Rune outside the frame should be 0")
	}
}

func TestGlyph(t *testing.T) {
	if got := glyph("Tobin"); got != 'T' {
		t.Errorf("glyph(Tobin) = %q", got)
	}
	if got := glyph(""); got != '&' {
		t.Errorf("glyph(\"\") = %q", got)
	}
}
