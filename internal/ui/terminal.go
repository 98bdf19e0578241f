package ui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/samdwyer/noxistown/internal/game"
	"github.com/samdwyer/noxistown/internal/input"
)

// holdWindow is how long a direction stays held after its last key event.
// Terminals report presses and auto-repeat but never releases, so a key
// counts as released once its repeats stop arriving.
const holdWindow = 120 * time.Millisecond

// Terminal runs the game in a tcell screen.
type Terminal struct {
	game     *game.Game
	screen   *Screen
	renderer *Renderer
	log      *zap.Logger

	keys  input.KeyState
	holds holdTracker
}

// NewTerminal opens the terminal screen for g.
func NewTerminal(g *game.Game, log *zap.Logger) (*Terminal, error) {
	screen, err := NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{
		game:     g,
		screen:   screen,
		renderer: NewRenderer(screen),
		log:      log,
		holds:    newHoldTracker(holdWindow),
	}, nil
}

// Run drives the frame loop until the player quits or ctx is cancelled.
func (t *Terminal) Run(ctx context.Context) error {
	defer t.screen.Close()

	frame := t.game.Config().FrameDuration()
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := t.screen.Events()
	t.renderer.Render(t.game)

	for !t.game.Quit() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			t.handleEvent(ev, time.Now())
		case now := <-ticker.C:
			for _, k := range t.holds.expired(now) {
				t.keys.Release(k)
			}
			t.game.Frame(ctx, frame, &t.keys)
			t.renderer.Render(t.game)
		}
	}
	t.log.Info("terminal loop finished")
	return nil
}

func (t *Terminal) handleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		k, ok := keyFor(ev)
		if !ok {
			return
		}
		t.keys.Press(k)
		if isDirection(k) {
			t.holds.touch(k, now)
			return
		}
		// Non-movement keys are one-shot: the edge survives until the next
		// frame consumes it.
		t.keys.Release(k)
	}
}

// keyFor maps a terminal key event onto a game key.
func keyFor(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyUp, true
	case tcell.KeyDown:
		return input.KeyDown, true
	case tcell.KeyLeft:
		return input.KeyLeft, true
	case tcell.KeyRight:
		return input.KeyRight, true
	case tcell.KeyEnter:
		return input.KeyInteract, true
	case tcell.KeyEscape:
		return input.KeyCancel, true
	case tcell.KeyCtrlC:
		return input.KeyQuit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return input.KeyUp, true
		case 's', 'S':
			return input.KeyDown, true
		case 'a', 'A':
			return input.KeyLeft, true
		case 'd', 'D':
			return input.KeyRight, true
		case ' ', 'e', 'E':
			return input.KeyInteract, true
		case 'q', 'Q':
			return input.KeyQuit, true
		}
	}
	return 0, false
}

func isDirection(k input.Key) bool {
	return k == input.KeyUp || k == input.KeyDown || k == input.KeyLeft || k == input.KeyRight
}

// holdTracker remembers when each direction key last reported activity.
type holdTracker struct {
	window time.Duration
	seen   map[input.Key]time.Time
}

func newHoldTracker(window time.Duration) holdTracker {
	return holdTracker{window: window, seen: make(map[input.Key]time.Time)}
}

func (h *holdTracker) touch(k input.Key, now time.Time) {
	h.seen[k] = now
}

// expired returns and forgets the keys idle for longer than the window.
func (h *holdTracker) expired(now time.Time) []input.Key {
	var out []input.Key
	for k, last := range h.seen {
		if now.Sub(last) > h.window {
			out = append(out, k)
			delete(h.seen, k)
		}
	}
	return out
}
