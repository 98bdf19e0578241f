// Package economy is the incremental-clicker side of the game: money,
// upgrades bought from the shopkeeper, and the passive income they earn.
package economy

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/samdwyer/noxistown/internal/gamedata"
	"github.com/samdwyer/noxistown/internal/save"
)

var (
	// ErrUnknownUpgrade is returned when buying an upgrade that is not in
	// the registry.
	ErrUnknownUpgrade = errors.New("unknown upgrade")
	// ErrInsufficientFunds is returned when the player cannot afford an
	// upgrade.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Item is one shop row.
type Item struct {
	Def        *gamedata.UpgradeDef
	Owned      int
	Cost       float64
	Affordable bool
}

// Ledger tracks money and owned upgrades.
type Ledger struct {
	registry *gamedata.UpgradeRegistry
	money    float64
	owned    map[string]int
}

// NewLedger creates an empty ledger over the given upgrades.
func NewLedger(registry *gamedata.UpgradeRegistry) *Ledger {
	return &Ledger{
		registry: registry,
		owned:    make(map[string]int, registry.Count()),
	}
}

// Money returns the current balance.
func (l *Ledger) Money() float64 {
	return l.money
}

// Owned returns how many of an upgrade have been bought.
func (l *Ledger) Owned(id string) int {
	return l.owned[id]
}

// Cost returns the price of the next unit: floor(baseCost * multiplier^owned).
func (l *Ledger) Cost(id string) (float64, bool) {
	def := l.registry.GetByID(id)
	if def == nil {
		return 0, false
	}
	return cost(def, l.owned[id]), true
}

func cost(def *gamedata.UpgradeDef, owned int) float64 {
	return math.Floor(def.BaseCost * math.Pow(def.CostMultiplier, float64(owned)))
}

// IncomePerSecond sums baseIncome * owned over all upgrades.
func (l *Ledger) IncomePerSecond() float64 {
	var total float64
	for _, def := range l.registry.All() {
		total += def.BaseIncome * float64(l.owned[def.ID])
	}
	return total
}

// Buy spends money on one unit of an upgrade.
func (l *Ledger) Buy(id string) error {
	def := l.registry.GetByID(id)
	if def == nil {
		return fmt.Errorf("buy %s: %w", id, ErrUnknownUpgrade)
	}
	price := cost(def, l.owned[id])
	if l.money < price {
		return fmt.Errorf("buy %s for %s: %w", id, FormatMoney(price), ErrInsufficientFunds)
	}
	l.money -= price
	l.owned[id]++
	return nil
}

// Tick credits dt worth of passive income.
func (l *Ledger) Tick(dt time.Duration) {
	l.money += l.IncomePerSecond() * dt.Seconds()
}

// Deposit adds money directly.
func (l *Ledger) Deposit(amount float64) {
	if amount > 0 {
		l.money += amount
	}
}

// Items returns the shop rows in registry order.
func (l *Ledger) Items() []Item {
	defs := l.registry.All()
	items := make([]Item, len(defs))
	for i := range defs {
		def := &defs[i]
		c := cost(def, l.owned[def.ID])
		items[i] = Item{Def: def, Owned: l.owned[def.ID], Cost: c, Affordable: l.money >= c}
	}
	return items
}

// Snapshot captures the ledger as a save blob stamped with now.
func (l *Ledger) Snapshot(now time.Time) save.Blob {
	b := save.Blob{Money: l.money, LastSave: now.UnixMilli()}
	for _, def := range l.registry.All() {
		if n := l.owned[def.ID]; n > 0 {
			b.Upgrades = append(b.Upgrades, save.Holding{ID: def.ID, Owned: n})
		}
	}
	return b
}

// Restore replaces the ledger state with a saved blob. Holdings of upgrades
// that no longer exist are skipped and returned.
func (l *Ledger) Restore(b save.Blob) (skipped []string) {
	l.money = b.Money
	l.owned = make(map[string]int, len(b.Upgrades))
	for _, h := range b.Upgrades {
		if l.registry.GetByID(h.ID) == nil {
			skipped = append(skipped, h.ID)
			continue
		}
		l.owned[h.ID] = h.Owned
	}
	return skipped
}

// OfflineEarnings is the income earned while the game was closed, capped at
// maxAway. Negative elapsed time (a clock that went backwards) earns nothing.
func OfflineEarnings(incomePerSecond float64, elapsed, maxAway time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return incomePerSecond * min(elapsed, maxAway).Seconds()
}

// FormatMoney renders an amount with a K or M suffix above a thousand.
func FormatMoney(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.2fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.2fK", v/1_000)
	default:
		return fmt.Sprintf("%d", int64(math.Floor(v)))
	}
}
