package gamedata

import "errors"

// UpgradeRegistry holds loaded upgrade definitions in shop order.
type UpgradeRegistry struct {
	upgrades []UpgradeDef
	byID     map[string]*UpgradeDef
}

// NewUpgradeRegistry creates a registry from loaded upgrade definitions.
func NewUpgradeRegistry(upgrades []UpgradeDef) *UpgradeRegistry {
	registry := &UpgradeRegistry{
		upgrades: upgrades,
		byID:     make(map[string]*UpgradeDef, len(upgrades)),
	}
	for i := range upgrades {
		registry.byID[upgrades[i].ID] = &upgrades[i]
	}
	return registry
}

// LoadUpgradeRegistry loads and creates a registry from the embedded upgrades.json.
func LoadUpgradeRegistry() (*UpgradeRegistry, error) {
	upgrades, err := LoadUpgrades()
	if err != nil {
		return nil, err
	}
	if len(upgrades) == 0 {
		return nil, errors.New("no upgrades loaded from upgrades.json")
	}
	return NewUpgradeRegistry(upgrades), nil
}

// GetByID returns the upgrade definition with the given ID, or nil if not found.
func (r *UpgradeRegistry) GetByID(id string) *UpgradeDef {
	return r.byID[id]
}

// All returns all upgrade definitions in shop order.
func (r *UpgradeRegistry) All() []UpgradeDef {
	return r.upgrades
}

// Count returns the number of upgrades in the registry.
func (r *UpgradeRegistry) Count() int {
	return len(r.upgrades)
}

// LoadRoster loads the NPC roster and checks that IDs are unique and every
// NPC has something to say.
func LoadRoster() ([]NPCDef, error) {
	npcs, err := LoadNPCs()
	if err != nil {
		return nil, err
	}
	if len(npcs) == 0 {
		return nil, errors.New("no npcs loaded from npcs.json")
	}
	seen := make(map[string]bool, len(npcs))
	for _, n := range npcs {
		if seen[n.ID] {
			return nil, errors.New("duplicate npc id " + n.ID)
		}
		seen[n.ID] = true
		if len(n.Dialogs) == 0 {
			return nil, errors.New("npc " + n.ID + " has no dialog lines")
		}
	}
	return npcs, nil
}
