package gamedata

// UpgradeDef defines a shop upgrade loaded from JSON.
type UpgradeDef struct {
	ID             string  `json:"id"`             // Unique identifier (e.g., "neuron_1")
	Name           string  `json:"name"`           // Display name
	Description    string  `json:"description"`    // Shop blurb
	BaseCost       float64 `json:"baseCost"`       // Price of the first unit
	BaseIncome     float64 `json:"baseIncome"`     // Money per second per unit owned
	CostMultiplier float64 `json:"costMultiplier"` // Price growth per unit owned
}

// UpgradesFile represents the structure of upgrades.json.
type UpgradesFile struct {
	Upgrades []UpgradeDef `json:"upgrades"`
}

// LoadUpgrades loads upgrade definitions from the embedded upgrades.json file.
func LoadUpgrades() ([]UpgradeDef, error) {
	file, err := Load[UpgradesFile]("upgrades.json")
	if err != nil {
		return nil, err
	}
	return file.Upgrades, nil
}
