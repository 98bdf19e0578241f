package gamedata

import (
	"image/color"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadUpgrades(t *testing.T) {
	upgrades, err := LoadUpgrades()
	if err != nil {
		t.Fatalf("Failed to load upgrades: %v", err)
	}

	if len(upgrades) != 5 {
		t.Errorf("Expected 5 upgrades, got %d", len(upgrades))
	}

	for _, u := range upgrades {
		if u.BaseCost <= 0 {
			t.Errorf("Upgrade %q has non-positive base cost %v", u.ID, u.BaseCost)
		}
		if u.BaseIncome <= 0 {
			t.Errorf("Upgrade %q has non-positive income %v", u.ID, u.BaseIncome)
		}
		if u.CostMultiplier <= 1 {
			t.Errorf("Upgrade %q cost multiplier %v should exceed 1", u.ID, u.CostMultiplier)
		}
	}
}

func TestUpgradeRegistry(t *testing.T) {
	registry, err := LoadUpgradeRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != 5 {
		t.Errorf("Expected 5 upgrades, got %d", registry.Count())
	}

	neuron := registry.GetByID("neuron_1")
	if neuron == nil {
		t.Fatal("neuron_1 not found by ID")
	}
	if neuron.Name != "Basic Neuron" || neuron.BaseCost != 10 {
		t.Errorf("neuron_1 = %+v", neuron)
	}

	if registry.GetByID("nonexistent") != nil {
		t.Error("Expected nil for unknown upgrade")
	}

	// Shop order is file order
	if first := registry.All()[0].ID; first != "neuron_1" {
		t.Errorf("First upgrade = %q, want neuron_1", first)
	}
}

func TestLoadRoster(t *testing.T) {
	npcs, err := LoadRoster()
	if err != nil {
		t.Fatalf("Failed to load roster: %v", err)
	}

	homes := map[string]string{}
	shops := 0
	for _, n := range npcs {
		homes[n.ID] = n.Home
		if n.Shop {
			shops++
		}
	}

	if shops != 1 {
		t.Errorf("Expected exactly one shopkeeper, got %d", shops)
	}
	if homes["SHOPKEEPER"] != "building1_interior" {
		t.Errorf("SHOPKEEPER home = %q", homes["SHOPKEEPER"])
	}
	if homes["SCIENTIST"] != HomeOutside {
		t.Errorf("SCIENTIST home = %q, want outside", homes["SCIENTIST"])
	}
}

func TestNPCDialogPages(t *testing.T) {
	npcs := MustLoad[NPCsFile]("npcs.json").NPCs
	for _, n := range npcs {
		for i, line := range n.Dialogs {
			for _, page := range strings.Split(line, "|") {
				if strings.TrimSpace(page) == "" {
					t.Errorf("%s line %d has an empty page", n.ID, i)
				}
			}
		}
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"upgrades.json": {Data: []byte(`{"upgrades":[{"id":"x","name":"X","baseCost":5,"baseIncome":2,"costMultiplier":1.5}]}`)},
		"broken.json":   {Data: []byte(`{"upgrades":[`)},
	}

	file, err := LoadFS[UpgradesFile](fsys, "upgrades.json")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if len(file.Upgrades) != 1 || file.Upgrades[0].BaseIncome != 2 {
		t.Errorf("LoadFS = %+v", file)
	}

	if _, err := LoadFS[UpgradesFile](fsys, "broken.json"); err == nil {
		t.Error("Expected parse error for truncated JSON")
	}
	if _, err := LoadFS[UpgradesFile](fsys, "missing.json"); err == nil {
		t.Error("Expected read error for missing file")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		want    color.RGBA
		wantErr bool
	}{
		{"#FF0000", color.RGBA{R: 255, A: 255}, false},
		{"00ff80", color.RGBA{G: 255, B: 128, A: 255}, false},
		{"#e8a048", color.RGBA{R: 0xe8, G: 0xa0, B: 0x48, A: 255}, false},
		{"#FFF", color.RGBA{}, true},
		{"#GGGGGG", color.RGBA{}, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.hex)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.hex, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.hex, got, tt.want)
		}
	}
}

func TestNPCDefRGBAFallback(t *testing.T) {
	d := NPCDef{Color: "not a color"}
	if got := d.RGBA(); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("RGBA fallback = %v, want white", got)
	}
}
