package save

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/samdwyer/noxistown/internal/config"
)

var sample = Blob{
	Money:    1234.5,
	Upgrades: []Holding{{ID: "neuron_1", Owned: 3}, {ID: "synapse_1", Owned: 1}},
	LastSave: 1700000000000,
}

func equalBlob(a, b Blob) bool {
	if a.Money != b.Money || a.LastSave != b.LastSave || len(a.Upgrades) != len(b.Upgrades) {
		return false
	}
	for i := range a.Upgrades {
		if a.Upgrades[i] != b.Upgrades[i] {
			return false
		}
	}
	return true
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"truncated", `{"money": 5, "upgrades": [`},
		{"wrong type", `{"money": "lots"}`},
		{"negative money", `{"money": -1}`},
		{"negative owned", `{"money": 1, "upgrades": [{"id": "neuron_1", "owned": -2}]}`},
		{"missing id", `{"money": 1, "upgrades": [{"owned": 2}]}`},
	}

	for _, tt := range tests {
		if _, err := Decode([]byte(tt.data)); err == nil {
			t.Errorf("%s: Decode succeeded, want error", tt.name)
		}
	}
}

func TestDecodeWireFormat(t *testing.T) {
	b, err := Decode([]byte(`{"money":42,"upgrades":[{"id":"neuron_1","owned":2}],"lastSave":1700000000000}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b.Money != 42 || len(b.Upgrades) != 1 || b.Upgrades[0].Owned != 2 {
		t.Errorf("Decode = %+v", b)
	}
	if b.SavedAt().UnixMilli() != 1700000000000 {
		t.Errorf("SavedAt = %v", b.SavedAt())
	}
	if !(Blob{}).SavedAt().IsZero() || !(Blob{}).IsZero() {
		t.Error("zero blob should report zero time")
	}
}

func testStoreRoundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load on empty store = %v, want ErrNotFound", err)
	}

	if err := Write(ctx, store, sample); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := LoadOrDefault(ctx, store, zaptest.NewLogger(t))
	if !equalBlob(got, sample) {
		t.Errorf("round trip = %+v, want %+v", got, sample)
	}

	// A second write replaces the first
	next := Blob{Money: 7, LastSave: sample.LastSave + 1}
	if err := Write(ctx, store, next); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if got := LoadOrDefault(ctx, store, zaptest.NewLogger(t)); !equalBlob(got, next) {
		t.Errorf("after overwrite = %+v, want %+v", got, next)
	}
}

func TestFileStore(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "save.json"))
	defer store.Close()
	testStoreRoundTrip(t, store)
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.db")
	store, err := NewBoltStore(path, "slot-a")
	if err != nil {
		t.Fatalf("NewBoltStore: %v", err)
	}
	testStoreRoundTrip(t, store)

	// Slots are independent keys in the same database
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	other, err := NewBoltStore(path, "slot-b")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer other.Close()
	if _, err := other.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load of unused slot = %v, want ErrNotFound", err)
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "save.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	got := LoadOrDefault(ctx, NewFileStore(path), zaptest.NewLogger(t))
	if !got.IsZero() {
		t.Errorf("malformed save = %+v, want zero blob", got)
	}

	got = LoadOrDefault(ctx, Discard{}, zaptest.NewLogger(t))
	if !got.IsZero() {
		t.Errorf("missing save = %+v, want zero blob", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.SavePath = filepath.Join(t.TempDir(), "save.db")

	tests := []struct {
		backend config.SaveBackend
		wantErr bool
	}{
		{config.SaveFile, false},
		{config.SaveBolt, false},
		{config.SaveNone, false},
		{config.SaveBackend("floppy"), true},
	}

	for _, tt := range tests {
		cfg.SaveBackend = tt.backend
		store, err := Open(ctx, cfg)
		if (err != nil) != tt.wantErr {
			t.Errorf("Open(%s) error = %v, wantErr %v", tt.backend, err, tt.wantErr)
			continue
		}
		if store != nil {
			store.Close()
		}
	}
}
