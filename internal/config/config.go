// Package config holds the immutable game configuration injected into every
// constructor. Nothing in the game reads configuration from globals.
package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"
)

// SaveBackend selects where the save blob is kept.
type SaveBackend string

const (
	SaveFile     SaveBackend = "file"
	SaveBolt     SaveBackend = "bolt"
	SavePostgres SaveBackend = "postgres"
	SaveNone     SaveBackend = "none"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Only NPC wandering is random; the
	// town layout is fixed. A seed of 0 means a random seed will be generated.
	Seed int64

	TileSize       int // Pixel size of one grid cell
	ViewportWidth  int // Camera viewport in pixels
	ViewportHeight int
	WorldCols      int // Outdoor grid dimensions in tiles
	WorldRows      int

	PlayerWidth  float64
	PlayerHeight float64
	PlayerSpeed  float64 // Pixels per frame
	PlayerStartX float64
	PlayerStartY float64

	NPCSize         float64
	NPCSpeed        float64       // Pixels per frame while wandering
	NPCWanderPause  time.Duration // Base time a wander direction is held
	NPCWanderJitter time.Duration // Upper bound of the random extra hold time
	NPCLeashMargin  float64       // Wanderers stay this far inside the area bounds

	InteractionRange float64 // Euclidean NPC talk radius in pixels

	TicksPerSecond  int
	TypewriterTicks int // Frames per revealed dialog character
	FadeTicks       int // Length of a door transition

	AutosaveInterval time.Duration
	OfflineCap       time.Duration

	SaveBackend SaveBackend
	SavePath    string // File or bbolt path
	SaveDSN     string // PostgreSQL connection string
	SaveSlot    string

	AudioEnabled bool
	AudioVolume  float64

	LogLevel  string
	LogFormat string

	TraceSampleRatio float64 // Fraction of root traces exported
}

// Default returns the stock Noxis Town configuration.
func Default() Config {
	return Config{
		TileSize:       32,
		ViewportWidth:  800,
		ViewportHeight: 600,
		WorldCols:      32,
		WorldRows:      36,

		PlayerWidth:  24,
		PlayerHeight: 32,
		PlayerSpeed:  2,
		PlayerStartX: 15 * 32,
		PlayerStartY: 13 * 32,

		NPCSize:         24,
		NPCSpeed:        1,
		NPCWanderPause:  2 * time.Second,
		NPCWanderJitter: time.Second,
		NPCLeashMargin:  100,

		InteractionRange: 50,

		TicksPerSecond:  60,
		TypewriterTicks: 2,
		FadeTicks:       30,

		AutosaveInterval: 10 * time.Second,
		OfflineCap:       8 * time.Hour,

		SaveBackend: SaveFile,
		SavePath:    "noxis-save.json",
		SaveSlot:    "default",

		AudioEnabled: true,
		AudioVolume:  0.5,

		LogLevel:  "info",
		LogFormat: "console",

		TraceSampleRatio: 1,
	}
}

// WorldWidth returns the outdoor world width in pixels.
func (c Config) WorldWidth() float64 { return float64(c.WorldCols * c.TileSize) }

// WorldHeight returns the outdoor world height in pixels.
func (c Config) WorldHeight() float64 { return float64(c.WorldRows * c.TileSize) }

// FrameDuration returns the simulated time covered by one frame.
func (c Config) FrameDuration() time.Duration {
	if c.TicksPerSecond <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TicksPerSecond)
}

// NewRand returns the random source for NPC wandering. A zero Seed seeds
// from the clock.
func (c Config) NewRand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Validate reports the first setting that would break the world model.
func (c Config) Validate() error {
	switch {
	case c.TileSize <= 0:
		return errors.New("tile size must be positive")
	case c.ViewportWidth <= 0 || c.ViewportHeight <= 0:
		return errors.New("viewport must be positive")
	case c.WorldCols <= 0 || c.WorldRows <= 0:
		return errors.New("world dimensions must be positive")
	case c.PlayerWidth <= 0 || c.PlayerHeight <= 0 || c.NPCSize <= 0:
		return errors.New("entity sizes must be positive")
	case c.TypewriterTicks <= 0 || c.FadeTicks <= 0:
		return errors.New("overlay tick counts must be positive")
	}
	switch c.SaveBackend {
	case SaveFile, SaveBolt, SaveNone:
	case SavePostgres:
		if c.SaveDSN == "" {
			return errors.New("postgres save backend needs a DSN")
		}
	default:
		return fmt.Errorf("unknown save backend %q", c.SaveBackend)
	}
	return nil
}

// FromEnv overlays NOXIS_* environment variables on base. Unparseable values
// are ignored and the base value is kept.
func FromEnv(base Config) Config {
	cfg := base

	if v := os.Getenv("NOXIS_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v := os.Getenv("NOXIS_SAVE_BACKEND"); v != "" {
		cfg.SaveBackend = SaveBackend(v)
	}
	if v := os.Getenv("NOXIS_SAVE_PATH"); v != "" {
		cfg.SavePath = v
	}
	if v := os.Getenv("NOXIS_SAVE_DSN"); v != "" {
		cfg.SaveDSN = v
	}
	if v := os.Getenv("NOXIS_SAVE_SLOT"); v != "" {
		cfg.SaveSlot = v
	}
	if v := os.Getenv("NOXIS_AUTOSAVE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.AutosaveInterval = d
		}
	}
	if v := os.Getenv("NOXIS_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AudioEnabled = b
		}
	}
	// Volume is given as 0-100
	if v := os.Getenv("NOXIS_AUDIO_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AudioVolume = min(max(float64(n)/100.0, 0), 1)
		}
	}
	if v := os.Getenv("NOXIS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("NOXIS_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("NOXIS_TRACE_RATIO"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.TraceSampleRatio = f
		}
	}

	return cfg
}
