package save

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/noxistown/internal/config"
	"github.com/samdwyer/noxistown/internal/telemetry"
)

// ErrNotFound is returned by Load when no save exists yet.
var ErrNotFound = errors.New("save not found")

// Store keeps one blob.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// Open returns the store selected by cfg.SaveBackend.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.SaveBackend {
	case config.SaveFile:
		return NewFileStore(cfg.SavePath), nil
	case config.SaveBolt:
		store, err := NewBoltStore(cfg.SavePath, cfg.SaveSlot)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.SavePostgres:
		store, err := NewPostgresStore(ctx, cfg.SaveDSN, cfg.SaveSlot)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.SaveNone:
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("unknown save backend %q", cfg.SaveBackend)
	}
}

// LoadOrDefault reads the blob from store. A missing or unreadable save is
// logged and replaced by the zero blob; it never stops the game.
func LoadOrDefault(ctx context.Context, store Store, log *zap.Logger) Blob {
	ctx, span := telemetry.Tracer("save").Start(ctx, "save.load")
	defer span.End()

	data, err := store.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		log.Info("no save found, starting fresh")
		span.SetAttributes(attribute.Bool("save.found", false))
		return Blob{}
	}
	if err != nil {
		log.Warn("failed to read save, starting fresh", zap.Error(telemetry.Fail(span, err)))
		return Blob{}
	}

	b, err := Decode(data)
	if err != nil {
		log.Warn("discarding malformed save", zap.Error(telemetry.Fail(span, err)), zap.Int("bytes", len(data)))
		return Blob{}
	}

	span.SetAttributes(
		attribute.Bool("save.found", true),
		attribute.Float64("save.money", b.Money),
		attribute.Int("save.upgrades", len(b.Upgrades)),
	)
	return b
}

// Write encodes and stores a blob.
func Write(ctx context.Context, store Store, b Blob) error {
	ctx, span := telemetry.Tracer("save").Start(ctx, "save.write")
	defer span.End()

	data, err := Encode(b)
	if err != nil {
		return telemetry.Fail(span, err)
	}
	if err := store.Save(ctx, data); err != nil {
		return telemetry.Fail(span, fmt.Errorf("failed to write save: %w", err))
	}
	span.SetAttributes(attribute.Int("save.bytes", len(data)))
	return nil
}

// Discard is a Store that keeps nothing.
type Discard struct{}

// Load always reports ErrNotFound.
func (Discard) Load(context.Context) ([]byte, error) { return nil, ErrNotFound }

// Save drops the data.
func (Discard) Save(context.Context, []byte) error { return nil }

// Close does nothing.
func (Discard) Close() error { return nil }
