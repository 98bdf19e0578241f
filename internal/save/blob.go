// Package save persists the incremental-clicker progress as a single JSON
// blob behind a small key-value Store.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// Holding is how many units of one upgrade are owned.
type Holding struct {
	ID    string `json:"id"`
	Owned int    `json:"owned"`
}

// Blob is the persisted progress.
type Blob struct {
	Money    float64   `json:"money"`
	Upgrades []Holding `json:"upgrades"`
	LastSave int64     `json:"lastSave"` // Unix milliseconds
}

// SavedAt returns LastSave as a time. The zero blob reports the zero time.
func (b Blob) SavedAt() time.Time {
	if b.LastSave == 0 {
		return time.Time{}
	}
	return time.UnixMilli(b.LastSave)
}

// IsZero reports whether the blob carries no progress.
func (b Blob) IsZero() bool {
	return b.Money == 0 && len(b.Upgrades) == 0 && b.LastSave == 0
}

// Encode marshals a blob.
func Encode(b Blob) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode save: %w", err)
	}
	return data, nil
}

// Decode unmarshals and validates a blob.
func Decode(data []byte) (Blob, error) {
	var b Blob
	if err := json.Unmarshal(data, &b); err != nil {
		return Blob{}, fmt.Errorf("failed to decode save: %w", err)
	}
	if err := b.validate(); err != nil {
		return Blob{}, fmt.Errorf("invalid save: %w", err)
	}
	return b, nil
}

func (b Blob) validate() error {
	if b.Money < 0 || math.IsInf(b.Money, 0) {
		return fmt.Errorf("money %v out of range", b.Money)
	}
	for _, h := range b.Upgrades {
		if h.ID == "" {
			return errors.New("upgrade without id")
		}
		if h.Owned < 0 {
			return fmt.Errorf("upgrade %s owned %d", h.ID, h.Owned)
		}
	}
	return nil
}
