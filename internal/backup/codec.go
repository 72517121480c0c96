// Package backup serializes the full persisted state to and from a
// portable snapshot.
package backup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cinenz0/finance-tracker/internal/common"
	"github.com/cinenz0/finance-tracker/internal/store"
)

// FormatVersion tags every snapshot this codec writes.
const FormatVersion = "1.0"

// versionField is the reserved snapshot object key for the format tag.
const versionField = "version"

// Snapshot carries each persisted key as its raw pre-serialized string.
// Values are never re-parsed; restore writes them back verbatim.
type Snapshot struct {
	Version string
	Keys    map[string]string
}

// MarshalJSON flattens the snapshot into one object: the version tag
// alongside each persisted key.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(s.Keys)+1)
	for k, v := range s.Keys {
		flat[k] = v
	}
	flat[versionField] = s.Version
	return json.Marshal(flat)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	s.Version = flat[versionField]
	delete(flat, versionField)
	s.Keys = flat
	return nil
}

// Decode parses snapshot bytes, failing with a restore error when the
// payload is not a snapshot object.
func Decode(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: snapshot is unreadable: %v", common.ErrRestore, err)
	}
	if snap.Version == "" {
		return nil, fmt.Errorf("%w: snapshot has no version tag", common.ErrRestore)
	}
	return &snap, nil
}

// Codec exports and restores the persisted state through the key-value
// adapter.
type Codec struct {
	adapter store.Adapter
}

// NewCodec creates a codec over the given adapter.
func NewCodec(adapter store.Adapter) *Codec {
	return &Codec{adapter: adapter}
}

// Export reads every persisted key owned by this system into a
// snapshot. Absent keys are omitted.
func (c *Codec) Export(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Version: FormatVersion,
		Keys:    make(map[string]string),
	}
	for _, key := range store.AllKeys() {
		value, ok, err := c.adapter.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", common.ErrPersistence, key, err)
		}
		if ok {
			snap.Keys[key] = value
		}
	}
	return snap, nil
}

// Restore overwrites each persisted key present in the snapshot
// verbatim. Restore is destructive; callers must obtain explicit user
// confirmation before invoking it, and reload any open ledgers and
// registries afterwards.
func (c *Codec) Restore(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: no snapshot", common.ErrRestore)
	}
	for _, key := range store.AllKeys() {
		value, ok := snap.Keys[key]
		if !ok {
			continue
		}
		if err := c.adapter.Set(ctx, key, value); err != nil {
			return fmt.Errorf("%w: writing %s: %v", common.ErrRestore, key, err)
		}
	}
	return nil
}
