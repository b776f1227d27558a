package internal

import (
	"database/sql"
	"time"
)

// snapshotKey is the single agentState row holding the whole snapshot.
// Saving the entire snapshot as one value means no partial-field update is
// ever observable by another reader.
const snapshotKey = "widgetSnapshot"

// StateStore persists the widget snapshot. The store is shared by every
// page running the agent with no locking; concurrent writers are
// last-write-wins. Revision/UpdatedAt on the snapshot let a reader detect
// a lost update, but no reconciliation is attempted.
type StateStore struct {
	db *sql.DB
}

// NewStateStore creates a StateStore over an open database
func NewStateStore(db *sql.DB) *StateStore {
	return &StateStore{db: db}
}

// OpenStateStore opens the install-scoped store at the given paths
func OpenStateStore(paths StatePaths) (*StateStore, error) {
	if err := paths.EnsureBaseDir(); err != nil {
		return nil, &StoreError{Path: paths.BaseDir, Op: "open", Err: err}
	}
	db, err := OpenDatabase(paths.DBPath())
	if err != nil {
		return nil, &StoreError{Path: paths.DBPath(), Op: "open", Err: err}
	}
	return NewStateStore(db), nil
}

// Load returns the saved snapshot, or the default snapshot when none has
// been saved yet. A corrupt value is logged and treated as absent so the
// widget always comes up interactive.
func (s *StateStore) Load() (*Snapshot, error) {
	value, ok, err := GetState(s.db, snapshotKey)
	if err != nil {
		return nil, &StoreError{Path: snapshotKey, Op: "load", Err: err}
	}
	if !ok {
		return DefaultSnapshot(), nil
	}

	snap, err := ParseSnapshot(value)
	if err != nil {
		LogWarn("discarding unreadable snapshot: %v", err)
		return DefaultSnapshot(), nil
	}
	return snap, nil
}

// Save overwrites the persisted snapshot as a single unit, bumping the
// revision counter and last-modified timestamp.
func (s *StateStore) Save(snap *Snapshot) error {
	snap.Revision++
	snap.UpdatedAt = time.Now().UTC()

	value, err := snap.Encode()
	if err != nil {
		return &StoreError{Path: snapshotKey, Op: "save", Err: err}
	}
	if err := PutState(s.db, snapshotKey, value); err != nil {
		return &StoreError{Path: snapshotKey, Op: "save", Err: err}
	}
	return nil
}

// Reset removes the persisted snapshot entirely
func (s *StateStore) Reset() error {
	if err := DeleteState(s.db, snapshotKey); err != nil {
		return &StoreError{Path: snapshotKey, Op: "reset", Err: err}
	}
	return nil
}

// Close closes the underlying database
func (s *StateStore) Close() error {
	return s.db.Close()
}
