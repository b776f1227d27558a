package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const createAgentStateSQL = `
CREATE TABLE IF NOT EXISTS agentState (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// OpenDatabase opens (creating if needed) the agent state database
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if _, err := db.Exec(createAgentStateSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create agentState table: %w", err)
	}

	return db, nil
}

// GetState reads a single value from the agentState table. The second
// return value reports whether the key was present.
func GetState(db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRow("SELECT value FROM agentState WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query failed: %w", err)
	}
	return value, true, nil
}

// PutState writes a single value, replacing any previous one. The row
// replace is the unit of atomicity for the whole snapshot.
func PutState(db *sql.DB, key, value string) error {
	_, err := db.Exec("INSERT OR REPLACE INTO agentState (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return nil
}

// DeleteState removes a key from the agentState table
func DeleteState(db *sql.DB, key string) error {
	_, err := db.Exec("DELETE FROM agentState WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}
