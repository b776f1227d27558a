package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// StatePaths holds the install-scoped locations for agent state. State is
// scoped to the install, not to any page or origin, so the same snapshot
// follows the user across host sites.
type StatePaths struct {
	BaseDir string // base directory for all agent state
}

// DetectStatePaths resolves the agent state directory for the current OS
func DetectStatePaths() (StatePaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return StatePaths{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	var baseDir string
	switch runtime.GOOS {
	case "darwin":
		baseDir = filepath.Join(home, "Library/Application Support/widget-agent")
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			baseDir = filepath.Join(xdg, "widget-agent")
		} else {
			baseDir = filepath.Join(home, ".config/widget-agent")
		}
	default:
		return StatePaths{}, fmt.Errorf("unsupported OS: %s (only macOS and Linux are supported)", runtime.GOOS)
	}

	return StatePaths{BaseDir: baseDir}, nil
}

// GetStatePaths returns the state paths, honoring a custom override
// directory when one is given (e.g. from the --storage flag).
func GetStatePaths(custom string) (StatePaths, error) {
	if custom != "" {
		return StatePaths{BaseDir: custom}, nil
	}
	return DetectStatePaths()
}

// DBPath returns the path to the state database file
func (sp StatePaths) DBPath() string {
	return filepath.Join(sp.BaseDir, "state.db")
}

// ConfigPath returns the path to the optional agent config file
func (sp StatePaths) ConfigPath() string {
	return filepath.Join(sp.BaseDir, "config.yaml")
}

// EnsureBaseDir creates the state directory if it does not exist
func (sp StatePaths) EnsureBaseDir() error {
	if err := os.MkdirAll(sp.BaseDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	return nil
}

// Exists checks whether the state database has been created
func (sp StatePaths) Exists() bool {
	_, err := os.Stat(sp.DBPath())
	return err == nil
}
