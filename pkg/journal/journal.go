// Package journal exposes the version and the backend factory for the
// journal storage system while keeping backend implementations internal.
package journal

import (
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/journal/internal/jsonfile"
	"github.com/mesh-intelligence/journal/internal/sqlite"
	"github.com/mesh-intelligence/journal/pkg/types"
)

// Version is the journal release version.
const Version = "1.0.0"

// NewBackend validates cfg and returns the backend it selects, rooted at
// cfg.DataDir. Nothing is read or written until Load or Save is called.
//
// Example:
//
//	backend, err := journal.NewBackend(types.Config{
//	    Backend: types.BackendJSON,
//	    DataDir: "/home/me/.local/share/journal",
//	})
func NewBackend(cfg types.Config) (types.Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %q", err, cfg.Backend)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}

	switch cfg.Backend {
	case types.BackendSQLite:
		return sqlite.NewBackend(filepath.Join(dataDir, sqlite.DatabaseFile)), nil
	default:
		return jsonfile.NewBackend(filepath.Join(dataDir, jsonfile.FileName)), nil
	}
}

// DataFile returns the path of the file the backend selected by cfg uses.
func DataFile(cfg types.Config) string {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if cfg.Backend == types.BackendSQLite {
		return filepath.Join(dataDir, sqlite.DatabaseFile)
	}
	return filepath.Join(dataDir, jsonfile.FileName)
}
