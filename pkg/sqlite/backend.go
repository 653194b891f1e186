// Package sqlite exposes the SQLite implementation of types.Store while
// keeping the implementation internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/parlor/internal/sqlite"
	"github.com/mesh-intelligence/parlor/pkg/types"
)

// NewBackend returns an unattached store. A nil logger disables logging.
//
// Example:
//
//	store := sqlite.NewBackend(nil)
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".parlor-db",
//	})
//	defer store.Detach()
func NewBackend(logger *zap.Logger) types.Store {
	return sqlite.NewBackend(logger)
}
