package core

import (
	"context"
	"fmt"

	"astrobrasil/internal/infra/persistence/memory"
	"astrobrasil/internal/infra/persistence/postgres"
	"astrobrasil/internal/infra/persistence/sqlite"
	"astrobrasil/pkg/domain"
)

// StorageDriver identifies a concrete preference storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // process memory (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// StorageOptions carries backend-specific connection settings.
type StorageOptions struct {
	SQLitePath  string
	PostgresDSN string
}

// OpenPreferenceStore selects a preference backend. An empty driver defaults
// to sqlite.
func OpenPreferenceStore(ctx context.Context, driver StorageDriver, opts StorageOptions) (domain.PreferenceStore, error) {
	if driver == "" {
		driver = StorageSQLite
	}
	switch driver {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		return sqlite.NewStore(ctx, opts.SQLitePath)
	case StoragePostgres:
		return postgres.NewStore(ctx, opts.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
