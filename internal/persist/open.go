package persist

import (
	"fmt"

	"sadat/internal/config"
)

// Open builds the snapshot adapter selected by the configuration.
func Open(cfg *config.Config) (Adapter, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendSQLite:
		return NewSQLite(cfg.SQLitePath, cfg.StoreSlot)
	case config.BackendRedis:
		return NewRedis(cfg.RedisURL, cfg.StoreSlot)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
