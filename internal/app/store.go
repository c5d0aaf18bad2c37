package app

import (
	"fmt"

	"github.com/guttosm/cryptostats/config"
	"github.com/guttosm/cryptostats/internal/storage"
)

// openRecordStore returns the record store for cfg.Store.Driver and a
// function releasing its resources.
//
//   - file:     CSV files under DATA_DIR, re-read on every query.
//   - postgres: rows loaded by `--mode=ingest`.
func openRecordStore(cfg config.Config) (storage.RecordStore, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverFile:
		return storage.NewFileStore(cfg.Store.DataDir), func() {}, nil
	case config.DriverPostgres:
		// indirection for unit testing
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		return storage.NewPricesRepository(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
