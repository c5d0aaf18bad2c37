package storage

import (
	"context"

	"github.com/guttosm/cryptostats/internal/domain/models"
)

// RecordStore supplies price history to the query engine.
//
// Implementations must be safe for concurrent use and return slices the
// caller may keep; the engine never modifies them. Records of one symbol are
// returned in the store's listing order, and ListAll concatenates symbols in
// models.Symbols() order.
type RecordStore interface {
	ListAll(ctx context.Context) ([]models.PriceRecord, error)
	ListBySymbol(ctx context.Context, symbol models.Symbol) ([]models.PriceRecord, error)
	Ping(ctx context.Context) error
}
