package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/guttosm/cryptostats/internal/domain/models"
	"github.com/guttosm/cryptostats/internal/pricecsv"
	"github.com/guttosm/cryptostats/internal/storage"
)

// parseAndPersistFile opens, validates, parses, and persists one file in batches.
// It fails on:
//   - header not matching "timestamp,symbol,price"
//   - malformed rows or rows of another symbol
//   - unrecoverable I/O errors
//
// Parameters:
//   - ctx:    context for cancellation/timeouts.
//   - path:   file path.
//   - symbol: symbol the file belongs to.
//   - repo:   repository for DB insertion.
//   - batch:  batch size for inserts (e.g., 5000).
func parseAndPersistFile(ctx context.Context, path string, symbol models.Symbol, repo storage.PricesRepository, batch int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := pricecsv.NewReader(f, symbol)
	buf := make([]models.PriceRecord, 0, batch)

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertPricesBatch(ctx, buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total := 0
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}

		buf = append(buf, rec)
		total++
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return 0, fmt.Errorf("flush batch ending line %d: %w", r.Line(), err)
			}
		}
	}

	if err := flush(); err != nil {
		return 0, fmt.Errorf("final flush: %w", err)
	}
	return total, nil
}
