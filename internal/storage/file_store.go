package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/cryptostats/internal/domain/models"
	"github.com/guttosm/cryptostats/internal/pricecsv"
)

// FileStore reads price history straight from per-symbol CSV files.
//
// Files are re-read on every call, so the store holds no state and always
// reflects the current directory contents.
type FileStore struct {
	dir string
}

// NewFileStore returns a store reading "<SYMBOL>_values.csv" files from dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory the store reads from.
func (s *FileStore) Dir() string { return s.dir }

// ListAll reads every symbol's file concurrently and concatenates the
// results in canonical symbol order.
func (s *FileStore) ListAll(ctx context.Context) ([]models.PriceRecord, error) {
	syms := models.Symbols()
	parts := make([][]models.PriceRecord, len(syms))

	g, gctx := errgroup.WithContext(ctx)
	for i, sym := range syms {
		g.Go(func() error {
			recs, err := s.ListBySymbol(gctx, sym)
			if err != nil {
				return err
			}
			parts[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]models.PriceRecord, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

// ListBySymbol reads the file of a single symbol.
func (s *FileStore) ListBySymbol(ctx context.Context, symbol models.Symbol) ([]models.PriceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, pricecsv.FileName(symbol))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s history: %w", symbol, err)
	}
	defer func() { _ = f.Close() }()

	recs, err := pricecsv.NewReader(f, symbol).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Ping checks that the data directory exists.
func (s *FileStore) Ping(_ context.Context) error {
	fi, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

var _ RecordStore = (*FileStore)(nil)
