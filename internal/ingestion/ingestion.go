package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/cryptostats/internal/domain/models"
	"github.com/guttosm/cryptostats/internal/logger"
	"github.com/guttosm/cryptostats/internal/pricecsv"
	"github.com/guttosm/cryptostats/internal/storage"
)

const defaultBatchSize = 5000

// batchSize is the number of rows per insert transaction; tests lower it.
var batchSize = defaultBatchSize

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.PricesRepository {
	return storage.NewPricesRepository(db)
}

// ProcessDirectory loads the price history of every supported symbol from dir
// into Postgres.
//
//   - dir: directory containing "<SYMBOL>_values.csv" files.
//   - db:  open *sql.DB (PostgreSQL).
//   - parallel: max files processed at once (0 = min(NumCPU, symbols)).
//   - force: reload symbols already present in ingestion_log.
//
// Behavior:
//   - Expects exactly one file per symbol; all must exist before any work starts.
//   - For each file, clears rows left without a log entry, then parses & inserts
//     records in batches via repository.
//   - A file that fails mid-load has its committed rows removed again.
//   - If any file returns error, cancels the rest and returns that error.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, parallel int, force bool) error {
	repo := repoCtor(db)
	syms := models.Symbols()

	var missing []string
	for _, sym := range syms {
		name := pricecsv.FileName(sym)
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, name)
				continue
			}
			return fmt.Errorf("stat failed for %s: %w", name, err)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required files: %s", strings.Join(missing, ", "))
	}

	log := logger.With("ingestion")
	log.Info().Int("files", len(syms)).Str("dir", dir).Msg("ingestion start")

	maxParallel := len(syms)
	if parallel > 0 {
		if parallel < maxParallel {
			maxParallel = parallel
		}
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}
	log.Info().Int("max_parallel", maxParallel).Msg("ingestion configured")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, sym := range syms {
		g.Go(func() error {
			start := time.Now()
			name := pricecsv.FileName(sym)
			path := filepath.Join(dir, name)
			flog := log.With().Int("idx", i+1).Int("total", len(syms)).Str("file", name).Logger()
			flog.Info().Msg("file start")

			exists, err := repo.HasIngestionForSymbol(gctx, sym)
			if err != nil {
				flog.Error().Err(err).Msg("check ingestion log failed")
				return fmt.Errorf("file %s: check ingestion log: %w", name, err)
			}
			if exists && !force {
				flog.Info().Bool("skipped", true).Msg("already ingested")
				return nil
			}
			// drops force-reloaded rows and leftovers of an interrupted load
			if err := repo.DeletePricesBySymbol(gctx, sym); err != nil {
				flog.Error().Err(err).Msg("delete existing failed")
				return fmt.Errorf("file %s: delete existing: %w", name, err)
			}

			total, err := parseAndPersistFile(gctx, path, sym, repo, batchSize)
			if err != nil {
				flog.Error().Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				// committed batches must not outlive a failed load
				if cerr := repo.DeletePricesBySymbol(context.WithoutCancel(gctx), sym); cerr != nil {
					flog.Error().Err(cerr).Msg("cleanup of partial load failed")
				}
				return fmt.Errorf("file %s: %w", name, err)
			}
			if err := repo.UpsertIngestionLog(gctx, sym, name, total); err != nil {
				flog.Error().Err(err).Msg("update ingestion log failed")
				return fmt.Errorf("file %s: upsert ingestion log: %w", name, err)
			}
			flog.Info().Int("rows", total).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
			return nil
		})
	}

	return g.Wait()
}
