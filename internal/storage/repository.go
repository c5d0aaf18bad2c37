package storage

import (
	"context"
	"database/sql"
	"fmt"

	pq "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptostats/internal/domain/models"
)

// PricesRepository is the Postgres-backed record store plus the write side
// used by ingestion.
type PricesRepository interface {
	RecordStore
	InsertPricesBatch(ctx context.Context, records []models.PriceRecord) error
	HasIngestionForSymbol(ctx context.Context, symbol models.Symbol) (bool, error)
	UpsertIngestionLog(ctx context.Context, symbol models.Symbol, filename string, rowCount int) error
	DeletePricesBySymbol(ctx context.Context, symbol models.Symbol) error
}

type pricesRepository struct {
	db *sql.DB
}

func NewPricesRepository(db *sql.DB) PricesRepository {
	return &pricesRepository{db: db}
}

// InsertPricesBatch inserts multiple records into DB in a single transaction.
func (r *pricesRepository) InsertPricesBatch(ctx context.Context, records []models.PriceRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("prices", "symbol", "ts", "price"))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.Symbol.String(), rec.Timestamp, rec.Price); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// HasIngestionForSymbol checks if a symbol's history was already loaded.
func (r *pricesRepository) HasIngestionForSymbol(ctx context.Context, symbol models.Symbol) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE symbol = $1)`, symbol.String()).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) the ingestion entry of a symbol.
func (r *pricesRepository) UpsertIngestionLog(ctx context.Context, symbol models.Symbol, filename string, rowCount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingestion_log (symbol, filename, row_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol)
		DO UPDATE SET filename = EXCLUDED.filename,
					  row_count = EXCLUDED.row_count,
					  ingested_at = NOW()
	`, symbol.String(), filename, rowCount)
	return err
}

// DeletePricesBySymbol removes the whole history of a symbol together with its
// ingestion log entry, so the symbol counts as not ingested afterwards.
func (r *pricesRepository) DeletePricesBySymbol(ctx context.Context, symbol models.Symbol) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ingestion_log WHERE symbol = $1`, symbol.String()); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM prices WHERE symbol = $1`, symbol.String()); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ListAll returns every record, grouped by symbol in canonical order and by
// insertion order inside a symbol.
func (r *pricesRepository) ListAll(ctx context.Context) ([]models.PriceRecord, error) {
	syms := models.Symbols()
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = s.String()
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT ts, symbol, price
		FROM prices
		WHERE symbol = ANY($1)
		ORDER BY array_position($1::text[], symbol), id
	`, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	return scanRecords(rows)
}

// ListBySymbol returns the records of one symbol in insertion order.
func (r *pricesRepository) ListBySymbol(ctx context.Context, symbol models.Symbol) ([]models.PriceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ts, symbol, price
		FROM prices
		WHERE symbol = $1
		ORDER BY id
	`, symbol.String())
	if err != nil {
		return nil, fmt.Errorf("query %s prices: %w", symbol, err)
	}
	return scanRecords(rows)
}

func (r *pricesRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// scanRecords drains rows of (ts, symbol, price). Prices are NUMERIC in the
// database and decoded through decimal before converting to float64.
func scanRecords(rows *sql.Rows) ([]models.PriceRecord, error) {
	defer func() { _ = rows.Close() }()

	var out []models.PriceRecord
	for rows.Next() {
		var (
			rec   models.PriceRecord
			sym   string
			price decimal.Decimal
		)
		if err := rows.Scan(&rec.Timestamp, &sym, &price); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		s, ok := models.ParseSymbol(sym)
		if !ok {
			return nil, fmt.Errorf("unknown symbol %q in prices table", sym)
		}
		rec.Symbol = s
		rec.Price = price.InexactFloat64()
		rec.Timestamp = rec.Timestamp.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prices: %w", err)
	}
	return out, nil
}
