// Package pricecsv decodes per-symbol price history files.
//
// File layout (comma separated, one file per symbol):
//
//	timestamp,symbol,price
//	1641009600000,BTC,46813.21
//
// The timestamp is epoch milliseconds; the price is a finite decimal number.
package pricecsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/cryptostats/internal/domain/models"
)

// FileSuffix completes a symbol into its file name, e.g. "BTC_values.csv".
const FileSuffix = "_values.csv"

// ExpectedHeaders enforces strict column ordering.
var ExpectedHeaders = []string{"timestamp", "symbol", "price"}

// FileName returns the file holding the history of sym.
func FileName(sym models.Symbol) string {
	return sym.String() + FileSuffix
}

// Reader streams PriceRecords for a single symbol.
type Reader struct {
	r      *csv.Reader
	symbol models.Symbol
	line   int
	header bool
}

// NewReader returns a Reader that expects every row to belong to symbol.
func NewReader(r io.Reader, symbol models.Symbol) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // checked explicitly for better messages
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &Reader{r: cr, symbol: symbol}
}

// Line returns the file line of the last row read.
func (r *Reader) Line() int { return r.line }

// Read returns the next record, or io.EOF once the input is exhausted.
// The header is validated on the first call.
func (r *Reader) Read() (models.PriceRecord, error) {
	if !r.header {
		if err := r.readHeader(); err != nil {
			return models.PriceRecord{}, err
		}
	}

	for {
		row, err := r.r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return models.PriceRecord{}, io.EOF
			}
			return models.PriceRecord{}, fmt.Errorf("read line after %d: %w", r.line, err)
		}
		r.line, _ = r.r.FieldPos(0)

		// blank lines are skipped by encoding/csv; a lone empty field is tolerated too
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) != len(ExpectedHeaders) {
			return models.PriceRecord{}, fmt.Errorf("invalid column count on line %d: expected %d got %d", r.line, len(ExpectedHeaders), len(row))
		}
		rec, err := r.toRecord(row)
		if err != nil {
			return models.PriceRecord{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		return rec, nil
	}
}

// ReadAll drains the reader.
func (r *Reader) ReadAll() ([]models.PriceRecord, error) {
	var out []models.PriceRecord
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

func (r *Reader) readHeader() error {
	header, err := r.r.Read()
	if errors.Is(err, io.EOF) {
		return errors.New("read header: empty file")
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	r.line, _ = r.r.FieldPos(0)
	if len(header) != len(ExpectedHeaders) {
		return fmt.Errorf("invalid header length: expected %d, got %d", len(ExpectedHeaders), len(header))
	}
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		if !strings.EqualFold(strings.TrimSpace(h), ExpectedHeaders[i]) {
			return fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, ExpectedHeaders[i], h)
		}
	}
	r.header = true
	return nil
}

// toRecord converts one row (length already checked):
//
//	0 timestamp → Timestamp (epoch ms, UTC)
//	1 symbol    → Symbol (must match the reader's symbol)
//	2 price     → Price (finite float)
func (r *Reader) toRecord(row []string) (models.PriceRecord, error) {
	var rec models.PriceRecord

	ms, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
	if err != nil {
		return rec, fmt.Errorf("invalid timestamp: %w", err)
	}
	rec.Timestamp = time.UnixMilli(ms).UTC()

	sym := strings.TrimSpace(row[1])
	if sym != r.symbol.String() {
		return rec, fmt.Errorf("unexpected symbol %q in %s history", sym, r.symbol)
	}
	rec.Symbol = r.symbol

	price, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return rec, fmt.Errorf("invalid price: %w", err)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return rec, fmt.Errorf("invalid price: %q is not finite", row[2])
	}
	rec.Price = price

	return rec, nil
}
