package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/guttosm/cryptostats/internal/domain/models"
)

// fakeRepo records inserted batches; safe for the concurrent use ProcessDirectory makes of it.
type fakeRepo struct {
	mu      sync.Mutex
	batches [][]models.PriceRecord
	err     error

	has       map[models.Symbol]bool
	hasErr    error
	upsertErr error
	deleted   map[models.Symbol]int
	logged    map[models.Symbol]int
}

func (f *fakeRepo) InsertPricesBatch(_ context.Context, records []models.PriceRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, append([]models.PriceRecord(nil), records...))
	return f.err
}

func (f *fakeRepo) HasIngestionForSymbol(_ context.Context, sym models.Symbol) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.has[sym], f.hasErr
}

func (f *fakeRepo) UpsertIngestionLog(_ context.Context, sym models.Symbol, _ string, rowCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.logged == nil {
		f.logged = map[models.Symbol]int{}
	}
	f.logged[sym] = rowCount
	return nil
}

func (f *fakeRepo) DeletePricesBySymbol(_ context.Context, sym models.Symbol) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleted == nil {
		f.deleted = map[models.Symbol]int{}
	}
	f.deleted[sym]++
	delete(f.logged, sym)
	kept := f.batches[:0]
	for _, b := range f.batches {
		var rest []models.PriceRecord
		for _, r := range b {
			if r.Symbol != sym {
				rest = append(rest, r)
			}
		}
		if len(rest) > 0 {
			kept = append(kept, rest)
		}
	}
	f.batches = kept
	return nil
}

func (f *fakeRepo) ListAll(context.Context) ([]models.PriceRecord, error) { return nil, nil }
func (f *fakeRepo) ListBySymbol(context.Context, models.Symbol) ([]models.PriceRecord, error) {
	return nil, nil
}
func (f *fakeRepo) Ping(context.Context) error { return nil }

// rowsFor counts the stored rows of one symbol.
func (f *fakeRepo) rowsFor(sym models.Symbol) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		for _, r := range b {
			if r.Symbol == sym {
				n++
			}
		}
	}
	return n
}

func (f *fakeRepo) inserted() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return p
}

func TestParseAndPersistFile_TableDriven(t *testing.T) {
	dir := t.TempDir()
	validHeader := "timestamp,symbol,price\n"
	validRow := "1641009600000,BTC,46813.21\n"

	cases := []struct {
		name        string
		content     string
		batch       int
		wantErr     bool
		wantBatches int
		wantRows    int
	}{
		{name: "ok single row", content: validHeader + validRow, batch: 10, wantBatches: 1, wantRows: 1},
		{name: "header only", content: validHeader, batch: 10, wantBatches: 0, wantRows: 0},
		{name: "splits batches", content: validHeader + validRow + validRow + validRow, batch: 2, wantBatches: 2, wantRows: 3},
		{name: "bad header order", content: "price,symbol,timestamp\n", batch: 10, wantErr: true},
		{name: "bad col count", content: validHeader + "1,BTC\n", batch: 10, wantErr: true},
		{name: "other symbol", content: validHeader + "1641009600000,ETH,1\n", batch: 10, wantErr: true},
		{name: "invalid price", content: validHeader + "1641009600000,BTC,abc\n", batch: 10, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempFile(t, dir, "BTC_values.csv", tc.content)
			repo := &fakeRepo{}
			n, err := parseAndPersistFile(context.Background(), path, models.BTC, repo, tc.batch)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if n != tc.wantRows || repo.inserted() != tc.wantRows {
				t.Fatalf("rows=%d inserted=%d want %d", n, repo.inserted(), tc.wantRows)
			}
			if len(repo.batches) != tc.wantBatches {
				t.Fatalf("batches=%d want %d", len(repo.batches), tc.wantBatches)
			}
		})
	}
}

func TestParseAndPersistFile_InsertError(t *testing.T) {
	path := writeTempFile(t, t.TempDir(), "BTC_values.csv", "timestamp,symbol,price\n1641009600000,BTC,1\n")
	repo := &fakeRepo{err: context.DeadlineExceeded}
	if _, err := parseAndPersistFile(context.Background(), path, models.BTC, repo, 10); err == nil {
		t.Fatalf("expected flush error")
	}
}

func TestParseAndPersistFile_Cancelled(t *testing.T) {
	path := writeTempFile(t, t.TempDir(), "BTC_values.csv", "timestamp,symbol,price\n1641009600000,BTC,1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := parseAndPersistFile(ctx, path, models.BTC, &fakeRepo{}, 10); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestParseAndPersistFile_MissingFile(t *testing.T) {
	if _, err := parseAndPersistFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), models.BTC, &fakeRepo{}, 10); err == nil {
		t.Fatalf("expected open error")
	}
}
