package service

import (
	"context"
	"sync"
	"time"

	"github.com/guttosm/cryptostats/internal/domain/models"
)

// fakeStore is an in-memory RecordStore that counts calls.
type fakeStore struct {
	mu      sync.Mutex
	records []models.PriceRecord
	err     error

	listAll      int
	listBySymbol int
}

func (f *fakeStore) ListAll(_ context.Context) ([]models.PriceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listAll++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.PriceRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeStore) ListBySymbol(_ context.Context, symbol models.Symbol) ([]models.PriceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listBySymbol++
	if f.err != nil {
		return nil, f.err
	}
	var out []models.PriceRecord
	for _, r := range f.records {
		if r.Symbol == symbol {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) Ping(context.Context) error { return f.err }

func (f *fakeStore) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listAll + f.listBySymbol
}

func rec(ms int64, sym models.Symbol, price float64) models.PriceRecord {
	return models.PriceRecord{Timestamp: time.UnixMilli(ms).UTC(), Symbol: sym, Price: price}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// january2022 holds three prices per symbol between 2022-01-01 and 2022-01-05 (UTC).
func january2022() []models.PriceRecord {
	return []models.PriceRecord{
		rec(1641009600000, models.BTC, 46814.18),
		rec(1641020400000, models.BTC, 46813.21),
		rec(1641308400000, models.BTC, 47001.28),
		rec(1641009600000, models.DOGE, 0.1702),
		rec(1641074400000, models.DOGE, 0.1701),
		rec(1641355200000, models.DOGE, 0.1711),
		rec(1641024000000, models.ETH, 3715.32),
		rec(1641031200000, models.ETH, 3718.67),
		rec(1641049200000, models.ETH, 3697.04),
		rec(1641016800000, models.LTC, 148.1),
		rec(1641063600000, models.LTC, 150.2),
		rec(1641078000000, models.LTC, 150),
		rec(1640995200000, models.XRP, 0.8298),
		rec(1641016800000, models.XRP, 0.842),
		rec(1641070800000, models.XRP, 0.8458),
	}
}

// january2022Month extends january2022 with prices on 2022-01-02, on the last
// millisecond of January and just outside the month and day boundaries.
func january2022Month() []models.PriceRecord {
	return append(january2022(),
		rec(1641085200000, models.BTC, 47300),
		rec(1641117600000, models.BTC, 47100),
		rec(1641092400000, models.DOGE, 0.172),
		rec(1641128400000, models.DOGE, 0.179),
		rec(1641096000000, models.ETH, 3760),
		rec(1641132000000, models.ETH, 3820),
		rec(1641099600000, models.LTC, 151),
		rec(1641103200000, models.XRP, 0.85),
		rec(1641167999999, models.XRP, 0.9),  // 2022-01-02 23:59:59.999
		rec(1641168000000, models.XRP, 2),    // 2022-01-03 00:00:00.000
		rec(1643673599999, models.ETH, 2600), // 2022-01-31 23:59:59.999
		rec(1643673600000, models.ETH, 1),    // 2022-02-01 00:00:00.000
	)
}
