package service

import (
	"time"

	"github.com/guttosm/cryptostats/internal/domain/models"
)

// FilterByWindow returns the records whose timestamp lies inside window once
// resolved in loc. The input slice is never modified.
func FilterByWindow(records []models.PriceRecord, window models.DateWindow, loc *time.Location) []models.PriceRecord {
	from, to := window.Bounds(loc)
	out := make([]models.PriceRecord, 0, len(records))
	for _, r := range records {
		if models.Contains(r.Timestamp, from, to) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByDay keeps the records of a single calendar day in loc.
func FilterByDay(records []models.PriceRecord, day time.Time, loc *time.Location) []models.PriceRecord {
	return FilterByWindow(records, models.DayWindow(day), loc)
}

// Group is the ordered sequence of records sharing one symbol.
type Group struct {
	Symbol  models.Symbol
	Records []models.PriceRecord
}

// Prices returns the group's prices in record order.
func (g Group) Prices() []float64 {
	out := make([]float64, len(g.Records))
	for i, r := range g.Records {
		out[i] = r.Price
	}
	return out
}

// GroupBySymbol partitions records by symbol in a single pass. Groups appear
// in order of each symbol's first record; records keep their input order
// inside a group.
func GroupBySymbol(records []models.PriceRecord) []Group {
	index := make(map[models.Symbol]int)
	var groups []Group
	for _, r := range records {
		i, ok := index[r.Symbol]
		if !ok {
			i = len(groups)
			index[r.Symbol] = i
			groups = append(groups, Group{Symbol: r.Symbol})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}
