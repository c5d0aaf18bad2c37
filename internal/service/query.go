package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/guttosm/cryptostats/internal/domain/models"
	"github.com/guttosm/cryptostats/internal/storage"
)

// QueryService answers statistical queries over the price history.
//
// Every call re-reads the records it needs from the record store and works
// on its own filtered copy, so implementations hold no per-call state.
type QueryService interface {
	// GetNormalizedRange ranks every symbol present in the window by
	// normalized range, highest first.
	GetNormalizedRange(ctx context.Context, dateFrom, dateTo *time.Time) ([]models.NormalizedRange, error)
	// GetBoundValues returns oldest/newest/min/max prices of one symbol.
	GetBoundValues(ctx context.Context, symbol string, dateFrom, dateTo *time.Time) (*models.BoundValues, error)
	// GetHighestNormalized returns the symbol with the highest normalized
	// range on the given day.
	GetHighestNormalized(ctx context.Context, day time.Time) (*models.NormalizedRange, error)
}

type queryService struct {
	store storage.RecordStore
	loc   *time.Location
}

// NewQueryService builds the query engine over store. Calendar dates are
// resolved to instants in loc (UTC when nil).
func NewQueryService(store storage.RecordStore, loc *time.Location) QueryService {
	if loc == nil {
		loc = time.UTC
	}
	return &queryService{store: store, loc: loc}
}

const reasonDateOrder = "dateFrom must be less or equal to dateTo"

func (s *queryService) GetNormalizedRange(ctx context.Context, dateFrom, dateTo *time.Time) ([]models.NormalizedRange, error) {
	window := models.DateWindow{From: dateFrom, To: dateTo}
	if !window.Ordered() {
		return nil, newValidationError(reasonDateOrder)
	}

	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	filtered := FilterByWindow(records, window, s.loc)
	if len(filtered) == 0 {
		return nil, ErrNotFound
	}

	ranked, err := rangesPerGroup(GroupBySymbol(filtered))
	if err != nil {
		return nil, err
	}
	// stable: equal ranges keep grouping order
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Range > ranked[j].Range })
	return ranked, nil
}

func (s *queryService) GetBoundValues(ctx context.Context, symbol string, dateFrom, dateTo *time.Time) (*models.BoundValues, error) {
	window := models.DateWindow{From: dateFrom, To: dateTo}

	var reasons []string
	sym, ok := models.ParseSymbol(symbol)
	if !ok {
		reasons = append(reasons, "crypto is not valid or not supported")
	}
	if !window.Ordered() {
		reasons = append(reasons, reasonDateOrder)
	}
	if len(reasons) > 0 {
		return nil, newValidationError(reasons...)
	}

	records, err := s.store.ListBySymbol(ctx, sym)
	if err != nil {
		return nil, fmt.Errorf("list prices for %s: %w", sym, err)
	}
	filtered := FilterByWindow(records, window, s.loc)
	if len(filtered) == 0 {
		return nil, ErrNotFound
	}

	bounds, err := Bounds(filtered)
	if err != nil {
		return nil, err
	}
	return &bounds, nil
}

func (s *queryService) GetHighestNormalized(ctx context.Context, day time.Time) (*models.NormalizedRange, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	filtered := FilterByDay(records, day, s.loc)
	if len(filtered) == 0 {
		return nil, ErrNotFound
	}

	ranges, err := rangesPerGroup(GroupBySymbol(filtered))
	if err != nil {
		return nil, err
	}
	best := ranges[0]
	for _, r := range ranges[1:] {
		if r.Range > best.Range {
			best = r
		}
	}
	return &best, nil
}
