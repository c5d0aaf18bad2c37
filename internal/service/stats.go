package service

import (
	"errors"
	"math"

	"github.com/guttosm/cryptostats/internal/domain/models"
)

// NormalizedRange computes (max-min)/min over prices.
//
// An empty series yields ErrNoData. A minimum of zero or below yields a
// ComputationError instead of an infinite, NaN or sign-flipped range.
func NormalizedRange(prices []float64) (float64, error) {
	lo, hi, err := minMax(prices)
	if err != nil {
		return 0, err
	}
	if lo <= 0 {
		return 0, &ComputationError{Reason: "normalized range undefined for non-positive minimum price"}
	}
	return (hi - lo) / lo, nil
}

// Bounds computes oldest/newest prices by timestamp and min/max by value.
// On tied timestamps the first record seen wins.
func Bounds(records []models.PriceRecord) (models.BoundValues, error) {
	if len(records) == 0 {
		return models.BoundValues{}, ErrNoData
	}
	oldest, newest := records[0], records[0]
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range records {
		if r.Timestamp.Before(oldest.Timestamp) {
			oldest = r
		}
		if r.Timestamp.After(newest.Timestamp) {
			newest = r
		}
		lo = math.Min(lo, r.Price)
		hi = math.Max(hi, r.Price)
	}
	return models.BoundValues{
		OldestPrice: oldest.Price,
		NewestPrice: newest.Price,
		MinPrice:    lo,
		MaxPrice:    hi,
	}, nil
}

func minMax(prices []float64) (lo, hi float64, err error) {
	if len(prices) == 0 {
		return 0, 0, ErrNoData
	}
	lo, hi = prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	return lo, hi, nil
}

// rangesPerGroup computes the normalized range of every group, preserving group order.
func rangesPerGroup(groups []Group) ([]models.NormalizedRange, error) {
	out := make([]models.NormalizedRange, 0, len(groups))
	for _, g := range groups {
		r, err := NormalizedRange(g.Prices())
		if err != nil {
			var ce *ComputationError
			if errors.As(err, &ce) {
				ce.Symbol = g.Symbol.String()
			}
			return nil, err
		}
		out = append(out, models.NormalizedRange{Symbol: g.Symbol, Range: r})
	}
	return out, nil
}
