package dto

import "github.com/guttosm/cryptostats/internal/domain/models"

// NormalizedRangeResponse is one entry of GET /api/v1/cryptos/normalizedRange
// and the body of GET /api/v1/cryptos/normalizedRange/highest.
type NormalizedRangeResponse struct {
	Symbol string  `json:"symbol" example:"XRP"`             // Crypto symbol
	Range  float64 `json:"range" example:"0.019281754639672"` // (max-min)/min over the window
}

// BoundValuesResponse is the body of GET /api/v1/cryptos/{symbol}/boundValues.
type BoundValuesResponse struct {
	OldestPrice float64 `json:"oldest_price" example:"46813.21"` // Price of the earliest record
	NewestPrice float64 `json:"newest_price" example:"38415.79"` // Price of the latest record
	MinPrice    float64 `json:"min_price" example:"33276.59"`    // Lowest price in the window
	MaxPrice    float64 `json:"max_price" example:"47722.66"`    // Highest price in the window
}

// FromNormalizedRange maps a domain entry to its response shape.
func FromNormalizedRange(r models.NormalizedRange) NormalizedRangeResponse {
	return NormalizedRangeResponse{Symbol: r.Symbol.String(), Range: r.Range}
}

// FromNormalizedRanges maps a ranked list, keeping its order.
func FromNormalizedRanges(rs []models.NormalizedRange) []NormalizedRangeResponse {
	out := make([]NormalizedRangeResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromNormalizedRange(r))
	}
	return out
}

// FromBoundValues maps domain bound values to the response shape.
func FromBoundValues(b models.BoundValues) BoundValuesResponse {
	return BoundValuesResponse{
		OldestPrice: b.OldestPrice,
		NewestPrice: b.NewestPrice,
		MinPrice:    b.MinPrice,
		MaxPrice:    b.MaxPrice,
	}
}
