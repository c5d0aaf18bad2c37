package models

import "time"

// PriceRecord is a single observed price of a symbol at an instant.
//
// Records are produced by a record store and treated as read-only by the
// query engine.
type PriceRecord struct {
	Timestamp time.Time
	Symbol    Symbol
	Price     float64
}

// NormalizedRange is the (max-min)/min spread of a symbol's prices.
//
// swagger:model NormalizedRange
type NormalizedRange struct {
	Symbol Symbol  `json:"symbol" example:"XRP"`
	Range  float64 `json:"range" example:"0.0192"`
}

// BoundValues holds the oldest, newest, lowest and highest prices of a
// symbol within a date window.
//
// Oldest/Newest are ordered by time and Min/Max by value, so no ordering
// holds between the two pairs beyond MinPrice <= MaxPrice.
type BoundValues struct {
	OldestPrice float64 `json:"oldest_price" example:"46813.21"`
	NewestPrice float64 `json:"newest_price" example:"38415.79"`
	MinPrice    float64 `json:"min_price" example:"33276.59"`
	MaxPrice    float64 `json:"max_price" example:"47722.66"`
}
