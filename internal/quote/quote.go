package quote

import (
	"math"

	"quotefetcher/internal/provider"
	"quotefetcher/internal/symbols"
)

// Quote is the output record of one symbol. Price and ChangePercent are nil
// when there is no data to derive them from.
type Quote struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	Price         *float64 `json:"price"`
	ChangePercent *float64 `json:"changePercent"`
}

// FromSeries derives a quote from a symbol's close series. Missing points
// are dropped first; the last remaining close is the price and the one
// before it the reference for the change.
func FromSeries(e symbols.Entry, s provider.Series) Quote {
	q := Quote{ID: e.ID, Label: e.Label}

	closes := s.DropMissing().Values()
	if len(closes) == 0 {
		return q
	}
	last := closes[len(closes)-1]
	if math.IsInf(last, 0) {
		return q
	}
	q.Price = &last
	if len(closes) > 1 {
		q.ChangePercent = ChangePercent(closes[len(closes)-2], last)
	}
	return q
}

// ChangePercent returns the percent change from prev to last, or nil when
// prev is zero or not finite.
func ChangePercent(prev, last float64) *float64 {
	if prev == 0 || math.IsInf(prev, 0) || math.IsNaN(prev) {
		return nil
	}
	v := (last - prev) / prev * 100
	return &v
}
