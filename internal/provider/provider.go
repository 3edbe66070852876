package provider

import (
	"context"
)

// Provider is a market-data source that returns a trailing window of daily
// bars for a batch of symbols in a single request.
//
// Implementations return an error only when the request as a whole failed.
// Symbols the source has no data for are left out of the returned Batch.
type Provider interface {
	Name() string
	History(ctx context.Context, symbols []string, window int) (Batch, error)
}
