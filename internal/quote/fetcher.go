package quote

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"quotefetcher/internal/provider"
	"quotefetcher/internal/symbols"
)

// DefaultWindow is the number of trailing sessions requested: the latest
// close and the one before it.
const DefaultWindow = 2

//go:generate mockgen -package=quote_test -destination=mock_provider_test.go quotefetcher/internal/provider Provider

// Fetcher turns one batched history request into one quote per table entry.
type Fetcher struct {
	Provider provider.Provider
	// Window is the number of sessions to request, DefaultWindow when <= 0.
	Window int
	// Field is the column read from the batch, provider.FieldClose when empty.
	Field provider.Field
}

// Fetch requests history for every symbol of table at once and returns the
// quotes in table order. A symbol the provider returned nothing for yields a
// quote with nil price and change. Only a failure of the request itself is
// returned as an error.
func (f *Fetcher) Fetch(ctx context.Context, table symbols.Table) ([]Quote, error) {
	window := f.Window
	if window <= 0 {
		window = DefaultWindow
	}
	field := f.Field
	if field == "" {
		field = provider.FieldClose
	}

	batch, err := f.Provider.History(ctx, table.Symbols(), window)
	if err != nil {
		return nil, fmt.Errorf("%s history: %w", f.Provider.Name(), err)
	}
	series := provider.Normalize(batch, field)

	out := make([]Quote, 0, table.Len())
	for _, e := range table.Entries() {
		s, ok := series[e.Symbol]
		if !ok {
			log.WithFields(log.Fields{"symbol": e.Symbol, "provider": f.Provider.Name()}).
				Debug("symbol missing from response")
		}
		q := FromSeries(e, s)
		if ok && q.Price == nil {
			log.WithField("symbol", e.Symbol).Debug("no valid closes")
		}
		out = append(out, q)
	}
	return out, nil
}
