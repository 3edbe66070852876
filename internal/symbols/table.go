// Package symbols holds the table of instruments a run fetches.
package symbols

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmpty          = errors.New("symbol table is empty")
	ErrInvalidEntry   = errors.New("invalid symbol table entry")
	ErrDuplicateEntry = errors.New("duplicate symbol table entry")
)

// Entry maps a provider ticker onto the id and label used in output.
type Entry struct {
	Symbol string // provider ticker, e.g. ^GSPC
	ID     string // short stable id, e.g. sp500
	Label  string // display label, passed through verbatim
}

// Table is an ordered, immutable set of entries. The zero value is an empty
// table; build one with New or Default.
type Table struct {
	entries []Entry
}

// New validates entries and returns them as a table in the given order.
func New(entries ...Entry) (Table, error) {
	if len(entries) == 0 {
		return Table{}, ErrEmpty
	}
	seen := make(map[string]struct{}, len(entries))
	out := make([]Entry, 0, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Symbol) == "" || strings.TrimSpace(e.ID) == "" {
			return Table{}, fmt.Errorf("%w: #%d has empty symbol or id", ErrInvalidEntry, i)
		}
		if _, dup := seen[e.Symbol]; dup {
			return Table{}, fmt.Errorf("%w: %s", ErrDuplicateEntry, e.Symbol)
		}
		seen[e.Symbol] = struct{}{}
		out = append(out, e)
	}
	return Table{entries: out}, nil
}

// MustNew is New for tables known at compile time.
func MustNew(entries ...Entry) Table {
	t, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the built-in market overview table.
func Default() Table {
	return MustNew(
		Entry{Symbol: "^IXIC", ID: "nasdaq", Label: "나스닥 지수"},
		Entry{Symbol: "^GSPC", ID: "sp500", Label: "S&P 500"},
		Entry{Symbol: "^DJI", ID: "dji", Label: "다우존스"},
		Entry{Symbol: "^N225", ID: "nikkei", Label: "니케이 225"},
		Entry{Symbol: "NQ=F", ID: "nasdaq_futures", Label: "나스닥 선물"},
		Entry{Symbol: "^VIX", ID: "vix", Label: "VIX"},
		Entry{Symbol: "BTC-USD", ID: "btc", Label: "비트코인 (BTC)"},
		Entry{Symbol: "ETH-USD", ID: "eth", Label: "이더리움 (ETH)"},
	)
}

func (t Table) Len() int { return len(t.entries) }

// Entries returns a copy of the entries in table order.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Symbols returns the provider tickers in table order.
func (t Table) Symbols() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Symbol
	}
	return out
}

func (t Table) Lookup(symbol string) (Entry, bool) {
	for _, e := range t.entries {
		if e.Symbol == symbol {
			return e, true
		}
	}
	return Entry{}, false
}
