package provider

import (
	"sort"
	"time"
)

// Field names a per-symbol column of a history frame.
type Field string

const (
	FieldOpen   Field = "Open"
	FieldHigh   Field = "High"
	FieldLow    Field = "Low"
	FieldClose  Field = "Close"
	FieldVolume Field = "Volume"
)

// Order tells which level of a Multi column key holds the ticker.
type Order int

const (
	// TickerFirst keys columns as (symbol, field).
	TickerFirst Order = iota
	// FieldFirst keys columns as (field, symbol).
	FieldFirst
)

func (o Order) String() string {
	if o == FieldFirst {
		return "column"
	}
	return "ticker"
}

// Batch is the result of one history request: either a Single or a Multi
// frame. Callers should not switch on it themselves; Normalize turns both
// shapes into per-symbol series.
type Batch interface {
	batch()
}

// Single is the flat frame a one-symbol request yields. Columns are keyed
// by field name only, so the symbol is carried next to them.
type Single struct {
	Symbol string
	Index  []time.Time
	Fields map[Field][]*float64
}

// ColumnKey is a two-level column key of a Multi frame.
type ColumnKey struct {
	Outer string
	Inner string
}

// Multi is the hierarchical frame a multi-symbol request yields. All columns
// share Index; a nil value means the symbol had no bar on that date.
type Multi struct {
	Order   Order
	Index   []time.Time
	Columns map[ColumnKey][]*float64
}

func (Single) batch() {}
func (Multi) batch()  {}

// Key returns the column key of symbol/field in m's nesting order.
func (m Multi) Key(symbol string, field Field) ColumnKey {
	if m.Order == FieldFirst {
		return ColumnKey{Outer: string(field), Inner: symbol}
	}
	return ColumnKey{Outer: symbol, Inner: string(field)}
}

// split is the inverse of Key.
func (m Multi) split(k ColumnKey) (symbol string, field Field) {
	if m.Order == FieldFirst {
		return k.Inner, Field(k.Outer)
	}
	return k.Outer, Field(k.Inner)
}

// Symbols returns the tickers present in m, sorted.
func (m Multi) Symbols() []string {
	seen := make(map[string]struct{}, len(m.Columns))
	out := make([]string, 0, len(m.Columns))
	for k := range m.Columns {
		s, _ := m.split(k)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Normalize extracts the field column of every symbol in b into the
// canonical per-symbol series. Symbols without that column are absent from
// the result. A nil Batch yields an empty map.
func Normalize(b Batch, field Field) map[string]Series {
	out := make(map[string]Series)
	switch b := b.(type) {
	case Single:
		if col, ok := b.Fields[field]; ok {
			out[b.Symbol] = column(b.Index, col)
		}
	case *Single:
		if b != nil {
			return Normalize(*b, field)
		}
	case Multi:
		for k, col := range b.Columns {
			symbol, f := b.split(k)
			if f != field {
				continue
			}
			out[symbol] = column(b.Index, col)
		}
	case *Multi:
		if b != nil {
			return Normalize(*b, field)
		}
	}
	return out
}

func column(index []time.Time, values []*float64) Series {
	n := len(index)
	if len(values) < n {
		n = len(values)
	}
	s := make(Series, n)
	for i := 0; i < n; i++ {
		s[i] = Point{Date: index[i], Value: values[i]}
	}
	return s
}
