package yahooadapter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"quotefetcher/internal/provider"
	"quotefetcher/internal/provider/yahoo"
)

type Config struct {
	Name     string // display name, default: Yahoo
	GroupBy  string // "ticker" (default) or "column"; nesting order of multi-symbol frames
	Interval string // bar size, default: 1d
}

// ParseGroupBy maps a group-by setting onto a column nesting order.
func ParseGroupBy(s string) (provider.Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ticker":
		return provider.TickerFirst, nil
	case "column":
		return provider.FieldFirst, nil
	}
	return provider.TickerFirst, fmt.Errorf("unknown group_by %q (want ticker or column)", s)
}

type Adapter struct {
	cfg    Config
	order  provider.Order
	client *yahoo.Client
}

func New(cfg Config, client *yahoo.Client) (*Adapter, error) {
	if cfg.Name == "" {
		cfg.Name = "Yahoo"
	}
	if cfg.Interval == "" {
		cfg.Interval = "1d"
	}
	order, err := ParseGroupBy(cfg.GroupBy)
	if err != nil {
		return nil, err
	}
	return &Adapter{cfg: cfg, order: order, client: client}, nil
}

func (a *Adapter) Name() string { return a.cfg.Name }

// History requests window sessions of daily bars. A single symbol goes
// through the chart endpoint and yields a flat provider.Single; several go
// through one spark request and yield a provider.Multi.
func (a *Adapter) History(ctx context.Context, symbols []string, window int) (provider.Batch, error) {
	if len(symbols) == 0 {
		return nil, errors.New("no symbols requested")
	}
	if window <= 0 {
		return nil, fmt.Errorf("invalid window %d", window)
	}
	rng := strconv.Itoa(window) + "d"

	if len(symbols) == 1 {
		res, err := a.client.GetChart(ctx, symbols[0], rng, a.cfg.Interval)
		if err != nil {
			return nil, err
		}
		return single(symbols[0], res), nil
	}

	results, err := a.client.GetSpark(ctx, symbols, rng, a.cfg.Interval)
	if err != nil {
		return nil, err
	}
	return multi(a.order, results), nil
}

// frame is one symbol's bars keyed by session date.
type frame struct {
	dates []time.Time
	cols  map[provider.Field][]*float64
}

// toFrame converts a chart result into session dates in the exchange's own
// calendar. When Yahoo returns two bars for one date (the live bar next to
// the last close) the later non-null value wins.
func toFrame(res *yahoo.ChartResult) frame {
	fr := frame{cols: map[provider.Field][]*float64{}}
	if res == nil {
		return fr
	}
	bars := res.Bars()
	src := map[provider.Field][]*float64{
		provider.FieldOpen:   bars.Open,
		provider.FieldHigh:   bars.High,
		provider.FieldLow:    bars.Low,
		provider.FieldClose:  bars.Close,
		provider.FieldVolume: bars.Volume,
	}

	pos := make(map[time.Time]int, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		d := sessionDate(ts, res.Meta.GMTOffset)
		j, seen := pos[d]
		if !seen {
			j = len(fr.dates)
			pos[d] = j
			fr.dates = append(fr.dates, d)
		}
		for field, vals := range src {
			if len(vals) == 0 {
				continue
			}
			col := fr.cols[field]
			if !seen {
				col = append(col, nil)
			}
			if i < len(vals) && vals[i] != nil {
				col[j] = vals[i]
			}
			fr.cols[field] = col
		}
	}
	return fr
}

func sessionDate(ts, gmtOffset int64) time.Time {
	t := time.Unix(ts+gmtOffset, 0).UTC()
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func single(symbol string, res *yahoo.ChartResult) provider.Single {
	fr := toFrame(res)
	return provider.Single{Symbol: symbol, Index: fr.dates, Fields: fr.cols}
}

// multi aligns every symbol on the sorted union of session dates, leaving nil
// where a symbol did not trade.
func multi(order provider.Order, results []yahoo.SparkResult) provider.Multi {
	frames := make(map[string]frame, len(results))
	union := map[time.Time]struct{}{}
	for _, r := range results {
		if len(r.Response) == 0 {
			continue
		}
		fr := toFrame(&r.Response[0])
		frames[r.Symbol] = fr
		for _, d := range fr.dates {
			union[d] = struct{}{}
		}
	}

	index := make([]time.Time, 0, len(union))
	for d := range union {
		index = append(index, d)
	}
	sort.Slice(index, func(i, j int) bool { return index[i].Before(index[j]) })
	row := make(map[time.Time]int, len(index))
	for i, d := range index {
		row[d] = i
	}

	m := provider.Multi{Order: order, Index: index, Columns: map[provider.ColumnKey][]*float64{}}
	for symbol, fr := range frames {
		for field, vals := range fr.cols {
			col := make([]*float64, len(index))
			for i, d := range fr.dates {
				col[row[d]] = vals[i]
			}
			m.Columns[m.Key(symbol, field)] = col
		}
	}
	return m
}
