package yahoo

import (
	"context"
	"fmt"
	"net/url"
)

// ChartResult is one symbol's bars as returned by the chart and spark
// endpoints.
type ChartResult struct {
	Meta       Meta       `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

// Meta describes the instrument and the exchange it trades on.
type Meta struct {
	Currency             string   `json:"currency"`
	Symbol               string   `json:"symbol"`
	ExchangeName         string   `json:"exchangeName"`
	InstrumentType       string   `json:"instrumentType"`
	GMTOffset            int64    `json:"gmtoffset"`
	Timezone             string   `json:"timezone"`
	ExchangeTimezoneName string   `json:"exchangeTimezoneName"`
	RegularMarketPrice   *float64 `json:"regularMarketPrice"`
	ChartPreviousClose   *float64 `json:"chartPreviousClose"`
	DataGranularity      string   `json:"dataGranularity"`
	Range                string   `json:"range"`
}

// Indicators holds the OHLCV arrays. Yahoo sends null for sessions without
// trades, so every value is nullable.
type Indicators struct {
	Quote []Bars `json:"quote"`
}

// Bars are parallel to ChartResult.Timestamp.
type Bars struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

// Bars returns the first quote indicator set, or an empty one.
func (r ChartResult) Bars() Bars {
	if len(r.Indicators.Quote) == 0 {
		return Bars{}
	}
	return r.Indicators.Quote[0]
}

type chartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *APIError     `json:"error"`
	} `json:"chart"`
}

// GetChart retrieves the bars of a single symbol. rng is a Yahoo range such
// as "2d" and interval a bar size such as "1d". Closes are not adjusted.
// A nil result with a nil error means Yahoo answered without data.
func (c *Client) GetChart(ctx context.Context, symbol, rng, interval string, opts ...ClientOption) (*ChartResult, error) {
	override := c.with(opts)

	query := url.Values{}
	query.Set("range", rng)
	query.Set("interval", interval)
	query.Set("includeAdjustedClose", "false")

	var body chartResponse
	if err := override.get(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), query, &body); err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, body.Chart.Error)
	}
	if len(body.Chart.Result) == 0 {
		return nil, nil
	}
	return &body.Chart.Result[0], nil
}
