package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// SparkResult is one symbol's entry in a spark response.
type SparkResult struct {
	Symbol   string        `json:"symbol"`
	Response []ChartResult `json:"response"`
}

type sparkResponse struct {
	Spark struct {
		Result []SparkResult `json:"result"`
		Error  *APIError     `json:"error"`
	} `json:"spark"`
}

// GetSpark retrieves the bars of several symbols in one request. Symbols
// Yahoo has no data for are missing from the result; order follows the
// response.
func (c *Client) GetSpark(ctx context.Context, symbols []string, rng, interval string, opts ...ClientOption) ([]SparkResult, error) {
	if len(symbols) == 0 {
		return nil, errors.New("spark: no symbols")
	}
	override := c.with(opts)

	query := url.Values{}
	query.Set("symbols", strings.Join(symbols, ","))
	query.Set("range", rng)
	query.Set("interval", interval)
	query.Set("includeAdjustedClose", "false")

	var body sparkResponse
	if err := override.get(ctx, "/v7/finance/spark", query, &body); err != nil {
		return nil, fmt.Errorf("spark: %w", err)
	}
	if body.Spark.Error != nil {
		return nil, fmt.Errorf("spark: %w", body.Spark.Error)
	}

	var results = []SparkResult{}
	for _, r := range body.Spark.Result {
		if r.Symbol == "" {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}
