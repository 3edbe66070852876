package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// get performs a GET against path and decodes a successful body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, describe(res.Body, query.Encode()))

	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized

	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, describe(res.Body, path))

	case http.StatusTooManyRequests:
		return ErrRateLimited

	default:
		return fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// describe pulls the embedded error description out of an error body,
// falling back to what was requested.
func describe(body io.Reader, fallback string) string {
	b, err := io.ReadAll(io.LimitReader(body, 4<<10))
	if err != nil || len(b) == 0 {
		return fallback
	}
	var env struct {
		Chart struct {
			Error *APIError `json:"error"`
		} `json:"chart"`
		Spark struct {
			Error *APIError `json:"error"`
		} `json:"spark"`
		Finance struct {
			Error *APIError `json:"error"`
		} `json:"finance"`
	}
	if json.Unmarshal(b, &env) != nil {
		return fallback
	}
	for _, e := range []*APIError{env.Chart.Error, env.Spark.Error, env.Finance.Error} {
		if e != nil {
			return e.Error()
		}
	}
	return fallback
}
