package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// NominatimClient wraps a Nominatim-style free text geocoder,
// constrained to Great Britain. It is the last resort strategy
// for inputs no postcode API recognizes.
type NominatimClient struct {
	HTTP      HTTPDoer
	BaseURL   string
	UserAgent string
}

func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{
		HTTP:    defaultHTTP(),
		BaseURL: baseURL,
	}
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Search geocodes free text, accepting the first result. Returns
// nil when the geocoder finds nothing.
func (c *NominatimClient) Search(ctx context.Context, text string) (*Result, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("countrycodes", "gb")
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed creating GET request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GET request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &StatusCodeError{API: "nominatim", StatusCode: res.StatusCode}
	}

	var places []nominatimPlace
	if err := json.NewDecoder(res.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("failed decoding http response: %w", err)
	}
	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("failed parsing lat %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("failed parsing lon %q: %w", places[0].Lon, err)
	}

	return &Result{
		Lat:      lat,
		Lon:      lon,
		Accuracy: AccuracyPartial,
		Source:   "nominatim",
	}, nil
}
