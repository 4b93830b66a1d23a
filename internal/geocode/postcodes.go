package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

func defaultHTTP() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

// StatusCodeError is an error that occurs when a geocoding
// dependency returns an unexpected status code.
type StatusCodeError struct {
	API        string
	StatusCode int
}

func (s *StatusCodeError) Error() string {
	return fmt.Sprintf("%s: invalid status code (StatusCode: %d)", s.API, s.StatusCode)
}

// PostcodesClient wraps the postcodes.io style API exposing full
// postcode and outcode lookups.
type PostcodesClient struct {
	HTTP    HTTPDoer
	BaseURL string
}

func NewPostcodesClient(baseURL string) *PostcodesClient {
	return &PostcodesClient{
		HTTP:    defaultHTTP(),
		BaseURL: baseURL,
	}
}

type postcodesResponse struct {
	Status int `json:"status"`
	Result *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"result"`
}

func (c *PostcodesClient) get(ctx context.Context, path string) (*postcodesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed creating GET request: %w", err)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GET request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.StatusCode != http.StatusOK {
		return nil, &StatusCodeError{API: "postcodes", StatusCode: res.StatusCode}
	}

	var body postcodesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed decoding http response: %w", err)
	}

	return &body, nil
}

// Lookup resolves a full postcode to its coordinate. Returns nil
// when the postcode is unknown.
func (c *PostcodesClient) Lookup(ctx context.Context, postcode string) (*Result, error) {
	body, err := c.get(ctx, "/postcodes/"+url.PathEscape(postcode))
	if err != nil {
		return nil, err
	}
	if body == nil || body.Result == nil || body.Result.Latitude == nil || body.Result.Longitude == nil {
		return nil, nil
	}

	return &Result{
		Lat:      *body.Result.Latitude,
		Lon:      *body.Result.Longitude,
		Accuracy: AccuracyExact,
		Source:   "postcodes",
	}, nil
}

// LookupOutcode resolves an outcode to the centroid of its
// postcode district. Returns nil when the outcode is unknown.
func (c *PostcodesClient) LookupOutcode(ctx context.Context, outcode string) (*Result, error) {
	body, err := c.get(ctx, "/outcodes/"+url.PathEscape(outcode))
	if err != nil {
		return nil, err
	}
	if body == nil || body.Result == nil || body.Result.Latitude == nil || body.Result.Longitude == nil {
		return nil, nil
	}

	return &Result{
		Lat:      *body.Result.Latitude,
		Lon:      *body.Result.Longitude,
		Accuracy: AccuracyPartial,
		Source:   "postcodes",
	}, nil
}
