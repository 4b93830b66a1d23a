package planning

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/propscout/hmo-app/internal/geometry"
)

// Area is an Article 4 direction area as published by the
// planning data feed. Geometry is always a parsed MultiPolygon,
// possibly invalid; validation is the caller's concern.
type Area struct {
	Name        string
	Reference   string
	Council     string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Geometry    geometry.MultiPolygon
}

type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

type Client struct {
	HTTP      HTTPDoer
	FeedURL   string
	UserAgent string
}

var DefaultClient = &Client{
	HTTP: defaultHTTP(),
}

func (c *Client) http() HTTPDoer {
	if c.HTTP == nil {
		return DefaultClient.HTTP
	}

	return c.HTTP
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed creating GET request: %w", err)
	}

	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	res, err := c.http().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GET request: %w", err)
	}

	return res, nil
}

func (c *Client) featureCollection(ctx context.Context, url string) (*featureCollection, error) {
	res, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed getting http response: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var statusErr *StatusCodeError
		if err := json.NewDecoder(res.Body).Decode(&statusErr); err != nil {
			statusErr = &StatusCodeError{StatusCode: res.StatusCode}
			return nil, fmt.Errorf("%w: failed to decode StatusCodeError Detail field: %v", statusErr, err)
		}
		return nil, statusErr
	}

	var collection featureCollection
	if err := json.NewDecoder(res.Body).Decode(&collection); err != nil {
		return nil, fmt.Errorf("failed decoding http response: %w", err)
	}

	return &collection, nil
}

// ParseFailure records a single feed feature that could not be
// parsed into an Area. One bad feature never fails the fetch.
type ParseFailure struct {
	Reference string
	Err       error
}

// FetchResult is the outcome of fetching the Article 4 feed.
type FetchResult struct {
	Areas []Area
	Fails []ParseFailure
}

// GetAreaCollection fetches every Article 4 direction area from
// the feed. Features that fail to parse are isolated into the
// result's Fails field.
func (c *Client) GetAreaCollection(ctx context.Context) (FetchResult, error) {
	collection, err := c.featureCollection(ctx, c.FeedURL)
	if err != nil {
		return FetchResult{}, fmt.Errorf("failed to get feature collection: %w", err)
	}

	result := FetchResult{}
	for _, f := range collection.Features {
		area, err := f.parseArea()
		if err != nil {
			result.Fails = append(result.Fails, ParseFailure{
				Reference: referenceOf(f),
				Err:       err,
			})
			continue
		}

		result.Areas = append(result.Areas, area)
	}

	return result, nil
}

func referenceOf(f feature) string {
	var props properties
	if err := json.Unmarshal(f.Properties, &props); err != nil {
		return ""
	}

	return props.Reference
}
