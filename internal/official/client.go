package official

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/propscout/hmo-app/internal/area"
)

// Check is the parsed verdict from the paid Article 4 API. It is
// authoritative: the reconciler returns it directly when the call
// succeeds.
type Check struct {
	InArticle4 bool
	Areas      []area.MatchedArea
}

type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client wraps the paid Article 4 lookup API. A zero APIKey means
// the service is not configured and the client must not be called.
type Client struct {
	HTTP    HTTPDoer
	BaseURL string
	APIKey  string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		BaseURL: baseURL,
		APIKey:  apiKey,
	}
}

func (c *Client) Configured() bool {
	return c.APIKey != ""
}

// StatusCodeError is an error that occurs when the paid API
// returns an unexpected status code. Auth failures and rate
// limits surface here.
type StatusCodeError struct {
	StatusCode int
}

func (s *StatusCodeError) Error() string {
	return fmt.Sprintf("official api: invalid status code (StatusCode: %d)", s.StatusCode)
}

// CheckPostcode asks the paid API whether a postcode falls inside
// an Article 4 area.
func (c *Client) CheckPostcode(ctx context.Context, postcode string) (Check, error) {
	q := url.Values{}
	q.Set("postcode", postcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/check?"+q.Encode(), nil)
	if err != nil {
		return Check{}, fmt.Errorf("failed creating GET request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return Check{}, fmt.Errorf("failed to execute GET request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Check{}, &StatusCodeError{StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return Check{}, fmt.Errorf("failed reading http response: %w", err)
	}

	var raw json.RawMessage = body
	return parseCheck(raw)
}
