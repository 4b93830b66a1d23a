package geocode

import (
	"context"
	"strings"
)

// Strategy is one way of resolving a normalized postcode string
// to a coordinate. Strategies are tried in order by the Service;
// a nil Result with a nil error means "not found here, try the
// next one".
type Strategy interface {
	Name() string
	Match(postcode string) bool
	Attempt(ctx context.Context, postcode string) (*Result, error)
}

type exactStrategy struct {
	client *PostcodesClient
}

func (s *exactStrategy) Name() string { return "exact" }

func (s *exactStrategy) Match(postcode string) bool {
	return IsFullPostcode(postcode)
}

func (s *exactStrategy) Attempt(ctx context.Context, postcode string) (*Result, error) {
	return s.client.Lookup(ctx, postcode)
}

type outcodeStrategy struct {
	client *PostcodesClient
}

func (s *outcodeStrategy) Name() string { return "outcode" }

func (s *outcodeStrategy) Match(postcode string) bool {
	return !IsFullPostcode(postcode) && IsOutcode(postcode)
}

func (s *outcodeStrategy) Attempt(ctx context.Context, postcode string) (*Result, error) {
	return s.client.LookupOutcode(ctx, postcode)
}

type districtStrategy struct{}

func (s *districtStrategy) Name() string { return "district" }

func (s *districtStrategy) Match(postcode string) bool {
	return IsDistrict(postcode)
}

func (s *districtStrategy) Attempt(_ context.Context, postcode string) (*Result, error) {
	center, ok := districtCenters[postcode]
	if !ok {
		return nil, nil
	}

	return &Result{
		Lat:      center.Lat,
		Lon:      center.Lon,
		Accuracy: AccuracyDistrict,
		Source:   "districts",
	}, nil
}

type freeTextStrategy struct {
	client *NominatimClient
}

func (s *freeTextStrategy) Name() string { return "freetext" }

func (s *freeTextStrategy) Match(postcode string) bool {
	return strings.TrimSpace(postcode) != ""
}

func (s *freeTextStrategy) Attempt(ctx context.Context, postcode string) (*Result, error) {
	return s.client.Search(ctx, postcode)
}
