package listings

import (
	"math"
	"strings"
	"time"
)

// Listing is a cached property listing with its investment
// metrics. Metrics are recomputed from the rent baseline on every
// read, they are never stored.
type Listing struct {
	ID          int       `json:"id"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Postcode    string    `json:"postcode"`
	Price       int       `json:"price"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	PropertyURL string    `json:"property_url"`
	ImageURL    string    `json:"image_url,omitempty"`
	InArticle4  bool      `json:"in_article4"`
	CreatedAt   time.Time `json:"created_at"`

	MonthlyRent int     `json:"monthly_rent"`
	AnnualRent  int     `json:"annual_rent"`
	GrossYield  float64 `json:"gross_yield"`
}

// rentBaselines is the per-room monthly rent assumption by city.
// Cities not listed fall back to the default.
var rentBaselines = map[string]int{
	"london":     225,
	"oxford":     165,
	"cambridge":  160,
	"bristol":    150,
	"manchester": 120,
}

const defaultRentBaseline = 110

// EstimateMonthlyRent estimates a listing's achievable monthly
// rent: the city's per-room baseline times the room count, never
// fewer than one room.
func EstimateMonthlyRent(city string, bedrooms int) int {
	perRoom, ok := rentBaselines[strings.ToLower(city)]
	if !ok {
		perRoom = defaultRentBaseline
	}

	if bedrooms < 1 {
		bedrooms = 1
	}

	return perRoom * bedrooms
}

// AddInvestmentMetrics fills in the rent estimate, annual rent,
// and gross yield (annual rent over price, as a percentage
// rounded to two decimal places).
func (l *Listing) AddInvestmentMetrics() {
	l.MonthlyRent = EstimateMonthlyRent(l.City, l.Bedrooms)
	l.AnnualRent = l.MonthlyRent * 12

	if l.Price > 0 {
		grossYield := float64(l.AnnualRent) / float64(l.Price) * 100
		l.GrossYield = math.Round(grossYield*100) / 100
	}
}
