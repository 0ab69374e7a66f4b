// Package quotegen turns cost estimates into per-shop quotes scattered
// around the user's location.
package quotegen

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/fairfix/site/estimator"
	"github.com/fairfix/site/quote"
)

// Friendly names accepted from the service selector, mapped onto labor
// standard entries.
var serviceLookup = map[string]string{
	"oil change":          "Oil Change",
	"battery replacement": "Battery Replacement",
	"tire rotation":       "Tire Rotation",
	"spark plug service":  "Spark Plug Replacement (4-cyl)",
}

// Fallback price bands (low, high dollars) for services the estimator does
// not know.
var priceBands = map[string][2]int{
	"oil change":             {60, 140},
	"brake pad replacement":  {220, 520},
	"battery replacement":    {120, 280},
	"tire rotation":          {40, 120},
	"spark plug service":     {180, 420},
}

var defaultBand = [2]int{200, 550}

var indyNames = []string{
	"Main Street Auto",
	"Neighborhood Garage",
	"Precision Auto Care",
}

// Generator draws quote prices and shop positions.
type Generator struct {
	est *estimator.Estimator
	rng *rand.Rand
}

// New creates a generator over the given estimator.
func New(est *estimator.Estimator) *Generator {
	return NewSeeded(est, time.Now().UnixNano())
}

// NewSeeded creates a generator with a fixed seed, for reproducible output.
func NewSeeded(est *estimator.Estimator, seed int64) *Generator {
	return &Generator{est: est, rng: rand.New(rand.NewSource(seed))}
}

// Quotes produces two dealer and three independent-shop quotes for a
// service near the user. Prices come from the estimator's 95% CI when the
// service is known, else from flat price bands with a dealer markup.
func (g *Generator) Quotes(service, mk, md string, year int, userLat, userLng float64) []quote.Quote {
	normalized := strings.ToLower(strings.TrimSpace(service))

	var est *estimator.Result
	if normalized == "brake pad replacement" || normalized == "brake pads" {
		est = g.est.EstimateBrakesFull(mk, md, year)
	} else {
		mapped, ok := serviceLookup[normalized]
		if !ok {
			mapped = strings.TrimSpace(service)
		}
		est = g.est.Estimate(mk, md, year, mapped)
	}

	dealerNames := []string{
		title(mk) + " " + title(md) + " Authorized Dealer",
		title(mk) + " Certified Service Center",
	}

	var dealerPrice, indyPrice func() int
	if est != nil {
		dealerPrice = func() int { return int(math.Round(g.uniform(est.Dealer.TotalCILow, est.Dealer.TotalCIHigh))) }
		indyPrice = func() int { return int(math.Round(g.uniform(est.Indy.TotalCILow, est.Indy.TotalCIHigh))) }
	} else {
		band, ok := priceBands[normalized]
		if !ok {
			band = defaultBand
		}
		base := band[0] + g.rng.Intn(band[1]-band[0]+1)
		dealerPrice = func() int { return int(math.Round(float64(base) * 1.4)) }
		indyPrice = func() int { return int(math.Round(float64(base) * g.uniform(0.75, 0.95))) }
	}

	quotes := make([]quote.Quote, 0, len(dealerNames)+len(indyNames))
	for _, name := range dealerNames {
		quotes = append(quotes, quote.Quote{
			Name:     name,
			Price:    float64(dealerPrice()),
			Type:     quote.TypeDealer,
			Distance: round1(g.uniform(2.0, 15.0)),
			Lat:      round6(userLat + g.uniform(-0.02, 0.02)),
			Lng:      round6(userLng + g.uniform(-0.02, 0.02)),
		})
	}
	for _, name := range indyNames {
		quotes = append(quotes, quote.Quote{
			Name:     name,
			Price:    float64(indyPrice()),
			Type:     quote.TypeIndy,
			Distance: round1(g.uniform(1.0, 12.0)),
			Lat:      round6(userLat + g.uniform(-0.02, 0.02)),
			Lng:      round6(userLng + g.uniform(-0.02, 0.02)),
		})
	}
	return quotes
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func round6(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}

func title(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
