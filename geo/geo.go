// Package geo resolves US ZIP codes to coordinates via Nominatim.
package geo

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/muesli/gominatim"
	"github.com/patrickmn/go-cache"
)

// ZIP centroids do not move; cache aggressively.
const (
	cacheExpiry      = 24 * time.Hour
	cacheCleanupTime = 1 * time.Hour
)

// ErrNotFound means Nominatim returned no results for the ZIP code.
var ErrNotFound = errors.New("no results found for zip code")

type latLng struct {
	lat float64
	lng float64
}

// Geocoder looks up ZIP code centroids with an in-memory cache in front of
// the Nominatim server.
type Geocoder struct {
	cache  *cache.Cache
	lookup func(zip string) ([]gominatim.SearchResult, error)
}

// New configures the Nominatim server and returns a ready geocoder.
func New(server string) *Geocoder {
	gominatim.SetServer(server)
	return &Geocoder{
		cache: cache.New(cacheExpiry, cacheCleanupTime),
		lookup: func(zip string) ([]gominatim.SearchResult, error) {
			query := gominatim.SearchQuery{
				Postalcode:   zip,
				Countrycodes: []string{"US"},
			}
			return query.Get()
		},
	}
}

// ZipLatLng resolves a ZIP code to its centroid.
func (g *Geocoder) ZipLatLng(zip string) (lat, lng float64, err error) {
	if cached, ok := g.cache.Get(zip); ok {
		c := cached.(latLng)
		return c.lat, c.lng, nil
	}

	results, err := g.lookup(zip)
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding error: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, ErrNotFound
	}

	lat, lng, err = resultToLatLon(results[0])
	if err != nil {
		return 0, 0, err
	}

	g.cache.Set(zip, latLng{lat, lng}, cache.DefaultExpiration)
	return lat, lng, nil
}

func resultToLatLon(result gominatim.SearchResult) (lat, lng float64, err error) {
	lat, err = strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing latitude: %w", err)
	}

	lng, err = strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing longitude: %w", err)
	}

	return lat, lng, nil
}
