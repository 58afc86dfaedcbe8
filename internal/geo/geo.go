// Package geo computes great-circle distances and nearest-first orderings
// for location-bearing records.
package geo

import (
	"math"
	"sort"

	"localmart/pkg/utils"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locatable is any record that may carry a position and can hold a
// computed distance.
type Locatable interface {
	Coords() (lat, lon float64, ok bool)
	SetDistanceKm(km float64)
}

// DistanceKm returns the haversine distance between a and b in kilometers,
// rounded to two decimals for display. Symmetric; zero for equal points.
func DistanceKm(a, b Coordinates) float64 {
	km := utils.HaversineDistance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	return math.Round(km*100) / 100
}

// RankByDistance returns a new slice sorted nearest-first from origin.
// Entities without coordinates keep no distance and sort after ranked ones;
// a nil origin ranks nothing. Relative order is preserved among ties and
// among distance-less entities.
func RankByDistance[E Locatable](origin *Coordinates, entities []E) []E {
	ranked := make([]E, len(entities))
	copy(ranked, entities)

	if origin == nil {
		return ranked
	}

	dist := make(map[int]float64, len(ranked))
	for i, e := range ranked {
		lat, lon, ok := e.Coords()
		if !ok {
			continue
		}
		km := DistanceKm(*origin, Coordinates{Latitude: lat, Longitude: lon})
		e.SetDistanceKm(km)
		dist[i] = km
	}

	idx := make([]int, len(ranked))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		di, iOK := dist[idx[i]]
		dj, jOK := dist[idx[j]]
		if iOK != jOK {
			return iOK
		}
		if !iOK {
			return false
		}
		return di < dj
	})

	out := make([]E, len(ranked))
	for i, at := range idx {
		out[i] = ranked[at]
	}
	return out
}
