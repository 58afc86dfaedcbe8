package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type place struct {
	name string
	lat  *float64
	lon  *float64
	km   *float64
}

func (p *place) Coords() (float64, float64, bool) {
	if p.lat == nil || p.lon == nil {
		return 0, 0, false
	}
	return *p.lat, *p.lon, true
}

func (p *place) SetDistanceKm(km float64) { p.km = &km }

func fp(v float64) *float64 { return &v }

func TestDistanceKm(t *testing.T) {
	tashkent := Coordinates{Latitude: 41.2995, Longitude: 69.2401}
	samarkand := Coordinates{Latitude: 39.6542, Longitude: 66.9597}

	t.Run("zero for identical points", func(t *testing.T) {
		assert.Zero(t, DistanceKm(tashkent, tashkent))
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, DistanceKm(tashkent, samarkand), DistanceKm(samarkand, tashkent))
	})

	t.Run("known distance", func(t *testing.T) {
		// Tashkent to Samarkand is roughly 260-270 km great-circle.
		km := DistanceKm(tashkent, samarkand)
		assert.InDelta(t, 265, km, 10)
	})

	t.Run("rounded to two decimals", func(t *testing.T) {
		km := DistanceKm(tashkent, Coordinates{Latitude: 41.3, Longitude: 69.25})
		assert.Equal(t, km, float64(int64(km*100))/100)
	})
}

func TestRankByDistance(t *testing.T) {
	origin := &Coordinates{Latitude: 41.30, Longitude: 69.24}

	t.Run("stable nearest-first with distance-less last", func(t *testing.T) {
		a := &place{name: "A"}
		b := &place{name: "B", lat: fp(41.309), lon: fp(69.24)} // ~1 km north
		c := &place{name: "C"}
		d := &place{name: "D", lat: fp(41.3045), lon: fp(69.24)} // ~0.5 km north

		out := RankByDistance(origin, []*place{a, b, c, d})

		require.Len(t, out, 4)
		assert.Equal(t, "D", out[0].name)
		assert.Equal(t, "B", out[1].name)
		assert.Equal(t, "A", out[2].name)
		assert.Equal(t, "C", out[3].name)

		require.NotNil(t, out[0].km)
		require.NotNil(t, out[1].km)
		assert.Less(t, *out[0].km, *out[1].km)
		assert.Nil(t, out[2].km)
		assert.Nil(t, out[3].km)
	})

	t.Run("nil origin ranks nothing", func(t *testing.T) {
		b := &place{name: "B", lat: fp(41.0), lon: fp(69.0)}
		a := &place{name: "A"}

		out := RankByDistance(nil, []*place{b, a})

		require.Len(t, out, 2)
		assert.Equal(t, "B", out[0].name)
		assert.Equal(t, "A", out[1].name)
		assert.Nil(t, out[0].km)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, RankByDistance(origin, []*place{}))
	})

	t.Run("input order untouched", func(t *testing.T) {
		far := &place{name: "far", lat: fp(42.0), lon: fp(69.24)}
		near := &place{name: "near", lat: fp(41.301), lon: fp(69.24)}
		in := []*place{far, near}

		out := RankByDistance(origin, in)

		assert.Equal(t, "far", in[0].name)
		assert.Equal(t, "near", out[0].name)
	})
}
