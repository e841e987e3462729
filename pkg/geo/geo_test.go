package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/lintang-b-s/compassx/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestCoordDistance(t *testing.T) {
	// yogyakarta tugu -> malioboro
	a := NewCoordinate(-7.782889, 110.367083)
	b := NewCoordinate(-7.792561, 110.365825)

	km, err := CoordDistance(a, b, unit.Kilometers)
	require.NoError(t, err)
	require.InDelta(t, 1.084370566911295, km, 1e-6)

	m, err := CoordDistance(a, b, unit.Meters)
	require.NoError(t, err)
	require.InDelta(t, km*1000, m, 1e-6)

	zero, err := CoordDistance(a, a, unit.Meters)
	require.NoError(t, err)
	require.Equal(t, 0.0, zero)
}

func TestCoordDistanceInvalid(t *testing.T) {
	testCases := []struct {
		name string
		a    Coordinate
	}{
		{name: "nan latitude", a: NewCoordinate(math.NaN(), 0)},
		{name: "latitude out of range", a: NewCoordinate(91, 0)},
		{name: "infinite longitude", a: NewCoordinate(0, math.Inf(-1))},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CoordDistance(tc.a, NewCoordinate(0, 0), unit.Meters)
			require.True(t, errors.Is(err, util.ErrNumeric))
		})
	}
}

func TestBearingTo(t *testing.T) {
	testCases := []struct {
		name     string
		lat, lon float64
		want     float64
	}{
		{name: "north", lat: 1, lon: 0, want: 0},
		{name: "east", lat: 0, lon: 1, want: 90},
		{name: "south", lat: -1, lon: 0, want: 180},
		{name: "west", lat: 0, lon: -1, want: 270},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, BearingTo(0, 0, tc.lat, tc.lon), 1e-9)
		})
	}
}

func TestGetDestinationPoint(t *testing.T) {
	lat, lon := GetDestinationPoint(0, 0, 90, 10)
	require.InDelta(t, 0, lat, 1e-9)
	km, err := CoordDistance(NewCoordinate(0, 0), NewCoordinate(lat, lon), unit.Kilometers)
	require.NoError(t, err)
	require.InDelta(t, 10, km, 1e-6)
}
