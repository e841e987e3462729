package geo

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/lintang-b-s/compassx/pkg/util"
)

func validCoordinate(c Coordinate) bool {
	return util.IsFinite(c.Lat) && util.IsFinite(c.Lon) &&
		c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// CoordDistance. great-circle distance between a and b on the s2 sphere, in distanceUnit.
// Returns a numeric error for coordinates outside the lat/lon domain.
func CoordDistance(a, b Coordinate, distanceUnit unit.DistanceUnit) (float64, error) {
	if !validCoordinate(a) || !validCoordinate(b) {
		return 0, util.WrapErrorf(nil, util.ErrNumeric, "invalid coordinates (%v,%v) -> (%v,%v)", a.Lat, a.Lon, b.Lat, b.Lon)
	}

	angle := s2.LatLngFromDegrees(a.Lat, a.Lon).Distance(s2.LatLngFromDegrees(b.Lat, b.Lon))
	meters := angle.Radians() * earthRadiusKM * 1000

	dist, err := unit.Meters.Convert(meters, distanceUnit)
	if err != nil {
		return 0, err
	}
	return dist, nil
}
