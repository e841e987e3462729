package guidance

import (
	"math"

	"github.com/lintang-b-s/compassx/pkg/geo"
	"github.com/lintang-b-s/compassx/pkg/util"
)

// https://www.movable-type.co.uk/scripts/latlong.html
// initial bearing (baering from a to b with meridian line crossing a)
func computeInitialBearing(lat1, lon1, lat2, lon2 float64) float64 {
	bearing := geo.BearingTo(lat1, lon1, lat2, lon2)
	bearing = util.DegreeToRadians(bearing)
	return bearing
}

// computeDeltaBearing. compute \Delta (current edge initial bearing - prev edge initial bearing) . output in radians
func computeDeltaBearing(prevLat, prevLon, lat, lon, prevInitialBearing float64) float64 {
	initialBearing := computeInitialBearing(prevLat, prevLon, lat, lon)
	prevInitialBearing, initialBearing = alignInitialBearing(prevInitialBearing, initialBearing)
	return initialBearing - prevInitialBearing
}

/*
alignInitialBearing. handle case ketika initialBearing-prevInitialBearing > 180° atau  initialBearing-prevInitialBearing < -180°.

misal:

	          \
			   \ initialBearing (350°)
				\
				/
			   /		prevInitialBearing (20°)
			  /

harusnya belok kiri, tapi karena > 180° jadi belok kanan.
how to fix: prevInitialBearing + 360°.

misal:

		 /	initialBearing (10°)
		/
	   /
	   \
		\
		 \		prevInitialBearing (340°)
		  \

dif = initialBearing - prevInitialBearing = 10° - 340° = -330°.
harusnya belok kanan, tapi karena < -180° jadi belok kiri.
how to fix: initialBearing + 360°.
*/
func alignInitialBearing(prevInitialBearing, initialBearing float64) (float64, float64) {
	dif := util.RadiansToDegree(initialBearing) - util.RadiansToDegree(prevInitialBearing)
	if dif > 180 {
		prevInitialBearing += 2 * math.Pi
	} else if dif < -180 {
		initialBearing += 2 * math.Pi
	}
	return prevInitialBearing, initialBearing
}

/*
TurnAngle. signed angle of the transition prev -> via -> next in whole degrees, in [-180,180].
positive = right turn, negative = left turn:

	prev----incomingEdge----via
	                         |
	                    outgoingEdge
	                         |
	                        next   (right turn, ~ +90)
*/
func TurnAngle(prev, via, next geo.Coordinate) int {
	prevInitialBearing := computeInitialBearing(prev.Lat, prev.Lon, via.Lat, via.Lon)
	delta := computeDeltaBearing(via.Lat, via.Lon, next.Lat, next.Lon, prevInitialBearing)
	angle := int(math.Round(util.RadiansToDegree(delta)))
	if angle > 180 {
		angle = 180
	} else if angle < -180 {
		angle = -180
	}
	return angle
}
