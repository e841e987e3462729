package traversal

import (
	"github.com/lintang-b-s/compassx/pkg"
	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/lintang-b-s/compassx/pkg/util"
)

// SpeedTable maps road classes to a free-flow speed. Classes missing from the table travel at
// pkg.DEFAULT_SPEED_KMH.
type SpeedTable struct {
	speeds       map[pkg.OsmHighwayType]float64
	speedUnit    unit.SpeedUnit
	defaultSpeed float64
	maxSpeed     float64
}

// NewSpeedTable builds a table from road class names (motorway, residential, ...) to speeds in speedUnit.
func NewSpeedTable(speeds map[string]float64, speedUnit unit.SpeedUnit) (*SpeedTable, error) {
	defaultSpeed, err := unit.KilometersPerHour.Convert(pkg.DEFAULT_SPEED_KMH, speedUnit)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBuild, "invalid speed table unit %q", speedUnit)
	}

	st := &SpeedTable{
		speeds:       make(map[pkg.OsmHighwayType]float64, len(speeds)),
		speedUnit:    speedUnit,
		defaultSpeed: defaultSpeed,
		maxSpeed:     defaultSpeed,
	}
	for name, speed := range speeds {
		hwType := pkg.GetHighwayType(name)
		if hwType == pkg.UNKNOWN && name != pkg.UNKNOWN.String() {
			return nil, util.WrapErrorf(nil, util.ErrBuild, "unknown road class %q in speed table", name)
		}
		if !util.IsFinite(speed) || speed <= 0 {
			return nil, util.WrapErrorf(nil, util.ErrBuild, "speed for %s must be positive, got %v", name, speed)
		}
		st.speeds[hwType] = speed
		st.maxSpeed = max(st.maxSpeed, speed)
	}
	return st, nil
}

func (st *SpeedTable) Speed(hwType pkg.OsmHighwayType) (float64, unit.SpeedUnit) {
	if speed, ok := st.speeds[hwType]; ok {
		return speed, st.speedUnit
	}
	return st.defaultSpeed, st.speedUnit
}

// MaxSpeed is the fastest speed any edge can be travelled at.
func (st *SpeedTable) MaxSpeed() (float64, unit.SpeedUnit) {
	return st.maxSpeed, st.speedUnit
}

func (st *SpeedTable) SpeedUnit() unit.SpeedUnit {
	return st.speedUnit
}
