package unit

import (
	"github.com/lintang-b-s/compassx/pkg/util"
)

type DistanceUnit string

const (
	Meters     DistanceUnit = "meters"
	Kilometers DistanceUnit = "kilometers"
	Miles      DistanceUnit = "miles"
)

// BaseDistanceUnit is the unit edge distances are stored in by the graph.
const BaseDistanceUnit = Meters

// meters per unit
var distanceFactors = map[DistanceUnit]float64{
	Meters:     1.0,
	Kilometers: 1000.0,
	Miles:      1609.344,
}

func ParseDistanceUnit(s string) (DistanceUnit, error) {
	u := DistanceUnit(s)
	if _, ok := distanceFactors[u]; !ok {
		return "", util.WrapErrorf(nil, util.ErrBadParamInput, "unknown distance unit %q", s)
	}
	return u, nil
}

func (u *DistanceUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseDistanceUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u DistanceUnit) String() string {
	return string(u)
}

// Convert converts value from u into to.
func (u DistanceUnit) Convert(value float64, to DistanceUnit) (float64, error) {
	from, ok := distanceFactors[u]
	if !ok {
		return 0, util.WrapErrorf(nil, util.ErrNumeric, "cannot convert from unknown distance unit %q", string(u))
	}
	target, ok := distanceFactors[to]
	if !ok {
		return 0, util.WrapErrorf(nil, util.ErrNumeric, "cannot convert to unknown distance unit %q", string(to))
	}
	return checkFinite(value*from/target, "distance", value, string(u), string(to))
}

func checkFinite(result float64, kind string, value float64, from, to string) (float64, error) {
	if !util.IsFinite(result) {
		return 0, util.WrapErrorf(nil, util.ErrNumeric, "%s conversion of %v from %s to %s is not finite", kind, value, from, to)
	}
	return result, nil
}
