package unit

import "github.com/lintang-b-s/compassx/pkg/util"

type SpeedUnit string

const (
	KilometersPerHour SpeedUnit = "kilometers_per_hour"
	MilesPerHour      SpeedUnit = "miles_per_hour"
	MetersPerSecond   SpeedUnit = "meters_per_second"
)

// meters per second per unit
var speedFactors = map[SpeedUnit]float64{
	KilometersPerHour: 1000.0 / 3600.0,
	MilesPerHour:      1609.344 / 3600.0,
	MetersPerSecond:   1.0,
}

// speed unit -> (distance unit, time unit) of its numerator and denominator
var speedComponents = map[SpeedUnit][2]string{
	KilometersPerHour: {string(Kilometers), string(Hours)},
	MilesPerHour:      {string(Miles), string(Hours)},
	MetersPerSecond:   {string(Meters), string(Seconds)},
}

func ParseSpeedUnit(s string) (SpeedUnit, error) {
	u := SpeedUnit(s)
	if _, ok := speedFactors[u]; !ok {
		return "", util.WrapErrorf(nil, util.ErrBadParamInput, "unknown speed unit %q", s)
	}
	return u, nil
}

func (u *SpeedUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseSpeedUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u SpeedUnit) String() string {
	return string(u)
}

func (u SpeedUnit) Convert(value float64, to SpeedUnit) (float64, error) {
	from, ok := speedFactors[u]
	if !ok {
		return 0, util.WrapErrorf(nil, util.ErrNumeric, "cannot convert from unknown speed unit %q", string(u))
	}
	target, ok := speedFactors[to]
	if !ok {
		return 0, util.WrapErrorf(nil, util.ErrNumeric, "cannot convert to unknown speed unit %q", string(to))
	}
	return checkFinite(value*from/target, "speed", value, string(u), string(to))
}

// DistanceUnit is the numerator of the speed unit, e.g. kilometers for kilometers_per_hour.
func (u SpeedUnit) DistanceUnit() DistanceUnit {
	return DistanceUnit(speedComponents[u][0])
}

// TimeUnit is the denominator of the speed unit, e.g. hours for kilometers_per_hour.
func (u SpeedUnit) TimeUnit() TimeUnit {
	return TimeUnit(speedComponents[u][1])
}
