package unit

import "github.com/lintang-b-s/compassx/pkg/util"

type TimeUnit string

const (
	Milliseconds TimeUnit = "milliseconds"
	Seconds      TimeUnit = "seconds"
	Minutes      TimeUnit = "minutes"
	Hours        TimeUnit = "hours"
)

// seconds per unit
var timeFactors = map[TimeUnit]float64{
	Milliseconds: 0.001,
	Seconds:      1.0,
	Minutes:      60.0,
	Hours:        3600.0,
}

func ParseTimeUnit(s string) (TimeUnit, error) {
	u := TimeUnit(s)
	if _, ok := timeFactors[u]; !ok {
		return "", util.WrapErrorf(nil, util.ErrBadParamInput, "unknown time unit %q", s)
	}
	return u, nil
}

func (u *TimeUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u TimeUnit) String() string {
	return string(u)
}

func (u TimeUnit) Convert(value float64, to TimeUnit) (float64, error) {
	from, ok := timeFactors[u]
	if !ok {
		return 0, util.WrapErrorf(nil, util.ErrNumeric, "cannot convert from unknown time unit %q", string(u))
	}
	target, ok := timeFactors[to]
	if !ok {
		return 0, util.WrapErrorf(nil, util.ErrNumeric, "cannot convert to unknown time unit %q", string(to))
	}
	return checkFinite(value*from/target, "time", value, string(u), string(to))
}
