package unit

import "github.com/lintang-b-s/compassx/pkg/util"

type GradeUnit string

const (
	Decimal GradeUnit = "decimal"
	Percent GradeUnit = "percent"
	Millis  GradeUnit = "millis"
)

// BaseGradeUnit is the unit edge grades are stored in by the graph.
const BaseGradeUnit = Decimal

// decimal grade per unit
var gradeFactors = map[GradeUnit]float64{
	Decimal: 1.0,
	Percent: 0.01,
	Millis:  0.001,
}

func ParseGradeUnit(s string) (GradeUnit, error) {
	u := GradeUnit(s)
	if _, ok := gradeFactors[u]; !ok {
		return "", util.WrapErrorf(nil, util.ErrBadParamInput, "unknown grade unit %q", s)
	}
	return u, nil
}

func (u *GradeUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseGradeUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u GradeUnit) String() string {
	return string(u)
}

func (u GradeUnit) Convert(value float64, to GradeUnit) (float64, error) {
	from, ok := gradeFactors[u]
	if !ok {
		return 0, util.WrapErrorf(nil, util.ErrNumeric, "cannot convert from unknown grade unit %q", string(u))
	}
	target, ok := gradeFactors[to]
	if !ok {
		return 0, util.WrapErrorf(nil, util.ErrNumeric, "cannot convert to unknown grade unit %q", string(to))
	}
	return checkFinite(value*from/target, "grade", value, string(u), string(to))
}
