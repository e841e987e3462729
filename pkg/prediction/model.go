package prediction

import (
	"github.com/lintang-b-s/compassx/pkg/unit"
)

// Model predicts the energy rate of a vehicle travelling at speed over a road with the given grade.
// grade is in decimal (unit.BaseGradeUnit). Implementations are immutable after construction and
// safe for concurrent use without external synchronization.
type Model interface {
	Predict(speed float64, speedUnit unit.SpeedUnit, grade float64) (float64, unit.EnergyRateUnit, error)
}

// Units are the units a backend was trained on: inputs are converted into speedUnit and gradeUnit
// before inference and the output is reported in energyRateUnit.
type Units struct {
	SpeedUnit      unit.SpeedUnit
	GradeUnit      unit.GradeUnit
	EnergyRateUnit unit.EnergyRateUnit
}

func (u Units) validate() error {
	if _, err := unit.ParseSpeedUnit(string(u.SpeedUnit)); err != nil {
		return err
	}
	if _, err := unit.ParseGradeUnit(string(u.GradeUnit)); err != nil {
		return err
	}
	if _, err := unit.ParseEnergyRateUnit(string(u.EnergyRateUnit)); err != nil {
		return err
	}
	return nil
}

// features converts a request into the [speed, grade] feature row of the backend.
func (u Units) features(speed float64, speedUnit unit.SpeedUnit, grade float64) (float64, float64, error) {
	s, err := speedUnit.Convert(speed, u.SpeedUnit)
	if err != nil {
		return 0, 0, err
	}
	g, err := unit.BaseGradeUnit.Convert(grade, u.GradeUnit)
	if err != nil {
		return 0, 0, err
	}
	return s, g, nil
}
