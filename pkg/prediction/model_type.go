package prediction

import (
	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/lintang-b-s/compassx/pkg/util"
)

type ModelType string

const (
	TreeEnsemble  ModelType = "tree_ensemble"
	NeuralNetwork ModelType = "neural_network"
)

func ParseModelType(s string) (ModelType, error) {
	switch s {
	case string(TreeEnsemble), "smartcore", "random_forest":
		return TreeEnsemble, nil
	case string(NeuralNetwork), "onnx":
		return NeuralNetwork, nil
	default:
		return "", util.WrapErrorf(nil, util.ErrBadParamInput, "unknown prediction model type %q", s)
	}
}

func (m *ModelType) UnmarshalText(text []byte) error {
	parsed, err := ParseModelType(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m ModelType) String() string {
	return string(m)
}

// Build loads the backend selected by m from modelPath. Any failure is a util.ErrBuild error.
func (m ModelType) Build(modelPath string, speedUnit unit.SpeedUnit, gradeUnit unit.GradeUnit,
	energyRateUnit unit.EnergyRateUnit) (Model, error) {
	units := Units{
		SpeedUnit:      speedUnit,
		GradeUnit:      gradeUnit,
		EnergyRateUnit: energyRateUnit,
	}
	if err := units.validate(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBuild, "invalid units for %s model", m)
	}

	switch m {
	case TreeEnsemble:
		return LoadTreeEnsembleModel(modelPath, units)
	case NeuralNetwork:
		return LoadNeuralNetworkModel(modelPath, units)
	default:
		return nil, util.WrapErrorf(nil, util.ErrBuild, "unknown prediction model type %q", string(m))
	}
}
