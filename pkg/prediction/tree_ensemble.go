package prediction

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitryikh/leaves"
	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/lintang-b-s/compassx/pkg/util"
)

const numFeatures = 2 // [speed, grade]

// TreeEnsembleModel. single-output tree ensemble regressor over [speed, grade]. Random forests
// exported by LightGBM with average_output predict the mean of their trees.
type TreeEnsembleModel struct {
	ensemble *leaves.Ensemble
	units    Units
}

func NewTreeEnsembleModel(ensemble *leaves.Ensemble, units Units) (*TreeEnsembleModel, error) {
	if err := units.validate(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBuild, "invalid tree ensemble units")
	}
	if ensemble == nil || ensemble.NEstimators() == 0 {
		return nil, util.WrapErrorf(nil, util.ErrBuild, "tree ensemble has no trees")
	}
	// PredictSingle silently returns 0 for these shapes, so reject them here.
	if ensemble.NOutputGroups() != 1 {
		return nil, util.WrapErrorf(nil, util.ErrBuild, "tree ensemble %s has %d outputs, expected 1",
			ensemble.Name(), ensemble.NOutputGroups())
	}
	if ensemble.NFeatures() > numFeatures {
		return nil, util.WrapErrorf(nil, util.ErrBuild, "tree ensemble %s expects %d features, expected at most %d",
			ensemble.Name(), ensemble.NFeatures(), numFeatures)
	}
	return &TreeEnsembleModel{ensemble: ensemble, units: units}, nil
}

func (m *TreeEnsembleModel) Predict(speed float64, speedUnit unit.SpeedUnit, grade float64) (float64, unit.EnergyRateUnit, error) {
	start := time.Now()
	rate, err := m.predict(speed, speedUnit, grade)
	observePrediction(TreeEnsemble.String(), start, err)
	if err != nil {
		return 0, "", err
	}
	return rate, m.units.EnergyRateUnit, nil
}

func (m *TreeEnsembleModel) predict(speed float64, speedUnit unit.SpeedUnit, grade float64) (float64, error) {
	s, g, err := m.units.features(speed, speedUnit, grade)
	if err != nil {
		return 0, util.WrapErrorf(err, util.ErrPrediction, "tree ensemble input conversion failed")
	}

	rate := m.ensemble.PredictSingle([]float64{s, g}, 0)
	if !util.IsFinite(rate) {
		return 0, util.WrapErrorf(nil, util.ErrPrediction, "tree ensemble produced non-finite rate %v", rate)
	}
	return rate, nil
}

/*
LoadTreeEnsembleModel. reads a trained ensemble whose feature 0 is speed and feature 1 is grade.
the format follows the file extension, after an optional .bz2 suffix:

	.json       LightGBM JSON dump
	.xgb, .bin  XGBoost binary model
	otherwise   LightGBM text model
*/
func LoadTreeEnsembleModel(path string, units Units) (*TreeEnsembleModel, error) {
	ar, err := openArtifact(path)
	if err != nil {
		return nil, err
	}
	defer ar.Close()

	var ensemble *leaves.Ensemble
	switch strings.ToLower(filepath.Ext(strings.TrimSuffix(path, ".bz2"))) {
	case ".json":
		ensemble, err = leaves.LGEnsembleFromJSON(ar.Reader, true)
	case ".xgb", ".bin":
		ensemble, err = leaves.XGEnsembleFromReader(ar.Reader, true)
	default:
		ensemble, err = leaves.LGEnsembleFromReader(ar.Reader, true)
	}
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBuild, "cannot load tree ensemble from %s", path)
	}
	return NewTreeEnsembleModel(ensemble, units)
}
