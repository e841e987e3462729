package usecases

import (
	"context"
	"math"

	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/unit"
	"github.com/lintang-b-s/compassx/pkg/util"
)

type CompassService struct {
	engine CompassEngine
}

func NewCompassService(engine CompassEngine) *CompassService {
	return &CompassService{engine: engine}
}

func (s *CompassService) Query(ctx context.Context, query *document.Document) ([]*document.Document, error) {
	return s.engine.RunQuery(ctx, query)
}

func (s *CompassService) EvaluatePath(path []int64, costVariable string) (*document.Document, error) {
	ids := make([]da.Index, len(path))
	for i, id := range path {
		if id < 0 || id > math.MaxUint32 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "path[%d] is not a vertex id: %d", i, id)
		}
		ids[i] = da.Index(id)
	}
	out, _, err := s.engine.EvaluatePath(ids, costVariable)
	return out, err
}

// EnergyRate predicts the energy rate at speed and grade (decimal) with the configured model.
func (s *CompassService) EnergyRate(speed float64, speedUnit string, grade float64) (float64, string, error) {
	su, err := unit.ParseSpeedUnit(speedUnit)
	if err != nil {
		return 0, "", util.WrapErrorf(err, util.ErrBadParamInput, "invalid speed_unit")
	}
	rate, rateUnit, err := s.engine.PredictEnergyRate(speed, su, grade)
	if err != nil {
		return 0, "", err
	}
	return rate, rateUnit.String(), nil
}

func (s *CompassService) StateInfo() *document.Document {
	return s.engine.StateInfo()
}
