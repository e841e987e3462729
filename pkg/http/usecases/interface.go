package usecases

import (
	"context"

	da "github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/traversal"
	"github.com/lintang-b-s/compassx/pkg/unit"
)

type CompassEngine interface {
	RunQuery(ctx context.Context, query *document.Document) ([]*document.Document, error)
	EvaluatePath(ids []da.Index, costVariable string) (*document.Document, *traversal.PathResult, error)
	PredictEnergyRate(speed float64, speedUnit unit.SpeedUnit, grade float64) (float64, unit.EnergyRateUnit, error)
	StateInfo() *document.Document
}
