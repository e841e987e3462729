package controllers

import (
	"context"

	"github.com/lintang-b-s/compassx/pkg/document"
)

type CompassService interface {
	Query(ctx context.Context, query *document.Document) ([]*document.Document, error)
	EvaluatePath(path []int64, costVariable string) (*document.Document, error)
	EnergyRate(speed float64, speedUnit string, grade float64) (float64, string, error)
	StateInfo() *document.Document
}
