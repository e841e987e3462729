package controllers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/engine"
	helper "github.com/lintang-b-s/compassx/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type compassAPI struct {
	compassService CompassService
	log            *zap.Logger
}

func New(compassService CompassService, log *zap.Logger) *compassAPI {
	return &compassAPI{
		compassService: compassService,
		log:            log,
	}
}

func (api *compassAPI) Routes(group *helper.RouteGroup) {
	group.POST("/query", api.query)
	group.POST("/evaluatePath", api.evaluatePath)
	group.POST("/energyRate", api.energyRate)
	group.GET("/stateInfo", api.stateInfo)
}

// query runs the input plugins over the posted query document and evaluates every expanded
// query that names a path.
func (api *compassAPI) query(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	body, err := api.readBody(w, r)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	query, err := document.Parse(body)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	results, err := api.compassService.Query(r.Context(), query)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": results}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *compassAPI) evaluatePath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request evaluatePathRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := engine.ValidateStruct(request); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	result, err := api.compassService.EvaluatePath(request.Path, request.CostVariable)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": result}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *compassAPI) energyRate(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request energyRateRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := engine.ValidateStruct(request); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	rate, rateUnit, err := api.compassService.EnergyRate(request.Speed, request.SpeedUnit, request.Grade)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewEnergyRateResponse(rate, rateUnit)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *compassAPI) stateInfo(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": api.compassService.StateInfo()}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
