package controllers

type evaluatePathRequest struct {
	Path         []int64 `json:"path" validate:"required,min=2,dive,gte=0"`
	CostVariable string  `json:"cost_variable"`
}

type energyRateRequest struct {
	Speed     float64 `json:"speed" validate:"gte=0"`
	SpeedUnit string  `json:"speed_unit" validate:"required"`
	Grade     float64 `json:"grade" validate:"gte=-1,lte=1"`
}

type energyRateResponse struct {
	EnergyRate     float64 `json:"energy_rate"`
	EnergyRateUnit string  `json:"energy_rate_unit"`
}

func NewEnergyRateResponse(rate float64, rateUnit string) energyRateResponse {
	return energyRateResponse{
		EnergyRate:     rate,
		EnergyRateUnit: rateUnit,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
