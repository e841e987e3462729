package unit

import "github.com/lintang-b-s/compassx/pkg/util"

type EnergyUnit string

const (
	GallonsGasoline EnergyUnit = "gallons_gasoline"
	GallonsDiesel   EnergyUnit = "gallons_diesel"
	KilowattHours   EnergyUnit = "kilowatt_hours"
)

func (u EnergyUnit) String() string {
	return string(u)
}

// EnergyRateUnit is energy consumed per unit of distance.
type EnergyRateUnit string

const (
	GallonsGasolinePerMile    EnergyRateUnit = "gallons_gasoline_per_mile"
	GallonsDieselPerMile      EnergyRateUnit = "gallons_diesel_per_mile"
	KilowattHoursPerMile      EnergyRateUnit = "kilowatt_hours_per_mile"
	KilowattHoursPerKilometer EnergyRateUnit = "kilowatt_hours_per_kilometer"
)

type energyRateComponents struct {
	energy   EnergyUnit
	distance DistanceUnit
}

var energyRates = map[EnergyRateUnit]energyRateComponents{
	GallonsGasolinePerMile:    {GallonsGasoline, Miles},
	GallonsDieselPerMile:      {GallonsDiesel, Miles},
	KilowattHoursPerMile:      {KilowattHours, Miles},
	KilowattHoursPerKilometer: {KilowattHours, Kilometers},
}

func ParseEnergyRateUnit(s string) (EnergyRateUnit, error) {
	u := EnergyRateUnit(s)
	if _, ok := energyRates[u]; !ok {
		return "", util.WrapErrorf(nil, util.ErrBadParamInput, "unknown energy rate unit %q", s)
	}
	return u, nil
}

func (u *EnergyRateUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseEnergyRateUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u EnergyRateUnit) String() string {
	return string(u)
}

// EnergyUnit is the numerator of the rate, e.g. gallons_gasoline for gallons_gasoline_per_mile.
func (u EnergyRateUnit) EnergyUnit() EnergyUnit {
	return energyRates[u].energy
}

// DistanceUnit is the denominator of the rate, e.g. miles for gallons_gasoline_per_mile.
func (u EnergyRateUnit) DistanceUnit() DistanceUnit {
	return energyRates[u].distance
}
