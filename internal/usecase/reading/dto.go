package reading

import (
	domainSensor "github.com/Augusto140/Englife-server/internal/domain/sensor"
)

// ReadingsRequest carries the /leituras query string. Hours stays a string so
// that garbage falls back to the default window instead of failing the page.
type ReadingsRequest struct {
	Location string `form:"localizacao"`
	Position string `form:"tipo"`
	Hours    string `form:"horas"`
}

// AppliedFilters echoes the filters back to the page after defaults.
type AppliedFilters struct {
	Location string
	Position string
	Hours    int
}

type ReadingsResponse struct {
	Readings  []*domainSensor.Reading
	Locations []string
	Positions []string
	Filters   AppliedFilters
}
