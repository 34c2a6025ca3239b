package model

import "github.com/jobast/bokkal/internal/domain/enums"

// PlaceCandidate is one suggestion produced by the location resolver. It is
// built fresh per query and never persisted.
type PlaceCandidate struct {
	Name     string
	Subtitle string
	City     enums.City
	Lat      *float64
	Lon      *float64
	Kind     enums.PlaceKind
	Origin   enums.PlaceOrigin
}

// PlaceSelection is the definitive triple a caller keeps after picking a
// candidate to populate an event's location fields.
type PlaceSelection struct {
	Name string
	City enums.City
	Lat  *float64
	Lon  *float64
}

func (c PlaceCandidate) Selection() PlaceSelection {
	return PlaceSelection{
		Name: c.Name,
		City: c.City,
		Lat:  c.Lat,
		Lon:  c.Lon,
	}
}
