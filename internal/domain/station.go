package domain

import "github.com/google/uuid"

// Station is a located stop of the persistent registry. One station may be
// known under several names.
type Station struct {
	StopID uuid.UUID `json:"stop_id"`
	Names  []string  `json:"names"`
	Point
}

// HasName reports whether name is one of the station's names.
func (s *Station) HasName(name string) bool {
	for _, n := range s.Names {
		if n == name {
			return true
		}
	}
	return false
}

// BaseStation is a reference stop from the imported base layer.
type BaseStation struct {
	Name string `json:"name" db:"station_name"`
	Point
}

// BaseCity is a geocoded settlement. Names are not unique.
type BaseCity struct {
	Name string `json:"name" db:"city_name"`
	Point
}
