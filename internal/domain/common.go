package domain

import (
	"math"
	"time"
)

// Point is a WGS84 coordinate, always stored as (lat, lon).
type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// Valid reports whether the point lies inside the WGS84 ranges.
func (p Point) Valid() bool {
	return !math.IsNaN(p.Lat) && !math.IsNaN(p.Lon) &&
		p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// BBox is a latitude/longitude window. NewBBox orders the bounds so that
// callers may pass the corners in any order.
type BBox struct {
	LatFrom float64 `json:"lat_from"`
	LatTo   float64 `json:"lat_to"`
	LonFrom float64 `json:"lon_from"`
	LonTo   float64 `json:"lon_to"`
}

func NewBBox(lat1, lat2, lon1, lon2 float64) BBox {
	return BBox{
		LatFrom: math.Min(lat1, lat2),
		LatTo:   math.Max(lat1, lat2),
		LonFrom: math.Min(lon1, lon2),
		LonTo:   math.Max(lon1, lon2),
	}
}

// Contains reports whether p is inside the box, bounds included.
func (b BBox) Contains(p Point) bool {
	return b.LatFrom <= p.Lat && p.Lat <= b.LatTo && b.LonFrom <= p.Lon && p.Lon <= b.LonTo
}

// Statistics представляет счётчики по всем таблицам сервиса
type Statistics struct {
	Stations     int       `json:"stations" db:"stations"`
	StationNames int       `json:"station_names" db:"station_names"`
	Chains       int       `json:"chains" db:"chains"`
	ChainStops   int       `json:"chain_stops" db:"chain_stops"`
	LinkedStops  int       `json:"linked_stops" db:"linked_stops"`
	BaseStations int       `json:"base_stations" db:"base_stations"`
	BaseCities   int       `json:"base_cities" db:"base_cities"`
	LastUpdated  time.Time `json:"last_updated" db:"-"`
}

// LinkedRatio returns the share of chain positions already linked to a station.
func (s *Statistics) LinkedRatio() float64 {
	if s.ChainStops == 0 {
		return 0
	}
	return float64(s.LinkedStops) / float64(s.ChainStops)
}
