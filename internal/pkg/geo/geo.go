package geo

import (
	"math"

	"github.com/frfole/inverse-zastavky/internal/domain"
)

const earthRadiusKm = 6371.0

func toRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Distance вычисляет расстояние между двумя точками в километрах
// (haversine, R = 6371 km).
func Distance(a, b domain.Point) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	h := (1 - math.Cos(dLat) + math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*(1-math.Cos(dLon))) / 2
	// rounding can push h a hair outside [0, 1] for antipodal or equal points
	h = math.Min(math.Max(h, 0), 1)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// PathLength sums Distance over consecutive pairs. Fewer than two points
// yield 0.
func PathLength(points []domain.Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return domain.Point{Lat: lat, Lon: lon}.Valid()
}
