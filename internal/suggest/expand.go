package suggest

import (
	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/pkg/geo"
)

const (
	// DefaultMaxPaths bounds every expansion.
	DefaultMaxPaths = 100000
	// DefaultDedupRadiusKm is the distance under which two city candidates
	// of the same token are treated as one place.
	DefaultDedupRadiusKm = 0.5
)

// DedupePoints keeps points in order, dropping every point within radiusKm
// (inclusive) of an already kept one.
func DedupePoints(points []domain.Point, radiusKm float64) []domain.Point {
	kept := make([]domain.Point, 0, len(points))
	for _, p := range points {
		near := false
		for _, k := range kept {
			if geo.Distance(p, k) <= radiusKm {
				near = true
				break
			}
		}
		if !near {
			kept = append(kept, p)
		}
	}
	return kept
}

// ExpandCities builds city-level paths from a token sequence. The first
// token seeds the paths; without candidates for it no path is produced.
// A token equal to its predecessor, or one without candidates, leaves the
// paths unchanged. When the next product would exceed maxPaths the paths
// built so far are returned with truncated set.
func ExpandCities(tokens []string, candidates map[string][]domain.Point, maxPaths int) (paths [][]domain.Point, truncated bool) {
	if len(tokens) == 0 {
		return nil, false
	}

	seed := candidates[tokens[0]]
	if len(seed) > maxPaths {
		seed, truncated = seed[:maxPaths], true
	}
	for _, c := range seed {
		paths = append(paths, []domain.Point{c})
	}
	if len(paths) == 0 || truncated {
		return paths, truncated
	}

	for i := 1; i < len(tokens); i++ {
		if tokens[i] == tokens[i-1] {
			continue
		}
		cands := candidates[tokens[i]]
		if len(cands) == 0 {
			continue
		}
		if len(paths)*len(cands) > maxPaths {
			return paths, true
		}

		next := make([][]domain.Point, 0, len(paths)*len(cands))
		for _, p := range paths {
			for _, c := range cands {
				np := make([]domain.Point, len(p), len(p)+1)
				copy(np, p)
				next = append(next, append(np, c))
			}
		}
		paths = next
	}
	return paths, false
}

// ExpandStations builds stop-level paths, one slot per name. A name with
// candidates branches every path over them. A name whose candidate list is
// empty, or that is missing from candidates altogether, appends a nil
// (unresolved) slot to every path. If the next product would exceed
// maxPaths, expansion stops and the remaining positions stay unresolved.
func ExpandStations(names []string, candidates map[string][]domain.StationSlot, maxPaths int) (paths [][]*domain.StationSlot, truncated bool) {
	if len(names) == 0 {
		return nil, false
	}

	if seed := candidates[names[0]]; len(seed) > 0 {
		if len(seed) > maxPaths {
			seed, truncated = seed[:maxPaths], true
		}
		for i := range seed {
			slot := seed[i]
			paths = append(paths, []*domain.StationSlot{&slot})
		}
	} else {
		paths = [][]*domain.StationSlot{{nil}}
	}

	for _, name := range names[1:] {
		cands, known := candidates[name]

		if truncated || !known || len(cands) == 0 {
			for i, p := range paths {
				paths[i] = appendSlot(p, nil)
			}
			continue
		}

		if len(paths)*len(cands) > maxPaths {
			truncated = true
			for i, p := range paths {
				paths[i] = appendSlot(p, nil)
			}
			continue
		}

		next := make([][]*domain.StationSlot, 0, len(paths)*len(cands))
		for _, p := range paths {
			for j := range cands {
				slot := cands[j]
				next = append(next, appendSlot(p, &slot))
			}
		}
		paths = next
	}
	return paths, truncated
}

func appendSlot(p []*domain.StationSlot, slot *domain.StationSlot) []*domain.StationSlot {
	np := make([]*domain.StationSlot, len(p), len(p)+1)
	copy(np, p)
	return append(np, slot)
}

// ResolvedLength measures a stop-level path over its resolved slots only,
// as if unresolved slots were absent.
func ResolvedLength(path []*domain.StationSlot) float64 {
	points := make([]domain.Point, 0, len(path))
	for _, s := range path {
		if s != nil {
			points = append(points, s.Point)
		}
	}
	return geo.PathLength(points)
}
