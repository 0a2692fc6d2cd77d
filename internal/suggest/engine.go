// Package suggest reconstructs where a chain of stop names runs by expanding
// it against geocoded cities and located stations.
package suggest

import (
	"context"

	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/pkg/errors"
	"github.com/frfole/inverse-zastavky/internal/pkg/geo"
)

// ChainSource returns the ordered positions of a stored chain.
type ChainSource interface {
	GetByHash(ctx context.Context, hash string) ([]domain.ChainStation, error)
}

// CityLookup finds cities by exact name.
type CityLookup interface {
	GetByName(ctx context.Context, name string) ([]domain.BaseCity, error)
}

// StopLookup finds located stations by exact name.
type StopLookup interface {
	GetByName(ctx context.Context, name string) ([]domain.Station, error)
}

type Options struct {
	MaxPaths      int
	DedupRadiusKm float64
}

// CityResult holds the city-level reconstructions of one chain.
type CityResult struct {
	Suggestions []domain.CitySuggestion
	Truncated   bool
}

// StationResult holds the stop-level reconstructions of one chain.
type StationResult struct {
	Suggestions []domain.StationSuggestion
	Truncated   bool
}

type Engine struct {
	chains ChainSource
	cities CityLookup
	stops  StopLookup
	remap  map[string]string
	opts   Options
	logger *zap.Logger
}

func NewEngine(
	chains ChainSource,
	cities CityLookup,
	stops StopLookup,
	remap map[string]string,
	opts Options,
	logger *zap.Logger,
) *Engine {
	if opts.MaxPaths <= 0 {
		opts.MaxPaths = DefaultMaxPaths
	}
	if opts.DedupRadiusKm <= 0 {
		opts.DedupRadiusKm = DefaultDedupRadiusKm
	}
	if remap == nil {
		remap = map[string]string{}
	}
	return &Engine{
		chains: chains,
		cities: cities,
		stops:  stops,
		remap:  remap,
		opts:   opts,
		logger: logger,
	}
}

// Remap returns the city remap table the engine uses.
func (e *Engine) Remap() map[string]string {
	return e.remap
}

func (e *Engine) chainNames(ctx context.Context, hash string) ([]string, error) {
	stations, err := e.chains.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if len(stations) == 0 {
		return nil, errors.ErrChainNotFound
	}
	names := make([]string, len(stations))
	for i, s := range stations {
		names[i] = s.Name
	}
	return names, nil
}

// SuggestCities reconstructs the chain at city granularity.
func (e *Engine) SuggestCities(ctx context.Context, hash string) (*CityResult, error) {
	names, err := e.chainNames(ctx, hash)
	if err != nil {
		return nil, err
	}

	tokens := CityTokens(names, e.remap)
	candidates := make(map[string][]domain.Point, len(tokens))
	for _, tok := range tokens {
		if _, done := candidates[tok]; done {
			continue
		}
		cities, err := e.cities.GetByName(ctx, tok)
		if err != nil {
			return nil, err
		}
		points := make([]domain.Point, len(cities))
		for i, c := range cities {
			points[i] = c.Point
		}
		candidates[tok] = DedupePoints(points, e.opts.DedupRadiusKm)
	}

	paths, truncated := ExpandCities(tokens, candidates, e.opts.MaxPaths)
	if truncated {
		e.logger.Debug("City expansion capped",
			zap.String("chain_hash", hash),
			zap.Int("paths", len(paths)),
			zap.Int("max_paths", e.opts.MaxPaths))
	}

	res := &CityResult{
		Suggestions: make([]domain.CitySuggestion, len(paths)),
		Truncated:   truncated,
	}
	for i, p := range paths {
		res.Suggestions[i] = domain.CitySuggestion{
			Length:    geo.PathLength(p),
			ChainHash: hash,
			Path:      p,
		}
	}
	return res, nil
}

// ChainOptions reconstructs the chain at station granularity.
func (e *Engine) ChainOptions(ctx context.Context, hash string) (*StationResult, error) {
	names, err := e.chainNames(ctx, hash)
	if err != nil {
		return nil, err
	}

	candidates := make(map[string][]domain.StationSlot, len(names))
	for _, name := range names {
		if _, done := candidates[name]; done {
			continue
		}
		stations, err := e.stops.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		slots := make([]domain.StationSlot, len(stations))
		for i, s := range stations {
			slots[i] = domain.StationSlot{Point: s.Point, StopID: s.StopID}
		}
		candidates[name] = slots
	}

	paths, truncated := ExpandStations(names, candidates, e.opts.MaxPaths)
	if truncated {
		e.logger.Debug("Station expansion capped",
			zap.String("chain_hash", hash),
			zap.Int("paths", len(paths)),
			zap.Int("max_paths", e.opts.MaxPaths))
	}

	res := &StationResult{
		Suggestions: make([]domain.StationSuggestion, len(paths)),
		Truncated:   truncated,
	}
	for i, p := range paths {
		res.Suggestions[i] = domain.StationSuggestion{
			Length:    ResolvedLength(p),
			ChainHash: hash,
			Path:      p,
		}
	}
	return res, nil
}
