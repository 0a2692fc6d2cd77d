package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/frfole/inverse-zastavky/internal/domain"
	"github.com/frfole/inverse-zastavky/internal/domain/repository"
	"github.com/frfole/inverse-zastavky/internal/suggest"
	"github.com/frfole/inverse-zastavky/internal/usecase/dto"
)

// SuggestCachePrefix prefixes every cached city-level reconstruction.
const SuggestCachePrefix = "suggest:cities:"

// Suggester reconstructs chains; implemented by *suggest.Engine.
type Suggester interface {
	SuggestCities(ctx context.Context, hash string) (*suggest.CityResult, error)
	ChainOptions(ctx context.Context, hash string) (*suggest.StationResult, error)
}

// SuggestUseCase ранжирует реконструкции цепочек
type SuggestUseCase struct {
	engine    Suggester
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewSuggestUseCase(
	engine Suggester,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *SuggestUseCase {
	return &SuggestUseCase{
		engine:    engine,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// SuggestCities возвращает варианты по городам; базовый слой меняется только
// импортом, поэтому результат кешируется до инвалидации или TTL
func (uc *SuggestUseCase) SuggestCities(ctx context.Context, hash string, limit int) (*dto.CitySuggestionsResponse, error) {
	key := SuggestCachePrefix + hash

	if data, err := uc.cacheRepo.Get(ctx, key); err != nil {
		uc.logger.Warn("Failed to get suggestions from cache", zap.Error(err))
	} else if data != nil {
		var cached dto.CitySuggestionsResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			uc.logger.Debug("City suggestions fetched from cache", zap.String("chain_hash", hash))
			return limitCities(&cached, limit), nil
		}
		uc.logger.Warn("Dropping malformed cached suggestions", zap.String("key", key))
	}

	res, err := uc.engine.SuggestCities(ctx, hash)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(res.Suggestions, func(i, j int) bool {
		return res.Suggestions[i].Length < res.Suggestions[j].Length
	})
	resp := &dto.CitySuggestionsResponse{
		Suggestions: res.Suggestions,
		Total:       len(res.Suggestions),
		Truncated:   res.Truncated,
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache suggestions", zap.Error(err))
		}
	}

	return limitCities(resp, limit), nil
}

// SuggestStations возвращает варианты по найденным станциям (без кеша:
// реестр станций редактируется постоянно)
func (uc *SuggestUseCase) SuggestStations(ctx context.Context, hash string, limit int) (*dto.StationSuggestionsResponse, error) {
	res, err := uc.engine.ChainOptions(ctx, hash)
	if err != nil {
		return nil, err
	}

	suggestions := res.Suggestions
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Length < suggestions[j].Length
	})

	resp := &dto.StationSuggestionsResponse{
		Suggestions: suggestions,
		Total:       len(suggestions),
		Truncated:   res.Truncated,
	}
	if limit > 0 && limit < len(suggestions) {
		resp.Suggestions = suggestions[:limit]
	}
	return resp, nil
}

// InvalidateCities сбрасывает кеш после импорта базового слоя или цепочек
func (uc *SuggestUseCase) InvalidateCities(ctx context.Context) error {
	return uc.cacheRepo.DeletePrefix(ctx, SuggestCachePrefix)
}

func limitCities(resp *dto.CitySuggestionsResponse, limit int) *dto.CitySuggestionsResponse {
	if limit <= 0 || limit >= len(resp.Suggestions) {
		return resp
	}
	out := *resp
	out.Suggestions = append([]domain.CitySuggestion(nil), resp.Suggestions[:limit]...)
	return &out
}
