package repository

import (
	"context"

	"github.com/frfole/inverse-zastavky/internal/domain"
)

// BaseCityRepository определяет методы для работы с базовым слоем населённых пунктов
type BaseCityRepository interface {
	// GetByName возвращает все города с точным совпадением имени
	GetByName(ctx context.Context, name string) ([]domain.BaseCity, error)

	// Search ищет города по подстроке (без учёта диакритики)
	Search(ctx context.Context, query string) ([]domain.BaseCity, error)

	ReplaceAll(ctx context.Context, cities []domain.BaseCity, batchSize int) error
}

// BaseStationRepository определяет методы для работы с базовым слоем остановок
type BaseStationRepository interface {
	GetByBBox(ctx context.Context, bbox domain.BBox) ([]domain.BaseStation, error)
	ReplaceAll(ctx context.Context, stations []domain.BaseStation, batchSize int) error
}
