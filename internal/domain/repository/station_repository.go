package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/frfole/inverse-zastavky/internal/domain"
)

// StationRepository определяет методы для работы с найденными станциями
type StationRepository interface {
	// GetByName возвращает станции с точным совпадением имени
	GetByName(ctx context.Context, name string) ([]domain.Station, error)

	// GetByID возвращает станцию со всеми именами
	GetByID(ctx context.Context, stopID uuid.UUID) (*domain.Station, error)

	// GetByBBox возвращает станции в прямоугольнике
	GetByBBox(ctx context.Context, bbox domain.BBox) ([]domain.Station, error)

	// Search выполняет поиск без учёта регистра и диакритики
	Search(ctx context.Context, query string) ([]domain.Station, error)

	Create(ctx context.Context, name string, point domain.Point) (*domain.Station, error)
	Move(ctx context.Context, stopID uuid.UUID, point domain.Point) (*domain.Station, error)
	AddName(ctx context.Context, stopID uuid.UUID, name string) (*domain.Station, error)

	// RemoveName удаляет имя; станция без имён удаляется целиком (возвращает nil)
	RemoveName(ctx context.Context, stopID uuid.UUID, name string) (*domain.Station, error)

	Remove(ctx context.Context, stopID uuid.UUID) error

	// All возвращает все станции (для экспорта)
	All(ctx context.Context) ([]domain.Station, error)
}
