package repository

import (
	"context"

	"github.com/frfole/inverse-zastavky/internal/domain"
)

// StatsRepository интерфейс для работы со статистикой
type StatsRepository interface {
	// GetStatistics возвращает счётчики по всем таблицам
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}
