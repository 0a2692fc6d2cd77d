package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/frfole/inverse-zastavky/internal/domain"
)

// ChainRepository определяет методы для работы с цепочками остановок
type ChainRepository interface {
	// ReplaceAll заменяет все цепочки новым набором (в одной транзакции)
	ReplaceAll(ctx context.Context, chains domain.Chains, batchSize int) error

	// GetByHash возвращает позиции цепочки по порядку, вместе с привязками
	GetByHash(ctx context.Context, hash string) ([]domain.ChainStation, error)

	// List возвращает страницу позиций, упорядоченных по (chain_hash, pos)
	List(ctx context.Context, limit, offset int) ([]domain.ChainStation, error)

	// Count возвращает количество цепочек
	Count(ctx context.Context) (int, error)

	// LinkStation привязывает позицию цепочки к станции и добавляет станции имя позиции
	LinkStation(ctx context.Context, hash string, pos int, stopID uuid.UUID) (*domain.ChainStation, error)
}
