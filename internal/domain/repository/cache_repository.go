package repository

import (
	"context"
	"time"

	"github.com/frfole/inverse-zastavky/internal/domain"
)

// CacheRepository - кеш подсказок и статистики
type CacheRepository interface {
	// Get возвращает nil, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeletePrefix удаляет все ключи с префиксом (инвалидация после импорта)
	DeletePrefix(ctx context.Context, prefix string) error

	GetStats(ctx context.Context) (*domain.Statistics, error)
	SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error
}
