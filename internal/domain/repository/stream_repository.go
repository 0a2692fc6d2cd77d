package repository

import (
	"context"
	"time"

	"github.com/frfole/inverse-zastavky/internal/domain"
)

// StreamRepository - очередь заданий импорта поверх Redis Streams
type StreamRepository interface {
	// CreateConsumerGroup создаёт группу (и стрим); существующая группа не ошибка
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch читает до count новых сообщений, блокируясь не дольше block
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64, block time.Duration) ([]domain.StreamMessage, error)

	// ClaimStale забирает себе сообщения, которые другой consumer прочитал,
	// но не подтвердил дольше minIdle (упавший воркер)
	ClaimStale(ctx context.Context, stream, group, consumer string, minIdle time.Duration, count int64) ([]domain.StreamMessage, error)

	AckMessage(ctx context.Context, stream, group, messageID string) error

	// PublishToStream сериализует data в JSON и добавляет в стрим
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
