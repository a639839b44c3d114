package monitoring

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

const counterPrefix = "colmena:events:"

// Service provides lightweight event accounting backed by Redis counters.
type Service struct {
	rdb *redis.Client
}

// NewService creates a new monitoring service. A nil Redis client degrades
// to log-only recording.
func NewService(rdb *redis.Client) *Service {
	return &Service{rdb: rdb}
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	nuts.L.Infof("[Monitoring] Event %s recorded with labels: %v", eventName, labels)

	if s.rdb == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.rdb.Incr(ctx, counterPrefix+eventName).Err(); err != nil {
		nuts.L.Warnf("[Monitoring] Failed to record event %s: %v", eventName, err)
	}
}

// GetEventCount returns the total count recorded for an event type.
func (s *Service) GetEventCount(ctx context.Context, eventName string) (int64, error) {
	if s.rdb == nil {
		return 0, nil
	}
	count, err := s.rdb.Get(ctx, counterPrefix+eventName).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}
