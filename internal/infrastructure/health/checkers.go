package health

import (
	"context"
	"fmt"

	"github.com/commercelab/microshop/internal/core/ports"
	"github.com/go-redis/redis/v8"
)

// redisHealthChecker wraps the redis client for health checks.
type redisHealthChecker struct{ client *redis.Client }

func (r *redisHealthChecker) Name() string                    { return "cache" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// brokerHealthChecker reports the publisher's connection state.
type brokerHealthChecker struct{ publisher ports.EventPublisher }

func (b *brokerHealthChecker) Name() string { return "broker" }

func (b *brokerHealthChecker) Check(ctx context.Context) error {
	if st := b.publisher.State(); st != ports.StateReady {
		return fmt.Errorf("broker connection is %s", st)
	}
	return nil
}

// NewRedisHealthChecker creates a health checker for the cache backend.
func NewRedisHealthChecker(client *redis.Client) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}

// NewBrokerHealthChecker creates a health checker for the event broker.
func NewBrokerHealthChecker(publisher ports.EventPublisher) ports.HealthChecker {
	return &brokerHealthChecker{publisher: publisher}
}
