package redis

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	config "github.com/commercelab/microshop/configs"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// NewClient creates a Redis client. Unlike a fatal ping-at-startup, an
// unreachable backend is tolerated: the cache layer treats errors as misses
// and the caller is expected to run Monitor so degradation is visible in the
// logs. Losing the cache must never take the service down.
func NewClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolTimeout:  cfg.PoolTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	})
}

const (
	probeBaseDelay = time.Second
	probeMaxDelay  = 30 * time.Second
	probeInterval  = 15 * time.Second
)

// Monitor pings the backend until ctx is cancelled, logging transitions
// between available and degraded. While degraded, probes back off
// exponentially with jitter; while available, a slow steady interval is used.
func Monitor(ctx context.Context, client *redis.Client, logger *logrus.Logger) {
	available := true
	delay := probeBaseDelay
	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()

		switch {
		case err != nil && available:
			available = false
			delay = probeBaseDelay
			logger.WithError(err).Warn("cache backend unreachable, serving from record store only")
		case err == nil && !available:
			available = true
			logger.Info("cache backend reachable again")
		}

		var wait time.Duration
		if available {
			wait = probeInterval
		} else {
			wait = jitter(delay)
			delay *= 2
			if delay > probeMaxDelay {
				delay = probeMaxDelay
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// jitter spreads d over [d/2, d) so degraded replicas do not probe in step.
func jitter(d time.Duration) time.Duration {
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(half)))
}
