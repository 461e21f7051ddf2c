package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pawsense/pawsense-backend/internal/logger"
)

// RunLock is a best-effort single-flight guard against concurrent analysis
// runs for the same (owner, pet, day). It only protects in-flight overlap:
// the lock is released when the run finishes, so sequential same-day reruns
// still go through and hit the risk-assessment upsert.
type RunLock interface {
	Acquire(ctx context.Context, ownerID, petID uuid.UUID, day time.Time) (release func(), acquired bool, err error)
}

type redisRunLock struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedisRunLock connects to REDIS_ADDR. Callers treat a nil RunLock as
// "no guard configured".
func NewRedisRunLock(log *logger.Logger) (RunLock, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisRunLock{
		log: log.With("service", "RedisRunLock"),
		rdb: rdb,
		// Generous upper bound on a run; the deferred release normally
		// frees the key much earlier.
		ttl: 2 * time.Minute,
	}, nil
}

func (l *redisRunLock) Acquire(ctx context.Context, ownerID, petID uuid.UUID, day time.Time) (func(), bool, error) {
	key := fmt.Sprintf("analysis_run:%s:%s:%s", ownerID.String(), petID.String(), day.UTC().Format("2006-01-02"))

	ok, err := l.rdb.SetNX(ctx, key, "1", l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.rdb.Del(releaseCtx, key).Err(); err != nil {
			l.log.Warn("Failed to release run lock", "key", key, "error", err)
		}
	}
	return release, true, nil
}
