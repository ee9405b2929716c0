package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LaunchLock is a per-campaign in-flight guard against duplicate launch
// submissions. The TTL guarantees a crashed attempt cannot wedge the
// campaign forever.
type LaunchLock struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLaunchLock(rdb *redis.Client) *LaunchLock {
	return &LaunchLock{rdb: rdb, ttl: 10 * time.Minute}
}

func launchKey(campaignID uuid.UUID) string {
	return fmt.Sprintf("launch:inflight:%s", campaignID)
}

// Acquire returns false when a launch for this campaign is already running.
func (l *LaunchLock) Acquire(ctx context.Context, campaignID uuid.UUID) (bool, error) {
	return l.rdb.SetNX(ctx, launchKey(campaignID), "1", l.ttl).Result()
}

func (l *LaunchLock) Release(ctx context.Context, campaignID uuid.UUID) {
	l.rdb.Del(ctx, launchKey(campaignID))
}
