// Package cache provides a Redis-backed read-through cache for blood group
// lookups. Keys are invalidated on registration so readers never observe a
// stale roster after their own write.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/Rishov2004/Blood-Donation/internal/donor/models"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donor_group_cache_hits_total",
		Help: "Number of blood group lookups served from Redis",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donor_group_cache_misses_total",
		Help: "Number of blood group lookups that fell through to storage",
	})
)

const (
	// Redis key prefix for cached group rosters
	groupKeyPrefix = "donors:group:"

	defaultTTL = 30 * time.Second
)

// GroupCache caches the donor roster per blood group.
type GroupCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Option configures a GroupCache instance.
type Option func(*GroupCache)

// WithTTL overrides the default roster expiry.
func WithTTL(ttl time.Duration) Option {
	return func(c *GroupCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// New constructs a Redis-backed group cache.
func New(client *redis.Client, opts ...Option) *GroupCache {
	c := &GroupCache{
		client: client,
		ttl:    defaultTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func groupKey(group models.BloodGroup) string {
	return groupKeyPrefix + string(group)
}

// Get returns the cached roster for a group. The second return value reports
// whether the key was present; absence is not an error.
func (c *GroupCache) Get(ctx context.Context, group models.BloodGroup) ([]models.Donor, bool, error) {
	raw, err := c.client.Get(ctx, groupKey(group)).Bytes()
	if errors.Is(err, redis.Nil) {
		cacheMisses.Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", group, err)
	}

	var donors []models.Donor
	if err := json.Unmarshal(raw, &donors); err != nil {
		// Treat undecodable entries as a miss; the next Set overwrites them.
		cacheMisses.Inc()
		return nil, false, nil
	}
	cacheHits.Inc()
	return donors, true, nil
}

// Set stores the roster for a group with the configured TTL.
func (c *GroupCache) Set(ctx context.Context, group models.BloodGroup, donors []models.Donor) error {
	raw, err := json.Marshal(donors)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", group, err)
	}
	if err := c.client.Set(ctx, groupKey(group), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", group, err)
	}
	return nil
}

// Invalidate drops the cached roster for a group. Called after a successful
// registration so the next lookup sees the new donor.
func (c *GroupCache) Invalidate(ctx context.Context, group models.BloodGroup) error {
	if err := c.client.Del(ctx, groupKey(group)).Err(); err != nil {
		return fmt.Errorf("cache invalidate %s: %w", group, err)
	}
	return nil
}
