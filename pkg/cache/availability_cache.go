package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/semInDev/beour-be-sub001/internal/timeslot"
	"gorm.io/datatypes"
)

const availabilityTTL = 5 * time.Minute

// AvailabilityCache is a best-effort cache-aside store for declared
// availability. Failures degrade to a miss; writes that fail are only
// logged. It backs the read endpoints, never the booking transaction.
type AvailabilityCache struct {
	client *redis.Client
}

func NewAvailabilityCache(addr string) *AvailabilityCache {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &AvailabilityCache{client: client}
}

func (c *AvailabilityCache) Get(ctx context.Context, spaceID uint, date datatypes.Date) ([]timeslot.Range, bool) {
	data, err := c.client.Get(ctx, availabilityKey(spaceID, date)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[Cache] get: %v", err)
		}
		return nil, false
	}

	var ranges []timeslot.Range
	if err := json.Unmarshal(data, &ranges); err != nil {
		log.Printf("[Cache] decode: %v", err)
		return nil, false
	}
	return ranges, true
}

func (c *AvailabilityCache) Set(ctx context.Context, spaceID uint, date datatypes.Date, ranges []timeslot.Range) {
	data, err := json.Marshal(ranges)
	if err != nil {
		log.Printf("[Cache] encode: %v", err)
		return
	}
	if err := c.client.Set(ctx, availabilityKey(spaceID, date), data, availabilityTTL).Err(); err != nil {
		log.Printf("[Cache] set: %v", err)
	}
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, spaceID uint, date datatypes.Date) {
	if err := c.client.Del(ctx, availabilityKey(spaceID, date)).Err(); err != nil {
		log.Printf("[Cache] invalidate: %v", err)
	}
}

func (c *AvailabilityCache) Close() error {
	return c.client.Close()
}

func availabilityKey(spaceID uint, date datatypes.Date) string {
	return fmt.Sprintf("availability:%d:%s", spaceID, time.Time(date).Format("2006-01-02"))
}
