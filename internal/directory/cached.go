package directory

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 5 * time.Minute

// Cached is a read-through caching decorator over a Directory. Course and
// faculty lookups are cached; a cache failure falls back to the inner lookup.
type Cached struct {
	inner  Directory
	client *redis.Client
	ttl    time.Duration
}

// NewCached wraps a Directory with a Redis read-through cache.
func NewCached(inner Directory, client *redis.Client, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cached{inner: inner, client: client, ttl: ttl}
}

func (c *Cached) Courses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if c.getCached(ctx, "directory:courses", &courses) {
		return courses, nil
	}

	courses, err := c.inner.Courses(ctx)
	if err != nil {
		return nil, err
	}
	c.setCached(ctx, "directory:courses", courses)
	return courses, nil
}

func (c *Cached) Course(ctx context.Context, id string) (Course, error) {
	key := "directory:course:" + id
	var course Course
	if c.getCached(ctx, key, &course) {
		return course, nil
	}

	course, err := c.inner.Course(ctx, id)
	if err != nil {
		return Course{}, err
	}
	c.setCached(ctx, key, course)
	return course, nil
}

func (c *Cached) Faculty(ctx context.Context, id string) (Faculty, error) {
	key := "directory:faculty:" + id
	var faculty Faculty
	if c.getCached(ctx, key, &faculty) {
		return faculty, nil
	}

	faculty, err := c.inner.Faculty(ctx, id)
	if err != nil {
		return Faculty{}, err
	}
	c.setCached(ctx, key, faculty)
	return faculty, nil
}

func (c *Cached) getCached(ctx context.Context, key string, out any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("directory cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("directory cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cached) setCached(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("directory cache write failed", "key", key, "error", err)
	}
}
