package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

const (
	// Redis keys
	categoriesKey     = "categories:all"
	categoryKeyPrefix = "category:"
)

// CategoryCache is a read-through Redis cache in front of a category store.
// Redis errors are logged and the store is used instead.
type CategoryCache struct {
	next  domain.CategoryRepository
	redis *redis.Client
	ttl   time.Duration
	log   *slog.Logger
}

// NewCategoryCache wraps next with a Redis cache whose entries live for ttl
func NewCategoryCache(next domain.CategoryRepository, client *redis.Client, ttl time.Duration, log *slog.Logger) *CategoryCache {
	return &CategoryCache{
		next:  next,
		redis: client,
		ttl:   ttl,
		log:   log.With(slog.String("component", "category_cache")),
	}
}

// List returns all categories, from Redis when cached
func (c *CategoryCache) List(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	hit, err := c.get(ctx, categoriesKey, &categories)
	if err != nil {
		c.log.Warn("cache read failed", slog.String("key", categoriesKey), slog.Any("error", err))
	}
	if hit {
		return categories, nil
	}

	categories, err = c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	// An empty list is a 404 upstream; don't pin it until the seed runs.
	if len(categories) > 0 {
		c.set(ctx, categoriesKey, categories)
	}
	return categories, nil
}

// GetByID returns one category, from Redis when cached
func (c *CategoryCache) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	key := categoryKeyPrefix + strconv.Itoa(id)

	var category domain.Category
	hit, err := c.get(ctx, key, &category)
	if err != nil {
		c.log.Warn("cache read failed", slog.String("key", key), slog.Any("error", err))
	}
	if hit {
		return &category, nil
	}

	found, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, found)
	return found, nil
}

func (c *CategoryCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (c *CategoryCache) set(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache encode failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}
