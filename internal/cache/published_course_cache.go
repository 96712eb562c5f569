// Package cache decorates course storage with a Redis read-through cache
// for the public catalogue.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/learnhub/backend/internal/models"
	"github.com/learnhub/backend/internal/services"
	"go.uber.org/zap"
)

// PublishedCoursesKey is the Redis key holding the cached catalogue
const PublishedCoursesKey = "learnhub:courses:published"

// publishedCourseCache wraps a CourseStore and caches FindAllPublished.
// Any write to a course drops the cached catalogue.
// Redis failures are logged and the call falls through to the store.
type publishedCourseCache struct {
	services.CourseStore
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewPublishedCourseCache creates a caching CourseStore
func NewPublishedCourseCache(store services.CourseStore, client *redis.Client, ttl time.Duration, logger *zap.Logger) *publishedCourseCache {
	return &publishedCourseCache{
		CourseStore: store,
		client:      client,
		ttl:         ttl,
		logger:      logger,
	}
}

// FindAllPublished returns the cached catalogue, loading it from the store on a miss
func (c *publishedCourseCache) FindAllPublished(ctx context.Context) ([]models.Course, error) {
	raw, err := c.client.Get(ctx, PublishedCoursesKey).Bytes()
	switch {
	case err == nil:
		var courses []models.Course
		if err := json.Unmarshal(raw, &courses); err == nil {
			return courses, nil
		}
		c.logger.Warn("discarding undecodable catalogue cache entry", zap.Error(err))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("catalogue cache read failed", zap.Error(err))
	}

	courses, err := c.CourseStore.FindAllPublished(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(courses)
	if err != nil {
		c.logger.Warn("failed to encode catalogue for cache", zap.Error(err))
		return courses, nil
	}
	if err := c.client.Set(ctx, PublishedCoursesKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("catalogue cache write failed", zap.Error(err))
	}

	return courses, nil
}

// Save saves the course and invalidates the catalogue
func (c *publishedCourseCache) Save(ctx context.Context, course *models.Course) error {
	if err := c.CourseStore.Save(ctx, course); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// IncrementEnrolledCount increments the counter and invalidates the catalogue
func (c *publishedCourseCache) IncrementEnrolledCount(ctx context.Context, id string) error {
	if err := c.CourseStore.IncrementEnrolledCount(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete deletes the course and invalidates the catalogue
func (c *publishedCourseCache) Delete(ctx context.Context, id string) error {
	if err := c.CourseStore.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *publishedCourseCache) invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, PublishedCoursesKey).Err(); err != nil {
		c.logger.Warn("catalogue cache invalidation failed", zap.Error(err))
	}
}
