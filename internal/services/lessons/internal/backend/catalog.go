package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

// courseSource is the uncached course lookup, usually a *Client.
type courseSource interface {
	Courses(ctx context.Context) ([]model.Course, error)
	Course(ctx context.Context, id int64) (model.Course, error)
}

// CourseCatalog caches courses by id. Listing always hits the source and
// refreshes the cache.
type CourseCatalog struct {
	src   courseSource
	cache *ristretto.Cache[int64, model.Course]
	ttl   time.Duration
}

func NewCourseCatalog(src courseSource, maxKeys, maxCost int64, ttl time.Duration) *CourseCatalog {
	c, err := ristretto.NewCache(&ristretto.Config[int64, model.Course]{
		NumCounters: maxKeys * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create course catalog cache: %v", err))
	}

	return &CourseCatalog{src: src, cache: c, ttl: ttl}
}

func (c *CourseCatalog) Courses(ctx context.Context) ([]model.Course, error) {
	courses, err := c.src.Courses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	for _, course := range courses {
		c.cache.SetWithTTL(course.ID, course, 1, c.ttl)
	}
	c.cache.Wait()

	return courses, nil
}

func (c *CourseCatalog) Course(ctx context.Context, id int64) (model.Course, error) {
	if course, ok := c.cache.Get(id); ok {
		return course, nil
	}

	course, err := c.src.Course(ctx, id)
	if err != nil {
		return model.Course{}, fmt.Errorf("get course %d: %w", id, err)
	}

	c.cache.SetWithTTL(id, course, 1, c.ttl)
	c.cache.Wait()
	return course, nil
}

func (c *CourseCatalog) Close() {
	c.cache.Close()
}
