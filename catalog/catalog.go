// Package catalog serves the course listing parsed from the catalog CSV,
// cached in memory for a fixed TTL.
package catalog

import (
	"context"
	"regexp"
	"sort"
	"sync"
	"time"

	"resourceshub/metrics"
	"resourceshub/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Sub-categories are only listed when both names are plain English words and
// no longer than "Physical Science and Engineering".
const maxCategoryNameLen = len("Physical Science and Engineering")

var englishCategory = regexp.MustCompile(`^[A-Za-z\s&-]+$`)

type Catalog struct {
	source Source
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger

	group singleflight.Group

	mu         sync.RWMutex
	courses    []model.Course
	byID       map[string]int
	categories model.Categories
	loadedAt   time.Time
}

func New(source Source, ttl time.Duration, log zerolog.Logger) *Catalog {
	return &Catalog{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		log:    log.With().Str("component", "catalog").Logger(),
	}
}

// Courses returns the cached course list, reloading it once the TTL has
// elapsed. The returned slice is shared and must not be modified.
func (c *Catalog) Courses(ctx context.Context) ([]model.Course, error) {
	if courses, ok := c.fresh(); ok {
		metrics.TrackCacheLookup("catalog", true)
		return courses, nil
	}
	metrics.TrackCacheLookup("catalog", false)

	if err := c.reload(ctx); err != nil {
		c.mu.RLock()
		stale := c.courses
		c.mu.RUnlock()
		if stale != nil {
			c.log.Warn().Err(err).Msg("catalog reload failed, serving stale data")
			return stale, nil
		}
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.courses, nil
}

// Categories returns main categories and their sub-categories.
func (c *Catalog) Categories(ctx context.Context) (model.Categories, error) {
	if _, err := c.Courses(ctx); err != nil {
		return model.Categories{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.categories, nil
}

// Course looks a course up by its catalog id.
func (c *Catalog) Course(ctx context.Context, id string) (model.Course, bool, error) {
	if _, err := c.Courses(ctx); err != nil {
		return model.Course{}, false, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byID[id]
	if !ok {
		return model.Course{}, false, nil
	}
	return c.courses[idx], true, nil
}

// Invalidate forces the next read to reload from the source.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.loadedAt = time.Time{}
	c.mu.Unlock()
}

func (c *Catalog) fresh() ([]model.Course, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.courses == nil || c.loadedAt.IsZero() {
		return nil, false
	}
	if c.now().Sub(c.loadedAt) >= c.ttl {
		return nil, false
	}
	return c.courses, true
}

func (c *Catalog) reload(ctx context.Context) error {
	_, err, _ := c.group.Do("load", func() (any, error) {
		if _, ok := c.fresh(); ok {
			return nil, nil
		}
		start := c.now()
		courses, err := c.source.Load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		byID := make(map[string]int, len(courses))
		for i, course := range courses {
			byID[course.ID] = i
		}
		categories := BuildCategories(courses)

		c.mu.Lock()
		c.courses = courses
		c.byID = byID
		c.categories = categories
		c.loadedAt = c.now()
		c.mu.Unlock()

		c.log.Info().
			Int("courses", len(courses)).
			Int("main_categories", len(categories.MainCategories)).
			Dur("took", c.now().Sub(start)).
			Msg("catalog loaded")
		return nil, nil
	})
	return err
}

// BuildCategories derives the category tree from the courses.
func BuildCategories(courses []model.Course) model.Categories {
	tree := make(map[string]map[string]struct{})
	for _, course := range courses {
		main := course.Category
		if main == "" {
			continue
		}
		subs, ok := tree[main]
		if !ok {
			subs = make(map[string]struct{})
			tree[main] = subs
		}
		if isListableCategory(main) && isListableCategory(course.SubCategory) {
			subs[course.SubCategory] = struct{}{}
		}
	}

	out := model.Categories{
		MainCategories: make([]string, 0, len(tree)),
		SubCategories:  make(map[string][]string, len(tree)),
	}
	for main, subs := range tree {
		out.MainCategories = append(out.MainCategories, main)
		list := make([]string, 0, len(subs))
		for sub := range subs {
			list = append(list, sub)
		}
		sort.Strings(list)
		out.SubCategories[main] = list
	}
	sort.Strings(out.MainCategories)
	return out
}

func isListableCategory(name string) bool {
	return name != "" && len(name) <= maxCategoryNameLen && englishCategory.MatchString(name)
}
