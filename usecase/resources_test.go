package usecase

import (
	"context"
	"errors"
	"testing"

	"resourceshub/dto"
	"resourceshub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	courses []model.Course
	err     error
}

func (s stubCatalog) Courses(context.Context) ([]model.Course, error) { return s.courses, s.err }

func (s stubCatalog) Categories(context.Context) (model.Categories, error) {
	return model.Categories{MainCategories: []string{"Data Science"}}, s.err
}

func (s stubCatalog) Course(_ context.Context, id string) (model.Course, bool, error) {
	for _, c := range s.courses {
		if c.ID == id {
			return c, true, nil
		}
	}
	return model.Course{}, false, s.err
}

func sampleCourses() []model.Course {
	return []model.Course{
		{ID: "1", Title: "Machine Learning", Category: "Data Science", MainCategory: "Data Science", SubCategory: "Machine Learning"},
		{ID: "2", Title: "Statistics", Category: "Data Science", MainCategory: "Data Science", SubCategory: "Probability and Statistics"},
		{ID: "3", Title: "Public Speaking", Category: "Personal Development", MainCategory: "Personal Development"},
	}
}

func TestCourses(t *testing.T) {
	ctx := context.Background()
	svc := NewResourceService(stubCatalog{courses: sampleCourses()}, newFakeResourceRepo(), 100)

	page, err := svc.Courses(ctx, dto.CourseQuery{Category: "data science"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)

	page, err = svc.Courses(ctx, dto.CourseQuery{Category: "All", Limit: 1, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "2", page.Data[0].ID)

	page, err = svc.Search(ctx, "  ", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)
	assert.Zero(t, page.TotalPages)
	assert.NotNil(t, page.Data)

	page, err = svc.Search(ctx, "speak", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)

	course, err := svc.CatalogCourse(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Public Speaking", course.Title)
	_, err = svc.CatalogCourse(ctx, "99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCoursesCatalogError(t *testing.T) {
	svc := NewResourceService(stubCatalog{err: errors.New("boom")}, newFakeResourceRepo(), 100)
	_, err := svc.Courses(context.Background(), dto.CourseQuery{})
	assert.Error(t, err)
}

func TestStoredResources(t *testing.T) {
	ctx := context.Background()
	svc := NewResourceService(stubCatalog{}, newFakeResourceRepo(), 100)

	_, err := svc.CreateStored(ctx, &model.Resource{Title: "Go", URL: "not a url"})
	_, ok := IsValidation(err)
	assert.True(t, ok)

	_, err = svc.CreateStored(ctx, &model.Resource{Title: "Go", URL: "https://go.dev", Difficulty: "Expert"})
	_, ok = IsValidation(err)
	assert.True(t, ok)

	created, err := svc.CreateStored(ctx, &model.Resource{Title: " Go ", URL: "https://go.dev", Difficulty: "Beginner"})
	require.NoError(t, err)
	assert.Equal(t, "Go", created.Title)
	assert.NotNil(t, created.Tags)

	_, err = svc.CreateStored(ctx, &model.Resource{Title: "Go again", URL: "https://go.dev"})
	assert.ErrorIs(t, err, ErrConflict)

	got, err := svc.GetStored(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev", got.URL)

	_, err = svc.GetStored(ctx, "xyz")
	msg, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid resource id", msg)

	updated, err := svc.UpdateStored(ctx, created.ID.Hex(), &model.Resource{Title: "Go Tour", URL: "https://go.dev/tour"})
	require.NoError(t, err)
	assert.Equal(t, "Go Tour", updated.Title)

	page, err := svc.ListStored(ctx, model.ResourceFilter{}, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)

	require.NoError(t, svc.DeleteStored(ctx, created.ID.Hex()))
	assert.ErrorIs(t, svc.DeleteStored(ctx, created.ID.Hex()), ErrNotFound)
}
