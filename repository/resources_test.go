package repository

import (
	"context"
	"math"
	"testing"

	"resourceshub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResourceInsertBatchCountsDuplicates(t *testing.T) {
	repo := NewResourceRepo(testDB(t))
	ctx := context.Background()

	first, err := repo.InsertBatch(ctx, []model.Resource{
		{Title: "Go", URL: "https://example.com/go"},
		{Title: "Rust", URL: "https://example.com/rust"},
	})
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Inserted: 2}, first)

	second, err := repo.InsertBatch(ctx, []model.Resource{
		{Title: "Go again", URL: "https://example.com/go"},
		{Title: "Zig", URL: "https://example.com/zig"},
	})
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Inserted: 1, Duplicates: 1}, second)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestResourceListFilters(t *testing.T) {
	repo := NewResourceRepo(testDB(t))
	ctx := context.Background()

	_, err := repo.InsertBatch(ctx, []model.Resource{
		{Title: "Intro to Go", URL: "u1", Category: "Programming", Provider: "Coursera", Difficulty: "Beginner", Tags: []string{"go"}},
		{Title: "Advanced Go", URL: "u2", Category: "Programming", Provider: "edX", Difficulty: "Advanced", Tags: []string{"go"}},
		{Title: "Watercolour", URL: "u3", Category: "Arts", Description: "Paint (a.k.a. colour) basics", Difficulty: "Beginner"},
	})
	require.NoError(t, err)

	all, total, err := repo.List(ctx, model.ResourceFilter{}, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 2)
	assert.Equal(t, "Advanced Go", all[0].Title)

	got, total, err := repo.List(ctx, model.ResourceFilter{Category: "programming", Difficulty: "Beginner"}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Intro to Go", got[0].Title)

	got, _, err = repo.List(ctx, model.ResourceFilter{Query: "(a.k.a."}, 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Watercolour", got[0].Title)

	got, _, err = repo.List(ctx, model.ResourceFilter{Tag: "go", Provider: "edX"}, 1, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, total, err = repo.List(ctx, model.ResourceFilter{}, math.MaxInt, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Empty(t, got)
}

func TestResourceCRUD(t *testing.T) {
	repo := NewResourceRepo(testDB(t))
	ctx := context.Background()

	res := &model.Resource{Title: "Databases", URL: "https://example.com/db"}
	require.NoError(t, repo.Create(ctx, res))
	require.False(t, res.ID.IsZero())

	err := repo.Create(ctx, &model.Resource{Title: "Copy", URL: "https://example.com/db"})
	assert.ErrorIs(t, err, ErrDuplicate)

	res.Title = "Databases 101"
	updated, err := repo.Update(ctx, res.ID, res)
	require.NoError(t, err)
	assert.Equal(t, "Databases 101", updated.Title)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	require.NoError(t, repo.Delete(ctx, res.ID))
	_, err = repo.FindByID(ctx, res.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, primitive.NewObjectID()), ErrNotFound)
}

func TestStatus(t *testing.T) {
	db := testDB(t)
	status, err := Status(context.Background(), db)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, db.Name(), status.DatabaseName)
	assert.Contains(t, status.Collections, ResourcesCollection)
	require.NoError(t, Pinger{DB: db}.Ping(context.Background()))
}
