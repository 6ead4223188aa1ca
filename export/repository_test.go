package export_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"resourceshub/catalog"
	"resourceshub/export"
	"resourceshub/logger"
	"resourceshub/model"
	"resourceshub/repository"
	"resourceshub/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testutil.Terminate()
	os.Exit(code)
}

func TestExportFromResourceRepo(t *testing.T) {
	db := testutil.MongoDB(t)
	ctx := context.Background()
	require.NoError(t, repository.SetupIndexes(ctx, db, logger.Nop()))

	repo := repository.NewResourceRepo(db)
	_, err := repo.InsertBatch(ctx, []model.Resource{
		{Title: "Zig Systems", URL: "https://example.com/zig", Difficulty: "Advanced"},
		{Title: "Algorithms", URL: "https://example.com/algo", Difficulty: "Beginner", Tags: []string{"graphs"}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	rows, err := export.WriteResourcesCSV(ctx, &buf, repo)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	courses, err := catalog.ParseCourses(&buf)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Algorithms", courses[0].Title, "rows are ordered by title")
	assert.Equal(t, []string{"graphs"}, courses[0].Tags)
	assert.Equal(t, "Zig Systems", courses[1].Title)
	assert.Equal(t, "Advanced", courses[1].Difficulty)
}
