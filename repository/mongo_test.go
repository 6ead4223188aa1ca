package repository

import (
	"context"
	"os"
	"testing"

	"resourceshub/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testutil.Terminate()
	os.Exit(code)
}

// testDB returns a fresh database with all indexes in place.
func testDB(t *testing.T) *mongo.Database {
	t.Helper()
	db := testutil.MongoDB(t)
	require.NoError(t, SetupIndexes(context.Background(), db, zerolog.Nop()))
	return db
}
