// Package testutil provides a disposable MongoDB shared by the
// container-backed tests of several packages.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoImage = "mongo:7"

var (
	mongoOnce      sync.Once
	mongoContainer testcontainers.Container
	mongoClient    *mongo.Client
	mongoErr       error
)

func startMongo() {
	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        mongoImage,
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(90 * time.Second),
	}
	mongoContainer, mongoErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if mongoErr != nil {
		return
	}

	host, err := mongoContainer.Host(ctx)
	if err != nil {
		mongoErr = err
		return
	}
	port, err := mongoContainer.MappedPort(ctx, "27017/tcp")
	if err != nil {
		mongoErr = err
		return
	}

	uri := fmt.Sprintf("mongodb://%s:%s", host, port.Port())
	mongoClient, mongoErr = mongo.Connect(ctx, options.Client().ApplyURI(uri))
}

// MongoDB returns a fresh, uniquely named database that is dropped when the
// test ends. Tests are skipped in -short mode or without a Docker provider.
func MongoDB(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping container-based test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	mongoOnce.Do(startMongo)
	require.NoError(t, mongoErr, "starting MongoDB container")

	name := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	db := mongoClient.Database(name)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
	})
	return db
}

// Terminate stops the shared container. Call it from TestMain after m.Run.
func Terminate() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if mongoClient != nil {
		_ = mongoClient.Disconnect(ctx)
	}
	if mongoContainer != nil {
		_ = mongoContainer.Terminate(ctx)
	}
}
