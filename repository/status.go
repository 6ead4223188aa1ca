package repository

import (
	"context"
	"fmt"
	"time"

	"resourceshub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultPingTimeout = 2 * time.Second

// DBStatus describes the database as seen by the upload diagnostics endpoint.
type DBStatus struct {
	Connected     bool     `json:"connected"`
	ReadyState    string   `json:"readyState"`
	DatabaseName  string   `json:"databaseName"`
	Collections   []string `json:"collections"`
	ResourceCount int64    `json:"resourceCount"`
}

// Status pings the primary and lists collections. Connected is false and the
// error set when the server cannot be reached.
func Status(ctx context.Context, db *mongo.Database) (DBStatus, error) {
	status := DBStatus{DatabaseName: db.Name(), ReadyState: "disconnected", Collections: []string{}}

	if err := db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return status, err
	}
	status.Connected = true
	status.ReadyState = "connected"

	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return status, fmt.Errorf("failed to list collections: %w", err)
	}
	status.Collections = names

	count, err := db.Collection(ResourcesCollection).EstimatedDocumentCount(ctx)
	if err != nil {
		return status, fmt.Errorf("failed to count resources: %w", err)
	}
	status.ResourceCount = count
	return status, nil
}

// Pinger adapts a database handle to the readiness checks used by the
// middleware and health endpoint.
type Pinger struct {
	DB *mongo.Database
}

func (p Pinger) Ping(ctx context.Context) error {
	if p.DB == nil {
		return fmt.Errorf("database not configured")
	}
	return utils.PingMongo(ctx, p.DB.Client(), defaultPingTimeout)
}
