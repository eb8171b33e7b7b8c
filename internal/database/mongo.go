package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/event"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoConfig holds mongo connection settings
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// NewMongo connects to mongo and verifies the primary is reachable.
// recorder may be nil.
func NewMongo(ctx context.Context, cfg MongoConfig, recorder MetricsRecorder) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}
	if recorder != nil {
		opts.SetMonitor(NewCommandMonitor(recorder))
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, nil
}

// EnsureMongoIndexes creates the indexes the comment queries rely on
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("comments").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "post", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create comment indexes: %w", err)
	}
	return nil
}

// NewCommandMonitor reports every mongo command to recorder, keyed by command name and collection
func NewCommandMonitor(recorder MetricsRecorder) *event.CommandMonitor {
	var collections sync.Map // request id -> collection

	return &event.CommandMonitor{
		Started: func(_ context.Context, e *event.CommandStartedEvent) {
			if coll, ok := e.Command.Lookup(e.CommandName).StringValueOK(); ok {
				collections.Store(e.RequestID, coll)
			}
		},
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			recorder.RecordDBQuery(e.CommandName, takeCollection(&collections, e.RequestID), e.Duration, nil)
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			recorder.RecordDBQuery(e.CommandName, takeCollection(&collections, e.RequestID), e.Duration, e.Failure)
		},
	}
}

func takeCollection(m *sync.Map, requestID int64) string {
	if v, ok := m.LoadAndDelete(requestID); ok {
		return v.(string)
	}
	return ""
}
