package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/event"
)

func rawCommand(t *testing.T, doc bson.D) bson.Raw {
	t.Helper()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	return raw
}

func TestCommandMonitor(t *testing.T) {
	recorder := &mockMetricsRecorder{}
	monitor := NewCommandMonitor(recorder)
	ctx := context.Background()

	monitor.Started(ctx, &event.CommandStartedEvent{
		Command:     rawCommand(t, bson.D{{Key: "find", Value: "comments"}}),
		CommandName: "find",
		RequestID:   1,
	})
	monitor.Started(ctx, &event.CommandStartedEvent{
		Command:     rawCommand(t, bson.D{{Key: "update", Value: "posts"}}),
		CommandName: "update",
		RequestID:   2,
	})

	monitor.Succeeded(ctx, &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "find", RequestID: 1, Duration: time.Millisecond},
	})
	monitor.Failed(ctx, &event.CommandFailedEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "update", RequestID: 2, Duration: time.Millisecond},
		Failure:              errors.New("write conflict"),
	})
	// finished without a matching start
	monitor.Succeeded(ctx, &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "ping", RequestID: 3},
	})

	require.Len(t, recorder.queries, 3)
	assert.Equal(t, queryRecord{operation: "find", table: "comments"}, recorder.queries[0])
	assert.Equal(t, "update", recorder.queries[1].operation)
	assert.Equal(t, "posts", recorder.queries[1].table)
	assert.EqualError(t, recorder.queries[1].err, "write conflict")
	assert.Equal(t, queryRecord{operation: "ping", table: ""}, recorder.queries[2])
}
