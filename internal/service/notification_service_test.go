package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/socops/ticket-analytics/internal/events"
	"github.com/socops/ticket-analytics/internal/observability"
)

func TestNotificationServiceReactsToDatasetEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	mem := &memoryCache{entries: map[string][]byte{"ticket-analytics:old:heatmap?": []byte("{}")}}
	metrics := observability.NewMetrics()
	NewNotificationService(dispatcher, mem, metrics, zap.NewNop()).RegisterHandlers()
	ctx := context.Background()

	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventDatasetDegraded, "v2",
		events.DatasetDegradedPayload{Dataset: "aging", Reason: "no sources configured"})))
	assert.Equal(t, int64(1), metrics.Snapshot().Errors["dataset:aging|LOAD|DATASET_DEGRADED"])
	assert.Len(t, mem.entries, 1)

	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventDatasetLoaded, "v2",
		events.DatasetLoadedPayload{Source: "csv"})))
	assert.Empty(t, mem.entries)
}
