package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/socops/ticket-analytics/internal/cache"
	"github.com/socops/ticket-analytics/internal/events"
	"github.com/socops/ticket-analytics/internal/observability"
)

// NotificationService reacts to dataset lifecycle events.
type NotificationService struct {
	dispatcher events.Dispatcher
	cache      cache.ResponseCache
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, responses cache.ResponseCache, metrics *observability.Metrics, logger *zap.Logger) *NotificationService {
	if responses == nil {
		responses = cache.Nop{}
	}
	return &NotificationService{
		dispatcher: dispatcher,
		cache:      responses,
		metrics:    metrics,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventDatasetLoaded, n.handleDatasetLoaded)
	n.dispatcher.Subscribe(events.EventDatasetDegraded, n.handleDatasetDegraded)
}

// handleDatasetLoaded drops responses cached for earlier dataset versions.
func (n *NotificationService) handleDatasetLoaded(ctx context.Context, event events.Event) error {
	n.logger.Info("DatasetLoaded", zap.String("version", event.Version), zap.Any("payload", event.Payload))
	purged, err := n.cache.PurgeStale(ctx, event.Version)
	if err != nil {
		return err
	}
	if purged > 0 {
		n.logger.Info("purged stale cached responses", zap.Int64("keys", purged))
	}
	return nil
}

func (n *NotificationService) handleDatasetDegraded(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.DatasetDegradedPayload)
	n.logger.Warn("DatasetDegraded",
		zap.String("version", event.Version),
		zap.String("dataset", payload.Dataset),
		zap.String("reason", payload.Reason))
	n.metrics.RecordError("dataset:"+payload.Dataset, "LOAD", "DATASET_DEGRADED")
	return nil
}
