// Package worker starts the background subscribers of the service.
package worker

import (
	"github.com/socops/ticket-analytics/internal/service"
)

// StartNotificationWorker subscribes the dataset lifecycle handlers. Call it
// before the snapshot is loaded, otherwise the load events go unobserved
// and stale cached responses survive.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
