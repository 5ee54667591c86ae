package workers

import (
	"context"

	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/logging"
	"junta-vecinos/backend/internal/services"
)

type WorkersContainer struct {
	Notifications *NotificationWorker
}

// InitWorkers starts the background consumers. With no Redis configured the
// convocation fan-out runs inline and there is nothing to start.
func InitWorkers(redQ *common.RedisQueueService, notifications *services.NotificationService) *WorkersContainer {
	if redQ == nil {
		logging.Info("redis not configured, notification worker disabled")
		return &WorkersContainer{}
	}

	worker := NewNotificationWorker("junta-mailer", redQ, notifications)
	go func() {
		if err := worker.Start(context.Background(), 3); err != nil {
			logging.Error("notification worker exited", "error", err)
		}
	}()

	return &WorkersContainer{Notifications: worker}
}
