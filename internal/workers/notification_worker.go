package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/logging"
	"junta-vecinos/backend/internal/services"
)

// NotificationWorker drains the convocation stream and hands each item to the
// mail transport. A failed delivery is logged and acknowledged anyway so one
// bad address cannot wedge the stream.
type NotificationWorker struct {
	workerID      string
	redisQueue    *common.RedisQueueService
	notifications *services.NotificationService
}

func NewNotificationWorker(workerID string, redisQueue *common.RedisQueueService, notifications *services.NotificationService) *NotificationWorker {
	return &NotificationWorker{
		workerID:      workerID,
		redisQueue:    redisQueue,
		notifications: notifications,
	}
}

// Start runs numWorkers consumers plus a stale-claim loop until the context
// is cancelled.
func (w *NotificationWorker) Start(ctx context.Context, numWorkers int) error {
	if err := w.redisQueue.CreateConsumerGroup(ctx, services.NotificationStream, services.NotificationGroup); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	logging.Info("notification workers starting", "workers", numWorkers, "stream", services.NotificationStream)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		consumerName := fmt.Sprintf("%s-consumer-%d", w.workerID, i)
		go func(consumerName string) {
			defer wg.Done()
			w.processQueue(ctx, consumerName)
		}(consumerName)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.claimStaleMessages(ctx)
	}()

	wg.Wait()
	logging.Info("notification workers stopped")
	return nil
}

func (w *NotificationWorker) processQueue(ctx context.Context, consumerName string) {
	processedCount := 0
	errorCount := 0

	for {
		select {
		case <-ctx.Done():
			logging.Info("notification consumer shutting down",
				"consumer", consumerName, "processed", processedCount, "errors", errorCount)
			return
		default:
			item, messageID, err := w.redisQueue.DequeueNotification(
				ctx, services.NotificationStream, services.NotificationGroup, consumerName, 5*time.Second)
			if err != nil {
				logging.Error("failed to dequeue notification", "consumer", consumerName, "error", err)
				errorCount++
				time.Sleep(time.Second)
				continue
			}
			if item == nil {
				continue
			}

			if err := w.notifications.Deliver(item); err != nil {
				logging.Warn("convocation email failed",
					"consumer", consumerName, "recipient", item.Recipient, "asambleaId", item.AssemblyID, "error", err)
				errorCount++
			} else {
				processedCount++
			}

			if err := w.redisQueue.AckNotification(ctx, services.NotificationStream, services.NotificationGroup, messageID); err != nil {
				logging.Error("failed to ack notification", "consumer", consumerName, "messageId", messageID, "error", err)
			}
		}
	}
}

// claimStaleMessages periodically re-claims messages whose consumer died
// mid-delivery.
func (w *NotificationWorker) claimStaleMessages(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	consumerName := fmt.Sprintf("%s-reaper", w.workerID)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if depth, err := w.redisQueue.GetQueueLength(ctx, services.NotificationStream); err == nil && depth > 0 {
				logging.Info("notification stream depth", "stream", services.NotificationStream, "length", depth)
			}

			items, ids, err := w.redisQueue.ClaimStaleNotifications(
				ctx, services.NotificationStream, services.NotificationGroup, consumerName, 5*time.Minute)
			if err != nil {
				logging.Error("failed to claim stale notifications", "error", err)
				continue
			}
			for i, item := range items {
				if err := w.notifications.Deliver(item); err != nil {
					logging.Warn("reclaimed convocation email failed", "recipient", item.Recipient, "error", err)
				}
				if err := w.redisQueue.AckNotification(ctx, services.NotificationStream, services.NotificationGroup, ids[i]); err != nil {
					logging.Error("failed to ack reclaimed notification", "messageId", ids[i], "error", err)
				}
			}
		}
	}
}
