package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"junta-vecinos/backend/internal/common"
	"junta-vecinos/backend/internal/db/repositories"
	"junta-vecinos/backend/internal/logging"
	"junta-vecinos/backend/internal/metrics"
	gormmodels "junta-vecinos/backend/internal/models/gorm"
)

const (
	// NotificationStream is the Redis Stream carrying convocation emails.
	NotificationStream = "junta:notifications"
	// NotificationGroup is the consumer group draining the stream.
	NotificationGroup = "junta-mailers"

	memberEmailsCacheKey = "vecinos:emails"
	memberEmailsCacheTTL = 5 * time.Minute

	// directSendConcurrency bounds the synchronous fan-out used when no
	// Redis queue is configured.
	directSendConcurrency = 5
)

// NotificationService fans convocation emails out to every registered vecino.
// Delivery is best effort: failures are logged and counted, never surfaced to
// the operation that triggered them.
type NotificationService struct {
	members *repositories.MemberRepository
	cache   common.CacheInterface
	queue   *common.RedisQueueService
	mailer  common.Mailer
	metrics *metrics.MetricsRegistry
}

func NewNotificationService(
	members *repositories.MemberRepository,
	cache common.CacheInterface,
	queue *common.RedisQueueService,
	mailer common.Mailer,
	registry *metrics.MetricsRegistry,
) *NotificationService {
	return &NotificationService{
		members: members,
		cache:   cache,
		queue:   queue,
		mailer:  mailer,
		metrics: registry,
	}
}

// NotifyAssemblyCreated emails every registered vecino about a newly scheduled
// asamblea. Safe to call in a goroutine after the creating transaction has
// committed.
func (s *NotificationService) NotifyAssemblyCreated(ctx context.Context, assembly *gormmodels.Assembly) {
	emails, err := s.recipientEmails(ctx)
	if err != nil {
		logging.Error("could not resolve convocation recipients", "asambleaId", assembly.ID, "error", err)
		return
	}
	if len(emails) == 0 {
		logging.Info("no vecinos registered, skipping convocation", "asambleaId", assembly.ID)
		return
	}

	subject := fmt.Sprintf("Convocatoria: %s", assembly.Title)
	htmlBody := convocationHTML(assembly)

	if s.queue != nil {
		items := make([]*common.NotificationQueueItem, 0, len(emails))
		for _, email := range emails {
			items = append(items, &common.NotificationQueueItem{
				Recipient:  email,
				Subject:    subject,
				HTMLBody:   htmlBody,
				AssemblyID: assembly.ID,
			})
		}
		if err := s.queue.EnqueueNotificationBatch(ctx, NotificationStream, items); err != nil {
			logging.Error("failed to enqueue convocation batch, falling back to direct send",
				"asambleaId", assembly.ID, "recipients", len(items), "error", err)
			s.sendDirect(ctx, emails, subject, htmlBody)
			return
		}
		logging.Info("convocation batch enqueued", "asambleaId", assembly.ID, "recipients", len(items))
		return
	}

	s.sendDirect(ctx, emails, subject, htmlBody)
}

// Deliver sends one queued convocation email. Used by the queue worker.
func (s *NotificationService) Deliver(item *common.NotificationQueueItem) error {
	_, err := s.mailer.Send(item.Recipient, item.Subject, item.HTMLBody, item.TextBody)
	if err != nil {
		s.metrics.NotificationsSentTotal.WithLabelValues("failure").Inc()
		return err
	}
	s.metrics.NotificationsSentTotal.WithLabelValues("success").Inc()
	return nil
}

// InvalidateRecipients drops the cached recipient list. Called whenever a
// vecino is created, updated or deleted.
func (s *NotificationService) InvalidateRecipients() {
	if s.cache != nil {
		s.cache.Delete(memberEmailsCacheKey)
	}
}

func (s *NotificationService) recipientEmails(ctx context.Context) ([]string, error) {
	if s.cache == nil {
		return s.members.ListEmails(ctx)
	}
	value, err := s.cache.GetOrSet(memberEmailsCacheKey, memberEmailsCacheTTL, func() (any, error) {
		return s.members.ListEmails(ctx)
	})
	if err != nil {
		return nil, err
	}
	emails, ok := value.([]string)
	if !ok {
		return s.members.ListEmails(ctx)
	}
	return emails, nil
}

func (s *NotificationService) sendDirect(ctx context.Context, emails []string, subject, htmlBody string) {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(directSendConcurrency)

	for _, email := range emails {
		email := email
		g.Go(func() error {
			_, err := s.mailer.Send(email, subject, htmlBody, "")
			if err != nil {
				s.metrics.NotificationsSentTotal.WithLabelValues("failure").Inc()
				logging.Warn("convocation email failed", "recipient", email, "error", err)
				return nil
			}
			s.metrics.NotificationsSentTotal.WithLabelValues("success").Inc()
			return nil
		})
	}
	_ = g.Wait()
	logging.Info("convocation fan-out finished", "recipients", len(emails))
}

func convocationHTML(assembly *gormmodels.Assembly) string {
	var b strings.Builder
	b.WriteString("<h2>Convocatoria a Asamblea</h2>")
	b.WriteString(fmt.Sprintf("<p>Estimado/a vecino/a:</p><p>La junta de vecinos le convoca a la asamblea <strong>%s</strong>.</p>", assembly.Title))
	b.WriteString("<ul>")
	b.WriteString(fmt.Sprintf("<li><strong>Fecha y hora:</strong> %s</li>", assembly.ScheduledAt.Format("02-01-2006 15:04")))
	if assembly.Location != nil && *assembly.Location != "" {
		b.WriteString(fmt.Sprintf("<li><strong>Lugar:</strong> %s</li>", *assembly.Location))
	}
	if assembly.Agenda != nil && *assembly.Agenda != "" {
		b.WriteString(fmt.Sprintf("<li><strong>Tabla:</strong> %s</li>", *assembly.Agenda))
	}
	b.WriteString("</ul>")
	b.WriteString("<p>Su participación es importante para la comunidad.</p>")
	b.WriteString("<p>Atentamente,<br>La Directiva</p>")
	return b.String()
}
