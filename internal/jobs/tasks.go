package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gcbaptista/go-portfolio/model"
	"github.com/gcbaptista/go-portfolio/services"
)

// ContactNotification returns the job that e-mails the contact message named by
// the job subject and marks it as notified.
func ContactNotification(store services.ContactStore, notifier services.Notifier, progress func(jobID string, current, total int, message string)) JobFunc {
	return func(ctx context.Context, job model.Job) error {
		msg, err := store.GetContactMessage(ctx, job.Subject)
		if err != nil {
			return fmt.Errorf("failed to load contact message: %w", err)
		}
		if msg.NotifiedAt != nil {
			return nil
		}
		report(progress, job.ID, 1, 2, "Sending notification")

		if err := notifier.NotifyContact(ctx, msg); err != nil {
			return fmt.Errorf("failed to send notification: %w", err)
		}
		if err := store.MarkNotified(ctx, msg.ID, time.Now()); err != nil {
			return fmt.Errorf("failed to mark message as notified: %w", err)
		}
		report(progress, job.ID, 2, 2, "Notification sent")
		return nil
	}
}

// VisitorCleanup returns the job that deletes visits older than retention.
func VisitorCleanup(store services.VisitorStore, retention time.Duration, logger *zap.Logger) JobFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, job model.Job) error {
		cutoff := time.Now().Add(-retention)
		deleted, err := store.DeleteVisitsBefore(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("failed to delete old visits: %w", err)
		}
		logger.Info("Deleted old visits",
			zap.String("job_id", job.ID),
			zap.Time("cutoff", cutoff),
			zap.Int64("deleted", deleted))
		return nil
	}
}

// Flusher persists buffered state.
type Flusher interface {
	Flush() error
}

// AnalyticsFlush returns the job that snapshots buffered analytics events.
func AnalyticsFlush(flusher Flusher) JobFunc {
	return func(_ context.Context, _ model.Job) error {
		if err := flusher.Flush(); err != nil {
			return fmt.Errorf("failed to flush analytics: %w", err)
		}
		return nil
	}
}

// Every submits a job of the given type immediately and then once per interval
// until the manager stops.
func (m *Manager) Every(interval time.Duration, jobType model.JobType, subject string, jobFunc JobFunc) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if _, err := m.Submit(jobType, subject, nil, jobFunc); err != nil {
				m.logger.Warn("Failed to submit scheduled job", zap.String("type", string(jobType)), zap.Error(err))
			}
			select {
			case <-ticker.C:
			case <-m.ctx.Done():
				return
			}
		}
	}()
}

func report(progress func(string, int, int, string), jobID string, current, total int, message string) {
	if progress != nil {
		progress(jobID, current, total, message)
	}
}
