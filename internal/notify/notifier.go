// Package notify enqueues recruiter notifications as a best-effort side
// effect of interview completion. Delivery happens out of process; this
// package only manages the notification records and their status.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/elga-energy/axiom/internal/domain"
	"github.com/elga-energy/axiom/internal/store"
)

// Notifier writes recruiter notification records to the repository.
type Notifier struct {
	repo store.Repository
}

// New creates a Notifier over repo.
func New(repo store.Repository) *Notifier {
	return &Notifier{repo: repo}
}

// ProfileCompleted enqueues a pending profile_completed notification.
// Failures are logged, never propagated: notification delivery must not
// fail the interview completion it rides on.
func (n *Notifier) ProfileCompleted(ctx context.Context, sessionID, candidateEmail, candidateName string) {
	_, err := n.repo.CreateNotification(ctx, &domain.RecruiterNotification{
		SessionID:      sessionID,
		CandidateEmail: candidateEmail,
		CandidateName:  candidateName,
		Type:           domain.NotifyProfileCompleted,
		Status:         domain.NotificationPending,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		slog.Warn("failed to enqueue recruiter notification", "session_id", sessionID, "error", err)
	}
}

// MarkDelivered records the delivery outcome of a notification. A non-nil
// deliveryErr marks the record failed with its message.
func (n *Notifier) MarkDelivered(ctx context.Context, id int64, deliveryErr error) {
	status := domain.NotificationSent
	errMsg := ""
	if deliveryErr != nil {
		status = domain.NotificationFailed
		errMsg = deliveryErr.Error()
	}

	if err := n.repo.UpdateNotificationStatus(ctx, id, status, errMsg); err != nil {
		slog.Warn("failed to update notification status", "id", id, "error", err)
	}
}
