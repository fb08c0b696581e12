package domain

import (
	"time"
)

// NotificationType distinguishes recruiter notification triggers.
type NotificationType string

const (
	NotifyProfileCompleted  NotificationType = "profile_completed"
	NotifyMatchingCompleted NotificationType = "matching_completed"
)

// NotificationStatus tracks the delivery lifecycle of a notification.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// RecruiterNotification is an outbound notification record. Delivery is a
// side effect of interview completion and is never load-bearing.
type RecruiterNotification struct {
	ID             int64              `json:"id"`
	SessionID      string             `json:"sessionId"`
	CandidateEmail string             `json:"candidateEmail"`
	CandidateName  string             `json:"candidateName,omitempty"`
	Type           NotificationType   `json:"type"`
	Status         NotificationStatus `json:"status"`
	ErrorMessage   string             `json:"errorMessage,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}
