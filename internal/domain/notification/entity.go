package notification

import (
	"time"
)

type Type string

const (
	TypeRequestSubmitted Type = "request_submitted"
	TypeApprovalPending  Type = "approval_pending"
	TypeRequestApproved  Type = "request_approved"
	TypeRequestRejected  Type = "request_rejected"
	TypeLowPerformance   Type = "low_performance"
	TypeAnnouncement     Type = "announcement"
)

type Notification struct {
	ID          string     `json:"id"`
	RecipientID string     `json:"recipient_id"`
	SenderID    *string    `json:"sender_id,omitempty"`
	Type        Type       `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	ReferenceID *string    `json:"reference_id,omitempty"`
	IsRead      bool       `json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
