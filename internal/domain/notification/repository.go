package notification

import (
	"context"
)

type Repository interface {
	CreateBatch(ctx context.Context, ns []Notification) error
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) ([]Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, id, recipientID string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
}
