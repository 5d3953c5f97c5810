package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mymbrcm/hr-portal-go/internal/domain/notification"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, ns []notification.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (
			id, recipient_id, sender_id, type, title, message,
			reference_id, is_read, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
	`

	batch := &pgx.Batch{}
	for _, n := range ns {
		batch.Queue(query,
			n.ID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message,
			n.ReferenceID, n.CreatedAt,
		)
	}

	// Batches need the concrete pool or tx, both of which implement SendBatch.
	sender, ok := q.(interface {
		SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	})
	if !ok {
		for _, n := range ns {
			if _, err := q.Exec(ctx, query,
				n.ID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message,
				n.ReferenceID, n.CreatedAt,
			); err != nil {
				return err
			}
		}
		return nil
	}

	results := sender.SendBatch(ctx, batch)
	defer results.Close()
	for range ns {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *notificationRepositoryImpl) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, recipient_id, sender_id, type, title, message,
			   reference_id, is_read, read_at, created_at
		FROM notifications
		WHERE recipient_id = $1
	`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := q.Query(ctx, query, recipientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Title, &n.Message,
			&n.ReferenceID, &n.IsRead, &n.ReadAt, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationRepositoryImpl) CountUnread(ctx context.Context, recipientID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`,
		recipientID,
	).Scan(&count)
	return count, err
}

func (r *notificationRepositoryImpl) MarkAsRead(ctx context.Context, id, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = $1 WHERE id = $2 AND recipient_id = $3`,
		time.Now(), id, recipientID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepositoryImpl) MarkAllAsRead(ctx context.Context, recipientID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, read_at = $1 WHERE recipient_id = $2 AND is_read = FALSE`,
		time.Now(), recipientID,
	)
	return err
}
