package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mymbrcm/hr-portal-go/internal/domain/notification"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/sse"
)

const (
	defaultQueueSize  = 1024
	defaultWorkers    = 2
	batchSize         = 50
	batchFlushTimeout = 500 * time.Millisecond
)

// Service persists notifications asynchronously and pushes them to live SSE
// subscribers. Enqueue never blocks the caller; a full queue drops the
// notification with a warning.
type Service struct {
	logger *slog.Logger
	repo   notification.Repository
	hub    *sse.Hub

	queue chan notification.Notification
	stop  chan struct{}
	wg    sync.WaitGroup
}

func NewService(logger *slog.Logger, repo notification.Repository, hub *sse.Hub) *Service {
	s := &Service{
		logger: logger,
		repo:   repo,
		hub:    hub,
		queue:  make(chan notification.Notification, defaultQueueSize),
		stop:   make(chan struct{}),
	}

	s.wg.Add(defaultWorkers)
	for i := 0; i < defaultWorkers; i++ {
		go s.worker()
	}
	return s
}

// Enqueue queues a notification for persistence and live delivery.
func (s *Service) Enqueue(n notification.Notification) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	select {
	case s.queue <- n:
	default:
		s.logger.Warn("notification queue full, dropping",
			slog.String("recipient_id", n.RecipientID),
			slog.String("type", string(n.Type)),
		)
	}
}

// EnqueueMany fans one notification out to several recipients.
func (s *Service) EnqueueMany(recipientIDs []string, n notification.Notification) {
	for _, id := range recipientIDs {
		item := n
		item.ID = uuid.New().String()
		item.RecipientID = id
		s.Enqueue(item)
	}
}

// Stop drains the queue and waits for the workers to finish.
func (s *Service) Stop() {
	close(s.stop)
	s.wg.Wait()
}

// worker batches queued notifications for insert, flushing on size or on the
// timer, whichever comes first.
func (s *Service) worker() {
	defer s.wg.Done()

	batch := make([]notification.Notification, 0, batchSize)
	timer := time.NewTimer(batchFlushTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		s.persist(batch)
		batch = batch[:0]
	}

	for {
		select {
		case n := <-s.queue:
			batch = append(batch, n)
			if len(batch) >= batchSize {
				flush()
			}
		case <-timer.C:
			flush()
			timer.Reset(batchFlushTimeout)
		case <-s.stop:
			// Drain whatever is still queued before exiting.
			for {
				select {
				case n := <-s.queue:
					batch = append(batch, n)
					if len(batch) >= batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

func (s *Service) persist(batch []notification.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		s.logger.Error("notification batch insert failed",
			slog.Int("count", len(batch)),
			slog.Any("error", err),
		)
		return
	}

	for _, n := range batch {
		s.hub.Publish(n.RecipientID, sse.Event{
			UserID: n.RecipientID,
			Event:  "notification",
			Data:   n,
		})
	}
}

func (s *Service) List(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) ([]notification.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	items, err := s.repo.ListByRecipient(ctx, recipientID, unreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return items, nil
}

func (s *Service) CountUnread(ctx context.Context, recipientID string) (int, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

func (s *Service) MarkAsRead(ctx context.Context, id, recipientID string) error {
	return s.repo.MarkAsRead(ctx, id, recipientID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return s.repo.MarkAllAsRead(ctx, recipientID)
}
