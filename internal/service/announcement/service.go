package announcement

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mymbrcm/hr-portal-go/internal/domain/announcement"
	"github.com/mymbrcm/hr-portal-go/internal/domain/notification"
	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
)

// Broadcaster fans announcement notifications out to recipients.
type Broadcaster interface {
	EnqueueMany(recipientIDs []string, n notification.Notification)
}

type Directory interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	List(ctx context.Context, department *string) ([]user.User, error)
}

type Service struct {
	logger    *slog.Logger
	repo      announcement.Repository
	users     Directory
	broadcast Broadcaster
}

func NewService(logger *slog.Logger, repo announcement.Repository, users Directory, broadcast Broadcaster) *Service {
	return &Service{
		logger:    logger,
		repo:      repo,
		users:     users,
		broadcast: broadcast,
	}
}

// Create publishes an announcement and notifies its audience: the named
// department, or the whole company when no department is set.
func (s *Service) Create(ctx context.Context, authorID string, dto announcement.CreateRequest) (announcement.Announcement, error) {
	if err := dto.Validate(); err != nil {
		return announcement.Announcement{}, err
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return announcement.Announcement{}, err
	}

	a := announcement.Announcement{
		ID:         uuid.New().String(),
		AuthorID:   author.ID,
		AuthorName: author.FullName(),
		Title:      dto.Title,
		Body:       dto.Body,
		Department: dto.Department,
		CreatedAt:  time.Now(),
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return announcement.Announcement{}, err
	}

	s.notifyAudience(ctx, created)
	return created, nil
}

func (s *Service) List(ctx context.Context, department string, limit, offset int) ([]announcement.Announcement, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.List(ctx, department, limit, offset)
}

// Delete removes an announcement; only its author may do so.
func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.AuthorID != callerID {
		return announcement.ErrNotAuthor
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) notifyAudience(ctx context.Context, a announcement.Announcement) {
	var dept *string
	if a.Department != "" {
		dept = &a.Department
	}

	audience, err := s.users.List(ctx, dept)
	if err != nil {
		s.logger.Warn("announcement audience lookup failed",
			slog.String("announcement_id", a.ID),
			slog.Any("error", err),
		)
		return
	}

	ids := make([]string, 0, len(audience))
	for _, u := range audience {
		if u.ID == a.AuthorID || !u.IsActive() {
			continue
		}
		ids = append(ids, u.ID)
	}
	if len(ids) == 0 {
		return
	}

	refID := a.ID
	s.broadcast.EnqueueMany(ids, notification.Notification{
		SenderID:    &a.AuthorID,
		Type:        notification.TypeAnnouncement,
		Title:       a.Title,
		Message:     a.Body,
		ReferenceID: &refID,
	})
}
