package announcement

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, a Announcement) (Announcement, error)
	// List returns company-wide announcements plus the given department's,
	// newest first.
	List(ctx context.Context, department string, limit, offset int) ([]Announcement, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Announcement, error)
}
