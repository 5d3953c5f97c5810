package attendance

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, r Record) (Record, error)
	GetByUserAndDate(ctx context.Context, userID, date string) (Record, error)
	Update(ctx context.Context, r Record) error
	ListByUserAndPeriod(ctx context.Context, userID, period string) ([]Record, error)
	// ListOpen returns records for the given date that have no check-out,
	// used by the end-of-day auto check-out job.
	ListOpen(ctx context.Context, date string) ([]Record, error)
}
