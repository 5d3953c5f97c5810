package request

import (
	"context"
)

// StatusUpdate is the compare-and-swap mutation applied when a stage
// decision lands. ExpectedVersion must match the stored row or the update
// fails with ErrVersionConflict.
type StatusUpdate struct {
	ID              string
	ExpectedVersion int
	Status          Status
	CurrentStage    int
	Decision        StageDecision
}

type Repository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	UpdateStatusAndStage(ctx context.Context, upd StatusUpdate) (Request, error)
	ListByRequester(ctx context.Context, requesterID string, status *Status) ([]Request, error)
	// ListByStage returns pending requests sitting at the given stage.
	// A non-nil department narrows the result to that department's items,
	// which is how operational approvers see only their own queue.
	ListByStage(ctx context.Context, stage int, department *string) ([]Request, error)
	ListApprovedLeaves(ctx context.Context, requesterID, leaveType string, year int) ([]Request, error)
}
