package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mymbrcm/hr-portal-go/internal/domain/approval"
	"github.com/mymbrcm/hr-portal-go/internal/domain/request"
	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
)

// Notifier receives routing events. Implementations must not block; delivery
// failures never fail the decision that triggered them.
type Notifier interface {
	RequestAdvanced(req request.Request, approverIDs []string)
	RequestResolved(req request.Request)
}

// NopNotifier drops all events.
type NopNotifier struct{}

func (NopNotifier) RequestAdvanced(request.Request, []string) {}
func (NopNotifier) RequestResolved(request.Request)           {}

// Engine routes requests through the approval chain. It is the only writer of
// request status and stage.
type Engine struct {
	logger   *slog.Logger
	policies *policy.Store
	resolver *StageResolver
	users    user.Repository
	requests request.Repository
	notifier Notifier
}

func NewEngine(
	logger *slog.Logger,
	policies *policy.Store,
	resolver *StageResolver,
	users user.Repository,
	requests request.Repository,
	notifier Notifier,
) *Engine {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Engine{
		logger:   logger,
		policies: policies,
		resolver: resolver,
		users:    users,
		requests: requests,
		notifier: notifier,
	}
}

// Submit validates the payload, resolves the initial stage from the
// requester's own level and persists the request as pending.
func (e *Engine) Submit(ctx context.Context, requester user.User, typ request.Type, payload request.Payload) (request.Request, error) {
	if err := payload.ValidateFor(typ); err != nil {
		return request.Request{}, err
	}

	p := e.policies.Snapshot()
	level, ok := p.Hierarchy.LevelOf(requester.Role)
	if !ok {
		return request.Request{}, user.ErrUnknownRole
	}

	stage, err := e.resolver.Resolve(ctx, level, requester.Department)
	if err != nil {
		return request.Request{}, err
	}

	now := time.Now()
	req := request.Request{
		ID:                  uuid.New().String(),
		Type:                typ,
		RequesterID:         requester.ID,
		RequesterName:       requester.FullName(),
		RequesterDepartment: requester.Department,
		Status:              request.StatusPending,
		CurrentStage:        stage,
		Version:             1,
		Payload:             payload,
		StageHistory:        request.StageHistory{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	created, err := e.requests.Create(ctx, req)
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: %v", approval.ErrDependencyUnavailable, err)
	}

	e.logger.Info("request submitted",
		slog.String("request_id", created.ID),
		slog.String("type", string(created.Type)),
		slog.Int("stage", created.CurrentStage),
	)

	e.notifyPool(ctx, created)
	return created, nil
}

// Approve records a stage approval. If the request sits at the terminal level
// it becomes approved; otherwise it advances to the next resolvable stage.
func (e *Engine) Approve(ctx context.Context, approver user.User, requestID, note string) (request.Request, error) {
	req, err := e.load(ctx, requestID)
	if err != nil {
		return request.Request{}, err
	}
	if err := e.authorize(approver, req); err != nil {
		return request.Request{}, err
	}

	upd := request.StatusUpdate{
		ID:              req.ID,
		ExpectedVersion: req.Version,
		Decision: request.StageDecision{
			Stage:        req.CurrentStage,
			ApproverID:   approver.ID,
			ApproverName: approver.FullName(),
			Decision:     request.DecisionApproved,
			Note:         note,
			DecidedAt:    time.Now(),
		},
	}

	if req.CurrentStage >= policy.MaxLevel {
		upd.Status = request.StatusApproved
		upd.CurrentStage = req.CurrentStage
	} else {
		next, err := e.resolver.Resolve(ctx, req.CurrentStage, req.RequesterDepartment)
		if err != nil {
			return request.Request{}, err
		}
		upd.Status = request.StatusPending
		upd.CurrentStage = next
	}

	updated, err := e.apply(ctx, upd)
	if err != nil {
		return request.Request{}, err
	}

	e.logger.Info("stage approved",
		slog.String("request_id", updated.ID),
		slog.Int("stage", upd.Decision.Stage),
		slog.String("status", string(updated.Status)),
	)

	if updated.Status.IsTerminal() {
		e.notifier.RequestResolved(updated)
	} else {
		e.notifyPool(ctx, updated)
	}
	return updated, nil
}

// Reject terminates the request at the current stage.
func (e *Engine) Reject(ctx context.Context, approver user.User, requestID, note string) (request.Request, error) {
	req, err := e.load(ctx, requestID)
	if err != nil {
		return request.Request{}, err
	}
	if err := e.authorize(approver, req); err != nil {
		return request.Request{}, err
	}

	upd := request.StatusUpdate{
		ID:              req.ID,
		ExpectedVersion: req.Version,
		Status:          request.StatusRejected,
		CurrentStage:    req.CurrentStage,
		Decision: request.StageDecision{
			Stage:        req.CurrentStage,
			ApproverID:   approver.ID,
			ApproverName: approver.FullName(),
			Decision:     request.DecisionRejected,
			Note:         note,
			DecidedAt:    time.Now(),
		},
	}

	updated, err := e.apply(ctx, upd)
	if err != nil {
		return request.Request{}, err
	}

	e.logger.Info("request rejected",
		slog.String("request_id", updated.ID),
		slog.Int("stage", upd.Decision.Stage),
	)

	e.notifier.RequestResolved(updated)
	return updated, nil
}

// Queue lists the pending requests the approver may currently decide.
func (e *Engine) Queue(ctx context.Context, approver user.User) ([]request.Request, error) {
	p := e.policies.Snapshot()
	level, ok := p.Hierarchy.LevelOf(approver.Role)
	if !ok {
		return nil, user.ErrUnknownRole
	}

	var dept *string
	if policy.IsOperational(level) {
		dept = &approver.Department
	}

	items, err := e.requests.ListByStage(ctx, level, dept)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", approval.ErrDependencyUnavailable, err)
	}
	return items, nil
}

func (e *Engine) load(ctx context.Context, id string) (request.Request, error) {
	req, err := e.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, request.ErrRequestNotFound) {
			return request.Request{}, err
		}
		return request.Request{}, fmt.Errorf("%w: %v", approval.ErrDependencyUnavailable, err)
	}
	if req.Status != request.StatusPending {
		return request.Request{}, approval.ErrInvalidStateTransition
	}
	return req, nil
}

// authorize checks that the approver holds the request's current stage and,
// for operational stages, sits in the requester's department.
func (e *Engine) authorize(approver user.User, req request.Request) error {
	p := e.policies.Snapshot()
	level, ok := p.Hierarchy.LevelOf(approver.Role)
	if !ok {
		return user.ErrUnknownRole
	}
	if level != req.CurrentStage {
		return approval.ErrUnauthorized
	}
	if policy.IsOperational(level) && approver.Department != req.RequesterDepartment {
		return approval.ErrUnauthorized
	}
	return nil
}

func (e *Engine) apply(ctx context.Context, upd request.StatusUpdate) (request.Request, error) {
	updated, err := e.requests.UpdateStatusAndStage(ctx, upd)
	if err != nil {
		if errors.Is(err, request.ErrVersionConflict) {
			return request.Request{}, approval.ErrConflict
		}
		return request.Request{}, fmt.Errorf("%w: %v", approval.ErrDependencyUnavailable, err)
	}
	return updated, nil
}

func (e *Engine) notifyPool(ctx context.Context, req request.Request) {
	pool, err := e.resolver.PoolAt(ctx, req.CurrentStage, req.RequesterDepartment)
	if err != nil {
		e.logger.Warn("approver pool lookup failed",
			slog.String("request_id", req.ID),
			slog.Int("stage", req.CurrentStage),
			slog.Any("error", err),
		)
		return
	}

	ids := make([]string, 0, len(pool))
	for _, a := range pool {
		if a.ID == req.RequesterID {
			continue
		}
		ids = append(ids, a.ID)
	}
	if len(ids) > 0 {
		e.notifier.RequestAdvanced(req, ids)
	}
}
