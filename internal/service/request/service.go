package request

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mymbrcm/hr-portal-go/internal/domain/approval"
	"github.com/mymbrcm/hr-portal-go/internal/domain/request"
	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/database"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
	"github.com/mymbrcm/hr-portal-go/internal/repository/postgresql"
	approvalsvc "github.com/mymbrcm/hr-portal-go/internal/service/approval"
)

// Service fronts the routing engine for the generic request types and applies
// the side effects of approved changes back to the user directory.
type Service struct {
	logger   *slog.Logger
	db       *database.DB
	policies *policy.Store
	engine   *approvalsvc.Engine
	users    user.Repository
	requests request.Repository
}

func NewService(
	logger *slog.Logger,
	db *database.DB,
	policies *policy.Store,
	engine *approvalsvc.Engine,
	users user.Repository,
	requests request.Repository,
) *Service {
	return &Service{
		logger:   logger,
		db:       db,
		policies: policies,
		engine:   engine,
		users:    users,
		requests: requests,
	}
}

func (s *Service) Submit(ctx context.Context, userID string, dto request.SubmitRequest) (request.Request, error) {
	if err := dto.Validate(); err != nil {
		return request.Request{}, err
	}

	requester, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return request.Request{}, err
	}

	typ := request.Type(dto.Type)
	payload := dto.Payload

	// Snapshot current values next to a profile diff so approvers see both.
	if typ == request.TypeProfileUpdate && payload.ProfileChange != nil {
		payload.ProfileChange.Current = currentProfileFields(requester, payload.ProfileChange.Changes)
	}

	return s.engine.Submit(ctx, requester, typ, payload)
}

// Approve records the decision and, for a terminal approval, applies the
// requested change to the directory in the same transaction.
func (s *Service) Approve(ctx context.Context, approverID, requestID, note string) (request.Request, error) {
	approver, err := s.users.GetByID(ctx, approverID)
	if err != nil {
		return request.Request{}, err
	}

	var decided request.Request
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var txErr error
		decided, txErr = s.engine.Approve(txCtx, approver, requestID, note)
		if txErr != nil {
			return txErr
		}
		if decided.Status == request.StatusApproved {
			return s.applyEffects(txCtx, decided)
		}
		return nil
	})
	if err != nil {
		return request.Request{}, err
	}
	return decided, nil
}

func (s *Service) Reject(ctx context.Context, approverID, requestID, note string) (request.Request, error) {
	approver, err := s.users.GetByID(ctx, approverID)
	if err != nil {
		return request.Request{}, err
	}
	return s.engine.Reject(ctx, approver, requestID, note)
}

func (s *Service) Queue(ctx context.Context, approverID string) ([]request.Request, error) {
	approver, err := s.users.GetByID(ctx, approverID)
	if err != nil {
		return nil, err
	}
	return s.engine.Queue(ctx, approver)
}

func (s *Service) Mine(ctx context.Context, userID string, status *request.Status) ([]request.Request, error) {
	return s.requests.ListByRequester(ctx, userID, status)
}

// Get returns a request if the caller is its requester or holds its current
// stage.
func (s *Service) Get(ctx context.Context, callerID, requestID string) (request.Request, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return request.Request{}, err
	}
	if req.RequesterID == callerID {
		return req, nil
	}

	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return request.Request{}, err
	}

	p := s.policies.Snapshot()
	level, ok := p.Hierarchy.LevelOf(caller.Role)
	if !ok || level != req.CurrentStage {
		return request.Request{}, approval.ErrUnauthorized
	}
	if policy.IsOperational(level) && caller.Department != req.RequesterDepartment {
		return request.Request{}, approval.ErrUnauthorized
	}
	return req, nil
}

func (s *Service) applyEffects(ctx context.Context, req request.Request) error {
	switch req.Type {
	case request.TypeBankUpdate:
		p := req.Payload.BankChange
		upd := user.UpdateBankDetailsRequest{
			ID:            req.RequesterID,
			BankName:      &p.BankName,
			AccountNumber: &p.AccountNumber,
		}
		if p.IBAN != "" {
			upd.IBAN = &p.IBAN
		}
		return s.users.UpdateBankDetails(ctx, upd)

	case request.TypeProfileUpdate:
		changes := req.Payload.ProfileChange.Changes
		upd := user.UpdateProfileRequest{ID: req.RequesterID}
		if v, ok := changes["phone"]; ok {
			upd.Phone = &v
		}
		if v, ok := changes["address"]; ok {
			upd.Address = &v
		}
		if upd.Phone == nil && upd.Address == nil {
			return fmt.Errorf("profile change has no applicable fields")
		}
		return s.users.UpdateProfile(ctx, upd)
	}

	// Leave and departmental requests have no directory side effects.
	return nil
}

func currentProfileFields(u user.User, changes map[string]string) map[string]string {
	current := make(map[string]string, len(changes))
	for field := range changes {
		switch field {
		case "phone":
			if u.Phone != nil {
				current[field] = *u.Phone
			}
		case "address":
			if u.Address != nil {
				current[field] = *u.Address
			}
		}
	}
	return current
}
