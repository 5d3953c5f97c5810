package leave

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mymbrcm/hr-portal-go/internal/domain/leave"
	"github.com/mymbrcm/hr-portal-go/internal/domain/request"
	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
)

// Submitter is the slice of the routing engine the leave service needs.
type Submitter interface {
	Submit(ctx context.Context, requester user.User, typ request.Type, payload request.Payload) (request.Request, error)
}

// Directory is the user lookup the leave rules depend on.
type Directory interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

// History exposes the approved-leave records quota accounting reads.
type History interface {
	ListApprovedLeaves(ctx context.Context, requesterID, leaveType string, year int) ([]request.Request, error)
}

// Service validates leave business rules before a request enters the
// approval chain: probation, gender eligibility and the yearly quota.
type Service struct {
	logger   *slog.Logger
	policies *policy.Store
	users    Directory
	requests History
	engine   Submitter

	now func() time.Time
}

func NewService(
	logger *slog.Logger,
	policies *policy.Store,
	users Directory,
	requests History,
	engine Submitter,
) *Service {
	return &Service{
		logger:   logger,
		policies: policies,
		users:    users,
		requests: requests,
		engine:   engine,
		now:      time.Now,
	}
}

func (s *Service) Submit(ctx context.Context, userID string, dto leave.SubmitLeaveRequest) (request.Request, error) {
	if err := dto.Validate(); err != nil {
		return request.Request{}, err
	}

	requester, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return request.Request{}, err
	}

	start, err := time.Parse("2006-01-02", dto.StartDate)
	if err != nil {
		return request.Request{}, leave.ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", dto.EndDate)
	if err != nil {
		return request.Request{}, leave.ErrInvalidDateRange
	}
	if end.Before(start) {
		return request.Request{}, leave.ErrInvalidDateRange
	}

	p := s.policies.Snapshot()
	quota, ok := p.LeaveQuotas[dto.LeaveType]
	if !ok {
		return request.Request{}, leave.ErrUnknownLeaveType
	}

	if err := eligibleFor(dto.LeaveType, requester.Gender); err != nil {
		return request.Request{}, err
	}

	if tenure := requester.TenureDays(s.now()); tenure < p.ProbationDays {
		return request.Request{}, &leave.ProbationActiveError{DaysRemaining: p.ProbationDays - tenure}
	}

	days := leave.InclusiveDays(start, end)
	used, err := s.usedDays(ctx, userID, dto.LeaveType, start.Year())
	if err != nil {
		return request.Request{}, err
	}
	if used+days > quota {
		return request.Request{}, &leave.QuotaExceededError{
			Type:      dto.LeaveType,
			Requested: days,
			Remaining: quota - used,
		}
	}

	payload := request.Payload{Leave: &request.LeavePayload{
		LeaveType: dto.LeaveType,
		StartDate: dto.StartDate,
		EndDate:   dto.EndDate,
		Days:      days,
		Reason:    dto.Reason,
	}}

	return s.engine.Submit(ctx, requester, request.TypeLeave, payload)
}

// Balances reports every leave type's quota position for the year.
func (s *Service) Balances(ctx context.Context, userID string, year int) ([]leave.Balance, error) {
	requester, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := s.policies.Snapshot()
	types := make([]string, 0, len(p.LeaveQuotas))
	for name := range p.LeaveQuotas {
		types = append(types, name)
	}
	sort.Strings(types)

	balances := make([]leave.Balance, 0, len(types))
	for _, name := range types {
		if eligibleFor(name, requester.Gender) != nil {
			continue
		}
		used, err := s.usedDays(ctx, userID, name, year)
		if err != nil {
			return nil, err
		}
		quota := p.LeaveQuotas[name]
		balances = append(balances, leave.Balance{
			Type:      name,
			Quota:     quota,
			Used:      used,
			Remaining: quota - used,
		})
	}
	return balances, nil
}

func (s *Service) usedDays(ctx context.Context, userID, leaveType string, year int) (int, error) {
	approved, err := s.requests.ListApprovedLeaves(ctx, userID, leaveType, year)
	if err != nil {
		return 0, fmt.Errorf("counting approved leave: %w", err)
	}
	used := 0
	for _, r := range approved {
		if r.Payload.Leave != nil {
			used += r.Payload.Leave.Days
		}
	}
	return used, nil
}

func eligibleFor(leaveType string, gender user.Gender) error {
	switch leaveType {
	case leave.TypeMaternity:
		if gender != user.GenderFemale {
			return leave.ErrIneligibleLeaveType
		}
	case leave.TypePaternity:
		if gender != user.GenderMale {
			return leave.ErrIneligibleLeaveType
		}
	}
	return nil
}
