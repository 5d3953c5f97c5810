package employee

import (
	"context"
	"log/slog"

	"github.com/mymbrcm/hr-portal-go/internal/domain/request"
	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
)

// RequestSubmitter routes a change through the approval chain.
type RequestSubmitter interface {
	Submit(ctx context.Context, userID string, dto request.SubmitRequest) (request.Request, error)
}

// ProfileUpdateResult tells the caller whether the edit applied directly or
// was routed for approval.
type ProfileUpdateResult struct {
	Applied bool             `json:"applied"`
	Request *request.Request `json:"request,omitempty"`
}

// Service is the employee directory. The first profile edit applies
// directly; every later edit routes through the approval chain.
type Service struct {
	logger   *slog.Logger
	users    user.Repository
	policies *policy.Store
	router   RequestSubmitter
}

func NewService(logger *slog.Logger, users user.Repository, policies *policy.Store, router RequestSubmitter) *Service {
	return &Service{
		logger:   logger,
		users:    users,
		policies: policies,
		router:   router,
	}
}

func (s *Service) Get(ctx context.Context, id string) (user.Profile, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return user.Profile{}, err
	}
	return user.ToProfile(u), nil
}

func (s *Service) List(ctx context.Context, department *string) ([]user.Profile, error) {
	users, err := s.users.List(ctx, department)
	if err != nil {
		return nil, err
	}
	profiles := make([]user.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, user.ToProfile(u))
	}
	return profiles, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, dto user.UpdateProfileRequest) (ProfileUpdateResult, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ProfileUpdateResult{}, err
	}

	if !u.HasEditedProfile {
		dto.ID = userID
		if err := s.users.UpdateProfile(ctx, dto); err != nil {
			return ProfileUpdateResult{}, err
		}
		s.logger.Info("first profile edit applied directly", slog.String("user_id", userID))
		return ProfileUpdateResult{Applied: true}, nil
	}

	changes := make(map[string]string)
	if dto.Phone != nil {
		changes["phone"] = *dto.Phone
	}
	if dto.Address != nil {
		changes["address"] = *dto.Address
	}
	if len(changes) == 0 {
		return ProfileUpdateResult{Applied: true}, nil
	}

	req, err := s.router.Submit(ctx, userID, request.SubmitRequest{
		Type:    string(request.TypeProfileUpdate),
		Payload: request.Payload{ProfileChange: &request.ProfileChangePayload{Changes: changes}},
	})
	if err != nil {
		return ProfileUpdateResult{}, err
	}
	return ProfileUpdateResult{Applied: false, Request: &req}, nil
}

// RequestBankUpdate always routes through approval regardless of edit
// history.
func (s *Service) RequestBankUpdate(ctx context.Context, userID string, dto user.UpdateBankDetailsRequest) (request.Request, error) {
	payload := request.BankChangePayload{}
	if dto.BankName != nil {
		payload.BankName = *dto.BankName
	}
	if dto.AccountNumber != nil {
		payload.AccountNumber = *dto.AccountNumber
	}
	if dto.IBAN != nil {
		payload.IBAN = *dto.IBAN
	}

	return s.router.Submit(ctx, userID, request.SubmitRequest{
		Type:    string(request.TypeBankUpdate),
		Payload: request.Payload{BankChange: &payload},
	})
}

// UpdateAssignment applies an admin-side role or compensation change. The
// new role must exist in the hierarchy and the department must be
// configured.
func (s *Service) UpdateAssignment(ctx context.Context, dto user.UpdateAssignmentRequest) (user.Profile, error) {
	if err := dto.Validate(); err != nil {
		return user.Profile{}, err
	}

	p := s.policies.Snapshot()
	if dto.Role != nil {
		if _, ok := p.Hierarchy.LevelOf(*dto.Role); !ok {
			return user.Profile{}, user.ErrUnknownRole
		}
	}
	if dto.Department != nil {
		known := false
		for _, d := range p.Departments {
			if d == *dto.Department {
				known = true
				break
			}
		}
		if !known {
			return user.Profile{}, user.ErrUnknownDepartment
		}
	}

	if err := s.users.UpdateAssignment(ctx, dto); err != nil {
		return user.Profile{}, err
	}
	return s.Get(ctx, dto.ID)
}
