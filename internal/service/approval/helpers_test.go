package approval

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mymbrcm/hr-portal-go/internal/domain/request"
	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
)

// memUserRepo is an in-memory user.Repository for routing tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]user.User
}

func newMemUserRepo(users ...user.User) *memUserRepo {
	r := &memUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return u, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *memUserRepo) FindByRoles(_ context.Context, roles []string, department *string) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roleSet := make(map[string]bool, len(roles))
	for _, role := range roles {
		roleSet[role] = true
	}

	var out []user.User
	for _, u := range r.users {
		if !u.IsActive() || !roleSet[u.Role] {
			continue
		}
		if department != nil && u.Department != *department {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) List(_ context.Context, department *string) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []user.User
	for _, u := range r.users {
		if department != nil && u.Department != *department {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, req user.UpdateProfileRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[req.ID]
	if !ok {
		return user.ErrUserNotFound
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Address != nil {
		u.Address = req.Address
	}
	u.HasEditedProfile = true
	r.users[req.ID] = u
	return nil
}

func (r *memUserRepo) UpdateBankDetails(_ context.Context, req user.UpdateBankDetailsRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[req.ID]
	if !ok {
		return user.ErrUserNotFound
	}
	if req.BankName != nil {
		u.BankName = req.BankName
	}
	if req.AccountNumber != nil {
		u.AccountNumber = req.AccountNumber
	}
	if req.IBAN != nil {
		u.IBAN = req.IBAN
	}
	r.users[req.ID] = u
	return nil
}

func (r *memUserRepo) UpdateAssignment(_ context.Context, req user.UpdateAssignmentRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[req.ID]
	if !ok {
		return user.ErrUserNotFound
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Department != nil {
		u.Department = *req.Department
	}
	r.users[req.ID] = u
	return nil
}

// memRequestRepo is an in-memory request.Repository with the same version
// compare-and-swap semantics as the SQL implementation.
type memRequestRepo struct {
	mu       sync.Mutex
	requests map[string]request.Request
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{requests: make(map[string]request.Request)}
}

func (r *memRequestRepo) Create(_ context.Context, req request.Request) (request.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	r.requests[req.ID] = req
	return req, nil
}

func (r *memRequestRepo) GetByID(_ context.Context, id string) (request.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return request.Request{}, request.ErrRequestNotFound
	}
	return req, nil
}

func (r *memRequestRepo) UpdateStatusAndStage(_ context.Context, upd request.StatusUpdate) (request.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[upd.ID]
	if !ok {
		return request.Request{}, request.ErrRequestNotFound
	}
	if req.Version != upd.ExpectedVersion {
		return request.Request{}, request.ErrVersionConflict
	}

	req.Status = upd.Status
	req.CurrentStage = upd.CurrentStage
	req.Version++
	req.StageHistory = append(req.StageHistory, upd.Decision)
	req.UpdatedAt = time.Now()
	r.requests[upd.ID] = req
	return req, nil
}

func (r *memRequestRepo) ListByRequester(_ context.Context, requesterID string, status *request.Status) ([]request.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []request.Request
	for _, req := range r.requests {
		if req.RequesterID != requesterID {
			continue
		}
		if status != nil && req.Status != *status {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (r *memRequestRepo) ListByStage(_ context.Context, stage int, department *string) ([]request.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []request.Request
	for _, req := range r.requests {
		if req.Status != request.StatusPending || req.CurrentStage != stage {
			continue
		}
		if department != nil && req.RequesterDepartment != *department {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (r *memRequestRepo) ListApprovedLeaves(_ context.Context, requesterID, leaveType string, year int) ([]request.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []request.Request
	for _, req := range r.requests {
		if req.RequesterID != requesterID || req.Type != request.TypeLeave || req.Status != request.StatusApproved {
			continue
		}
		if req.Payload.Leave == nil || req.Payload.Leave.LeaveType != leaveType {
			continue
		}
		start, err := time.Parse("2006-01-02", req.Payload.Leave.StartDate)
		if err != nil || start.Year() != year {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

// recordingNotifier captures routing events for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	advanced []advancedEvent
	resolved []request.Request
}

type advancedEvent struct {
	req request.Request
	ids []string
}

func (n *recordingNotifier) RequestAdvanced(req request.Request, ids []string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.advanced = append(n.advanced, advancedEvent{req: req, ids: ids})
}

func (n *recordingNotifier) RequestResolved(req request.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resolved = append(n.resolved, req)
}

func testUser(id, role, department string) user.User {
	return user.User{
		ID:         id,
		FirstName:  role,
		LastName:   department,
		Email:      id + "@medbillingrcm.com",
		Role:       role,
		Department: department,
		Status:     user.StatusActive,
	}
}

func leavePayload() request.Payload {
	return request.Payload{Leave: &request.LeavePayload{
		LeaveType: "Casual",
		StartDate: "2026-09-10",
		EndDate:   "2026-09-12",
		Days:      3,
		Reason:    "family event",
	}}
}

func newTestEngine(users *memUserRepo, requests *memRequestRepo, notifier Notifier) *Engine {
	store := policy.NewStore(policy.Default())
	resolver := NewStageResolver(store, users)
	return NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)), store, resolver, users, requests, notifier)
}
