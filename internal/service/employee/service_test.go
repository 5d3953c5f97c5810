package employee

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mymbrcm/hr-portal-go/internal/domain/request"
	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
)

type fakeUserRepo struct {
	users          map[string]user.User
	profileUpdates []user.UpdateProfileRequest
	assignments    []user.UpdateAssignmentRequest
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) FindByRoles(ctx context.Context, roles []string, department *string) ([]user.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) List(ctx context.Context, department *string) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		if department == nil || u.Department == *department {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) error {
	r.profileUpdates = append(r.profileUpdates, req)
	u := r.users[req.ID]
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

func (r *fakeUserRepo) UpdateBankDetails(ctx context.Context, req user.UpdateBankDetailsRequest) error {
	return nil
}

func (r *fakeUserRepo) UpdateAssignment(ctx context.Context, req user.UpdateAssignmentRequest) error {
	r.assignments = append(r.assignments, req)
	return nil
}

type fakeSubmitter struct {
	submitted []request.SubmitRequest
}

func (f *fakeSubmitter) Submit(ctx context.Context, userID string, dto request.SubmitRequest) (request.Request, error) {
	f.submitted = append(f.submitted, dto)
	return request.Request{
		ID:          "req-1",
		RequesterID: userID,
		Type:        request.Type(dto.Type),
		Status:      request.StatusPending,
	}, nil
}

func newTestService(repo *fakeUserRepo, router *fakeSubmitter) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, repo, policy.NewStore(policy.Default()), router)
}

func strPtr(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	t.Run("first edit applies directly", func(t *testing.T) {
		repo := newFakeUserRepo(user.User{ID: "u1", Role: "Employee", Department: "Billing"})
		router := &fakeSubmitter{}
		svc := newTestService(repo, router)

		result, err := svc.UpdateProfile(context.Background(), "u1", user.UpdateProfileRequest{
			Phone: strPtr("0300-1234567"),
		})
		require.NoError(t, err)

		assert.True(t, result.Applied)
		assert.Nil(t, result.Request)
		require.Len(t, repo.profileUpdates, 1)
		assert.Empty(t, router.submitted)
	})

	t.Run("later edits route through approval", func(t *testing.T) {
		repo := newFakeUserRepo(user.User{ID: "u1", Role: "Employee", Department: "Billing", HasEditedProfile: true})
		router := &fakeSubmitter{}
		svc := newTestService(repo, router)

		result, err := svc.UpdateProfile(context.Background(), "u1", user.UpdateProfileRequest{
			Phone:   strPtr("0300-7654321"),
			Address: strPtr("Street 5"),
		})
		require.NoError(t, err)

		assert.False(t, result.Applied)
		require.NotNil(t, result.Request)
		assert.Equal(t, request.TypeProfileUpdate, result.Request.Type)
		assert.Empty(t, repo.profileUpdates)

		require.Len(t, router.submitted, 1)
		changes := router.submitted[0].Payload.ProfileChange.Changes
		assert.Equal(t, "0300-7654321", changes["phone"])
		assert.Equal(t, "Street 5", changes["address"])
	})

	t.Run("empty edit after first is a no-op", func(t *testing.T) {
		repo := newFakeUserRepo(user.User{ID: "u1", HasEditedProfile: true})
		router := &fakeSubmitter{}
		svc := newTestService(repo, router)

		result, err := svc.UpdateProfile(context.Background(), "u1", user.UpdateProfileRequest{})
		require.NoError(t, err)

		assert.True(t, result.Applied)
		assert.Empty(t, router.submitted)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := newTestService(newFakeUserRepo(), &fakeSubmitter{})

		_, err := svc.UpdateProfile(context.Background(), "ghost", user.UpdateProfileRequest{})
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestRequestBankUpdate(t *testing.T) {
	repo := newFakeUserRepo(user.User{ID: "u1"})
	router := &fakeSubmitter{}
	svc := newTestService(repo, router)

	req, err := svc.RequestBankUpdate(context.Background(), "u1", user.UpdateBankDetailsRequest{
		BankName:      strPtr("HBL"),
		AccountNumber: strPtr("1234567890"),
	})
	require.NoError(t, err)

	assert.Equal(t, request.TypeBankUpdate, req.Type)
	require.Len(t, router.submitted, 1)
	assert.Equal(t, "HBL", router.submitted[0].Payload.BankChange.BankName)
}

func TestUpdateAssignment(t *testing.T) {
	t.Run("applies a known role and department", func(t *testing.T) {
		repo := newFakeUserRepo(user.User{ID: "u1", Role: "Employee", Department: "Billing"})
		svc := newTestService(repo, &fakeSubmitter{})

		_, err := svc.UpdateAssignment(context.Background(), user.UpdateAssignmentRequest{
			ID:         "u1",
			Role:       strPtr("Team Lead"),
			Department: strPtr("AR"),
		})
		require.NoError(t, err)
		require.Len(t, repo.assignments, 1)
	})

	t.Run("rejects a role outside the hierarchy", func(t *testing.T) {
		repo := newFakeUserRepo(user.User{ID: "u1"})
		svc := newTestService(repo, &fakeSubmitter{})

		_, err := svc.UpdateAssignment(context.Background(), user.UpdateAssignmentRequest{
			ID:   "u1",
			Role: strPtr("Intern"),
		})
		assert.ErrorIs(t, err, user.ErrUnknownRole)
		assert.Empty(t, repo.assignments)
	})

	t.Run("rejects an unconfigured department", func(t *testing.T) {
		repo := newFakeUserRepo(user.User{ID: "u1"})
		svc := newTestService(repo, &fakeSubmitter{})

		_, err := svc.UpdateAssignment(context.Background(), user.UpdateAssignmentRequest{
			ID:         "u1",
			Department: strPtr("Legal"),
		})
		assert.ErrorIs(t, err, user.ErrUnknownDepartment)
	})
}
