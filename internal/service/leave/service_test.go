package leave

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mymbrcm/hr-portal-go/internal/domain/leave"
	"github.com/mymbrcm/hr-portal-go/internal/domain/request"
	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
)

type stubDirectory struct {
	users map[string]user.User
}

func (d *stubDirectory) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := d.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type stubHistory struct {
	approved []request.Request
}

func (h *stubHistory) ListApprovedLeaves(_ context.Context, requesterID, leaveType string, year int) ([]request.Request, error) {
	var out []request.Request
	for _, r := range h.approved {
		if r.RequesterID != requesterID || r.Payload.Leave == nil || r.Payload.Leave.LeaveType != leaveType {
			continue
		}
		start, err := time.Parse("2006-01-02", r.Payload.Leave.StartDate)
		if err != nil || start.Year() != year {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type stubSubmitter struct {
	submitted []request.Payload
}

func (s *stubSubmitter) Submit(_ context.Context, requester user.User, typ request.Type, payload request.Payload) (request.Request, error) {
	s.submitted = append(s.submitted, payload)
	return request.Request{
		ID:           "req-1",
		Type:         typ,
		RequesterID:  requester.ID,
		Status:       request.StatusPending,
		CurrentStage: 2,
		Version:      1,
		Payload:      payload,
	}, nil
}

// fixedNow keeps probation and quota checks deterministic.
var fixedNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func newTestService(dir *stubDirectory, hist *stubHistory, sub *stubSubmitter) *Service {
	svc := NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		policy.NewStore(policy.Default()),
		dir, hist, sub,
	)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func employee(id string, gender user.Gender, joined time.Time) user.User {
	return user.User{
		ID:          id,
		FirstName:   "Test",
		LastName:    "Employee",
		Gender:      gender,
		Role:        "Employee",
		Department:  "Billing",
		JoiningDate: joined,
		Status:      user.StatusActive,
	}
}

func TestService_Submit(t *testing.T) {
	tenured := fixedNow.AddDate(-1, 0, 0)

	t.Run("routes a valid leave with the inclusive day count", func(t *testing.T) {
		dir := &stubDirectory{users: map[string]user.User{
			"emp-1": employee("emp-1", user.GenderMale, tenured),
		}}
		sub := &stubSubmitter{}
		svc := newTestService(dir, &stubHistory{}, sub)

		req, err := svc.Submit(context.Background(), "emp-1", leave.SubmitLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "2026-09-10",
			EndDate:   "2026-09-12",
			Reason:    "family event",
		})

		require.NoError(t, err)
		assert.Equal(t, request.StatusPending, req.Status)
		require.Len(t, sub.submitted, 1)
		assert.Equal(t, 3, sub.submitted[0].Leave.Days)
	})

	t.Run("a single day of leave counts as one day", func(t *testing.T) {
		dir := &stubDirectory{users: map[string]user.User{
			"emp-1": employee("emp-1", user.GenderMale, tenured),
		}}
		sub := &stubSubmitter{}
		svc := newTestService(dir, &stubHistory{}, sub)

		_, err := svc.Submit(context.Background(), "emp-1", leave.SubmitLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "2026-09-10",
			EndDate:   "2026-09-10",
			Reason:    "errand",
		})

		require.NoError(t, err)
		require.Len(t, sub.submitted, 1)
		assert.Equal(t, 1, sub.submitted[0].Leave.Days)
	})

	t.Run("blocks submissions during probation", func(t *testing.T) {
		joined := fixedNow.AddDate(0, 0, -30)
		dir := &stubDirectory{users: map[string]user.User{
			"emp-1": employee("emp-1", user.GenderMale, joined),
		}}
		svc := newTestService(dir, &stubHistory{}, &stubSubmitter{})

		_, err := svc.Submit(context.Background(), "emp-1", leave.SubmitLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "2026-09-10",
			EndDate:   "2026-09-10",
			Reason:    "errand",
		})

		var probation *leave.ProbationActiveError
		require.ErrorAs(t, err, &probation)
		assert.Equal(t, 60, probation.DaysRemaining)
	})

	t.Run("enforces the yearly quota across approved leaves", func(t *testing.T) {
		dir := &stubDirectory{users: map[string]user.User{
			"emp-1": employee("emp-1", user.GenderMale, tenured),
		}}
		hist := &stubHistory{approved: []request.Request{{
			RequesterID: "emp-1",
			Type:        request.TypeLeave,
			Status:      request.StatusApproved,
			Payload: request.Payload{Leave: &request.LeavePayload{
				LeaveType: leave.TypeCasual,
				StartDate: "2026-03-02",
				EndDate:   "2026-03-09",
				Days:      8,
			}},
		}}}
		svc := newTestService(dir, hist, &stubSubmitter{})

		_, err := svc.Submit(context.Background(), "emp-1", leave.SubmitLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "2026-09-10",
			EndDate:   "2026-09-12",
			Reason:    "trip",
		})

		var quota *leave.QuotaExceededError
		require.ErrorAs(t, err, &quota)
		assert.Equal(t, 3, quota.Requested)
		assert.Equal(t, 2, quota.Remaining)
	})

	t.Run("gender gates maternity and paternity leave", func(t *testing.T) {
		dir := &stubDirectory{users: map[string]user.User{
			"emp-m": employee("emp-m", user.GenderMale, tenured),
			"emp-f": employee("emp-f", user.GenderFemale, tenured),
		}}
		svc := newTestService(dir, &stubHistory{}, &stubSubmitter{})

		_, err := svc.Submit(context.Background(), "emp-m", leave.SubmitLeaveRequest{
			LeaveType: leave.TypeMaternity,
			StartDate: "2026-09-10",
			EndDate:   "2026-12-08",
			Reason:    "maternity",
		})
		assert.ErrorIs(t, err, leave.ErrIneligibleLeaveType)

		_, err = svc.Submit(context.Background(), "emp-f", leave.SubmitLeaveRequest{
			LeaveType: leave.TypePaternity,
			StartDate: "2026-09-10",
			EndDate:   "2026-09-19",
			Reason:    "paternity",
		})
		assert.ErrorIs(t, err, leave.ErrIneligibleLeaveType)
	})

	t.Run("rejects an inverted date range", func(t *testing.T) {
		dir := &stubDirectory{users: map[string]user.User{
			"emp-1": employee("emp-1", user.GenderMale, tenured),
		}}
		svc := newTestService(dir, &stubHistory{}, &stubSubmitter{})

		_, err := svc.Submit(context.Background(), "emp-1", leave.SubmitLeaveRequest{
			LeaveType: leave.TypeCasual,
			StartDate: "2026-09-12",
			EndDate:   "2026-09-10",
			Reason:    "trip",
		})

		assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
	})

	t.Run("rejects an unknown leave type", func(t *testing.T) {
		dir := &stubDirectory{users: map[string]user.User{
			"emp-1": employee("emp-1", user.GenderMale, tenured),
		}}
		svc := newTestService(dir, &stubHistory{}, &stubSubmitter{})

		_, err := svc.Submit(context.Background(), "emp-1", leave.SubmitLeaveRequest{
			LeaveType: "Sabbatical",
			StartDate: "2026-09-10",
			EndDate:   "2026-09-12",
			Reason:    "break",
		})

		assert.ErrorIs(t, err, leave.ErrUnknownLeaveType)
	})
}

func TestService_Balances(t *testing.T) {
	tenured := fixedNow.AddDate(-1, 0, 0)

	t.Run("reports used and remaining days per type", func(t *testing.T) {
		dir := &stubDirectory{users: map[string]user.User{
			"emp-1": employee("emp-1", user.GenderFemale, tenured),
		}}
		hist := &stubHistory{approved: []request.Request{{
			RequesterID: "emp-1",
			Type:        request.TypeLeave,
			Status:      request.StatusApproved,
			Payload: request.Payload{Leave: &request.LeavePayload{
				LeaveType: leave.TypeMedical,
				StartDate: "2026-02-02",
				EndDate:   "2026-02-05",
				Days:      4,
			}},
		}}}
		svc := newTestService(dir, hist, &stubSubmitter{})

		balances, err := svc.Balances(context.Background(), "emp-1", 2026)

		require.NoError(t, err)
		byType := make(map[string]leave.Balance, len(balances))
		for _, b := range balances {
			byType[b.Type] = b
		}

		assert.Equal(t, 6, byType[leave.TypeMedical].Remaining)
		assert.Equal(t, 10, byType[leave.TypeCasual].Remaining)
		// A female employee sees maternity but not paternity.
		assert.Contains(t, byType, leave.TypeMaternity)
		assert.NotContains(t, byType, leave.TypePaternity)
	})
}
