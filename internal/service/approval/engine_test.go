package approval

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mymbrcm/hr-portal-go/internal/domain/approval"
	"github.com/mymbrcm/hr-portal-go/internal/domain/request"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
)

func TestEngine_Submit(t *testing.T) {
	t.Run("initial stage resolves above the requester's own level", func(t *testing.T) {
		users := newMemUserRepo(
			testUser("emp-1", "Employee", "Billing"),
			testUser("tl-1", "Team Lead", "Billing"),
		)
		notifier := &recordingNotifier{}
		engine := newTestEngine(users, newMemRequestRepo(), notifier)

		requester, _ := users.GetByID(context.Background(), "emp-1")
		req, err := engine.Submit(context.Background(), requester, request.TypeLeave, leavePayload())

		require.NoError(t, err)
		assert.Equal(t, request.StatusPending, req.Status)
		assert.Equal(t, 2, req.CurrentStage)
		assert.Equal(t, 1, req.Version)
		require.Len(t, notifier.advanced, 1)
		assert.Equal(t, []string{"tl-1"}, notifier.advanced[0].ids)
	})

	t.Run("a manager's request skips straight past operational levels", func(t *testing.T) {
		users := newMemUserRepo(
			testUser("mgr-1", "Manager", "Billing"),
			testUser("hr-1", "HR Executive", "HR"),
		)
		engine := newTestEngine(users, newMemRequestRepo(), nil)

		requester, _ := users.GetByID(context.Background(), "mgr-1")
		req, err := engine.Submit(context.Background(), requester, request.TypeLeave, leavePayload())

		require.NoError(t, err)
		assert.Equal(t, 5, req.CurrentStage)
	})

	t.Run("rejects a payload that does not match the type", func(t *testing.T) {
		users := newMemUserRepo(testUser("emp-1", "Employee", "Billing"))
		engine := newTestEngine(users, newMemRequestRepo(), nil)

		requester, _ := users.GetByID(context.Background(), "emp-1")
		_, err := engine.Submit(context.Background(), requester, request.TypeBankUpdate, leavePayload())

		assert.ErrorIs(t, err, request.ErrInvalidPayload)
	})

	t.Run("lands on the CEO level when no one else can approve", func(t *testing.T) {
		users := newMemUserRepo(testUser("emp-1", "Employee", "Billing"))
		engine := newTestEngine(users, newMemRequestRepo(), nil)

		requester, _ := users.GetByID(context.Background(), "emp-1")
		req, err := engine.Submit(context.Background(), requester, request.TypeLeave, leavePayload())

		require.NoError(t, err)
		assert.Equal(t, policy.MaxLevel, req.CurrentStage)
	})
}

func TestEngine_Approve(t *testing.T) {
	t.Run("walks the full chain to approved", func(t *testing.T) {
		users := newMemUserRepo(
			testUser("emp-1", "Employee", "Billing"),
			testUser("tl-1", "Team Lead", "Billing"),
			testUser("mgr-1", "Manager", "Billing"),
			testUser("ceo-1", "CEO", "HR"),
		)
		notifier := &recordingNotifier{}
		engine := newTestEngine(users, newMemRequestRepo(), notifier)
		ctx := context.Background()

		requester, _ := users.GetByID(ctx, "emp-1")
		req, err := engine.Submit(ctx, requester, request.TypeLeave, leavePayload())
		require.NoError(t, err)
		require.Equal(t, 2, req.CurrentStage)

		// No supervisor in Billing, so the team lead's approval jumps to
		// the manager at level 4.
		teamLead, _ := users.GetByID(ctx, "tl-1")
		req, err = engine.Approve(ctx, teamLead, req.ID, "ok")
		require.NoError(t, err)
		assert.Equal(t, request.StatusPending, req.Status)
		assert.Equal(t, 4, req.CurrentStage)

		// No executives between 4 and 9, so the manager's approval goes to
		// the CEO backstop.
		manager, _ := users.GetByID(ctx, "mgr-1")
		req, err = engine.Approve(ctx, manager, req.ID, "")
		require.NoError(t, err)
		assert.Equal(t, request.StatusPending, req.Status)
		assert.Equal(t, policy.MaxLevel, req.CurrentStage)

		ceo, _ := users.GetByID(ctx, "ceo-1")
		req, err = engine.Approve(ctx, ceo, req.ID, "final")
		require.NoError(t, err)
		assert.Equal(t, request.StatusApproved, req.Status)

		require.Len(t, req.StageHistory, 3)
		assert.Equal(t, []int{2, 4, 9}, []int{
			req.StageHistory[0].Stage,
			req.StageHistory[1].Stage,
			req.StageHistory[2].Stage,
		})
		require.Len(t, notifier.resolved, 1)
		assert.Equal(t, request.StatusApproved, notifier.resolved[0].Status)
	})

	t.Run("the current stage and department gate who may decide", func(t *testing.T) {
		users := newMemUserRepo(
			testUser("emp-1", "Employee", "Billing"),
			testUser("tl-billing", "Team Lead", "Billing"),
			testUser("tl-it", "Team Lead", "IT"),
			testUser("mgr-1", "Manager", "Billing"),
		)
		engine := newTestEngine(users, newMemRequestRepo(), nil)
		ctx := context.Background()

		requester, _ := users.GetByID(ctx, "emp-1")
		req, err := engine.Submit(ctx, requester, request.TypeLeave, leavePayload())
		require.NoError(t, err)
		require.Equal(t, 2, req.CurrentStage)

		// Wrong level
		manager, _ := users.GetByID(ctx, "mgr-1")
		_, err = engine.Approve(ctx, manager, req.ID, "")
		assert.ErrorIs(t, err, approval.ErrUnauthorized)

		// Right level, wrong department
		outsider, _ := users.GetByID(ctx, "tl-it")
		_, err = engine.Approve(ctx, outsider, req.ID, "")
		assert.ErrorIs(t, err, approval.ErrUnauthorized)

		teamLead, _ := users.GetByID(ctx, "tl-billing")
		_, err = engine.Approve(ctx, teamLead, req.ID, "")
		assert.NoError(t, err)
	})

	t.Run("terminal requests cannot be decided again", func(t *testing.T) {
		users := newMemUserRepo(
			testUser("emp-1", "Employee", "Billing"),
			testUser("ceo-1", "CEO", "HR"),
		)
		engine := newTestEngine(users, newMemRequestRepo(), nil)
		ctx := context.Background()

		requester, _ := users.GetByID(ctx, "emp-1")
		req, err := engine.Submit(ctx, requester, request.TypeLeave, leavePayload())
		require.NoError(t, err)

		ceo, _ := users.GetByID(ctx, "ceo-1")
		_, err = engine.Approve(ctx, ceo, req.ID, "")
		require.NoError(t, err)

		_, err = engine.Approve(ctx, ceo, req.ID, "")
		assert.ErrorIs(t, err, approval.ErrInvalidStateTransition)

		_, err = engine.Reject(ctx, ceo, req.ID, "")
		assert.ErrorIs(t, err, approval.ErrInvalidStateTransition)
	})

	t.Run("concurrent decisions on one stage resolve to a single winner", func(t *testing.T) {
		users := newMemUserRepo(
			testUser("emp-1", "Employee", "Billing"),
			testUser("tl-a", "Team Lead", "Billing"),
			testUser("tl-b", "Team Lead", "Billing"),
			testUser("ceo-1", "CEO", "HR"),
		)
		requests := newMemRequestRepo()
		engine := newTestEngine(users, requests, nil)
		ctx := context.Background()

		requester, _ := users.GetByID(ctx, "emp-1")
		req, err := engine.Submit(ctx, requester, request.TypeLeave, leavePayload())
		require.NoError(t, err)

		approverA, _ := users.GetByID(ctx, "tl-a")
		approverB, _ := users.GetByID(ctx, "tl-b")

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, errs[0] = engine.Approve(ctx, approverA, req.ID, "")
		}()
		go func() {
			defer wg.Done()
			_, errs[1] = engine.Reject(ctx, approverB, req.ID, "")
		}()
		wg.Wait()

		var conflicts, wins int
		for _, err := range errs {
			switch {
			case err == nil:
				wins++
			case isDecisionConflict(err):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, 1, conflicts)

		stored, err := requests.GetByID(ctx, req.ID)
		require.NoError(t, err)
		assert.Len(t, stored.StageHistory, 1)
	})
}

// isDecisionConflict accepts both failure shapes of the losing goroutine:
// a version conflict if it read before the winner wrote, or a state error if
// it read after.
func isDecisionConflict(err error) bool {
	return errors.Is(err, approval.ErrConflict) || errors.Is(err, approval.ErrInvalidStateTransition)
}

func TestEngine_Reject(t *testing.T) {
	t.Run("rejection is terminal at any stage", func(t *testing.T) {
		users := newMemUserRepo(
			testUser("emp-1", "Employee", "Billing"),
			testUser("tl-1", "Team Lead", "Billing"),
			testUser("ceo-1", "CEO", "HR"),
		)
		notifier := &recordingNotifier{}
		engine := newTestEngine(users, newMemRequestRepo(), notifier)
		ctx := context.Background()

		requester, _ := users.GetByID(ctx, "emp-1")
		req, err := engine.Submit(ctx, requester, request.TypeLeave, leavePayload())
		require.NoError(t, err)

		teamLead, _ := users.GetByID(ctx, "tl-1")
		req, err = engine.Reject(ctx, teamLead, req.ID, "overlapping leave")
		require.NoError(t, err)

		assert.Equal(t, request.StatusRejected, req.Status)
		assert.Equal(t, 2, req.CurrentStage)
		require.Len(t, req.StageHistory, 1)
		assert.Equal(t, request.DecisionRejected, req.StageHistory[0].Decision)
		assert.Equal(t, "overlapping leave", req.StageHistory[0].Note)
		require.Len(t, notifier.resolved, 1)
	})
}

func TestEngine_Queue(t *testing.T) {
	t.Run("operational approvers see only their department", func(t *testing.T) {
		users := newMemUserRepo(
			testUser("emp-billing", "Employee", "Billing"),
			testUser("emp-it", "Employee", "IT"),
			testUser("tl-billing", "Team Lead", "Billing"),
			testUser("tl-it", "Team Lead", "IT"),
		)
		engine := newTestEngine(users, newMemRequestRepo(), nil)
		ctx := context.Background()

		billingEmp, _ := users.GetByID(ctx, "emp-billing")
		itEmp, _ := users.GetByID(ctx, "emp-it")
		_, err := engine.Submit(ctx, billingEmp, request.TypeLeave, leavePayload())
		require.NoError(t, err)
		_, err = engine.Submit(ctx, itEmp, request.TypeLeave, leavePayload())
		require.NoError(t, err)

		teamLead, _ := users.GetByID(ctx, "tl-billing")
		queue, err := engine.Queue(ctx, teamLead)

		require.NoError(t, err)
		require.Len(t, queue, 1)
		assert.Equal(t, "emp-billing", queue[0].RequesterID)
	})

	t.Run("executive approvers see every department", func(t *testing.T) {
		users := newMemUserRepo(
			testUser("emp-billing", "Employee", "Billing"),
			testUser("emp-it", "Employee", "IT"),
			testUser("hr-1", "HR Executive", "HR"),
		)
		engine := newTestEngine(users, newMemRequestRepo(), nil)
		ctx := context.Background()

		billingEmp, _ := users.GetByID(ctx, "emp-billing")
		itEmp, _ := users.GetByID(ctx, "emp-it")
		_, err := engine.Submit(ctx, billingEmp, request.TypeLeave, leavePayload())
		require.NoError(t, err)
		_, err = engine.Submit(ctx, itEmp, request.TypeLeave, leavePayload())
		require.NoError(t, err)

		executive, _ := users.GetByID(ctx, "hr-1")
		queue, err := engine.Queue(ctx, executive)

		require.NoError(t, err)
		assert.Len(t, queue, 2)
	})
}
