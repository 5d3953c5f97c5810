package approval

import (
	"context"
	"fmt"

	"github.com/mymbrcm/hr-portal-go/internal/domain/approval"
	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
)

// StageResolver finds the next approval level above a given one that has at
// least one eligible approver. Operational levels look inside the requester's
// department; executive levels look organization-wide. The CEO level is a
// guaranteed backstop so resolution always terminates.
type StageResolver struct {
	policies *policy.Store
	users    user.Repository
}

func NewStageResolver(policies *policy.Store, users user.Repository) *StageResolver {
	return &StageResolver{policies: policies, users: users}
}

// Resolve walks levels fromLevel+1 upward and returns the first level whose
// approver pool is non-empty. Levels with no role names are skipped without a
// directory query. If nothing below MaxLevel resolves, MaxLevel is returned.
func (r *StageResolver) Resolve(ctx context.Context, fromLevel int, department string) (int, error) {
	p := r.policies.Snapshot()

	for candidate := fromLevel + 1; candidate < policy.MaxLevel; candidate++ {
		roles := p.Hierarchy.RolesAt(candidate)
		if len(roles) == 0 {
			continue
		}

		var dept *string
		if policy.IsOperational(candidate) {
			dept = &department
		}

		approvers, err := r.users.FindByRoles(ctx, roles, dept)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", approval.ErrDependencyUnavailable, err)
		}
		if len(approvers) > 0 {
			return candidate, nil
		}
	}

	return policy.MaxLevel, nil
}

// PoolAt returns the active approvers holding the given stage for a
// requester's department.
func (r *StageResolver) PoolAt(ctx context.Context, stage int, department string) ([]user.User, error) {
	p := r.policies.Snapshot()

	roles := p.Hierarchy.RolesAt(stage)
	if len(roles) == 0 {
		return nil, nil
	}

	var dept *string
	if policy.IsOperational(stage) {
		dept = &department
	}

	approvers, err := r.users.FindByRoles(ctx, roles, dept)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", approval.ErrDependencyUnavailable, err)
	}
	return approvers, nil
}
