package user

import (
	"context"
)

// Repository is the user directory contract. FindByRoles backs the stage
// resolver: a nil department means an organization-wide (executive) lookup.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	FindByRoles(ctx context.Context, roles []string, department *string) ([]User, error)
	List(ctx context.Context, department *string) ([]User, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error
	UpdateBankDetails(ctx context.Context, req UpdateBankDetailsRequest) error
	UpdateAssignment(ctx context.Context, req UpdateAssignmentRequest) error
}
