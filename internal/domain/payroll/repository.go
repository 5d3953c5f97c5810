package payroll

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, p Payslip) (Payslip, error)
	GetByUserAndPeriod(ctx context.Context, userID, period string) (Payslip, error)
	ListByUser(ctx context.Context, userID string) ([]Payslip, error)
	ListByPeriod(ctx context.Context, period string) ([]Payslip, error)
}
