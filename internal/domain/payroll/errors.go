package payroll

import "errors"

var (
	ErrPayslipNotFound = errors.New("payslip not found")
	ErrPayslipExists   = errors.New("payslip already generated for this period")
	ErrInvalidPeriod   = errors.New("period must be YYYY-MM")
)
