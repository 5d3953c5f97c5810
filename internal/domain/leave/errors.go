package leave

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDateRange    = errors.New("end date is before start date")
	ErrUnknownLeaveType    = errors.New("unknown leave type")
	ErrIneligibleLeaveType = errors.New("not eligible for this leave type")
	ErrLeaveInPast         = errors.New("leave cannot start in the past")
)

// ProbationActiveError blocks leave submissions during probation.
type ProbationActiveError struct {
	DaysRemaining int
}

func (e *ProbationActiveError) Error() string {
	return fmt.Sprintf("probation period active, %d days remaining", e.DaysRemaining)
}

// QuotaExceededError reports how many days of the year's quota are left.
type QuotaExceededError struct {
	Type      string
	Requested int
	Remaining int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s leave quota exceeded: requested %d days, %d remaining", e.Type, e.Requested, e.Remaining)
}
