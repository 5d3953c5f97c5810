package attendance

import "errors"

var (
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out")
	ErrNotCheckedIn      = errors.New("no open check-in for today")
	ErrUnknownShift      = errors.New("shift is not configured")
	ErrReasonRequired    = errors.New("a reason is required when the daily claim target is missed")
)
