package response

import (
	"errors"
	"net/http"

	"github.com/mymbrcm/hr-portal-go/internal/domain/announcement"
	"github.com/mymbrcm/hr-portal-go/internal/domain/approval"
	"github.com/mymbrcm/hr-portal-go/internal/domain/attendance"
	"github.com/mymbrcm/hr-portal-go/internal/domain/auth"
	"github.com/mymbrcm/hr-portal-go/internal/domain/leave"
	"github.com/mymbrcm/hr-portal-go/internal/domain/notification"
	"github.com/mymbrcm/hr-portal-go/internal/domain/payroll"
	"github.com/mymbrcm/hr-portal-go/internal/domain/request"
	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var probation *leave.ProbationActiveError
	if errors.As(err, &probation) {
		BadRequest(w, probation.Error(), nil)
		return
	}
	var quota *leave.QuotaExceededError
	if errors.As(err, &quota) {
		BadRequest(w, quota.Error(), nil)
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrEmailNotVerified):
		Forbidden(w, "Email not verified")

	// Users
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrEmailNotAllowed):
		Forbidden(w, "Email address is not on the company domain")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, user.ErrUnknownRole):
		BadRequest(w, "Role is not in the hierarchy", nil)
	case errors.Is(err, user.ErrUnknownDepartment):
		BadRequest(w, "Department is not configured", nil)

	// Requests and routing
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, request.ErrInvalidPayload),
		errors.Is(err, request.ErrUnknownType):
		BadRequest(w, "Request payload does not match its type", nil)
	case errors.Is(err, approval.ErrUnauthorized):
		Forbidden(w, "Not an approver for this stage")
	case errors.Is(err, approval.ErrInvalidStateTransition):
		Conflict(w, "Request has already been decided")
	case errors.Is(err, approval.ErrConflict),
		errors.Is(err, request.ErrVersionConflict):
		Conflict(w, "Request was decided concurrently, reload and retry")
	case errors.Is(err, approval.ErrDependencyUnavailable):
		ServiceUnavailable(w, "Service temporarily unavailable")

	// Leave
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date is before start date", nil)
	case errors.Is(err, leave.ErrUnknownLeaveType):
		BadRequest(w, "Unknown leave type", nil)
	case errors.Is(err, leave.ErrIneligibleLeaveType):
		Forbidden(w, "Not eligible for this leave type")

	// Attendance
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No open check-in for today", nil)
	case errors.Is(err, attendance.ErrUnknownShift):
		BadRequest(w, "Shift is not configured", nil)
	case errors.Is(err, attendance.ErrReasonRequired):
		BadRequest(w, "A reason is required when the daily claim target is missed", nil)

	// Payroll
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrPayslipExists):
		Conflict(w, "Payslip already generated for this period")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Period must be YYYY-MM", nil)

	// Notifications and announcements
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, announcement.ErrAnnouncementNotFound):
		NotFound(w, "Announcement not found")
	case errors.Is(err, announcement.ErrNotAuthor):
		Forbidden(w, "Announcement belongs to another author")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
