package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mymbrcm/hr-portal-go/internal/domain/attendance"
	"github.com/mymbrcm/hr-portal-go/internal/domain/notification"
	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
)

// StagePool is the slice of the routing resolver used to address
// low-performance alerts to the employee's next approval level.
type StagePool interface {
	Resolve(ctx context.Context, fromLevel int, department string) (int, error)
	PoolAt(ctx context.Context, stage int, department string) ([]user.User, error)
}

// Alerter delivers notifications without blocking.
type Alerter interface {
	Enqueue(n notification.Notification)
	EnqueueMany(recipientIDs []string, n notification.Notification)
}

type Directory interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type Service struct {
	logger   *slog.Logger
	policies *policy.Store
	records  attendance.Repository
	users    Directory
	pool     StagePool
	alerts   Alerter

	now func() time.Time
}

func NewService(
	logger *slog.Logger,
	policies *policy.Store,
	records attendance.Repository,
	users Directory,
	pool StagePool,
	alerts Alerter,
) *Service {
	return &Service{
		logger:   logger,
		policies: policies,
		records:  records,
		users:    users,
		pool:     pool,
		alerts:   alerts,
		now:      time.Now,
	}
}

// CheckIn opens today's record, marking it late when the check-in lands past
// the shift start plus the grace window.
func (s *Service) CheckIn(ctx context.Context, userID string, dto attendance.CheckInRequest) (attendance.Record, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return attendance.Record{}, err
	}

	p := s.policies.Snapshot()
	shiftName := u.Shift
	if shiftName == "" {
		shiftName = p.DefaultShift
	}
	shift, ok := p.Shifts[shiftName]
	if !ok {
		return attendance.Record{}, attendance.ErrUnknownShift
	}

	now := s.now()
	date := workingDate(now, shift)

	if _, err := s.records.GetByUserAndDate(ctx, userID, date); err == nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	} else if !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.Record{}, err
	}

	status := attendance.StatusPresent
	late := lateMinutes(now, date, shift, p.GraceMinutes)
	if late > 0 {
		status = attendance.StatusLate
	}

	rec := attendance.Record{
		ID:          uuid.New().String(),
		UserID:      userID,
		Date:        date,
		Shift:       shiftName,
		CheckInAt:   now,
		Status:      status,
		LateMinutes: late,
		Location:    dto.Location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.records.Create(ctx, rec)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("creating attendance record: %w", err)
	}

	s.logger.Info("checked in",
		slog.String("user_id", userID),
		slog.String("date", date),
		slog.String("status", string(status)),
	)
	return created, nil
}

// CheckOut closes today's record with the day's performance figures. A claims
// count under the user's daily target raises an alert to the next approval
// level above them.
func (s *Service) CheckOut(ctx context.Context, userID string, dto attendance.CheckOutRequest) (attendance.Record, error) {
	if err := dto.Validate(); err != nil {
		return attendance.Record{}, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return attendance.Record{}, err
	}

	p := s.policies.Snapshot()
	shiftName := u.Shift
	if shiftName == "" {
		shiftName = p.DefaultShift
	}
	shift, ok := p.Shifts[shiftName]
	if !ok {
		return attendance.Record{}, attendance.ErrUnknownShift
	}

	now := s.now()
	date := workingDate(now, shift)

	rec, err := s.records.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.Record{}, attendance.ErrNotCheckedIn
		}
		return attendance.Record{}, err
	}
	if rec.CheckOutAt != nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}

	missedTarget := u.DailyClaimTarget > 0 && dto.ClaimsProcessed < u.DailyClaimTarget
	if missedTarget && strings.TrimSpace(dto.ShortfallReason) == "" {
		return attendance.Record{}, attendance.ErrReasonRequired
	}

	rec.CheckOutAt = &now
	rec.ClaimsProcessed = dto.ClaimsProcessed
	rec.RevenueCollected = dto.RevenueCollected
	rec.UpdatedAt = now
	if missedTarget {
		rec.ShortfallReason = dto.ShortfallReason
	}

	if err := s.records.Update(ctx, rec); err != nil {
		return attendance.Record{}, fmt.Errorf("closing attendance record: %w", err)
	}

	if missedTarget {
		s.alertLowPerformance(ctx, u, dto.ClaimsProcessed, dto.ShortfallReason)
	}
	return rec, nil
}

// AutoCheckOut closes every record of the given date that was never checked
// out. It backs the end-of-day scheduler job.
func (s *Service) AutoCheckOut(ctx context.Context, date string) (int, error) {
	open, err := s.records.ListOpen(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("listing open records: %w", err)
	}

	now := s.now()
	closed := 0
	for _, rec := range open {
		rec.CheckOutAt = &now
		rec.AutoCheckedOut = true
		rec.UpdatedAt = now
		if err := s.records.Update(ctx, rec); err != nil {
			s.logger.Error("auto check-out failed",
				slog.String("record_id", rec.ID),
				slog.Any("error", err),
			)
			continue
		}
		closed++
	}

	if closed > 0 {
		s.logger.Info("auto check-out completed",
			slog.String("date", date),
			slog.Int("closed", closed),
		)
	}
	return closed, nil
}

func (s *Service) History(ctx context.Context, userID, period string) ([]attendance.Record, error) {
	return s.records.ListByUserAndPeriod(ctx, userID, period)
}

// Summary aggregates a user's records for one YYYY-MM period.
func (s *Service) Summary(ctx context.Context, userID, period string) (attendance.MonthlySummary, error) {
	records, err := s.records.ListByUserAndPeriod(ctx, userID, period)
	if err != nil {
		return attendance.MonthlySummary{}, err
	}

	sum := attendance.MonthlySummary{UserID: userID, Period: period}
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			sum.PresentDays++
		case attendance.StatusLate:
			sum.PresentDays++
			sum.LateDays++
		case attendance.StatusAbsent:
			sum.AbsentDays++
		case attendance.StatusOnLeave:
			sum.LeaveDays++
		}
		sum.TotalClaims += r.ClaimsProcessed
		sum.TotalRevenue += r.RevenueCollected
	}
	return sum, nil
}

func (s *Service) alertLowPerformance(ctx context.Context, u user.User, claims int, reason string) {
	p := s.policies.Snapshot()
	level, ok := p.Hierarchy.LevelOf(u.Role)
	if !ok {
		return
	}

	stage, err := s.pool.Resolve(ctx, level, u.Department)
	if err != nil {
		s.logger.Warn("low-performance alert routing failed", slog.Any("error", err))
		return
	}
	approvers, err := s.pool.PoolAt(ctx, stage, u.Department)
	if err != nil {
		s.logger.Warn("low-performance alert pool lookup failed", slog.Any("error", err))
		return
	}

	ids := make([]string, 0, len(approvers))
	for _, a := range approvers {
		ids = append(ids, a.ID)
	}
	if len(ids) == 0 {
		return
	}

	s.alerts.EnqueueMany(ids, notification.Notification{
		SenderID: &u.ID,
		Type:     notification.TypeLowPerformance,
		Title:    "Low daily performance",
		Message:  fmt.Sprintf("%s processed %d of %d target claims today: %s", u.FullName(), claims, u.DailyClaimTarget, reason),
	})
}

// workingDate maps a wall-clock instant to the shift date it belongs to.
// An overnight shift's early-morning hours count against the previous day.
func workingDate(now time.Time, shift policy.Shift) string {
	start, _ := time.Parse("15:04", shift.Start)
	end, _ := time.Parse("15:04", shift.End)

	crossesMidnight := end.Before(start)
	if crossesMidnight {
		endMinutes := end.Hour()*60 + end.Minute()
		nowMinutes := now.Hour()*60 + now.Minute()
		// A 01:30 check-out on an 18:00-03:00 shift belongs to yesterday.
		if nowMinutes <= endMinutes {
			return now.AddDate(0, 0, -1).Format("2006-01-02")
		}
	}
	return now.Format("2006-01-02")
}

// lateMinutes returns how many minutes past the grace window the check-in
// landed, or zero when on time.
func lateMinutes(now time.Time, date string, shift policy.Shift, graceMinutes int) int {
	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return 0
	}
	start, err := time.Parse("15:04", shift.Start)
	if err != nil {
		return 0
	}

	shiftStart := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, now.Location())
	deadline := shiftStart.Add(time.Duration(graceMinutes) * time.Minute)
	if !now.After(deadline) {
		return 0
	}
	return int(now.Sub(shiftStart).Minutes())
}
