package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
	StatusOnLeave Status = "on_leave"
)

// Record is one user-day of attendance. Date is the working date the shift
// belongs to, so an evening shift checking out past midnight still counts
// against the day it started.
type Record struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Date           string     `json:"date"` // YYYY-MM-DD
	Shift          string     `json:"shift"`
	CheckInAt      time.Time  `json:"check_in_at"`
	CheckOutAt     *time.Time `json:"check_out_at,omitempty"`
	Status         Status     `json:"status"`
	LateMinutes    int        `json:"late_minutes"`
	AutoCheckedOut bool       `json:"auto_checked_out"`
	Location       *string    `json:"location,omitempty"`

	// Daily performance figures, reported at check-out
	ClaimsProcessed  int    `json:"claims_processed"`
	RevenueCollected int    `json:"revenue_collected"`
	ShortfallReason  string `json:"shortfall_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MonthlySummary aggregates a user's records for payroll and reporting.
type MonthlySummary struct {
	UserID       string `json:"user_id"`
	Period       string `json:"period"` // YYYY-MM
	PresentDays  int    `json:"present_days"`
	LateDays     int    `json:"late_days"`
	AbsentDays   int    `json:"absent_days"`
	LeaveDays    int    `json:"leave_days"`
	TotalClaims  int    `json:"total_claims"`
	TotalRevenue int    `json:"total_revenue"`
}
