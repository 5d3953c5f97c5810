package leave

import (
	"math"
	"time"
)

// Leave types mirror the quota table in internal/policy.
const (
	TypeCasual    = "Casual"
	TypeMedical   = "Medical"
	TypeEmergency = "Emergency"
	TypeMaternity = "Maternity"
	TypePaternity = "Paternity"
)

// InclusiveDays counts both endpoints, so a single-day leave is 1 day.
func InclusiveDays(start, end time.Time) int {
	d := end.Sub(start).Hours() / 24
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d)) + 1
}

// Balance is one leave type's quota position for a user in a year.
type Balance struct {
	Type      string `json:"type"`
	Quota     int    `json:"quota"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}
