package payroll

import (
	"math"
	"time"

	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
)

// Pakistani income tax slabs for salaried individuals, applied on annual
// income. Each slab adds a fixed amount plus a rate over its threshold.
type taxSlab struct {
	threshold int // annual income above this amount
	fixed     int
	rate      float64
}

var taxSlabs = []taxSlab{
	{threshold: 4_100_000, fixed: 700_000, rate: 0.35},
	{threshold: 3_200_000, fixed: 430_000, rate: 0.30},
	{threshold: 2_200_000, fixed: 180_000, rate: 0.25},
	{threshold: 1_200_000, fixed: 30_000, rate: 0.15},
	{threshold: 600_000, fixed: 0, rate: 0.05},
}

// MonthlyIncomeTax computes the monthly withholding for a monthly salary.
func MonthlyIncomeTax(monthlySalary int) int {
	annual := monthlySalary * 12
	if annual <= 600_000 {
		return 0
	}

	for _, slab := range taxSlabs {
		if annual > slab.threshold {
			annualTax := float64(slab.fixed) + slab.rate*float64(annual-slab.threshold)
			return int(math.Round(annualTax / 12))
		}
	}
	return 0
}

// pfMinTenureDays is the service length required before provident fund
// deductions start.
const pfMinTenureDays = 365

// ProvidentFund is half a basic salary per year, deducted monthly, for
// enrolled employees past their first year.
func ProvidentFund(u user.User, now time.Time) int {
	if u.PFStatus != user.PFActive {
		return 0
	}
	if u.TenureDays(now) < pfMinTenureDays {
		return 0
	}
	return int(math.Round(float64(u.BaseSalary) / 24))
}

// lateDaysPerPenalty is how many late arrivals convert into one day's pay
// deducted.
const lateDaysPerPenalty = 3

// LatePenalty deducts one working day's pay per every three late arrivals in
// the period.
func LatePenalty(baseSalary, lateDays int) int {
	if lateDays < lateDaysPerPenalty {
		return 0
	}
	dayRate := float64(baseSalary) / 30
	return int(math.Round(dayRate * float64(lateDays/lateDaysPerPenalty)))
}
