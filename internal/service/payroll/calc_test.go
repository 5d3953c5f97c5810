package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
)

func TestMonthlyIncomeTax(t *testing.T) {
	tests := []struct {
		name    string
		monthly int
		want    int
	}{
		{"below the taxable floor", 40_000, 0},
		{"exactly at the floor", 50_000, 0},
		{"first slab", 80_000, 1500},          // annual 960k: 5% of 360k = 18k / 12
		{"second slab", 150_000, 10_000},      // annual 1.8M: 30k + 15% of 600k = 120k / 12
		{"third slab", 250_000, 31_667},       // annual 3M: 180k + 25% of 800k = 380k / 12
		{"fourth slab", 300_000, 45_833},      // annual 3.6M: 430k + 30% of 400k = 550k / 12
		{"top slab", 500_000, 113_750},        // annual 6M: 700k + 35% of 1.9M = 1.365M / 12
		{"zero salary", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthlyIncomeTax(tt.monthly))
		})
	}
}

func TestProvidentFund(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	base := user.User{
		BaseSalary:  120_000,
		PFStatus:    user.PFActive,
		JoiningDate: now.AddDate(-2, 0, 0),
	}

	t.Run("enrolled past one year deducts half a month per year", func(t *testing.T) {
		assert.Equal(t, 5000, ProvidentFund(base, now))
	})

	t.Run("not enrolled deducts nothing", func(t *testing.T) {
		u := base
		u.PFStatus = user.PFInactive
		assert.Equal(t, 0, ProvidentFund(u, now))
	})

	t.Run("under one year of service deducts nothing", func(t *testing.T) {
		u := base
		u.JoiningDate = now.AddDate(0, -6, 0)
		assert.Equal(t, 0, ProvidentFund(u, now))
	})
}

func TestLatePenalty(t *testing.T) {
	t.Run("fewer than three lates is free", func(t *testing.T) {
		assert.Equal(t, 0, LatePenalty(90_000, 2))
	})

	t.Run("every three lates costs a day's pay", func(t *testing.T) {
		assert.Equal(t, 3000, LatePenalty(90_000, 3))
		assert.Equal(t, 3000, LatePenalty(90_000, 5))
		assert.Equal(t, 6000, LatePenalty(90_000, 6))
	})
}
