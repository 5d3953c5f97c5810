package payroll

import (
	"time"
)

// Payslip is one user-month of computed pay. All amounts are whole PKR.
type Payslip struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Period      string `json:"period"` // YYYY-MM

	BaseSalary    int `json:"base_salary"`
	IncomeTax     int `json:"income_tax"`
	ProvidentFund int `json:"provident_fund"`
	LatePenalty   int `json:"late_penalty"`
	NetPay        int `json:"net_pay"`

	LateDays int `json:"late_days"`

	FilePath    string    `json:"file_path,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}
