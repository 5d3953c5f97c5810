package user

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

type PFStatus string

const (
	PFActive   PFStatus = "Active"
	PFInactive PFStatus = "Inactive"
)

// User represents an employee account in the directory. Role and Department
// drive approval routing; the rest is profile and compensation data.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Gender    Gender

	Role        string
	Department  string
	Designation string
	Shift       string

	JoiningDate time.Time
	Status      Status

	BaseSalary int
	PFStatus   PFStatus

	Phone   *string
	Address *string

	// Bank details, mutated only through an approved bank-change request
	BankName      *string
	AccountNumber *string
	IBAN          *string

	DailyClaimTarget int
	RevenueTarget    int

	HasEditedProfile bool
	PasswordHash     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u User) IsActive() bool {
	return u.Status == StatusActive
}

// TenureDays returns whole days elapsed since joining.
func (u User) TenureDays(now time.Time) int {
	if now.Before(u.JoiningDate) {
		return 0
	}
	return int(now.Sub(u.JoiningDate).Hours() / 24)
}
