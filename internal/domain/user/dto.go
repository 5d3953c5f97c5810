package user

import (
	"github.com/mymbrcm/hr-portal-go/internal/pkg/validator"
)

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Gender    string `json:"gender"`
	DOB       string `json:"dob"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if r.Gender != string(GenderMale) && r.Gender != string(GenderFemale) {
		errs = append(errs, validator.ValidationError{Field: "gender", Message: "gender must be Male or Female"})
	}
	if _, ok := validator.IsValidDate(r.DOB); !ok {
		errs = append(errs, validator.ValidationError{Field: "dob", Message: "dob must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid address"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateProfileRequest covers the fields an employee may change directly.
// The first edit applies immediately; later edits route through approval.
type UpdateProfileRequest struct {
	ID      string  `json:"-"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

type UpdateBankDetailsRequest struct {
	ID            string  `json:"-"`
	BankName      *string `json:"bank_name,omitempty"`
	AccountNumber *string `json:"account_number,omitempty"`
	IBAN          *string `json:"iban,omitempty"`
}

// UpdateAssignmentRequest is the admin-side mutation: role, department,
// shift, designation and performance targets.
type UpdateAssignmentRequest struct {
	ID               string  `json:"-"`
	Role             *string `json:"role,omitempty"`
	Department       *string `json:"department,omitempty"`
	Designation      *string `json:"designation,omitempty"`
	Shift            *string `json:"shift,omitempty"`
	BaseSalary       *int    `json:"base_salary,omitempty"`
	PFStatus         *string `json:"pf_status,omitempty"`
	DailyClaimTarget *int    `json:"daily_claim_target,omitempty"`
	RevenueTarget    *int    `json:"revenue_target,omitempty"`
	Status           *string `json:"status,omitempty"`
}

func (r *UpdateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	}
	if r.BaseSalary != nil && *r.BaseSalary < 0 {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary must not be negative"})
	}
	if r.Status != nil && *r.Status != string(StatusActive) && *r.Status != string(StatusInactive) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be Active or Inactive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Profile is the API shape of a directory entry (no credentials).
type Profile struct {
	ID               string  `json:"id"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Email            string  `json:"email"`
	Gender           string  `json:"gender"`
	Role             string  `json:"role"`
	Department       string  `json:"department"`
	Designation      string  `json:"designation"`
	Shift            string  `json:"shift"`
	JoiningDate      string  `json:"joining_date"`
	Status           string  `json:"status"`
	BaseSalary       int     `json:"base_salary"`
	PFStatus         string  `json:"pf_status"`
	Phone            *string `json:"phone,omitempty"`
	Address          *string `json:"address,omitempty"`
	BankName         *string `json:"bank_name,omitempty"`
	AccountNumber    *string `json:"account_number,omitempty"`
	IBAN             *string `json:"iban,omitempty"`
	DailyClaimTarget int     `json:"daily_claim_target"`
	RevenueTarget    int     `json:"revenue_target"`
	HasEditedProfile bool    `json:"has_edited_profile"`
}

func ToProfile(u User) Profile {
	return Profile{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Email:            u.Email,
		Gender:           string(u.Gender),
		Role:             u.Role,
		Department:       u.Department,
		Designation:      u.Designation,
		Shift:            u.Shift,
		JoiningDate:      u.JoiningDate.Format("2006-01-02"),
		Status:           string(u.Status),
		BaseSalary:       u.BaseSalary,
		PFStatus:         string(u.PFStatus),
		Phone:            u.Phone,
		Address:          u.Address,
		BankName:         u.BankName,
		AccountNumber:    u.AccountNumber,
		IBAN:             u.IBAN,
		DailyClaimTarget: u.DailyClaimTarget,
		RevenueTarget:    u.RevenueTarget,
		HasEditedProfile: u.HasEditedProfile,
	}
}
