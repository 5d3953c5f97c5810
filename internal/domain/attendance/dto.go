package attendance

import (
	"github.com/mymbrcm/hr-portal-go/internal/pkg/validator"
)

// CheckInRequest carries the optional self-reported location. No fence
// enforcement happens server-side; the value is stored for review only.
type CheckInRequest struct {
	Location *string `json:"location,omitempty"`
}

type CheckOutRequest struct {
	ClaimsProcessed  int `json:"claims_processed"`
	RevenueCollected int `json:"revenue_collected"`

	// Required when claims_processed falls short of the user's daily target.
	ShortfallReason string `json:"shortfall_reason,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClaimsProcessed < 0 {
		errs = append(errs, validator.ValidationError{Field: "claims_processed", Message: "claims_processed must not be negative"})
	}
	if r.RevenueCollected < 0 {
		errs = append(errs, validator.ValidationError{Field: "revenue_collected", Message: "revenue_collected must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
