package request

import (
	"github.com/mymbrcm/hr-portal-go/internal/pkg/validator"
)

type SubmitRequest struct {
	Type    string  `json:"type"`
	Payload Payload `json:"payload"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	switch Type(r.Type) {
	case TypeLeave, TypeProfileUpdate, TypeBankUpdate, TypeDepartmental:
	default:
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of leave, profile_update, bank_update, departmental"})
	}

	if len(errs) == 0 {
		if err := r.Payload.ValidateFor(Type(r.Type)); err != nil {
			errs = append(errs, validator.ValidationError{Field: "payload", Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	Note string `json:"note,omitempty"`
}

// Response is the API shape of a request with its full audit trail.
type Response struct {
	ID                  string          `json:"id"`
	Type                string          `json:"type"`
	RequesterID         string          `json:"requester_id"`
	RequesterName       string          `json:"requester_name"`
	RequesterDepartment string          `json:"requester_department"`
	Status              string          `json:"status"`
	CurrentStage        int             `json:"current_stage"`
	Payload             Payload         `json:"payload"`
	StageHistory        []StageDecision `json:"stage_history"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
}

func ToResponse(r Request) Response {
	return Response{
		ID:                  r.ID,
		Type:                string(r.Type),
		RequesterID:         r.RequesterID,
		RequesterName:       r.RequesterName,
		RequesterDepartment: r.RequesterDepartment,
		Status:              string(r.Status),
		CurrentStage:        r.CurrentStage,
		Payload:             r.Payload,
		StageHistory:        r.StageHistory,
		CreatedAt:           r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:           r.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func ToResponseList(rs []Request) []Response {
	out := make([]Response, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToResponse(r))
	}
	return out
}
