package request

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Type string

const (
	TypeLeave         Type = "leave"
	TypeProfileUpdate Type = "profile_update"
	TypeBankUpdate    Type = "bank_update"
	TypeDepartmental  Type = "departmental"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// StageDecision is one entry in a request's audit trail.
type StageDecision struct {
	Stage        int       `json:"stage"`
	ApproverID   string    `json:"approver_id"`
	ApproverName string    `json:"approver_name"`
	Decision     Decision  `json:"decision"`
	Note         string    `json:"note,omitempty"`
	DecidedAt    time.Time `json:"decided_at"`
}

type StageHistory []StageDecision

func (h StageHistory) Value() (driver.Value, error) {
	if h == nil {
		return json.Marshal(StageHistory{})
	}
	return json.Marshal(h)
}

func (h *StageHistory) Scan(value interface{}) error {
	if value == nil {
		*h = StageHistory{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StageHistory: %T", value)
	}

	return json.Unmarshal(data, h)
}

// LeavePayload carries the leave-specific fields of a request.
type LeavePayload struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
	Reason    string `json:"reason"`
}

// ProfileChangePayload records requested field changes alongside the
// current values so approvers can see the diff.
type ProfileChangePayload struct {
	Changes map[string]string `json:"changes"`
	Current map[string]string `json:"current,omitempty"`
}

type BankChangePayload struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IBAN          string `json:"iban,omitempty"`
}

type DepartmentalPayload struct {
	Subject string `json:"subject"`
	Details string `json:"details"`
}

// Payload is the single JSONB column behind every request type. Exactly one
// variant is set, matching the request's Type.
type Payload struct {
	Leave         *LeavePayload         `json:"leave,omitempty"`
	ProfileChange *ProfileChangePayload `json:"profile_change,omitempty"`
	BankChange    *BankChangePayload    `json:"bank_change,omitempty"`
	Departmental  *DepartmentalPayload  `json:"departmental,omitempty"`
}

func (p Payload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Payload) Scan(value interface{}) error {
	if value == nil {
		*p = Payload{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for Payload: %T", value)
	}

	return json.Unmarshal(data, p)
}

// ValidateFor checks that exactly the variant matching t is populated.
func (p Payload) ValidateFor(t Type) error {
	set := 0
	if p.Leave != nil {
		set++
	}
	if p.ProfileChange != nil {
		set++
	}
	if p.BankChange != nil {
		set++
	}
	if p.Departmental != nil {
		set++
	}
	if set != 1 {
		return ErrInvalidPayload
	}

	switch t {
	case TypeLeave:
		if p.Leave == nil {
			return ErrInvalidPayload
		}
	case TypeProfileUpdate:
		if p.ProfileChange == nil || len(p.ProfileChange.Changes) == 0 {
			return ErrInvalidPayload
		}
	case TypeBankUpdate:
		if p.BankChange == nil || p.BankChange.BankName == "" || p.BankChange.AccountNumber == "" {
			return ErrInvalidPayload
		}
	case TypeDepartmental:
		if p.Departmental == nil || p.Departmental.Subject == "" {
			return ErrInvalidPayload
		}
	default:
		return ErrUnknownType
	}
	return nil
}

// Request is a routable approval item. CurrentStage is the role level whose
// holders may decide it next; Version guards concurrent decisions.
type Request struct {
	ID                  string
	Type                Type
	RequesterID         string
	RequesterName       string
	RequesterDepartment string

	Status       Status
	CurrentStage int
	Version      int

	Payload      Payload
	StageHistory StageHistory

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Request) Validate() error {
	if r.RequesterID == "" {
		return ErrInvalidPayload
	}
	return r.Payload.ValidateFor(r.Type)
}
