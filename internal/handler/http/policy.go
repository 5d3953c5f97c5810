package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mymbrcm/hr-portal-go/internal/handler/http/response"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
)

type PolicyHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	UpdateQuotas(w http.ResponseWriter, r *http.Request)
	AddDepartment(w http.ResponseWriter, r *http.Request)
	RemoveDepartment(w http.ResponseWriter, r *http.Request)
	UpdateShifts(w http.ResponseWriter, r *http.Request)
}

type PolicyHandlerImpl struct {
	policies *policy.Store
}

func NewPolicyHandler(policies *policy.Store) PolicyHandler {
	return &PolicyHandlerImpl{policies: policies}
}

type policyView struct {
	Hierarchy     map[string]int          `json:"hierarchy"`
	LeaveQuotas   map[string]int          `json:"leave_quotas"`
	Departments   []string                `json:"departments"`
	Shifts        map[string]policy.Shift `json:"shifts"`
	ProbationDays int                     `json:"probation_days"`
	GraceMinutes  int                     `json:"grace_minutes"`
	DefaultShift  string                  `json:"default_shift"`
}

func (h *PolicyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	p := h.policies.Snapshot()
	response.Success(w, policyView{
		Hierarchy:     p.Hierarchy,
		LeaveQuotas:   p.LeaveQuotas,
		Departments:   p.Departments,
		Shifts:        p.Shifts,
		ProbationDays: p.ProbationDays,
		GraceMinutes:  p.GraceMinutes,
		DefaultShift:  p.DefaultShift,
	})
}

func (h *PolicyHandlerImpl) UpdateQuotas(w http.ResponseWriter, r *http.Request) {
	var quotas map[string]int
	if err := json.NewDecoder(r.Body).Decode(&quotas); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.policies.UpdateQuotas(quotas); err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	response.SuccessWithMessage(w, "Leave quotas updated", h.policies.Snapshot().LeaveQuotas)
}

type departmentRequest struct {
	Name string `json:"name"`
}

func (h *PolicyHandlerImpl) AddDepartment(w http.ResponseWriter, r *http.Request) {
	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		response.BadRequest(w, "name is required", nil)
		return
	}

	h.policies.AddDepartment(req.Name)
	response.SuccessWithMessage(w, "Department added", h.policies.Snapshot().Departments)
}

func (h *PolicyHandlerImpl) RemoveDepartment(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		response.BadRequest(w, "Department name is required", nil)
		return
	}

	h.policies.RemoveDepartment(name)
	response.SuccessWithMessage(w, "Department removed", h.policies.Snapshot().Departments)
}

func (h *PolicyHandlerImpl) UpdateShifts(w http.ResponseWriter, r *http.Request) {
	var shifts map[string]policy.Shift
	if err := json.NewDecoder(r.Body).Decode(&shifts); err != nil || len(shifts) == 0 {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	h.policies.UpdateShifts(shifts)
	response.SuccessWithMessage(w, "Shifts updated", h.policies.Snapshot().Shifts)
}
