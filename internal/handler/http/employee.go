package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mymbrcm/hr-portal-go/internal/domain/request"
	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/handler/http/middleware"
	"github.com/mymbrcm/hr-portal-go/internal/handler/http/response"
	employeesvc "github.com/mymbrcm/hr-portal-go/internal/service/employee"
)

type EmployeeHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	UpdateMyProfile(w http.ResponseWriter, r *http.Request)
	RequestBankUpdate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateAssignment(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService *employeesvc.Service
}

func NewEmployeeHandler(employeeService *employeesvc.Service) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

func (h *EmployeeHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.employeeService.Get(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profile)
}

func (h *EmployeeHandlerImpl) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.UpdateProfile(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Applied {
		response.SuccessWithMessage(w, "Profile updated", result)
		return
	}
	response.Created(w, "Profile change submitted for approval", request.ToResponse(*result.Request))
}

func (h *EmployeeHandlerImpl) RequestBankUpdate(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateBankDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.employeeService.RequestBankUpdate(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Bank details change submitted for approval", request.ToResponse(created))
}

func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var department *string
	if raw := r.URL.Query().Get("department"); raw != "" {
		department = &raw
	}

	profiles, err := h.employeeService.List(r.Context(), department)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profiles)
}

func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	profile, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profile)
}

func (h *EmployeeHandlerImpl) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	var req user.UpdateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	profile, err := h.employeeService.UpdateAssignment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Assignment updated", profile)
}
