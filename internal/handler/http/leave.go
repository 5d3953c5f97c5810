package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/mymbrcm/hr-portal-go/internal/domain/leave"
	"github.com/mymbrcm/hr-portal-go/internal/domain/request"
	"github.com/mymbrcm/hr-portal-go/internal/handler/http/middleware"
	"github.com/mymbrcm/hr-portal-go/internal/handler/http/response"
	leavesvc "github.com/mymbrcm/hr-portal-go/internal/service/leave"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Balances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService *leavesvc.Service
}

func NewLeaveHandler(leaveService *leavesvc.Service) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

func (h *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.Submit(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", request.ToResponse(created))
}

func (h *LeaveHandlerImpl) Balances(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}

	balances, err := h.leaveService.Balances(r.Context(), middleware.UserID(r.Context()), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}
