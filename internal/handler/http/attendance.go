package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mymbrcm/hr-portal-go/internal/domain/attendance"
	"github.com/mymbrcm/hr-portal-go/internal/handler/http/middleware"
	"github.com/mymbrcm/hr-portal-go/internal/handler/http/response"
	attendancesvc "github.com/mymbrcm/hr-portal-go/internal/service/attendance"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService *attendancesvc.Service
}

func NewAttendanceHandler(attendanceService *attendancesvc.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	rec, err := h.attendanceService.CheckIn(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Checked in", rec)
}

func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	rec, err := h.attendanceService.CheckOut(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Checked out", rec)
}

func (h *AttendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = time.Now().Format("2006-01")
	}

	records, err := h.attendanceService.History(r.Context(), middleware.UserID(r.Context()), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

func (h *AttendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = time.Now().Format("2006-01")
	}

	summary, err := h.attendanceService.Summary(r.Context(), middleware.UserID(r.Context()), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}
