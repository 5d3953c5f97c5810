package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mymbrcm/hr-portal-go/internal/handler/http/middleware"
	"github.com/mymbrcm/hr-portal-go/internal/handler/http/response"
	payrollsvc "github.com/mymbrcm/hr-portal-go/internal/service/payroll"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Mine(w http.ResponseWriter, r *http.Request)
	DownloadMine(w http.ResponseWriter, r *http.Request)
	ListByPeriod(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService *payrollsvc.Service
}

func NewPayrollHandler(payrollService *payrollsvc.Service) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

type generatePayslipRequest struct {
	UserID string `json:"user_id"`
	Period string `json:"period"`
}

func (h *PayrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req generatePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.UserID == "" {
		response.BadRequest(w, "user_id is required", nil)
		return
	}

	slip, err := h.payrollService.Generate(r.Context(), req.UserID, req.Period)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payslip generated", slip)
}

func (h *PayrollHandlerImpl) Mine(w http.ResponseWriter, r *http.Request) {
	slips, err := h.payrollService.ListForUser(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, slips)
}

func (h *PayrollHandlerImpl) DownloadMine(w http.ResponseWriter, r *http.Request) {
	period := chi.URLParam(r, "period")

	pdf, err := h.payrollService.DownloadPDF(r.Context(), middleware.UserID(r.Context()), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer pdf.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="payslip-`+period+`.pdf"`)
	_, _ = io.Copy(w, pdf)
}

func (h *PayrollHandlerImpl) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	period := chi.URLParam(r, "period")

	slips, err := h.payrollService.ListForPeriod(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, slips)
}
