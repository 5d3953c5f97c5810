package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mymbrcm/hr-portal-go/internal/domain/request"
	"github.com/mymbrcm/hr-portal-go/internal/handler/http/middleware"
	"github.com/mymbrcm/hr-portal-go/internal/handler/http/response"
	requestsvc "github.com/mymbrcm/hr-portal-go/internal/service/request"
)

type RequestHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Queue(w http.ResponseWriter, r *http.Request)
	Mine(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type RequestHandlerImpl struct {
	requestService *requestsvc.Service
}

func NewRequestHandler(requestService *requestsvc.Service) RequestHandler {
	return &RequestHandlerImpl{requestService: requestService}
}

func (h *RequestHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.requestService.Submit(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Request submitted", request.ToResponse(created))
}

func (h *RequestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "Request approved", h.requestService.Approve)
}

func (h *RequestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "Request rejected", h.requestService.Reject)
}

type decideFunc func(ctx context.Context, approverID, requestID, note string) (request.Request, error)

func (h *RequestHandlerImpl) decide(w http.ResponseWriter, r *http.Request, message string, fn decideFunc) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	var body request.DecideRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	decided, err := fn(r.Context(), middleware.UserID(r.Context()), requestID, body.Note)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, message, request.ToResponse(decided))
}

func (h *RequestHandlerImpl) Queue(w http.ResponseWriter, r *http.Request) {
	items, err := h.requestService.Queue(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, request.ToResponseList(items))
}

func (h *RequestHandlerImpl) Mine(w http.ResponseWriter, r *http.Request) {
	var status *request.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := request.Status(raw)
		if s != request.StatusPending && s != request.StatusApproved && s != request.StatusRejected {
			response.BadRequest(w, "status must be pending, approved or rejected", nil)
			return
		}
		status = &s
	}

	items, err := h.requestService.Mine(r.Context(), middleware.UserID(r.Context()), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, request.ToResponseList(items))
}

func (h *RequestHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	req, err := h.requestService.Get(r.Context(), middleware.UserID(r.Context()), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, request.ToResponse(req))
}
