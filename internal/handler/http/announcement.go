package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mymbrcm/hr-portal-go/internal/domain/announcement"
	"github.com/mymbrcm/hr-portal-go/internal/handler/http/middleware"
	"github.com/mymbrcm/hr-portal-go/internal/handler/http/response"
	announcementsvc "github.com/mymbrcm/hr-portal-go/internal/service/announcement"
)

type AnnouncementHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type AnnouncementHandlerImpl struct {
	announcementService *announcementsvc.Service
}

func NewAnnouncementHandler(announcementService *announcementsvc.Service) AnnouncementHandler {
	return &AnnouncementHandlerImpl{announcementService: announcementService}
}

func (h *AnnouncementHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req announcement.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.announcementService.Create(r.Context(), middleware.UserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Announcement published", created)
}

func (h *AnnouncementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	items, err := h.announcementService.List(r.Context(), middleware.Department(r.Context()), limit, offset)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}

func (h *AnnouncementHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Announcement ID is required", nil)
		return
	}

	if err := h.announcementService.Delete(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Announcement deleted", nil)
}
