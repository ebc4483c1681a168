package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"tidybook/internal/bookings/repository"
	"tidybook/internal/bookings/service"
	apperrors "tidybook/pkg/errors"
	httputil "tidybook/pkg/http"
	"tidybook/pkg/logger"
	"tidybook/pkg/middleware"
	"tidybook/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, auth *middleware.Authenticator, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type bookingListResponse struct {
	Bookings   []*model.BookingDetails `json:"bookings"`
	Pagination httputil.Pagination     `json:"pagination"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	booking, err := h.service.Create(r.Context(), middleware.UserIDFromContext(r.Context()), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking, "Booking created successfully"); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit, err := httputil.ExtractPageLimit(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	status := r.URL.Query().Get("status")

	bookings, total, err := h.service.ListForUser(r.Context(), userID, status, limit, int64(page-1)*int64(limit))
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookingListResponse{
		Bookings:   bookings,
		Pagination: httputil.NewPagination(page, limit, total),
	}, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit, err := httputil.ExtractPageLimit(r)
	if err != nil {
		h.writeError(w, "ListAll", err)
		return
	}

	query := r.URL.Query()
	filter := repository.BookingFilter{
		Status:    query.Get("status"),
		ServiceID: query.Get("serviceId"),
	}

	if from := query.Get("dateFrom"); from != "" {
		parsed, err := time.ParseInLocation("2006-01-02", from, time.UTC)
		if err != nil {
			h.writeError(w, "ListAll", apperrors.InvalidInput("dateFrom must be in YYYY-MM-DD format"))
			return
		}
		filter.DateFrom = &parsed
	}
	if to := query.Get("dateTo"); to != "" {
		parsed, err := time.ParseInLocation("2006-01-02", to, time.UTC)
		if err != nil {
			h.writeError(w, "ListAll", apperrors.InvalidInput("dateTo must be in YYYY-MM-DD format"))
			return
		}
		filter.DateTo = &parsed
	}

	bookings, total, err := h.service.ListAll(r.Context(), filter, limit, int64(page-1)*int64(limit))
	if err != nil {
		h.writeError(w, "ListAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookingListResponse{
		Bookings:   bookings,
		Pagination: httputil.NewPagination(page, limit, total),
	}, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "ListAll", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	booking, err := h.service.GetByID(ctx, ps.ByName("id"),
		middleware.UserIDFromContext(ctx), middleware.RoleFromContext(ctx))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "UpdateStatus", apperrors.InvalidInput("Invalid request body"))
		return
	}

	ctx := r.Context()
	booking, err := h.service.UpdateStatus(ctx, ps.ByName("id"),
		middleware.UserIDFromContext(ctx), middleware.RoleFromContext(ctx), &update)
	if err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking, "Booking status updated"); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	// The cancel body is optional; an empty body means no reason given.
	var req model.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, "Cancel", apperrors.InvalidInput("Invalid request body"))
		return
	}

	ctx := r.Context()
	booking, err := h.service.Cancel(ctx, ps.ByName("id"),
		middleware.UserIDFromContext(ctx), middleware.RoleFromContext(ctx), &req)
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking, "Booking cancelled successfully"); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", h.auth.Require(h.Create))
	router.GET("/api/bookings", h.auth.Require(h.List))
	router.GET("/api/bookings/all", h.auth.RequireAdmin(h.ListAll))
	router.GET("/api/bookings/id/:id", h.auth.Require(h.GetByID))
	router.PUT("/api/bookings/id/:id", h.auth.Require(h.UpdateStatus))
	router.DELETE("/api/bookings/id/:id", h.auth.Require(h.Cancel))
}
