package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"tidybook/internal/admin/service"
	authrepo "tidybook/internal/auth/repository"
	apperrors "tidybook/pkg/errors"
	httputil "tidybook/pkg/http"
	"tidybook/pkg/logger"
	"tidybook/pkg/middleware"
	"tidybook/pkg/model"
)

type AdminHandler struct {
	service service.AdminService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewAdminHandler(service service.AdminService, auth *middleware.Authenticator, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type userListResponse struct {
	Users      []*model.User       `json:"users"`
	Pagination httputil.Pagination `json:"pagination"`
}

type userStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.writeError(w, "Dashboard", err)
		return
	}

	if err := httputil.WriteSuccess(w, stats, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "Dashboard", "error", err)
	}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit, err := httputil.ExtractPageLimit(r)
	if err != nil {
		h.writeError(w, "ListUsers", err)
		return
	}

	query := r.URL.Query()
	filter := authrepo.UserFilter{
		Role:   query.Get("role"),
		Search: query.Get("search"),
	}
	if activeStr := query.Get("isActive"); activeStr != "" {
		active := activeStr == "true"
		filter.IsActive = &active
	}

	users, total, err := h.service.ListUsers(r.Context(), filter, limit, int64(page-1)*int64(limit))
	if err != nil {
		h.writeError(w, "ListUsers", err)
		return
	}

	if err := httputil.WriteSuccess(w, userListResponse{
		Users:      users,
		Pagination: httputil.NewPagination(page, limit, total),
	}, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "ListUsers", "error", err)
	}
}

func (h *AdminHandler) SetUserStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req userStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		h.writeError(w, "SetUserStatus", apperrors.InvalidInput("Request body must include isActive"))
		return
	}

	user, err := h.service.SetUserStatus(r.Context(), ps.ByName("id"), *req.IsActive)
	if err != nil {
		h.writeError(w, "SetUserStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, user, "User status updated"); err != nil {
		h.log.Error("failed to write success response", "handler", "SetUserStatus", "error", err)
	}
}

func (h *AdminHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *AdminHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/admin/dashboard", h.auth.RequireAdmin(h.Dashboard))
	router.GET("/api/admin/users", h.auth.RequireAdmin(h.ListUsers))
	router.PUT("/api/admin/users/:id/status", h.auth.RequireAdmin(h.SetUserStatus))
}
