package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"tidybook/internal/catalog/repository"
	"tidybook/internal/catalog/service"
	apperrors "tidybook/pkg/errors"
	httputil "tidybook/pkg/http"
	"tidybook/pkg/logger"
	"tidybook/pkg/middleware"
	"tidybook/pkg/model"
)

type CatalogHandler struct {
	service service.CatalogService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, auth *middleware.Authenticator, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type serviceListResponse struct {
	Services   []*model.Service    `json:"services"`
	Pagination httputil.Pagination `json:"pagination"`
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit, err := httputil.ExtractPageLimit(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	query := r.URL.Query()

	// The public catalog only shows active services. Admins can opt in to
	// the full list.
	filter := repository.ServiceFilter{
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}
	if query.Get("includeInactive") != "true" || middleware.RoleFromContext(r.Context()) != model.RoleAdmin {
		active := true
		filter.IsActive = &active
	}

	services, total, err := h.service.List(r.Context(), filter, limit, int64(page-1)*int64(limit))
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, serviceListResponse{
		Services:   services,
		Pagination: httputil.NewPagination(page, limit, total),
	}, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	svc, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, svc, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.writeError(w, "Categories", err)
		return
	}

	if err := httputil.WriteSuccess(w, categories, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "Categories", "error", err)
	}
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var svc model.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Create(r.Context(), &svc); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, svc, "Service created successfully"); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.ServiceUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.writeError(w, "Update", apperrors.InvalidInput("Invalid request body"))
		return
	}

	svc, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, svc, "Service updated successfully"); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Deactivate(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, nil, "Service deactivated successfully"); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "error", err)
	}
}

func (h *CatalogHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/services", h.auth.Optional(h.List))
	router.GET("/api/services/categories", h.Categories)
	router.GET("/api/services/id/:id", h.GetByID)
	router.POST("/api/services", h.auth.RequireAdmin(h.Create))
	router.PUT("/api/services/id/:id", h.auth.RequireAdmin(h.Update))
	router.DELETE("/api/services/id/:id", h.auth.RequireAdmin(h.Delete))
}
