package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"tidybook/internal/auth/service"
	apperrors "tidybook/pkg/errors"
	httputil "tidybook/pkg/http"
	"tidybook/pkg/logger"
	"tidybook/pkg/middleware"
	"tidybook/pkg/model"
)

type AuthHandler struct {
	service service.AuthService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewAuthHandler(service service.AuthService, auth *middleware.Authenticator, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type authResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var reg model.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		h.writeError(w, "Register", apperrors.InvalidInput("Invalid request body"))
		return
	}

	user, tok, err := h.service.Register(r.Context(), &reg)
	if err != nil {
		h.writeError(w, "Register", err)
		return
	}

	if err := httputil.WriteCreated(w, authResponse{User: user, Token: tok}, "User registered successfully"); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "error", err)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.writeError(w, "Login", apperrors.InvalidInput("Invalid request body"))
		return
	}

	user, tok, err := h.service.Login(r.Context(), &creds)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	if err := httputil.WriteSuccess(w, authResponse{User: user, Token: tok}, "Login successful"); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "error", err)
	}
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.UserIDFromContext(r.Context())

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, "GetProfile", err)
		return
	}

	if err := httputil.WriteSuccess(w, user, ""); err != nil {
		h.log.Error("failed to write success response", "handler", "GetProfile", "error", err)
	}
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.UserIDFromContext(r.Context())

	var update model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "UpdateProfile", apperrors.InvalidInput("Invalid request body"))
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, &update)
	if err != nil {
		h.writeError(w, "UpdateProfile", err)
		return
	}

	if err := httputil.WriteSuccess(w, user, "Profile updated successfully"); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateProfile", "error", err)
	}
}

func (h *AuthHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", h.Register)
	router.POST("/api/auth/login", h.Login)
	router.GET("/api/auth/profile", h.auth.Require(h.GetProfile))
	router.PUT("/api/auth/profile", h.auth.Require(h.UpdateProfile))
}
