package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	apperrors "tidybook/pkg/errors"
	apphttp "tidybook/pkg/http"
	"tidybook/pkg/logger"
	"tidybook/pkg/model"
	"tidybook/pkg/token"
)

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "user_role"
)

// Authenticator guards routes that require a valid bearer token.
type Authenticator struct {
	tokens *token.Manager
	log    *logger.Logger
}

func NewAuthenticator(tokens *token.Manager, log *logger.Logger) *Authenticator {
	return &Authenticator{
		tokens: tokens,
		log:    log,
	}
}

// Require verifies the Authorization header and injects the caller's
// identity into the request context.
func (a *Authenticator) Require(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := a.authenticate(r)
		if err != nil {
			a.log.Warn("Authentication failed",
				"request_id", requestIDFromContext(r.Context()),
				"path", r.URL.Path,
				"error", err,
			)
			apphttp.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		next(w, r.WithContext(ctx), ps)
	}
}

// Optional injects the caller's identity when a valid bearer token is
// present and serves the request anonymously otherwise.
func (a *Authenticator) Optional(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if r.Header.Get("Authorization") == "" {
			next(w, r, ps)
			return
		}

		claims, err := a.authenticate(r)
		if err != nil {
			next(w, r, ps)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireAdmin is Require plus an admin role check.
func (a *Authenticator) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return a.Require(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if RoleFromContext(r.Context()) != model.RoleAdmin {
			a.log.Warn("Admin route denied",
				"request_id", requestIDFromContext(r.Context()),
				"user_id", UserIDFromContext(r.Context()),
				"path", r.URL.Path,
			)
			apphttp.WriteError(w, apperrors.NotAuthorized("access this resource"))
			return
		}
		next(w, r, ps)
	})
}

func (a *Authenticator) authenticate(r *http.Request) (*token.Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, apperrors.Unauthorized("Authorization header required")
	}

	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, apperrors.Unauthorized("Authorization header must use Bearer scheme")
	}

	return a.tokens.Verify(strings.TrimSpace(raw))
}

func UserIDFromContext(ctx context.Context) string {
	if v := ctx.Value(UserIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if v := ctx.Value(RoleKey); v != nil {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
