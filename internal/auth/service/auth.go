package service

import (
	"context"
	"errors"

	autherrors "tidybook/internal/auth/errors"
	"tidybook/internal/auth/repository"
	"tidybook/internal/auth/validator"
	"tidybook/pkg/config"
	apperrors "tidybook/pkg/errors"
	"tidybook/pkg/model"
	"tidybook/pkg/password"
	"tidybook/pkg/sanitizer"
	"tidybook/pkg/token"
)

type AuthService interface {
	Register(ctx context.Context, reg *model.Registration) (*model.User, string, error)
	Login(ctx context.Context, creds *model.Credentials) (*model.User, string, error)
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, update *model.ProfileUpdate) (*model.User, error)
}

type authService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	hasher    *password.Hasher
	tokens    *token.Manager
	cfg       *config.Config
}

func NewAuthService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	hasher *password.Hasher,
	tokens *token.Manager,
	cfg *config.Config,
) AuthService {
	return &authService{
		repo:      repo,
		validator: validator,
		hasher:    hasher,
		tokens:    tokens,
		cfg:       cfg,
	}
}

func (s *authService) Register(ctx context.Context, reg *model.Registration) (*model.User, string, error) {
	s.sanitizeRegistration(reg)

	if err := s.validator.ValidateRegistration(reg); err != nil {
		s.cfg.Log.Warn("Registration validation failed", "error", err)
		return nil, "", apperrors.Validation("Invalid registration input", map[string]any{"error": err.Error()})
	}

	phone := sanitizer.NormalizePhone(reg.Phone)
	if phone == "" {
		return nil, "", apperrors.Validation("Invalid registration input", map[string]any{
			"error": "Phone: must be a valid phone number",
		})
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		PasswordHash: hash,
		Phone:        phone,
		Address:      reg.Address,
		Role:         model.RoleUser,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, autherrors.ErrDuplicateEmail) {
			return nil, "", apperrors.UserExists()
		}
		s.cfg.Log.Error("Failed to create user", "email", user.Email, "error", err)
		return nil, "", apperrors.Internal("Failed to create user", err)
	}

	tok, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("User registered successfully", "id", user.ID, "email", user.Email)
	return user, tok, nil
}

func (s *authService) Login(ctx context.Context, creds *model.Credentials) (*model.User, string, error) {
	creds.Email = sanitizer.NormalizeEmail(creds.Email)

	if err := s.validator.ValidateCredentials(creds); err != nil {
		s.cfg.Log.Warn("Login validation failed", "error", err)
		return nil, "", apperrors.Validation("Invalid login input", map[string]any{"error": err.Error()})
	}

	user, err := s.repo.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return nil, "", apperrors.InvalidCredentials()
		}
		s.cfg.Log.Error("Failed to look up user", "email", creds.Email, "error", err)
		return nil, "", apperrors.Internal("Failed to look up user", err)
	}

	if !user.IsActive {
		return nil, "", apperrors.AccountDeactivated()
	}

	if !s.hasher.Compare(user.PasswordHash, creds.Password) {
		return nil, "", apperrors.InvalidCredentials()
	}

	tok, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID)
	return user, tok, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) || errors.Is(err, autherrors.ErrInvalidID) {
			return nil, apperrors.UserNotFound()
		}
		return nil, apperrors.Internal("Failed to retrieve profile", err)
	}

	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, update *model.ProfileUpdate) (*model.User, error) {
	if err := s.validator.ValidateProfileUpdate(update); err != nil {
		s.cfg.Log.Warn("Profile update validation failed", "id", userID, "error", err)
		return nil, apperrors.Validation("Invalid profile update", map[string]any{"error": err.Error()})
	}

	existing, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) || errors.Is(err, autherrors.ErrInvalidID) {
			return nil, apperrors.UserNotFound()
		}
		return nil, apperrors.Internal("Failed to retrieve profile", err)
	}

	merged := s.mergeProfileUpdate(existing, update)

	if err := s.validator.ValidateUser(merged); err != nil {
		s.cfg.Log.Warn("Profile update validation failed", "id", userID, "error", err)
		return nil, apperrors.Validation("Invalid profile update", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, userID, merged); err != nil {
		if errors.Is(err, autherrors.ErrNotFound) {
			return nil, apperrors.UserNotFound()
		}
		s.cfg.Log.Error("Failed to update profile", "id", userID, "error", err)
		return nil, apperrors.Internal("Failed to update profile", err)
	}

	s.cfg.Log.Info("Profile updated successfully", "id", userID)
	return merged, nil
}

// --- Helpers ---

func (s *authService) sanitizeRegistration(reg *model.Registration) {
	reg.Email = sanitizer.NormalizeEmail(reg.Email)
	reg.FirstName = sanitizer.NormalizeName(reg.FirstName)
	reg.LastName = sanitizer.NormalizeName(reg.LastName)
	sanitizeAddress(&reg.Address)
}

func (s *authService) mergeProfileUpdate(existing *model.User, update *model.ProfileUpdate) *model.User {
	merged := *existing

	if update.FirstName != "" {
		merged.FirstName = sanitizer.NormalizeName(update.FirstName)
	}
	if update.LastName != "" {
		merged.LastName = sanitizer.NormalizeName(update.LastName)
	}
	if update.Phone != "" {
		if phone := sanitizer.NormalizePhone(update.Phone); phone != "" {
			merged.Phone = phone
		}
	}
	if update.Address != nil {
		addr := *update.Address
		sanitizeAddress(&addr)
		merged.Address = addr
	}

	return &merged
}

func sanitizeAddress(addr *model.Address) {
	addr.Street = sanitizer.NormalizeAddressField(addr.Street)
	addr.City = sanitizer.NormalizeAddressField(addr.City)
	addr.State = sanitizer.NormalizeState(addr.State)
	addr.ZipCode = sanitizer.TrimAndNormalize(addr.ZipCode)
}
