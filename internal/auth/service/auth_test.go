package service

import (
	"context"
	"testing"
	"time"

	autherrors "tidybook/internal/auth/errors"
	"tidybook/internal/auth/repository"
	"tidybook/internal/auth/validator"
	"tidybook/pkg/config"
	apperrors "tidybook/pkg/errors"
	"tidybook/pkg/logger"
	"tidybook/pkg/model"
	"tidybook/pkg/password"
	"tidybook/pkg/token"
)

type mockUserRepository struct {
	createFn       func(ctx context.Context, user *model.User) error
	findByIDFn     func(ctx context.Context, id string) (*model.User, error)
	findByEmailFn  func(ctx context.Context, email string) (*model.User, error)
	updateFn       func(ctx context.Context, id string, user *model.User) error
	updateStatusFn func(ctx context.Context, id string, isActive bool) (*model.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.findByEmailFn(ctx, email)
}

func (m *mockUserRepository) Update(ctx context.Context, id string, user *model.User) error {
	return m.updateFn(ctx, id, user)
}

func (m *mockUserRepository) UpdateStatus(ctx context.Context, id string, isActive bool) (*model.User, error) {
	return m.updateStatusFn(ctx, id, isActive)
}

func (m *mockUserRepository) FindAll(ctx context.Context, filter repository.UserFilter, limit int, offset int64) ([]*model.User, error) {
	return nil, nil
}

func (m *mockUserRepository) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	return 0, nil
}

func newTestService(repo repository.UserRepository) AuthService {
	log := logger.New(logger.Config{Level: "error", Format: "text"})
	cfg := &config.Config{Log: log}
	return NewAuthService(
		repo,
		validator.NewUserValidator(log),
		password.NewHasher(4),
		token.NewManager("test-secret-key-for-auth-service-tests", time.Hour, "tidybook"),
		cfg,
	)
}

func validRegistration() *model.Registration {
	return &model.Registration{
		FirstName: "Dana",
		LastName:  "Whitfield",
		Email:     "dana@example.com",
		Password:  "Sunny123",
		Phone:     "(415) 555-2671",
		Address: model.Address{
			Street:  "12 Pine St",
			City:    "San Francisco",
			State:   "CA",
			ZipCode: "94105",
		},
	}
}

func TestRegisterSuccess(t *testing.T) {
	repo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = "64f000000000000000000001"
			return nil
		},
	}
	svc := newTestService(repo)

	user, tok, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if tok == "" {
		t.Error("expected a token")
	}
	if user.Role != model.RoleUser {
		t.Errorf("expected role %q, got %q", model.RoleUser, user.Role)
	}
	if !user.IsActive {
		t.Error("expected new user to be active")
	}
	if user.Phone != "+14155552671" {
		t.Errorf("expected normalized phone, got %q", user.Phone)
	}
	if user.PasswordHash == "" || user.PasswordHash == "Sunny123" {
		t.Error("expected password to be hashed")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			return autherrors.ErrDuplicateEmail
		},
	}
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), validRegistration())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeUserExists {
		t.Fatalf("expected USER_EXISTS, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newTestService(&mockUserRepository{})

	reg := validRegistration()
	reg.Password = "alllower1"

	_, _, err := svc.Register(context.Background(), reg)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	hasher := password.NewHasher(4)
	hash, _ := hasher.Hash("Sunny123")

	repo := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           "64f000000000000000000001",
				Email:        email,
				PasswordHash: hash,
				Role:         model.RoleUser,
				IsActive:     true,
			}, nil
		},
	}
	svc := newTestService(repo)

	user, tok, err := svc.Login(context.Background(), &model.Credentials{
		Email:    "Dana@Example.com",
		Password: "Sunny123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if tok == "" {
		t.Error("expected a token")
	}
	if user.Email != "dana@example.com" {
		t.Errorf("expected normalized email lookup, got %q", user.Email)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hasher := password.NewHasher(4)
	hash, _ := hasher.Hash("Sunny123")

	repo := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{Email: email, PasswordHash: hash, IsActive: true}, nil
		},
	}
	svc := newTestService(repo)

	_, _, err := svc.Login(context.Background(), &model.Credentials{
		Email:    "dana@example.com",
		Password: "WrongPass1",
	})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidCredentials {
		t.Fatalf("expected INVALID_CREDENTIALS, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return nil, autherrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	_, _, err := svc.Login(context.Background(), &model.Credentials{
		Email:    "nobody@example.com",
		Password: "Sunny123",
	})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidCredentials {
		t.Fatalf("expected INVALID_CREDENTIALS, got %v", err)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	hasher := password.NewHasher(4)
	hash, _ := hasher.Hash("Sunny123")

	repo := &mockUserRepository{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{Email: email, PasswordHash: hash, IsActive: false}, nil
		},
	}
	svc := newTestService(repo)

	_, _, err := svc.Login(context.Background(), &model.Credentials{
		Email:    "dana@example.com",
		Password: "Sunny123",
	})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeAccountDeactivated {
		t.Fatalf("expected ACCOUNT_DEACTIVATED, got %v", err)
	}
}

func TestUpdateProfileMergesAllowedFields(t *testing.T) {
	existing := &model.User{
		ID:        "64f000000000000000000001",
		FirstName: "Dana",
		LastName:  "Whitfield",
		Email:     "dana@example.com",
		Phone:     "+14155552671",
		Role:      model.RoleUser,
		IsActive:  true,
		Address: model.Address{
			Street:  "12 Pine St",
			City:    "San Francisco",
			State:   "CA",
			ZipCode: "94105",
		},
	}

	var saved *model.User
	repo := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, id string, user *model.User) error {
			saved = user
			return nil
		},
	}
	svc := newTestService(repo)

	updated, err := svc.UpdateProfile(context.Background(), existing.ID, &model.ProfileUpdate{
		FirstName: "  dana  ",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if saved == nil {
		t.Fatal("expected repository update to be called")
	}
	if updated.FirstName != "dana" {
		t.Errorf("expected normalized first name, got %q", updated.FirstName)
	}
	if updated.LastName != "Whitfield" {
		t.Errorf("expected last name unchanged, got %q", updated.LastName)
	}
	if updated.Email != existing.Email {
		t.Error("email must not change through profile update")
	}
}
