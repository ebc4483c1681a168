package service

import (
	"context"
	"testing"

	catalogerrors "tidybook/internal/catalog/errors"
	"tidybook/internal/catalog/repository"
	"tidybook/internal/catalog/validator"
	"tidybook/pkg/config"
	apperrors "tidybook/pkg/errors"
	"tidybook/pkg/logger"
	"tidybook/pkg/model"
)

type mockServiceRepository struct {
	createFn     func(ctx context.Context, svc *model.Service) error
	findByIDFn   func(ctx context.Context, id string) (*model.Service, error)
	findAllFn    func(ctx context.Context, filter repository.ServiceFilter, limit int, offset int64) ([]*model.Service, error)
	countFn      func(ctx context.Context, filter repository.ServiceFilter) (int64, error)
	updateFn     func(ctx context.Context, id string, svc *model.Service) error
	deactivateFn func(ctx context.Context, id string) error
}

func (m *mockServiceRepository) Create(ctx context.Context, svc *model.Service) error {
	return m.createFn(ctx, svc)
}

func (m *mockServiceRepository) FindByID(ctx context.Context, id string) (*model.Service, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockServiceRepository) FindAll(ctx context.Context, filter repository.ServiceFilter, limit int, offset int64) ([]*model.Service, error) {
	return m.findAllFn(ctx, filter, limit, offset)
}

func (m *mockServiceRepository) Count(ctx context.Context, filter repository.ServiceFilter) (int64, error) {
	return m.countFn(ctx, filter)
}

func (m *mockServiceRepository) Update(ctx context.Context, id string, svc *model.Service) error {
	return m.updateFn(ctx, id, svc)
}

func (m *mockServiceRepository) Deactivate(ctx context.Context, id string) error {
	return m.deactivateFn(ctx, id)
}

func (m *mockServiceRepository) Categories(ctx context.Context) ([]string, error) {
	return []string{model.CategoryResidential, model.CategoryCommercial}, nil
}

func newTestService(repo repository.ServiceRepository) CatalogService {
	log := logger.New(logger.Config{Level: "error", Format: "text"})
	cfg := &config.Config{Log: log}
	return NewCatalogService(repo, validator.NewServiceValidator(log), cfg)
}

func validService() *model.Service {
	return &model.Service{
		Name:        "Deep Clean Deluxe",
		Description: "Full top to bottom cleaning of every room.",
		Price:       199.99,
		Duration:    180,
		Category:    model.CategoryDeepCleaning,
	}
}

func TestCreateServiceDefaultsActive(t *testing.T) {
	var saved *model.Service
	repo := &mockServiceRepository{
		createFn: func(ctx context.Context, svc *model.Service) error {
			svc.ID = "64f000000000000000000010"
			saved = svc
			return nil
		},
	}
	svc := newTestService(repo)

	if err := svc.Create(context.Background(), validService()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if saved == nil || !saved.IsActive {
		t.Error("expected new service to be active")
	}
}

func TestCreateServiceInvalidCategory(t *testing.T) {
	svc := newTestService(&mockServiceRepository{})

	input := validService()
	input.Category = "window-washing"

	err := svc.Create(context.Background(), input)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateServiceShortDuration(t *testing.T) {
	svc := newTestService(&mockServiceRepository{})

	input := validService()
	input.Duration = 15

	err := svc.Create(context.Background(), input)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := &mockServiceRepository{
		findByIDFn: func(ctx context.Context, id string) (*model.Service, error) {
			return nil, catalogerrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), "64f000000000000000000010")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeServiceNotFound {
		t.Fatalf("expected SERVICE_NOT_FOUND, got %v", err)
	}
}

func TestUpdateServiceMergesFields(t *testing.T) {
	existing := validService()
	existing.ID = "64f000000000000000000010"
	existing.IsActive = true

	var saved *model.Service
	repo := &mockServiceRepository{
		findByIDFn: func(ctx context.Context, id string) (*model.Service, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, id string, svc *model.Service) error {
			saved = svc
			return nil
		},
	}
	svc := newTestService(repo)

	newPrice := 249.99
	updated, err := svc.Update(context.Background(), existing.ID, &model.ServiceUpdate{
		Price: &newPrice,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if saved == nil {
		t.Fatal("expected repository update to be called")
	}
	if updated.Price != newPrice {
		t.Errorf("expected price %v, got %v", newPrice, updated.Price)
	}
	if updated.Name != existing.Name {
		t.Error("expected name unchanged")
	}
}

func TestDeactivateServiceNotFound(t *testing.T) {
	repo := &mockServiceRepository{
		deactivateFn: func(ctx context.Context, id string) error {
			return catalogerrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	err := svc.Deactivate(context.Background(), "64f000000000000000000010")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeServiceNotFound {
		t.Fatalf("expected SERVICE_NOT_FOUND, got %v", err)
	}
}
