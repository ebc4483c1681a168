package service

import (
	"context"
	"errors"
	"sync"

	catalogerrors "tidybook/internal/catalog/errors"
	"tidybook/internal/catalog/repository"
	"tidybook/internal/catalog/validator"
	"tidybook/pkg/config"
	apperrors "tidybook/pkg/errors"
	"tidybook/pkg/model"
	"tidybook/pkg/sanitizer"
)

type CatalogService interface {
	List(ctx context.Context, filter repository.ServiceFilter, limit int, offset int64) ([]*model.Service, int64, error)
	GetByID(ctx context.Context, id string) (*model.Service, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, svc *model.Service) error
	Update(ctx context.Context, id string, updates *model.ServiceUpdate) (*model.Service, error)
	Deactivate(ctx context.Context, id string) error
}

type catalogService struct {
	repo      repository.ServiceRepository
	validator *validator.ServiceValidator
	cfg       *config.Config
}

func NewCatalogService(
	repo repository.ServiceRepository,
	validator *validator.ServiceValidator,
	cfg *config.Config,
) CatalogService {
	return &catalogService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *catalogService) List(ctx context.Context, filter repository.ServiceFilter, limit int, offset int64) ([]*model.Service, int64, error) {
	var count int64
	var services []*model.Service
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count services", "error", errCount)
			errCount = apperrors.Internal("Failed to count services", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		services, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list services", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve services", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return services, count, nil
}

func (s *catalogService) GetByID(ctx context.Context, id string) (*model.Service, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Service ID cannot be empty")
	}

	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrNotFound) || errors.Is(err, catalogerrors.ErrInvalidID) {
			return nil, apperrors.ServiceNotFound()
		}
		return nil, apperrors.Internal("Failed to retrieve service", err)
	}

	return svc, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list categories", "error", err)
		return nil, apperrors.Internal("Failed to retrieve categories", err)
	}
	return categories, nil
}

func (s *catalogService) Create(ctx context.Context, svc *model.Service) error {
	s.sanitize(svc)
	svc.IsActive = true

	if err := s.validator.Validate(svc); err != nil {
		s.cfg.Log.Warn("Service validation failed", "error", err)
		return apperrors.Validation("Invalid service input", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		s.cfg.Log.Error("Failed to create service", "name", svc.Name, "error", err)
		return apperrors.Internal("Failed to create service", err)
	}

	s.cfg.Log.Info("Service created successfully", "id", svc.ID, "name", svc.Name)
	return nil
}

func (s *catalogService) Update(ctx context.Context, id string, updates *model.ServiceUpdate) (*model.Service, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Service ID cannot be empty")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Service update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid service update", map[string]any{"error": err.Error()})
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrNotFound) || errors.Is(err, catalogerrors.ErrInvalidID) {
			return nil, apperrors.ServiceNotFound()
		}
		return nil, apperrors.Internal("Failed to retrieve service", err)
	}

	merged := s.mergeServiceUpdates(existing, updates)
	s.sanitize(merged)

	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Service update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid service update", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, catalogerrors.ErrNotFound) {
			return nil, apperrors.ServiceNotFound()
		}
		s.cfg.Log.Error("Failed to update service", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update service", err)
	}

	s.cfg.Log.Info("Service updated successfully", "id", id)
	return merged, nil
}

func (s *catalogService) Deactivate(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Service ID cannot be empty")
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, catalogerrors.ErrNotFound) || errors.Is(err, catalogerrors.ErrInvalidID) {
			return apperrors.ServiceNotFound()
		}
		s.cfg.Log.Error("Failed to deactivate service", "id", id, "error", err)
		return apperrors.Internal("Failed to deactivate service", err)
	}

	s.cfg.Log.Info("Service deactivated", "id", id)
	return nil
}

// --- Helpers ---

func (s *catalogService) sanitize(svc *model.Service) {
	svc.Name = sanitizer.TrimAndNormalize(svc.Name)
	svc.Description = sanitizer.TrimAndNormalize(svc.Description)
	for i, feature := range svc.Features {
		svc.Features[i] = sanitizer.TrimAndNormalize(feature)
	}
}

func (s *catalogService) mergeServiceUpdates(existing *model.Service, updates *model.ServiceUpdate) *model.Service {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Description != "" {
		merged.Description = updates.Description
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.Duration != nil {
		merged.Duration = *updates.Duration
	}
	if updates.Category != "" {
		merged.Category = updates.Category
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}
	if updates.Features != nil {
		merged.Features = *updates.Features
	}
	if updates.ImageURL != "" {
		merged.ImageURL = updates.ImageURL
	}

	return &merged
}
