package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "tidybook/internal/bookings/errors"
	"tidybook/internal/bookings/repository"
	"tidybook/internal/bookings/validator"
	catalogservice "tidybook/internal/catalog/service"
	"tidybook/pkg/config"
	apperrors "tidybook/pkg/errors"
	"tidybook/pkg/model"
	"tidybook/pkg/sanitizer"
)

const appointmentDateLayout = "2006-01-02"

type BookingService interface {
	Create(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id, callerID, callerRole string) (*model.Booking, error)
	ListForUser(ctx context.Context, userID, status string, limit int, offset int64) ([]*model.BookingDetails, int64, error)
	ListAll(ctx context.Context, filter repository.BookingFilter, limit int, offset int64) ([]*model.BookingDetails, int64, error)
	UpdateStatus(ctx context.Context, id, callerID, callerRole string, update *model.StatusUpdate) (*model.Booking, error)
	Cancel(ctx context.Context, id, callerID, callerRole string, req *model.CancelRequest) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	catalog   catalogservice.CatalogService
	validator *validator.BookingValidator
	events    EventPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	catalog catalogservice.CatalogService,
	validator *validator.BookingValidator,
	events EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		catalog:   catalog,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, userID string, req *model.BookingRequest) (*model.Booking, error) {
	s.sanitizeRequest(req)

	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
	}

	date, err := time.ParseInLocation(appointmentDateLayout, req.AppointmentDate, time.UTC)
	if err != nil {
		return nil, apperrors.Validation("Invalid booking input", map[string]any{
			"error": "AppointmentDate: must be in YYYY-MM-DD format",
		})
	}
	if !appointmentInFuture(date, req.AppointmentTime) {
		return nil, apperrors.Validation("Invalid booking input", map[string]any{
			"error": "AppointmentDate: appointment must be in the future",
		})
	}

	svc, err := s.catalog.GetByID(ctx, req.ServiceID)
	if err != nil {
		if appErr := apperrors.AsAppError(err); appErr != nil && appErr.Code == apperrors.CodeServiceNotFound {
			return nil, apperrors.ServiceNotAvailable()
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, apperrors.ServiceNotAvailable()
	}

	// Advisory lock closes the race between concurrent requests for the
	// same slot before the transactional check runs.
	lockID, err := s.acquireSlotLock(ctx, req.ServiceID, date, req.AppointmentTime)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	booking := &model.Booking{
		UserID:              userID,
		ServiceID:           req.ServiceID,
		AppointmentDate:     date,
		AppointmentTime:     req.AppointmentTime,
		Status:              model.StatusPending,
		TotalPrice:          svc.Price,
		Address:             req.Address,
		SpecialInstructions: req.SpecialInstructions,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		taken, err := s.repo.FindBySlot(sessCtx, req.ServiceID, date, req.AppointmentTime)
		if err != nil {
			return apperrors.Internal("Failed to check slot availability", err)
		}
		if len(taken) > 0 {
			return apperrors.TimeSlotUnavailable()
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "user_id", userID, "service_id", req.ServiceID, "error", err)
		return nil, err
	}

	s.publish(ctx, EventBookingCreated, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"user_id", userID,
		"service_id", req.ServiceID,
		"appointment_date", req.AppointmentDate,
		"appointment_time", req.AppointmentTime,
	)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id, callerID, callerRole string) (*model.Booking, error) {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if callerRole != model.RoleAdmin && booking.UserID != callerID {
		return nil, apperrors.NotAuthorized("access this booking")
	}

	return booking, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID, status string, limit int, offset int64) ([]*model.BookingDetails, int64, error) {
	if status != "" && !model.ValidStatus(status) {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("Unknown booking status: %s", status))
	}

	filter := repository.BookingFilter{UserID: userID, Status: status}
	return s.list(ctx, filter, limit, offset)
}

func (s *bookingService) ListAll(ctx context.Context, filter repository.BookingFilter, limit int, offset int64) ([]*model.BookingDetails, int64, error) {
	if filter.Status != "" && !model.ValidStatus(filter.Status) {
		return nil, 0, apperrors.InvalidInput(fmt.Sprintf("Unknown booking status: %s", filter.Status))
	}

	return s.list(ctx, filter, limit, offset)
}

func (s *bookingService) UpdateStatus(ctx context.Context, id, callerID, callerRole string, update *model.StatusUpdate) (*model.Booking, error) {
	if err := s.validator.ValidateStatusUpdate(update); err != nil {
		s.cfg.Log.Warn("Status update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid status update", map[string]any{"error": err.Error()})
	}

	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if callerRole != model.RoleAdmin && booking.UserID != callerID {
		return nil, apperrors.NotAuthorized("update this booking")
	}

	if !model.CanTransition(booking.Status, update.Status) {
		return nil, apperrors.InvalidStatusTransition(booking.Status, update.Status)
	}

	s.applyTransition(booking, update.Status, update.CancellationReason)

	if err := s.repo.UpdateStatus(ctx, id, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.BookingNotFound()
		}
		s.cfg.Log.Error("Failed to update booking status", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking status", err)
	}

	eventType := EventBookingStatusChanged
	if update.Status == model.StatusCancelled {
		eventType = EventBookingCancelled
	}
	s.publish(ctx, eventType, booking)

	s.cfg.Log.Info("Booking status updated", "id", id, "status", update.Status)
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, id, callerID, callerRole string, req *model.CancelRequest) (*model.Booking, error) {
	if req != nil {
		if err := s.validator.ValidateCancelRequest(req); err != nil {
			s.cfg.Log.Warn("Cancel request validation failed", "id", id, "error", err)
			return nil, apperrors.Validation("Invalid cancel request", map[string]any{"error": err.Error()})
		}
	}

	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if callerRole != model.RoleAdmin && booking.UserID != callerID {
		return nil, apperrors.NotAuthorized("cancel this booking")
	}

	if model.IsTerminalStatus(booking.Status) {
		if booking.Status == model.StatusCompleted {
			return nil, apperrors.CannotCancelCompleted()
		}
		return nil, apperrors.AlreadyCancelled()
	}

	reason := ""
	if req != nil {
		reason = req.CancellationReason
	}
	s.applyTransition(booking, model.StatusCancelled, reason)

	if err := s.repo.UpdateStatus(ctx, id, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.BookingNotFound()
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to cancel booking", err)
	}

	s.publish(ctx, EventBookingCancelled, booking)

	s.cfg.Log.Info("Booking cancelled", "id", id)
	return booking, nil
}

// --- Helpers ---

func (s *bookingService) findBooking(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.BookingNotFound()
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) list(ctx context.Context, filter repository.BookingFilter, limit int, offset int64) ([]*model.BookingDetails, int64, error) {
	var count int64
	var bookings []*model.BookingDetails
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindDetails(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// applyTransition sets the status and its side fields. Completion and
// cancellation timestamps are written once and never overwritten.
func (s *bookingService) applyTransition(booking *model.Booking, status, reason string) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	booking.Status = status
	switch status {
	case model.StatusCompleted:
		if booking.CompletedAt == nil {
			booking.CompletedAt = &now
		}
	case model.StatusCancelled:
		if booking.CancelledAt == nil {
			booking.CancelledAt = &now
		}
		if reason != "" {
			booking.CancellationReason = sanitizer.TrimAndNormalize(reason)
		}
	}
}

func (s *bookingService) sanitizeRequest(req *model.BookingRequest) {
	req.Address.Street = sanitizer.NormalizeAddressField(req.Address.Street)
	req.Address.City = sanitizer.NormalizeAddressField(req.Address.City)
	req.Address.State = sanitizer.NormalizeState(req.Address.State)
	req.Address.ZipCode = sanitizer.TrimAndNormalize(req.Address.ZipCode)
	req.SpecialInstructions = sanitizer.TrimAndNormalize(req.SpecialInstructions)
}

func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if err := s.events.PublishBookingEvent(ctx, eventType, booking); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

func appointmentInFuture(date time.Time, timeSlot string) bool {
	slot, err := time.Parse("15:04", timeSlot)
	if err != nil {
		return false
	}

	at := time.Date(date.Year(), date.Month(), date.Day(), slot.Hour(), slot.Minute(), 0, 0, time.UTC)
	return at.After(time.Now().UTC())
}

// acquireSlotLock creates an advisory lock to prevent concurrent booking creation
// Returns the lock ID if successful, or conflict error if lock already exists
func (s *bookingService) acquireSlotLock(ctx context.Context, serviceID string, date time.Time, timeSlot string) (string, error) {
	lockID := fmt.Sprintf("slot_%s_%s_%s", serviceID, date.Format(appointmentDateLayout), timeSlot)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(10 * time.Second), // Auto-expire after 10 seconds
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.TimeSlotUnavailable()
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

// releaseSlotLock removes the advisory lock
func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
