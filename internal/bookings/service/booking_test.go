package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "tidybook/internal/bookings/errors"
	"tidybook/internal/bookings/repository"
	"tidybook/internal/bookings/validator"
	catalogrepo "tidybook/internal/catalog/repository"
	"tidybook/pkg/config"
	mongotx "tidybook/pkg/db/mongo"
	apperrors "tidybook/pkg/errors"
	"tidybook/pkg/logger"
	"tidybook/pkg/model"
)

const (
	testUserID    = "64f000000000000000000001"
	testAdminID   = "64f000000000000000000002"
	testServiceID = "64f000000000000000000010"
	testBookingID = "64f000000000000000000020"
)

type mockBookingRepository struct {
	createFn       func(ctx context.Context, booking *model.Booking) error
	findByIDFn     func(ctx context.Context, id string) (*model.Booking, error)
	findDetailsFn  func(ctx context.Context, filter repository.BookingFilter, limit int, offset int64) ([]*model.BookingDetails, error)
	countFn        func(ctx context.Context, filter repository.BookingFilter) (int64, error)
	updateStatusFn func(ctx context.Context, id string, booking *model.Booking) error
	findBySlotFn   func(ctx context.Context, serviceID string, date time.Time, timeSlot string) ([]*model.Booking, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, booking)
	}
	booking.ID = testBookingID
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockBookingRepository) FindDetails(ctx context.Context, filter repository.BookingFilter, limit int, offset int64) ([]*model.BookingDetails, error) {
	if m.findDetailsFn != nil {
		return m.findDetailsFn(ctx, filter, limit, offset)
	}
	return nil, nil
}

func (m *mockBookingRepository) Count(ctx context.Context, filter repository.BookingFilter) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, filter)
	}
	return 0, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, booking *model.Booking) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, booking)
	}
	return nil
}

func (m *mockBookingRepository) FindBySlot(ctx context.Context, serviceID string, date time.Time, timeSlot string) ([]*model.Booking, error) {
	if m.findBySlotFn != nil {
		return m.findBySlotFn(ctx, serviceID, date, timeSlot)
	}
	return nil, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockLockRepository struct {
	createFn func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error)
	deleted  []string
}

func (m *mockLockRepository) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	if m.createFn != nil {
		return m.createFn(ctx, lock)
	}
	return lock, nil
}

func (m *mockLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	return nil
}

type mockCatalog struct {
	getByIDFn func(ctx context.Context, id string) (*model.Service, error)
}

func (m *mockCatalog) GetByID(ctx context.Context, id string) (*model.Service, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockCatalog) List(ctx context.Context, filter catalogrepo.ServiceFilter, limit int, offset int64) ([]*model.Service, int64, error) {
	return nil, 0, nil
}

func (m *mockCatalog) Categories(ctx context.Context) ([]string, error) { return nil, nil }

func (m *mockCatalog) Create(ctx context.Context, svc *model.Service) error { return nil }

func (m *mockCatalog) Update(ctx context.Context, id string, updates *model.ServiceUpdate) (*model.Service, error) {
	return nil, nil
}

func (m *mockCatalog) Deactivate(ctx context.Context, id string) error { return nil }

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishBookingEvent(ctx context.Context, eventType string, booking *model.Booking) error {
	p.events = append(p.events, eventType)
	return nil
}

func activeCatalog(price float64) *mockCatalog {
	return &mockCatalog{
		getByIDFn: func(ctx context.Context, id string) (*model.Service, error) {
			return &model.Service{
				ID:       id,
				Name:     "Standard Home Cleaning",
				Price:    price,
				Duration: 120,
				Category: model.CategoryResidential,
				IsActive: true,
			}, nil
		},
	}
}

func newTestBookingService(repo repository.BookingRepository, locks repository.BookingLockRepository, catalog *mockCatalog, events EventPublisher) BookingService {
	log := logger.New(logger.Config{Level: "error", Format: "text"})
	cfg := &config.Config{Log: log}
	return NewBookingService(repo, locks, catalog, validator.NewBookingValidator(log), events, cfg)
}

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		ServiceID:       testServiceID,
		AppointmentDate: time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02"),
		AppointmentTime: "10:00",
		Address: model.Address{
			Street:  "12 Pine St",
			City:    "San Francisco",
			State:   "ca",
			ZipCode: "94105",
		},
	}
}

func TestCreateBookingSnapshotsPrice(t *testing.T) {
	events := &recordingPublisher{}
	svc := newTestBookingService(&mockBookingRepository{}, &mockLockRepository{}, activeCatalog(149.50), events)

	booking, err := svc.Create(context.Background(), testUserID, validRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if booking.TotalPrice != 149.50 {
		t.Errorf("expected total price 149.50, got %v", booking.TotalPrice)
	}
	if booking.Status != model.StatusPending {
		t.Errorf("expected pending status, got %q", booking.Status)
	}
	if booking.Address.State != "CA" {
		t.Errorf("expected state normalized to CA, got %q", booking.Address.State)
	}
	if len(events.events) != 1 || events.events[0] != EventBookingCreated {
		t.Errorf("expected a single %s event, got %v", EventBookingCreated, events.events)
	}
}

func TestCreateBookingReleasesLock(t *testing.T) {
	locks := &mockLockRepository{}
	svc := newTestBookingService(&mockBookingRepository{}, locks, activeCatalog(100), &recordingPublisher{})

	if _, err := svc.Create(context.Background(), testUserID, validRequest()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(locks.deleted) != 1 {
		t.Fatalf("expected lock to be released, deleted=%v", locks.deleted)
	}
}

func TestCreateBookingInactiveService(t *testing.T) {
	catalog := &mockCatalog{
		getByIDFn: func(ctx context.Context, id string) (*model.Service, error) {
			return &model.Service{ID: id, IsActive: false}, nil
		},
	}
	svc := newTestBookingService(&mockBookingRepository{}, &mockLockRepository{}, catalog, &recordingPublisher{})

	_, err := svc.Create(context.Background(), testUserID, validRequest())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeServiceNotAvailable {
		t.Fatalf("expected SERVICE_NOT_AVAILABLE, got %v", err)
	}
}

func TestCreateBookingUnknownService(t *testing.T) {
	catalog := &mockCatalog{
		getByIDFn: func(ctx context.Context, id string) (*model.Service, error) {
			return nil, apperrors.ServiceNotFound()
		},
	}
	svc := newTestBookingService(&mockBookingRepository{}, &mockLockRepository{}, catalog, &recordingPublisher{})

	_, err := svc.Create(context.Background(), testUserID, validRequest())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeServiceNotAvailable {
		t.Fatalf("expected SERVICE_NOT_AVAILABLE, got %v", err)
	}
}

func TestCreateBookingSlotTaken(t *testing.T) {
	repo := &mockBookingRepository{
		findBySlotFn: func(ctx context.Context, serviceID string, date time.Time, timeSlot string) ([]*model.Booking, error) {
			return []*model.Booking{{ID: "existing", Status: model.StatusConfirmed}}, nil
		},
	}
	events := &recordingPublisher{}
	svc := newTestBookingService(repo, &mockLockRepository{}, activeCatalog(100), events)

	_, err := svc.Create(context.Background(), testUserID, validRequest())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeTimeSlotUnavailable {
		t.Fatalf("expected TIME_SLOT_UNAVAILABLE, got %v", err)
	}
	if len(events.events) != 0 {
		t.Errorf("no event should be published for a failed booking, got %v", events.events)
	}
}

func TestCreateBookingLockHeld(t *testing.T) {
	locks := &mockLockRepository{
		createFn: func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
			return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		},
	}
	svc := newTestBookingService(&mockBookingRepository{}, locks, activeCatalog(100), &recordingPublisher{})

	_, err := svc.Create(context.Background(), testUserID, validRequest())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeTimeSlotUnavailable {
		t.Fatalf("expected TIME_SLOT_UNAVAILABLE, got %v", err)
	}
}

func TestCreateBookingPastDate(t *testing.T) {
	svc := newTestBookingService(&mockBookingRepository{}, &mockLockRepository{}, activeCatalog(100), &recordingPublisher{})

	req := validRequest()
	req.AppointmentDate = "2020-01-01"

	_, err := svc.Create(context.Background(), testUserID, req)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func repoWithBooking(booking *model.Booking) *mockBookingRepository {
	return &mockBookingRepository{
		findByIDFn: func(ctx context.Context, id string) (*model.Booking, error) {
			if id == booking.ID {
				found := *booking
				return &found, nil
			}
			return nil, bookingserrors.ErrNotFound
		},
	}
}

func pendingBooking() *model.Booking {
	return &model.Booking{
		ID:        testBookingID,
		UserID:    testUserID,
		ServiceID: testServiceID,
		Status:    model.StatusPending,
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		wantCode string
	}{
		{"pending to confirmed", model.StatusPending, model.StatusConfirmed, ""},
		{"pending to cancelled", model.StatusPending, model.StatusCancelled, ""},
		{"confirmed to completed", model.StatusConfirmed, model.StatusCompleted, ""},
		{"confirmed to cancelled", model.StatusConfirmed, model.StatusCancelled, ""},
		{"pending to completed", model.StatusPending, model.StatusCompleted, apperrors.CodeInvalidStatusTransition},
		{"completed to cancelled", model.StatusCompleted, model.StatusCancelled, apperrors.CodeInvalidStatusTransition},
		{"completed to pending", model.StatusCompleted, model.StatusPending, apperrors.CodeInvalidStatusTransition},
		{"cancelled to pending", model.StatusCancelled, model.StatusPending, apperrors.CodeInvalidStatusTransition},
		{"cancelled to confirmed", model.StatusCancelled, model.StatusConfirmed, apperrors.CodeInvalidStatusTransition},
		{"confirmed to pending", model.StatusConfirmed, model.StatusPending, apperrors.CodeInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := pendingBooking()
			booking.Status = tt.from
			svc := newTestBookingService(repoWithBooking(booking), &mockLockRepository{}, activeCatalog(100), &recordingPublisher{})

			_, err := svc.UpdateStatus(context.Background(), testBookingID, testAdminID, model.RoleAdmin, &model.StatusUpdate{Status: tt.to})

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("expected transition to succeed, got %v", err)
				}
				return
			}
			appErr := apperrors.AsAppError(err)
			if appErr == nil || appErr.Code != tt.wantCode {
				t.Fatalf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestUpdateStatusSetsCompletedAt(t *testing.T) {
	booking := pendingBooking()
	booking.Status = model.StatusConfirmed

	var saved *model.Booking
	repo := repoWithBooking(booking)
	repo.updateStatusFn = func(ctx context.Context, id string, b *model.Booking) error {
		saved = b
		return nil
	}
	svc := newTestBookingService(repo, &mockLockRepository{}, activeCatalog(100), &recordingPublisher{})

	_, err := svc.UpdateStatus(context.Background(), testBookingID, testAdminID, model.RoleAdmin, &model.StatusUpdate{Status: model.StatusCompleted})
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if saved == nil || saved.CompletedAt == nil {
		t.Fatal("expected completed_at to be set")
	}
}

func TestUpdateStatusNonOwner(t *testing.T) {
	svc := newTestBookingService(repoWithBooking(pendingBooking()), &mockLockRepository{}, activeCatalog(100), &recordingPublisher{})

	_, err := svc.UpdateStatus(context.Background(), testBookingID, "64f0000000000000000000aa", model.RoleUser, &model.StatusUpdate{Status: model.StatusCancelled})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotAuthorized {
		t.Fatalf("expected NOT_AUTHORIZED, got %v", err)
	}
}

func TestUpdateStatusOwnerCanConfirm(t *testing.T) {
	events := &recordingPublisher{}
	svc := newTestBookingService(repoWithBooking(pendingBooking()), &mockLockRepository{}, activeCatalog(100), events)

	booking, err := svc.UpdateStatus(context.Background(), testBookingID, testUserID, model.RoleUser, &model.StatusUpdate{Status: model.StatusConfirmed})
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if booking.Status != model.StatusConfirmed {
		t.Errorf("expected status confirmed, got %q", booking.Status)
	}
	if len(events.events) != 1 || events.events[0] != EventBookingStatusChanged {
		t.Errorf("expected %s event, got %v", EventBookingStatusChanged, events.events)
	}
}

func TestUpdateStatusOwnerCanCancel(t *testing.T) {
	events := &recordingPublisher{}
	svc := newTestBookingService(repoWithBooking(pendingBooking()), &mockLockRepository{}, activeCatalog(100), events)

	booking, err := svc.UpdateStatus(context.Background(), testBookingID, testUserID, model.RoleUser, &model.StatusUpdate{
		Status:             model.StatusCancelled,
		CancellationReason: "schedule conflict",
	})
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if booking.CancelledAt == nil {
		t.Error("expected cancelled_at to be set")
	}
	if booking.CancellationReason != "schedule conflict" {
		t.Errorf("expected cancellation reason kept, got %q", booking.CancellationReason)
	}
	if len(events.events) != 1 || events.events[0] != EventBookingCancelled {
		t.Errorf("expected %s event, got %v", EventBookingCancelled, events.events)
	}
}

func TestUpdateStatusIgnoresReasonWithoutCancel(t *testing.T) {
	svc := newTestBookingService(repoWithBooking(pendingBooking()), &mockLockRepository{}, activeCatalog(100), &recordingPublisher{})

	booking, err := svc.UpdateStatus(context.Background(), testBookingID, testAdminID, model.RoleAdmin, &model.StatusUpdate{
		Status:             model.StatusConfirmed,
		CancellationReason: "not applicable",
	})
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if booking.Status != model.StatusConfirmed {
		t.Errorf("expected status confirmed, got %q", booking.Status)
	}
	if booking.CancellationReason != "" {
		t.Errorf("expected reason to be ignored, got %q", booking.CancellationReason)
	}
}

func TestCancelCompletedBooking(t *testing.T) {
	booking := pendingBooking()
	booking.Status = model.StatusCompleted
	svc := newTestBookingService(repoWithBooking(booking), &mockLockRepository{}, activeCatalog(100), &recordingPublisher{})

	_, err := svc.Cancel(context.Background(), testBookingID, testUserID, model.RoleUser, nil)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeCannotCancelCompleted {
		t.Fatalf("expected CANNOT_CANCEL_COMPLETED, got %v", err)
	}
}

func TestCancelAlreadyCancelled(t *testing.T) {
	booking := pendingBooking()
	booking.Status = model.StatusCancelled
	svc := newTestBookingService(repoWithBooking(booking), &mockLockRepository{}, activeCatalog(100), &recordingPublisher{})

	_, err := svc.Cancel(context.Background(), testBookingID, testUserID, model.RoleUser, nil)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeAlreadyCancelled {
		t.Fatalf("expected ALREADY_CANCELLED, got %v", err)
	}
}

func TestCancelNonOwner(t *testing.T) {
	svc := newTestBookingService(repoWithBooking(pendingBooking()), &mockLockRepository{}, activeCatalog(100), &recordingPublisher{})

	_, err := svc.Cancel(context.Background(), testBookingID, "64f0000000000000000000aa", model.RoleUser, nil)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotAuthorized {
		t.Fatalf("expected NOT_AUTHORIZED, got %v", err)
	}
}

func TestCancelNotFound(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFn: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, bookingserrors.ErrNotFound
		},
	}
	svc := newTestBookingService(repo, &mockLockRepository{}, activeCatalog(100), &recordingPublisher{})

	_, err := svc.Cancel(context.Background(), testBookingID, testUserID, model.RoleUser, nil)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeBookingNotFound {
		t.Fatalf("expected BOOKING_NOT_FOUND, got %v", err)
	}
}

func TestGetByIDOwnerOnly(t *testing.T) {
	svc := newTestBookingService(repoWithBooking(pendingBooking()), &mockLockRepository{}, activeCatalog(100), &recordingPublisher{})

	if _, err := svc.GetByID(context.Background(), testBookingID, testUserID, model.RoleUser); err != nil {
		t.Fatalf("owner should see own booking: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), testBookingID, testAdminID, model.RoleAdmin); err != nil {
		t.Fatalf("admin should see any booking: %v", err)
	}

	_, err := svc.GetByID(context.Background(), testBookingID, "64f0000000000000000000aa", model.RoleUser)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotAuthorized {
		t.Fatalf("expected NOT_AUTHORIZED, got %v", err)
	}
}

func TestListForUserUnknownStatus(t *testing.T) {
	svc := newTestBookingService(&mockBookingRepository{}, &mockLockRepository{}, activeCatalog(100), &recordingPublisher{})

	_, _, err := svc.ListForUser(context.Background(), testUserID, "archived", 10, 0)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}
