package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"tidybook/internal/admin/repository"
	autherrors "tidybook/internal/auth/errors"
	authrepo "tidybook/internal/auth/repository"
	catalogrepo "tidybook/internal/catalog/repository"
	"tidybook/pkg/config"
	apperrors "tidybook/pkg/errors"
	"tidybook/pkg/model"
)

const (
	popularServicesLimit = 5
	recentBookingsLimit  = 10
)

type AdminService interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
	ListUsers(ctx context.Context, filter authrepo.UserFilter, limit int, offset int64) ([]*model.User, int64, error)
	SetUserStatus(ctx context.Context, id string, isActive bool) (*model.User, error)
}

type adminService struct {
	dashboard repository.DashboardRepository
	users     authrepo.UserRepository
	services  catalogrepo.ServiceRepository
	cfg       *config.Config
}

func NewAdminService(
	dashboard repository.DashboardRepository,
	users authrepo.UserRepository,
	services catalogrepo.ServiceRepository,
	cfg *config.Config,
) AdminService {
	return &adminService{
		dashboard: dashboard,
		users:     users,
		services:  services,
		cfg:       cfg,
	}
}

func (s *adminService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	stats := &model.DashboardStats{}
	var firstErr error
	var mu sync.Mutex
	var wg sync.WaitGroup

	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			record(fn())
		}()
	}

	run(func() error {
		counts, err := s.dashboard.StatusCounts(ctx)
		if err != nil {
			return err
		}
		stats.PendingBookings = counts[model.StatusPending]
		stats.ConfirmedBookings = counts[model.StatusConfirmed]
		stats.CompletedBookings = counts[model.StatusCompleted]
		stats.CancelledBookings = counts[model.StatusCancelled]
		stats.TotalBookings = stats.PendingBookings + stats.ConfirmedBookings +
			stats.CompletedBookings + stats.CancelledBookings
		return nil
	})

	run(func() error {
		count, err := s.users.Count(ctx, authrepo.UserFilter{Role: model.RoleUser})
		stats.TotalUsers = count
		return err
	})

	run(func() error {
		active := true
		count, err := s.services.Count(ctx, catalogrepo.ServiceFilter{IsActive: &active})
		stats.TotalServices = count
		return err
	})

	run(func() error {
		count, err := s.dashboard.CountBookingsBetween(ctx, monthStart, now)
		stats.MonthlyBookings = count
		return err
	})

	run(func() error {
		count, err := s.dashboard.CountBookingsBetween(ctx, lastMonthStart, monthStart)
		stats.LastMonthBookings = count
		return err
	})

	run(func() error {
		total, err := s.dashboard.Revenue(ctx, nil, nil)
		stats.TotalRevenue = total
		return err
	})

	run(func() error {
		monthly, err := s.dashboard.Revenue(ctx, &monthStart, nil)
		stats.MonthlyRevenue = monthly
		return err
	})

	run(func() error {
		last, err := s.dashboard.Revenue(ctx, &lastMonthStart, &monthStart)
		stats.LastMonthRevenue = last
		return err
	})

	run(func() error {
		popular, err := s.dashboard.PopularServices(ctx, popularServicesLimit)
		stats.PopularServices = popular
		return err
	})

	run(func() error {
		recent, err := s.dashboard.RecentBookings(ctx, recentBookingsLimit)
		stats.RecentBookings = recent
		return err
	})

	wg.Wait()
	if firstErr != nil {
		s.cfg.Log.Error("Failed to build dashboard", "error", firstErr)
		return nil, apperrors.Internal("Failed to build dashboard", firstErr)
	}

	stats.BookingGrowth = GrowthPercent(float64(stats.MonthlyBookings), float64(stats.LastMonthBookings))
	stats.RevenueGrowth = GrowthPercent(stats.MonthlyRevenue, stats.LastMonthRevenue)

	return stats, nil
}

func (s *adminService) ListUsers(ctx context.Context, filter authrepo.UserFilter, limit int, offset int64) ([]*model.User, int64, error) {
	var count int64
	var users []*model.User
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.users.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count users", "error", errCount)
			errCount = apperrors.Internal("Failed to count users", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		users, errFind = s.users.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list users", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve users", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return users, count, nil
}

func (s *adminService) SetUserStatus(ctx context.Context, id string, isActive bool) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.users.UpdateStatus(ctx, id, isActive)
	if err != nil {
		if errors.Is(err, autherrors.ErrNotFound) || errors.Is(err, autherrors.ErrInvalidID) {
			return nil, apperrors.UserNotFound()
		}
		s.cfg.Log.Error("Failed to update user status", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update user status", err)
	}

	s.cfg.Log.Info("User status updated", "id", id, "is_active", isActive)
	return user, nil
}

// GrowthPercent is the month-over-month change, rounded to one decimal.
// A jump from zero counts as 100% growth.
func GrowthPercent(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}

	growth := (current - previous) / previous * 100
	return math.Round(growth*10) / 10
}
