package service

import (
	"context"
	"testing"
	"time"

	authrepo "tidybook/internal/auth/repository"
	catalogrepo "tidybook/internal/catalog/repository"
	"tidybook/pkg/config"
	"tidybook/pkg/logger"
	"tidybook/pkg/model"
)

type mockDashboardRepository struct {
	statusCountsFn         func(ctx context.Context) (map[string]int64, error)
	countBookingsBetweenFn func(ctx context.Context, from, to time.Time) (int64, error)
	revenueFn              func(ctx context.Context, from, to *time.Time) (float64, error)
	popularServicesFn      func(ctx context.Context, limit int) ([]*model.PopularService, error)
	recentBookingsFn       func(ctx context.Context, limit int) ([]*model.BookingDetails, error)
}

func (m *mockDashboardRepository) StatusCounts(ctx context.Context) (map[string]int64, error) {
	return m.statusCountsFn(ctx)
}

func (m *mockDashboardRepository) CountBookingsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return m.countBookingsBetweenFn(ctx, from, to)
}

func (m *mockDashboardRepository) Revenue(ctx context.Context, from, to *time.Time) (float64, error) {
	return m.revenueFn(ctx, from, to)
}

func (m *mockDashboardRepository) PopularServices(ctx context.Context, limit int) ([]*model.PopularService, error) {
	return m.popularServicesFn(ctx, limit)
}

func (m *mockDashboardRepository) RecentBookings(ctx context.Context, limit int) ([]*model.BookingDetails, error) {
	return m.recentBookingsFn(ctx, limit)
}

type mockUserRepository struct {
	countFn func(ctx context.Context, filter authrepo.UserFilter) (int64, error)
}

func (m *mockUserRepository) Create(context.Context, *model.User) error { return nil }
func (m *mockUserRepository) FindByID(context.Context, string) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepository) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepository) Update(context.Context, string, *model.User) error { return nil }
func (m *mockUserRepository) UpdateStatus(context.Context, string, bool) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepository) FindAll(context.Context, authrepo.UserFilter, int, int64) ([]*model.User, error) {
	return nil, nil
}
func (m *mockUserRepository) Count(ctx context.Context, filter authrepo.UserFilter) (int64, error) {
	return m.countFn(ctx, filter)
}

type mockServiceRepository struct {
	countFn func(ctx context.Context, filter catalogrepo.ServiceFilter) (int64, error)
}

func (m *mockServiceRepository) Create(context.Context, *model.Service) error { return nil }
func (m *mockServiceRepository) FindByID(context.Context, string) (*model.Service, error) {
	return nil, nil
}
func (m *mockServiceRepository) FindAll(context.Context, catalogrepo.ServiceFilter, int, int64) ([]*model.Service, error) {
	return nil, nil
}
func (m *mockServiceRepository) Count(ctx context.Context, filter catalogrepo.ServiceFilter) (int64, error) {
	return m.countFn(ctx, filter)
}
func (m *mockServiceRepository) Update(context.Context, string, *model.Service) error { return nil }
func (m *mockServiceRepository) Deactivate(context.Context, string) error             { return nil }
func (m *mockServiceRepository) Categories(context.Context) ([]string, error)         { return nil, nil }

func newTestAdminService(dashboard *mockDashboardRepository) AdminService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT}),
	}
	users := &mockUserRepository{
		countFn: func(context.Context, authrepo.UserFilter) (int64, error) { return 40, nil },
	}
	services := &mockServiceRepository{
		countFn: func(context.Context, catalogrepo.ServiceFilter) (int64, error) { return 6, nil },
	}
	return NewAdminService(dashboard, users, services, cfg)
}

func TestDashboardComputesGrowth(t *testing.T) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	var lastMonthRevenueQueried bool
	dashboard := &mockDashboardRepository{
		statusCountsFn: func(context.Context) (map[string]int64, error) {
			return map[string]int64{
				model.StatusPending:   3,
				model.StatusConfirmed: 2,
				model.StatusCompleted: 10,
				model.StatusCancelled: 1,
			}, nil
		},
		countBookingsBetweenFn: func(_ context.Context, from, _ time.Time) (int64, error) {
			if from.Equal(lastMonthStart) {
				return 5, nil
			}
			return 10, nil
		},
		revenueFn: func(_ context.Context, from, to *time.Time) (float64, error) {
			switch {
			case from == nil && to == nil:
				return 5000, nil
			case to == nil:
				return 300, nil
			default:
				if !from.Equal(lastMonthStart) || !to.Equal(monthStart) {
					t.Errorf("last month revenue window = [%v, %v)", from, to)
				}
				lastMonthRevenueQueried = true
				return 200, nil
			}
		},
		popularServicesFn: func(context.Context, int) ([]*model.PopularService, error) {
			return nil, nil
		},
		recentBookingsFn: func(context.Context, int) ([]*model.BookingDetails, error) {
			return nil, nil
		},
	}

	stats, err := newTestAdminService(dashboard).Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard() error: %v", err)
	}

	if !lastMonthRevenueQueried {
		t.Fatal("last month revenue was never queried")
	}
	if stats.TotalBookings != 16 {
		t.Errorf("total bookings = %d, want 16", stats.TotalBookings)
	}
	if stats.MonthlyRevenue != 300 || stats.LastMonthRevenue != 200 {
		t.Errorf("revenue = %v / %v, want 300 / 200", stats.MonthlyRevenue, stats.LastMonthRevenue)
	}
	if stats.RevenueGrowth != 50 {
		t.Errorf("revenue growth = %v, want 50", stats.RevenueGrowth)
	}
	if stats.BookingGrowth != 100 {
		t.Errorf("booking growth = %v, want 100", stats.BookingGrowth)
	}
	if stats.TotalRevenue != 5000 {
		t.Errorf("total revenue = %v, want 5000", stats.TotalRevenue)
	}
}

func TestGrowthPercent(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"no activity either month", 0, 0, 0},
		{"first activity ever", 12, 0, 100},
		{"doubled", 20, 10, 100},
		{"halved", 5, 10, -50},
		{"flat", 10, 10, 0},
		{"rounded to one decimal", 10, 3, 233.3},
		{"fractional revenue", 149.50, 100, 49.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GrowthPercent(tt.current, tt.previous); got != tt.want {
				t.Errorf("GrowthPercent(%v, %v) = %v, want %v", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}
