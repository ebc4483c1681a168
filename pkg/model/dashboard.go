package model

// PopularService is a catalog entry ranked by booking volume.
type PopularService struct {
	ServiceID    string          `json:"serviceId" bson:"_id"`
	BookingCount int64           `json:"bookingCount" bson:"booking_count"`
	Service      *ServiceSummary `json:"service,omitempty" bson:"service,omitempty"`
}

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	TotalBookings     int64 `json:"totalBookings"`
	PendingBookings   int64 `json:"pendingBookings"`
	ConfirmedBookings int64 `json:"confirmedBookings"`
	CompletedBookings int64 `json:"completedBookings"`
	CancelledBookings int64 `json:"cancelledBookings"`

	TotalUsers    int64 `json:"totalUsers"`
	TotalServices int64 `json:"totalServices"`

	MonthlyBookings   int64   `json:"monthlyBookings"`
	LastMonthBookings int64   `json:"lastMonthBookings"`
	BookingGrowth     float64 `json:"bookingGrowth"`

	TotalRevenue     float64 `json:"totalRevenue"`
	MonthlyRevenue   float64 `json:"monthlyRevenue"`
	LastMonthRevenue float64 `json:"lastMonthRevenue"`
	RevenueGrowth    float64 `json:"revenueGrowth"`

	PopularServices []*PopularService `json:"popularServices"`
	RecentBookings  []*BookingDetails `json:"recentBookings"`
}
