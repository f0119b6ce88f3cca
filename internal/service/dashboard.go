package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
)

// Counter counts the rows of one table
type Counter interface {
	Count(ctx context.Context, cond filter.Condition) (int, error)
}

// BookingStats are the booking queries shown on the dashboard
type BookingStats interface {
	CountByStatus(ctx context.Context, status model.BookingStatus) (int, error)
	CountBetween(ctx context.Context, from, to time.Time) (int, error)
	Recent(ctx context.Context, limit int) ([]model.Booking, error)
}

// DashboardService builds the back-office landing summary
type DashboardService struct {
	counters map[string]Counter
	bookings BookingStats
	now      func() time.Time
}

// NewDashboardService creates a dashboard over the named counters
func NewDashboardService(counters map[string]Counter, bookings BookingStats) *DashboardService {
	return &DashboardService{
		counters: counters,
		bookings: bookings,
		now:      time.Now,
	}
}

// Summary returns entity counts and booking activity. A failing count is
// logged and reported as zero.
func (s *DashboardService) Summary(ctx context.Context) (*model.Dashboard, error) {
	names := make([]string, 0, len(s.counters))
	for name := range s.counters {
		names = append(names, name)
	}
	sort.Strings(names)

	counts := make(map[string]int64, len(names))
	for _, name := range names {
		n, err := s.counters[name].Count(ctx, filter.Condition{})
		if err != nil {
			slog.Warn("dashboard count failed",
				slog.String("table", name),
				slog.String("error", err.Error()),
			)
		}
		counts[name] = int64(n)
	}

	dash := &model.Dashboard{Counts: counts}

	pending, err := s.bookings.CountByStatus(ctx, model.BookingStatusPending)
	if err != nil {
		return nil, err
	}
	dash.PendingBookings = int64(pending)

	start := s.now().UTC().Truncate(24 * time.Hour)
	today, err := s.bookings.CountBetween(ctx, start, start.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	dash.BookingsToday = int64(today)

	recent, err := s.bookings.Recent(ctx, model.DashboardRecentBookings)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []model.Booking{}
	}
	dash.RecentBookings = recent

	return dash, nil
}
