package service

import (
	"context"
	"time"

	"github.com/dukerupert/tabletab/internal/auth"
	"github.com/dukerupert/tabletab/internal/domain"
)

// ReportService summarizes settled sales.
type ReportService interface {
	// DailySales sums PAID orders invoiced on day's calendar date in the
	// billing time zone. A zero day means today.
	DailySales(ctx context.Context, day time.Time) (domain.DailySales, error)
}

type reportService struct {
	orders   domain.OrderRepository
	location *time.Location
	gate     *Gate
	now      func() time.Time
}

// NewReportService creates a new ReportService instance
func NewReportService(orders domain.OrderRepository, loc *time.Location, gate *Gate) ReportService {
	if loc == nil {
		loc = time.UTC
	}
	if gate == nil {
		gate = NewGate(nil, nil)
	}
	return &reportService{orders: orders, location: loc, gate: gate, now: time.Now}
}

func (s *reportService) DailySales(ctx context.Context, day time.Time) (domain.DailySales, error) {
	if err := s.gate.Authorize(ctx, "service.report.daily_sales", auth.ViewReports); err != nil {
		return domain.DailySales{}, err
	}
	if day.IsZero() {
		day = s.now()
	}
	y, m, d := day.In(s.location).Date()
	return s.orders.DailySales(ctx, time.Date(y, m, d, 0, 0, 0, 0, s.location))
}
