package service

import (
	"context"
	"time"
)

// DashboardService assembles the dashboard view: the ledger statistics
// snapshot plus the weekly activity trend.
type DashboardService struct {
	ledger *LedgerService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(ledger *LedgerService) *DashboardService {
	return &DashboardService{ledger: ledger}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	LedgerStats
	WeeklyActivity []DailyActivityPoint `json:"weekly_activity"`
}

// DailyActivityPoint represents one day of order activity in the trend chart
type DailyActivityPoint struct {
	Day     string  `json:"day"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// GetDashboardStats returns the statistics snapshot and the 7-day trend
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	ledgerStats, err := s.ledger.Stats(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.ledger.ListOrders(ctx, "")
	if err != nil {
		return nil, err
	}

	// Bucket non-cancelled orders by creation day over the last 7 days.
	now := time.Now()
	points := make([]DailyActivityPoint, 7)
	type bucket struct{ index int }
	days := make(map[string]bucket, 7)
	for i := 0; i < 7; i++ {
		d := now.AddDate(0, 0, -(6 - i))
		key := d.Format("2006-01-02")
		points[i] = DailyActivityPoint{Day: d.Format("Mon")}
		days[key] = bucket{index: i}
	}

	for _, order := range orders {
		if order.WorkStatus.IsCancelled() {
			continue
		}
		if b, ok := days[order.CreatedDate.Format("2006-01-02")]; ok {
			points[b.index].Orders++
			points[b.index].Revenue += order.GetPaidDecimal()
		}
	}

	return &DashboardStats{
		LedgerStats:    *ledgerStats,
		WeeklyActivity: points,
	}, nil
}
