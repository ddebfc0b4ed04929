package service_test

import (
	"context"
	"testing"

	"github.com/trexivo/tinova-pos/internal/application/service"
)

func TestGetDashboardStats(t *testing.T) {
	ctx := context.Background()
	ledger := newSeededLedger(t)
	dashboard := service.NewDashboardService(ledger)

	stats, err := dashboard.GetDashboardStats(ctx)
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}

	if stats.TotalIncome != 4200 || stats.TotalDue != 800 {
		t.Errorf("snapshot = income %v due %v, want 4200/800", stats.TotalIncome, stats.TotalDue)
	}

	if len(stats.WeeklyActivity) != 7 {
		t.Fatalf("WeeklyActivity has %d points, want 7", len(stats.WeeklyActivity))
	}

	// The seed orders were created today, yesterday and two days ago; all
	// three land inside the 7-day window.
	var totalOrders int
	var totalRevenue float64
	for _, p := range stats.WeeklyActivity {
		totalOrders += p.Orders
		totalRevenue += p.Revenue
	}
	if totalOrders != 3 {
		t.Errorf("trend counts %d orders, want 3", totalOrders)
	}
	if totalRevenue != 4200 {
		t.Errorf("trend revenue = %v, want 4200", totalRevenue)
	}

	// Today is the last bucket and holds the newest seed order (paid 500).
	today := stats.WeeklyActivity[6]
	if today.Orders != 1 || today.Revenue != 500 {
		t.Errorf("today's bucket = %+v, want 1 order / 500 revenue", today)
	}
}

func TestDashboardTrendExcludesCancelled(t *testing.T) {
	ctx := context.Background()
	ledger := newSeededLedger(t)
	dashboard := service.NewDashboardService(ledger)

	pending := findOrder(t, ledger, "marcus")
	if _, err := ledger.CancelOrder(ctx, pending.ID); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}

	stats, err := dashboard.GetDashboardStats(ctx)
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}

	var totalOrders int
	for _, p := range stats.WeeklyActivity {
		totalOrders += p.Orders
	}
	if totalOrders != 2 {
		t.Errorf("trend counts %d orders after cancel, want 2", totalOrders)
	}
}
