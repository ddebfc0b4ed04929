package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/trexivo/tinova-pos/internal/domain/entity"
	"github.com/trexivo/tinova-pos/internal/domain/enum"
	"github.com/trexivo/tinova-pos/internal/domain/repository"
)

// SeedDemoOrders loads the demo ledger the dashboard ships with. Orders are
// inserted oldest first so the newest ends up at the head of the ledger.
func SeedDemoOrders(ctx context.Context, repo repository.OrderRepository) error {
	now := time.Now()
	demo := []entity.Order{
		{
			InvoiceCode: "NV-8291",
			ClientName:  "James Wilson",
			Phone:       "+1 555 0101",
			Service:     "UI/UX Design",
			Paid:        120000,
			Due:         30000,
			Total:       150000,
			WorkStatus:  enum.WorkStatusSuccess,
			CreatedDate: now.AddDate(0, 0, -2),
		},
		{
			InvoiceCode: "NV-4921",
			ClientName:  "Sophia Chen",
			Phone:       "+1 555 0202",
			Service:     "Cloud Migration",
			Paid:        250000,
			Due:         0,
			Total:       250000,
			WorkStatus:  enum.WorkStatusConfirmed,
			CreatedDate: now.AddDate(0, 0, -1),
		},
		{
			InvoiceCode: "NV-1029",
			ClientName:  "Marcus Brown",
			Phone:       "+1 555 0303",
			Service:     "SEO Audit",
			Paid:        50000,
			Due:         50000,
			Total:       100000,
			WorkStatus:  enum.WorkStatusPending,
			CreatedDate: now,
		},
	}

	for i := range demo {
		demo[i].ID = uuid.New()
		if err := repo.Insert(ctx, &demo[i]); err != nil {
			return err
		}
	}
	return nil
}
