package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/trexivo/tinova-pos/internal/domain/entity"
)

// OrderRepository defines storage operations for the order ledger.
// The ledger is ordered newest-created first; Insert places at the head
// and List/Search preserve that order.
type OrderRepository interface {
	// Insert adds an order at the head of the ledger. The invoice code must
	// already be allocated; a duplicate code is a conflict.
	Insert(ctx context.Context, order *entity.Order) error
	// GetByID returns nil, nil when no order matches.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// List returns the full ledger, newest first.
	List(ctx context.Context) ([]entity.Order, error)
	// Search returns orders whose client name or invoice code contains term,
	// case-insensitively. An empty term matches everything.
	Search(ctx context.Context, term string) ([]entity.Order, error)
	// Update replaces the stored order with the same ID. Missing ID is a no-op.
	Update(ctx context.Context, order *entity.Order) error
	// Delete removes the order permanently. Missing ID is a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
	// NextInvoiceCode allocates a fresh invoice code, unique for the session.
	NextInvoiceCode(ctx context.Context) (string, error)
}
