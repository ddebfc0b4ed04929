package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/trexivo/tinova-pos/internal/domain/entity"
	"github.com/trexivo/tinova-pos/internal/domain/repository"
	"github.com/trexivo/tinova-pos/pkg/apperror"
)

// invoiceCodeStart is the first candidate for the counter-backed allocator.
// Codes below it are reserved for seed data.
const invoiceCodeStart = 1000

// orderRepository is the in-memory ledger store. The ledger lives only for
// the lifetime of the process; orders are held newest-first in a slice
// guarded by a single RWMutex.
type orderRepository struct {
	mu      sync.RWMutex
	orders  []entity.Order
	usedInv map[string]struct{}
	nextInv int
}

// NewOrderRepository creates an empty in-memory order repository.
func NewOrderRepository() repository.OrderRepository {
	return &orderRepository{
		usedInv: make(map[string]struct{}),
		nextInv: invoiceCodeStart,
	}
}

func (r *orderRepository) Insert(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.usedInv[order.InvoiceCode]; taken {
		return apperror.NewConflictError(fmt.Sprintf("Invoice code %s already exists", order.InvoiceCode))
	}
	r.usedInv[order.InvoiceCode] = struct{}{}

	// Newest order goes to the head of the ledger.
	r.orders = append([]entity.Order{*order}, r.orders...)
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			order := r.orders[i]
			return &order, nil
		}
	}
	return nil, nil
}

func (r *orderRepository) List(ctx context.Context) ([]entity.Order, error) {
	return r.Search(ctx, "")
}

func (r *orderRepository) Search(ctx context.Context, term string) ([]entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term = strings.ToLower(term)
	matched := make([]entity.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if term == "" ||
			strings.Contains(strings.ToLower(order.ClientName), term) ||
			strings.Contains(strings.ToLower(order.InvoiceCode), term) {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == order.ID {
			r.orders[i] = *order
			return nil
		}
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

// NextInvoiceCode allocates codes from a monotonic counter, skipping any code
// already present in the ledger.
func (r *orderRepository) NextInvoiceCode(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		code := fmt.Sprintf("NV-%04d", r.nextInv)
		r.nextInv++
		if _, taken := r.usedInv[code]; !taken {
			return code, nil
		}
	}
}
