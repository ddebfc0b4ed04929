package service

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/trexivo/tinova-pos/internal/domain/entity"
	"github.com/trexivo/tinova-pos/internal/domain/enum"
	"github.com/trexivo/tinova-pos/internal/domain/repository"
	"github.com/trexivo/tinova-pos/pkg/apperror"
	"github.com/trexivo/tinova-pos/pkg/logger"
)

// LedgerService owns the order ledger. It is the only mutation surface over
// the collection: create, advance, cancel, settle and delete, plus the
// read-only filtered view and the derived statistics snapshot.
type LedgerService struct {
	orderRepo repository.OrderRepository
	// Serializes read-modify-write mutations; the ledger models a single
	// operator session, so one logical writer at a time is the contract.
	mu  sync.Mutex
	log zerolog.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(orderRepo repository.OrderRepository) *LedgerService {
	return &LedgerService{
		orderRepo: orderRepo,
		log:       logger.WithComponent("ledger"),
	}
}

// CreateOrderInput represents the create order input. Amounts are decimals.
type CreateOrderInput struct {
	ClientName string
	Phone      string
	Service    string
	Paid       float64
	Due        float64
}

// LedgerStats is the statistics snapshot derived from the ledger. Cancelled
// orders are excluded from all four aggregates. Amounts are decimals.
type LedgerStats struct {
	TotalIncome  float64 `json:"total_income"`
	TotalDue     float64 `json:"total_due"`
	SuccessCount int     `json:"success_count"`
	PendingCount int     `json:"pending_count"`
}

// CreateOrder validates the input and inserts a new Pending order at the
// head of the ledger.
func (s *LedgerService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.ClientName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "client_name", Message: "Client name is required"})
	}
	if strings.TrimSpace(input.Service) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "service", Message: "Service is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	paid := toCents(input.Paid)
	due := toCents(input.Due)

	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		phone = "N/A"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invoiceCode, err := s.orderRepo.NextInvoiceCode(ctx)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		ID:          uuid.New(),
		InvoiceCode: invoiceCode,
		ClientName:  strings.TrimSpace(input.ClientName),
		Phone:       phone,
		Service:     strings.TrimSpace(input.Service),
		Paid:        paid,
		Due:         due,
		Total:       paid + due,
		WorkStatus:  enum.WorkStatusPending,
		CreatedDate: time.Now(),
	}

	if err := s.orderRepo.Insert(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("invoice_code", order.InvoiceCode).
		Float64("total", order.GetTotalDecimal()).
		Msg("Order created")

	return order, nil
}

// GetOrder fetches a single order by ID.
func (s *LedgerService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders returns the filtered ledger view, newest first. An empty search
// term returns the full ledger.
func (s *LedgerService) ListOrders(ctx context.Context, search string) ([]entity.Order, error) {
	return s.orderRepo.Search(ctx, search)
}

// AdvanceStatus moves an order to the next stage of the fulfillment cycle
// Pending -> Confirmed -> Success -> Pending. Advancing a cancelled order is
// a no-op and returns the order unchanged.
func (s *LedgerService) AdvanceStatus(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.WorkStatus.IsCancelled() {
		return order, nil
	}

	order.WorkStatus = order.WorkStatus.Next()
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("work_status", order.WorkStatus.String()).
		Msg("Order status advanced")

	return order, nil
}

// CancelOrder marks an order Cancelled. Cancellation is absorbing: the order
// stays in the ledger listing with its financial fields frozen, but leaves
// every statistic. The caller is expected to have confirmed with the user.
func (s *LedgerService) CancelOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	order.WorkStatus = enum.WorkStatusCancelled
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("invoice_code", order.InvoiceCode).
		Msg("Order cancelled")

	return order, nil
}

// SettleDue reclassifies the outstanding due as paid: paid becomes total and
// due becomes zero. It never creates money. Settling an order with no due or
// a cancelled order is a no-op.
func (s *LedgerService) SettleDue(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Due == 0 || order.WorkStatus.IsCancelled() {
		return order, nil
	}

	order.Paid = order.Total
	order.Due = 0
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("order_id", order.ID.String()).
		Float64("paid", order.GetPaidDecimal()).
		Msg("Outstanding due settled")

	return order, nil
}

// DeleteOrder removes an order permanently. Irreversible; the caller is
// expected to have confirmed with the user.
func (s *LedgerService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, order.ID); err != nil {
		return err
	}

	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("invoice_code", order.InvoiceCode).
		Msg("Order deleted")

	return nil
}

// Stats folds the ledger into the statistics snapshot. Recomputed on every
// call; the collection is small and recomputing is always correct.
func (s *LedgerService) Stats(ctx context.Context) (*LedgerStats, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var incomeCents, dueCents int64
	stats := &LedgerStats{}
	for _, order := range orders {
		if order.WorkStatus.IsCancelled() {
			continue
		}
		incomeCents += order.Paid
		dueCents += order.Due
		if order.WorkStatus == enum.WorkStatusSuccess {
			stats.SuccessCount++
		}
		if order.WorkStatus.IsOpen() {
			stats.PendingCount++
		}
	}
	stats.TotalIncome = float64(incomeCents) / 100
	stats.TotalDue = float64(dueCents) / 100
	return stats, nil
}

// toCents converts a decimal amount to cents, coercing negatives to zero.
// Rounds to the nearest cent so amounts like 19.99 survive the float
// representation intact.
func toCents(amount float64) int64 {
	if amount < 0 {
		return 0
	}
	return int64(math.Round(amount * 100))
}
