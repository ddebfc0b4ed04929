package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/trexivo/tinova-pos/internal/domain/enum"
)

// Order represents a single row of the ledger: one client order with its
// payment bookkeeping. Paid, Due and Total are stored in cents; Total is
// frozen at creation and Paid + Due must keep summing to it for any order
// that has not been cancelled.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceCode string          `json:"invoice_code"`
	ClientName  string          `json:"client_name"`
	Phone       string          `json:"phone"`
	Service     string          `json:"service"`
	Paid        int64           `json:"-"` // Stored in cents, excluded from JSON
	Due         int64           `json:"-"` // Stored in cents, excluded from JSON
	Total       int64           `json:"-"` // Stored in cents, excluded from JSON
	WorkStatus  enum.WorkStatus `json:"work_status"`
	CreatedDate time.Time       `json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Paid        float64 `json:"paid"`
		Due         float64 `json:"due"`
		Total       float64 `json:"total"`
		CreatedDate string  `json:"created_date"`
	}{
		Alias:       Alias(o),
		Paid:        float64(o.Paid) / 100,
		Due:         float64(o.Due) / 100,
		Total:       float64(o.Total) / 100,
		CreatedDate: o.CreatedDate.Format("2006-01-02"),
	})
}

// GetPaidDecimal returns the collected amount as a decimal
func (o *Order) GetPaidDecimal() float64 {
	return float64(o.Paid) / 100
}

// GetDueDecimal returns the outstanding amount as a decimal
func (o *Order) GetDueDecimal() float64 {
	return float64(o.Due) / 100
}

// GetTotalDecimal returns the total as a decimal
func (o *Order) GetTotalDecimal() float64 {
	return float64(o.Total) / 100
}
