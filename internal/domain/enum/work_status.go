package enum

import (
	"encoding/json"
	"fmt"
)

// WorkStatus represents the fulfillment stage of an order
type WorkStatus int

const (
	WorkStatusPending   WorkStatus = 0
	WorkStatusConfirmed WorkStatus = 1
	WorkStatusSuccess   WorkStatus = 2
	WorkStatusCancelled WorkStatus = 3
)

func (s WorkStatus) String() string {
	switch s {
	case WorkStatusPending:
		return "Pending"
	case WorkStatusConfirmed:
		return "Confirmed"
	case WorkStatusSuccess:
		return "Success"
	case WorkStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Next returns the status that follows s in the fulfillment cycle
// Pending -> Confirmed -> Success -> Pending. The wrap after Success is
// deliberate: the dashboard lets an operator cycle a completed order back.
// Cancelled is absorbing and never advances.
func (s WorkStatus) Next() WorkStatus {
	if s == WorkStatusCancelled {
		return s
	}
	return (s + 1) % 3
}

// IsCancelled reports whether the order left the active ledger.
func (s WorkStatus) IsCancelled() bool {
	return s == WorkStatusCancelled
}

// IsOpen reports whether the order still awaits completion (Pending or Confirmed).
func (s WorkStatus) IsOpen() bool {
	return s == WorkStatusPending || s == WorkStatusConfirmed
}

func (s WorkStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *WorkStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = WorkStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = WorkStatusPending
	case "Confirmed":
		*s = WorkStatusConfirmed
	case "Success":
		*s = WorkStatusSuccess
	case "Cancelled":
		*s = WorkStatusCancelled
	default:
		return fmt.Errorf("unknown work status %q", str)
	}
	return nil
}
