package request

// CreateOrderRequest represents an order creation request. Amounts are
// decimals; negative values are coerced to zero by the service.
type CreateOrderRequest struct {
	ClientName string  `json:"client_name" binding:"required,max=255"`
	Phone      string  `json:"phone" binding:"omitempty,max=50"`
	Service    string  `json:"service" binding:"required,max=255"`
	Paid       float64 `json:"paid"`
	Due        float64 `json:"due"`
}

// OrderFilterRequest represents ledger filter parameters
type OrderFilterRequest struct {
	Search string `form:"search"`
}
