package entity

// ReceiptHeader holds the business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Tagline   string `json:"tagline,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Receipt is a value object representing a printable official receipt.
// It is composed from order data at print time and never stored.
type Receipt struct {
	Header      ReceiptHeader `json:"header"`
	InvoiceCode string        `json:"invoice_code"`
	Date        string        `json:"date"`
	Client      string        `json:"client"`
	Phone       string        `json:"phone,omitempty"`
	Service     string        `json:"service"`
	Status      string        `json:"status"`
	Total       float64       `json:"total"`
	Paid        float64       `json:"paid"`
	Due         float64       `json:"due"`
}
