package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gateway invoice statuses, persisted verbatim on the payment record.
const (
	StatusCreated    = "created"
	StatusProcessing = "processing"
	StatusHold       = "hold"
	StatusSuccess    = "success"
	StatusFailure    = "failure"
	StatusReversed   = "reversed"
	StatusExpired    = "expired"
	StatusError      = "error"
)

// Payment is the persisted record of one gateway invoice. One row per
// invoice: created at invoice creation, updated on every status callback
// or finalize result. Owned exclusively by the Repository.
type Payment struct {
	ID             int64
	RRN            string
	PaymentID      string // gateway transaction id (tranId)
	OrderID        uint
	UserID         uint
	Amount         decimal.Decimal // major units
	ResponseStatus string
	FailureReason  string
	ErrCode        string
	InvoiceID      string
	Time           time.Time
	UpdatedAt      time.Time
}

// CartItem is an immutable snapshot of one order line, read by the adapter
// at invoice-creation and finalization time.
type CartItem struct {
	ProductID    uint
	ProductName  string
	ProductPrice decimal.Decimal
	Quantity     float64
	FinalCost    *decimal.Decimal
	ProductImage string
	Category     string
}

// CreateParams is everything the adapter needs to open an invoice.
// Amount is already in minor units; line prices are converted per item.
type CreateParams struct {
	OrderID     uint
	Amount      int64
	RedirectURL string
	WebHookURL  string
	Validity    int
	Basket      []CartItem
}

// FinalizeOrder is the slice of a domain order needed to capture a hold.
type FinalizeOrder struct {
	InvoiceID     string
	Cart          []CartItem
	ToDoor        bool
	DeliveryPrice decimal.Decimal
}

// CreateResult is the success contract of CreateInvoice.
type CreateResult struct {
	URL       string `json:"url"`
	InvoiceID string `json:"invoiceId"`
}
