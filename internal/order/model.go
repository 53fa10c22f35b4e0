package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusFailed    Status = "FAILED"
	StatusCompleted Status = "COMPLETED"
)

// Order is owned by the surrounding order subsystem; the payment layer
// only reads it and records the invoice linkage.
type Order struct {
	ID            uint
	CustomerID    uint
	Status        Status
	ToDoor        bool
	DeliveryPrice decimal.Decimal
	Cart          []CartItem
	Transaction   *Transaction
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CartItem is an immutable snapshot of one order line.
type CartItem struct {
	ID           uint
	OrderID      uint
	ProductID    uint
	ProductName  string
	ProductPrice decimal.Decimal
	Quantity     float64
	FinalCost    *decimal.Decimal
	ProductImage string
	Category     string
}

// Transaction is the weak reference from an order to its gateway invoice.
type Transaction struct {
	ID        int64
	OrderID   uint
	InvoiceID string
}
