package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyCart     = errors.New("order cart is empty")
	ErrNoInvoice     = errors.New("order has no payment invoice")
)
