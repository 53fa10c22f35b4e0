package payment

import "errors"

// ErrPaymentFailed is the adapter's generic failure result: the gateway
// operation did not succeed and the details live only in the log. Callers
// branch with errors.Is.
var ErrPaymentFailed = errors.New("payment operation failed")

// FinalizeError is a known gateway business condition promoted to a
// user-displayable message. Everything else collapses into ErrPaymentFailed.
type FinalizeError struct {
	Message string
}

func (e *FinalizeError) Error() string {
	return e.Message
}

var (
	ErrFinalizeExceedsHold = &FinalizeError{Message: "The finalization amount exceeds the hold amount."}
	ErrHoldNotFound        = &FinalizeError{Message: "Order on hold not found."}
)
