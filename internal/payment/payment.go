package payment

import (
	"context"
	"net/http"

	"lavka-be/internal/monopay"
)

// Gateway is the payment capability contract: open an invoice, read its
// gateway-native status, capture the held amount, authenticate the
// gateway's status callbacks. Alternative acquirers are added by
// implementing it, not by changing the service.
//
// Implementations are the error boundary of the payment flow: every
// failure mode terminates in ErrPaymentFailed or a *FinalizeError, never
// in a panic or a raw transport error.
type Gateway interface {
	CreateInvoice(ctx context.Context, params CreateParams) (*CreateResult, error)
	GetStatus(ctx context.Context, invoiceID string) (*monopay.InvoiceStatus, error)
	FinalizeInvoice(ctx context.Context, ord FinalizeOrder) (*monopay.InvoiceStatus, error)
	VerifySignature(r *http.Request) error
}
