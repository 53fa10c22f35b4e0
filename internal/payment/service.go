package payment

import (
	"context"

	"lavka-be/internal/monopay"
)

// Service is a capability-set-agnostic facade over one configured Gateway.
// It adds no behavior; it exists so callers never depend on the concrete
// adapter type.
type Service interface {
	CreateInvoice(ctx context.Context, params CreateParams) (*CreateResult, error)
	GetStatus(ctx context.Context, invoiceID string) (*monopay.InvoiceStatus, error)
	FinalizeInvoice(ctx context.Context, ord FinalizeOrder) (*monopay.InvoiceStatus, error)
}

type service struct {
	gateway Gateway
}

func NewService(gateway Gateway) Service {
	return &service{gateway: gateway}
}

func (s *service) CreateInvoice(ctx context.Context, params CreateParams) (*CreateResult, error) {
	return s.gateway.CreateInvoice(ctx, params)
}

func (s *service) GetStatus(ctx context.Context, invoiceID string) (*monopay.InvoiceStatus, error) {
	return s.gateway.GetStatus(ctx, invoiceID)
}

func (s *service) FinalizeInvoice(ctx context.Context, ord FinalizeOrder) (*monopay.InvoiceStatus, error) {
	return s.gateway.FinalizeInvoice(ctx, ord)
}
