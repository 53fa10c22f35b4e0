package order

import (
	"context"
	"errors"
	"fmt"

	"lavka-be/internal/logger"
	"lavka-be/internal/monopay"
	"lavka-be/internal/payment"

	"go.uber.org/zap"
)

// CheckoutConfig carries the invoice parameters that come from deployment
// configuration rather than from the order itself.
type CheckoutConfig struct {
	RedirectURL string
	WebHookURL  string
	Validity    int
}

type Service interface {
	Checkout(ctx context.Context, orderID uint) (*payment.CreateResult, error)
	FinalizeOrder(ctx context.Context, orderID uint) (*monopay.InvoiceStatus, error)
	RefreshPaymentStatus(ctx context.Context, invoiceID string) (*monopay.InvoiceStatus, error)
	MarkAsPaid(ctx context.Context, invoiceID string) error
	MarkAsFailed(ctx context.Context, invoiceID string) error
}

type service struct {
	repo     Repository
	payments payment.Service
	payRepo  payment.Repository
	cfg      CheckoutConfig
}

func NewService(repo Repository, payments payment.Service, payRepo payment.Repository, cfg CheckoutConfig) Service {
	return &service{
		repo:     repo,
		payments: payments,
		payRepo:  payRepo,
		cfg:      cfg,
	}
}

// Checkout opens a hold invoice for the order's cart total, stores the
// payment record and links the invoice to the order.
func (s *service) Checkout(ctx context.Context, orderID uint) (*payment.CreateResult, error) {
	ord, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(ord.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	cart := toPaymentCart(ord.Cart)
	total := payment.OrderTotal(cart, ord.ToDoor, ord.DeliveryPrice)
	amount := payment.ToMinorUnits(total)

	res, err := s.payments.CreateInvoice(ctx, payment.CreateParams{
		OrderID:     ord.ID,
		Amount:      amount,
		RedirectURL: s.cfg.RedirectURL,
		WebHookURL:  s.cfg.WebHookURL,
		Validity:    s.cfg.Validity,
		Basket:      cart,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.payRepo.StoreNew(ctx, ord.ID, ord.CustomerID, &monopay.InvoiceStatus{
		InvoiceID: res.InvoiceID,
		Amount:    &amount,
	}); err != nil {
		return nil, fmt.Errorf("failed to store payment record: %w", err)
	}

	if err := s.repo.SetTransaction(ctx, ord.ID, res.InvoiceID); err != nil {
		return nil, fmt.Errorf("failed to link invoice to order: %w", err)
	}

	return res, nil
}

// FinalizeOrder captures the held amount for a paid order and records the
// resulting gateway status. The two known finalize business errors pass
// through untouched so callers can show their messages.
func (s *service) FinalizeOrder(ctx context.Context, orderID uint) (*monopay.InvoiceStatus, error) {
	ord, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord.Transaction == nil || ord.Transaction.InvoiceID == "" {
		return nil, ErrNoInvoice
	}

	st, err := s.payments.FinalizeInvoice(ctx, ToFinalizeOrder(ord))
	if err != nil {
		return nil, err
	}

	if err := s.payRepo.Update(ctx, st); err != nil {
		logger.FromCtx(ctx).Error("failed to persist finalize result",
			zap.String("invoice_id", ord.Transaction.InvoiceID),
			zap.Error(err),
		)
	}

	if st.Status == payment.StatusSuccess {
		if err := s.repo.UpdateOrderStatus(ctx, ord.ID, StatusCompleted); err != nil {
			return st, err
		}
	}

	return st, nil
}

// RefreshPaymentStatus polls the gateway for one invoice and applies the
// result to the payment record.
func (s *service) RefreshPaymentStatus(ctx context.Context, invoiceID string) (*monopay.InvoiceStatus, error) {
	st, err := s.payments.GetStatus(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := s.payRepo.Update(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to persist payment status: %w", err)
	}

	return st, nil
}

func (s *service) MarkAsPaid(ctx context.Context, invoiceID string) error {
	return s.markOrder(ctx, invoiceID, StatusPaid)
}

func (s *service) MarkAsFailed(ctx context.Context, invoiceID string) error {
	return s.markOrder(ctx, invoiceID, StatusFailed)
}

func (s *service) markOrder(ctx context.Context, invoiceID string, status Status) error {
	ord, err := s.repo.GetOrderByInvoiceID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			logger.FromCtx(ctx).Warn("status update for unknown invoice",
				zap.String("invoice_id", invoiceID),
			)
		}
		return err
	}

	return s.repo.UpdateOrderStatus(ctx, ord.ID, status)
}
