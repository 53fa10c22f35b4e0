package webhook

import (
	"encoding/json"
	"io"
	"net/http"

	"lavka-be/internal/logger"
	"lavka-be/internal/metrics"
	"lavka-be/internal/monopay"
	"lavka-be/internal/order"
	"lavka-be/internal/payment"

	"go.uber.org/zap"
)

// Handler receives Monobank invoice status callbacks, applies them to the
// payment record and moves the order along. Deliveries are last-write-wins;
// the gateway re-posts on non-2xx replies.
type Handler struct {
	orders  order.Service
	payRepo payment.Repository
	gateway payment.Gateway
}

func NewHandler(orders order.Service, payRepo payment.Repository, gateway payment.Gateway) *Handler {
	return &Handler{
		orders:  orders,
		payRepo: payRepo,
		gateway: gateway,
	}
}

func (h *Handler) InvoiceStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context()).With(zap.String("channel", "mono"))
	metrics.Gateway.Webhooks.Inc()

	if err := h.gateway.VerifySignature(r); err != nil {
		log.Warn("callback signature rejected", zap.Error(err))
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var st monopay.InvoiceStatus
	if err := json.Unmarshal(body, &st); err != nil || st.InvoiceID == "" {
		http.Error(w, "invalid status payload", http.StatusBadRequest)
		return
	}
	st.Raw = body

	log = log.With(
		zap.String("invoice_id", st.InvoiceID),
		zap.String("status", st.Status),
	)
	log.Info("invoice status callback received")

	if err := h.payRepo.Update(r.Context(), &st); err != nil {
		log.Error("failed to update payment record", zap.Error(err))
		http.Error(w, "failed to update payment", http.StatusInternalServerError)
		return
	}

	switch st.Status {
	case payment.StatusSuccess:
		err = h.orders.MarkAsPaid(r.Context(), st.InvoiceID)
	case payment.StatusFailure, payment.StatusExpired, payment.StatusReversed:
		err = h.orders.MarkAsFailed(r.Context(), st.InvoiceID)
	default:
		// created/processing/hold change nothing on the order
		w.WriteHeader(http.StatusOK)
		return
	}

	if err != nil {
		log.Error("failed to update order", zap.Error(err))
		http.Error(w, "failed to update order", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
