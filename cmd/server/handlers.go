package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"lavka-be/internal/logger"
	"lavka-be/internal/order"
	"lavka-be/internal/payment"

	"go.uber.org/zap"
)

type orderHandler struct {
	orders order.Service
}

type orderRequest struct {
	OrderID uint `json:"orderId"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// Checkout opens a hold invoice for an order and returns the payment page URL.
func (h *orderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == 0 {
		writeError(w, http.StatusBadRequest, "orderId is required")
		return
	}

	res, err := h.orders.Checkout(r.Context(), req.OrderID)
	if err != nil {
		h.respondOrderError(w, r, "checkout failed", err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Finalize captures the held amount for an order.
func (h *orderHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == 0 {
		writeError(w, http.StatusBadRequest, "orderId is required")
		return
	}

	st, err := h.orders.FinalizeOrder(r.Context(), req.OrderID)
	if err != nil {
		h.respondOrderError(w, r, "finalize failed", err)
		return
	}

	writeJSON(w, http.StatusOK, st)
}

// PaymentStatus polls the gateway for the current invoice state.
func (h *orderHandler) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	invoiceID := r.URL.Query().Get("invoiceId")
	if invoiceID == "" {
		writeError(w, http.StatusBadRequest, "invoiceId is required")
		return
	}

	st, err := h.orders.RefreshPaymentStatus(r.Context(), invoiceID)
	if err != nil {
		h.respondOrderError(w, r, "status check failed", err)
		return
	}

	writeJSON(w, http.StatusOK, st)
}

func (h *orderHandler) respondOrderError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	var finErr *payment.FinalizeError

	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrEmptyCart), errors.Is(err, order.ErrNoInvoice):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &finErr):
		writeError(w, http.StatusUnprocessableEntity, finErr.Message)
	default:
		logger.FromCtx(r.Context()).Error(msg, zap.Error(err))
		writeError(w, http.StatusInternalServerError, msg)
	}
}
