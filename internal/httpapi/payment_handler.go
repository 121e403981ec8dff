package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shoppay/internal/domain"
	"github.com/nikolayk812/shoppay/internal/payment"
)

const (
	signatureHeader = "X-Razorpay-Signature"
	eventIDHeader   = "X-Razorpay-Event-Id"

	maxBodyBytes = 1 << 20 // 1MB
)

type PaymentService interface {
	ConfirmPayment(ctx context.Context, req payment.ConfirmRequest) (payment.OrderSummary, error)
	HandleWebhook(ctx context.Context, body []byte, sig, eventID string) (payment.WebhookResult, error)
}

type PaymentHandler struct {
	payments PaymentService
	logger   *slog.Logger
	timeout  time.Duration
}

func NewPaymentHandler(payments PaymentService, logger *slog.Logger, timeout time.Duration) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		logger:   logger,
		timeout:  timeout,
	}
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	OrderID           string `json:"order_id"`
}

type OrderSummaryDTO struct {
	ID            uuid.UUID `json:"id"`
	OrderNumber   string    `json:"order_number"`
	PaymentStatus string    `json:"payment_status"`
	Status        string    `json:"status"`
}

type VerifyPaymentResponse struct {
	Success bool            `json:"success"`
	Order   OrderSummaryDTO `json:"order"`
}

type WebhookResponse struct {
	Success  bool `json:"success"`
	Received bool `json:"received"`
}

// POST /api/payment/verify
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	if err := validateJSONSchema(verifyPaymentLoader, body); err != nil {
		h.logger.Warn("invalid verify payment request", "error", err)
		respondError(w, http.StatusBadRequest, "validation_error", "missing required payment fields")
		return
	}

	var req VerifyPaymentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	summary, err := h.payments.ConfirmPayment(ctx, payment.ConfirmRequest{
		ProviderOrderID:   req.RazorpayOrderID,
		ProviderPaymentID: req.RazorpayPaymentID,
		ProviderSignature: req.RazorpaySignature,
		OrderID:           req.OrderID,
	})
	if err != nil {
		// untrusted callers do not learn whether an order pairing exists
		if domain.KindOf(err) == domain.KindNotFound {
			respondError(w, http.StatusInternalServerError, string(domain.KindNotFound), domain.PublicMessage(err))
			return
		}
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, VerifyPaymentResponse{
		Success: true,
		Order: OrderSummaryDTO{
			ID:            summary.ID,
			OrderNumber:   summary.OrderNumber,
			PaymentStatus: string(summary.PaymentStatus),
			Status:        string(summary.Status),
		},
	})
}

// POST /api/webhooks/razorpay
// The body is passed through untouched: the signature covers the exact bytes.
func (h *PaymentHandler) RazorpayWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	_, err := h.payments.HandleWebhook(ctx, body, r.Header.Get(signatureHeader), r.Header.Get(eventIDHeader))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, WebhookResponse{Success: true, Received: true})
}

func (h *PaymentHandler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "validation_error", "request body is too large")
			return nil, false
		}

		h.logger.Warn("failed to read request body", "error", err)
		respondError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return nil, false
	}

	return body, true
}
