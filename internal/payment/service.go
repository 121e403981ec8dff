package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nikolayk812/shoppay/internal/domain"
	"github.com/nikolayk812/shoppay/internal/port"
	"github.com/nikolayk812/shoppay/internal/signature"
)

// Secrets are read per request so a missing value fails the request, not the process.
type Secrets struct {
	KeySecret     string
	WebhookSecret string
}

type Service struct {
	orders  port.OrderRepository
	events  port.EventCache
	secrets Secrets
	logger  *slog.Logger
}

// NewService wires the payment state machine. events may be nil, which
// disables webhook event de-duplication.
func NewService(orders port.OrderRepository, events port.EventCache, secrets Secrets, logger *slog.Logger) (*Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("orders is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	return &Service{
		orders:  orders,
		events:  events,
		secrets: secrets,
		logger:  logger,
	}, nil
}

type ConfirmRequest struct {
	ProviderOrderID   string
	ProviderPaymentID string
	ProviderSignature string
	OrderID           string
}

// OrderSummary is the public subset of an order returned to the storefront.
type OrderSummary struct {
	ID            uuid.UUID
	OrderNumber   string
	PaymentStatus domain.PaymentStatus
	Status        domain.OrderStatus
}

func summarize(o domain.Order) OrderSummary {
	return OrderSummary{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		PaymentStatus: o.PaymentStatus,
		Status:        o.Status,
	}
}

// ConfirmPayment verifies the checkout signature and marks the order paid.
// It never sends notifications.
func (s *Service) ConfirmPayment(ctx context.Context, req ConfirmRequest) (OrderSummary, error) {
	const op = "payment.ConfirmPayment"

	var summary OrderSummary

	if req.ProviderOrderID == "" || req.ProviderPaymentID == "" || req.ProviderSignature == "" || req.OrderID == "" {
		return summary, domain.Validation(op, "missing required payment fields")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return summary, domain.Validation(op, "order_id is not valid")
	}

	logger := s.logger.With("method", op, "order_id", orderID, "razorpay_order_id", req.ProviderOrderID)

	ok, err := signature.VerifyPayment(s.secrets.KeySecret, req.ProviderOrderID, req.ProviderPaymentID, req.ProviderSignature)
	if err != nil {
		logger.Error("payment key secret is not configured", "error", err)
		return summary, domain.Configuration(op, "payment verification is not configured")
	}

	if !ok {
		logger.Warn("payment signature mismatch")

		if _, err := s.orders.MarkPaymentFailed(ctx, orderID); err != nil {
			logger.Error("failed to mark payment failed", "error", err)
		}

		return summary, domain.Validation(op, "invalid payment signature")
	}

	order, err := s.orders.ConfirmPayment(ctx, domain.PaymentConfirmation{
		OrderID:           orderID,
		ProviderOrderID:   req.ProviderOrderID,
		ProviderPaymentID: req.ProviderPaymentID,
		ProviderSignature: req.ProviderSignature,
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			logger.Warn("no order matches the id pair", "error", err)
			return summary, domain.NotFound(op, "order not found", err)
		}

		logger.Error("failed to confirm payment", "error", err)
		return summary, domain.Storage(op, err)
	}

	logger.Info("payment confirmed",
		"order_number", order.OrderNumber,
		"razorpay_payment_id", req.ProviderPaymentID)

	return summarize(order), nil
}
