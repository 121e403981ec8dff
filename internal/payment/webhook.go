package payment

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/nikolayk812/shoppay/internal/domain"
	"github.com/nikolayk812/shoppay/internal/signature"
	"golang.org/x/text/currency"
)

type EventType string

const (
	EventPaymentAuthorized EventType = "payment.authorized"
	EventPaymentCaptured   EventType = "payment.captured"
	EventPaymentFailed     EventType = "payment.failed"
	EventRefundCreated     EventType = "refund.created"
	EventRefundProcessed   EventType = "refund.processed"
)

// Envelope is the provider's webhook body. Only the entities this service
// acts on are decoded.
type Envelope struct {
	Event     EventType `json:"event"`
	AccountID string    `json:"account_id"`
	CreatedAt int64     `json:"created_at"`
	Payload   struct {
		Payment *struct {
			Entity PaymentEntity `json:"entity"`
		} `json:"payment"`
		Refund *struct {
			Entity RefundEntity `json:"entity"`
		} `json:"refund"`
	} `json:"payload"`
}

type PaymentEntity struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Email    string `json:"email"`
}

type RefundEntity struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
}

func (e Envelope) payment() PaymentEntity {
	if e.Payload.Payment == nil {
		return PaymentEntity{}
	}
	return e.Payload.Payment.Entity
}

func (e Envelope) refund() RefundEntity {
	if e.Payload.Refund == nil {
		return RefundEntity{}
	}
	return e.Payload.Refund.Entity
}

type WebhookResult struct {
	Event     EventType
	Handled   bool
	Duplicate bool
}

// HandleWebhook verifies and applies one provider event. Every branch is a
// plain field assignment, so redelivery of the same event converges on the
// same row. eventID is optional and only used for de-duplication.
func (s *Service) HandleWebhook(ctx context.Context, body []byte, sig, eventID string) (WebhookResult, error) {
	const op = "payment.HandleWebhook"

	var result WebhookResult

	logger := s.logger.With("method", op)
	if eventID != "" {
		logger = logger.With("event_id", eventID)
	}

	if s.secrets.WebhookSecret == "" {
		logger.Error("webhook secret is not configured")
		return result, domain.Configuration(op, "webhook secret is not configured")
	}

	if sig == "" {
		logger.Warn("webhook signature header is missing")
		return result, domain.Validation(op, "missing webhook signature")
	}

	ok, err := signature.VerifyWebhook(s.secrets.WebhookSecret, body, sig)
	if err != nil {
		return result, domain.Configuration(op, "webhook secret is not configured")
	}
	if !ok {
		logger.Warn("webhook signature mismatch")
		return result, domain.Validation(op, "invalid webhook signature")
	}

	if s.alreadyProcessed(ctx, logger, eventID) {
		result.Duplicate = true
		return result, nil
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		logger.Warn("malformed webhook payload", "error", err)
		return result, domain.Validation(op, "malformed webhook payload")
	}

	result.Event = envelope.Event
	logger = logger.With("event", envelope.Event)

	result.Handled, err = s.dispatch(ctx, logger, envelope)
	if err != nil {
		return result, err
	}

	s.markProcessed(ctx, logger, eventID)

	return result, nil
}

func (s *Service) dispatch(ctx context.Context, logger *slog.Logger, e Envelope) (bool, error) {
	const op = "payment.dispatch"

	var (
		order domain.Order
		err   error
	)

	switch e.Event {
	case EventPaymentAuthorized, EventPaymentCaptured:
		p := e.payment()
		if p.OrderID == "" || p.ID == "" {
			// payment links and pages capture without an order
			logger.Warn("payment entity has no order_id or id, acknowledging", "razorpay_payment_id", p.ID)
			return false, nil
		}
		logger = logger.With("razorpay_order_id", p.OrderID, "razorpay_payment_id", p.ID)

		order, err = s.orders.MarkPaidByProviderOrder(ctx, p.OrderID, p.ID)
		if err == nil {
			s.checkAmount(logger, order, p)
		}

	case EventPaymentFailed:
		p := e.payment()
		if p.OrderID == "" {
			logger.Warn("payment entity has no order_id, acknowledging", "razorpay_payment_id", p.ID)
			return false, nil
		}
		logger = logger.With("razorpay_order_id", p.OrderID)

		order, err = s.orders.MarkFailedByProviderOrder(ctx, p.OrderID)

	case EventRefundCreated, EventRefundProcessed:
		r := e.refund()
		paymentID := r.PaymentID
		if paymentID == "" {
			paymentID = e.payment().ID
		}
		if paymentID == "" {
			logger.Warn("refund entity has no payment_id, acknowledging", "razorpay_refund_id", r.ID)
			return false, nil
		}
		logger = logger.With("razorpay_payment_id", paymentID, "razorpay_refund_id", r.ID)

		order, err = s.orders.MarkRefundedByProviderPayment(ctx, paymentID, r.ID)

	default:
		logger.Info("ignoring unhandled webhook event")
		return false, nil
	}

	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			// the provider account may carry orders this store does not own
			logger.Warn("no order for webhook event, acknowledging", "error", err)
			return false, nil
		}

		logger.Error("failed to apply webhook event", "error", err)
		return false, domain.Storage(op, err)
	}

	logger.Info("webhook event applied",
		"order_id", order.ID,
		"payment_status", order.PaymentStatus,
		"status", order.Status)

	return true, nil
}

// checkAmount only logs; the provider's captured amount is authoritative.
func (s *Service) checkAmount(logger *slog.Logger, order domain.Order, p PaymentEntity) {
	if p.Currency == "" {
		return
	}

	unit, err := currency.ParseISO(strings.TrimSpace(p.Currency))
	if err != nil {
		logger.Warn("unknown payment currency", "currency", p.Currency)
		return
	}

	captured := domain.MoneyFromMinor(p.Amount, unit)
	if !captured.Equal(order.Total) {
		logger.Warn("captured amount differs from order total",
			"order_id", order.ID,
			"captured", captured.Amount.String()+" "+captured.Currency.String(),
			"total", order.Total.Amount.String()+" "+order.Total.Currency.String())
	}
}

func (s *Service) alreadyProcessed(ctx context.Context, logger *slog.Logger, eventID string) bool {
	if s.events == nil || eventID == "" {
		return false
	}

	seen, err := s.events.Seen(ctx, eventID)
	if err != nil {
		logger.Warn("event cache lookup failed, processing anyway", "error", err)
		return false
	}
	if seen {
		logger.Info("duplicate webhook event, acknowledging")
	}

	return seen
}

func (s *Service) markProcessed(ctx context.Context, logger *slog.Logger, eventID string) {
	if s.events == nil || eventID == "" {
		return
	}

	if err := s.events.MarkProcessed(ctx, eventID); err != nil {
		logger.Warn("failed to record processed event", "error", err)
	}
}
