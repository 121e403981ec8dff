package httpapi

import (
	"context"
	"io"
	"log/slog"

	"github.com/nikolayk812/shoppay/internal/domain"
	"github.com/nikolayk812/shoppay/internal/orders"
	"github.com/nikolayk812/shoppay/internal/payment"
)

// PaymentServiceMock implements PaymentService for testing
type PaymentServiceMock struct {
	Summary payment.OrderSummary
	Result  payment.WebhookResult
	Err     error

	ConfirmReq  *payment.ConfirmRequest
	WebhookBody []byte
	WebhookSig  string
	WebhookID   string
}

func (m *PaymentServiceMock) ConfirmPayment(_ context.Context, req payment.ConfirmRequest) (payment.OrderSummary, error) {
	m.ConfirmReq = &req
	return m.Summary, m.Err
}

func (m *PaymentServiceMock) HandleWebhook(_ context.Context, body []byte, sig, eventID string) (payment.WebhookResult, error) {
	m.WebhookBody = body
	m.WebhookSig = sig
	m.WebhookID = eventID
	return m.Result, m.Err
}

// OrderServiceMock implements OrderService for testing
type OrderServiceMock struct {
	Order  domain.Order
	Orders []domain.Order
	Err    error

	SearchReq     *orders.SearchRequest
	UpdatedID     string
	UpdatedStatus string
}

func (m *OrderServiceMock) GetOrder(_ context.Context, _ string) (domain.Order, error) {
	return m.Order, m.Err
}

func (m *OrderServiceMock) SearchOrders(_ context.Context, req orders.SearchRequest) ([]domain.Order, error) {
	m.SearchReq = &req
	return m.Orders, m.Err
}

func (m *OrderServiceMock) UpdateStatus(_ context.Context, id, status string) (domain.Order, error) {
	m.UpdatedID = id
	m.UpdatedStatus = status
	return m.Order, m.Err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
