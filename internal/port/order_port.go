package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/shoppay/internal/domain"
)

// OrderRepository is backed by a privileged connection that bypasses row level
// security. Only trusted server-side flows may hold one.
// A missing row is reported as domain.ErrOrderNotFound.
type OrderRepository interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error)

	// ConfirmPayment updates the order only when both the internal id and the
	// provider order id match the same row.
	ConfirmPayment(ctx context.Context, c domain.PaymentConfirmation) (domain.Order, error)
	MarkPaymentFailed(ctx context.Context, orderID uuid.UUID) (domain.Order, error)

	MarkPaidByProviderOrder(ctx context.Context, providerOrderID, providerPaymentID string) (domain.Order, error)
	MarkFailedByProviderOrder(ctx context.Context, providerOrderID string) (domain.Order, error)
	MarkRefundedByProviderPayment(ctx context.Context, providerPaymentID, refundID string) (domain.Order, error)

	// UpdateOrderStatus fails with domain.ErrTerminalStatus when the order is
	// delivered or cancelled and status differs.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (domain.StatusChange, error)
}
