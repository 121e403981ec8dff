package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shoppay/internal/db"
	"github.com/nikolayk812/shoppay/internal/domain"
	"github.com/nikolayk812/shoppay/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

// NewOrder expects a pool opened with the service role credentials.
func NewOrder(pool *pgxpool.Pool) (port.OrderRepository, error) {
	if pool == nil {
		return nil, errors.New("pool is nil")
	}

	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

// NewOrderWithTx binds the repository to a caller owned transaction.
func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	if orderID == uuid.Nil {
		return o, fmt.Errorf("orderID is empty")
	}

	dbOrder, err := r.q.GetOrder(ctx, orderID)
	if err != nil {
		return o, fmt.Errorf("q.GetOrder: %w", mapNoRows(err))
	}

	order, err := mapDBOrderToDomain(dbOrder)
	if err != nil {
		return o, fmt.Errorf("mapDBOrderToDomain: %w", err)
	}

	return order, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error) {
	if order.CustomerEmail == "" {
		return uuid.Nil, errors.New("customer email is empty")
	}
	if order.Total.Amount.IsNegative() {
		return uuid.Nil, errors.New("total is negative")
	}

	orderID, err := r.q.InsertOrder(ctx, db.InsertOrderParams{
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.Total.Amount,
		TotalCurrency:   order.Total.Currency.String(),
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		RazorpayOrderID: nilIfEmpty(lo.FromPtr(order.ProviderOrderID)),
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("q.InsertOrder: %w", err)
	}

	return orderID, nil
}

func mapDomainOrderFilterToDBFilter(filter domain.OrderFilter) db.SearchOrdersParams {
	ids := lo.Map(filter.IDs, func(id uuid.UUID, _ int) string { return id.String() })
	statuses := lo.Map(filter.Statuses, func(s domain.OrderStatus, _ int) string { return string(s) })
	paymentStatuses := lo.Map(filter.PaymentStatuses, func(s domain.PaymentStatus, _ int) string { return string(s) })

	var createdAfter, createdBefore, updatedAfter, updatedBefore *time.Time

	if filter.CreatedAt != nil {
		createdAfter = filter.CreatedAt.After
		createdBefore = filter.CreatedAt.Before
	}

	if filter.UpdatedAt != nil {
		updatedAfter = filter.UpdatedAt.After
		updatedBefore = filter.UpdatedAt.Before
	}

	return db.SearchOrdersParams{
		Ids:             nilSliceIfEmpty(ids),
		OrderNumbers:    nilSliceIfEmpty(filter.OrderNumbers),
		CustomerEmails:  nilSliceIfEmpty(filter.CustomerEmails),
		Statuses:        nilSliceIfEmpty(statuses),
		PaymentStatuses: nilSliceIfEmpty(paymentStatuses),
		CreatedAfter:    createdAfter,
		CreatedBefore:   createdBefore,
		UpdatedAfter:    updatedAfter,
		UpdatedBefore:   updatedBefore,
	}
}

func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w", err)
	}

	dbOrders, err := r.q.SearchOrders(ctx, mapDomainOrderFilterToDBFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("q.SearchOrders: %w", err)
	}

	orders := make([]domain.Order, 0, len(dbOrders))
	for _, row := range dbOrders {
		order, err := mapDBOrderToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *orderRepository) ConfirmPayment(ctx context.Context, c domain.PaymentConfirmation) (domain.Order, error) {
	var o domain.Order

	if c.OrderID == uuid.Nil {
		return o, fmt.Errorf("orderID is empty")
	}
	if c.ProviderOrderID == "" || c.ProviderPaymentID == "" {
		return o, fmt.Errorf("provider ids are empty")
	}

	dbOrder, err := r.q.ConfirmPayment(ctx, db.ConfirmPaymentParams{
		ID:                c.OrderID,
		RazorpayOrderID:   &c.ProviderOrderID,
		RazorpayPaymentID: &c.ProviderPaymentID,
		RazorpaySignature: nilIfEmpty(c.ProviderSignature),
	})
	if err != nil {
		return o, fmt.Errorf("q.ConfirmPayment: %w", mapNoRows(err))
	}

	return mapUpdatedOrder(dbOrder)
}

func (r *orderRepository) MarkPaymentFailed(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	if orderID == uuid.Nil {
		return o, fmt.Errorf("orderID is empty")
	}

	dbOrder, err := r.q.MarkPaymentFailed(ctx, orderID)
	if err != nil {
		return o, fmt.Errorf("q.MarkPaymentFailed: %w", mapNoRows(err))
	}

	return mapUpdatedOrder(dbOrder)
}

func (r *orderRepository) MarkPaidByProviderOrder(ctx context.Context, providerOrderID, providerPaymentID string) (domain.Order, error) {
	var o domain.Order

	if providerOrderID == "" {
		return o, fmt.Errorf("providerOrderID is empty")
	}
	if providerPaymentID == "" {
		return o, fmt.Errorf("providerPaymentID is empty")
	}

	dbOrder, err := r.q.MarkPaidByRazorpayOrder(ctx, db.MarkPaidByRazorpayOrderParams{
		RazorpayOrderID:   &providerOrderID,
		RazorpayPaymentID: &providerPaymentID,
	})
	if err != nil {
		return o, fmt.Errorf("q.MarkPaidByRazorpayOrder: %w", mapNoRows(err))
	}

	return mapUpdatedOrder(dbOrder)
}

func (r *orderRepository) MarkFailedByProviderOrder(ctx context.Context, providerOrderID string) (domain.Order, error) {
	var o domain.Order

	if providerOrderID == "" {
		return o, fmt.Errorf("providerOrderID is empty")
	}

	dbOrder, err := r.q.MarkFailedByRazorpayOrder(ctx, &providerOrderID)
	if err != nil {
		return o, fmt.Errorf("q.MarkFailedByRazorpayOrder: %w", mapNoRows(err))
	}

	return mapUpdatedOrder(dbOrder)
}

func (r *orderRepository) MarkRefundedByProviderPayment(ctx context.Context, providerPaymentID, refundID string) (domain.Order, error) {
	var o domain.Order

	if providerPaymentID == "" {
		return o, fmt.Errorf("providerPaymentID is empty")
	}

	dbOrder, err := r.q.MarkRefundedByRazorpayPayment(ctx, db.MarkRefundedByRazorpayPaymentParams{
		RazorpayPaymentID: &providerPaymentID,
		RazorpayRefundID:  refundID,
	})
	if err != nil {
		return o, fmt.Errorf("q.MarkRefundedByRazorpayPayment: %w", mapNoRows(err))
	}

	return mapUpdatedOrder(dbOrder)
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (domain.StatusChange, error) {
	var change domain.StatusChange

	if orderID == uuid.Nil {
		return change, fmt.Errorf("orderID is empty")
	}
	if status == "" {
		return change, fmt.Errorf("status is empty")
	}

	change, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.StatusChange, error) {
		var c domain.StatusChange

		previous, err := q.LockOrderStatus(ctx, orderID)
		if err != nil {
			return c, fmt.Errorf("q.LockOrderStatus: %w", mapNoRows(err))
		}

		c.Previous, err = domain.ToOrderStatus(previous)
		if err != nil {
			return c, fmt.Errorf("domain.ToOrderStatus[%s]: %w", previous, err)
		}

		if c.Previous.IsTerminal() && c.Previous != status {
			return c, fmt.Errorf("%s to %s: %w", c.Previous, status, domain.ErrTerminalStatus)
		}

		dbOrder, err := q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
			ID:     orderID,
			Status: string(status),
		})
		if err != nil {
			return c, fmt.Errorf("q.UpdateOrderStatus: %w", err)
		}

		c.Order, err = mapDBOrderToDomain(dbOrder)
		if err != nil {
			return c, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}

		return c, nil
	})
	if err != nil {
		return change, fmt.Errorf("withTx: %w", err)
	}

	return change, nil
}

func mapUpdatedOrder(dbOrder db.Order) (domain.Order, error) {
	order, err := mapDBOrderToDomain(dbOrder)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapDBOrderToDomain: %w", err)
	}
	return order, nil
}

func mapDBOrderToDomain(dbOrder db.Order) (domain.Order, error) {
	var o domain.Order

	status, err := domain.ToOrderStatus(dbOrder.Status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", dbOrder.Status, err)
	}

	paymentStatus, err := domain.ToPaymentStatus(dbOrder.PaymentStatus)
	if err != nil {
		return o, fmt.Errorf("domain.ToPaymentStatus[%s]: %w", dbOrder.PaymentStatus, err)
	}

	parsedCurrency, err := currency.ParseISO(strings.TrimSpace(dbOrder.TotalCurrency))
	if err != nil {
		return o, fmt.Errorf("currency[%s] is not valid: %w", dbOrder.TotalCurrency, err)
	}

	return domain.Order{
		ID:                dbOrder.ID,
		OrderNumber:       dbOrder.OrderNumber,
		Status:            status,
		PaymentStatus:     paymentStatus,
		Total:             domain.Money{Amount: dbOrder.TotalAmount, Currency: parsedCurrency},
		CustomerName:      dbOrder.CustomerName,
		CustomerEmail:     dbOrder.CustomerEmail,
		ProviderOrderID:   dbOrder.RazorpayOrderID,
		ProviderPaymentID: dbOrder.RazorpayPaymentID,
		ProviderSignature: dbOrder.RazorpaySignature,
		ProviderRefundID:  dbOrder.RazorpayRefundID,
		CreatedAt:         dbOrder.CreatedAt,
		UpdatedAt:         dbOrder.UpdatedAt,
		ConfirmedAt:       dbOrder.ConfirmedAt,
	}, nil
}

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrOrderNotFound
	}
	return err
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nilSliceIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
