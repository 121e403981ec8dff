// Package orders is the back-office view of orders: lookup, search and
// fulfillment status updates.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shoppay/internal/domain"
	"github.com/nikolayk812/shoppay/internal/port"
)

// DefaultSearchWindow bounds a search that came without any filter.
const DefaultSearchWindow = 30 * 24 * time.Hour

type Service struct {
	orders   port.OrderRepository
	notifier port.DeliveryNotifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(orders port.OrderRepository, notifier port.DeliveryNotifier, logger *slog.Logger) (*Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("orders is nil")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	return &Service{
		orders:   orders,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}, nil
}

type SearchRequest struct {
	Statuses        []string
	PaymentStatuses []string
	CustomerEmails  []string
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	const op = "orders.GetOrder"

	orderID, err := uuid.Parse(id)
	if err != nil {
		return domain.Order{}, domain.Validation(op, "order id is not valid")
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, s.mapRepositoryError(op, orderID, err)
	}

	return order, nil
}

func (s *Service) SearchOrders(ctx context.Context, req SearchRequest) ([]domain.Order, error) {
	const op = "orders.SearchOrders"

	filter := domain.OrderFilter{
		CustomerEmails: req.CustomerEmails,
	}

	for _, raw := range req.Statuses {
		status, err := domain.ToOrderStatus(raw)
		if err != nil {
			return nil, domain.Validation(op, fmt.Sprintf("unknown status %q", raw))
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	for _, raw := range req.PaymentStatuses {
		status, err := domain.ToPaymentStatus(raw)
		if err != nil {
			return nil, domain.Validation(op, fmt.Sprintf("unknown payment status %q", raw))
		}
		filter.PaymentStatuses = append(filter.PaymentStatuses, status)
	}

	if req.CreatedAfter != nil || req.CreatedBefore != nil {
		filter.CreatedAt = &domain.TimeRange{After: req.CreatedAfter, Before: req.CreatedBefore}
	}

	if err := filter.Validate(); err != nil {
		if filter.CreatedAt != nil {
			return nil, domain.Validation(op, err.Error())
		}

		after := s.now().Add(-DefaultSearchWindow)
		filter.CreatedAt = &domain.TimeRange{After: &after}
	}

	orders, err := s.orders.SearchOrders(ctx, filter)
	if err != nil {
		s.logger.Error("failed to search orders", "method", op, "error", err)
		return nil, domain.Storage(op, err)
	}

	return orders, nil
}

// UpdateStatus sets the fulfillment status. Moving into delivered queues a
// customer notification; the update stands whether or not it is sent.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (domain.Order, error) {
	const op = "orders.UpdateStatus"

	orderID, err := uuid.Parse(id)
	if err != nil {
		return domain.Order{}, domain.Validation(op, "order id is not valid")
	}

	next, err := domain.ToOrderStatus(status)
	if err != nil {
		return domain.Order{}, domain.Validation(op, fmt.Sprintf("unknown status %q", status))
	}
	if next == domain.OrderStatusPending {
		return domain.Order{}, domain.Validation(op, "an order cannot be moved back to pending")
	}

	change, err := s.orders.UpdateOrderStatus(ctx, orderID, next)
	if err != nil {
		return domain.Order{}, s.mapRepositoryError(op, orderID, err)
	}

	s.logger.Info("order status updated",
		"method", op,
		"order_id", orderID,
		"previous", change.Previous,
		"status", change.Order.Status)

	if change.BecameDelivered() {
		s.notifier.NotifyDelivered(domain.NewDeliveryNotification(change.Order))
	}

	return change.Order, nil
}

func (s *Service) mapRepositoryError(op string, orderID uuid.UUID, err error) error {
	if errors.Is(err, domain.ErrOrderNotFound) {
		return domain.NotFound(op, "order not found", err)
	}
	if errors.Is(err, domain.ErrTerminalStatus) {
		return domain.Validation(op, "a delivered or cancelled order cannot change status")
	}

	s.logger.Error("order storage failure", "method", op, "order_id", orderID, "error", err)
	return domain.Storage(op, err)
}
