package payment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shoppay/internal/domain"
	"github.com/samber/lo"
)

// MockOrderRepository mirrors the conditional updates of the SQL layer over an
// in-memory map, so idempotency can be asserted without a database.
type MockOrderRepository struct {
	mu     sync.Mutex
	orders map[uuid.UUID]domain.Order

	// Err is returned by every mutating call when set.
	Err    error
	Writes int
}

func NewMockOrderRepository(orders ...domain.Order) *MockOrderRepository {
	m := &MockOrderRepository{orders: make(map[uuid.UUID]domain.Order)}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *MockOrderRepository) Get(id uuid.UUID) domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[id]
}

func (m *MockOrderRepository) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, nil
}

func (m *MockOrderRepository) SearchOrders(_ context.Context, _ domain.OrderFilter) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.Values(m.orders), nil
}

func (m *MockOrderRepository) InsertOrder(_ context.Context, order domain.Order) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.orders[order.ID] = order
	return order.ID, nil
}

func (m *MockOrderRepository) ConfirmPayment(_ context.Context, c domain.PaymentConfirmation) (domain.Order, error) {
	return m.update(func(o domain.Order) bool {
		return o.ID == c.OrderID && lo.FromPtr(o.ProviderOrderID) == c.ProviderOrderID
	}, func(o *domain.Order) {
		o.ProviderPaymentID = lo.ToPtr(c.ProviderPaymentID)
		o.ProviderSignature = lo.ToPtr(c.ProviderSignature)
		markPaid(o)
	})
}

func (m *MockOrderRepository) MarkPaymentFailed(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	return m.update(func(o domain.Order) bool {
		return o.ID == orderID
	}, markFailed)
}

func (m *MockOrderRepository) MarkPaidByProviderOrder(_ context.Context, providerOrderID, providerPaymentID string) (domain.Order, error) {
	return m.update(func(o domain.Order) bool {
		return lo.FromPtr(o.ProviderOrderID) == providerOrderID
	}, func(o *domain.Order) {
		o.ProviderPaymentID = lo.ToPtr(providerPaymentID)
		markPaid(o)
	})
}

func (m *MockOrderRepository) MarkFailedByProviderOrder(_ context.Context, providerOrderID string) (domain.Order, error) {
	return m.update(func(o domain.Order) bool {
		return lo.FromPtr(o.ProviderOrderID) == providerOrderID
	}, markFailed)
}

func (m *MockOrderRepository) MarkRefundedByProviderPayment(_ context.Context, providerPaymentID, refundID string) (domain.Order, error) {
	return m.update(func(o domain.Order) bool {
		return lo.FromPtr(o.ProviderPaymentID) == providerPaymentID
	}, func(o *domain.Order) {
		o.PaymentStatus = domain.PaymentStatusRefunded
		if refundID != "" {
			o.ProviderRefundID = lo.ToPtr(refundID)
		}
	})
}

func (m *MockOrderRepository) UpdateOrderStatus(_ context.Context, orderID uuid.UUID, status domain.OrderStatus) (domain.StatusChange, error) {
	var change domain.StatusChange

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return change, m.Err
	}

	o, ok := m.orders[orderID]
	if !ok {
		return change, domain.ErrOrderNotFound
	}

	change.Previous = o.Status
	o.Status = status
	m.orders[orderID] = o
	m.Writes++

	change.Order = o
	return change, nil
}

func (m *MockOrderRepository) update(match func(domain.Order) bool, apply func(*domain.Order)) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return domain.Order{}, m.Err
	}

	for id, o := range m.orders {
		if !match(o) {
			continue
		}
		apply(&o)
		o.UpdatedAt = time.Now()
		m.orders[id] = o
		m.Writes++
		return o, nil
	}

	return domain.Order{}, domain.ErrOrderNotFound
}

func markPaid(o *domain.Order) {
	if o.PaymentStatus != domain.PaymentStatusRefunded {
		o.PaymentStatus = domain.PaymentStatusPaid
	}
	if o.Status == domain.OrderStatusPending {
		o.Status = domain.OrderStatusConfirmed
	}
	if o.ConfirmedAt == nil {
		o.ConfirmedAt = lo.ToPtr(time.Now())
	}
}

func markFailed(o *domain.Order) {
	if o.PaymentStatus == domain.PaymentStatusPaid || o.PaymentStatus == domain.PaymentStatusRefunded {
		return
	}
	o.PaymentStatus = domain.PaymentStatusFailed
}

// MockEventCache records processed ids in a map.
type MockEventCache struct {
	Processed map[string]bool
	SeenErr   error
}

func (m *MockEventCache) Seen(_ context.Context, eventID string) (bool, error) {
	if m.SeenErr != nil {
		return false, m.SeenErr
	}
	return m.Processed[eventID], nil
}

func (m *MockEventCache) MarkProcessed(_ context.Context, eventID string) error {
	if m.Processed == nil {
		m.Processed = make(map[string]bool)
	}
	m.Processed[eventID] = true
	return nil
}
