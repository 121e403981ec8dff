package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order is the persisted order aggregate. Customer fields are a snapshot taken
// at creation time and are not updated when the profile changes.
type Order struct {
	ID          uuid.UUID
	OrderNumber string

	Status        OrderStatus
	PaymentStatus PaymentStatus
	Total         Money

	CustomerName  string
	CustomerEmail string

	ProviderOrderID   *string
	ProviderPaymentID *string
	ProviderSignature *string
	ProviderRefundID  *string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConfirmedAt *time.Time
}

// PaymentConfirmation is the verified triple sent by the client after checkout,
// bound to the internal order it claims to pay for.
type PaymentConfirmation struct {
	OrderID           uuid.UUID
	ProviderOrderID   string
	ProviderPaymentID string
	ProviderSignature string
}

// StatusChange is the result of a fulfillment status update.
type StatusChange struct {
	Previous OrderStatus
	Order    Order
}

// BecameDelivered reports whether the update moved the order into delivered.
func (c StatusChange) BecameDelivered() bool {
	return c.Previous != OrderStatusDelivered && c.Order.Status == OrderStatusDelivered
}

// DeliveryNotification is what the customer is told once an order is delivered.
type DeliveryNotification struct {
	OrderID       uuid.UUID
	OrderNumber   string
	CustomerName  string
	CustomerEmail string
}

func NewDeliveryNotification(o Order) DeliveryNotification {
	return DeliveryNotification{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
	}
}
