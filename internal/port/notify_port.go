package port

import "github.com/nikolayk812/shoppay/internal/domain"

// DeliveryNotifier hands a notification to a best-effort background sender.
// It must not block the caller.
type DeliveryNotifier interface {
	NotifyDelivered(n domain.DeliveryNotification)
}
