package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nikolayk812/shoppay/internal/domain"
)

// LogSender only logs. It is used when no delivery channel is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendDelivery(_ context.Context, n domain.DeliveryNotification) (Result, error) {
	id := uuid.NewString()

	s.logger.Info("delivery notification",
		"notification_id", id,
		"order_number", n.OrderNumber,
		"customer_email", n.CustomerEmail)

	return Result{ID: id}, nil
}
