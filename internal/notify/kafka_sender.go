package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shoppay/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultTopic             = "order-notifications"
	deliveryConfirmationType = "delivery_confirmation"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSender publishes notifications for an external mailer to consume.
type KafkaSender struct {
	writer messageWriter
	now    func() time.Time
}

type deliveryMessage struct {
	NotificationID string    `json:"notification_id"`
	OrderID        uuid.UUID `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewKafkaSender(topic string, brokers ...string) (*KafkaSender, error) {
	if len(brokers) == 0 {
		return nil, errors.New("brokers are empty")
	}
	if topic == "" {
		topic = DefaultTopic
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	return newKafkaSender(w), nil
}

func newKafkaSender(w messageWriter) *KafkaSender {
	return &KafkaSender{writer: w, now: time.Now}
}

func (s *KafkaSender) SendDelivery(ctx context.Context, n domain.DeliveryNotification) (Result, error) {
	id := uuid.NewString()

	payload, err := json.Marshal(deliveryMessage{
		NotificationID: id,
		OrderID:        n.OrderID,
		OrderNumber:    n.OrderNumber,
		CustomerName:   n.CustomerName,
		CustomerEmail:  n.CustomerEmail,
		CreatedAt:      s.now().UTC(),
	})
	if err != nil {
		return Result{}, fmt.Errorf("json.Marshal: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(n.OrderID.String()), // order id keeps per-order ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(deliveryConfirmationType)},
		},
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return Result{}, fmt.Errorf("writer.WriteMessages: %w", err)
	}

	return Result{ID: id}, nil
}

func (s *KafkaSender) Close() error {
	return s.writer.Close()
}
