// Package notify delivers customer notifications in the background. Delivery
// is best effort: failures are logged and never retried.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nikolayk812/shoppay/internal/domain"
)

const (
	DefaultWorkers     = 2
	DefaultQueueSize   = 100
	DefaultSendTimeout = 10 * time.Second
)

// Result identifies a notification accepted by the downstream provider.
type Result struct {
	ID string
}

type Sender interface {
	SendDelivery(ctx context.Context, n domain.DeliveryNotification) (Result, error)
}

type Options struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
}

// Dispatcher is a fixed pool of workers reading from a bounded queue.
type Dispatcher struct {
	sender  Sender
	logger  *slog.Logger
	timeout time.Duration

	queue chan domain.DeliveryNotification
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sender Sender, logger *slog.Logger, opts Options) (*Dispatcher, error) {
	if sender == nil {
		return nil, errors.New("sender is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = DefaultSendTimeout
	}

	d := &Dispatcher{
		sender:  sender,
		logger:  logger.With("component", "notify.Dispatcher"),
		timeout: opts.SendTimeout,
		queue:   make(chan domain.DeliveryNotification, opts.QueueSize),
	}

	d.wg.Add(opts.Workers)
	for range opts.Workers {
		go d.work()
	}

	return d, nil
}

// NotifyDelivered enqueues n without blocking. A full queue or a closed
// dispatcher drops the notification.
func (d *Dispatcher) NotifyDelivered(n domain.DeliveryNotification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	logger := d.logger.With("order_id", n.OrderID, "order_number", n.OrderNumber)

	if d.closed {
		logger.Warn("dispatcher is closed, dropping delivery notification")
		return
	}

	select {
	case d.queue <- n:
	default:
		logger.Warn("notification queue is full, dropping delivery notification")
	}
}

// Close stops accepting notifications and waits for queued ones to be sent.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) work() {
	defer d.wg.Done()

	for n := range d.queue {
		d.send(n)
	}
}

func (d *Dispatcher) send(n domain.DeliveryNotification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	logger := d.logger.With("order_id", n.OrderID, "order_number", n.OrderNumber)

	result, err := d.sender.SendDelivery(ctx, n)
	if err != nil {
		logger.Error("failed to send delivery notification", "error", err)
		return
	}

	logger.Info("delivery notification sent", "notification_id", result.ID)
}
