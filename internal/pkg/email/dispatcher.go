package email

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Message is one queued notification.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}

// Dispatcher delivers messages on a background goroutine so callers never wait on
// the mail relay. Delivery is at most once: failures are logged and dropped.
type Dispatcher struct {
	notifier Notifier
	queue    chan Message
	timeout  time.Duration
	logger   zerolog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewDispatcher creates a dispatcher with a queue of size messages. Call Run to start it.
func NewDispatcher(notifier Notifier, size int, logger zerolog.Logger) *Dispatcher {
	if size <= 0 {
		size = 1
	}
	return &Dispatcher{
		notifier: notifier,
		queue:    make(chan Message, size),
		timeout:  30 * time.Second,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Run delivers queued messages until Close is called and the queue is drained.
func (d *Dispatcher) Run() {
	defer close(d.done)
	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.notifier.Notify(ctx, msg.Recipient, msg.Subject, msg.Body); err != nil {
		d.logger.Error().Err(err).Str("to", msg.Recipient).Str("subject", msg.Subject).Msg("Failed to send notification")
		return
	}
	d.logger.Info().Str("to", msg.Recipient).Msg("Notification sent")
}

// Enqueue queues msg without blocking. It reports false when the queue is full or
// the dispatcher is closed; the message is then dropped.
func (d *Dispatcher) Enqueue(msg Message) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn().Str("to", msg.Recipient).Msg("Dispatcher closed, dropping notification")
		return false
	}
	select {
	case d.queue <- msg:
		return true
	default:
		d.logger.Warn().Str("to", msg.Recipient).Msg("Notification queue full, dropping notification")
		return false
	}
}

// Close stops accepting messages and waits until queued ones are delivered or ctx ends.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
