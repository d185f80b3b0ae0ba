// Package mock provides a recording connection for tests and for running the
// service without a speech endpoint.
package mock

import (
	"context"
	"errors"
	"sync"
	"time"

	"ai-conversation-transcriber/internal/service/connection"
)

// ErrInjectedFailure is returned by Send when a failure was injected.
var ErrInjectedFailure = errors.New("mock connection: injected send failure")

// Connection implements connection.Connection by recording every message.
type Connection struct {
	mu       sync.Mutex
	sent     []*connection.Message
	delay    time.Duration // Simulated transport acknowledgment latency
	failAt   int           // 1-based send index that fails; 0 disables
	failErr  error
	attempts int
	closed   bool
}

// Option configures a mock Connection.
type Option func(*Connection)

// WithDelay makes every Send wait d before acknowledging.
func WithDelay(d time.Duration) Option {
	return func(c *Connection) { c.delay = d }
}

// WithFailureAt makes the n-th Send (1-based) fail with err.
// A nil err uses ErrInjectedFailure.
func WithFailureAt(n int, err error) Option {
	return func(c *Connection) {
		c.failAt = n
		if err == nil {
			err = ErrInjectedFailure
		}
		c.failErr = err
	}
}

// New creates a new mock connection.
func New(opts ...Option) *Connection {
	c := &Connection{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send records msg after the configured delay.
func (c *Connection) Send(ctx context.Context, msg *connection.Message) error {
	c.mu.Lock()
	c.attempts++
	attempt := c.attempts
	closed := c.closed
	delay := c.delay
	c.mu.Unlock()

	if closed {
		return errors.New("mock connection: closed")
	}

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if c.failAt > 0 && attempt == c.failAt {
		return c.failErr
	}

	cp := *msg
	cp.Body = append([]byte(nil), msg.Body...)

	c.mu.Lock()
	c.sent = append(c.sent, &cp)
	c.mu.Unlock()
	return nil
}

// Messages returns a copy of the recorded messages in send order.
func (c *Connection) Messages() []*connection.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*connection.Message{}, c.sent...)
}

// Attempts returns the number of Send calls, including failed ones.
func (c *Connection) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// Close marks the connection closed. Idempotent.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
