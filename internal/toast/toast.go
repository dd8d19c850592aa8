// Package toast carries the short success and error notices shown after a
// user action.
package toast

import (
	"context"
	"log/slog"
	"sync"
)

const (
	// KindSuccess is a confirmation notice.
	KindSuccess = "success"
	// KindError reports a failed action.
	KindError = "error"
)

// Message describes one notice.
type Message struct {
	Kind string `json:"kind"`
	Body string `json:"message"`
}

// Notifier delivers notices.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes notices to the structured logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("toast", "kind", message.Kind, "body", message.Body)
	return nil
}

// Collector keeps the notices raised while serving one request so they can
// be returned with the response.
type Collector struct {
	mu       sync.Mutex
	messages []Message
}

// Send records the message.
func (c *Collector) Send(_ context.Context, message Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
	return nil
}

// Messages returns the notices in the order they were raised.
func (c *Collector) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message{}, c.messages...)
}

// Fanout sends every message to each notifier in turn and returns the first error.
type Fanout []Notifier

func (f Fanout) Send(ctx context.Context, message Message) error {
	var first error
	for _, n := range f {
		if err := n.Send(ctx, message); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type ctxKey struct{}

// WithNotifier attaches n to ctx.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, ctxKey{}, n)
}

// FromContext returns the notifier attached to ctx. Without one notices are dropped.
func FromContext(ctx context.Context) Notifier {
	if n, ok := ctx.Value(ctxKey{}).(Notifier); ok && n != nil {
		return n
	}
	return Fanout(nil)
}

// Success raises a confirmation notice on the notifier in ctx.
func Success(ctx context.Context, body string) {
	_ = FromContext(ctx).Send(ctx, Message{Kind: KindSuccess, Body: body})
}

// Error raises a failure notice on the notifier in ctx.
func Error(ctx context.Context, body string) {
	_ = FromContext(ctx).Send(ctx, Message{Kind: KindError, Body: body})
}
