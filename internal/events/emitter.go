package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEmitter is a simple implementation of the Emitter interface that
// stores registered handlers in memory and dispatches events to them.
type InMemoryEmitter struct {
	handlers []Handler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEmitter creates a new instance of InMemoryEmitter.
func NewInMemoryEmitter(logger *slog.Logger) *InMemoryEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEmitter{
		handlers: make([]Handler, 0),
		logger:   logger.With(slog.String("component", "audit_emitter")),
	}
}

// RegisterHandler adds a new handler to receive audit events.
func (e *InMemoryEmitter) RegisterHandler(handler Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered audit handler", "handler_count", len(e.handlers))
}

// EmitEvent publishes the given event to all registered handlers. If a
// handler returns an error, the event is still delivered to the remaining
// handlers and the first error encountered is returned.
func (e *InMemoryEmitter) EmitEvent(ctx context.Context, event *AuditEvent) error {
	e.mu.RLock()
	handlers := make([]Handler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process audit event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"action", event.Action)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// LogHandler writes every audit event to the structured log, giving each
// operation's attributes a durable, queryable record.
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler creates a LogHandler writing to the given logger.
func NewLogHandler(logger *slog.Logger) *LogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogHandler{
		logger: logger.With(slog.String("component", "audit_log")),
	}
}

// HandleEvent implements Handler by logging the event's attributes.
func (h *LogHandler) HandleEvent(ctx context.Context, event *AuditEvent) error {
	attrs := []slog.Attr{
		slog.String("event_id", event.ID.String()),
		slog.String("action", event.Action),
	}
	for key, value := range event.Attributes {
		attrs = append(attrs, slog.String(key, value))
	}
	h.logger.LogAttrs(ctx, slog.LevelInfo, "audit", attrs...)
	return nil
}
