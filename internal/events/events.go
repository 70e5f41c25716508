package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Audit actions emitted by the gateway operations.
const (
	ActionMint     = "mint"
	ActionRequest  = "request"
	ActionResponse = "response"
	ActionUpdate   = "update"
)

// AuditEvent records the observable attributes of one successful gateway
// operation.
type AuditEvent struct {
	// ID is a unique identifier for this event.
	ID uuid.UUID `json:"id"`

	// Action is the operation that produced the event (mint, request,
	// response, update).
	Action string `json:"action"`

	// Attributes holds the operation's audit attributes, e.g. token_id,
	// task_id, minter, requester.
	Attributes map[string]string `json:"attributes"`

	// CreatedAt is the timestamp when the event was created.
	CreatedAt time.Time `json:"created_at"`
}

// NewAuditEvent creates an AuditEvent for the given action and attributes.
func NewAuditEvent(action string, attributes map[string]string) *AuditEvent {
	return &AuditEvent{
		ID:         uuid.New(),
		Action:     action,
		Attributes: attributes,
		CreatedAt:  time.Now().UTC(),
	}
}

// Handler defines an interface for components that consume audit events.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *AuditEvent) error
}

// Emitter defines an interface for components that publish audit events.
// Services emit events only after their transaction has committed, so
// handlers never observe attributes of an aborted operation.
type Emitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *AuditEvent) error
}
