package service

import (
	"context"

	"go-erp-api/internal/ws"

	"github.com/google/uuid"
)

// Change is a successful master-data mutation.
type Change struct {
	Resource string
	Action   string
	ID       uuid.UUID
	ActorID  *uuid.UUID
	Message  string
}

// ChangeNotifier is told about every successful mutation.
type ChangeNotifier interface {
	Notify(ctx context.Context, change Change)
}

type EventPublisher interface {
	Publish(e ws.Event)
}

type MutationRecorder interface {
	RecordMutation(resource, action string)
}

type changeNotifier struct {
	publisher EventPublisher
	recorder  MutationRecorder
}

// NewChangeNotifier fans changes out to the websocket hub and the mutation counter.
func NewChangeNotifier(publisher EventPublisher, recorder MutationRecorder) ChangeNotifier {
	return &changeNotifier{publisher: publisher, recorder: recorder}
}

func (n *changeNotifier) Notify(_ context.Context, c Change) {
	if n.recorder != nil {
		n.recorder.RecordMutation(c.Resource, c.Action)
	}
	if n.publisher != nil {
		n.publisher.Publish(ws.Event{
			Type:     ws.EventMasterDataUpdate,
			Resource: c.Resource,
			Action:   c.Action,
			ID:       c.ID,
			ActorID:  c.ActorID,
			Message:  c.Message,
		})
	}
}

// NopNotifier discards changes.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Change) {}
