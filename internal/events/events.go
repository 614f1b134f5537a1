// Package events publishes resource-change notifications to a message
// broker. Publishing is best-effort: a broker outage never fails the write
// that triggered the event.
package events

import (
	"context"
	"time"
)

// Actions carried by resource-change events.
const (
	AccionCreado      = "creado"
	AccionActualizado = "actualizado"
	AccionEliminado   = "eliminado"
)

// Event describes one change applied to a resource record.
type Event struct {
	Recurso string    `json:"recurso"`
	Accion  string    `json:"accion"`
	ID      int64     `json:"id"`
	ActorID int64     `json:"actor_id,omitempty"`
	Fecha   time.Time `json:"fecha"`
}

// Publisher delivers resource-change events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}
