// Package events provides an in-process change-notification hub. The stores
// publish an event after every committed mutation; presentation-side
// subscribers (the websocket adapter) receive them on buffered channels.
// The hub is constructed once and injected; there is no package-level
// instance.
package events

import (
	"sync"
	"time"
)

// Kind identifies the store mutation an event describes.
type Kind string

const (
	KindTeamCreated          Kind = "team_created"
	KindTeamJoined           Kind = "team_joined"
	KindTeamLeft             Kind = "team_left"
	KindMentorAssigned       Kind = "mentor_assigned"
	KindProjectCreated       Kind = "project_created"
	KindDeliverableAdded     Kind = "deliverable_added"
	KindDeliverableUpdated   Kind = "deliverable_updated"
	KindDeliverableSubmitted Kind = "deliverable_submitted"
)

// Event describes a single committed store mutation. Entity ids are set for
// whichever entities the mutation touched.
type Event struct {
	Kind          Kind      `json:"kind"`
	TeamID        string    `json:"team_id,omitempty"`
	ProjectID     string    `json:"project_id,omitempty"`
	DeliverableID int64     `json:"deliverable_id,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	At            time.Time `json:"at"`
}

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls this far behind starts losing events rather than blocking the stores.
const subscriberBuffer = 64

// Hub fans events out to all current subscribers. Publishing never blocks:
// events to a full subscriber buffer are dropped.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]chan Event
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan Event)}
}

// Subscribe registers a subscriber under the given id and returns its event
// channel. Subscribing twice with the same id replaces (and closes) the
// earlier channel.
func (h *Hub) Subscribe(id string) <-chan Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.subs[id]; ok {
		close(prev)
	}
	ch := make(chan Event, subscriberBuffer)
	h.subs[id] = ch
	return ch
}

// Unsubscribe removes the subscriber and closes its channel. Unknown ids are
// a no-op.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[id]; ok {
		close(ch)
		delete(h.subs, id)
	}
}

// Publish delivers the event to every subscriber whose buffer has room.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- e:
		default:
			// Subscriber is not draining; drop rather than block the store.
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
