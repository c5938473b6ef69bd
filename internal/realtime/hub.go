// Package realtime implements the per-document room broker. Every open
// document view joins the document's room; annotation changes publish a
// refresh event to the room and each member re-fetches the authoritative
// annotation list over HTTP. Delivery is best-effort: no acknowledgment,
// no retry, no replay of missed events.
package realtime

import "sync"

// Event names exchanged over the realtime channel.
const (
	// EventJoinDocument and EventLeaveDocument are sent by clients to manage
	// room membership.
	EventJoinDocument  = "join-document"
	EventLeaveDocument = "leave-document"
	// EventRefreshAnnotations is broadcast to a document room when its
	// annotation set changed. It carries no payload: receivers re-fetch.
	EventRefreshAnnotations = "refresh-annotations"
)

// Envelope is the JSON frame exchanged on the realtime channel.
// DocumentID is set on client frames addressing a room; server broadcast
// frames omit it.
type Envelope struct {
	Event      string `json:"event"`
	DocumentID string `json:"documentId,omitempty"`
}

// Subscriber receives broadcast events. Notify must not block: transport
// implementations buffer and drop under backpressure.
type Subscriber interface {
	Notify(Envelope)
}

// Hub owns the mapping from document IDs to their current subscriber sets.
// A subscriber may be a member of any number of rooms at once. All methods
// are safe for concurrent use.
type Hub struct {
	mu sync.RWMutex
	// rooms maps document ID to members; members maps a subscriber back to
	// the rooms it joined, so Disconnect needs no room list from the caller.
	rooms   map[string]map[Subscriber]struct{}
	members map[Subscriber]map[string]struct{}
}

// NewHub creates an empty room broker.
func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[string]map[Subscriber]struct{}),
		members: make(map[Subscriber]map[string]struct{}),
	}
}

// Join adds s to the room for documentID. Joining a room twice is a no-op.
func (h *Hub) Join(s Subscriber, documentID string) {
	if documentID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[documentID]
	if !ok {
		room = make(map[Subscriber]struct{})
		h.rooms[documentID] = room
	}
	room[s] = struct{}{}

	joined, ok := h.members[s]
	if !ok {
		joined = make(map[string]struct{})
		h.members[s] = joined
	}
	joined[documentID] = struct{}{}
}

// Leave removes s from the room for documentID. Idempotent: leaving a room
// that was never joined is not an error.
func (h *Hub) Leave(s Subscriber, documentID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(s, documentID)
}

// Disconnect removes s from every room it is a member of. Called when the
// underlying connection closes; clients do not explicitly leave their rooms
// before disconnecting.
func (h *Hub) Disconnect(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for documentID := range h.members[s] {
		h.leaveLocked(s, documentID)
	}
}

// Publish sends event to every subscriber currently in the room for
// documentID, including the originator of the change: the originator
// re-fetches like everyone else, which keeps client state derivation
// single-path. Publishing to an empty room is silent, not an error.
func (h *Hub) Publish(documentID, event string) {
	h.mu.RLock()
	room := h.rooms[documentID]
	subs := make([]Subscriber, 0, len(room))
	for s := range room {
		subs = append(subs, s)
	}
	h.mu.RUnlock()

	// Deliver outside the lock; Notify is non-blocking by contract.
	env := Envelope{Event: event}
	for _, s := range subs {
		s.Notify(env)
	}
}

// RoomSize returns the number of current members of documentID's room.
func (h *Hub) RoomSize(documentID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[documentID])
}

func (h *Hub) leaveLocked(s Subscriber, documentID string) {
	if room, ok := h.rooms[documentID]; ok {
		delete(room, s)
		if len(room) == 0 {
			delete(h.rooms, documentID)
		}
	}
	if joined, ok := h.members[s]; ok {
		delete(joined, documentID)
		if len(joined) == 0 {
			delete(h.members, s)
		}
	}
}
