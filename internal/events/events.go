package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventReservationStatusChanged = "reservation_status_changed"
	EventReservationCancelled     = "reservation_cancelled"
	EventReviewCreated            = "review_created"
	EventPetSaved                 = "pet_saved"
	EventPetDeleted               = "pet_deleted"
	EventDefaultAddressChanged    = "default_address_changed"
)

// ReservationEventPayload describes a reservation change for event consumers.
type ReservationEventPayload struct {
	ReservationID string `json:"reservation_id"`
	CompanyID     int64  `json:"company_id,omitempty"`
	Status        string `json:"status,omitempty"`
	StatusCode    string `json:"status_code,omitempty"`
}

// ReviewEventPayload describes a created review.
type ReviewEventPayload struct {
	ReservationID int64 `json:"reservation_id"`
	CompanyID     int64 `json:"company_id"`
	Rating        int   `json:"rating"`
}

// PetEventPayload describes a saved or deleted pet.
type PetEventPayload struct {
	PetID     int64  `json:"pet_id"`
	Name      string `json:"name,omitempty"`
	BreedName string `json:"breed_name,omitempty"`
}

// AddressEventPayload replaces the old browser-wide "defaultAddressChanged" signal.
type AddressEventPayload struct {
	UserID   string `json:"user_id"`
	RoadAddr string `json:"road_addr"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// Decode unmarshals the JSON payload into v.
func (e *Event) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

type subscriber struct {
	id      uint64
	handler EventHandler
}

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]subscriber
	nextID      uint64
	mu          sync.RWMutex
}

// Subscription ties a handler to the lifetime of its owner.
type Subscription struct {
	bus       *EventBus
	eventType string
	id        uint64
	once      sync.Once
}

// Unsubscribe removes the handler. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	s.once.Do(func() {
		s.bus.remove(s.eventType, s.id)
	})
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]subscriber)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subscribers[eventType] = append(b.subscribers[eventType], subscriber{id: id, handler: handler})
	return &Subscription{bus: b, eventType: eventType, id: id}
}

func (b *EventBus) remove(eventType string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subscribers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.subscribers[eventType] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subscribers[eventType]) == 0 {
		delete(b.subscribers, eventType)
	}
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	subs := append([]subscriber(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, s := range subs {
		// Handlers run synchronously; caller decides concurrency model.
		_ = s.handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	event, err := NewJSONEvent(eventType, payload)
	if err != nil {
		return err
	}
	b.Publish(&event)
	return nil
}

// NewJSONEvent builds an Event with JSON payload for manual publishing.
func NewJSONEvent(eventType string, payload interface{}) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}

	return Event{Type: eventType, Payload: raw, CreatedAt: time.Now()}, nil
}
