package cache

import (
	"sync"

	"github.com/cafein/api-go/metrics"
)

// Event names a mutation that repositories publish after a successful write.
type Event string

const (
	EventCafeCreated   Event = "cafe.created"
	EventCafeUpdated   Event = "cafe.updated"
	EventCafeDeleted   Event = "cafe.deleted"
	EventMenuCreated   Event = "menu.created"
	EventMenuUpdated   Event = "menu.updated"
	EventMenuDeleted   Event = "menu.deleted"
	EventHoursUpserted Event = "hours.upserted"
	EventReviewCreated Event = "review.created"
	EventImageUploaded Event = "image.uploaded"
	EventImageDeleted  Event = "image.deleted"
)

// Payload carries the cafe the mutation touched. CafeID is the canonical
// string form of the cafe id, empty for cafe.created where no detail entry
// exists yet.
type Payload struct {
	CafeID string
}

// Handler reacts to a published mutation event.
type Handler func(Payload)

// Bus is a synchronous in-process publish/subscribe fan-out for mutation
// events. Handlers run on the publisher's goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Event][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Event][]Handler)}
}

func (b *Bus) Subscribe(e Event, h Handler) {
	b.mu.Lock()
	b.handlers[e] = append(b.handlers[e], h)
	b.mu.Unlock()
}

func (b *Bus) Publish(e Event, p Payload) {
	b.mu.RLock()
	hs := b.handlers[e]
	b.mu.RUnlock()
	for _, h := range hs {
		h(p)
	}
}

// RegisterDirectoryEdges wires the invalidation edges between mutations and
// cached reads:
//
//	cafe create              -> cafe list
//	cafe update/delete       -> cafe list, single cafe
//	menu create/update/delete-> single cafe
//	hours upsert             -> single cafe
//	review create            -> single cafe, cafe list (aggregates change)
//	image upload/delete      -> single cafe, cafe list
//
// Omitting an edge here causes stale reads; this table is the correctness
// contract of the layer.
func RegisterDirectoryEdges(bus *Bus, store *Store, m *metrics.Metrics) {
	list := func(e Event) Handler {
		return func(Payload) {
			store.InvalidateKind(KindCafeList)
			countInvalidation(m, e)
		}
	}
	single := func(e Event) Handler {
		return func(p Payload) {
			store.Invalidate(NewKey(KindCafe, p.CafeID))
			countInvalidation(m, e)
		}
	}
	both := func(e Event) Handler {
		return func(p Payload) {
			store.Invalidate(NewKey(KindCafe, p.CafeID))
			store.InvalidateKind(KindCafeList)
			countInvalidation(m, e)
		}
	}

	bus.Subscribe(EventCafeCreated, list(EventCafeCreated))
	bus.Subscribe(EventCafeUpdated, both(EventCafeUpdated))
	bus.Subscribe(EventCafeDeleted, both(EventCafeDeleted))

	bus.Subscribe(EventMenuCreated, single(EventMenuCreated))
	bus.Subscribe(EventMenuUpdated, single(EventMenuUpdated))
	bus.Subscribe(EventMenuDeleted, single(EventMenuDeleted))

	bus.Subscribe(EventHoursUpserted, single(EventHoursUpserted))

	bus.Subscribe(EventReviewCreated, both(EventReviewCreated))

	bus.Subscribe(EventImageUploaded, both(EventImageUploaded))
	bus.Subscribe(EventImageDeleted, both(EventImageDeleted))
}

func countInvalidation(m *metrics.Metrics, e Event) {
	if m != nil {
		m.CacheInvalidations.WithLabelValues(string(e)).Inc()
	}
}
