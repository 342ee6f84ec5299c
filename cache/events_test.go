package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(EventCafeUpdated, func(p Payload) { got = append(got, "a:"+p.CafeID) })
	bus.Subscribe(EventCafeUpdated, func(p Payload) { got = append(got, "b:"+p.CafeID) })
	bus.Subscribe(EventCafeDeleted, func(p Payload) { got = append(got, "never") })

	bus.Publish(EventCafeUpdated, Payload{CafeID: "x"})

	assert.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	bus.Publish(EventMenuCreated, Payload{CafeID: "x"}) // must not panic
}

// seedDirectory fills the store with one entry per cached read shape.
func seedDirectory(s *Store, cafeID string) (list, single, other Key) {
	list = NewKey(KindCafeList, 0, 20, "", false)
	single = NewKey(KindCafe, cafeID)
	other = NewKey(KindCafe, "other-cafe")
	s.Put(list, "list")
	s.Put(single, "single")
	s.Put(other, "other")
	return
}

func TestDirectoryEdges(t *testing.T) {
	const cafeID = "11111111-1111-1111-1111-111111111111"

	cases := []struct {
		event      Event
		wantList   bool // list cache invalidated
		wantSingle bool // this cafe's detail invalidated
	}{
		{EventCafeCreated, true, false},
		{EventCafeUpdated, true, true},
		{EventCafeDeleted, true, true},
		{EventMenuCreated, false, true},
		{EventMenuUpdated, false, true},
		{EventMenuDeleted, false, true},
		{EventHoursUpserted, false, true},
		{EventReviewCreated, true, true},
		{EventImageUploaded, true, true},
		{EventImageDeleted, true, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.event), func(t *testing.T) {
			store := New(time.Minute, nil)
			bus := NewBus()
			RegisterDirectoryEdges(bus, store, nil)

			list, single, other := seedDirectory(store, cafeID)

			bus.Publish(tc.event, Payload{CafeID: cafeID})

			_, listOK := store.Get(list)
			_, singleOK := store.Get(single)
			_, otherOK := store.Get(other)

			assert.Equal(t, !tc.wantList, listOK, "list cache")
			assert.Equal(t, !tc.wantSingle, singleOK, "single-cafe cache")
			assert.True(t, otherOK, "unrelated cafe must stay cached")
		})
	}
}
