package events

import (
	"sync"

	"github.com/google/uuid"

	"iotmarket/pkg/marketplace"
)

// Message is one feed entry as delivered to a subscriber.
type Message struct {
	ID string `json:"id"`
	marketplace.Event
}

// Subscription is one identity's connection to the feed.
type Subscription struct {
	identity string
	send     chan Message // buffered; slow consumers drop messages
	done     chan struct{}
}

// Messages delivers this subscription's events.
func (s *Subscription) Messages() <-chan Message { return s.send }

// Done closes when the subscription is cancelled, including replacement by a
// newer connection for the same identity.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Feed fans marketplace events out to websocket subscribers. A subscriber
// only receives events whose parties include its identity. Implements
// marketplace.EventSink.
type Feed struct {
	mu   sync.RWMutex
	subs map[string]*Subscription // identity -> subscription
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[string]*Subscription)}
}

// Subscribe registers identity. An existing subscription for the same
// identity is cancelled and replaced.
func (f *Feed) Subscribe(identity string) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.subs[identity]; ok {
		close(existing.done)
	}

	sub := &Subscription{
		identity: identity,
		send:     make(chan Message, 32),
		done:     make(chan struct{}),
	}
	f.subs[identity] = sub
	return sub
}

// Unsubscribe cancels sub if it is still the active subscription for its
// identity.
func (f *Feed) Unsubscribe(sub *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if current, ok := f.subs[sub.identity]; ok && current == sub {
		close(sub.done)
		delete(f.subs, sub.identity)
	}
}

// Subscribers reports the identities currently connected.
func (f *Feed) Subscribers() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ids := make([]string, 0, len(f.subs))
	for id := range f.subs {
		ids = append(ids, id)
	}
	return ids
}

// Publish delivers ev to every subscribed party. Never blocks: a full
// subscriber buffer drops the message for that subscriber only.
func (f *Feed) Publish(ev marketplace.Event) {
	msg := Message{ID: uuid.NewString(), Event: ev}

	f.mu.RLock()
	defer f.mu.RUnlock()

	seen := make(map[string]bool, len(ev.Parties)+1)
	for _, party := range append([]string{ev.Actor}, ev.Parties...) {
		if party == "" || seen[party] {
			continue
		}
		seen[party] = true

		sub, ok := f.subs[party]
		if !ok {
			continue
		}
		select {
		case sub.send <- msg:
		case <-sub.done:
		default: // buffer full
		}
	}
}
