package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"iotmarket/pkg/marketplace"
)

func receive(t *testing.T, sub *Subscription) Message {
	t.Helper()
	select {
	case msg := <-sub.Messages():
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
		return Message{}
	}
}

func TestFeed_DeliversToParties(t *testing.T) {
	feed := NewFeed()
	owner := feed.Subscribe("owner-1")
	lessee := feed.Subscribe("lessee-1")
	stranger := feed.Subscribe("stranger")

	feed.Publish(marketplace.Event{
		Type:    marketplace.EventLeaseCreated,
		Actor:   "lessee-1",
		LeaseID: 7,
		Parties: []string{"owner-1"},
	})

	got := receive(t, owner)
	require.Equal(t, marketplace.EventLeaseCreated, got.Type)
	require.Equal(t, uint64(7), got.LeaseID)
	require.NotEmpty(t, got.ID)

	require.Equal(t, got.ID, receive(t, lessee).ID)

	select {
	case msg := <-stranger.Messages():
		t.Fatalf("stranger received %v", msg)
	default:
	}
}

func TestFeed_ActorReceivesOnce(t *testing.T) {
	feed := NewFeed()
	sub := feed.Subscribe("alice")

	// alice appears both as actor and as an explicit party.
	feed.Publish(marketplace.Event{
		Type:    marketplace.EventPaymentProcessed,
		Actor:   "alice",
		Parties: []string{"alice", "bob"},
	})

	receive(t, sub)
	select {
	case msg := <-sub.Messages():
		t.Fatalf("duplicate delivery %v", msg)
	default:
	}
}

func TestFeed_ResubscribeReplaces(t *testing.T) {
	feed := NewFeed()
	first := feed.Subscribe("alice")
	second := feed.Subscribe("alice")

	select {
	case <-first.Done():
	case <-time.After(time.Second):
		t.Fatal("replaced subscription not cancelled")
	}

	feed.Publish(marketplace.Event{Type: marketplace.EventAssetRegistered, Actor: "alice"})
	receive(t, second)
	require.Equal(t, []string{"alice"}, feed.Subscribers())
}

func TestFeed_UnsubscribeOnlyRemovesOwnSubscription(t *testing.T) {
	feed := NewFeed()
	stale := feed.Subscribe("alice")
	active := feed.Subscribe("alice")

	// Unsubscribing the replaced connection must not tear down the newer one.
	feed.Unsubscribe(stale)
	require.Equal(t, []string{"alice"}, feed.Subscribers())

	feed.Unsubscribe(active)
	require.Empty(t, feed.Subscribers())

	select {
	case <-active.Done():
	default:
		t.Fatal("unsubscribed subscription not cancelled")
	}
}

func TestFeed_PublishNeverBlocks(t *testing.T) {
	feed := NewFeed()
	feed.Subscribe("slow")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			feed.Publish(marketplace.Event{Type: marketplace.EventReviewSubmitted, Actor: "slow"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
