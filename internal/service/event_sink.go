package queue_publisher

import (
	"context"
	"time"

	"github.com/evgorin/nft-storefront/internal/market"
	q "github.com/evgorin/nft-storefront/internal/queue"
)

// BrokerSink adapts the market engine's event sink to the message
// broker. Emit is called while the emitting storefront's lock is held,
// so publishing happens on a separate goroutine; a broker outage slows
// down nothing and loses only observability, never sale state.
type BrokerSink struct{}

// NewBrokerSink returns a sink that forwards every engine event to the
// marketplace.events queue.
func NewBrokerSink() *BrokerSink { return &BrokerSink{} }

// Emit translates the engine event into the wire envelope and
// publishes it in the background. Publish failures are logged by the
// publisher and otherwise dropped.
func (s *BrokerSink) Emit(e market.Event) {
	env := q.MarketplaceEvent{
		Name:      e.Name(),
		EmittedAt: time.Now().UTC().Format(time.RFC3339),
	}
	switch ev := e.(type) {
	case market.StorefrontCreated:
		env.StorefrontID = ev.StorefrontID
	case market.StorefrontDestroyed:
		env.StorefrontID = ev.StorefrontID
	case market.ListingAvailable:
		env.StorefrontID = ev.StorefrontID
		env.ItemID = ev.ItemID
		for _, k := range ev.Kinds {
			env.AcceptedKinds = append(env.AcceptedKinds, string(k))
		}
		env.Prices = append(env.Prices, ev.Prices...)
	case market.ListingCompleted:
		env.StorefrontID = ev.StorefrontID
		env.ItemID = ev.ItemID
		purchased := ev.Purchased
		env.Purchased = &purchased
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = PublishMarketplaceEvent(ctx, env)
	}()
}
