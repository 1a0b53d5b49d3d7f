package market

// Event is implemented by every signal the engine emits. Name returns
// a stable dotted identifier used as the routing key off-process.
type Event interface {
	Name() string
}

// StorefrontCreated is emitted once when a seller's storefront is
// installed in the registry.
type StorefrontCreated struct {
	StorefrontID uint64 `json:"storefront_id"`
}

func (StorefrontCreated) Name() string { return "storefront.created" }

// StorefrontDestroyed is emitted when a storefront is torn down. Every
// contained listing emits its own completion event first.
type StorefrontDestroyed struct {
	StorefrontID uint64 `json:"storefront_id"`
}

func (StorefrontDestroyed) Name() string { return "storefront.destroyed" }

// ListingAvailable announces a new listing for discovery by
// off-process aggregators. Kinds and Prices are parallel: Prices[i] is
// the exact total a deposit of Kinds[i] must carry.
type ListingAvailable struct {
	StorefrontID uint64   `json:"storefront_id"`
	ItemID       uint64   `json:"item_id"`
	Kinds        []Kind   `json:"accepted_kinds"`
	Prices       []uint64 `json:"prices"`
}

func (ListingAvailable) Name() string { return "listing.available" }

// ListingCompleted is emitted exactly once over the lifetime of every
// listing: with Purchased true at the moment of sale, or with
// Purchased false when an unsold listing is removed or its storefront
// destroyed. Observers rely on the exactly-once property to tell
// "sold" from "withdrawn from sale".
type ListingCompleted struct {
	ItemID       uint64 `json:"item_id"`
	StorefrontID uint64 `json:"storefront_id"`
	Purchased    bool   `json:"purchased"`
}

func (ListingCompleted) Name() string { return "listing.completed" }

// CollectEvents is an EventSink that appends into a slice. Useful in
// tests and anywhere the caller wants the events back synchronously.
type CollectEvents struct {
	Events []Event
}

// Emit appends the event.
func (c *CollectEvents) Emit(e Event) { c.Events = append(c.Events, e) }
