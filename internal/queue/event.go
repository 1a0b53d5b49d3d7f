// Package queue defines message payloads exchanged over the message broker.
package queue

// MarketplaceEvent is the wire envelope for every signal the market
// engine emits. One flat shape covers all four event names so that
// downstream consumers can decode without a type registry; fields not
// applicable to a given name are omitted.
type MarketplaceEvent struct {
	Name          string   `json:"name"` // storefront.created|storefront.destroyed|listing.available|listing.completed
	StorefrontID  uint64   `json:"storefront_id"`
	ItemID        uint64   `json:"item_id,omitempty"`
	AcceptedKinds []string `json:"accepted_kinds,omitempty"`
	Prices        []uint64 `json:"prices,omitempty"`
	Purchased     *bool    `json:"purchased,omitempty"`
	EmittedAt     string   `json:"emitted_at"`
}
