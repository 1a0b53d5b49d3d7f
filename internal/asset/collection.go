// Package asset implements the non-fungible item side of the
// marketplace: per-account collections that store items and the
// withdrawal capabilities the market engine resolves at sale time.
// Collections are collaborators of the engine, reached only through
// capabilities; the engine re-validates everything they return.
package asset

import (
	"errors"
	"sync"

	"github.com/evgorin/nft-storefront/internal/market"
)

// ErrAbsent is returned when a collection does not hold the item.
var ErrAbsent = errors.New("item not in collection")

// Item is a uniquely identified non-fungible asset. The id is assigned
// at mint time and never reused; the kind names the asset family.
type Item struct {
	id   uint64
	kind market.Kind
	Name string
	URI  string
}

// ItemID returns the item's unique identifier.
func (i *Item) ItemID() uint64 { return i.id }

// ItemKind returns the asset family tag.
func (i *Item) ItemKind() market.Kind { return i.kind }

// Collection holds the items owned by one account. All operations are
// safe for concurrent use.
type Collection struct {
	mu    sync.Mutex
	owner uint64
	items map[uint64]*Item
}

// Owner returns the account the collection belongs to.
func (c *Collection) Owner() uint64 { return c.owner }

// Deposit stores an item in the collection.
func (c *Collection) Deposit(item *Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[item.id] = item
}

// Withdraw removes the item and transfers ownership to the caller.
// Fails with ErrAbsent when the collection does not hold it.
func (c *Collection) Withdraw(id uint64) (market.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	if !ok {
		return nil, ErrAbsent
	}
	delete(c.items, id)
	return item, nil
}

// BorrowItem returns a read reference to the item without moving it.
func (c *Collection) BorrowItem(id uint64) (market.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	if !ok {
		return nil, false
	}
	return item, true
}

// ItemIDs returns the ids currently held, in no particular order.
func (c *Collection) ItemIDs() []uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]uint64, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	return ids
}

// Capability is a revocable credential entitling its holder to reach a
// collection. The market engine resolves it fresh on every use, so
// revocation takes effect immediately for any listing that retained
// the capability.
type Capability struct {
	mu     sync.Mutex
	target *Collection
}

// BorrowCollection resolves the capability. It returns false once the
// capability has been revoked.
func (c *Capability) BorrowCollection() (market.ItemCollection, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.target == nil {
		return nil, false
	}
	return c.target, true
}

// Revoke permanently severs the capability from its collection.
func (c *Capability) Revoke() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = nil
}
