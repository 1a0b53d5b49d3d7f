package asset

import (
	"errors"
	"sync"

	"github.com/evgorin/nft-storefront/internal/market"
)

// ErrNoCollection is returned when an account has no collection yet.
var ErrNoCollection = errors.New("account has no collection")

// Registry owns every account's collection and mints new items. Item
// ids are issued from a single counter so that no two items of this
// registry's kind ever share an id.
type Registry struct {
	mu          sync.Mutex
	kind        market.Kind
	collections map[uint64]*Collection
	nextItemID  uint64
}

// NewRegistry builds an item registry for one asset family.
func NewRegistry(kind market.Kind) *Registry {
	return &Registry{
		kind:        kind,
		collections: make(map[uint64]*Collection),
	}
}

// Kind returns the asset family this registry mints.
func (r *Registry) Kind() market.Kind { return r.kind }

// CreateCollection returns the account's collection, creating an empty
// one on first use.
func (r *Registry) CreateCollection(owner uint64) *Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.collections[owner]; ok {
		return c
	}
	c := &Collection{owner: owner, items: make(map[uint64]*Item)}
	r.collections[owner] = c
	return c
}

// Collection returns the account's collection, or false when the
// account never created one.
func (r *Registry) Collection(owner uint64) (*Collection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.collections[owner]
	return c, ok
}

// Mint creates a new item of the registry's kind and deposits it into
// the owner's collection, creating the collection when needed. It
// returns the minted item's id.
func (r *Registry) Mint(owner uint64, name, uri string) uint64 {
	r.mu.Lock()
	r.nextItemID++
	item := &Item{id: r.nextItemID, kind: r.kind, Name: name, URI: uri}
	c, ok := r.collections[owner]
	if !ok {
		c = &Collection{owner: owner, items: make(map[uint64]*Item)}
		r.collections[owner] = c
	}
	r.mu.Unlock()
	c.Deposit(item)
	return item.id
}

// IssueCapability hands out a withdrawal capability for the account's
// collection. Fails with ErrNoCollection when the account has none.
func (r *Registry) IssueCapability(owner uint64) (*Capability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.collections[owner]
	if !ok {
		return nil, ErrNoCollection
	}
	return &Capability{target: c}, nil
}
