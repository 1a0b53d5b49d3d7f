package market

import "sync"

// Registry holds at most one storefront per seller. It is the explicit
// home of the per-seller singleton: storefronts are looked up by
// seller identity here rather than living in ambient global state.
// The registry is scoped to a single asset kind; every storefront it
// creates only accepts listings of that kind.
type Registry struct {
	mu          sync.RWMutex
	assetKind   Kind
	sink        EventSink
	storefronts map[uint64]*Storefront
	nextID      uint64
}

// NewRegistry builds a registry for one asset family. sink receives
// every event the contained storefronts and listings emit.
func NewRegistry(assetKind Kind, sink EventSink) *Registry {
	if sink == nil {
		panic("nil event sink passed to NewRegistry")
	}
	return &Registry{
		assetKind:   assetKind,
		sink:        sink,
		storefronts: make(map[uint64]*Storefront),
	}
}

// AssetKind returns the asset family this marketplace instance trades.
func (r *Registry) AssetKind() Kind { return r.assetKind }

// Create installs a storefront for the seller and emits
// StorefrontCreated. A seller gets exactly one storefront; a second
// Create fails with ErrStorefrontExists.
func (r *Registry) Create(sellerID uint64) (*Storefront, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storefronts[sellerID]; exists {
		return nil, ErrStorefrontExists
	}
	r.nextID++
	s := newStorefront(r.nextID, r.assetKind, r.sink)
	r.storefronts[sellerID] = s
	r.sink.Emit(StorefrontCreated{StorefrontID: s.id})
	return s, nil
}

// Get returns the seller's storefront, or false when none exists.
func (r *Registry) Get(sellerID uint64) (*Storefront, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.storefronts[sellerID]
	return s, ok
}

// Destroy evicts and tears down the seller's storefront, cascading the
// teardown of every contained listing. Fails with ErrNoStorefront when
// the seller has none.
func (r *Registry) Destroy(sellerID uint64) error {
	r.mu.Lock()
	s, ok := r.storefronts[sellerID]
	if ok {
		delete(r.storefronts, sellerID)
	}
	r.mu.Unlock()
	if !ok {
		return ErrNoStorefront
	}
	s.destroy()
	return nil
}
