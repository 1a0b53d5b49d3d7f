package market

import "sync"

// Storefront is one seller's container of listings, keyed by item id.
// It enforces that an item participates in at most one live listing at
// a time and owns the full listing lifecycle. A single mutex
// serializes create, purchase, remove and cleanup per storefront;
// operations on different storefronts proceed independently.
type Storefront struct {
	mu        sync.Mutex
	id        uint64
	assetKind Kind
	listings  map[uint64]*Listing
	sink      EventSink
	destroyed bool
}

func newStorefront(id uint64, assetKind Kind, sink EventSink) *Storefront {
	return &Storefront{
		id:        id,
		assetKind: assetKind,
		listings:  make(map[uint64]*Listing),
		sink:      sink,
	}
}

// ID returns the storefront's identity, used to correlate events.
func (s *Storefront) ID() uint64 { return s.id }

// CreateListing offers an item for sale. provider must be a capability
// into the seller's collection that can withdraw the item when it
// sells. voucherKind, when non-empty, gates every purchase on
// redeeming a voucher of that kind. It fails with ErrAlreadyListed
// when the item already has a live listing here, and propagates the
// construction failures of the listing itself. On success it emits a
// ListingAvailable event and returns the item id, which is the
// listing's identity from then on.
func (s *Storefront) CreateListing(provider CollectionCapability, itemID uint64, options []PaymentOption, voucherKind Kind) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return 0, ErrNoStorefront
	}
	if _, exists := s.listings[itemID]; exists {
		return 0, ErrAlreadyListed
	}
	listing, err := newListing(provider, itemID, s.assetKind, options, voucherKind, s.id, s.sink)
	if err != nil {
		return 0, err
	}
	s.listings[itemID] = listing

	kinds := make([]Kind, len(options))
	prices := make([]uint64, len(options))
	for i, opt := range options {
		kinds[i] = opt.VaultKind()
		prices[i] = opt.Price()
	}
	s.sink.Emit(ListingAvailable{
		StorefrontID: s.id,
		ItemID:       itemID,
		Kinds:        kinds,
		Prices:       prices,
	})
	return itemID, nil
}

// Purchase buys the listing for itemID with the supplied deposit,
// redeeming voucher first when the listing requires one. The listing
// stays in the storefront afterwards, marked purchased, until someone
// cleans it up.
func (s *Storefront) Purchase(itemID uint64, payment *Payment, voucher *Voucher) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[itemID]
	if !ok {
		return nil, ErrListingNotFound
	}
	return listing.Purchase(payment, voucher)
}

// RemoveListing evicts and destroys the listing regardless of its
// purchased state. This is the admin path; the engine itself does not
// check caller identity, which is an access-control concern of the
// surrounding layer.
func (s *Storefront) RemoveListing(itemID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[itemID]
	if !ok {
		return ErrListingNotFound
	}
	delete(s.listings, itemID)
	listing.destroy()
	return nil
}

// CleanupListing evicts a purchased listing. Unlike RemoveListing it
// may be invoked by anyone: it refuses unpurchased listings with
// ErrNotPurchased, so untrusted callers can reclaim state for
// completed sales without being able to pull active offers.
func (s *Storefront) CleanupListing(itemID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[itemID]
	if !ok {
		return ErrListingNotFound
	}
	if !listing.details.Purchased {
		return ErrNotPurchased
	}
	delete(s.listings, itemID)
	listing.destroy()
	return nil
}

// ListingIDs returns the item ids of all live listings. Pure read.
func (s *Storefront) ListingIDs() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint64, 0, len(s.listings))
	for id := range s.listings {
		ids = append(ids, id)
	}
	return ids
}

// GetListing returns a snapshot of the listing's details, or false
// when no listing exists for the item. This is the safe public query:
// it never fails loudly on absence.
func (s *Storefront) GetListing(itemID uint64) (ListingDetails, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[itemID]
	if !ok {
		return ListingDetails{}, false
	}
	return listing.Details(), true
}

// ListingVoucherKind reports whether the listing is voucher-gated and
// which voucher kind it requires.
func (s *Storefront) ListingVoucherKind(itemID uint64) (Kind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[itemID]
	if !ok {
		return "", false
	}
	return listing.voucherKind, true
}

// BorrowListingItem resolves the listing's withdrawal capability and
// returns a verified read reference to the item on offer.
func (s *Storefront) BorrowListingItem(itemID uint64) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[itemID]
	if !ok {
		return nil, ErrListingNotFound
	}
	return listing.BorrowItem()
}

// destroy tears down every contained listing (each unsold one emits
// its completion event) and emits StorefrontDestroyed. Called by the
// registry with the storefront evicted first.
func (s *Storefront) destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}
	s.destroyed = true
	for id, listing := range s.listings {
		delete(s.listings, id)
		listing.destroy()
	}
	s.sink.Emit(StorefrontDestroyed{StorefrontID: s.id})
}
