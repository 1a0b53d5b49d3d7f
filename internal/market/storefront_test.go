package market

import (
	"errors"
	"sync"
	"testing"
)

func TestCreateListingEnforcesOneListingPerItem(t *testing.T) {
	f := newSaleFixture(t, "")
	opt := mustOption(t, kindFlow, SaleCut{Receiver: f.sellerCap, Amount: 50})

	if _, err := f.store.CreateListing(f.collCap, 42, []PaymentOption{opt}, ""); !errors.Is(err, ErrAlreadyListed) {
		t.Fatalf("expected ErrAlreadyListed, got %v", err)
	}
}

func TestCreateListingEmitsAvailability(t *testing.T) {
	f := newSaleFixture(t, "")
	var avail []ListingAvailable
	for _, e := range f.sink.Events {
		if a, ok := e.(ListingAvailable); ok {
			avail = append(avail, a)
		}
	}
	if len(avail) != 1 {
		t.Fatalf("expected one availability event, got %d", len(avail))
	}
	a := avail[0]
	if a.ItemID != 42 || a.StorefrontID != f.store.ID() {
		t.Fatalf("unexpected availability event %+v", a)
	}
	if len(a.Kinds) != 1 || a.Kinds[0] != kindFlow || len(a.Prices) != 1 || a.Prices[0] != 100 {
		t.Fatalf("availability must carry accepted kinds and prices, got %+v", a)
	}
}

func TestRemoveListingEmitsUnpurchasedCompletion(t *testing.T) {
	f := newSaleFixture(t, "")
	if err := f.store.RemoveListing(42); err != nil {
		t.Fatalf("remove listing: %v", err)
	}
	done := completions(f.sink)
	if len(done) != 1 {
		t.Fatalf("expected one completion event, got %d", len(done))
	}
	if done[0].Purchased {
		t.Fatal("removing an unsold listing must report purchased=false")
	}
	if err := f.store.RemoveListing(42); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestRemoveAfterPurchaseStaysSilent(t *testing.T) {
	f := newSaleFixture(t, "")
	if _, err := f.store.Purchase(42, NewPayment(kindFlow, 100), nil); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if err := f.store.RemoveListing(42); err != nil {
		t.Fatalf("remove listing: %v", err)
	}
	// The completion event was emitted during the purchase; eviction
	// must not emit a second one.
	if n := len(completions(f.sink)); n != 1 {
		t.Fatalf("expected exactly one completion event over the lifetime, got %d", n)
	}
}

func TestCleanupOnlyReclaimsPurchasedListings(t *testing.T) {
	f := newSaleFixture(t, "")

	if err := f.store.CleanupListing(999); !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
	if err := f.store.CleanupListing(42); !errors.Is(err, ErrNotPurchased) {
		t.Fatalf("expected ErrNotPurchased, got %v", err)
	}
	if _, err := f.store.Purchase(42, NewPayment(kindFlow, 100), nil); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if err := f.store.CleanupListing(42); err != nil {
		t.Fatalf("cleanup after purchase: %v", err)
	}
	if ids := f.store.ListingIDs(); len(ids) != 0 {
		t.Fatalf("cleaned listing must leave the id list, got %v", ids)
	}
	if n := len(completions(f.sink)); n != 1 {
		t.Fatalf("cleanup must not emit a second completion, got %d", n)
	}
}

func TestGetListingIsNilSafe(t *testing.T) {
	f := newSaleFixture(t, "")
	if _, ok := f.store.GetListing(12345); ok {
		t.Fatal("absent listing must report ok=false")
	}
	details, ok := f.store.GetListing(42)
	if !ok {
		t.Fatal("expected listing 42")
	}
	if details.ItemID != 42 || details.Purchased {
		t.Fatalf("unexpected details %+v", details)
	}
	if len(details.PaymentOptions) != 1 || details.PaymentOptions[0].Price() != 100 {
		t.Fatalf("details must carry payment options, got %+v", details.PaymentOptions)
	}
}

func TestStorefrontDestroyCascades(t *testing.T) {
	sink := &CollectEvents{}
	reg := NewRegistry(kindMoment, sink)
	store, err := reg.Create(3)
	if err != nil {
		t.Fatalf("create storefront: %v", err)
	}
	coll := newFakeCollection(
		fakeItem{id: 1, kind: kindMoment},
		fakeItem{id: 2, kind: kindMoment},
	)
	cc := &fakeCollectionCap{target: coll}
	receiver := &fakeReceiverCap{target: &fakeReceiver{}}
	opt := mustOption(t, kindFlow, SaleCut{Receiver: receiver, Amount: 100})
	for _, id := range []uint64{1, 2} {
		if _, err := store.CreateListing(cc, id, []PaymentOption{opt}, ""); err != nil {
			t.Fatalf("create listing %d: %v", id, err)
		}
	}
	if _, err := store.Purchase(1, NewPayment(kindFlow, 100), nil); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	if err := reg.Destroy(3); err != nil {
		t.Fatalf("destroy storefront: %v", err)
	}

	// One completion per listing over its lifetime: item 1 completed at
	// purchase, item 2 at teardown.
	byItem := map[uint64][]ListingCompleted{}
	for _, c := range completions(sink) {
		byItem[c.ItemID] = append(byItem[c.ItemID], c)
	}
	if len(byItem[1]) != 1 || !byItem[1][0].Purchased {
		t.Fatalf("item 1 expected one purchased completion, got %+v", byItem[1])
	}
	if len(byItem[2]) != 1 || byItem[2][0].Purchased {
		t.Fatalf("item 2 expected one unpurchased completion, got %+v", byItem[2])
	}

	destroyed := false
	for _, e := range sink.Events {
		if _, ok := e.(StorefrontDestroyed); ok {
			destroyed = true
		}
	}
	if !destroyed {
		t.Fatal("expected a StorefrontDestroyed event")
	}
}

func TestConcurrentPurchasesSingleWinner(t *testing.T) {
	f := newSaleFixture(t, "")
	const buyers = 16

	payments := make([]*Payment, buyers)
	results := make([]error, buyers)
	var wg sync.WaitGroup
	for i := 0; i < buyers; i++ {
		payments[i] = NewPayment(kindFlow, 100)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.store.Purchase(42, payments[i], nil)
		}(i)
	}
	wg.Wait()

	wins := 0
	for i, err := range results {
		switch {
		case err == nil:
			wins++
			if payments[i].Balance() != 0 {
				t.Fatalf("winning deposit must be consumed, %d left", payments[i].Balance())
			}
		case errors.Is(err, ErrAlreadyPurchased):
			if payments[i].Balance() != 100 {
				t.Fatalf("losing deposit must be untouched, got %d", payments[i].Balance())
			}
		default:
			t.Fatalf("unexpected purchase error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning purchase, got %d", wins)
	}
	if f.seller.received+f.fee.received != 100 {
		t.Fatalf("proceeds must equal one deposit, got %d", f.seller.received+f.fee.received)
	}
	if n := len(completions(f.sink)); n != 1 {
		t.Fatalf("expected one completion event, got %d", n)
	}
}
