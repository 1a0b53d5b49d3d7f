package market

import (
	"errors"
	"testing"
)

const (
	kindMoment Kind = "TopShot.Moment"
	kindFlow   Kind = "FLOW"
	kindFusd   Kind = "FUSD"
)

// saleFixture wires one storefront with a single 100-unit listing for
// item 42: a 90-unit cut to the seller and a 10-unit cut to a fee
// beneficiary.
type saleFixture struct {
	sink      *CollectEvents
	store     *Storefront
	coll      *fakeCollection
	collCap   *fakeCollectionCap
	seller    *fakeReceiver
	sellerCap *fakeReceiverCap
	fee       *fakeReceiver
	feeCap    *fakeReceiverCap
}

func newSaleFixture(t *testing.T, voucherKind Kind) *saleFixture {
	t.Helper()
	f := &saleFixture{sink: &CollectEvents{}}
	f.coll = newFakeCollection(fakeItem{id: 42, kind: kindMoment})
	f.collCap = &fakeCollectionCap{target: f.coll}
	f.seller = &fakeReceiver{}
	f.sellerCap = &fakeReceiverCap{target: f.seller}
	f.fee = &fakeReceiver{}
	f.feeCap = &fakeReceiverCap{target: f.fee}

	reg := NewRegistry(kindMoment, f.sink)
	store, err := reg.Create(7)
	if err != nil {
		t.Fatalf("create storefront: %v", err)
	}
	f.store = store

	opt := mustOption(t, kindFlow,
		SaleCut{Receiver: f.sellerCap, Amount: 90},
		SaleCut{Receiver: f.feeCap, Amount: 10},
	)
	if _, err := store.CreateListing(f.collCap, 42, []PaymentOption{opt}, voucherKind); err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return f
}

func TestPurchaseHappyPath(t *testing.T) {
	f := newSaleFixture(t, "")
	payment := NewPayment(kindFlow, 100)

	item, err := f.store.Purchase(42, payment, nil)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if item.ItemID() != 42 || item.ItemKind() != kindMoment {
		t.Fatalf("wrong item returned: id=%d kind=%q", item.ItemID(), item.ItemKind())
	}
	if f.seller.received != 90 {
		t.Fatalf("seller expected 90, got %d", f.seller.received)
	}
	if f.fee.received != 10 {
		t.Fatalf("fee expected 10, got %d", f.fee.received)
	}
	if payment.Balance() != 0 {
		t.Fatalf("deposit must be fully consumed, %d left", payment.Balance())
	}
	if _, ok := f.coll.items[42]; ok {
		t.Fatal("item must have left the seller's collection")
	}
	details, ok := f.store.GetListing(42)
	if !ok || !details.Purchased {
		t.Fatalf("listing should remain visible and purchased, ok=%v purchased=%v", ok, details.Purchased)
	}

	done := completions(f.sink)
	if len(done) != 1 {
		t.Fatalf("expected exactly one completion event, got %d", len(done))
	}
	if done[0].ItemID != 42 || done[0].StorefrontID != f.store.ID() || !done[0].Purchased {
		t.Fatalf("unexpected completion event %+v", done[0])
	}
}

func TestPurchasePaymentExactness(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		balance uint64
	}{
		{name: "underpayment", kind: kindFlow, balance: 99},
		{name: "overpayment", kind: kindFlow, balance: 101},
		{name: "wrong kind", kind: kindFusd, balance: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSaleFixture(t, "")
			payment := NewPayment(tt.kind, tt.balance)
			if _, err := f.store.Purchase(42, payment, nil); !errors.Is(err, ErrNoMatchingPaymentOption) {
				t.Fatalf("expected ErrNoMatchingPaymentOption, got %v", err)
			}
			// No side effects on a failed match.
			if payment.Balance() != tt.balance {
				t.Fatalf("deposit must be untouched, got %d", payment.Balance())
			}
			if f.seller.received != 0 || f.fee.received != 0 {
				t.Fatal("no cuts may be paid on a failed match")
			}
			if details, _ := f.store.GetListing(42); details.Purchased {
				t.Fatal("failed match must not mark the listing purchased")
			}
		})
	}
}

func TestPurchaseIsMonotonic(t *testing.T) {
	f := newSaleFixture(t, "")
	if _, err := f.store.Purchase(42, NewPayment(kindFlow, 100), nil); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	second := NewPayment(kindFlow, 100)
	if _, err := f.store.Purchase(42, second, nil); !errors.Is(err, ErrAlreadyPurchased) {
		t.Fatalf("expected ErrAlreadyPurchased, got %v", err)
	}
	if second.Balance() != 100 {
		t.Fatalf("rejected deposit must be untouched, got %d", second.Balance())
	}
	if len(completions(f.sink)) != 1 {
		t.Fatalf("expected a single completion event, got %d", len(completions(f.sink)))
	}
}

func TestMatchScansOptionsInStoredOrder(t *testing.T) {
	sink := &CollectEvents{}
	reg := NewRegistry(kindMoment, sink)
	store, err := reg.Create(1)
	if err != nil {
		t.Fatalf("create storefront: %v", err)
	}
	coll := newFakeCollection(fakeItem{id: 5, kind: kindMoment})
	first := &fakeReceiver{}
	second := &fakeReceiver{}
	opts := []PaymentOption{
		mustOption(t, kindFlow, SaleCut{Receiver: &fakeReceiverCap{target: first}, Amount: 100}),
		mustOption(t, kindFlow, SaleCut{Receiver: &fakeReceiverCap{target: second}, Amount: 100}),
	}
	if _, err := store.CreateListing(&fakeCollectionCap{target: coll}, 5, opts, ""); err != nil {
		t.Fatalf("create listing: %v", err)
	}
	if _, err := store.Purchase(5, NewPayment(kindFlow, 100), nil); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if first.received != 100 || second.received != 0 {
		t.Fatalf("first matching option must win: first=%d second=%d", first.received, second.received)
	}
}

func TestResidualRollsToFirstResolvedReceiver(t *testing.T) {
	f := newSaleFixture(t, "")
	f.feeCap.revoked = true

	payment := NewPayment(kindFlow, 100)
	if _, err := f.store.Purchase(42, payment, nil); err != nil {
		t.Fatalf("purchase with unreachable fee receiver: %v", err)
	}
	if f.seller.received != 100 {
		t.Fatalf("seller should absorb the fee cut, got %d", f.seller.received)
	}
	if f.fee.received != 0 {
		t.Fatalf("revoked fee receiver must receive nothing, got %d", f.fee.received)
	}
	if payment.Balance() != 0 {
		t.Fatalf("deposit must be fully consumed, %d left", payment.Balance())
	}
}

func TestResidualWhenFirstCutUnresolvable(t *testing.T) {
	f := newSaleFixture(t, "")
	f.sellerCap.revoked = true

	if _, err := f.store.Purchase(42, NewPayment(kindFlow, 100), nil); err != nil {
		t.Fatalf("purchase with unreachable seller receiver: %v", err)
	}
	// The fee beneficiary is the first resolvable receiver, so it
	// absorbs the seller's share too.
	if f.fee.received != 100 {
		t.Fatalf("fee receiver should absorb the full deposit, got %d", f.fee.received)
	}
}

func TestPurchaseFailsWhenNoReceiverResolves(t *testing.T) {
	f := newSaleFixture(t, "")
	f.sellerCap.revoked = true
	f.feeCap.revoked = true

	if _, err := f.store.Purchase(42, NewPayment(kindFlow, 100), nil); !errors.Is(err, ErrNoValidReceiver) {
		t.Fatalf("expected ErrNoValidReceiver, got %v", err)
	}
	// The failure happened after the commit point, so the listing is
	// burned, never retryable.
	if _, err := f.store.Purchase(42, NewPayment(kindFlow, 100), nil); !errors.Is(err, ErrAlreadyPurchased) {
		t.Fatalf("expected ErrAlreadyPurchased after post-commit failure, got %v", err)
	}
}

func TestPurchaseFailsWhenAuthorityRevokedAfterListing(t *testing.T) {
	f := newSaleFixture(t, "")
	f.collCap.revoked = true

	if _, err := f.store.Purchase(42, NewPayment(kindFlow, 100), nil); !errors.Is(err, ErrAuthorityUnavailable) {
		t.Fatalf("expected ErrAuthorityUnavailable, got %v", err)
	}
	if _, err := f.store.Purchase(42, NewPayment(kindFlow, 100), nil); !errors.Is(err, ErrAlreadyPurchased) {
		t.Fatalf("expected ErrAlreadyPurchased after post-commit failure, got %v", err)
	}
}

func TestPurchaseFailsWhenItemMovedAway(t *testing.T) {
	f := newSaleFixture(t, "")
	// Seller transfers the item through another channel after listing.
	delete(f.coll.items, 42)

	if _, err := f.store.Purchase(42, NewPayment(kindFlow, 100), nil); !errors.Is(err, ErrItemUnavailable) {
		t.Fatalf("expected ErrItemUnavailable, got %v", err)
	}
}

func TestPurchaseRejectsMismatchedWithdrawal(t *testing.T) {
	f := newSaleFixture(t, "")
	// A conforming-but-malicious collection hands back a different item
	// than the one promised.
	f.coll.withdrawFn = func(id uint64) (Item, error) {
		return fakeItem{id: 9999, kind: kindMoment}, nil
	}
	if _, err := f.store.Purchase(42, NewPayment(kindFlow, 100), nil); !errors.Is(err, ErrWithdrawnItemMismatch) {
		t.Fatalf("expected ErrWithdrawnItemMismatch, got %v", err)
	}

	f = newSaleFixture(t, "")
	f.coll.withdrawFn = func(id uint64) (Item, error) {
		return fakeItem{id: 42, kind: "Other.Asset"}, nil
	}
	if _, err := f.store.Purchase(42, NewPayment(kindFlow, 100), nil); !errors.Is(err, ErrWithdrawnItemMismatch) {
		t.Fatalf("expected ErrWithdrawnItemMismatch for wrong kind, got %v", err)
	}
}

func TestListingConstructionFailures(t *testing.T) {
	sink := &CollectEvents{}
	reg := NewRegistry(kindMoment, sink)
	store, err := reg.Create(1)
	if err != nil {
		t.Fatalf("create storefront: %v", err)
	}
	receiver := &fakeReceiverCap{target: &fakeReceiver{}}
	opt := mustOption(t, kindFlow, SaleCut{Receiver: receiver, Amount: 10})

	revoked := &fakeCollectionCap{target: newFakeCollection(), revoked: true}
	if _, err := store.CreateListing(revoked, 1, []PaymentOption{opt}, ""); !errors.Is(err, ErrAuthorityUnavailable) {
		t.Fatalf("expected ErrAuthorityUnavailable, got %v", err)
	}

	empty := &fakeCollectionCap{target: newFakeCollection()}
	if _, err := store.CreateListing(empty, 1, []PaymentOption{opt}, ""); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	foreign := &fakeCollectionCap{target: newFakeCollection(fakeItem{id: 1, kind: "Other.Asset"})}
	if _, err := store.CreateListing(foreign, 1, []PaymentOption{opt}, ""); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	if len(sink.Events) != 1 { // only the StorefrontCreated event
		t.Fatalf("failed creations must not emit listing events, got %d events", len(sink.Events))
	}
}

func TestBorrowItemVerifiesCollaborator(t *testing.T) {
	f := newSaleFixture(t, "")

	item, err := f.store.BorrowListingItem(42)
	if err != nil {
		t.Fatalf("borrow item: %v", err)
	}
	if item.ItemID() != 42 || item.ItemKind() != kindMoment {
		t.Fatalf("borrowed wrong item: id=%d kind=%q", item.ItemID(), item.ItemKind())
	}

	f.coll.borrowFn = func(id uint64) (Item, bool) {
		return fakeItem{id: 9999, kind: kindMoment}, true
	}
	if _, err := f.store.BorrowListingItem(42); !errors.Is(err, ErrIDMismatch) {
		t.Fatalf("expected ErrIDMismatch, got %v", err)
	}

	f.coll.borrowFn = func(id uint64) (Item, bool) {
		return fakeItem{id: 42, kind: "Other.Asset"}, true
	}
	if _, err := f.store.BorrowListingItem(42); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}

	f.coll.borrowFn = func(id uint64) (Item, bool) { return nil, false }
	if _, err := f.store.BorrowListingItem(42); !errors.Is(err, ErrItemUnavailable) {
		t.Fatalf("expected ErrItemUnavailable, got %v", err)
	}

	f.collCap.revoked = true
	f.coll.borrowFn = nil
	if _, err := f.store.BorrowListingItem(42); !errors.Is(err, ErrItemUnavailable) {
		t.Fatalf("expected ErrItemUnavailable for revoked capability, got %v", err)
	}
}

func TestVoucherGatedPurchase(t *testing.T) {
	const pass Kind = "GoldPass"

	t.Run("missing voucher", func(t *testing.T) {
		f := newSaleFixture(t, pass)
		if _, err := f.store.Purchase(42, NewPayment(kindFlow, 100), nil); !errors.Is(err, ErrVoucherRequired) {
			t.Fatalf("expected ErrVoucherRequired, got %v", err)
		}
	})

	t.Run("wrong kind", func(t *testing.T) {
		f := newSaleFixture(t, pass)
		v := NewVoucher("SilverPass")
		if _, err := f.store.Purchase(42, NewPayment(kindFlow, 100), v); !errors.Is(err, ErrVoucherKindMismatch) {
			t.Fatalf("expected ErrVoucherKindMismatch, got %v", err)
		}
		if v.Redeemed() {
			t.Fatal("a voucher of the wrong kind must not be consumed")
		}
	})

	t.Run("consumed even when matching fails", func(t *testing.T) {
		f := newSaleFixture(t, pass)
		v := NewVoucher(pass)
		if _, err := f.store.Purchase(42, NewPayment(kindFlow, 1), v); !errors.Is(err, ErrNoMatchingPaymentOption) {
			t.Fatalf("expected ErrNoMatchingPaymentOption, got %v", err)
		}
		if !v.Redeemed() {
			t.Fatal("voucher must be consumed before payment matching")
		}
		// Retrying with the spent voucher fails.
		if _, err := f.store.Purchase(42, NewPayment(kindFlow, 100), v); !errors.Is(err, ErrVoucherRedeemed) {
			t.Fatalf("expected ErrVoucherRedeemed, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		f := newSaleFixture(t, pass)
		item, err := f.store.Purchase(42, NewPayment(kindFlow, 100), NewVoucher(pass))
		if err != nil {
			t.Fatalf("purchase: %v", err)
		}
		if item.ItemID() != 42 {
			t.Fatalf("wrong item %d", item.ItemID())
		}
	})
}
