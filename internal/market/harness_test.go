package market

import "testing"

// Test doubles for the collaborator surfaces. The engine is specified
// against conforming-but-untrusted collaborators, so the fakes can be
// told to misbehave: hand back the wrong item, vanish mid-flight.

type fakeItem struct {
	id   uint64
	kind Kind
}

func (f fakeItem) ItemID() uint64 { return f.id }
func (f fakeItem) ItemKind() Kind { return f.kind }

type fakeCollection struct {
	items map[uint64]Item

	// when set, these override the honest behavior
	withdrawFn func(id uint64) (Item, error)
	borrowFn   func(id uint64) (Item, bool)
}

func newFakeCollection(items ...Item) *fakeCollection {
	c := &fakeCollection{items: make(map[uint64]Item)}
	for _, it := range items {
		c.items[it.ItemID()] = it
	}
	return c
}

func (c *fakeCollection) Withdraw(id uint64) (Item, error) {
	if c.withdrawFn != nil {
		return c.withdrawFn(id)
	}
	it, ok := c.items[id]
	if !ok {
		return nil, ErrItemUnavailable
	}
	delete(c.items, id)
	return it, nil
}

func (c *fakeCollection) BorrowItem(id uint64) (Item, bool) {
	if c.borrowFn != nil {
		return c.borrowFn(id)
	}
	it, ok := c.items[id]
	return it, ok
}

type fakeCollectionCap struct {
	target  *fakeCollection
	revoked bool
}

func (c *fakeCollectionCap) BorrowCollection() (ItemCollection, bool) {
	if c.revoked || c.target == nil {
		return nil, false
	}
	return c.target, true
}

type fakeReceiver struct {
	received uint64
	deposits int
}

func (r *fakeReceiver) DepositPayment(p *Payment) {
	r.received += p.Consume()
	r.deposits++
}

type fakeReceiverCap struct {
	target  *fakeReceiver
	revoked bool
}

func (c *fakeReceiverCap) BorrowReceiver() (Receiver, bool) {
	if c.revoked || c.target == nil {
		return nil, false
	}
	return c.target, true
}

// mustOption builds a payment option or fails the test.
func mustOption(t *testing.T, kind Kind, cuts ...SaleCut) PaymentOption {
	t.Helper()
	opt, err := NewPaymentOption(kind, cuts)
	if err != nil {
		t.Fatalf("new payment option: %v", err)
	}
	return opt
}

// completions filters the recorded events down to ListingCompleted.
func completions(sink *CollectEvents) []ListingCompleted {
	var out []ListingCompleted
	for _, e := range sink.Events {
		if c, ok := e.(ListingCompleted); ok {
			out = append(out, c)
		}
	}
	return out
}
