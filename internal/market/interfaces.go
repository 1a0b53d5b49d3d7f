package market

// Kind tags an asset family or a payment currency. The engine treats
// kinds as opaque; equality is the only operation it needs.
type Kind string

// Item is the identity probe the engine applies to everything an item
// collection hands back. Collections are conforming-but-untrusted
// collaborators, so the engine re-checks kind and id on every borrow
// and on the withdrawal performed during a purchase rather than
// assuming interface conformance implies correct behavior.
type Item interface {
	ItemID() uint64
	ItemKind() Kind
}

// ItemCollection is the resolved view of a seller's item holdings.
// Withdraw removes an item and transfers ownership to the caller;
// BorrowItem returns a read reference without moving anything.
type ItemCollection interface {
	Withdraw(id uint64) (Item, error)
	BorrowItem(id uint64) (Item, bool)
}

// CollectionCapability is a credential entitling its holder to reach a
// seller's collection. Resolution can fail at any time (the seller may
// revoke it after a listing is created), so the engine resolves it
// fresh on every use and never trusts a past resolution.
type CollectionCapability interface {
	BorrowCollection() (ItemCollection, bool)
}

// Receiver accepts payment deposits. Implementations must consume the
// payment in full.
type Receiver interface {
	DepositPayment(p *Payment)
}

// ReceiverCapability resolves to a live payment receiver. Sale cuts
// hold these rather than receivers so that a beneficiary going away
// between listing and sale is observable at distribution time.
type ReceiverCapability interface {
	BorrowReceiver() (Receiver, bool)
}

// EventSink receives the engine's observable side effects. It is the
// only side channel the engine has; there is no implicit logging.
type EventSink interface {
	Emit(e Event)
}
