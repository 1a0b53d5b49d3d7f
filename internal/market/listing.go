package market

// ListingDetails is the public record of one sale offer. Purchased
// starts false and flips to true exactly once; after that no mutating
// operation on the listing succeeds.
type ListingDetails struct {
	ItemID         uint64
	ItemKind       Kind
	StorefrontID   uint64
	PaymentOptions []PaymentOption
	Purchased      bool
}

// Listing is the atomic unit of sale: one item, the accepted payment
// options, and a withdrawal capability into the seller's collection.
// The listing never holds the item itself; the seller keeps custody
// until the moment of sale. Listings are created and owned by a
// Storefront, which serializes every mutating call.
type Listing struct {
	details     ListingDetails
	provider    CollectionCapability
	voucherKind Kind // empty when the listing is not voucher-gated
	sink        EventSink
}

// newListing validates the offer against the seller's collection and
// builds the listing. The existence and kind checks performed here are
// deliberately repeated at purchase time: the capability is live, and
// the collection's contents can change between listing and sale.
func newListing(provider CollectionCapability, itemID uint64, assetKind Kind, options []PaymentOption, voucherKind Kind, storefrontID uint64, sink EventSink) (*Listing, error) {
	if provider == nil {
		return nil, ErrAuthorityUnavailable
	}
	collection, ok := provider.BorrowCollection()
	if !ok {
		return nil, ErrAuthorityUnavailable
	}
	item, ok := collection.BorrowItem(itemID)
	if !ok {
		return nil, ErrItemNotFound
	}
	if item.ItemKind() != assetKind {
		return nil, ErrTypeMismatch
	}
	opts := make([]PaymentOption, len(options))
	copy(opts, options)
	return &Listing{
		details: ListingDetails{
			ItemID:         itemID,
			ItemKind:       assetKind,
			StorefrontID:   storefrontID,
			PaymentOptions: opts,
		},
		provider:    provider,
		voucherKind: voucherKind,
		sink:        sink,
	}, nil
}

// Details returns a copy of the listing record. Pure read.
func (l *Listing) Details() ListingDetails {
	d := l.details
	d.PaymentOptions = make([]PaymentOption, len(l.details.PaymentOptions))
	copy(d.PaymentOptions, l.details.PaymentOptions)
	return d
}

// VoucherKind returns the kind of voucher a purchase must redeem, or
// the empty kind when the listing is not voucher-gated.
func (l *Listing) VoucherKind() Kind { return l.voucherKind }

// BorrowItem resolves the withdrawal capability and hands back a read
// reference to the listed item. The returned reference is re-verified
// against the listing's kind and id: the collection behind the
// capability only promises interface conformance, and a buggy or
// malicious implementation could hand back anything.
func (l *Listing) BorrowItem() (Item, error) {
	collection, ok := l.provider.BorrowCollection()
	if !ok {
		return nil, ErrItemUnavailable
	}
	item, ok := collection.BorrowItem(l.details.ItemID)
	if !ok {
		return nil, ErrItemUnavailable
	}
	if item.ItemKind() != l.details.ItemKind {
		return nil, ErrTypeMismatch
	}
	if item.ItemID() != l.details.ItemID {
		return nil, ErrIDMismatch
	}
	return item, nil
}

// Purchase executes the sale against the supplied deposit and returns
// the withdrawn item. voucher must be non-nil when the listing is
// voucher-gated and is consumed before payment matching, so a failed
// attempt still spends it.
//
// The purchased flag is committed before the item or money moves. Any
// failure after that point leaves the listing permanently purchased
// and unsellable rather than retryable: the engine prefers never
// double-selling an item over never losing an in-flight sale.
func (l *Listing) Purchase(payment *Payment, voucher *Voucher) (Item, error) {
	if l.details.Purchased {
		return nil, ErrAlreadyPurchased
	}
	if l.voucherKind != "" {
		if voucher == nil {
			return nil, ErrVoucherRequired
		}
		if voucher.Kind() != l.voucherKind {
			return nil, ErrVoucherKindMismatch
		}
		if err := voucher.Redeem(); err != nil {
			return nil, err
		}
	}

	// First option whose kind and exact price match the deposit wins.
	matched := -1
	for i, opt := range l.details.PaymentOptions {
		if opt.matches(payment) {
			matched = i
			break
		}
	}
	if matched < 0 {
		return nil, ErrNoMatchingPaymentOption
	}

	// Commit point. From here on every failure is fatal for the listing.
	l.details.Purchased = true

	collection, ok := l.provider.BorrowCollection()
	if !ok {
		return nil, ErrAuthorityUnavailable
	}
	item, err := collection.Withdraw(l.details.ItemID)
	if err != nil {
		return nil, ErrItemUnavailable
	}
	if item == nil || item.ItemKind() != l.details.ItemKind || item.ItemID() != l.details.ItemID {
		return nil, ErrWithdrawnItemMismatch
	}

	// Distribute the proceeds in stored cut order. A cut whose receiver
	// does not resolve is not an error: its amount stays in the deposit
	// and is swept to the first receiver that did resolve, so a sale
	// with a temporarily unreachable beneficiary still completes. Only
	// total unavailability of every receiver rejects the purchase.
	var residual Receiver
	for _, cut := range l.details.PaymentOptions[matched].cuts {
		receiver, ok := cut.Receiver.BorrowReceiver()
		if !ok {
			continue
		}
		part, err := payment.Withdraw(cut.Amount)
		if err != nil {
			return nil, err
		}
		receiver.DepositPayment(part)
		if residual == nil {
			residual = receiver
		}
	}
	if residual == nil {
		return nil, ErrNoValidReceiver
	}
	// Whatever the unresolved cuts left behind goes to the residual
	// receiver; this fully consumes the deposit.
	residual.DepositPayment(payment)

	l.sink.Emit(ListingCompleted{
		ItemID:       l.details.ItemID,
		StorefrontID: l.details.StorefrontID,
		Purchased:    true,
	})
	return item, nil
}

// destroy finalizes the listing on eviction. An unsold listing emits
// its completion event here with Purchased false; a sold one already
// emitted it during Purchase. Exactly one completion event is emitted
// per listing lifetime.
func (l *Listing) destroy() {
	if l.details.Purchased {
		return
	}
	l.sink.Emit(ListingCompleted{
		ItemID:       l.details.ItemID,
		StorefrontID: l.details.StorefrontID,
		Purchased:    false,
	})
}
