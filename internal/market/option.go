package market

// SaleCut routes a fixed amount of a sale's proceeds to one
// beneficiary. The receiver is a capability, not a resolved receiver:
// it is re-resolved at distribution time and may have gone away.
type SaleCut struct {
	Receiver ReceiverCapability
	Amount   uint64
}

// PaymentOption is one acceptable way to pay for a listing: a currency
// kind and an ordered breakdown of cuts. The price is derived — always
// the sum of the cut amounts — and cannot be set independently.
// Options are immutable once constructed and owned by their listing.
type PaymentOption struct {
	vaultKind Kind
	cuts      []SaleCut
	price     uint64
}

// NewPaymentOption validates and builds a payment option. It fails
// with ErrInvalidTerms when cuts is empty, when any cut carries a nil
// receiver capability, or when a receiver cannot currently be
// resolved. The resolution check is an eager sanity probe for a better
// seller experience, not a guarantee: a receiver that resolves now may
// be gone by the time the listing sells, which the distribution step
// handles with the residual policy.
func NewPaymentOption(vaultKind Kind, cuts []SaleCut) (PaymentOption, error) {
	if len(cuts) == 0 {
		return PaymentOption{}, ErrInvalidTerms
	}
	var price uint64
	for _, cut := range cuts {
		if cut.Receiver == nil {
			return PaymentOption{}, ErrInvalidTerms
		}
		if _, ok := cut.Receiver.BorrowReceiver(); !ok {
			return PaymentOption{}, ErrInvalidTerms
		}
		price += cut.Amount
	}
	own := make([]SaleCut, len(cuts))
	copy(own, cuts)
	return PaymentOption{vaultKind: vaultKind, cuts: own, price: price}, nil
}

// VaultKind returns the currency kind this option accepts.
func (o PaymentOption) VaultKind() Kind { return o.vaultKind }

// Price returns the exact deposit balance a purchase must carry.
func (o PaymentOption) Price() uint64 { return o.price }

// Cuts returns a copy of the cut breakdown in stored order.
func (o PaymentOption) Cuts() []SaleCut {
	out := make([]SaleCut, len(o.cuts))
	copy(out, o.cuts)
	return out
}

// matches reports whether a deposit satisfies this option: same kind
// and a balance exactly equal to the price. No partial payments, no
// overpayment, no conversion.
func (o PaymentOption) matches(p *Payment) bool {
	return o.vaultKind == p.Kind() && o.price == p.Balance()
}
