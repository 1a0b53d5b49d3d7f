package market

// Payment is a linear deposit of fungible value: an amount tagged with
// its currency kind. Payments are created by withdrawing from a vault,
// split with Withdraw and emptied with Consume; they are never copied.
// Amounts are integer base units (the smallest denomination of the
// kind), so there is no fractional math anywhere in the engine.
type Payment struct {
	kind    Kind
	balance uint64
}

// NewPayment returns a payment of the given kind holding amount units.
func NewPayment(kind Kind, amount uint64) *Payment {
	return &Payment{kind: kind, balance: amount}
}

// Kind returns the currency tag of the payment.
func (p *Payment) Kind() Kind { return p.kind }

// Balance returns the units currently held.
func (p *Payment) Balance() uint64 { return p.balance }

// Withdraw splits off a payment holding exactly amount units, reducing
// the receiver's balance by the same. It fails with
// ErrInsufficientBalance when amount exceeds the remaining balance.
func (p *Payment) Withdraw(amount uint64) (*Payment, error) {
	if amount > p.balance {
		return nil, ErrInsufficientBalance
	}
	p.balance -= amount
	return &Payment{kind: p.kind, balance: amount}, nil
}

// Consume empties the payment and returns the units it held. After
// Consume the payment has zero balance; value moves, it is not copied.
func (p *Payment) Consume() uint64 {
	b := p.balance
	p.balance = 0
	return b
}

// Voucher is a one-shot redeemable required by voucher-gated listings.
// A purchase on such a listing consumes the voucher before payment
// matching, so a failed purchase attempt still spends it.
type Voucher struct {
	kind     Kind
	redeemed bool
}

// NewVoucher issues an unredeemed voucher of the given kind.
func NewVoucher(kind Kind) *Voucher {
	return &Voucher{kind: kind}
}

// Kind returns the voucher's kind tag.
func (v *Voucher) Kind() Kind { return v.kind }

// Redeemed reports whether the voucher has been consumed.
func (v *Voucher) Redeemed() bool { return v.redeemed }

// Redeem consumes the voucher. It fails with ErrVoucherRedeemed when
// called a second time.
func (v *Voucher) Redeem() error {
	if v.redeemed {
		return ErrVoucherRedeemed
	}
	v.redeemed = true
	return nil
}
