// Package vault implements the fungible side of the marketplace:
// per-account vaults holding integer balances of tagged currency
// kinds, the receiver capabilities sale cuts resolve at distribution
// time, and voucher issuance for voucher-gated listings.
package vault

import (
	"errors"
	"fmt"
	"sync"

	"github.com/evgorin/nft-storefront/internal/market"
)

// ErrInsufficientFunds is returned when a withdrawal exceeds the
// vault's balance.
var ErrInsufficientFunds = errors.New("insufficient vault balance")

// Vault holds one account's balance of a single currency kind.
// Amounts are integer base units. Safe for concurrent use.
type Vault struct {
	mu      sync.Mutex
	kind    market.Kind
	balance uint64
}

// Kind returns the currency kind this vault holds.
func (v *Vault) Kind() market.Kind { return v.kind }

// Balance returns the units currently held.
func (v *Vault) Balance() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.balance
}

// WithdrawPayment moves amount units out of the vault into a linear
// payment the caller now owns. Fails with ErrInsufficientFunds when
// the vault holds less than amount.
func (v *Vault) WithdrawPayment(amount uint64) (*market.Payment, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if amount > v.balance {
		return nil, ErrInsufficientFunds
	}
	v.balance -= amount
	return market.NewPayment(v.kind, amount), nil
}

// DepositPayment consumes the payment into the vault. A payment of a
// different kind indicates a broken invariant upstream, so it panics
// rather than silently absorbing foreign value.
func (v *Vault) DepositPayment(p *market.Payment) {
	if p.Kind() != v.kind {
		panic(fmt.Sprintf("vault: deposit of kind %q into %q vault", p.Kind(), v.kind))
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balance += p.Consume()
}

// ReceiverCapability is a revocable credential resolving to a vault's
// deposit surface. Sale cuts hold these; the engine re-resolves them
// at every distribution.
type ReceiverCapability struct {
	mu     sync.Mutex
	target *Vault
}

// BorrowReceiver resolves the capability, returning false once it has
// been revoked.
func (c *ReceiverCapability) BorrowReceiver() (market.Receiver, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.target == nil {
		return nil, false
	}
	return c.target, true
}

// Revoke permanently severs the capability from its vault.
func (c *ReceiverCapability) Revoke() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = nil
}
