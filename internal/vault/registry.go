package vault

import (
	"errors"
	"sync"

	"github.com/evgorin/nft-storefront/internal/market"
)

// ErrNoVault is returned when an account has no vault of the kind.
var ErrNoVault = errors.New("account has no vault of that kind")

// Registry owns every account's vaults, keyed by account then
// currency kind, and issues receiver capabilities and vouchers.
type Registry struct {
	mu       sync.Mutex
	accounts map[uint64]map[market.Kind]*Vault
}

// NewRegistry builds an empty vault registry.
func NewRegistry() *Registry {
	return &Registry{accounts: make(map[uint64]map[market.Kind]*Vault)}
}

// CreateVault returns the account's vault for the kind, creating an
// empty one on first use.
func (r *Registry) CreateVault(owner uint64, kind market.Kind) *Vault {
	r.mu.Lock()
	defer r.mu.Unlock()
	vaults, ok := r.accounts[owner]
	if !ok {
		vaults = make(map[market.Kind]*Vault)
		r.accounts[owner] = vaults
	}
	v, ok := vaults[kind]
	if !ok {
		v = &Vault{kind: kind}
		vaults[kind] = v
	}
	return v
}

// Vault returns the account's vault for the kind, or false when the
// account never created one.
func (r *Registry) Vault(owner uint64, kind market.Kind) (*Vault, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vaults, ok := r.accounts[owner]
	if !ok {
		return nil, false
	}
	v, ok := vaults[kind]
	return v, ok
}

// Mint credits amount units to the account's vault of the kind,
// creating the vault when needed. In a deployment with a real ledger
// behind it this is where settlement would land funds; here it doubles
// as the faucet for tests and demos.
func (r *Registry) Mint(owner uint64, kind market.Kind, amount uint64) *Vault {
	v := r.CreateVault(owner, kind)
	v.mu.Lock()
	v.balance += amount
	v.mu.Unlock()
	return v
}

// IssueReceiver hands out a receiver capability for the account's
// vault of the kind. Fails with ErrNoVault when the vault does not
// exist; receivers are never created implicitly, because a sale cut
// pointing at a vault nobody owns would silently strand funds.
func (r *Registry) IssueReceiver(owner uint64, kind market.Kind) (*ReceiverCapability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vaults, ok := r.accounts[owner]
	if !ok {
		return nil, ErrNoVault
	}
	v, ok := vaults[kind]
	if !ok {
		return nil, ErrNoVault
	}
	return &ReceiverCapability{target: v}, nil
}

// IssueVoucher creates a one-shot voucher of the kind. Vouchers are
// bearer objects; the registry does not track them after issuance.
func (r *Registry) IssueVoucher(kind market.Kind) *market.Voucher {
	return market.NewVoucher(kind)
}
