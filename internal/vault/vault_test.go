package vault

import (
	"errors"
	"testing"

	"github.com/evgorin/nft-storefront/internal/market"
)

func TestWithdrawAndDepositConserveValue(t *testing.T) {
	reg := NewRegistry()
	buyer := reg.Mint(1, "FLOW", 250)
	seller := reg.CreateVault(2, "FLOW")

	payment, err := buyer.WithdrawPayment(100)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if buyer.Balance() != 150 {
		t.Fatalf("expected 150 left, got %d", buyer.Balance())
	}
	seller.DepositPayment(payment)
	if seller.Balance() != 100 {
		t.Fatalf("expected 100 deposited, got %d", seller.Balance())
	}
	if payment.Balance() != 0 {
		t.Fatalf("payment must be consumed, %d left", payment.Balance())
	}
	if buyer.Balance()+seller.Balance() != 250 {
		t.Fatal("value must be conserved across the transfer")
	}
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	reg := NewRegistry()
	v := reg.Mint(1, "FLOW", 10)
	if _, err := v.WithdrawPayment(11); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if v.Balance() != 10 {
		t.Fatalf("failed withdraw must not touch the balance, got %d", v.Balance())
	}
}

func TestDepositWrongKindPanics(t *testing.T) {
	reg := NewRegistry()
	v := reg.CreateVault(1, "FLOW")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on wrong-kind deposit")
		}
	}()
	v.DepositPayment(market.NewPayment("FUSD", 5))
}

func TestIssueReceiverRequiresVault(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.IssueReceiver(1, "FLOW"); !errors.Is(err, ErrNoVault) {
		t.Fatalf("expected ErrNoVault, got %v", err)
	}
	reg.CreateVault(1, "FLOW")
	if _, err := reg.IssueReceiver(1, "FUSD"); !errors.Is(err, ErrNoVault) {
		t.Fatalf("expected ErrNoVault for missing kind, got %v", err)
	}

	rc, err := reg.IssueReceiver(1, "FLOW")
	if err != nil {
		t.Fatalf("issue receiver: %v", err)
	}
	recv, ok := rc.BorrowReceiver()
	if !ok {
		t.Fatal("fresh receiver capability must resolve")
	}
	recv.DepositPayment(market.NewPayment("FLOW", 7))
	v, _ := reg.Vault(1, "FLOW")
	if v.Balance() != 7 {
		t.Fatalf("expected 7 in vault, got %d", v.Balance())
	}

	rc.Revoke()
	if _, ok := rc.BorrowReceiver(); ok {
		t.Fatal("revoked receiver capability must not resolve")
	}
}

func TestIssueVoucher(t *testing.T) {
	reg := NewRegistry()
	v := reg.IssueVoucher("GoldPass")
	if v.Kind() != "GoldPass" || v.Redeemed() {
		t.Fatalf("unexpected voucher state kind=%q redeemed=%v", v.Kind(), v.Redeemed())
	}
}
