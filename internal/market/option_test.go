package market

import (
	"errors"
	"testing"
)

func TestNewPaymentOptionDerivesPriceFromCuts(t *testing.T) {
	seller := &fakeReceiverCap{target: &fakeReceiver{}}
	fee := &fakeReceiverCap{target: &fakeReceiver{}}

	opt, err := NewPaymentOption("FLOW", []SaleCut{
		{Receiver: seller, Amount: 90},
		{Receiver: fee, Amount: 10},
	})
	if err != nil {
		t.Fatalf("new payment option: %v", err)
	}
	if opt.Price() != 100 {
		t.Fatalf("expected derived price 100, got %d", opt.Price())
	}
	if opt.VaultKind() != "FLOW" {
		t.Fatalf("expected vault kind FLOW, got %q", opt.VaultKind())
	}
	if len(opt.Cuts()) != 2 {
		t.Fatalf("expected 2 cuts, got %d", len(opt.Cuts()))
	}
}

func TestNewPaymentOptionInvalidTerms(t *testing.T) {
	live := &fakeReceiverCap{target: &fakeReceiver{}}
	dead := &fakeReceiverCap{target: &fakeReceiver{}, revoked: true}

	tests := []struct {
		name string
		cuts []SaleCut
	}{
		{name: "no cuts", cuts: nil},
		{name: "empty cuts", cuts: []SaleCut{}},
		{name: "nil receiver", cuts: []SaleCut{{Receiver: nil, Amount: 10}}},
		{
			name: "unresolvable receiver",
			cuts: []SaleCut{{Receiver: live, Amount: 10}, {Receiver: dead, Amount: 5}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPaymentOption("FLOW", tt.cuts); !errors.Is(err, ErrInvalidTerms) {
				t.Fatalf("expected ErrInvalidTerms, got %v", err)
			}
		})
	}
}

func TestNewPaymentOptionProbeRetainsNothing(t *testing.T) {
	r := &fakeReceiver{}
	rc := &fakeReceiverCap{target: r}
	if _, err := NewPaymentOption("FLOW", []SaleCut{{Receiver: rc, Amount: 10}}); err != nil {
		t.Fatalf("new payment option: %v", err)
	}
	if r.deposits != 0 || r.received != 0 {
		t.Fatalf("construction probe must not deposit anything, receiver saw %d deposits", r.deposits)
	}
}

func TestPaymentWithdrawSplitsValue(t *testing.T) {
	p := NewPayment("FLOW", 100)
	part, err := p.Withdraw(30)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if part.Balance() != 30 || part.Kind() != "FLOW" {
		t.Fatalf("expected 30 FLOW part, got %d %q", part.Balance(), part.Kind())
	}
	if p.Balance() != 70 {
		t.Fatalf("expected 70 remaining, got %d", p.Balance())
	}
	if _, err := p.Withdraw(71); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestPaymentConsumeEmpties(t *testing.T) {
	p := NewPayment("FLOW", 40)
	if got := p.Consume(); got != 40 {
		t.Fatalf("expected consume to return 40, got %d", got)
	}
	if p.Balance() != 0 {
		t.Fatalf("expected empty payment after consume, got %d", p.Balance())
	}
	if got := p.Consume(); got != 0 {
		t.Fatalf("second consume must return 0, got %d", got)
	}
}

func TestVoucherRedeemsOnce(t *testing.T) {
	v := NewVoucher("GOLD_PASS")
	if v.Redeemed() {
		t.Fatal("new voucher must not be redeemed")
	}
	if err := v.Redeem(); err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if !v.Redeemed() {
		t.Fatal("voucher should be redeemed")
	}
	if err := v.Redeem(); !errors.Is(err, ErrVoucherRedeemed) {
		t.Fatalf("expected ErrVoucherRedeemed, got %v", err)
	}
}
