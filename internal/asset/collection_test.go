package asset

import (
	"errors"
	"testing"
)

func TestMintAssignsUniqueIDs(t *testing.T) {
	reg := NewRegistry("TopShot.Moment")
	a := reg.Mint(1, "Dunk", "ipfs://a")
	b := reg.Mint(1, "Block", "ipfs://b")
	c := reg.Mint(2, "Steal", "ipfs://c")
	if a == b || b == c || a == c {
		t.Fatalf("ids must be unique, got %d %d %d", a, b, c)
	}

	coll, ok := reg.Collection(1)
	if !ok {
		t.Fatal("minting must create the owner's collection")
	}
	if got := len(coll.ItemIDs()); got != 2 {
		t.Fatalf("expected 2 items for owner 1, got %d", got)
	}
}

func TestWithdrawMovesOwnership(t *testing.T) {
	reg := NewRegistry("TopShot.Moment")
	id := reg.Mint(1, "Dunk", "")
	coll, _ := reg.Collection(1)

	item, err := coll.Withdraw(id)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if item.ItemID() != id || item.ItemKind() != "TopShot.Moment" {
		t.Fatalf("wrong item withdrawn: id=%d kind=%q", item.ItemID(), item.ItemKind())
	}
	if _, err := coll.Withdraw(id); !errors.Is(err, ErrAbsent) {
		t.Fatalf("second withdraw must fail with ErrAbsent, got %v", err)
	}
	if _, ok := coll.BorrowItem(id); ok {
		t.Fatal("withdrawn item must not be borrowable")
	}

	// Deposit into another owner's collection completes the transfer.
	other := reg.CreateCollection(2)
	other.Deposit(item.(*Item))
	if _, ok := other.BorrowItem(id); !ok {
		t.Fatal("deposited item must be borrowable from the new collection")
	}
}

func TestCapabilityRevocation(t *testing.T) {
	reg := NewRegistry("TopShot.Moment")
	if _, err := reg.IssueCapability(9); !errors.Is(err, ErrNoCollection) {
		t.Fatalf("expected ErrNoCollection, got %v", err)
	}

	reg.Mint(9, "Dunk", "")
	cap9, err := reg.IssueCapability(9)
	if err != nil {
		t.Fatalf("issue capability: %v", err)
	}
	if _, ok := cap9.BorrowCollection(); !ok {
		t.Fatal("fresh capability must resolve")
	}
	cap9.Revoke()
	if _, ok := cap9.BorrowCollection(); ok {
		t.Fatal("revoked capability must not resolve")
	}
}
