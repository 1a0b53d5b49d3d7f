package model

import "time"

// Sale is the durable audit record of one completed purchase.  The
// listing itself lives in the in-memory market engine; once it sells,
// a row is written here so that history survives process restarts and
// cleanup of the listing.  This struct corresponds to a row in the
// `sales` table.
//
// Fields:
//  ID           – primary key identifier.
//  StorefrontID – storefront the listing belonged to.
//  SellerID     – user who listed the item.
//  BuyerID      – user who purchased it.
//  ItemID       – identifier of the sold item.
//  ItemKind     – asset family of the item.
//  VaultKind    – currency the sale settled in.
//  Price        – exact amount paid, in integer base units.
//  CreatedAt    – timestamp when the sale was recorded.
type Sale struct {
	ID           uint64    // sales.id
	StorefrontID uint64    // sales.storefront_id
	SellerID     uint64    // sales.seller_id
	BuyerID      uint64    // sales.buyer_id
	ItemID       uint64    // sales.item_id
	ItemKind     string    // sales.item_kind
	VaultKind    string    // sales.vault_kind
	Price        uint64    // sales.price
	CreatedAt    time.Time // sales.created_at
}
