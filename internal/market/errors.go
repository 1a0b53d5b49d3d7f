// Package market implements the listing and purchase engine of the
// marketplace: per-seller storefronts that offer uniquely identified
// items for sale, validate an exact payment against the accepted
// terms, and execute the asset-for-payment swap atomically with
// fan-out of the proceeds. The engine never takes custody of an item
// ahead of sale; it only holds a capability entitling it to withdraw
// the item from the seller's collection at purchase time.
package market

import "errors"

// Sentinel errors returned by the engine. Higher layers such as HTTP
// handlers compare against these with errors.Is to pick status codes.
var (
	// ErrInvalidTerms indicates a malformed payment option: no sale
	// cuts, a nil receiver capability, or a receiver that cannot be
	// resolved at construction time.
	ErrInvalidTerms = errors.New("invalid payment terms")

	// ErrAuthorityUnavailable indicates a capability that cannot
	// currently be resolved to a live target.
	ErrAuthorityUnavailable = errors.New("authority unavailable")

	// ErrItemNotFound indicates that the seller's collection does not
	// hold the item at listing-creation time.
	ErrItemNotFound = errors.New("item not found in collection")

	// ErrItemUnavailable indicates that an item expected to be present
	// is missing at borrow or purchase time, e.g. it was moved away
	// through another channel after listing.
	ErrItemUnavailable = errors.New("item unavailable")

	// ErrTypeMismatch indicates that an item is not of the asset kind
	// this marketplace instance accepts.
	ErrTypeMismatch = errors.New("item kind mismatch")

	// ErrIDMismatch indicates that a collection handed back an item
	// reference carrying a different id than requested.
	ErrIDMismatch = errors.New("item id mismatch")

	// ErrWithdrawnItemMismatch indicates that the item actually
	// withdrawn during a purchase disagrees in kind or id with what the
	// listing promised. The purchase is already committed when this is
	// detected, so it is fatal for the listing, never retryable.
	ErrWithdrawnItemMismatch = errors.New("withdrawn item does not match listing")

	// ErrAlreadyListed indicates that the storefront already has a live
	// listing for the item.
	ErrAlreadyListed = errors.New("item already listed")

	// ErrAlreadyPurchased indicates a purchase attempt on a listing
	// that has been sold.
	ErrAlreadyPurchased = errors.New("listing already purchased")

	// ErrListingNotFound indicates that no listing exists for the item
	// in the storefront.
	ErrListingNotFound = errors.New("listing not found")

	// ErrNotPurchased indicates a cleanup attempt on a listing that has
	// not been sold; only the remove path may evict those.
	ErrNotPurchased = errors.New("listing not purchased")

	// ErrNoMatchingPaymentOption indicates that no accepted option
	// matches the deposit's kind and exact balance.
	ErrNoMatchingPaymentOption = errors.New("no matching payment option")

	// ErrNoValidReceiver indicates that not a single sale-cut receiver
	// could be resolved during distribution; the proceeds would be
	// unpayable, so the purchase is rejected as a configuration error.
	ErrNoValidReceiver = errors.New("no valid sale cut receiver")

	// ErrInsufficientBalance indicates a withdrawal larger than the
	// payment's remaining balance.
	ErrInsufficientBalance = errors.New("insufficient payment balance")

	// ErrVoucherRequired indicates that the listing is voucher-gated
	// and no voucher was supplied.
	ErrVoucherRequired = errors.New("voucher required")

	// ErrVoucherKindMismatch indicates that the supplied voucher is not
	// of the kind the listing requires.
	ErrVoucherKindMismatch = errors.New("voucher kind mismatch")

	// ErrVoucherRedeemed indicates a voucher that was already consumed.
	ErrVoucherRedeemed = errors.New("voucher already redeemed")

	// ErrStorefrontExists indicates that the seller already has a
	// storefront in the registry.
	ErrStorefrontExists = errors.New("storefront already exists")

	// ErrNoStorefront indicates that the seller has no storefront.
	ErrNoStorefront = errors.New("storefront not found")
)
