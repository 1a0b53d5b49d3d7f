package handler

import (
    "net/http" // HTTP status codes

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/evgorin/nft-storefront/internal/asset"  // concrete item type for metadata
    "github.com/evgorin/nft-storefront/internal/market" // storefront type
)

// storefrontView pairs a resolved storefront with the seller id it was
// looked up by.
type storefrontView struct {
	sellerID   uint64
	storefront *market.Storefront
}

// sellerStorefront resolves the :sellerID path parameter to that
// seller's storefront. The bool reports whether the response has
// already been written.
func (h *MarketHandler) sellerStorefront(c echo.Context) (sf storefrontView, done bool, err error) {
	sellerID, ok := pathID(c, "sellerID")
	if !ok {
		return storefrontView{}, true, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seller id"})
	}
	s, ok := h.Storefronts.Get(sellerID)
	if !ok {
		return storefrontView{}, true, c.JSON(http.StatusNotFound, echo.Map{"error": "seller has no storefront"})
	}
	return storefrontView{sellerID: sellerID, storefront: s}, false, nil
}

// paymentOptionResp is the public shape of one accepted way to pay.
type paymentOptionResp struct {
	VaultKind string        `json:"vault_kind"`
	Price     uint64        `json:"price"`
	Cuts      []cutAmountResp `json:"cuts"`
}
type cutAmountResp struct {
	Amount uint64 `json:"amount"`
}

// ListListings handles GET /v1/sellers/:sellerID/listings.  It returns
// the item ids of every live listing in the seller's storefront.
func (h *MarketHandler) ListListings(c echo.Context) error {
	view, done, err := h.sellerStorefront(c)
	if done {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"storefront_id": view.storefront.ID(),
		"item_ids":      view.storefront.ListingIDs(),
	})
}

// GetListingDetails handles GET /v1/sellers/:sellerID/listings/:itemID.
// It returns a snapshot of the listing plus, when the seller's
// collection still resolves, the listed item's metadata.  A listing
// whose item has since moved away still renders; only the metadata
// block is omitted.
func (h *MarketHandler) GetListingDetails(c echo.Context) error {
	view, done, err := h.sellerStorefront(c)
	if done {
		return err
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	details, ok := view.storefront.GetListing(itemID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}

	options := make([]paymentOptionResp, 0, len(details.PaymentOptions))
	for _, opt := range details.PaymentOptions {
		cuts := opt.Cuts()
		cutAmounts := make([]cutAmountResp, 0, len(cuts))
		for _, cut := range cuts {
			cutAmounts = append(cutAmounts, cutAmountResp{Amount: cut.Amount})
		}
		options = append(options, paymentOptionResp{
			VaultKind: string(opt.VaultKind()),
			Price:     opt.Price(),
			Cuts:      cutAmounts,
		})
	}

	resp := echo.Map{
		"storefront_id":   details.StorefrontID,
		"item_id":         details.ItemID,
		"item_kind":       details.ItemKind,
		"purchased":       details.Purchased,
		"payment_options": options,
	}
	if vk, ok := view.storefront.ListingVoucherKind(itemID); ok && vk != "" {
		resp["voucher_kind"] = vk
	}
	// Borrow is best-effort: the capability may have been revoked or the
	// item moved since listing. The snapshot above stays authoritative.
	if borrowed, err := view.storefront.BorrowListingItem(itemID); err == nil {
		if it, ok := borrowed.(*asset.Item); ok {
			resp["item"] = echo.Map{"name": it.Name, "uri": it.URI}
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// CleanupListing handles POST /v1/sellers/:sellerID/listings/:itemID/cleanup.
// Anyone may call it; it only evicts listings that have already sold,
// so an untrusted caller can reclaim state without pulling live offers.
func (h *MarketHandler) CleanupListing(c echo.Context) error {
	view, done, err := h.sellerStorefront(c)
	if done {
		return err
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	if err := view.storefront.CleanupListing(itemID); err != nil {
		return marketError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSales handles GET /v1/sellers/:sellerID/sales.  It returns the
// durable audit of the seller's completed sales from MySQL, newest
// first.  Listings live and die in memory; this is what remains.
func (h *MarketHandler) ListSales(c echo.Context) error {
	sellerID, ok := pathID(c, "sellerID")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seller id"})
	}
	sales, err := h.Sales.ListBySeller(c.Request().Context(), sellerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load sales"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": sales})
}

// MyPurchases handles GET /v1/my-purchases.  It returns the audit rows
// for everything the authenticated user has bought.
func (h *MarketHandler) MyPurchases(c echo.Context) error {
	buyerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sales, err := h.Sales.ListByBuyer(c.Request().Context(), buyerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load purchases"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": sales})
}
