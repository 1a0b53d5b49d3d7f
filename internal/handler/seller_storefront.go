package handler

import (
    "net/http" // HTTP status codes
    "strings"  // trimming request fields

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/evgorin/nft-storefront/internal/market" // listing engine types
)

// CreateStorefront handles POST /v1/storefront.  Each seller gets
// exactly one storefront; a second create returns 409.
func (h *MarketHandler) CreateStorefront(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sf, err := h.Storefronts.Create(sellerID)
	if err != nil {
		return marketError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"storefront_id": sf.ID(),
		"asset_kind":    h.Storefronts.AssetKind(),
	})
}

// DestroyStorefront handles DELETE /v1/storefront.  Tearing the
// storefront down cascades into every live listing; unsold listings
// emit their completion events during the teardown.
func (h *MarketHandler) DestroyStorefront(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Storefronts.Destroy(sellerID); err != nil {
		return marketError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- listing creation DTOs -----

type saleCutReq struct {
	AccountID uint64 `json:"account_id"` // beneficiary account
	Amount    uint64 `json:"amount"`     // fixed amount routed to it
}
type paymentOptionReq struct {
	VaultKind string       `json:"vault_kind"`
	Cuts      []saleCutReq `json:"cuts"`
}
type createListingReq struct {
	ItemID      uint64             `json:"item_id"`
	Options     []paymentOptionReq `json:"options"`
	VoucherKind string             `json:"voucher_kind"` // optional purchase gate
}

// CreateListing handles POST /v1/storefront/listings.  It issues a
// withdrawal capability into the seller's own collection, resolves each
// cut's beneficiary to a receiver capability and offers the item
// through the seller's storefront.  The listed price of every option is
// derived from its cuts; clients never state a price directly.
func (h *MarketHandler) CreateListing(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sf, ok := h.Storefronts.Get(sellerID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no storefront; create one first"})
	}
	var req createListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ItemID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id is required"})
	}
	if len(req.Options) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one payment option is required"})
	}

	provider, err := h.Assets.IssueCapability(sellerID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seller has no collection"})
	}

	options := make([]market.PaymentOption, 0, len(req.Options))
	for _, o := range req.Options {
		kind := market.Kind(strings.TrimSpace(o.VaultKind))
		if kind == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "vault_kind is required on every option"})
		}
		cuts := make([]market.SaleCut, 0, len(o.Cuts))
		for _, cut := range o.Cuts {
			receiver, err := h.Vaults.IssueReceiver(cut.AccountID, kind)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error":      "cut beneficiary has no vault of that kind",
					"account_id": cut.AccountID,
					"vault_kind": kind,
				})
			}
			cuts = append(cuts, market.SaleCut{Receiver: receiver, Amount: cut.Amount})
		}
		opt, err := market.NewPaymentOption(kind, cuts)
		if err != nil {
			return marketError(c, err)
		}
		options = append(options, opt)
	}

	itemID, err := sf.CreateListing(provider, req.ItemID, options, market.Kind(strings.TrimSpace(req.VoucherKind)))
	if err != nil {
		return marketError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"item_id":       itemID,
		"storefront_id": sf.ID(),
	})
}

// RemoveListing handles DELETE /v1/storefront/listings/:itemID.  This
// is the seller's admin path: it evicts the listing whether or not it
// has sold.
func (h *MarketHandler) RemoveListing(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	sf, ok := h.Storefronts.Get(sellerID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no storefront"})
	}
	if err := sf.RemoveListing(itemID); err != nil {
		return marketError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type mintItemReq struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// MintItem handles POST /v1/items.  It mints a new item into the
// caller's collection, creating the collection on first use.
func (h *MarketHandler) MintItem(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req mintItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	h.Assets.CreateCollection(ownerID)
	itemID := h.Assets.Mint(ownerID, strings.TrimSpace(req.Name), strings.TrimSpace(req.URI))
	return c.JSON(http.StatusCreated, echo.Map{
		"item_id": itemID,
		"kind":    h.Assets.Kind(),
	})
}

type fundVaultReq struct {
	Kind   string `json:"kind"`
	Amount uint64 `json:"amount"`
}

// FundVault handles POST /v1/vault.  It credits units to the caller's
// vault of the stated kind, creating the vault when needed.  In a
// deployment with a real settlement rail behind it this endpoint would
// be replaced by that rail's callback.
func (h *MarketHandler) FundVault(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req fundVaultReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	kind := market.Kind(strings.TrimSpace(req.Kind))
	if kind == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind is required"})
	}
	v := h.Vaults.Mint(ownerID, kind, req.Amount)
	return c.JSON(http.StatusOK, echo.Map{
		"kind":    kind,
		"balance": v.Balance(),
	})
}
