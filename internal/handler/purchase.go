package handler

import (
    "context"  // bounded DB writes
    "errors"   // sentinel comparisons
    "log"      // audit-failure logging
    "net/http" // HTTP status codes
    "strings"  // trimming request fields
    "time"     // DB timeout

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/evgorin/nft-storefront/internal/asset"      // concrete item type for deposit
    "github.com/evgorin/nft-storefront/internal/market"     // listing engine types
    "github.com/evgorin/nft-storefront/internal/repository" // sale audit records
    "github.com/evgorin/nft-storefront/internal/vault"      // buyer vault errors
)

type purchaseReq struct {
	VaultKind   string `json:"vault_kind"`   // currency to pay with
	Amount      uint64 `json:"amount"`       // exact price of the chosen option
	VoucherKind string `json:"voucher_kind"` // required when the listing is voucher-gated
}

// Purchase handles POST /v1/sellers/:sellerID/listings/:itemID/purchase.
// The buyer states the currency and exact amount; the handler withdraws
// that deposit from the buyer's vault, redeems a voucher when the
// request carries one, and runs the sale. On success the item lands in
// the buyer's collection and one audit row is written to MySQL.
//
// A failed sale refunds whatever the deposit still holds back to the
// buyer's vault. Once the engine reports success the value has already
// moved, so an audit write failure is logged but does not fail the
// request.
func (h *MarketHandler) Purchase(c echo.Context) error {
	buyerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	view, done, err := h.sellerStorefront(c)
	if done {
		return err
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req purchaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	kind := market.Kind(strings.TrimSpace(req.VaultKind))
	if kind == "" || req.Amount == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vault_kind and amount are required"})
	}

	details, ok := view.storefront.GetListing(itemID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}

	buyerVault, ok := h.Vaults.Vault(buyerID, kind)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "buyer has no vault of that kind"})
	}
	payment, err := buyerVault.WithdrawPayment(req.Amount)
	if err != nil {
		if errors.Is(err, vault.ErrInsufficientFunds) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient vault balance"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "withdraw failed"})
	}

	var voucher *market.Voucher
	if vk := strings.TrimSpace(req.VoucherKind); vk != "" {
		voucher = h.Vaults.IssueVoucher(market.Kind(vk))
	}

	item, err := view.storefront.Purchase(itemID, payment, voucher)
	if err != nil {
		// Refund anything the failed attempt did not consume.
		if payment.Balance() > 0 {
			buyerVault.DepositPayment(payment)
		}
		return marketError(c, err)
	}

	buyerCollection := h.Assets.CreateCollection(buyerID)
	if it, ok := item.(*asset.Item); ok {
		buyerCollection.Deposit(it)
	}

	rec := repository.SaleRecord{
		StorefrontID: details.StorefrontID,
		SellerID:     view.sellerID,
		BuyerID:      buyerID,
		ItemID:       itemID,
		ItemKind:     string(details.ItemKind),
		VaultKind:    string(kind),
		Price:        req.Amount,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Sales.Create(ctx, &rec); err != nil {
		log.Printf("purchase: sale audit write failed (item=%d buyer=%d): %v", itemID, buyerID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"item_id":    itemID,
		"item_kind":  details.ItemKind,
		"vault_kind": kind,
		"price":      req.Amount,
		"sale_id":    rec.ID,
	})
}
