package handler // handler defines http handlers

import (
    "errors"       // errors provides sentinel values used in getUserID
    "net/http"     // net/http provides status codes
    "strconv"      // strconv converts strings to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/evgorin/nft-storefront/internal/asset"      // asset holds item collections
    "github.com/evgorin/nft-storefront/internal/market"     // market holds the listing engine
    "github.com/evgorin/nft-storefront/internal/repository" // repository holds the sale audit trail
    "github.com/evgorin/nft-storefront/internal/vault"      // vault holds payment vaults
)

// MarketHandler bundles the in-memory marketplace registries with the
// sale audit repository. The registries hold the live state; MySQL only
// receives the durable record of completed sales.
type MarketHandler struct {
    Storefronts *market.Registry // Storefronts holds one storefront per seller
    Assets      *asset.Registry  // Assets mints items and issues withdrawal capabilities
    Vaults      *vault.Registry  // Vaults holds balances and issues receiver capabilities
    Sales       *repository.SaleRepo
}

// NewMarketHandler constructs a new MarketHandler and panics if any dependency is nil
func NewMarketHandler(storefronts *market.Registry, assets *asset.Registry, vaults *vault.Registry, sales *repository.SaleRepo) *MarketHandler {
    if storefronts == nil || assets == nil || vaults == nil || sales == nil {
        panic("nil dependency passed to NewMarketHandler")
    }
    return &MarketHandler{
        Storefronts: storefronts,
        Assets:      assets,
        Vaults:      vaults,
        Sales:       sales,
    }
}

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric path parameter, rejecting zero.
func pathID(c echo.Context, name string) (uint64, bool) {
    n, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || n == 0 {
        return 0, false
    }
    return n, true
}

// marketError maps an engine sentinel error to an HTTP response with
// the error's own message as the body. Unknown errors become 500s so
// the engine's messages never leak for unexpected failures.
func marketError(c echo.Context, err error) error {
    status := http.StatusInternalServerError
    switch {
    case errors.Is(err, market.ErrListingNotFound),
        errors.Is(err, market.ErrItemNotFound),
        errors.Is(err, market.ErrNoStorefront):
        status = http.StatusNotFound
    case errors.Is(err, market.ErrStorefrontExists),
        errors.Is(err, market.ErrAlreadyListed),
        errors.Is(err, market.ErrAlreadyPurchased),
        errors.Is(err, market.ErrNotPurchased),
        errors.Is(err, market.ErrItemUnavailable),
        errors.Is(err, market.ErrAuthorityUnavailable),
        errors.Is(err, market.ErrNoValidReceiver),
        errors.Is(err, market.ErrWithdrawnItemMismatch):
        status = http.StatusConflict
    case errors.Is(err, market.ErrInvalidTerms),
        errors.Is(err, market.ErrTypeMismatch),
        errors.Is(err, market.ErrIDMismatch),
        errors.Is(err, market.ErrNoMatchingPaymentOption),
        errors.Is(err, market.ErrVoucherRequired),
        errors.Is(err, market.ErrVoucherKindMismatch),
        errors.Is(err, market.ErrVoucherRedeemed),
        errors.Is(err, market.ErrInsufficientBalance):
        status = http.StatusBadRequest
    default:
        return c.JSON(status, echo.Map{"error": "internal error"})
    }
    return c.JSON(status, echo.Map{"error": err.Error()})
}
