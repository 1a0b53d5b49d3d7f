package repository

import (
	"context"
	"database/sql"
	"time"
)

// SaleRepo persists the audit trail of completed purchases.  The
// market engine keeps listings in memory; once a listing sells, the
// purchase handler writes one row here so the history outlives both
// the listing and the process.  All timestamps are stored in UTC.
type SaleRepo struct {
	db *sql.DB
}

// NewSaleRepo returns a new SaleRepo bound to the given database.
func NewSaleRepo(db *sql.DB) *SaleRepo { return &SaleRepo{db: db} }

// SaleRecord mirrors the schema of the sales table.  It is used
// internally by the repository when constructing or scanning rows.
// Business logic should use the model.Sale type instead.
type SaleRecord struct {
	ID           uint64
	StorefrontID uint64
	SellerID     uint64
	BuyerID      uint64
	ItemID       uint64
	ItemKind     string
	VaultKind    string
	Price        uint64
	CreatedAt    time.Time
}

// Create inserts a completed sale and populates the generated ID on
// the provided record.
func (r *SaleRepo) Create(ctx context.Context, rec *SaleRecord) error {
	const q = `INSERT INTO sales (storefront_id, seller_id, buyer_id, item_id, item_kind, vault_kind, price)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		rec.StorefrontID, rec.SellerID, rec.BuyerID, rec.ItemID, rec.ItemKind, rec.VaultKind, rec.Price)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// SaleDetail is the public shape of a sale row returned to clients.
type SaleDetail struct {
	ID           uint64 `json:"id"`
	StorefrontID uint64 `json:"storefront_id"`
	SellerID     uint64 `json:"seller_id"`
	BuyerID      uint64 `json:"buyer_id"`
	ItemID       uint64 `json:"item_id"`
	ItemKind     string `json:"item_kind"`
	VaultKind    string `json:"vault_kind"`
	Price        uint64 `json:"price"`
	CreatedAt    string `json:"created_at"`
}

// ListBySeller returns all sales recorded for a seller, newest first.
// When no sales exist, an empty slice is returned.
func (r *SaleRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]SaleDetail, error) {
	const q = `SELECT id, storefront_id, seller_id, buyer_id, item_id, item_kind, vault_kind, price, created_at
	           FROM sales WHERE seller_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]SaleDetail, 0)
	for rows.Next() {
		var d SaleDetail
		var createdAt time.Time
		if err := rows.Scan(
			&d.ID, &d.StorefrontID, &d.SellerID, &d.BuyerID,
			&d.ItemID, &d.ItemKind, &d.VaultKind, &d.Price, &createdAt,
		); err != nil {
			return nil, err
		}
		d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// ListByBuyer returns all purchases recorded for a buyer, newest first.
func (r *SaleRepo) ListByBuyer(ctx context.Context, buyerID uint64) ([]SaleDetail, error) {
	const q = `SELECT id, storefront_id, seller_id, buyer_id, item_id, item_kind, vault_kind, price, created_at
	           FROM sales WHERE buyer_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]SaleDetail, 0)
	for rows.Next() {
		var d SaleDetail
		var createdAt time.Time
		if err := rows.Scan(
			&d.ID, &d.StorefrontID, &d.SellerID, &d.BuyerID,
			&d.ItemID, &d.ItemKind, &d.VaultKind, &d.Price, &createdAt,
		); err != nil {
			return nil, err
		}
		d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
