package types

import "time"

// Asset is a watch-list entry owned by exactly one user. The (UserID, Symbol)
// pair is unique per the storage constraint; Symbol is stored uppercase and is
// immutable after creation, as is the owner.
type Asset struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Well-known asset types. The column is an open string, not a closed enum;
// these are the values the UI offers.
const (
	AssetTypeStock     = "stock"
	AssetTypeCrypto    = "crypto"
	AssetTypeCommodity = "commodity"
	AssetTypeForex     = "forex"
	AssetTypeOther     = "other"
)

// AddAssetRequest is the body of POST /api/assets.
type AddAssetRequest struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Notes  *string `json:"notes"`
}

// UpdateAssetRequest is the body of PUT /api/assets/{id}. Omitted fields keep
// their stored values; an explicitly blank Notes clears the column.
type UpdateAssetRequest struct {
	Name  *string `json:"name"`
	Type  *string `json:"type"`
	Notes *string `json:"notes"`
}
