package types

import "time"

// NotebookEntry is a dated journal entry owned by one user, optionally tagged
// and linked to watched symbols.
type NotebookEntry struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	EntryDate    time.Time `json:"entryDate"`
	Tags         []string  `json:"tags"`
	AssetSymbols []string  `json:"assetSymbols"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateNotebookEntryRequest is the body of POST /api/notebook.
type CreateNotebookEntryRequest struct {
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	EntryDate    *time.Time `json:"entryDate"`
	Tags         []string   `json:"tags"`
	AssetSymbols []string   `json:"assetSymbols"`
}

// UpdateNotebookEntryRequest is the body of PUT /api/notebook/{id}. Omitted
// fields keep their stored values.
type UpdateNotebookEntryRequest struct {
	Title        *string  `json:"title"`
	Content      *string  `json:"content"`
	Tags         []string `json:"tags"`
	AssetSymbols []string `json:"assetSymbols"`
}
