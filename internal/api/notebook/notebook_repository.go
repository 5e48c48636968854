package notebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	database "github.com/finsight-app/finsight/app/db"
	"github.com/finsight-app/finsight/internal/types"
)

// Ensure RepositoryImpl implements the Repository interface
var _ Repository = (*RepositoryImpl)(nil)

// Repository defines the persistence operations for journal entries. Single
// entry reads and mutations are owner-scoped with the same not-found masking
// as the asset repository.
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]types.NotebookEntry, error)
	Create(ctx context.Context, entry *types.NotebookEntry) (*types.NotebookEntry, error)
	GetOwned(ctx context.Context, userID, entryID int64) (*types.NotebookEntry, error)
	Update(ctx context.Context, entry *types.NotebookEntry) (*types.NotebookEntry, error)
	Delete(ctx context.Context, userID, entryID int64) error
}

type RepositoryImpl struct {
	logger *slog.Logger
	db     database.PGX
}

func NewRepository(db database.PGX, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		db:     db,
	}
}

const entryColumns = "id, user_id, title, content, entry_date, tags, asset_symbols, created_at, updated_at"

func scanEntry(row pgx.Row) (*types.NotebookEntry, error) {
	var e types.NotebookEntry
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.EntryDate,
		&e.Tags, &e.AssetSymbols, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("scan notebook entry: %w", err)
	}
	return &e, nil
}

// ListByUser returns all entries owned by userID, most recent entry date first.
func (r *RepositoryImpl) ListByUser(ctx context.Context, userID int64) ([]types.NotebookEntry, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+entryColumns+" FROM notebook_entries WHERE user_id = $1 ORDER BY entry_date DESC", userID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list notebook entries", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list notebook entries: %w", err)
	}
	defer rows.Close()

	entries := make([]types.NotebookEntry, 0)
	for rows.Next() {
		var e types.NotebookEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.EntryDate,
			&e.Tags, &e.AssetSymbols, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notebook entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notebook entry rows: %w", err)
	}
	return entries, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, entry *types.NotebookEntry) (*types.NotebookEntry, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO notebook_entries (user_id, title, content, entry_date, tags, asset_symbols)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING `+entryColumns,
		entry.UserID, entry.Title, entry.Content, entry.EntryDate, entry.Tags, entry.AssetSymbols)

	created, err := scanEntry(row)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert notebook entry", slog.Any("error", err))
		return nil, fmt.Errorf("failed to insert notebook entry: %w", err)
	}
	return created, nil
}

func (r *RepositoryImpl) GetOwned(ctx context.Context, userID, entryID int64) (*types.NotebookEntry, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+entryColumns+" FROM notebook_entries WHERE id = $1 AND user_id = $2",
		entryID, userID)
	return scanEntry(row)
}

func (r *RepositoryImpl) Update(ctx context.Context, entry *types.NotebookEntry) (*types.NotebookEntry, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE notebook_entries
         SET title = $1, content = $2, tags = $3, asset_symbols = $4, updated_at = now()
         WHERE id = $5 AND user_id = $6
         RETURNING `+entryColumns,
		entry.Title, entry.Content, entry.Tags, entry.AssetSymbols, entry.ID, entry.UserID)
	return scanEntry(row)
}

func (r *RepositoryImpl) Delete(ctx context.Context, userID, entryID int64) error {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM notebook_entries WHERE id = $1 AND user_id = $2", entryID, userID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete notebook entry", slog.Any("error", err))
		return fmt.Errorf("failed to delete notebook entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
