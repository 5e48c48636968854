package asset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	database "github.com/finsight-app/finsight/app/db"
	"github.com/finsight-app/finsight/internal/types"
)

// Ensure RepositoryImpl implements the Repository interface
var _ Repository = (*RepositoryImpl)(nil)

// Repository defines the persistence operations for watch-list assets. Every
// read or mutation of a single asset is owner-scoped: "doesn't exist" and
// "exists but owned by someone else" are indistinguishable (ErrNotFound).
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]types.Asset, error)
	SymbolExists(ctx context.Context, userID int64, symbol string) (bool, error)
	Create(ctx context.Context, userID int64, symbol, name, assetType string, notes *string) (*types.Asset, error)
	GetOwned(ctx context.Context, userID, assetID int64) (*types.Asset, error)
	Update(ctx context.Context, userID, assetID int64, name, assetType string, notes *string) (*types.Asset, error)
	Delete(ctx context.Context, userID, assetID int64) error
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

const assetColumns = "id, user_id, symbol, name, asset_type, notes, created_at, updated_at"

func scanAsset(row pgx.Row) (*types.Asset, error) {
	var a types.Asset
	err := row.Scan(&a.ID, &a.UserID, &a.Symbol, &a.Name, &a.Type, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("scan asset: %w", err)
	}
	return &a, nil
}

// ListByUser returns all assets owned by userID, newest first.
func (r *RepositoryImpl) ListByUser(ctx context.Context, userID int64) ([]types.Asset, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+assetColumns+" FROM assets WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list assets", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := make([]types.Asset, 0)
	for rows.Next() {
		var a types.Asset
		err := rows.Scan(&a.ID, &a.UserID, &a.Symbol, &a.Name, &a.Type, &a.Notes,
			&a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		assets = append(assets, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", err)
	}
	return assets, nil
}

// SymbolExists is the advisory uniqueness pre-check. The unique constraint on
// (user_id, symbol) remains the authoritative guard.
func (r *RepositoryImpl) SymbolExists(ctx context.Context, userID int64, symbol string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM assets WHERE user_id = $1 AND symbol = $2)",
		userID, symbol).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check symbol existence: %w", err)
	}
	return exists, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, userID int64, symbol, name, assetType string, notes *string) (*types.Asset, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO assets (user_id, symbol, name, asset_type, notes)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING `+assetColumns,
		userID, symbol, name, assetType, notes)

	asset, err := scanAsset(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: Asset already in watch list", types.ErrConflict)
		}
		r.logger.ErrorContext(ctx, "Failed to insert asset", slog.Any("error", err))
		return nil, fmt.Errorf("failed to insert asset: %w", err)
	}
	return asset, nil
}

func (r *RepositoryImpl) GetOwned(ctx context.Context, userID, assetID int64) (*types.Asset, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+assetColumns+" FROM assets WHERE id = $1 AND user_id = $2",
		assetID, userID)
	return scanAsset(row)
}

// Update overwrites the mutable columns. Symbol and owner are never touched.
func (r *RepositoryImpl) Update(ctx context.Context, userID, assetID int64, name, assetType string, notes *string) (*types.Asset, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE assets
         SET name = $1, asset_type = $2, notes = $3, updated_at = now()
         WHERE id = $4 AND user_id = $5
         RETURNING `+assetColumns,
		name, assetType, notes, assetID, userID)
	return scanAsset(row)
}

func (r *RepositoryImpl) Delete(ctx context.Context, userID, assetID int64) error {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM assets WHERE id = $1 AND user_id = $2", assetID, userID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete asset", slog.Any("error", err))
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
