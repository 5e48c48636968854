package asset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finsight-app/finsight/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the owner-scoped watch-list operations. Every call requires
// the verified owner id from the request gate; a zero owner id is rejected
// defensively even though the gate should already guarantee it.
type Service interface {
	List(ctx context.Context, ownerID int64) ([]types.Asset, error)
	Add(ctx context.Context, ownerID int64, req types.AddAssetRequest) (*types.Asset, error)
	Update(ctx context.Context, ownerID, assetID int64, req types.UpdateAssetRequest) (*types.Asset, error)
	Delete(ctx context.Context, ownerID, assetID int64) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func requireOwner(ownerID int64) error {
	if ownerID <= 0 {
		return fmt.Errorf("%w: Authentication required", types.ErrUnauthenticated)
	}
	return nil
}

// NormalizeSymbol uppercases and trims a ticker symbol. Applied before both
// the uniqueness check and storage so "aapl" and "AAPL" collide.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// normalizeNotes maps a blank notes value to NULL.
func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// List returns all assets owned by ownerID, newest first. No assets is an
// empty collection, not an error.
func (s *ServiceImpl) List(ctx context.Context, ownerID int64) ([]types.Asset, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	assets, err := s.repo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if assets == nil {
		assets = make([]types.Asset, 0)
	}
	return assets, nil
}

// Add creates a watch-list entry. The pre-check gives a friendly conflict
// message; a concurrent insert losing the race is caught by the storage
// constraint and surfaces the same conflict.
func (s *ServiceImpl) Add(ctx context.Context, ownerID int64, req types.AddAssetRequest) (*types.Asset, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	symbol := NormalizeSymbol(req.Symbol)
	name := strings.TrimSpace(req.Name)
	assetType := strings.TrimSpace(req.Type)

	if symbol == "" || name == "" || assetType == "" {
		return nil, fmt.Errorf("%w: Symbol, name, and type are required", types.ErrValidation)
	}

	exists, err := s.repo.SymbolExists(ctx, ownerID, symbol)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: Asset already in watch list", types.ErrConflict)
	}

	asset, err := s.repo.Create(ctx, ownerID, symbol, name, assetType, normalizeNotes(req.Notes))
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Asset added to watch list",
		slog.Int64("user_id", ownerID), slog.String("symbol", symbol))
	return asset, nil
}

// Update applies a partial update to name, type and notes. Omitted fields keep
// their stored values; a supplied blank notes value clears the column. Symbol
// and owner are immutable. An asset that doesn't exist and an asset owned by
// another user are reported identically as not found.
func (s *ServiceImpl) Update(ctx context.Context, ownerID, assetID int64, req types.UpdateAssetRequest) (*types.Asset, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	current, err := s.repo.GetOwned(ctx, ownerID, assetID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("%w: Asset not found", types.ErrNotFound)
		}
		return nil, err
	}

	name := current.Name
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: Name cannot be empty", types.ErrValidation)
		}
		name = trimmed
	}

	assetType := current.Type
	if req.Type != nil {
		trimmed := strings.TrimSpace(*req.Type)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: Type cannot be empty", types.ErrValidation)
		}
		assetType = trimmed
	}

	// Notes: omitted leaves the stored value untouched, an explicit blank
	// clears it.
	notes := current.Notes
	if req.Notes != nil {
		notes = normalizeNotes(req.Notes)
	}

	updated, err := s.repo.Update(ctx, ownerID, assetID, name, assetType, notes)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("%w: Asset not found", types.ErrNotFound)
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the record permanently. Deleting an id that is absent or
// owned by someone else fails with not found; a second delete of the same id
// is therefore not a silent no-op.
func (s *ServiceImpl) Delete(ctx context.Context, ownerID, assetID int64) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	err := s.repo.Delete(ctx, ownerID, assetID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("%w: Asset not found", types.ErrNotFound)
		}
		return err
	}
	s.logger.InfoContext(ctx, "Asset removed from watch list",
		slog.Int64("user_id", ownerID), slog.Int64("asset_id", assetID))
	return nil
}
