package notebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finsight-app/finsight/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the owner-scoped journal operations.
type Service interface {
	List(ctx context.Context, ownerID int64) ([]types.NotebookEntry, error)
	Create(ctx context.Context, ownerID int64, req types.CreateNotebookEntryRequest) (*types.NotebookEntry, error)
	Update(ctx context.Context, ownerID, entryID int64, req types.UpdateNotebookEntryRequest) (*types.NotebookEntry, error)
	Delete(ctx context.Context, ownerID, entryID int64) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		now:    time.Now,
	}
}

func requireOwner(ownerID int64) error {
	if ownerID <= 0 {
		return fmt.Errorf("%w: Authentication required", types.ErrUnauthenticated)
	}
	return nil
}

func (s *ServiceImpl) List(ctx context.Context, ownerID int64) ([]types.NotebookEntry, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make([]types.NotebookEntry, 0)
	}
	return entries, nil
}

func (s *ServiceImpl) Create(ctx context.Context, ownerID int64, req types.CreateNotebookEntryRequest) (*types.NotebookEntry, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: Title and content are required", types.ErrValidation)
	}

	entryDate := s.now()
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}

	entry := &types.NotebookEntry{
		UserID:       ownerID,
		Title:        title,
		Content:      content,
		EntryDate:    entryDate,
		Tags:         req.Tags,
		AssetSymbols: req.AssetSymbols,
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Notebook entry created",
		slog.Int64("user_id", ownerID), slog.Int64("entry_id", created.ID))
	return created, nil
}

// Update applies a partial update to title, content, tags and assetSymbols.
// Entries absent or owned by another user report not found identically.
func (s *ServiceImpl) Update(ctx context.Context, ownerID, entryID int64, req types.UpdateNotebookEntryRequest) (*types.NotebookEntry, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	current, err := s.repo.GetOwned(ctx, ownerID, entryID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("%w: Entry not found", types.ErrNotFound)
		}
		return nil, err
	}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: Title cannot be empty", types.ErrValidation)
		}
		current.Title = trimmed
	}
	if req.Content != nil {
		trimmed := strings.TrimSpace(*req.Content)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: Content cannot be empty", types.ErrValidation)
		}
		current.Content = trimmed
	}
	if req.Tags != nil {
		current.Tags = req.Tags
	}
	if req.AssetSymbols != nil {
		current.AssetSymbols = req.AssetSymbols
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("%w: Entry not found", types.ErrNotFound)
		}
		return nil, err
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, ownerID, entryID int64) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	err := s.repo.Delete(ctx, ownerID, entryID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return fmt.Errorf("%w: Entry not found", types.ErrNotFound)
		}
		return err
	}
	s.logger.InfoContext(ctx, "Notebook entry deleted",
		slog.Int64("user_id", ownerID), slog.Int64("entry_id", entryID))
	return nil
}
