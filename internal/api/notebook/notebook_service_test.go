package notebook

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finsight-app/finsight/internal/types"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListByUser(ctx context.Context, userID int64) ([]types.NotebookEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.NotebookEntry), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, entry *types.NotebookEntry) (*types.NotebookEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.NotebookEntry), args.Error(1)
}

func (m *MockRepository) GetOwned(ctx context.Context, userID, entryID int64) (*types.NotebookEntry, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.NotebookEntry), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, entry *types.NotebookEntry) (*types.NotebookEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.NotebookEntry), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, userID, entryID int64) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func storedEntry() *types.NotebookEntry {
	return &types.NotebookEntry{
		ID:           5,
		UserID:       7,
		Title:        "Fed meeting notes",
		Content:      "Rates held steady.",
		EntryDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Tags:         []string{"macro"},
		AssetSymbols: []string{"SPY"},
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsEntryDateToNow", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, slog.Default())

		fixed := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
		service.now = func() time.Time { return fixed }

		mockRepo.On("Create", ctx, mock.MatchedBy(func(e *types.NotebookEntry) bool {
			return e.UserID == 7 && e.Title == "Fed meeting notes" && e.EntryDate.Equal(fixed)
		})).Return(storedEntry(), nil).Once()

		_, err := service.Create(ctx, 7, types.CreateNotebookEntryRequest{
			Title:   "Fed meeting notes",
			Content: "Rates held steady.",
		})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("ExplicitEntryDateKept", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, slog.Default())

		entryDate := time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)
		mockRepo.On("Create", ctx, mock.MatchedBy(func(e *types.NotebookEntry) bool {
			return e.EntryDate.Equal(entryDate)
		})).Return(storedEntry(), nil).Once()

		_, err := service.Create(ctx, 7, types.CreateNotebookEntryRequest{
			Title:     "Backfill",
			Content:   "Earlier thoughts.",
			EntryDate: &entryDate,
		})
		require.NoError(t, err)
	})

	t.Run("TitleAndContentRequired", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, slog.Default())

		_, err := service.Create(ctx, 7, types.CreateNotebookEntryRequest{Title: "  ", Content: "x"})
		require.ErrorIs(t, err, types.ErrValidation)
		assert.Contains(t, err.Error(), "Title and content are required")

		_, err = service.Create(ctx, 7, types.CreateNotebookEntryRequest{Title: "x", Content: ""})
		assert.ErrorIs(t, err, types.ErrValidation)

		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ZeroOwnerRejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, slog.Default())

		_, err := service.Create(ctx, 0, types.CreateNotebookEntryRequest{Title: "x", Content: "y"})
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
	})
}

func TestUpdateEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialUpdateKeepsOmittedFields", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, slog.Default())

		current := storedEntry()
		mockRepo.On("GetOwned", ctx, int64(7), int64(5)).Return(current, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(e *types.NotebookEntry) bool {
			return e.Title == "Revised title" &&
				e.Content == "Rates held steady." &&
				len(e.Tags) == 1 && e.Tags[0] == "macro"
		})).Return(current, nil).Once()

		_, err := service.Update(ctx, 7, 5, types.UpdateNotebookEntryRequest{Title: strPtr("Revised title")})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("BlankTitleRejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, slog.Default())

		mockRepo.On("GetOwned", ctx, int64(7), int64(5)).Return(storedEntry(), nil).Once()

		_, err := service.Update(ctx, 7, 5, types.UpdateNotebookEntryRequest{Title: strPtr(" ")})
		assert.ErrorIs(t, err, types.ErrValidation)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("ForeignEntryMaskedAsNotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, slog.Default())

		mockRepo.On("GetOwned", ctx, int64(8), int64(5)).Return(nil, types.ErrNotFound).Once()

		_, err := service.Update(ctx, 8, 5, types.UpdateNotebookEntryRequest{Title: strPtr("x")})
		require.ErrorIs(t, err, types.ErrNotFound)
		assert.Contains(t, err.Error(), "Entry not found")
	})
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, slog.Default())

		mockRepo.On("Delete", ctx, int64(7), int64(5)).Return(nil).Once()

		assert.NoError(t, service.Delete(ctx, 7, 5))
	})

	t.Run("AbsentEntryIsNotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, slog.Default())

		mockRepo.On("Delete", ctx, int64(7), int64(99)).Return(types.ErrNotFound).Once()

		err := service.Delete(ctx, 7, 99)
		require.ErrorIs(t, err, types.ErrNotFound)
		assert.Contains(t, err.Error(), "Entry not found")
	})
}
