package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finsight-app/finsight/internal/types"
)

// MockService is a mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, email, username, password string) (*types.User, string, error) {
	args := m.Called(ctx, email, username, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*types.User), args.String(1), args.Error(2)
}

func (m *MockService) Login(ctx context.Context, identifier, password string) (*types.User, string, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*types.User), args.String(1), args.Error(2)
}

func (m *MockService) Me(ctx context.Context, userID int64) (*types.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func TestHandlerRegister(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mockService := new(MockService)
		handler := NewHandler(mockService, slog.Default())

		user := &types.User{
			ID:        7,
			Email:     "a@x.com",
			Username:  "alice",
			IsActive:  true,
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}
		mockService.On("Register", mock.Anything, "a@x.com", "alice", "secret1").
			Return(user, "signed.jwt.token", nil).Once()

		body := `{"email":"a@x.com","username":"alice","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler.Register(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp types.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "User registered successfully", resp.Message)
		assert.Equal(t, "signed.jwt.token", resp.Token)
		assert.Equal(t, int64(7), resp.User.ID)
		assert.Equal(t, "alice", resp.User.Username)
		assert.NotNil(t, resp.User.CreatedAt)

		// Hash and active flag never appear on the wire.
		assert.NotContains(t, rec.Body.String(), "password")
		assert.NotContains(t, rec.Body.String(), "is_active")

		mockService.AssertExpectations(t)
	})

	t.Run("ValidationError", func(t *testing.T) {
		mockService := new(MockService)
		handler := NewHandler(mockService, slog.Default())

		mockService.On("Register", mock.Anything, "a@x.com", "alice", "123").
			Return(nil, "", types.ErrValidation).Once()

		body := `{"email":"a@x.com","username":"alice","password":"123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Conflict", func(t *testing.T) {
		mockService := new(MockService)
		handler := NewHandler(mockService, slog.Default())

		mockService.On("Register", mock.Anything, "a@x.com", "alice", "secret1").
			Return(nil, "", types.ErrConflict).Once()

		body := `{"email":"a@x.com","username":"alice","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		mockService := new(MockService)
		handler := NewHandler(mockService, slog.Default())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandlerLogin(t *testing.T) {
	t.Run("SuccessWithEmailOrUsernameKey", func(t *testing.T) {
		mockService := new(MockService)
		handler := NewHandler(mockService, slog.Default())

		user := &types.User{ID: 7, Email: "a@x.com", Username: "alice", IsActive: true}
		mockService.On("Login", mock.Anything, "alice", "secret1").
			Return(user, "signed.jwt.token", nil).Once()

		body := `{"emailOrUsername":"alice","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp types.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Login successful", resp.Message)
		assert.Equal(t, "signed.jwt.token", resp.Token)
		assert.Nil(t, resp.User.CreatedAt)

		mockService.AssertExpectations(t)
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		mockService := new(MockService)
		handler := NewHandler(mockService, slog.Default())

		mockService.On("Login", mock.Anything, "alice", "wrong").
			Return(nil, "", types.ErrUnauthenticated).Once()

		body := `{"identifier":"alice","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandlerMe(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockService)
		handler := NewHandler(mockService, slog.Default())

		user := &types.User{ID: 7, Email: "a@x.com", Username: "alice", IsActive: true}
		mockService.On("Me", mock.Anything, int64(7)).Return(user, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req = req.WithContext(ContextWithClaims(req.Context(), &types.Claims{UserID: 7}))
		rec := httptest.NewRecorder()

		handler.Me(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"alice"`)
	})

	t.Run("NoClaimsInContext", func(t *testing.T) {
		mockService := new(MockService)
		handler := NewHandler(mockService, slog.Default())

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		rec := httptest.NewRecorder()

		handler.Me(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mockService.AssertNotCalled(t, "Me", mock.Anything, mock.Anything)
	})
}
