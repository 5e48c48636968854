package auth

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

// Repository defines the persistence operations for user records.
type Repository interface {
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
	GetUserByIdentifier(ctx context.Context, identifier string) (*types.User, error)
	GetUserByID(ctx context.Context, userID int64) (*types.User, error)
	CreateUser(ctx context.Context, email, username, passwordHash string) (*types.User, error)
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

const userColumns = "id, email, username, password_hash, is_active, created_at, updated_at"

func scanUser(row pgx.Row) (*types.User, error) {
	var user types.User
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

func (r *RepositoryImpl) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email)
	return scanUser(row)
}

func (r *RepositoryImpl) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1", username)
	return scanUser(row)
}

// GetUserByIdentifier looks up a user by email or username in a single query.
func (r *RepositoryImpl) GetUserByIdentifier(ctx context.Context, identifier string) (*types.User, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1 OR username = $1", identifier)
	return scanUser(row)
}

func (r *RepositoryImpl) GetUserByID(ctx context.Context, userID int64) (*types.User, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", userID)
	return scanUser(row)
}

// CreateUser inserts a new user row. The unique constraints on email and
// username are the authoritative uniqueness guard; a violation is translated
// to the same conflict the service-level pre-check reports.
func (r *RepositoryImpl) CreateUser(ctx context.Context, email, username, passwordHash string) (*types.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (email, username, password_hash)
         VALUES ($1, $2, $3)
         RETURNING `+userColumns, email, username, passwordHash)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "users_username_key" {
				return nil, fmt.Errorf("%w: Username already taken", types.ErrConflict)
			}
			return nil, fmt.Errorf("%w: Email already registered", types.ErrConflict)
		}
		r.logger.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}
