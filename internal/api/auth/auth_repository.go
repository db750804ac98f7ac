package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skillswaphq/skillswap/internal/api"
)

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo defines the contract for credential persistence.
type AuthRepo interface {
	// CreateUser inserts a new account. Returns api.ErrConflict if the email
	// is already registered; uniqueness is enforced by the database constraint
	// so concurrent registrations of the same email cannot both succeed.
	CreateUser(ctx context.Context, name, email, passwordHash, location, role string) (uuid.UUID, error)

	// GetUserByEmail returns the full account including the password hash.
	// Returns api.ErrNotFound if no account matches.
	GetUserByEmail(ctx context.Context, email string) (*api.Account, error)
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	pgpool api.PGXPool
}

func NewPostgresAuthRepo(pgpool api.PGXPool, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

func (r *PostgresAuthRepo) CreateUser(ctx context.Context, name, email, passwordHash, location, role string) (uuid.UUID, error) {
	l := r.logger.With(slog.String("method", "CreateUser"), slog.String("email", email))

	var id uuid.UUID
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, location, role)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id`,
		name, email, passwordHash, location, role).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			l.WarnContext(ctx, "Duplicate email on registration")
			return uuid.Nil, fmt.Errorf("email already registered: %w", api.ErrConflict)
		}
		l.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		return uuid.Nil, fmt.Errorf("create user: db insert failed: %w", err)
	}

	l.InfoContext(ctx, "User created", slog.String("userID", id.String()))
	return id, nil
}

func (r *PostgresAuthRepo) GetUserByEmail(ctx context.Context, email string) (*api.Account, error) {
	var account api.Account
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, location, role, private_account,
                bio, availability, rating, skills_offered, skills_wanted,
                created_at, updated_at
         FROM users WHERE email = $1`,
		email).Scan(
		&account.ID, &account.Name, &account.Email, &account.PasswordHash,
		&account.Location, &account.Role, &account.PrivateAccount,
		&account.Bio, &account.Availability, &account.Rating,
		&account.SkillsOffered, &account.SkillsWanted,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no account for email: %w", api.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by email: query failed: %w", err)
	}

	return &account, nil
}
