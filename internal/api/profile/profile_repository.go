package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillswaphq/skillswap/internal/api"
)

var _ ProfileRepo = (*PostgresProfileRepo)(nil)

// ProfileRepo defines the contract for profile persistence.
type ProfileRepo interface {
	// GetByID retrieves an account by its unique ID.
	// Returns api.ErrNotFound if the account doesn't exist.
	GetByID(ctx context.Context, userID uuid.UUID) (*api.Account, error)

	// Update applies a field-level merge: only non-nil params change.
	// Returns the updated account, or api.ErrNotFound if the id is absent.
	Update(ctx context.Context, userID uuid.UUID, params api.UpdateProfileParams) (*api.Account, error)

	// FindMatches returns all public accounts whose offered skills overlap
	// wanted AND whose wanted skills overlap offered, excluding excludeID.
	// No ordering is applied.
	FindMatches(ctx context.Context, wanted, offered []string, excludeID uuid.UUID) ([]api.Account, error)

	// UpdateRating overwrites the account's rating (last write wins) and
	// returns the updated account, or api.ErrNotFound.
	UpdateRating(ctx context.Context, userID uuid.UUID, rating float64) (*api.Account, error)
}

type PostgresProfileRepo struct {
	logger *slog.Logger
	pgpool api.PGXPool
}

func NewPostgresProfileRepo(pgpool api.PGXPool, logger *slog.Logger) *PostgresProfileRepo {
	return &PostgresProfileRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const accountColumns = `id, name, email, password_hash, location, role, private_account,
            bio, availability, rating, skills_offered, skills_wanted, created_at, updated_at`

func scanAccount(row pgx.Row) (*api.Account, error) {
	var a api.Account
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash,
		&a.Location, &a.Role, &a.PrivateAccount,
		&a.Bio, &a.Availability, &a.Rating,
		&a.SkillsOffered, &a.SkillsWanted,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresProfileRepo) GetByID(ctx context.Context, userID uuid.UUID) (*api.Account, error) {
	ctx, span := otel.Tracer("ProfileRepo").Start(ctx, "GetByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "users"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()

	account, err := scanAccount(r.pgpool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE id = $1", accountColumns),
		userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "User not found")
			return nil, fmt.Errorf("no account with id %s: %w", userID, api.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("get account by id: query failed: %w", err)
	}

	span.SetStatus(codes.Ok, "Account fetched")
	return account, nil
}

func (r *PostgresProfileRepo) Update(ctx context.Context, userID uuid.UUID, params api.UpdateProfileParams) (*api.Account, error) {
	ctx, span := otel.Tracer("ProfileRepo").Start(ctx, "Update", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "users"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Update"), slog.String("userID", userID.String()))

	// Build the SET clause from the non-nil params only.
	var setClauses []string
	var args []interface{}
	argID := 1

	if params.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		args = append(args, *params.Name)
		argID++
		span.SetAttributes(attribute.Bool("update.name", true))
	}
	if params.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", argID))
		args = append(args, *params.Location)
		argID++
		span.SetAttributes(attribute.Bool("update.location", true))
	}
	if params.PrivateAccount != nil {
		setClauses = append(setClauses, fmt.Sprintf("private_account = $%d", argID))
		args = append(args, *params.PrivateAccount)
		argID++
		span.SetAttributes(attribute.Bool("update.private_account", true))
	}
	if params.Bio != nil {
		setClauses = append(setClauses, fmt.Sprintf("bio = $%d", argID))
		args = append(args, *params.Bio)
		argID++
		span.SetAttributes(attribute.Bool("update.bio", true))
	}
	if params.Availability != nil {
		setClauses = append(setClauses, fmt.Sprintf("availability = $%d", argID))
		args = append(args, *params.Availability)
		argID++
		span.SetAttributes(attribute.Bool("update.availability", true))
	}
	if params.SkillsOffered != nil {
		setClauses = append(setClauses, fmt.Sprintf("skills_offered = $%d", argID))
		args = append(args, *params.SkillsOffered)
		argID++
		span.SetAttributes(attribute.Bool("update.skills_offered", true))
	}
	if params.SkillsWanted != nil {
		setClauses = append(setClauses, fmt.Sprintf("skills_wanted = $%d", argID))
		args = append(args, *params.SkillsWanted)
		argID++
		span.SetAttributes(attribute.Bool("update.skills_wanted", true))
	}

	if len(setClauses) == 0 {
		l.WarnContext(ctx, "Update called with no fields to update")
		span.SetStatus(codes.Ok, "No update fields provided")
		return r.GetByID(ctx, userID)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now())
	argID++

	args = append(args, userID)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "),
		argID,
		accountColumns,
	)

	l.DebugContext(ctx, "Executing dynamic update query", slog.String("query", query), slog.Int("arg_count", len(args)))

	account, err := scanAccount(r.pgpool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			l.WarnContext(ctx, "User not found for update")
			span.SetStatus(codes.Error, "User not found")
			return nil, fmt.Errorf("user not found for update: %w", api.ErrNotFound)
		}
		l.ErrorContext(ctx, "Failed to execute update profile query", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating profile: %w", err)
	}

	l.InfoContext(ctx, "User profile updated successfully")
	span.SetStatus(codes.Ok, "Profile updated")
	return account, nil
}

func (r *PostgresProfileRepo) FindMatches(ctx context.Context, wanted, offered []string, excludeID uuid.UUID) ([]api.Account, error) {
	ctx, span := otel.Tracer("ProfileRepo").Start(ctx, "FindMatches", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "users"),
		attribute.Int("match.wanted_count", len(wanted)),
		attribute.Int("match.offered_count", len(offered)),
	))
	defer span.End()

	// && is the array overlap operator; both directions must intersect.
	query := fmt.Sprintf(`SELECT %s FROM users
         WHERE skills_offered && $1
           AND skills_wanted && $2
           AND id <> $3
           AND private_account = FALSE`, accountColumns)

	rows, err := r.pgpool.Query(ctx, query, wanted, offered, excludeID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("find matches: query failed: %w", err)
	}
	defer rows.Close()

	matches := make([]api.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Row scan failed")
			return nil, fmt.Errorf("find matches: scan failed: %w", err)
		}
		matches = append(matches, *account)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Rows iteration failed")
		return nil, fmt.Errorf("find matches: rows failed: %w", err)
	}

	span.SetAttributes(attribute.Int("match.result_count", len(matches)))
	span.SetStatus(codes.Ok, "Matches fetched")
	return matches, nil
}

func (r *PostgresProfileRepo) UpdateRating(ctx context.Context, userID uuid.UUID, rating float64) (*api.Account, error) {
	ctx, span := otel.Tracer("ProfileRepo").Start(ctx, "UpdateRating", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "users"),
		attribute.String("db.user.id", userID.String()),
		attribute.Float64("rating.value", rating),
	))
	defer span.End()

	account, err := scanAccount(r.pgpool.QueryRow(ctx,
		fmt.Sprintf("UPDATE users SET rating = $1, updated_at = $2 WHERE id = $3 RETURNING %s", accountColumns),
		rating, time.Now(), userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "User not found")
			return nil, fmt.Errorf("user not found for rating: %w", api.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("update rating: db update failed: %w", err)
	}

	span.SetStatus(codes.Ok, "Rating updated")
	return account, nil
}
