package skills

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillswaphq/skillswap/internal/api"
)

var _ SkillsRepo = (*PostgresSkillsRepo)(nil)

// SkillsRepo defines the contract for reading the global skill catalogue.
type SkillsRepo interface {
	// ListSkillNames flattens every account's offered skills into one
	// deduplicated collection. Order is unspecified.
	ListSkillNames(ctx context.Context) ([]string, error)
}

type PostgresSkillsRepo struct {
	logger *slog.Logger
	pgpool api.PGXPool
}

func NewPostgresSkillsRepo(pgpool api.PGXPool, logger *slog.Logger) *PostgresSkillsRepo {
	return &PostgresSkillsRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresSkillsRepo) ListSkillNames(ctx context.Context) ([]string, error) {
	ctx, span := otel.Tracer("SkillsRepo").Start(ctx, "ListSkillNames", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	rows, err := r.pgpool.Query(ctx,
		`SELECT DISTINCT skill FROM users, unnest(skills_offered) AS skill`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB SELECT failed")
		return nil, fmt.Errorf("list skill names: query failed: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Row scan failed")
			return nil, fmt.Errorf("list skill names: scan failed: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Rows iteration failed")
		return nil, fmt.Errorf("list skill names: rows failed: %w", err)
	}

	span.SetAttributes(attribute.Int("skills.count", len(names)))
	span.SetStatus(codes.Ok, "Skill names fetched")
	return names, nil
}
