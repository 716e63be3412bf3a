package mediatags

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/trivixa/listings-api/internal/types"
)

var _ MediaTagsRepo = (*PostgresMediaTagsRepo)(nil)

// MediaTagsRepo defines the contract for media tag persistence.
type MediaTagsRepo interface {
	GetAll(ctx context.Context) ([]types.MediaTag, error)
	Create(ctx context.Context, tag types.MediaTag) (*types.MediaTag, error)
	Update(ctx context.Context, tagID uuid.UUID, params types.UpdateMediaTagParams, slug *string, actorID uuid.UUID) (*types.MediaTag, error)
	SoftDelete(ctx context.Context, tagID uuid.UUID, actorID uuid.UUID) error
}

const mediaTagColumns = `id, name, slug, description, media_count, media_files, is_active,
               created_by, updated_by, created_at, updated_at`

type PostgresMediaTagsRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresMediaTagsRepo(pgxpool *pgxpool.Pool, logger *slog.Logger) *PostgresMediaTagsRepo {
	return &PostgresMediaTagsRepo{
		logger: logger,
		pgpool: pgxpool,
	}
}

func scanMediaTag(row pgx.Row) (*types.MediaTag, error) {
	var t types.MediaTag
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Description, &t.MediaCount, &t.MediaFiles,
		&t.IsActive, &t.CreatedBy, &t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresMediaTagsRepo) GetAll(ctx context.Context) ([]types.MediaTag, error) {
	ctx, span := otel.Tracer("MediaTagsRepo").Start(ctx, "GetAll", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "media_tags"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "GetAll"))

	query := `
        SELECT ` + mediaTagColumns + `
        FROM media_tags
        WHERE is_active = TRUE
        ORDER BY name`

	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query media tags", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching media tags: %w", err)
	}
	defer rows.Close()

	tags := []types.MediaTag{}
	for rows.Next() {
		t, err := scanMediaTag(rows)
		if err != nil {
			l.ErrorContext(ctx, "Failed to scan media tag row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning media tag: %w", err)
		}
		tags = append(tags, *t)
	}
	if err = rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("database error reading media tags: %w", err)
	}

	span.SetStatus(codes.Ok, "Media tags fetched")
	return tags, nil
}

func (r *PostgresMediaTagsRepo) Create(ctx context.Context, tag types.MediaTag) (*types.MediaTag, error) {
	ctx, span := otel.Tracer("MediaTagsRepo").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "media_tags"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Create"), slog.String("slug", tag.Slug))

	query := `
        INSERT INTO media_tags (name, slug, description, media_files, created_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + mediaTagColumns

	created, err := scanMediaTag(r.pgpool.QueryRow(ctx, query,
		tag.Name, tag.Slug, tag.Description, tag.MediaFiles, tag.CreatedBy,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			l.WarnContext(ctx, "Media tag name or slug already exists", slog.Any("error", err))
			span.SetStatus(codes.Error, "Media tag conflict")
			return nil, fmt.Errorf("media tag already exists: %w", types.ErrConflict)
		}
		l.ErrorContext(ctx, "Failed to insert media tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error inserting media tag: %w", err)
	}

	span.SetStatus(codes.Ok, "Media tag inserted")
	return created, nil
}

func (r *PostgresMediaTagsRepo) Update(ctx context.Context, tagID uuid.UUID, params types.UpdateMediaTagParams, slug *string, actorID uuid.UUID) (*types.MediaTag, error) {
	ctx, span := otel.Tracer("MediaTagsRepo").Start(ctx, "Update", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "media_tags"),
		attribute.String("db.tag.id", tagID.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Update"), slog.String("tagID", tagID.String()))

	var updates []string
	args := []interface{}{}
	paramIdx := 1

	set := func(column string, value interface{}) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, paramIdx))
		args = append(args, value)
		paramIdx++
	}

	if params.Name != nil {
		set("name", *params.Name)
	}
	if slug != nil {
		set("slug", *slug)
	}
	if params.Description != nil {
		set("description", *params.Description)
	}
	if params.MediaFiles != nil {
		set("media_files", params.MediaFiles)
		set("media_count", len(params.MediaFiles))
	}
	if params.IsActive != nil {
		set("is_active", *params.IsActive)
	}
	set("updated_by", actorID)
	set("updated_at", time.Now())

	args = append(args, tagID)

	query := fmt.Sprintf(`
        UPDATE media_tags
        SET %s
        WHERE id = $%d
        RETURNING `+mediaTagColumns, strings.Join(updates, ", "), paramIdx)

	updated, err := scanMediaTag(r.pgpool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Media tag not found")
			return nil, fmt.Errorf("media tag %s not found: %w", tagID, types.ErrNotFound)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			span.SetStatus(codes.Error, "Media tag conflict")
			return nil, fmt.Errorf("media tag already exists: %w", types.ErrConflict)
		}
		l.ErrorContext(ctx, "Failed to update media tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating media tag: %w", err)
	}

	span.SetStatus(codes.Ok, "Media tag updated")
	return updated, nil
}

func (r *PostgresMediaTagsRepo) SoftDelete(ctx context.Context, tagID uuid.UUID, actorID uuid.UUID) error {
	ctx, span := otel.Tracer("MediaTagsRepo").Start(ctx, "SoftDelete", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "media_tags"),
		attribute.String("db.tag.id", tagID.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "SoftDelete"), slog.String("tagID", tagID.String()))

	tag, err := r.pgpool.Exec(ctx,
		`UPDATE media_tags SET is_active = FALSE, updated_by = $2, updated_at = $3 WHERE id = $1`,
		tagID, actorID, time.Now(),
	)
	if err != nil {
		l.ErrorContext(ctx, "Failed to soft-delete media tag", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return fmt.Errorf("database error deleting media tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "Media tag not found")
		return fmt.Errorf("media tag %s not found: %w", tagID, types.ErrNotFound)
	}

	span.SetStatus(codes.Ok, "Media tag soft-deleted")
	return nil
}
