package profiles

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
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/trivixa/listings-api/internal/types"
)

var _ ProfileRepo = (*PostgresProfileRepo)(nil)

// DBTX is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it in tests.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ProfileRepo defines the contract for profile persistence.
type ProfileRepo interface {
	// CreateProfile inserts a fully-resolved profile and returns the stored record
	CreateProfile(ctx context.Context, profile types.Profile) (*types.Profile, error)
	// GetProfile retrieves a single active profile; inactive and missing are both not found
	GetProfile(ctx context.Context, profileID uuid.UUID) (*types.Profile, error)
	// ListProfiles retrieves one page of active profiles plus the unpaginated total
	ListProfiles(ctx context.Context, filter types.ProfileFilter, page, limit int) (*types.ProfilePage, error)
	// UpdateProfile applies a partial update to any profile, active or not
	UpdateProfile(ctx context.Context, profileID uuid.UUID, params types.UpdateProfileParams, actorID uuid.UUID) (*types.Profile, error)
	// SoftDeleteProfile flips is_active to false; the row is never removed
	SoftDeleteProfile(ctx context.Context, profileID uuid.UUID, actorID uuid.UUID) error
	// DistinctLocations lists the locations of active profiles, deduplicated
	DistinctLocations(ctx context.Context) ([]string, error)
}

const profileColumns = `id, name, age, location, status, tags, img, rating, is_active, is_new,
               title, short_content, long_content, meta_title, meta_keywords, meta_description,
               created_by, updated_by, created_at, updated_at`

type PostgresProfileRepo struct {
	logger *slog.Logger
	db     DBTX
}

func NewPostgresProfileRepo(db DBTX, logger *slog.Logger) *PostgresProfileRepo {
	return &PostgresProfileRepo{
		logger: logger,
		db:     db,
	}
}

func scanProfile(row pgx.Row) (*types.Profile, error) {
	var p types.Profile
	err := row.Scan(
		&p.ID, &p.Name, &p.Age, &p.Location, &p.Status, &p.Tags, &p.Img, &p.Rating,
		&p.IsActive, &p.IsNew, &p.Title, &p.ShortContent, &p.LongContent,
		&p.MetaTitle, &p.MetaKeywords, &p.MetaDescription,
		&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresProfileRepo) CreateProfile(ctx context.Context, profile types.Profile) (*types.Profile, error) {
	ctx, span := otel.Tracer("ProfileRepo").Start(ctx, "CreateProfile", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "profiles"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "CreateProfile"))
	l.DebugContext(ctx, "Inserting profile", slog.String("name", profile.Name))

	query := `
        INSERT INTO profiles (
            name, age, location, status, tags, img, rating, is_active, is_new,
            title, short_content, long_content, meta_title, meta_keywords, meta_description,
            created_by
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING ` + profileColumns

	created, err := scanProfile(r.db.QueryRow(ctx, query,
		profile.Name, profile.Age, profile.Location, profile.Status, profile.Tags,
		profile.Img, profile.Rating, profile.IsActive, profile.IsNew,
		profile.Title, profile.ShortContent, profile.LongContent,
		profile.MetaTitle, profile.MetaKeywords, profile.MetaDescription,
		profile.CreatedBy,
	))
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert profile", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error inserting profile: %w", err)
	}

	l.InfoContext(ctx, "Profile inserted", slog.String("profileID", created.ID.String()))
	span.SetStatus(codes.Ok, "Profile inserted")
	return created, nil
}

func (r *PostgresProfileRepo) GetProfile(ctx context.Context, profileID uuid.UUID) (*types.Profile, error) {
	ctx, span := otel.Tracer("ProfileRepo").Start(ctx, "GetProfile", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "profiles"),
		attribute.String("db.profile.id", profileID.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "GetProfile"), slog.String("profileID", profileID.String()))
	l.DebugContext(ctx, "Fetching profile")

	query := `
        SELECT ` + profileColumns + `
        FROM profiles
        WHERE id = $1 AND is_active = TRUE`

	profile, err := scanProfile(r.db.QueryRow(ctx, query, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Inactive and nonexistent are deliberately indistinguishable.
			span.SetStatus(codes.Error, "Profile not found")
			return nil, fmt.Errorf("profile %s not found: %w", profileID, types.ErrNotFound)
		}
		l.ErrorContext(ctx, "Failed to query profile", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching profile: %w", err)
	}

	span.SetStatus(codes.Ok, "Profile fetched")
	return profile, nil
}

func (r *PostgresProfileRepo) ListProfiles(ctx context.Context, filter types.ProfileFilter, page, limit int) (*types.ProfilePage, error) {
	ctx, span := otel.Tracer("ProfileRepo").Start(ctx, "ListProfiles", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "profiles"),
		attribute.Int("page", page),
		attribute.Int("limit", limit),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "ListProfiles"), slog.Int("page", page), slog.Int("limit", limit))
	l.DebugContext(ctx, "Listing profiles", slog.String("location", filter.Location), slog.String("status", filter.Status))

	// Public reads never see soft-deleted rows, regardless of filters.
	where := []string{"is_active = TRUE"}
	args := []interface{}{}
	paramIdx := 1

	if filter.Location != "" {
		where = append(where, fmt.Sprintf("location = $%d", paramIdx))
		args = append(args, filter.Location)
		paramIdx++
	}
	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", paramIdx))
		args = append(args, filter.Status)
		paramIdx++
	}

	whereClause := strings.Join(where, " AND ")

	countQuery := `SELECT COUNT(*) FROM profiles WHERE ` + whereClause
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		l.ErrorContext(ctx, "Failed to count profiles", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB COUNT failed")
		return nil, fmt.Errorf("database error counting profiles: %w", err)
	}

	// created_at DESC with an id tie-break keeps pagination deterministic
	// when timestamps collide.
	listQuery := fmt.Sprintf(`
        SELECT `+profileColumns+`
        FROM profiles
        WHERE %s
        ORDER BY created_at DESC, id ASC
        LIMIT $%d OFFSET $%d`, whereClause, paramIdx, paramIdx+1)

	listArgs := append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(ctx, listQuery, listArgs...)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query profiles", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := []types.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			l.ErrorContext(ctx, "Failed to scan profile row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning profile: %w", err)
		}
		profiles = append(profiles, *p)
	}

	if err = rows.Err(); err != nil {
		l.ErrorContext(ctx, "Error iterating profile rows", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("database error reading profiles: %w", err)
	}

	l.DebugContext(ctx, "Profiles listed", slog.Int("count", len(profiles)), slog.Int("total", total))
	span.SetStatus(codes.Ok, "Profiles listed")
	return &types.ProfilePage{Profiles: profiles, Total: total}, nil
}

func (r *PostgresProfileRepo) UpdateProfile(ctx context.Context, profileID uuid.UUID, params types.UpdateProfileParams, actorID uuid.UUID) (*types.Profile, error) {
	ctx, span := otel.Tracer("ProfileRepo").Start(ctx, "UpdateProfile", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "profiles"),
		attribute.String("db.profile.id", profileID.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "UpdateProfile"), slog.String("profileID", profileID.String()))
	l.DebugContext(ctx, "Updating profile")

	// Build the update query dynamically based on which fields are provided
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
	if params.Age != nil {
		set("age", *params.Age)
	}
	if params.Location != nil {
		set("location", *params.Location)
	}
	if params.Status != nil {
		set("status", *params.Status)
	}
	if params.Tags != nil {
		set("tags", params.Tags)
	}
	if params.Img != nil {
		set("img", *params.Img)
	}
	if params.Rating != nil {
		set("rating", *params.Rating)
	}
	if params.IsActive != nil {
		set("is_active", *params.IsActive)
	}
	if params.IsNew != nil {
		set("is_new", *params.IsNew)
	}
	if params.Title != nil {
		set("title", *params.Title)
	}
	if params.ShortContent != nil {
		set("short_content", *params.ShortContent)
	}
	if params.LongContent != nil {
		set("long_content", *params.LongContent)
	}
	if params.MetaTitle != nil {
		set("meta_title", *params.MetaTitle)
	}
	if params.MetaKeywords != nil {
		set("meta_keywords", *params.MetaKeywords)
	}
	if params.MetaDescription != nil {
		set("meta_description", *params.MetaDescription)
	}

	set("updated_by", actorID)
	set("updated_at", time.Now())

	args = append(args, profileID)

	// No is_active restriction: soft delete and any future reactivation are
	// themselves updates.
	query := fmt.Sprintf(`
        UPDATE profiles
        SET %s
        WHERE id = $%d
        RETURNING `+profileColumns, strings.Join(updates, ", "), paramIdx)

	updated, err := scanProfile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			l.WarnContext(ctx, "Attempted to update non-existent profile")
			span.SetStatus(codes.Error, "Profile not found")
			return nil, fmt.Errorf("profile %s not found: %w", profileID, types.ErrNotFound)
		}
		l.ErrorContext(ctx, "Failed to update profile", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return nil, fmt.Errorf("database error updating profile: %w", err)
	}

	l.InfoContext(ctx, "Profile updated")
	span.SetStatus(codes.Ok, "Profile updated")
	return updated, nil
}

func (r *PostgresProfileRepo) SoftDeleteProfile(ctx context.Context, profileID uuid.UUID, actorID uuid.UUID) error {
	ctx, span := otel.Tracer("ProfileRepo").Start(ctx, "SoftDeleteProfile", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "profiles"),
		attribute.String("db.profile.id", profileID.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "SoftDeleteProfile"), slog.String("profileID", profileID.String()))
	l.DebugContext(ctx, "Soft-deleting profile")

	// Deleting an already-inactive profile matches the row and succeeds.
	query := `
        UPDATE profiles
        SET is_active = FALSE, updated_by = $2, updated_at = $3
        WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, profileID, actorID, time.Now())
	if err != nil {
		l.ErrorContext(ctx, "Failed to soft-delete profile", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB UPDATE failed")
		return fmt.Errorf("database error deleting profile: %w", err)
	}

	if tag.RowsAffected() == 0 {
		l.WarnContext(ctx, "Attempted to delete non-existent profile")
		span.SetStatus(codes.Error, "Profile not found")
		return fmt.Errorf("profile %s not found: %w", profileID, types.ErrNotFound)
	}

	l.InfoContext(ctx, "Profile soft-deleted")
	span.SetStatus(codes.Ok, "Profile soft-deleted")
	return nil
}

func (r *PostgresProfileRepo) DistinctLocations(ctx context.Context) ([]string, error) {
	ctx, span := otel.Tracer("ProfileRepo").Start(ctx, "DistinctLocations", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "profiles"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "DistinctLocations"))
	l.DebugContext(ctx, "Fetching distinct locations")

	query := `
        SELECT DISTINCT location
        FROM profiles
        WHERE is_active = TRUE
        ORDER BY location`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query distinct locations", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching locations: %w", err)
	}
	defer rows.Close()

	var locations []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			l.ErrorContext(ctx, "Failed to scan location row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err = rows.Err(); err != nil {
		l.ErrorContext(ctx, "Error iterating location rows", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("database error reading locations: %w", err)
	}

	l.DebugContext(ctx, "Distinct locations fetched", slog.Int("count", len(locations)))
	span.SetStatus(codes.Ok, "Locations fetched")
	return locations, nil
}
