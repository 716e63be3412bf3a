package ownerinfo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trivixa/listings-api/internal/types"
)

var _ OwnerInfoRepo = (*PostgresOwnerInfoRepo)(nil)

type OwnerInfoRepo interface {
	Get(ctx context.Context) (*types.OwnerInfo, error)
	Upsert(ctx context.Context, params types.UpdateOwnerInfoParams, actorID uuid.UUID) (*types.OwnerInfo, error)
}

type PostgresOwnerInfoRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresOwnerInfoRepo(pgxpool *pgxpool.Pool, logger *slog.Logger) *PostgresOwnerInfoRepo {
	return &PostgresOwnerInfoRepo{
		logger: logger,
		pgpool: pgxpool,
	}
}

func (r *PostgresOwnerInfoRepo) Get(ctx context.Context) (*types.OwnerInfo, error) {
	query := `
        SELECT name, email, phone, about, updated_by, updated_at
        FROM owner_info
        WHERE id = 1`

	var info types.OwnerInfo
	err := r.pgpool.QueryRow(ctx, query).Scan(
		&info.Name, &info.Email, &info.Phone, &info.About, &info.UpdatedBy, &info.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("owner info not set: %w", types.ErrNotFound)
		}
		r.logger.ErrorContext(ctx, "Failed to query owner info", slog.Any("error", err))
		return nil, fmt.Errorf("database error fetching owner info: %w", err)
	}
	return &info, nil
}

func (r *PostgresOwnerInfoRepo) Upsert(ctx context.Context, params types.UpdateOwnerInfoParams, actorID uuid.UUID) (*types.OwnerInfo, error) {
	query := `
        INSERT INTO owner_info (id, name, email, phone, about, updated_by, updated_at)
        VALUES (1, $1, $2, $3, $4, $5, now())
        ON CONFLICT (id) DO UPDATE
        SET name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone,
            about = EXCLUDED.about, updated_by = EXCLUDED.updated_by, updated_at = now()
        RETURNING name, email, phone, about, updated_by, updated_at`

	var info types.OwnerInfo
	err := r.pgpool.QueryRow(ctx, query,
		params.Name, params.Email, params.Phone, params.About, actorID,
	).Scan(&info.Name, &info.Email, &info.Phone, &info.About, &info.UpdatedBy, &info.UpdatedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to upsert owner info", slog.Any("error", err))
		return nil, fmt.Errorf("database error updating owner info: %w", err)
	}
	return &info, nil
}
