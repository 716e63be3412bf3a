package profiles

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trivixa/listings-api/internal/types"
)

var profileRowColumns = []string{
	"id", "name", "age", "location", "status", "tags", "img", "rating", "is_active", "is_new",
	"title", "short_content", "long_content", "meta_title", "meta_keywords", "meta_description",
	"created_by", "updated_by", "created_at", "updated_at",
}

func addProfileRow(rows *pgxmock.Rows, id uuid.UUID, name, location string, createdBy uuid.UUID) *pgxmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, name, 30, location, types.StatusOnline, []string{"vip"}, "img.jpg", 4.9, true, false,
		nil, nil, nil, nil, nil, nil,
		createdBy, nil, now, now,
	)
}

func newTestRepo(t *testing.T) (*PostgresProfileRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return NewPostgresProfileRepo(mockPool, slog.Default()), mockPool
}

func TestListProfiles(t *testing.T) {
	ctx := context.Background()

	t.Run("NoFilters", func(t *testing.T) {
		repo, mockPool := newTestRepo(t)

		mockPool.ExpectQuery(`SELECT COUNT\(\*\) FROM profiles WHERE is_active = TRUE`).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(42))

		rows := pgxmock.NewRows(profileRowColumns)
		addProfileRow(rows, uuid.New(), "Alice", "Berlin", uuid.New())
		addProfileRow(rows, uuid.New(), "Bob", "Lisbon", uuid.New())
		mockPool.ExpectQuery(`WHERE is_active = TRUE\s+ORDER BY created_at DESC, id ASC\s+LIMIT \$1 OFFSET \$2`).
			WithArgs(25, 0).
			WillReturnRows(rows)

		page, err := repo.ListProfiles(ctx, types.ProfileFilter{}, 1, 25)
		require.NoError(t, err)
		assert.Equal(t, 42, page.Total)
		require.Len(t, page.Profiles, 2)
		assert.Equal(t, "Alice", page.Profiles[0].Name)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("LocationAndStatusFilters", func(t *testing.T) {
		repo, mockPool := newTestRepo(t)

		mockPool.ExpectQuery(`SELECT COUNT\(\*\) FROM profiles WHERE is_active = TRUE AND location = \$1 AND status = \$2`).
			WithArgs("Berlin", types.StatusOnline).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

		rows := pgxmock.NewRows(profileRowColumns)
		addProfileRow(rows, uuid.New(), "Alice", "Berlin", uuid.New())
		mockPool.ExpectQuery(`WHERE is_active = TRUE AND location = \$1 AND status = \$2\s+ORDER BY created_at DESC, id ASC\s+LIMIT \$3 OFFSET \$4`).
			WithArgs("Berlin", types.StatusOnline, 10, 10).
			WillReturnRows(rows)

		page, err := repo.ListProfiles(ctx, types.ProfileFilter{Location: "Berlin", Status: types.StatusOnline}, 2, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("EmptyPageIsNotNil", func(t *testing.T) {
		repo, mockPool := newTestRepo(t)

		mockPool.ExpectQuery(`SELECT COUNT\(\*\) FROM profiles`).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
		mockPool.ExpectQuery(`ORDER BY created_at DESC, id ASC`).
			WithArgs(25, 0).
			WillReturnRows(pgxmock.NewRows(profileRowColumns))

		page, err := repo.ListProfiles(ctx, types.ProfileFilter{}, 1, 25)
		require.NoError(t, err)
		assert.NotNil(t, page.Profiles)
		assert.Empty(t, page.Profiles)
		assert.Equal(t, 0, page.Total)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		repo, mockPool := newTestRepo(t)
		profileID := uuid.New()

		mockPool.ExpectQuery(`WHERE id = \$1 AND is_active = TRUE`).
			WithArgs(profileID).
			WillReturnError(pgx.ErrNoRows)

		profile, err := repo.GetProfile(ctx, profileID)
		assert.Nil(t, profile)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("Found", func(t *testing.T) {
		repo, mockPool := newTestRepo(t)
		profileID := uuid.New()

		rows := pgxmock.NewRows(profileRowColumns)
		addProfileRow(rows, profileID, "Alice", "Berlin", uuid.New())
		mockPool.ExpectQuery(`WHERE id = \$1 AND is_active = TRUE`).
			WithArgs(profileID).
			WillReturnRows(rows)

		profile, err := repo.GetProfile(ctx, profileID)
		require.NoError(t, err)
		assert.Equal(t, profileID, profile.ID)
		assert.Equal(t, "Berlin", profile.Location)
	})
}

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()
	repo, mockPool := newTestRepo(t)

	actorID := uuid.New()
	profile := types.Profile{
		Name:      "Alice",
		Age:       30,
		Location:  "Berlin",
		Status:    types.StatusOnline,
		Tags:      []string{"vip"},
		Img:       "img.jpg",
		Rating:    4.9,
		IsActive:  true,
		CreatedBy: actorID,
	}

	rows := pgxmock.NewRows(profileRowColumns)
	addProfileRow(rows, uuid.New(), "Alice", "Berlin", actorID)
	mockPool.ExpectQuery(`INSERT INTO profiles`).
		WithArgs(
			"Alice", 30, "Berlin", types.StatusOnline, []string{"vip"}, "img.jpg", 4.9, true, false,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), actorID,
		).
		WillReturnRows(rows)

	created, err := repo.CreateProfile(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, actorID, created.CreatedBy)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialUpdateSetsOnlyProvidedColumns", func(t *testing.T) {
		repo, mockPool := newTestRepo(t)
		profileID := uuid.New()
		actorID := uuid.New()

		rows := pgxmock.NewRows(profileRowColumns)
		addProfileRow(rows, profileID, "Alice", "Lisbon", actorID)
		mockPool.ExpectQuery(`UPDATE profiles\s+SET location = \$1, updated_by = \$2, updated_at = \$3\s+WHERE id = \$4`).
			WithArgs("Lisbon", actorID, pgxmock.AnyArg(), profileID).
			WillReturnRows(rows)

		updated, err := repo.UpdateProfile(ctx, profileID, types.UpdateProfileParams{Location: strPtr("Lisbon")}, actorID)
		require.NoError(t, err)
		assert.Equal(t, "Lisbon", updated.Location)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mockPool := newTestRepo(t)
		profileID := uuid.New()

		mockPool.ExpectQuery(`UPDATE profiles`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)

		updated, err := repo.UpdateProfile(ctx, profileID, types.UpdateProfileParams{Name: strPtr("Bob")}, uuid.New())
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestSoftDeleteProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mockPool := newTestRepo(t)
		profileID := uuid.New()
		actorID := uuid.New()

		mockPool.ExpectExec(`UPDATE profiles\s+SET is_active = FALSE, updated_by = \$2, updated_at = \$3\s+WHERE id = \$1`).
			WithArgs(profileID, actorID, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.SoftDeleteProfile(ctx, profileID, actorID)
		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("MissingProfile", func(t *testing.T) {
		repo, mockPool := newTestRepo(t)
		profileID := uuid.New()

		mockPool.ExpectExec(`UPDATE profiles`).
			WithArgs(profileID, pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.SoftDeleteProfile(ctx, profileID, uuid.New())
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestDistinctLocations(t *testing.T) {
	ctx := context.Background()
	repo, mockPool := newTestRepo(t)

	rows := pgxmock.NewRows([]string{"location"}).
		AddRow("Berlin").
		AddRow("Lisbon").
		AddRow("Porto")
	mockPool.ExpectQuery(`SELECT DISTINCT location\s+FROM profiles\s+WHERE is_active = TRUE\s+ORDER BY location`).
		WillReturnRows(rows)

	locations, err := repo.DistinctLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Berlin", "Lisbon", "Porto"}, locations)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
